package schema_test

import (
	"testing"

	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestSkillCodeMain(t *testing.T) {
	tests := []struct {
		code schema.SkillCode
		main schema.SkillCode
	}{
		{"TS1", "TS1"},
		{"TS1.2", "TS1"},
		{"TS7.10", "TS7"},
		{"", ""},
	}
	for _, v := range tests {
		assert.Equal(t, v.main, v.code.Main(), string(v.code))
	}
	assert.Equal(t, "TS3", schema.MainSkillCode("TS3.2"))
	assert.True(t, schema.SkillCode("TS1").IsMain())
	assert.False(t, schema.SkillCode("TS1.1").IsMain())
}

func TestSkillCodeRelatedTo(t *testing.T) {
	tests := []struct {
		msg   string
		a, b  schema.SkillCode
		match bool
	}{
		{"main filter matches sub tag", "TS2.1", "TS2", true},
		{"sub filter matches main tag", "TS2", "TS2.3", true},
		{"identical", "TS4.1", "TS4.1", true},
		{"siblings do not match", "TS2.1", "TS2.3", false},
		{"different skills", "TS1", "TS2", false},
	}
	for _, v := range tests {
		assert.Equal(t, v.match, v.a.RelatedTo(v.b), v.msg)
		assert.Equal(t, v.match, v.b.RelatedTo(v.a), v.msg+" (symmetric)")
	}
}

func TestSkillCodeValid(t *testing.T) {
	valid := []schema.SkillCode{"TS1", "TS7", "TS2.1", "TS3.12"}
	for _, v := range valid {
		assert.True(t, v.Valid(), string(v))
	}
	invalid := []schema.SkillCode{"", "TS", "TS8", "TS0", "XS1", "TS1.", "TS1.x", "TS12"}
	for _, v := range invalid {
		assert.False(t, v.Valid(), string(v))
	}
}

func TestSortGradeBands(t *testing.T) {
	tests := []struct {
		in  []string
		out []string
	}{
		{nil, []string{}},
		{[]string{"H3", "H1"}, []string{"H1", "H3"}},
		{[]string{"H2", "X", "H1", "H3"}, []string{"H1", "H2", "H3", "X"}},
	}
	for _, v := range tests {
		res := schema.SortGradeBands(v.in)
		assert.Equal(t, v.out, res)
		assert.Equal(t, res, schema.SortGradeBands(res), "idempotent")
		assert.ElementsMatch(t, v.out, res, "permutation")
	}

	in := []string{"H3", "H2"}
	_ = schema.SortGradeBands(in)
	assert.Equal(t, []string{"H3", "H2"}, in, "input is not modified")
}
