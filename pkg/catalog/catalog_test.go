package catalog_test

import (
	"testing"

	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func corpus() []schema.Standard {
	return []schema.Standard{
		{
			Code: "ML-H1-001", SubjectSlug: "math", GradeBand: "H1",
			Domain: "数与代数", Standard: "Count to 100",
			TSPrimary: []string{"TS3.2"}, TSSecondary: []string{},
		},
		{
			Code: "ML-H2-001", SubjectSlug: "math", GradeBand: "H2",
			Domain: "图形与几何", Context: "Measure the classroom",
			TSPrimary: []string{"TS4"}, TSSecondary: []string{"TS1.1"},
		},
		{
			Code: "IT-H2-001", SubjectSlug: "it", GradeBand: "H2",
			Domain: "", TeachingTip: "Use a Network diagram",
			TSPrimary: []string{"TS3"}, TSSecondary: []string{},
		},
		{
			Code: "PE-H3-001", SubjectSlug: "pe", GradeBand: "H3",
			Domain: "数与代数", Practice: "Team games",
			TSPrimary: []string{}, TSSecondary: []string{"TS5.2"},
		},
	}
}

func codes(ss []schema.Standard) []string {
	res := make([]string, len(ss))
	for i, v := range ss {
		res[i] = v.Code
	}
	return res
}

func TestFilterStandards(t *testing.T) {
	tests := []struct {
		msg     string
		filters schema.Filters
		res     []string
	}{
		{
			"identity",
			schema.Filters{},
			[]string{"ML-H1-001", "ML-H2-001", "IT-H2-001", "PE-H3-001"},
		},
		{
			"subjects",
			schema.Filters{Subjects: []string{"it", "pe"}},
			[]string{"IT-H2-001", "PE-H3-001"},
		},
		{
			"bands",
			schema.Filters{GradeBands: []string{"H2"}},
			[]string{"ML-H2-001", "IT-H2-001"},
		},
		{
			"domains",
			schema.Filters{Domains: []string{"数与代数"}},
			[]string{"ML-H1-001", "PE-H3-001"},
		},
		{
			"main skill matches sub tag",
			schema.Filters{Skills: []string{"TS3"}},
			[]string{"ML-H1-001", "IT-H2-001"},
		},
		{
			"sub skill matches main tag",
			schema.Filters{Skills: []string{"TS3.4"}},
			[]string{"IT-H2-001"},
		},
		{
			"secondary",
			schema.Filters{Skills: []string{"TS1", "TS5"}},
			[]string{"ML-H2-001", "PE-H3-001"},
		},
		{
			"keyword",
			schema.Filters{Keyword: "  network "},
			[]string{"IT-H2-001"},
		},
		{
			"keyword practice",
			schema.Filters{Keyword: "TEAM"},
			[]string{"PE-H3-001"},
		},
		{
			"combined",
			schema.Filters{Subjects: []string{"math"}, GradeBands: []string{"H2"}, Skills: []string{"TS4"}},
			[]string{"ML-H2-001"},
		},
		{
			"none",
			schema.Filters{Subjects: []string{"arts"}},
			[]string{},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res := catalog.FilterStandards(corpus(), v.filters)
			assert.Equal(t, v.res, codes(res))
		})
	}
}

func TestFilterMonotone(t *testing.T) {
	assert := assert.New(t)
	f := schema.Filters{GradeBands: []string{"H2"}}
	narrow := f
	narrow.Subjects = []string{"it"}

	wide := codes(catalog.FilterStandards(corpus(), f))
	res := codes(catalog.FilterStandards(corpus(), narrow))
	assert.Subset(wide, res)
	assert.Equal(res, codes(catalog.FilterStandards(
		catalog.FilterStandards(corpus(), f), narrow,
	)))
}

func TestGroupByDomain(t *testing.T) {
	assert := assert.New(t)
	res := catalog.GroupByDomain(corpus())
	assert.Len(res, 3)
	assert.Equal("数与代数", res[0].Domain)
	assert.Equal([]string{"ML-H1-001", "PE-H3-001"}, codes(res[0].Standards))
	assert.Equal("图形与几何", res[1].Domain)
	assert.Equal(catalog.OtherDomain, res[2].Domain)
	assert.Empty(catalog.GroupByDomain(nil))
}

func TestIntersectCodes(t *testing.T) {
	res := catalog.IntersectCodes(corpus(), []string{"PE-H3-001", "XX-1", "ML-H1-001"})
	assert.Equal(t, []string{"PE-H3-001", "ML-H1-001"}, codes(res))
}

func TestInferSubjectFromCode(t *testing.T) {
	tests := []struct {
		code, res string
	}{
		{"CNC-D1-LI01", "chinese"},
		{"ML-H2-DSJ-005", "math"},
		{"mlw-H3-01", "morality_law"},
		{"LAB-H1-002", "labor"},
		{"IT", "it"},
		{"XYZ-H1-001", ""},
		{"", ""},
	}
	for _, v := range tests {
		t.Run(v.code, func(t *testing.T) {
			assert.Equal(t, v.res, catalog.InferSubjectFromCode(v.code))
		})
	}
}

func TestPaths(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("/by_subject/it.json", catalog.SubjectPath("it"))
	assert.Equal("/indexes/skill_to_subjects.json", catalog.SkillToSubjectsPath)
	assert.Equal("subject:pe", catalog.SubjectKey("pe"))
	assert.Equal("pending", catalog.Pending.String())
}
