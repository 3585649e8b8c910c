package collections_test

import (
	"testing"
	"time"

	"github.com/gnames/tsbrowse/pkg/collections"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortList(t *testing.T) {
	now := time.Now()
	cols := []collections.Collection{
		{ID: "col-a", CreatedAt: now.Add(-time.Hour)},
		{ID: "col-b", CreatedAt: now},
		{ID: collections.DefaultID, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "col-c", CreatedAt: now.Add(-2 * time.Hour)},
	}
	collections.SortList(cols)
	ids := make([]string, len(cols))
	for i, v := range cols {
		ids[i] = v.ID
	}
	assert.Equal(t, []string{"default", "col-b", "col-a", "col-c"}, ids)
}

func TestMove(t *testing.T) {
	codes := []string{"A", "B", "C", "D"}
	tests := []struct {
		msg   string
		code  string
		index int
		res   []string
		ok    bool
	}{
		{"to front", "C", 0, []string{"C", "A", "B", "D"}, true},
		{"to end", "A", 3, []string{"B", "C", "D", "A"}, true},
		{"clamp high", "B", 10, []string{"A", "C", "D", "B"}, true},
		{"clamp low", "D", -5, []string{"D", "A", "B", "C"}, true},
		{"missing", "X", 1, []string{"A", "B", "C", "D"}, false},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, ok := collections.Move(codes, v.code, v.index)
			assert.Equal(t, v.ok, ok)
			assert.Equal(t, v.res, res)
			assert.Equal(t, []string{"A", "B", "C", "D"}, codes)
		})
	}
}

func TestEnvelope(t *testing.T) {
	assert := assert.New(t)
	col := collections.Collection{
		ID:            "col-1",
		Name:          "Algorithms",
		CreatedAt:     time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		StandardCodes: []string{"IT-H2-001"},
	}
	env := collections.NewEnvelope(col, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(collections.EnvelopeType, env.Type)
	assert.Equal(1, env.Version)
	assert.Empty(env.Collection.ID)
	assert.Equal("2025-10-01T00:00:00Z", env.ExportedAt)

	body, err := env.Encode()
	require.Nil(t, err)
	assert.NotContains(string(body), `"id"`)

	res, err := collections.ParseEnvelope(body)
	require.Nil(t, err)
	assert.Equal(env, res)
}

func TestParseEnvelopeInvalid(t *testing.T) {
	tests := []struct {
		msg, doc string
	}{
		{"not json", `{"type": `},
		{"wrong type", `{"type": "bookmarks", "version": 1, "collection": {"name": "a"}}`},
		{"no version", `{"type": "curriculum-standards-collection", "collection": {"name": "a"}}`},
		{"no name", `{"type": "curriculum-standards-collection", "version": 1, "collection": {}}`},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := collections.ParseEnvelope([]byte(v.doc))
			assert.NotNil(t, err)
		})
	}
}

func TestNewStats(t *testing.T) {
	assert := assert.New(t)
	res := collections.NewStats([]schema.Standard{
		{Subject: "数学", GradeBand: "H1", Domain: "数与代数",
			TSPrimary: []string{"TS3.2"}, TSSecondary: []string{"TS1"}},
		{Subject: "数学", GradeBand: "H2",
			TSPrimary: []string{"TS3"}},
		{},
	})
	assert.Equal(3, res.Total)
	assert.Equal(map[string]int{"数学": 2, collections.Unknown: 1}, res.BySubject)
	assert.Equal(map[string]int{"H1": 1, "H2": 1, collections.Unknown: 1}, res.ByGradeBand)
	assert.Equal(map[string]int{"数与代数": 1, collections.Unknown: 2}, res.ByDomain)
	assert.Equal(map[string]int{"TS3": 2, "TS1": 1}, res.BySkill)
}
