package compare_test

import (
	"testing"

	"github.com/gnames/tsbrowse/pkg/compare"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sel(subjects []string, bands []string) compare.Selection {
	return compare.Selection{Subjects: subjects, GradeBands: bands}
}

func TestIsValidSelection(t *testing.T) {
	tests := []struct {
		msg      string
		subjects []string
		bands    []string
		valid    bool
		mode     compare.Mode
	}{
		{"empty", nil, nil, false, compare.ModeNone},
		{"no bands", []string{"it"}, nil, false, compare.ModeNone},
		{"one one", []string{"it"}, []string{"H1"}, true, compare.ModeGradeBands},
		{"3 subj", []string{"a", "b", "c"}, []string{"H1"}, true, compare.ModeSubjects},
		{"4 subj", []string{"a", "b", "c", "d"}, []string{"H1"}, false, compare.ModeNone},
		{"3 bands", []string{"a"}, []string{"H1", "H2", "H3"}, true, compare.ModeGradeBands},
		{"2x2", []string{"a", "b"}, []string{"H1", "H2"}, false, compare.ModeNone},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(v.valid, compare.IsValidSelection(v.subjects, v.bands))
			assert.Equal(v.mode, compare.ModeOf(v.subjects, v.bands))
		})
	}
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		msg      string
		subjects []string
		bands    []string
		res      string
	}{
		{"both", nil, nil, compare.MsgChooseBoth},
		{"subj", nil, []string{"H1"}, compare.MsgChooseSubject},
		{"band", []string{"a"}, nil, compare.MsgChooseBand},
		{
			"max subj",
			[]string{"a", "b", "c", "d"},
			[]string{"H1", "H2", "H3", "H1"},
			compare.MsgMaxSubjects,
		},
		{"max bands", []string{"a"}, []string{"H1", "H2", "H3", "H1"}, compare.MsgMaxGradeBands},
		{"ok", []string{"a"}, []string{"H1"}, ""},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.res, compare.ValidationMessage(v.subjects, v.bands))
		})
	}
}

func TestAddSubject(t *testing.T) {
	assert := assert.New(t)

	t.Run("truncates oldest", func(t *testing.T) {
		cur := sel([]string{"math", "arts", "pe"}, []string{"H2"})
		res := compare.AddSubject(cur, "it")
		assert.Equal([]string{"arts", "pe", "it"}, res.Subjects)
		assert.Equal([]string{"H2"}, res.GradeBands)
		assert.Equal(compare.MsgMaxSubjects, res.Message)
		// input is not changed
		assert.Equal([]string{"math", "arts", "pe"}, cur.Subjects)
	})

	t.Run("collapses bands", func(t *testing.T) {
		cur := sel([]string{"math"}, []string{"H1", "H3"})
		res := compare.AddSubject(cur, "it")
		assert.Equal([]string{"math", "it"}, res.Subjects)
		assert.Equal([]string{"H1"}, res.GradeBands)
		assert.Equal(compare.MsgOneBandForSubjects, res.Message)
	})

	t.Run("removes present", func(t *testing.T) {
		cur := sel([]string{"math", "it"}, []string{"H1"})
		res := compare.AddSubject(cur, "math")
		assert.Equal([]string{"it"}, res.Subjects)
		assert.Equal([]string{"H1"}, res.GradeBands)
		assert.Empty(res.Message)
	})

	t.Run("removes last", func(t *testing.T) {
		res := compare.AddSubject(sel([]string{"it"}, []string{"H1"}), "it")
		assert.Equal([]string{}, res.Subjects)
		assert.False(compare.IsValidSelection(res.Subjects, res.GradeBands))
	})
}

func TestAddGradeBand(t *testing.T) {
	assert := assert.New(t)

	t.Run("collapses subjects", func(t *testing.T) {
		cur := sel([]string{"math", "it"}, []string{"H1"})
		res := compare.AddGradeBand(cur, "H2")
		assert.Equal([]string{"math"}, res.Subjects)
		assert.Equal([]string{"H1", "H2"}, res.GradeBands)
		assert.Equal(compare.MsgOneSubjectForBands, res.Message)
	})

	t.Run("plain add", func(t *testing.T) {
		res := compare.AddGradeBand(sel([]string{"it"}, []string{"H2"}), "H1")
		assert.Equal([]string{"H2", "H1"}, res.GradeBands)
		assert.Empty(res.Message)
	})

	t.Run("nil input", func(t *testing.T) {
		res := compare.AddGradeBand(compare.Selection{}, "H3")
		assert.Equal([]string{}, res.Subjects)
		assert.Equal([]string{"H3"}, res.GradeBands)
	})
}

func TestAddKeepsValid(t *testing.T) {
	cur := sel([]string{"it"}, []string{"H2"})
	steps := []compare.Toggle{
		{Dimension: compare.DimensionSubjects, Item: "math"},
		{Dimension: compare.DimensionSubjects, Item: "pe"},
		{Dimension: compare.DimensionSubjects, Item: "arts"},
		{Dimension: compare.DimensionBands, Item: "H1"},
		{Dimension: compare.DimensionBands, Item: "H3"},
		{Dimension: compare.DimensionSubjects, Item: "labor"},
	}
	for _, step := range steps {
		cur = compare.Apply(cur, step).Selection
		assert.True(t, compare.IsValidSelection(cur.Subjects, cur.GradeBands),
			"%v", cur)
	}
	assert.Equal(t, []string{"math", "labor"}, cur.Subjects)
	assert.Equal(t, []string{"H2"}, cur.GradeBands)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		msg      string
		draft    compare.Selection
		last     compare.Dimension
		subjects []string
		bands    []string
		message  string
		changed  bool
	}{
		{
			"valid sorted",
			sel([]string{"it"}, []string{"H1", "H2"}),
			compare.DimensionNone,
			[]string{"it"}, []string{"H1", "H2"}, "", false,
		},
		{
			"sort only",
			sel([]string{"it"}, []string{"H3", "H1"}),
			compare.DimensionNone,
			[]string{"it"}, []string{"H1", "H3"}, "", true,
		},
		{
			"conflict default",
			sel([]string{"it", "pe"}, []string{"H3", "H1"}),
			compare.DimensionNone,
			[]string{"it", "pe"}, []string{"H3"}, compare.MsgOneBandForSubjects, true,
		},
		{
			"conflict bands last",
			sel([]string{"it", "pe"}, []string{"H3", "H1"}),
			compare.DimensionBands,
			[]string{"it"}, []string{"H1", "H3"}, compare.MsgOneSubjectForBands, true,
		},
		{
			"truncate",
			sel([]string{"a", "b", "c", "d"}, []string{"H1"}),
			compare.DimensionSubjects,
			[]string{"b", "c", "d"}, []string{"H1"}, compare.MsgMaxSubjects, true,
		},
		{
			"empty",
			compare.Selection{},
			compare.DimensionNone,
			[]string{}, []string{}, "", false,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert := assert.New(t)
			res := compare.Normalize(v.draft, v.last)
			assert.Equal(v.subjects, res.Subjects)
			assert.Equal(v.bands, res.GradeBands)
			assert.Equal(v.message, res.Message)
			assert.Equal(v.changed, res.Changed)

			again := compare.Normalize(res.Selection, v.last)
			assert.Equal(res.Selection, again.Selection)
			assert.False(again.Changed)
		})
	}
}

func TestSortGradeBands(t *testing.T) {
	assert := assert.New(t)
	in := []string{"H3", "X", "H1", "H2"}
	res := compare.SortGradeBands(in)
	assert.Equal([]string{"H1", "H2", "H3", "X"}, res)
	assert.Equal([]string{"H3", "X", "H1", "H2"}, in)
	assert.Equal(res, compare.SortGradeBands(res))
}

func TestToggleSkill(t *testing.T) {
	assert := assert.New(t)
	skills := []string{"TS1"}
	res := compare.ToggleSkill(skills, "TS3.2")
	assert.Equal([]string{"TS1", "TS3.2"}, res)
	res = compare.ToggleSkill(res, "TS1")
	assert.Equal([]string{"TS3.2"}, res)
	assert.Equal([]string{"TS1"}, skills)
}

func TestFiltersDiffer(t *testing.T) {
	assert := assert.New(t)
	a := &schema.Filters{
		Subjects:   []string{"it", "pe"},
		GradeBands: []string{"H1"},
		Skills:     []string{"TS1", "TS2"},
	}
	b := &schema.Filters{
		Subjects:   []string{"pe", "it"},
		GradeBands: []string{"H1"},
		Skills:     []string{"TS2", "TS1"},
		Keyword:    "ignored",
	}
	assert.False(compare.FiltersDiffer(a, b))
	b.GradeBands = []string{"H2"}
	assert.True(compare.FiltersDiffer(a, b))
	assert.False(compare.FiltersDiffer(nil, &schema.Filters{}))
	assert.True(compare.FiltersDiffer(nil, a))
}

func TestEnsureSafe(t *testing.T) {
	assert := assert.New(t)
	res := compare.EnsureSafe(nil)
	assert.NotNil(res.Subjects)
	assert.NotNil(res.GradeBands)
	assert.NotNil(res.Skills)

	f := &schema.Filters{Subjects: []string{"it"}, Keyword: "net"}
	res = compare.EnsureSafe(f)
	assert.Equal([]string{"it"}, res.Subjects)
	assert.Equal([]string{}, res.Skills)
	assert.Equal("net", res.Keyword)
	res.Subjects[0] = "pe"
	assert.Equal("it", f.Subjects[0])
}

func TestDraftCommit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	applied := compare.Committed{Filters: compare.DefaultFilters()}
	d := compare.NewDraft(applied)
	assert.False(d.Pending(applied))

	msg := d.Apply(compare.Toggle{Dimension: compare.DimensionBands, Item: "H1"})
	assert.Empty(msg)
	d.ToggleSkill("TS2")
	assert.True(d.Pending(applied))
	assert.Equal(compare.DimensionBands, d.LastChanged)

	c, err := compare.Commit(*d)
	require.Nil(err)
	assert.Equal(compare.ModeGradeBands, c.Mode)
	assert.Equal([]string{"H1", "H2"}, c.Filters.GradeBands)
	assert.Equal([]string{"TS2"}, c.Filters.Skills)
	assert.Equal(schema.ModeCompare, c.Filters.Mode)

	d = compare.NewDraft(c)
	d.Apply(compare.Toggle{Dimension: compare.DimensionSubjects, Item: "it"})
	_, err = compare.Commit(*d)
	var verr *compare.ValidationError
	require.ErrorAs(err, &verr)
	assert.Equal(compare.MsgChooseSubject, verr.Message)
}

func TestCommitResolvesConflict(t *testing.T) {
	d := compare.Draft{
		Filters: schema.Filters{
			Subjects:   []string{"it", "math"},
			GradeBands: []string{"H2", "H1"},
		},
	}
	c, err := compare.Commit(d)
	require.Nil(t, err)
	assert.Equal(t, compare.ModeSubjects, c.Mode)
	assert.Equal(t, []string{"H2"}, c.Filters.GradeBands)
	assert.Equal(t, compare.MsgOneBandForSubjects, c.Message)
}
