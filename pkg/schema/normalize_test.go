package schema_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureArray(t *testing.T) {
	arr := []any{"TS1", "TS2"}
	tests := []struct {
		msg string
		in  any
		out []any
	}{
		{"nil", nil, []any{}},
		{"empty string", "", []any{}},
		{"string", "TS1", []any{"TS1"}},
		{"number", 3.0, []any{3.0}},
		{"array", arr, arr},
		{"typed slice", []string{"a", "b"}, []any{"a", "b"}},
		{"typed nil", []any(nil), []any{}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res := schema.EnsureArray(v.in)
			require.NotNil(t, res)
			assert.Equal(t, v.out, res)
		})
	}

	t.Run("array passes through unchanged", func(t *testing.T) {
		res := schema.EnsureArray(arr)
		assert.Same(t, &arr[0], &res[0])
	})
}

func TestNormalizeStandardNil(t *testing.T) {
	assert.Nil(t, schema.NormalizeStandard(nil))
}

// TestNormalizeStandardTotality checks that every field is set
// for partial and mistyped inputs.
func TestNormalizeStandardTotality(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"code": "ML-H1-ENR-001"}`,
		`{"code": "ML-H1-ENR-001", "ts_primary": "TS1", "ts_secondary": null}`,
		`{"ts_primary": ["TS2.1"], "resources": "", "grade_band": "H2"}`,
		`{"code": 17, "domain": false, "standard": null, "resources": {"a": 1}}`,
	}

	for _, in := range inputs {
		var raw map[string]any
		require.NoError(t, json.Unmarshal([]byte(in), &raw))

		std := schema.NormalizeStandard(raw)
		require.NotNil(t, std, in)
		assert.NotNil(t, std.TSPrimary, in)
		assert.NotNil(t, std.TSSecondary, in)
		assert.NotNil(t, std.Resources, in)

		// every declared field is present after a JSON round trip
		bs, err := json.Marshal(std)
		require.NoError(t, err)
		var back map[string]any
		require.NoError(t, json.Unmarshal(bs, &back))
		fields := reflect.TypeOf(schema.Standard{}).NumField()
		assert.Len(t, back, fields, in)
		for k, v := range back {
			assert.NotNil(t, v, "%s: field %s is null", in, k)
		}
	}
}

func TestNormalizeStandardValues(t *testing.T) {
	raw := map[string]any{
		"code":          "ML-H1-ENR-001",
		"subject_slug":  "math",
		"grade_band":    "H1",
		"ts_primary":    "TS1.2",
		"ts_secondary":  []any{"TS3", "TS5.1"},
		"previous_code": "ML-H1-ENR-000\nML-H1-ENR-002\n",
		"standard":      "Count to 100",
	}

	std := schema.NormalizeStandard(raw)
	require.NotNil(t, std)
	assert.Equal(t, "ML-H1-ENR-001", std.ID, "id defaults to code")
	assert.Equal(t, []string{"TS1.2"}, std.TSPrimary)
	assert.Equal(t, []string{"TS3", "TS5.1"}, std.TSSecondary)
	assert.Equal(t, []string{"ML-H1-ENR-000", "ML-H1-ENR-002"},
		std.PreviousCodes())
	assert.Empty(t, std.NextCodes())
	assert.Equal(t, []schema.SkillCode{"TS1.2", "TS3", "TS5.1"}, std.Skills())

	// raw record is not modified
	assert.Equal(t, "TS1.2", raw["ts_primary"])
	_, hasID := raw["id"]
	assert.False(t, hasID)

	raw["id"] = "custom"
	assert.Equal(t, "custom", schema.NormalizeStandard(raw).ID)
}

func TestNormalizeSkill(t *testing.T) {
	in := `{
		"code": "TS2",
		"name_en": "Collaboration",
		"look_fors": "listens",
		"subskills": [
			{"code": "TS2.1", "teacher_moves": ["pair work"]},
			null,
			"bogus"
		]
	}`
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(in), &raw))

	sk := schema.NormalizeSkill(raw)
	require.NotNil(t, sk)
	assert.Equal(t, "TS2", sk.Code)
	assert.Equal(t, []string{"listens"}, sk.LookFors)
	assert.Equal(t, []string{}, sk.TeacherMoves)
	assert.Equal(t, []string{}, sk.ChinaCoreLiteracyMapping)
	require.Len(t, sk.Subskills, 1)
	assert.Equal(t, "TS2.1", sk.Subskills[0].Code)
	assert.Equal(t, []string{"pair work"}, sk.Subskills[0].TeacherMoves)
	assert.Equal(t, []string{}, sk.Subskills[0].LookFors)

	sub, ok := sk.Subskill("TS2.1")
	assert.True(t, ok)
	assert.Equal(t, "TS2.1", sub.Code)
	_, ok = sk.Subskill("TS2.9")
	assert.False(t, ok)

	assert.Nil(t, schema.NormalizeSkill(nil))
	assert.Nil(t, schema.NormalizeSubskill(nil))
}

func TestNormalizeManifestSubject(t *testing.T) {
	raw := map[string]any{
		"subject_slug": "math",
		"record_count": 120.0,
		"domains":      map[string]any{"数与代数": map[string]any{}},
		"grade_bands":  "not a map",
	}
	sub := schema.NormalizeManifestSubject(raw)
	require.NotNil(t, sub)
	assert.Equal(t, 120, sub.RecordCount)
	assert.Len(t, sub.Domains, 1)
	assert.NotNil(t, sub.GradeBands)
	assert.Empty(t, sub.GradeBands)

	empty := schema.NormalizeManifestSubject(map[string]any{})
	assert.Equal(t, 0, empty.RecordCount)
	assert.NotNil(t, empty.Domains)
}

func TestNormalizeBatches(t *testing.T) {
	t.Run("non-sequence is empty", func(t *testing.T) {
		assert.Equal(t, []schema.Standard{}, schema.NormalizeStandards(nil))
		assert.Equal(t, []schema.Skill{}, schema.NormalizeSkills(""))
		assert.Empty(t, schema.NormalizeStandards(map[string]any{"x": 1}))
	})

	t.Run("nil records are dropped", func(t *testing.T) {
		raw := []any{
			map[string]any{"code": "A"},
			nil,
			map[string]any{"code": "B"},
		}
		res := schema.NormalizeStandards(raw)
		require.Len(t, res, 2)
		assert.Equal(t, "A", res[0].Code)
		assert.Equal(t, "B", res[1].Code)
	})

	t.Run("manifest keeps extra fields", func(t *testing.T) {
		m := schema.NormalizeManifest(map[string]any{
			"version": "1.0",
			"subjects": []any{
				map[string]any{"subject_slug": "math"},
				map[string]any{"subject_slug": "pe"},
			},
		})
		assert.Equal(t, []string{"math", "pe"}, m.Slugs())
		assert.Equal(t, "1.0", m.Extra["version"])
	})
}
