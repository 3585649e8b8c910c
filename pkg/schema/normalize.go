package schema

import (
	"encoding/json"
	"reflect"
	"strconv"
)

// NormalizeStandard converts a raw record into a Standard.
// It returns nil only when raw is nil. The raw map is never modified.
func NormalizeStandard(raw map[string]any) *Standard {
	if raw == nil {
		return nil
	}

	code := text(raw, "code")
	id := text(raw, "id")
	if id == "" {
		id = code
	}

	return &Standard{
		ID:   id,
		Code: code,

		SubjectSlug: text(raw, "subject_slug"),
		Subject:     text(raw, "subject"),
		Domain:      text(raw, "domain"),
		Subdomain:   text(raw, "subdomain"),

		GradeBand:  text(raw, "grade_band"),
		GradeRange: text(raw, "grade_range"),
		Grade:      text(raw, "grade"),

		Standard:               text(raw, "standard"),
		Context:                text(raw, "context"),
		Practice:               text(raw, "practice"),
		TeachingTip:            text(raw, "teaching_tip"),
		AssessmentEvidenceType: text(raw, "assessment_evidence_type"),

		PreviousCode: text(raw, "previous_code"),
		NextCode:     text(raw, "next_code"),

		TSPrimary:    EnsureStrings(raw["ts_primary"]),
		TSSecondary:  EnsureStrings(raw["ts_secondary"]),
		TSRationale:  text(raw, "ts_rationale"),
		TSConfidence: text(raw, "ts_confidence"),
		TSTagSource:  text(raw, "ts_tag_source"),

		ArtDiscipline:  text(raw, "art_discipline"),
		Discipline:     text(raw, "discipline"),
		MaterialsTools: text(raw, "materials_tools"),
		SafetyNotes:    text(raw, "safety_notes"),
		Project:        text(raw, "project"),

		Resources: EnsureArray(raw["resources"]),
	}
}

// NormalizeSkill converts a raw competency record into a Skill.
func NormalizeSkill(raw map[string]any) *Skill {
	if raw == nil {
		return nil
	}

	var subskills []Subskill
	for _, v := range EnsureArray(raw["subskills"]) {
		if sub := NormalizeSubskill(asRecord(v)); sub != nil {
			subskills = append(subskills, *sub)
		}
	}
	if subskills == nil {
		subskills = []Subskill{}
	}

	return &Skill{
		Code:                     text(raw, "code"),
		NameCN:                   text(raw, "name_cn"),
		NameEN:                   text(raw, "name_en"),
		TaglineCN:                text(raw, "tagline_cn"),
		DefinitionCN:             text(raw, "definition_cn"),
		ProgressionNotes:         text(raw, "progression_notes"),
		LookFors:                 EnsureStrings(raw["look_fors"]),
		TeacherMoves:             EnsureStrings(raw["teacher_moves"]),
		ChinaCoreLiteracyMapping: EnsureStrings(raw["china_core_literacy_mapping"]),
		Subskills:                subskills,
	}
}

// NormalizeSubskill converts a raw sub-skill record into a Subskill.
func NormalizeSubskill(raw map[string]any) *Subskill {
	if raw == nil {
		return nil
	}

	return &Subskill{
		Code:             text(raw, "code"),
		NameCN:           text(raw, "name_cn"),
		NameEN:           text(raw, "name_en"),
		TaglineCN:        text(raw, "tagline_cn"),
		DefinitionCN:     text(raw, "definition_cn"),
		ProgressionNotes: text(raw, "progression_notes"),
		LookFors:         EnsureStrings(raw["look_fors"]),
		TeacherMoves:     EnsureStrings(raw["teacher_moves"]),
	}
}

// NormalizeSubjectMeta converts a raw subject description.
func NormalizeSubjectMeta(raw map[string]any) *SubjectMeta {
	if raw == nil {
		return nil
	}

	return &SubjectMeta{
		SubjectSlug:      text(raw, "subject_slug"),
		SubjectCN:        text(raw, "subject_cn"),
		ShortDescription: text(raw, "short_description"),
		LongDescription:  text(raw, "long_description"),
		StructureNotes:   text(raw, "structure_notes"),
	}
}

// NormalizeManifestSubject converts a raw manifest entry.
func NormalizeManifestSubject(raw map[string]any) *ManifestSubject {
	if raw == nil {
		return nil
	}

	return &ManifestSubject{
		Subject:     text(raw, "subject"),
		SubjectSlug: text(raw, "subject_slug"),
		RecordCount: integer(raw, "record_count"),
		File:        text(raw, "file"),
		Domains:     record(raw, "domains"),
		GradeBands:  record(raw, "grade_bands"),
	}
}

// NormalizeStandards normalizes a raw sequence of standards.
// A value that is not a sequence is treated as empty, elements that are
// not JSON objects are dropped.
func NormalizeStandards(raw any) []Standard {
	res := []Standard{}
	for _, v := range EnsureArray(raw) {
		if std := NormalizeStandard(asRecord(v)); std != nil {
			res = append(res, *std)
		}
	}
	return res
}

// NormalizeSkills normalizes a raw sequence of competencies.
func NormalizeSkills(raw any) []Skill {
	res := []Skill{}
	for _, v := range EnsureArray(raw) {
		if sk := NormalizeSkill(asRecord(v)); sk != nil {
			res = append(res, *sk)
		}
	}
	return res
}

// NormalizeSubjectsMeta normalizes a raw sequence of subject descriptions.
func NormalizeSubjectsMeta(raw any) []SubjectMeta {
	res := []SubjectMeta{}
	for _, v := range EnsureArray(raw) {
		if m := NormalizeSubjectMeta(asRecord(v)); m != nil {
			res = append(res, *m)
		}
	}
	return res
}

// NormalizeManifest builds a Manifest from a raw manifest document.
func NormalizeManifest(raw map[string]any) *Manifest {
	res := &Manifest{
		Subjects: []ManifestSubject{},
		Extra:    map[string]any{},
	}
	for k, v := range raw {
		if k == "subjects" {
			continue
		}
		res.Extra[k] = v
	}
	for _, v := range EnsureArray(raw["subjects"]) {
		if sub := NormalizeManifestSubject(asRecord(v)); sub != nil {
			res.Subjects = append(res.Subjects, *sub)
		}
	}
	return res
}

// EnsureArray always returns a slice. Slices pass through, nil and ""
// become an empty slice, any other value becomes a one-element slice.
func EnsureArray(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		if t == nil {
			return []any{}
		}
		return t
	case string:
		if t == "" {
			return []any{}
		}
		return []any{t}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = rv.Index(i).Interface()
		}
		return res
	}
	return []any{v}
}

// EnsureStrings is EnsureArray for lists of texts.
// Elements are rendered as text, nil elements are dropped.
func EnsureStrings(v any) []string {
	if ss, ok := v.([]string); ok && ss != nil {
		return ss
	}
	arr := EnsureArray(v)
	res := make([]string, 0, len(arr))
	for _, e := range arr {
		if e == nil {
			continue
		}
		res = append(res, toText(e))
	}
	return res
}

func asRecord(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func text(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	return toText(v)
}

// toText renders falsy values (empty string, 0, false) as "".
func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(bs)
}

func integer(raw map[string]any, key string) int {
	switch t := raw[key].(type) {
	case float64:
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(t); err == nil {
			return i
		}
	}
	return 0
}

func record(raw map[string]any, key string) map[string]any {
	if m, ok := raw[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
