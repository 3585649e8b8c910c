// Package schema provides the canonical data types of the standards
// dataset and functions that normalize raw JSON records into them.
//
// Normalization is the single point where uncertainty about missing or
// mistyped fields is absorbed: every normalized value has all of its fields
// set, string fields default to "", array fields are never nil.
package schema

import "strings"

// Standard is one coded curriculum requirement.
type Standard struct {
	// ID defaults to Code.
	ID string `json:"id"`
	// Code is unique across all subjects, for example ML-H1-ENR-001.
	Code string `json:"code"`

	SubjectSlug string `json:"subject_slug"`
	Subject     string `json:"subject"`
	Domain      string `json:"domain"`
	Subdomain   string `json:"subdomain"`

	GradeBand  string `json:"grade_band"`
	GradeRange string `json:"grade_range"`
	Grade      string `json:"grade"`

	Standard               string `json:"standard"`
	Context                string `json:"context"`
	Practice               string `json:"practice"`
	TeachingTip            string `json:"teaching_tip"`
	AssessmentEvidenceType string `json:"assessment_evidence_type"`

	// PreviousCode and NextCode keep newline-joined lists of codes.
	PreviousCode string `json:"previous_code"`
	NextCode     string `json:"next_code"`

	TSPrimary    []string `json:"ts_primary"`
	TSSecondary  []string `json:"ts_secondary"`
	TSRationale  string   `json:"ts_rationale"`
	TSConfidence string   `json:"ts_confidence"`
	TSTagSource  string   `json:"ts_tag_source"`

	ArtDiscipline  string `json:"art_discipline"`
	Discipline     string `json:"discipline"`
	MaterialsTools string `json:"materials_tools"`
	SafetyNotes    string `json:"safety_notes"`
	Project        string `json:"project"`

	// Resources is reserved for teaching materials attached later.
	Resources []any `json:"resources"`
}

// PreviousCodes splits PreviousCode into separate codes.
func (s Standard) PreviousCodes() []string {
	return splitCodes(s.PreviousCode)
}

// NextCodes splits NextCode into separate codes.
func (s Standard) NextCodes() []string {
	return splitCodes(s.NextCode)
}

// Skills returns primary and then secondary skill tags.
func (s Standard) Skills() []SkillCode {
	res := make([]SkillCode, 0, len(s.TSPrimary)+len(s.TSSecondary))
	for _, v := range s.TSPrimary {
		res = append(res, SkillCode(v))
	}
	for _, v := range s.TSSecondary {
		res = append(res, SkillCode(v))
	}
	return res
}

// Skill is a transferable skill (competency) such as TS1.
type Skill struct {
	Code             string `json:"code"`
	NameCN           string `json:"name_cn"`
	NameEN           string `json:"name_en"`
	TaglineCN        string `json:"tagline_cn"`
	DefinitionCN     string `json:"definition_cn"`
	ProgressionNotes string `json:"progression_notes"`

	LookFors                 []string   `json:"look_fors"`
	TeacherMoves             []string   `json:"teacher_moves"`
	ChinaCoreLiteracyMapping []string   `json:"china_core_literacy_mapping"`
	Subskills                []Subskill `json:"subskills"`
}

// Subskill returns a sub-skill by its code.
func (s Skill) Subskill(code string) (Subskill, bool) {
	for _, v := range s.Subskills {
		if v.Code == code {
			return v, true
		}
	}
	return Subskill{}, false
}

// Subskill is a refinement of a Skill, for example TS2.1.
type Subskill struct {
	Code             string   `json:"code"`
	NameCN           string   `json:"name_cn"`
	NameEN           string   `json:"name_en"`
	TaglineCN        string   `json:"tagline_cn"`
	DefinitionCN     string   `json:"definition_cn"`
	ProgressionNotes string   `json:"progression_notes"`
	LookFors         []string `json:"look_fors"`
	TeacherMoves     []string `json:"teacher_moves"`
}

// SubjectMeta keeps descriptive texts about a subject.
type SubjectMeta struct {
	SubjectSlug      string `json:"subject_slug"`
	SubjectCN        string `json:"subject_cn"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	StructureNotes   string `json:"structure_notes"`
}

// ManifestSubject is a subject entry of the manifest.
type ManifestSubject struct {
	Subject     string         `json:"subject"`
	SubjectSlug string         `json:"subject_slug"`
	RecordCount int            `json:"record_count"`
	File        string         `json:"file"`
	Domains     map[string]any `json:"domains"`
	GradeBands  map[string]any `json:"grade_bands"`
}

// Manifest is the lightweight top-level index of all subjects.
type Manifest struct {
	Subjects []ManifestSubject `json:"subjects"`
	// Extra keeps the rest of the manifest document untouched.
	Extra map[string]any `json:"-"`
}

// Slugs returns subject slugs in manifest order.
func (m *Manifest) Slugs() []string {
	if m == nil {
		return nil
	}
	res := make([]string, len(m.Subjects))
	for i, v := range m.Subjects {
		res[i] = v.SubjectSlug
	}
	return res
}

// SubjectStats summarizes one subject document.
type SubjectStats struct {
	// Total is the number of standards in the subject document.
	Total int `json:"total"`
	// Domains is the number of distinct non-empty domains.
	Domains int `json:"domains"`
	// GradeBands is a histogram of grade bands.
	GradeBands map[string]int `json:"grade_bands"`
	// SkillCoverage counts skill tags by their main code.
	SkillCoverage map[string]int `json:"skill_coverage"`
}

func splitCodes(s string) []string {
	var res []string
	for _, v := range strings.Split(s, "\n") {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
