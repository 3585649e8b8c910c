package catalog

// SlotState is the state of one cache slot. Ready is terminal.
type SlotState int

const (
	// Empty slot was never fetched or its last fetch failed.
	Empty SlotState = iota
	// Pending slot has a fetch in flight.
	Pending
	// Ready slot holds a value.
	Ready
)

// Keys of cache slots.
const (
	KeyManifest        = "manifest"
	KeySubjectsMeta    = "subjects_meta"
	KeySkillsMeta      = "skills_meta"
	KeyAllStandards    = "all_standards"
	KeyCodeToSubject   = "code_to_subject"
	KeySkillToSubjects = "skill_to_subjects"
	KeySubjectStats    = "subject_stats"
)

// SubjectKey returns the slot key of a subject document.
func SubjectKey(slug string) string {
	return "subject:" + slug
}

func (s SlotState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	default:
		return "empty"
	}
}
