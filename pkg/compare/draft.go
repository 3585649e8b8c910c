package compare

import "github.com/gnames/tsbrowse/pkg/schema"

// Draft is a filter state that is being edited and is not applied yet.
type Draft struct {
	Filters     schema.Filters
	LastChanged Dimension
}

// Committed is a validated, normalized filter state.
type Committed struct {
	Filters schema.Filters
	Mode    Mode
	// Message explains adjustments made while committing, if any.
	Message string
}

// ValidationError is returned by Commit for a draft that stays invalid
// after normalization.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewDraft starts editing from committed filters.
func NewDraft(c Committed) *Draft {
	return &Draft{Filters: EnsureSafe(&c.Filters)}
}

// Apply runs a toggle on the draft and remembers the changed
// dimension. It returns the advisory message of the edit.
func (d *Draft) Apply(cmd Toggle) string {
	sel := Selection{
		Subjects:   d.Filters.Subjects,
		GradeBands: d.Filters.GradeBands,
	}
	ch := Apply(sel, cmd)
	d.Filters.Subjects = ch.Subjects
	d.Filters.GradeBands = ch.GradeBands
	d.LastChanged = cmd.Dimension
	return ch.Message
}

// ToggleSkill flips a skill in the draft.
func (d *Draft) ToggleSkill(code string) {
	d.Filters.Skills = ToggleSkill(d.Filters.Skills, code)
}

// Pending is true when the draft differs from the applied state.
func (d *Draft) Pending(applied Committed) bool {
	return FiltersDiffer(&d.Filters, &applied.Filters)
}

// Commit normalizes a draft and validates the result.
func Commit(d Draft) (Committed, error) {
	f := EnsureSafe(&d.Filters)
	n := Normalize(Selection{
		Subjects:   f.Subjects,
		GradeBands: f.GradeBands,
	}, d.LastChanged)

	if !IsValidSelection(n.Subjects, n.GradeBands) {
		return Committed{}, &ValidationError{
			Message: ValidationMessage(n.Subjects, n.GradeBands),
		}
	}

	f.Mode = schema.ModeCompare
	f.Subjects = n.Subjects
	f.GradeBands = n.GradeBands
	return Committed{
		Filters: f,
		Mode:    ModeOf(n.Subjects, n.GradeBands),
		Message: n.Message,
	}, nil
}
