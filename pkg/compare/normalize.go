package compare

import (
	"slices"

	"github.com/gnames/tsbrowse/pkg/schema"
)

// Normalized is a selection after Normalize.
type Normalized struct {
	Selection
	Message string
	// Changed is true when the result differs from the draft,
	// including a different order of grade bands.
	Changed bool
}

// Normalize cleans a draft selection before it is committed. It keeps
// the most recent items over the maximum, resolves several subjects
// with several bands using lastChanged (subjects win when it is
// DimensionNone), and sorts grade bands. Normalize is idempotent.
func Normalize(draft Selection, lastChanged Dimension) Normalized {
	subjects := clone(draft.Subjects)
	bands := clone(draft.GradeBands)
	var msg string
	var changed bool

	if len(subjects) > MaxSubjects {
		subjects = keepLast(subjects, MaxSubjects)
		msg = MsgMaxSubjects
		changed = true
	}

	if len(bands) > MaxGradeBands {
		bands = keepLast(bands, MaxGradeBands)
		msg = MsgMaxGradeBands
		changed = true
	}

	if len(subjects) > 1 && len(bands) > 1 {
		changed = true
		if lastChanged == DimensionBands {
			subjects = subjects[:1]
			msg = MsgOneSubjectForBands
		} else {
			bands = bands[:1]
			msg = MsgOneBandForSubjects
		}
	}

	sorted := schema.SortGradeBands(bands)
	if !slices.Equal(sorted, bands) {
		changed = true
	}

	return Normalized{
		Selection: Selection{Subjects: subjects, GradeBands: sorted},
		Message:   msg,
		Changed:   changed,
	}
}

// EnsureSafe returns a copy of filters where every list is non-nil.
// A nil filters value gives empty filters.
func EnsureSafe(f *schema.Filters) schema.Filters {
	if f == nil {
		return schema.Filters{
			Subjects:   []string{},
			GradeBands: []string{},
			Domains:    []string{},
			Skills:     []string{},
		}
	}
	return schema.Filters{
		Mode:       f.Mode,
		Subjects:   clone(f.Subjects),
		GradeBands: clone(f.GradeBands),
		Domains:    clone(f.Domains),
		Skills:     clone(f.Skills),
		Keyword:    f.Keyword,
	}
}

// FiltersDiffer compares subjects, grade bands and skills of two filter
// states as sets. Order of items does not matter.
func FiltersDiffer(a, b *schema.Filters) bool {
	sa, sb := EnsureSafe(a), EnsureSafe(b)
	return !sameSet(sa.Subjects, sb.Subjects) ||
		!sameSet(sa.GradeBands, sb.GradeBands) ||
		!sameSet(sa.Skills, sb.Skills)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	return true
}
