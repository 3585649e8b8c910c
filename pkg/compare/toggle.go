package compare

import "slices"

// Toggle is a command that flips membership of an item in one
// dimension of a selection.
type Toggle struct {
	Dimension Dimension
	Item      string
}

// Apply runs a Toggle: a selected item is deselected, a new item is
// selected.
func Apply(current Selection, cmd Toggle) Change {
	items := current.Subjects
	if cmd.Dimension == DimensionBands {
		items = current.GradeBands
	}
	if slices.Contains(items, cmd.Item) {
		return Change{Selection: Deselect(current, cmd.Dimension, cmd.Item)}
	}
	return Select(current, cmd.Dimension, cmd.Item)
}

// Deselect removes an item from a dimension. The other dimension
// stays as it is.
func Deselect(current Selection, dim Dimension, item string) Selection {
	res := Selection{
		Subjects:   clone(current.Subjects),
		GradeBands: clone(current.GradeBands),
	}
	switch dim {
	case DimensionSubjects:
		res.Subjects = without(res.Subjects, item)
	case DimensionBands:
		res.GradeBands = without(res.GradeBands, item)
	}
	return res
}

// Select appends an item to a dimension. When the dimension grows over
// its maximum, the oldest items are dropped. When both dimensions end up
// with several items, the other dimension collapses to its first item.
func Select(current Selection, dim Dimension, item string) Change {
	subjects := clone(current.Subjects)
	bands := clone(current.GradeBands)
	var msg string

	switch dim {
	case DimensionSubjects:
		if slices.Contains(subjects, item) {
			break
		}
		subjects = append(subjects, item)
		if len(subjects) > MaxSubjects {
			subjects = keepLast(subjects, MaxSubjects)
			msg = MsgMaxSubjects
		}
		if len(subjects) > 1 && len(bands) > 1 {
			bands = bands[:1]
			msg = MsgOneBandForSubjects
		}
	case DimensionBands:
		if slices.Contains(bands, item) {
			break
		}
		bands = append(bands, item)
		if len(bands) > MaxGradeBands {
			bands = keepLast(bands, MaxGradeBands)
			msg = MsgMaxGradeBands
		}
		if len(bands) > 1 && len(subjects) > 1 {
			subjects = subjects[:1]
			msg = MsgOneSubjectForBands
		}
	}

	return Change{
		Selection: Selection{Subjects: subjects, GradeBands: bands},
		Message:   msg,
	}
}
