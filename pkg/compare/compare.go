// Package compare enforces the selection rules of compare mode.
//
// A comparison is either 1-3 subjects at exactly one grade band
// (comparing subjects) or exactly one subject at 1-3 grade bands
// (comparing grade bands). Several subjects together with several grade
// bands are never allowed. All functions are pure and never modify their
// arguments; invalid selections are corrected and explained, not rejected.
package compare

import (
	"fmt"
	"slices"

	"github.com/gnames/tsbrowse/pkg/schema"
)

// Maximum allowed selections.
const (
	MaxSubjects   = 3
	MaxGradeBands = 3
)

// Advisory messages returned with corrected selections.
var (
	MsgChooseBoth         = "Choose a subject and a grade band"
	MsgChooseSubject      = "Choose at least 1 subject"
	MsgChooseBand         = "Choose 1 grade band"
	MsgMaxSubjects        = fmt.Sprintf("Choose at most %d subjects", MaxSubjects)
	MsgMaxGradeBands      = fmt.Sprintf("Choose at most %d grade bands", MaxGradeBands)
	MsgOneBandForSubjects = "Only 1 grade band can be selected " +
		"when comparing several subjects"
	MsgOneSubjectForBands = "Only 1 subject can be selected " +
		"when comparing several grade bands"
)

// Mode tells what a valid selection compares.
type Mode string

const (
	// ModeNone is returned for invalid selections.
	ModeNone Mode = ""
	// ModeSubjects compares several subjects at one grade band.
	ModeSubjects Mode = "subjects"
	// ModeGradeBands compares grade bands of one subject.
	ModeGradeBands Mode = "gradeBands"
)

// Dimension names the part of a selection that was changed last.
type Dimension string

const (
	DimensionNone     Dimension = ""
	DimensionSubjects Dimension = "subjects"
	DimensionBands    Dimension = "bands"
)

// Selection is the part of the filter state under the cardinality rule.
type Selection struct {
	Subjects   []string
	GradeBands []string
}

// Change is a selection after an edit, with an optional explanation of
// how the edit was adjusted.
type Change struct {
	Selection
	Message string
}

// DefaultFilters returns the initial compare state.
func DefaultFilters() schema.Filters {
	return schema.Filters{
		Mode:       schema.ModeCompare,
		Subjects:   []string{"it"},
		GradeBands: []string{schema.H2},
		Skills:     []string{},
	}
}

// IsValidSelection is true for 1-3 subjects with 1 band or for
// 1 subject with 1-3 bands.
func IsValidSelection(subjects, gradeBands []string) bool {
	sc, bc := len(subjects), len(gradeBands)

	if sc == 0 || bc == 0 {
		return false
	}
	if sc <= MaxSubjects && bc == 1 {
		return true
	}
	if sc == 1 && bc <= MaxGradeBands {
		return true
	}
	return false
}

// ValidationMessage explains why a selection is invalid. It returns
// an empty string when no rule in its list is broken.
func ValidationMessage(subjects, gradeBands []string) string {
	sc, bc := len(subjects), len(gradeBands)

	switch {
	case sc == 0 && bc == 0:
		return MsgChooseBoth
	case sc == 0:
		return MsgChooseSubject
	case bc == 0:
		return MsgChooseBand
	case sc > MaxSubjects:
		return MsgMaxSubjects
	case bc > MaxGradeBands:
		return MsgMaxGradeBands
	}
	return ""
}

// ModeOf classifies a selection. Several subjects mean comparing
// subjects, anything else valid means comparing grade bands.
func ModeOf(subjects, gradeBands []string) Mode {
	if !IsValidSelection(subjects, gradeBands) {
		return ModeNone
	}
	if len(subjects) > 1 {
		return ModeSubjects
	}
	return ModeGradeBands
}

// AddSubject toggles a subject. See Apply.
func AddSubject(current Selection, slug string) Change {
	return Apply(current, Toggle{Dimension: DimensionSubjects, Item: slug})
}

// AddGradeBand toggles a grade band. See Apply.
func AddGradeBand(current Selection, band string) Change {
	return Apply(current, Toggle{Dimension: DimensionBands, Item: band})
}

// ToggleSkill adds a missing skill code or removes a present one.
// Skills are not part of the cardinality rule.
func ToggleSkill(skills []string, code string) []string {
	if slices.Contains(skills, code) {
		return without(skills, code)
	}
	return append(slices.Clone(skills), code)
}

// SortGradeBands orders bands as H1, H2, H3.
func SortGradeBands(bands []string) []string {
	return schema.SortGradeBands(bands)
}

func without(items []string, item string) []string {
	res := make([]string, 0, len(items))
	for _, v := range items {
		if v != item {
			res = append(res, v)
		}
	}
	return res
}

func clone(items []string) []string {
	if items == nil {
		return []string{}
	}
	return slices.Clone(items)
}

// keepLast keeps the n most recent items of a selection.
func keepLast(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return slices.Clone(items[len(items)-n:])
}
