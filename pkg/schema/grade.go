package schema

import "slices"

// Grade bands of the dataset.
const (
	H1 = "H1"
	H2 = "H2"
	H3 = "H3"
)

// GradeBandInfo describes a grade band for display.
type GradeBandInfo struct {
	Label string
	Range string
	Order int
}

// GradeBands lists known grade bands with their display data.
var GradeBands = map[string]GradeBandInfo{
	H1: {Label: "第一学段", Range: "1-2年级", Order: 1},
	H2: {Label: "第二学段", Range: "3-6年级", Order: 2},
	H3: {Label: "第三学段", Range: "7-9年级", Order: 3},
}

// GradeBandOrder returns the display position of a band. Unknown bands
// go after the known ones.
func GradeBandOrder(band string) int {
	if info, ok := GradeBands[band]; ok {
		return info.Order
	}
	return 99
}

// IsGradeBand is true for H1, H2 and H3.
func IsGradeBand(band string) bool {
	_, ok := GradeBands[band]
	return ok
}

// SortGradeBands returns a new slice with bands in H1, H2, H3 order.
// The sort is stable, unknown bands keep their relative order at the end.
func SortGradeBands(bands []string) []string {
	res := slices.Clone(bands)
	if res == nil {
		return []string{}
	}
	slices.SortStableFunc(res, func(a, b string) int {
		return GradeBandOrder(a) - GradeBandOrder(b)
	})
	return res
}
