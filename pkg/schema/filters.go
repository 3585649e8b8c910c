package schema

// Filters is the filter state shared by search, compare and query
// serialization. Empty fields mean no constraint on that dimension.
type Filters struct {
	// Mode is "compare" when the state describes a comparison.
	Mode       string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Subjects   []string `json:"subjects" yaml:"subjects"`
	GradeBands []string `json:"gradeBands" yaml:"grade_bands"`
	Domains    []string `json:"domains,omitempty" yaml:"domains,omitempty"`
	Skills     []string `json:"skills" yaml:"skills"`
	Keyword    string   `json:"keyword" yaml:"keyword"`
}

// ModeCompare is the only recognized value of Filters.Mode.
const ModeCompare = "compare"
