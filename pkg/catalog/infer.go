package catalog

import "strings"

var codePrefixes = map[string]string{
	"CNC": "chinese",
	"ML":  "math",
	"ENG": "english",
	"SCI": "science",
	"IT":  "it",
	"MLW": "morality_law",
	"ART": "arts",
	"LAB": "labor",
	"PE":  "pe",
}

// InferSubjectFromCode guesses a subject slug from the prefix of a
// standard code, for example ML-H2-DSJ-005 belongs to math. It returns
// an empty string for unknown prefixes.
func InferSubjectFromCode(code string) string {
	if code == "" {
		return ""
	}
	prefix, _, _ := strings.Cut(code, "-")
	return codePrefixes[strings.ToUpper(prefix)]
}
