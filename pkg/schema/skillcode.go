package schema

import (
	"strconv"
	"strings"
)

// SkillCode is a transferable skill tag such as TS3 or TS3.2.
type SkillCode string

// Main returns the main skill code, the part before the first dot.
// TS1.2 becomes TS1, TS1 stays TS1.
func (c SkillCode) Main() SkillCode {
	s := string(c)
	if i := strings.Index(s, "."); i >= 0 {
		return SkillCode(s[:i])
	}
	return c
}

// IsMain is true for codes without a sub-skill part.
func (c SkillCode) IsMain() bool {
	return !strings.Contains(string(c), ".")
}

// RelatedTo is true when one code is a prefix of the other.
// It makes a main code filter match sub-skill tags and a sub-skill
// filter match main tags.
func (c SkillCode) RelatedTo(other SkillCode) bool {
	a, b := string(c), string(other)
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// Valid checks for TS<1-7> optionally followed by .<n>.
func (c SkillCode) Valid() bool {
	s := string(c)
	main, sub, hasSub := strings.Cut(s, ".")
	if len(main) != 3 || !strings.HasPrefix(main, "TS") {
		return false
	}
	if main[2] < '1' || main[2] > '7' {
		return false
	}
	if !hasSub {
		return true
	}
	n, err := strconv.Atoi(sub)
	return err == nil && n > 0
}

func (c SkillCode) String() string {
	return string(c)
}

// MainSkillCode is a shorthand for SkillCode(s).Main() as a string.
func MainSkillCode(s string) string {
	return string(SkillCode(s).Main())
}
