package query

import (
	"fmt"
	"strings"

	"github.com/gnames/tsbrowse/pkg/schema"
)

// Names gives display names for codes used in Summary. Missing names
// fall back to codes.
type Names struct {
	Subjects   map[string]string
	GradeBands map[string]string
	Skills     map[string]string
}

// HasActiveFilters is true when any list is set or the keyword is not
// blank.
func HasActiveFilters(f schema.Filters) bool {
	return len(f.Subjects) > 0 ||
		len(f.GradeBands) > 0 ||
		len(f.Skills) > 0 ||
		strings.TrimSpace(f.Keyword) != ""
}

// Empty returns filters with empty, non-nil lists.
func Empty() schema.Filters {
	return schema.Filters{
		Subjects:   []string{},
		GradeBands: []string{},
		Domains:    []string{},
		Skills:     []string{},
	}
}

// Merge overrides base lists with non-empty override lists. A non-empty
// override keyword replaces the base keyword.
func Merge(base, override schema.Filters) schema.Filters {
	res := Empty()
	res.Mode = base.Mode
	if override.Mode != "" {
		res.Mode = override.Mode
	}
	res.Subjects = pick(base.Subjects, override.Subjects)
	res.GradeBands = pick(base.GradeBands, override.GradeBands)
	res.Domains = pick(base.Domains, override.Domains)
	res.Skills = pick(base.Skills, override.Skills)
	res.Keyword = base.Keyword
	if override.Keyword != "" {
		res.Keyword = override.Keyword
	}
	return res
}

// Summary returns human readable parts describing active filters.
func Summary(f schema.Filters, names Names) []string {
	var res []string
	if len(f.Subjects) > 0 {
		res = append(res, "Subjects: "+lookup(f.Subjects, names.Subjects))
	}
	if len(f.GradeBands) > 0 {
		res = append(res, "Grade bands: "+lookup(f.GradeBands, names.GradeBands))
	}
	if len(f.Skills) > 0 {
		res = append(res, "Skills: "+lookup(f.Skills, names.Skills))
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		res = append(res, fmt.Sprintf("Keyword: %q", kw))
	}
	return res
}

func pick(base, override []string) []string {
	if len(override) > 0 {
		return override
	}
	if base == nil {
		return []string{}
	}
	return base
}

func lookup(codes []string, names map[string]string) string {
	res := make([]string, len(codes))
	for i, v := range codes {
		res[i] = v
		if name, ok := names[v]; ok && name != "" {
			res[i] = name
		}
	}
	return strings.Join(res, ", ")
}
