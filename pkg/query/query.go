// Package query maps filter state to URL query strings and back.
//
// Parameter names are fixed: mode, subjects, bands, skills and q.
// An absent parameter means no constraint on that dimension.
package query

import (
	"net/url"
	"strings"

	"github.com/gnames/tsbrowse/pkg/schema"
)

// Query parameter names.
const (
	ParamMode     = "mode"
	ParamSubjects = "subjects"
	ParamBands    = "bands"
	ParamSkills   = "skills"
	ParamKeyword  = "q"
)

// DefaultBasePath is the path of the search page.
const DefaultBasePath = "/search"

// Parse reads filters from URL values. Any parameter can be missing.
// Lists are split by comma, trimmed, and empty tokens dropped. Grade
// bands and skill codes are upper-cased.
func Parse(vals url.Values) schema.Filters {
	res := Empty()
	if vals.Get(ParamMode) == schema.ModeCompare {
		res.Mode = schema.ModeCompare
	}
	res.Subjects = splitList(vals.Get(ParamSubjects), false)
	res.GradeBands = splitList(vals.Get(ParamBands), true)
	res.Skills = splitList(vals.Get(ParamSkills), true)
	res.Keyword = strings.TrimSpace(vals.Get(ParamKeyword))
	return res
}

// ParseQuery reads filters from a raw query string, with or without
// the leading '?'. Malformed input gives whatever could be parsed.
func ParseQuery(raw string) schema.Filters {
	raw = strings.TrimPrefix(raw, "?")
	// url.ParseQuery keeps every well-formed pair it finds.
	vals, _ := url.ParseQuery(raw)
	return Parse(vals)
}

// Serialize converts filters to a query string without the leading '?'.
// Empty parameters are omitted.
func Serialize(f schema.Filters) string {
	vals := url.Values{}
	if f.Mode == schema.ModeCompare {
		vals.Set(ParamMode, schema.ModeCompare)
	}
	if len(f.Subjects) > 0 {
		vals.Set(ParamSubjects, strings.Join(f.Subjects, ","))
	}
	if len(f.GradeBands) > 0 {
		vals.Set(ParamBands, strings.Join(f.GradeBands, ","))
	}
	if len(f.Skills) > 0 {
		vals.Set(ParamSkills, strings.Join(f.Skills, ","))
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		vals.Set(ParamKeyword, kw)
	}
	return vals.Encode()
}

// BuildShareableURL joins origin, base path and serialized filters.
// An empty basePath uses DefaultBasePath. There is no '?' when the
// query is empty.
func BuildShareableURL(origin, basePath string, f schema.Filters) string {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	origin = strings.TrimSuffix(origin, "/")
	qs := Serialize(f)
	if qs == "" {
		return origin + basePath
	}
	return origin + basePath + "?" + qs
}

func splitList(s string, upper bool) []string {
	res := []string{}
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if upper {
			v = strings.ToUpper(v)
		}
		res = append(res, v)
	}
	return res
}
