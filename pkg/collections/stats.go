package collections

import "github.com/gnames/tsbrowse/pkg/schema"

// Unknown labels standards with an empty classifying field.
const Unknown = "未知"

// Stats summarizes standards of a collection.
type Stats struct {
	Total       int            `json:"total" yaml:"total"`
	BySubject   map[string]int `json:"bySubject" yaml:"by_subject"`
	ByGradeBand map[string]int `json:"byGradeBand" yaml:"by_grade_band"`
	ByDomain    map[string]int `json:"byDomain" yaml:"by_domain"`
	// BySkill counts primary and secondary tags by main skill code.
	BySkill map[string]int `json:"bySkill" yaml:"by_skill"`
}

// NewStats computes Stats for resolved standards.
func NewStats(standards []schema.Standard) Stats {
	res := Stats{
		Total:       len(standards),
		BySubject:   make(map[string]int),
		ByGradeBand: make(map[string]int),
		ByDomain:    make(map[string]int),
		BySkill:     make(map[string]int),
	}
	for _, v := range standards {
		res.BySubject[orUnknown(v.Subject)]++
		res.ByGradeBand[orUnknown(v.GradeBand)]++
		res.ByDomain[orUnknown(v.Domain)]++
		for _, sk := range v.Skills() {
			res.BySkill[string(sk.Main())]++
		}
	}
	return res
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
