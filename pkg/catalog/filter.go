package catalog

import (
	"slices"
	"strings"

	"github.com/gnames/tsbrowse/pkg/schema"
)

// OtherDomain labels standards without a domain.
const OtherDomain = "其他"

// DomainGroup keeps standards of one domain.
type DomainGroup struct {
	Domain    string            `json:"domain" yaml:"domain"`
	Standards []schema.Standard `json:"standards" yaml:"standards"`
}

// FilterStandards keeps standards matching every non-empty dimension of
// filters. Input order is preserved and the input is not modified.
//
// Skills match when any primary or secondary tag is related to any
// requested skill, where related means one code is a prefix of the other.
// Keyword is a case-insensitive substring search in standard, context,
// practice and teaching tip texts.
func FilterStandards(
	standards []schema.Standard,
	filters schema.Filters,
) []schema.Standard {
	res := make([]schema.Standard, 0, len(standards))
	kw := strings.ToLower(strings.TrimSpace(filters.Keyword))

	for _, v := range standards {
		if len(filters.Subjects) > 0 &&
			!slices.Contains(filters.Subjects, v.SubjectSlug) {
			continue
		}
		if len(filters.GradeBands) > 0 &&
			!slices.Contains(filters.GradeBands, v.GradeBand) {
			continue
		}
		if len(filters.Domains) > 0 &&
			!slices.Contains(filters.Domains, v.Domain) {
			continue
		}
		if len(filters.Skills) > 0 && !matchSkills(v, filters.Skills) {
			continue
		}
		if kw != "" && !matchKeyword(v, kw) {
			continue
		}
		res = append(res, v)
	}
	return res
}

// GroupByDomain groups standards by domain. Groups follow the order in
// which domains are first seen.
func GroupByDomain(standards []schema.Standard) []DomainGroup {
	var res []DomainGroup
	idx := make(map[string]int)
	for _, v := range standards {
		domain := v.Domain
		if domain == "" {
			domain = OtherDomain
		}
		i, ok := idx[domain]
		if !ok {
			i = len(res)
			idx[domain] = i
			res = append(res, DomainGroup{Domain: domain})
		}
		res[i].Standards = append(res[i].Standards, v)
	}
	return res
}

// IntersectCodes returns standards with given codes in the order of
// codes. Unknown codes are skipped.
func IntersectCodes(
	standards []schema.Standard,
	codes []string,
) []schema.Standard {
	byCode := make(map[string]schema.Standard, len(standards))
	for _, v := range standards {
		byCode[v.Code] = v
	}
	res := make([]schema.Standard, 0, len(codes))
	for _, code := range codes {
		if v, ok := byCode[code]; ok {
			res = append(res, v)
		}
	}
	return res
}

func matchSkills(s schema.Standard, skills []string) bool {
	for _, tag := range s.Skills() {
		for _, skill := range skills {
			if tag.RelatedTo(schema.SkillCode(skill)) {
				return true
			}
		}
	}
	return false
}

func matchKeyword(s schema.Standard, kw string) bool {
	for _, txt := range []string{s.Standard, s.Context, s.Practice, s.TeachingTip} {
		if strings.Contains(strings.ToLower(txt), kw) {
			return true
		}
	}
	return false
}
