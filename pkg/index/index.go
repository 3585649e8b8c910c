// Package index derives lookup indexes from the full standards corpus.
//
// The indexes are built once, offline, and are read-only afterwards:
//   - code_to_subject maps a standard code to its subject slug;
//   - skill_to_subjects maps a main skill code to sorted subject slugs;
//   - subject_stats summarizes every subject document.
package index

import (
	"slices"

	"github.com/gnames/tsbrowse/pkg/schema"
)

// File names of the indexes inside the indexes/ directory.
const (
	CodeToSubjectFile   = "code_to_subject.json"
	SkillToSubjectsFile = "skill_to_subjects.json"
	SubjectStatsFile    = "subject_stats.json"
)

// SubjectDocument is a by_subject/<slug>.json document.
type SubjectDocument struct {
	// Slug comes from the file name, not from the records.
	Slug string
	// Standards are raw records as decoded from JSON.
	Standards any
}

// Duplicate reports a code that appears in more than one place.
// The last occurrence wins in CodeToSubject.
type Duplicate struct {
	Code     string
	Previous string
	Current  string
}

// Indexes are the derived lookup tables.
type Indexes struct {
	CodeToSubject   map[string]string
	SkillToSubjects map[string][]string
	SubjectStats    map[string]schema.SubjectStats
	Duplicates      []Duplicate
}

// Build scans documents in the given order and returns their indexes.
// Records with an empty code are counted in totals but are otherwise
// skipped.
func Build(docs []SubjectDocument) *Indexes {
	res := &Indexes{
		CodeToSubject:   make(map[string]string),
		SkillToSubjects: make(map[string][]string),
		SubjectStats:    make(map[string]schema.SubjectStats),
	}
	skills := make(map[string]map[string]struct{})

	for _, doc := range docs {
		raw := schema.EnsureArray(doc.Standards)
		stats := schema.SubjectStats{
			Total:         len(raw),
			GradeBands:    make(map[string]int),
			SkillCoverage: make(map[string]int),
		}
		domains := make(map[string]struct{})

		for _, std := range schema.NormalizeStandards(raw) {
			if std.Code == "" {
				continue
			}

			if prev, ok := res.CodeToSubject[std.Code]; ok {
				res.Duplicates = append(res.Duplicates, Duplicate{
					Code:     std.Code,
					Previous: prev,
					Current:  doc.Slug,
				})
			}
			res.CodeToSubject[std.Code] = doc.Slug

			for _, sk := range std.Skills() {
				if sk == "" {
					continue
				}
				main := string(sk.Main())
				if _, ok := skills[main]; !ok {
					skills[main] = make(map[string]struct{})
				}
				skills[main][doc.Slug] = struct{}{}
				stats.SkillCoverage[main]++
			}

			if std.Domain != "" {
				domains[std.Domain] = struct{}{}
			}
			if std.GradeBand != "" {
				stats.GradeBands[std.GradeBand]++
			}
		}

		stats.Domains = len(domains)
		res.SubjectStats[doc.Slug] = stats
	}

	for skill, slugs := range skills {
		list := make([]string, 0, len(slugs))
		for slug := range slugs {
			list = append(list, slug)
		}
		slices.Sort(list)
		res.SkillToSubjects[skill] = list
	}

	return res
}

// Summary returns counts used in build reports.
func (idx *Indexes) Summary() (codes, skills, subjects int) {
	return len(idx.CodeToSubject), len(idx.SkillToSubjects), len(idx.SubjectStats)
}
