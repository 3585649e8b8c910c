package ioloader

import (
	"maps"
	"slices"

	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/schema"
)

// Manifest implements catalog.Getter. It is nil until the manifest is
// loaded.
func (l *loader) Manifest() *schema.Manifest {
	res, _ := get[*schema.Manifest](l, catalog.KeyManifest)
	return res
}

func (l *loader) SubjectsFromManifest() []schema.ManifestSubject {
	if m := l.Manifest(); m != nil {
		return m.Subjects
	}
	return []schema.ManifestSubject{}
}

func (l *loader) SubjectsMeta() []schema.SubjectMeta {
	if res, ok := get[[]schema.SubjectMeta](l, catalog.KeySubjectsMeta); ok {
		return res
	}
	return []schema.SubjectMeta{}
}

func (l *loader) SkillsMeta() []schema.Skill {
	if doc, ok := get[skillsDoc](l, catalog.KeySkillsMeta); ok {
		return doc.skills
	}
	return []schema.Skill{}
}

func (l *loader) SkillsInfo() map[string]any {
	if doc, ok := get[skillsDoc](l, catalog.KeySkillsMeta); ok {
		return doc.info
	}
	return map[string]any{}
}

func (l *loader) SubjectMetaBySlug(slug string) (schema.SubjectMeta, bool) {
	for _, v := range l.SubjectsMeta() {
		if v.SubjectSlug == slug {
			return v, true
		}
	}
	return schema.SubjectMeta{}, false
}

func (l *loader) SkillByCode(code string) (schema.Skill, bool) {
	for _, v := range l.SkillsMeta() {
		if v.Code == code {
			return v, true
		}
	}
	return schema.Skill{}, false
}

func (l *loader) SubjectStandards(slug string) []schema.Standard {
	res, ok := get[[]schema.Standard](l, catalog.SubjectKey(slug))
	if !ok {
		return []schema.Standard{}
	}
	return res
}

func (l *loader) DomainsForSubject(slug string) []string {
	for _, v := range l.SubjectsFromManifest() {
		if v.SubjectSlug == slug {
			if len(v.Domains) == 0 {
				break
			}
			return slices.Sorted(maps.Keys(v.Domains))
		}
	}
	return []string{}
}

func (l *loader) SubjectStats(slug string) (schema.SubjectStats, bool) {
	res, ok := l.AllSubjectStats()[slug]
	return res, ok
}

func (l *loader) AllSubjectStats() map[string]schema.SubjectStats {
	res, ok := get[map[string]schema.SubjectStats](l, catalog.KeySubjectStats)
	if !ok {
		return map[string]schema.SubjectStats{}
	}
	return res
}
