// Package catalog defines how standards data is fetched, cached and
// filtered.
//
// Data lives in a static tree of JSON documents: a manifest, subject and
// skill metadata, one document per subject, and precomputed indexes.
// A Loader fetches each document at most once and keeps the normalized
// result for the rest of its life.
package catalog

import (
	"context"

	"github.com/gnames/tsbrowse/pkg/index"
	"github.com/gnames/tsbrowse/pkg/schema"
)

// Resource paths relative to the data root.
const (
	ManifestPath        = "/manifest.json"
	SubjectsMetaPath    = "/subjects_meta.json"
	SkillsMetaPath      = "/skills_meta.json"
	SubjectsDir         = "/by_subject"
	IndexesDir          = "/indexes"
	CodeToSubjectPath   = IndexesDir + "/" + index.CodeToSubjectFile
	SkillToSubjectsPath = IndexesDir + "/" + index.SkillToSubjectsFile
	SubjectStatsPath    = IndexesDir + "/" + index.SubjectStatsFile
)

// SubjectPath returns the path of a subject document.
func SubjectPath(slug string) string {
	return SubjectsDir + "/" + slug + ".json"
}

// Fetcher retrieves raw documents by their path.
type Fetcher interface {
	// Fetch returns the body of a document. A missing document or
	// a transport failure is an error.
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Loader is a cache of normalized data in front of a Fetcher.
//
// Every Load method fetches its resource only once, even when called
// concurrently. A failed fetch is not cached, so a later call tries
// again. Synchronous getters never fetch and return empty values until
// the corresponding Load method succeeded.
type Loader interface {
	// LoadManifest returns the manifest with normalized subjects.
	LoadManifest(ctx context.Context) (*schema.Manifest, error)
	// LoadSubjectsMeta returns descriptions of subjects.
	LoadSubjectsMeta(ctx context.Context) ([]schema.SubjectMeta, error)
	// LoadSkillsMeta returns transferable skills. It also makes
	// SkillsInfo available.
	LoadSkillsMeta(ctx context.Context) ([]schema.Skill, error)
	// LoadSkillsInfo returns the meta section of the skills document.
	LoadSkillsInfo(ctx context.Context) (map[string]any, error)

	// LoadSubjectStandards returns normalized standards of a subject.
	LoadSubjectStandards(ctx context.Context, slug string) ([]schema.Standard, error)
	// LoadMultipleSubjectStandards loads subjects concurrently and
	// concatenates results in the order of slugs. Any failure fails
	// the call.
	LoadMultipleSubjectStandards(ctx context.Context, slugs []string) ([]schema.Standard, error)
	// LoadMultipleSubjectStandardsPartial works like
	// LoadMultipleSubjectStandards, but a failed subject contributes
	// nothing and its error is reported by slug.
	LoadMultipleSubjectStandardsPartial(ctx context.Context, slugs []string) ([]schema.Standard, map[string]error)
	// LoadAllStandards loads every subject of the manifest.
	LoadAllStandards(ctx context.Context) ([]schema.Standard, error)

	// InitializeData loads manifest, subjects meta and skills meta.
	InitializeData(ctx context.Context) error
	// IsDataReady is true after InitializeData succeeded.
	IsDataReady() bool

	// LoadSkillToSubjectsIndex returns main skill codes with subjects
	// that use them.
	LoadSkillToSubjectsIndex(ctx context.Context) (map[string][]string, error)
	// LoadSubjectStatsIndex returns statistics of all subjects.
	LoadSubjectStatsIndex(ctx context.Context) (map[string]schema.SubjectStats, error)
	// LoadCodeToSubjectIndex returns subject slugs by standard code.
	LoadCodeToSubjectIndex(ctx context.Context) (map[string]string, error)
	// SubjectsForSkill returns subjects using the main code of a skill.
	SubjectsForSkill(ctx context.Context, code string) ([]string, error)
	// LoadStandardsForSkill loads only subjects known to use the skill
	// and filters their standards by the skill and extra filters.
	LoadStandardsForSkill(ctx context.Context, code string, extra schema.Filters) ([]schema.Standard, error)
	// LoadStandardByCode finds a standard by its code. It returns nil
	// without error when the code is not found.
	LoadStandardByCode(ctx context.Context, code string) (*schema.Standard, error)

	Getter

	// State reports the state of a cache slot. Keys are the Key*
	// constants and SubjectKey values.
	State(key string) SlotState
}

// Getter gives synchronous read-only access to loaded data.
type Getter interface {
	Manifest() *schema.Manifest
	SubjectsFromManifest() []schema.ManifestSubject
	SubjectsMeta() []schema.SubjectMeta
	SkillsMeta() []schema.Skill
	SkillsInfo() map[string]any
	SubjectMetaBySlug(slug string) (schema.SubjectMeta, bool)
	SkillByCode(code string) (schema.Skill, bool)
	SubjectStandards(slug string) []schema.Standard
	// DomainsForSubject returns sorted domain names from the manifest.
	DomainsForSubject(slug string) []string
	SubjectStats(slug string) (schema.SubjectStats, bool)
	AllSubjectStats() map[string]schema.SubjectStats
}
