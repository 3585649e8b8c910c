package ioloader

import (
	"context"
	"log/slog"

	"github.com/gnames/gnfmt"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// LoadManifest implements catalog.Loader.
func (l *loader) LoadManifest(ctx context.Context) (*schema.Manifest, error) {
	return load(ctx, l, catalog.KeyManifest,
		func(ctx context.Context) (*schema.Manifest, error) {
			raw, err := l.fetchObject(ctx, catalog.ManifestPath)
			if err != nil {
				return nil, ManifestError(err)
			}
			res := schema.NormalizeManifest(raw)
			slog.Info("Loaded manifest", "subjects", len(res.Subjects))
			return res, nil
		})
}

// LoadSubjectsMeta implements catalog.Loader.
func (l *loader) LoadSubjectsMeta(ctx context.Context) ([]schema.SubjectMeta, error) {
	return load(ctx, l, catalog.KeySubjectsMeta,
		func(ctx context.Context) ([]schema.SubjectMeta, error) {
			raw, err := l.fetchObject(ctx, catalog.SubjectsMetaPath)
			if err != nil {
				return nil, err
			}
			return schema.NormalizeSubjectsMeta(raw["subjects_meta"]), nil
		})
}

// LoadSkillsMeta implements catalog.Loader.
func (l *loader) LoadSkillsMeta(ctx context.Context) ([]schema.Skill, error) {
	doc, err := l.loadSkills(ctx)
	if err != nil {
		return nil, err
	}
	return doc.skills, nil
}

// LoadSkillsInfo implements catalog.Loader.
func (l *loader) LoadSkillsInfo(ctx context.Context) (map[string]any, error) {
	doc, err := l.loadSkills(ctx)
	if err != nil {
		return nil, err
	}
	return doc.info, nil
}

func (l *loader) loadSkills(ctx context.Context) (skillsDoc, error) {
	return load(ctx, l, catalog.KeySkillsMeta,
		func(ctx context.Context) (skillsDoc, error) {
			raw, err := l.fetchObject(ctx, catalog.SkillsMetaPath)
			if err != nil {
				return skillsDoc{}, err
			}
			info, _ := raw["meta"].(map[string]any)
			if info == nil {
				info = map[string]any{}
			}
			return skillsDoc{
				skills: schema.NormalizeSkills(raw["competencies"]),
				info:   info,
			}, nil
		})
}

// InitializeData implements catalog.Loader.
func (l *loader) InitializeData(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := l.LoadManifest(ctx)
		return err
	})
	g.Go(func() error {
		_, err := l.LoadSubjectsMeta(ctx)
		return err
	})
	g.Go(func() error {
		_, err := l.LoadSkillsMeta(ctx)
		return err
	})
	return g.Wait()
}

// IsDataReady implements catalog.Loader.
func (l *loader) IsDataReady() bool {
	return l.State(catalog.KeyManifest) == catalog.Ready &&
		l.State(catalog.KeySubjectsMeta) == catalog.Ready &&
		l.State(catalog.KeySkillsMeta) == catalog.Ready
}

// LoadSkillToSubjectsIndex implements catalog.Loader.
func (l *loader) LoadSkillToSubjectsIndex(ctx context.Context) (map[string][]string, error) {
	return load(ctx, l, catalog.KeySkillToSubjects,
		func(ctx context.Context) (map[string][]string, error) {
			res := make(map[string][]string)
			err := l.fetchInto(ctx, catalog.SkillToSubjectsPath, &res)
			if err != nil {
				return nil, IndexError(catalog.SkillToSubjectsPath, err)
			}
			return res, nil
		})
}

// LoadSubjectStatsIndex implements catalog.Loader.
func (l *loader) LoadSubjectStatsIndex(ctx context.Context) (map[string]schema.SubjectStats, error) {
	return load(ctx, l, catalog.KeySubjectStats,
		func(ctx context.Context) (map[string]schema.SubjectStats, error) {
			res := make(map[string]schema.SubjectStats)
			err := l.fetchInto(ctx, catalog.SubjectStatsPath, &res)
			if err != nil {
				return nil, IndexError(catalog.SubjectStatsPath, err)
			}
			return res, nil
		})
}

// LoadCodeToSubjectIndex implements catalog.Loader.
func (l *loader) LoadCodeToSubjectIndex(ctx context.Context) (map[string]string, error) {
	return load(ctx, l, catalog.KeyCodeToSubject,
		func(ctx context.Context) (map[string]string, error) {
			res := make(map[string]string)
			err := l.fetchInto(ctx, catalog.CodeToSubjectPath, &res)
			if err != nil {
				return nil, IndexError(catalog.CodeToSubjectPath, err)
			}
			return res, nil
		})
}

// fetchObject fetches a JSON object document. A document that is not an
// object is a decode error.
func (l *loader) fetchObject(ctx context.Context, path string) (map[string]any, error) {
	var res map[string]any
	if err := l.fetchInto(ctx, path, &res); err != nil {
		return nil, err
	}
	if res == nil {
		res = map[string]any{}
	}
	return res, nil
}

func (l *loader) fetchInto(ctx context.Context, path string, output any) error {
	body, err := l.fetcher.Fetch(ctx, path)
	if err != nil {
		return err
	}
	enc := gnfmt.GNjson{}
	if err = enc.Decode(body, output); err != nil {
		return DecodeError(path, err)
	}
	return nil
}
