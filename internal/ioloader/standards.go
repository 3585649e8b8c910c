package ioloader

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// LoadSubjectStandards implements catalog.Loader.
func (l *loader) LoadSubjectStandards(ctx context.Context, slug string) ([]schema.Standard, error) {
	return load(ctx, l, catalog.SubjectKey(slug),
		func(ctx context.Context) ([]schema.Standard, error) {
			raw, err := l.fetchObject(ctx, catalog.SubjectPath(slug))
			if err != nil {
				return nil, SubjectError(slug, err)
			}
			res := schema.NormalizeStandards(raw["standards"])
			slog.Info("Loaded subject", "slug", slug, "standards", len(res))
			return res, nil
		})
}

// LoadMultipleSubjectStandards implements catalog.Loader.
func (l *loader) LoadMultipleSubjectStandards(
	ctx context.Context,
	slugs []string,
) ([]schema.Standard, error) {
	parts := make([][]schema.Standard, len(slugs))

	// every fetch runs to completion even after a failure
	var g errgroup.Group
	g.SetLimit(l.jobs)
	for i, slug := range slugs {
		g.Go(func() error {
			res, err := l.LoadSubjectStandards(ctx, slug)
			parts[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(parts...), nil
}

// LoadMultipleSubjectStandardsPartial implements catalog.Loader.
func (l *loader) LoadMultipleSubjectStandardsPartial(
	ctx context.Context,
	slugs []string,
) ([]schema.Standard, map[string]error) {
	parts := make([][]schema.Standard, len(slugs))
	errs := make(map[string]error)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(l.jobs)
	for i, slug := range slugs {
		g.Go(func() error {
			res, err := l.LoadSubjectStandards(ctx, slug)
			if err != nil {
				mu.Lock()
				errs[slug] = err
				mu.Unlock()
				return nil
			}
			parts[i] = res
			return nil
		})
	}
	_ = g.Wait()

	res := slices.Concat(parts...)
	if res == nil {
		res = []schema.Standard{}
	}
	return res, errs
}

// LoadAllStandards implements catalog.Loader.
func (l *loader) LoadAllStandards(ctx context.Context) ([]schema.Standard, error) {
	return load(ctx, l, catalog.KeyAllStandards,
		func(ctx context.Context) ([]schema.Standard, error) {
			m, err := l.LoadManifest(ctx)
			if err != nil {
				return nil, err
			}
			res, err := l.LoadMultipleSubjectStandards(ctx, m.Slugs())
			if err != nil {
				return nil, err
			}
			if res == nil {
				res = []schema.Standard{}
			}
			return res, nil
		})
}

// SubjectsForSkill implements catalog.Loader.
func (l *loader) SubjectsForSkill(ctx context.Context, code string) ([]string, error) {
	idx, err := l.LoadSkillToSubjectsIndex(ctx)
	if err != nil {
		return nil, err
	}
	res := idx[schema.MainSkillCode(code)]
	if res == nil {
		return []string{}, nil
	}
	return slices.Clone(res), nil
}

// LoadStandardsForSkill implements catalog.Loader.
func (l *loader) LoadStandardsForSkill(
	ctx context.Context,
	code string,
	extra schema.Filters,
) ([]schema.Standard, error) {
	subjects, err := l.SubjectsForSkill(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(extra.Subjects) > 0 {
		subjects = slices.DeleteFunc(subjects, func(s string) bool {
			return !slices.Contains(extra.Subjects, s)
		})
	}
	if len(subjects) == 0 {
		return []schema.Standard{}, nil
	}

	standards, err := l.LoadMultipleSubjectStandards(ctx, subjects)
	if err != nil {
		return nil, err
	}
	extra.Skills = []string{code}
	return catalog.FilterStandards(standards, extra), nil
}

// LoadStandardByCode implements catalog.Loader.
func (l *loader) LoadStandardByCode(ctx context.Context, code string) (*schema.Standard, error) {
	for _, slug := range l.residentSubjects() {
		if res := findCode(l.SubjectStandards(slug), code); res != nil {
			return res, nil
		}
	}

	if slug := catalog.InferSubjectFromCode(code); slug != "" {
		standards, err := l.LoadSubjectStandards(ctx, slug)
		if err != nil {
			return nil, err
		}
		return findCode(standards, code), nil
	}

	m, err := l.LoadManifest(ctx)
	if err != nil {
		return nil, err
	}
	for _, slug := range m.Slugs() {
		standards, err := l.LoadSubjectStandards(ctx, slug)
		if err != nil {
			return nil, err
		}
		if res := findCode(standards, code); res != nil {
			return res, nil
		}
	}
	return nil, nil
}

func findCode(standards []schema.Standard, code string) *schema.Standard {
	for i := range standards {
		if standards[i].Code == code {
			res := standards[i]
			return &res
		}
	}
	return nil
}
