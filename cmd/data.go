/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/internal/iocollections"
	"github.com/gnames/tsbrowse/internal/iofetch"
	"github.com/gnames/tsbrowse/internal/ioloader"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/collections"
	"github.com/gnames/tsbrowse/pkg/config"
	"github.com/gnames/tsbrowse/pkg/query"
	"github.com/gnames/tsbrowse/pkg/schema"
)

// openLoader creates a loader for the configured data source and loads
// manifest, subjects meta and skills meta.
func openLoader(ctx context.Context) (catalog.Loader, error) {
	l := ioloader.New(cfg, iofetch.New(cfg))
	if err := l.InitializeData(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

func openCollections() (collections.Store, error) {
	return iocollections.Open(config.CollectionsFilePath(cfg.HomeDir))
}

// loadForFilters loads the smallest set of subjects needed for the
// filters. Subjects that fail to load are reported and skipped.
func loadForFilters(
	ctx context.Context,
	l catalog.Loader,
	f schema.Filters,
) ([]schema.Standard, error) {
	switch {
	case len(f.Subjects) > 0:
		return loadPartial(ctx, l, f.Subjects), nil
	case len(f.Skills) == 1:
		return l.LoadStandardsForSkill(ctx, f.Skills[0], f)
	default:
		return l.LoadAllStandards(ctx)
	}
}

func loadPartial(
	ctx context.Context,
	l catalog.Loader,
	slugs []string,
) []schema.Standard {
	res, errs := l.LoadMultipleSubjectStandardsPartial(ctx, slugs)
	for _, slug := range slices.Sorted(maps.Keys(errs)) {
		slog.Warn("Subject skipped", "subject", slug, "error", errs[slug])
		gn.Warn("Cannot load subject <em>%s</em>, it is skipped", slug)
	}
	return res
}

// loadCodes resolves standard codes in their order. The code index
// narrows which subjects are loaded, without it all subjects are loaded.
func loadCodes(
	ctx context.Context,
	l catalog.Loader,
	codes []string,
) ([]schema.Standard, error) {
	if len(codes) == 0 {
		return []schema.Standard{}, nil
	}

	idx, err := l.LoadCodeToSubjectIndex(ctx)
	if err != nil {
		slog.Warn("Code index is not available", "error", err)
		all, err := l.LoadAllStandards(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.IntersectCodes(all, codes), nil
	}

	var slugs []string
	for _, code := range codes {
		slug, ok := idx[code]
		if !ok {
			slug = catalog.InferSubjectFromCode(code)
		}
		if slug != "" && !slices.Contains(slugs, slug) {
			slugs = append(slugs, slug)
		}
	}
	standards := loadPartial(ctx, l, slugs)
	return catalog.IntersectCodes(standards, codes), nil
}

// names collects display names of subjects, grade bands and skills.
func names(l catalog.Getter) query.Names {
	res := query.Names{
		Subjects:   make(map[string]string),
		GradeBands: make(map[string]string),
		Skills:     make(map[string]string),
	}
	for _, v := range l.SubjectsFromManifest() {
		res.Subjects[v.SubjectSlug] = v.Subject
	}
	for _, v := range l.SubjectsMeta() {
		if v.SubjectCN != "" {
			res.Subjects[v.SubjectSlug] = v.SubjectCN
		}
	}
	for k, v := range schema.GradeBands {
		res.GradeBands[k] = v.Label
	}
	for _, v := range l.SkillsMeta() {
		res.Skills[v.Code] = v.NameCN
		for _, sub := range v.Subskills {
			res.Skills[sub.Code] = sub.NameCN
		}
	}
	return res
}
