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
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/spf13/cobra"
)

type subjectStatsOutput struct {
	Subject schema.SubjectMeta  `json:"subject" yaml:"subject"`
	Domains []string            `json:"domains" yaml:"domains"`
	Stats   schema.SubjectStats `json:"stats" yaml:"stats"`
}

// getStatsCmd returns the stats command.
func getStatsCmd() *cobra.Command {
	var format string

	statsCmd := &cobra.Command{
		Use:   "stats [SLUG]",
		Short: "Show statistics of subjects",
		Long: `Without arguments print totals of every subject. With a subject slug
print its description, domains, grade band counts and skill coverage.

Statistics come from indexes/subject_stats.json, run build-indexes to
update it.

Examples:
  tsbrowse stats
  tsbrowse stats math --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 0 {
				err = runStatsAll(cmd, format)
			} else {
				err = runStats(cmd, args[0], format)
			}
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	addFormatFlag(statsCmd, &format)

	return statsCmd
}

func runStatsAll(cmd *cobra.Command, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx := context.Background()
	l, err := openLoader(ctx)
	if err != nil {
		return err
	}

	stats, err := l.LoadSubjectStatsIndex(ctx)
	if err != nil {
		return err
	}
	if ok, err := encode(cmd, format, stats); ok {
		return err
	}

	w := cmd.OutOrStdout()
	var total int
	slugs := l.Manifest().Slugs()
	for _, slug := range slices.Sorted(maps.Keys(stats)) {
		if !slices.Contains(slugs, slug) {
			slugs = append(slugs, slug)
		}
	}
	for _, slug := range slugs {
		st, ok := stats[slug]
		if !ok {
			continue
		}
		total += st.Total
		fmt.Fprintf(w, "%-14s %8s standards %4d domains  %s\n",
			slug,
			humanize.Comma(int64(st.Total)),
			st.Domains,
			mutedStyle.Render(bandCounts(st.GradeBands)),
		)
	}
	fmt.Fprintf(w, "%-14s %8s standards\n", "total", humanize.Comma(int64(total)))
	return nil
}

func runStats(cmd *cobra.Command, slug, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx := context.Background()
	l, err := openLoader(ctx)
	if err != nil {
		return err
	}

	if _, err = l.LoadSubjectStatsIndex(ctx); err != nil {
		return err
	}
	st, ok := l.SubjectStats(slug)
	if !ok {
		gn.Warn("<warn>Subject <em>%s</em> is not found</warn>", slug)
		return nil
	}

	meta, _ := l.SubjectMetaBySlug(slug)
	meta.SubjectSlug = slug
	out := subjectStatsOutput{
		Subject: meta,
		Domains: l.DomainsForSubject(slug),
		Stats:   st,
	}
	if ok, err := encode(cmd, format, out); ok {
		return err
	}

	w := cmd.OutOrStdout()
	title := slug
	if meta.SubjectCN != "" {
		title = meta.SubjectCN + " (" + slug + ")"
	}
	fmt.Fprintln(w, headStyle.Render(title))
	if meta.ShortDescription != "" {
		fmt.Fprintln(w, meta.ShortDescription)
	}
	fmt.Fprintf(w, "%s standards in %d domains\n",
		humanize.Comma(int64(st.Total)), st.Domains)
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("Grade bands:"),
		bandCounts(st.GradeBands))
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("Domains:"),
		strings.Join(out.Domains, ", "))
	fmt.Fprintln(w, mutedStyle.Render("Skill coverage:"))
	for _, code := range slices.Sorted(maps.Keys(st.SkillCoverage)) {
		fmt.Fprintf(w, "  %-6s %s\n", code,
			humanize.Comma(int64(st.SkillCoverage[code])))
	}
	return nil
}

func bandCounts(bands map[string]int) string {
	keys := schema.SortGradeBands(slices.Collect(maps.Keys(bands)))
	res := make([]string, len(keys))
	for i, k := range keys {
		res[i] = fmt.Sprintf("%s %d", k, bands[k])
	}
	return strings.Join(res, ", ")
}

// subjectLabels returns display names of subject slugs.
func subjectLabels(l catalog.Getter, slugs []string) []string {
	nm := names(l).Subjects
	res := make([]string, len(slugs))
	for i, slug := range slugs {
		res[i] = slug
		if v, ok := nm[slug]; ok && v != slug {
			res[i] = v + " (" + slug + ")"
		}
	}
	return res
}
