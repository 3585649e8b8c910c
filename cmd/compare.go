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
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/compare"
	"github.com/gnames/tsbrowse/pkg/query"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/spf13/cobra"
)

// columnWidth is the width of one compare column in the terminal.
const columnWidth = 44

type compareFlags struct {
	subjects []string
	bands    []string
	skills   []string
	keyword  string
	last     string
	format   string
	share    bool
}

// compareColumn holds standards of one compared subject or grade band.
type compareColumn struct {
	Key       string            `json:"key" yaml:"key"`
	Label     string            `json:"label" yaml:"label"`
	Standards []schema.Standard `json:"standards" yaml:"standards"`
}

type compareOutput struct {
	Mode     compare.Mode    `json:"mode" yaml:"mode"`
	Filters  schema.Filters  `json:"filters" yaml:"filters"`
	Message  string          `json:"message,omitempty" yaml:"message,omitempty"`
	Columns  []compareColumn `json:"columns" yaml:"columns"`
	ShareURL string          `json:"shareUrl,omitempty" yaml:"share_url,omitempty"`
}

// getCompareCmd returns the compare command.
func getCompareCmd() *cobra.Command {
	var flags compareFlags

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare subjects or grade bands side by side",
		Long: `Show standards in columns, one column per subject or per grade band.

A comparison is either 1-3 subjects at exactly one grade band, or exactly
one subject at 1-3 grade bands. Other selections are corrected and the
correction is explained:

  - more than 3 items keep the 3 most recent ones;
  - several subjects with several grade bands keep only the first item
    of the dimension that was not changed last (see --last).

Without flags the comparison starts from IT at H2.

Examples:
  # Compare three subjects at H2
  tsbrowse compare --subjects math,science,it --bands H2

  # Compare grade bands of math that use TS2
  tsbrowse compare --subjects math --bands H1,H2,H3 --skills TS2

  # Print a shareable link
  tsbrowse compare -s math,it -b H3 --share`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCompare(cmd, flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	compareCmd.Flags().StringSliceVarP(
		&flags.subjects, "subjects", "s", []string{},
		"subjects to compare (at most 3)",
	)
	compareCmd.Flags().StringSliceVarP(
		&flags.bands, "bands", "b", []string{},
		"grade bands to compare (at most 3)",
	)
	compareCmd.Flags().StringSliceVarP(
		&flags.skills, "skills", "k", []string{},
		"transferable skill codes",
	)
	compareCmd.Flags().StringVarP(
		&flags.keyword, "q", "q", "",
		"keyword",
	)
	compareCmd.Flags().StringVar(
		&flags.last, "last", "",
		"dimension changed last, 'subjects' or 'bands', wins conflicts",
	)
	compareCmd.Flags().BoolVar(
		&flags.share, "share", false,
		"print a shareable link of the comparison",
	)
	addFormatFlag(compareCmd, &flags.format)

	return compareCmd
}

// compareDraft builds a draft from the default comparison and flags.
func compareDraft(cmd *cobra.Command, flags compareFlags) (compare.Draft, error) {
	d := compare.NewDraft(compare.Committed{Filters: compare.DefaultFilters()})

	subjectsSet := cmd.Flags().Changed("subjects")
	bandsSet := cmd.Flags().Changed("bands")
	if subjectsSet {
		d.Filters.Subjects = flags.subjects
	}
	if bandsSet {
		d.Filters.GradeBands = upperAll(flags.bands)
	}
	for _, v := range upperAll(flags.skills) {
		if !slices.Contains(d.Filters.Skills, v) {
			d.ToggleSkill(v)
		}
	}
	d.Filters.Keyword = flags.keyword

	switch flags.last {
	case "":
		if bandsSet && !subjectsSet {
			d.LastChanged = compare.DimensionBands
		} else if subjectsSet {
			d.LastChanged = compare.DimensionSubjects
		}
	case string(compare.DimensionSubjects):
		d.LastChanged = compare.DimensionSubjects
	case string(compare.DimensionBands):
		d.LastChanged = compare.DimensionBands
	default:
		return *d, fmt.Errorf(
			"unknown --last value %q, use 'subjects' or 'bands'", flags.last,
		)
	}
	return *d, nil
}

func runCompare(cmd *cobra.Command, flags compareFlags) error {
	if err := checkFormat(flags.format); err != nil {
		return err
	}

	d, err := compareDraft(cmd, flags)
	if err != nil {
		return err
	}

	c, err := compare.Commit(d)
	if err != nil {
		var vErr *compare.ValidationError
		if errors.As(err, &vErr) {
			gn.Warn("<warn>%s</warn>", vErr.Message)
		}
		return err
	}
	if c.Message != "" {
		gn.Warn("<warn>%s</warn>", c.Message)
	}

	ctx := context.Background()
	l, err := openLoader(ctx)
	if err != nil {
		return err
	}

	standards := loadPartial(ctx, l, c.Filters.Subjects)
	found := catalog.FilterStandards(standards, c.Filters)

	out := compareOutput{
		Mode:    c.Mode,
		Filters: c.Filters,
		Message: c.Message,
		Columns: compareColumns(c, found, names(l)),
	}
	if flags.share {
		out.ShareURL = query.BuildShareableURL(
			cfg.Share.Origin, cfg.Share.BasePath, c.Filters,
		)
	}

	if ok, err := encode(cmd, flags.format, out); ok {
		return err
	}

	w := cmd.OutOrStdout()
	summary := query.Summary(c.Filters, names(l))
	fmt.Fprintln(w, mutedStyle.Render(strings.Join(summary, " | ")))
	fmt.Fprintln(w, renderCompare(out.Columns))
	if out.ShareURL != "" {
		fmt.Fprintln(w, out.ShareURL)
	}
	return nil
}

// compareColumns splits standards by the compared dimension. Columns
// follow selection order.
func compareColumns(
	c compare.Committed,
	standards []schema.Standard,
	nm query.Names,
) []compareColumn {
	var res []compareColumn
	switch c.Mode {
	case compare.ModeSubjects:
		for _, slug := range c.Filters.Subjects {
			label := slug
			if v, ok := nm.Subjects[slug]; ok {
				label = v
			}
			col := compareColumn{Key: slug, Label: label}
			for _, s := range standards {
				if s.SubjectSlug == slug {
					col.Standards = append(col.Standards, s)
				}
			}
			res = append(res, col)
		}
	case compare.ModeGradeBands:
		for _, band := range c.Filters.GradeBands {
			col := compareColumn{Key: band, Label: bandLabel(band)}
			for _, s := range standards {
				if s.GradeBand == band {
					col.Standards = append(col.Standards, s)
				}
			}
			res = append(res, col)
		}
	}
	for i := range res {
		if res[i].Standards == nil {
			res[i].Standards = []schema.Standard{}
		}
	}
	return res
}

func renderCompare(cols []compareColumn) string {
	blocks := make([]string, len(cols))
	for i, col := range cols {
		var sb strings.Builder
		sb.WriteString(headStyle.Render(col.Label))
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render(fmt.Sprintf(
			"%s standards", humanize.Comma(int64(len(col.Standards))),
		)))
		for _, g := range catalog.GroupByDomain(col.Standards) {
			sb.WriteString("\n\n")
			sb.WriteString(codeStyle.Render(g.Domain))
			for _, s := range g.Standards {
				sb.WriteString("\n")
				sb.WriteString(s.Code)
				sb.WriteString(" ")
				sb.WriteString(truncate(s.Standard, columnWidth))
			}
		}
		blocks[i] = sb.String()
	}
	return renderColumns(blocks, columnWidth)
}
