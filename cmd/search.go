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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/query"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	subjects []string
	bands    []string
	domains  []string
	skills   []string
	keyword  string
	query    string
	format   string
	share    bool
}

// searchOutput is the machine-readable result of search.
type searchOutput struct {
	Filters  schema.Filters        `json:"filters" yaml:"filters"`
	Total    int                   `json:"total" yaml:"total"`
	Groups   []catalog.DomainGroup `json:"groups" yaml:"groups"`
	ShareURL string                `json:"shareUrl,omitempty" yaml:"share_url,omitempty"`
}

// getSearchCmd returns the search command.
func getSearchCmd() *cobra.Command {
	var flags searchFlags

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Find standards by subjects, grade bands, skills and keywords",
		Long: `Filter standards and print them grouped by domain.

All filters are combined. Within a list any value matches, so
--subjects math,it finds standards of math or IT. A skill matches its
sub-skills and its main skill, TS2 matches TS2.3 and TS2.3 matches TS2.
The keyword is searched in standard, context, practice and teaching tip
texts, case-insensitively.

--query takes the query part of a shared link. Explicit flags override
values of the query.

Only subjects needed for the filters are loaded: the selected subjects,
or subjects known to use the skill when a single skill is given.

Examples:
  tsbrowse search --subjects math --bands H2
  tsbrowse search --skills TS2 -q 数据
  tsbrowse search --query 'subjects=math,it&bands=H2' --format json
  tsbrowse search --subjects it --share`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSearch(cmd, flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	searchCmd.Flags().StringSliceVarP(
		&flags.subjects, "subjects", "s", []string{},
		"subject slugs, comma separated",
	)
	searchCmd.Flags().StringSliceVarP(
		&flags.bands, "bands", "b", []string{},
		"grade bands H1, H2, H3",
	)
	searchCmd.Flags().StringSliceVar(
		&flags.domains, "domains", []string{},
		"domain names",
	)
	searchCmd.Flags().StringSliceVarP(
		&flags.skills, "skills", "k", []string{},
		"transferable skill codes, for example TS2 or TS2.3",
	)
	searchCmd.Flags().StringVarP(
		&flags.keyword, "q", "q", "",
		"keyword",
	)
	searchCmd.Flags().StringVar(
		&flags.query, "query", "",
		"query of a shared link",
	)
	searchCmd.Flags().BoolVar(
		&flags.share, "share", false,
		"print a shareable link of the search",
	)
	addFormatFlag(searchCmd, &flags.format)

	return searchCmd
}

// searchFilters combines a shared query with explicit flags.
func searchFilters(flags searchFlags) schema.Filters {
	res := query.Empty()
	if flags.query != "" {
		res = query.ParseQuery(flags.query)
	}
	override := schema.Filters{
		Subjects:   flags.subjects,
		GradeBands: upperAll(flags.bands),
		Domains:    flags.domains,
		Skills:     upperAll(flags.skills),
		Keyword:    flags.keyword,
	}
	return query.Merge(res, override)
}

func runSearch(cmd *cobra.Command, flags searchFlags) error {
	if err := checkFormat(flags.format); err != nil {
		return err
	}

	ctx := context.Background()
	f := searchFilters(flags)

	l, err := openLoader(ctx)
	if err != nil {
		return err
	}

	standards, err := loadForFilters(ctx, l, f)
	if err != nil {
		return err
	}
	found := catalog.FilterStandards(standards, f)
	groups := catalog.GroupByDomain(found)

	out := searchOutput{
		Filters: f,
		Total:   len(found),
		Groups:  groups,
	}
	if flags.share {
		out.ShareURL = query.BuildShareableURL(
			cfg.Share.Origin, cfg.Share.BasePath, f,
		)
	}

	if ok, err := encode(cmd, flags.format, out); ok {
		return err
	}

	w := cmd.OutOrStdout()
	if query.HasActiveFilters(f) {
		summary := query.Summary(f, names(l))
		fmt.Fprintln(w, mutedStyle.Render(strings.Join(summary, " | ")))
	}
	fmt.Fprintf(w, "Found %s standards\n\n", humanize.Comma(int64(len(found))))
	fmt.Fprint(w, renderGroups(groups))
	if out.ShareURL != "" {
		fmt.Fprintf(w, "\n%s\n", out.ShareURL)
	}
	return nil
}
