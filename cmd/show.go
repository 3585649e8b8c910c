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
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/spf13/cobra"
)

type showOutput struct {
	Standard    *schema.Standard `json:"standard" yaml:"standard"`
	Collections []string         `json:"collections" yaml:"collections"`
}

// getShowCmd returns the show command.
func getShowCmd() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show CODE",
		Short: "Show details of a standard",
		Long: `Find a standard by its code and print all its fields, tagged skills
and collections that contain it.

The standard is looked up in already loaded subjects first, then in the
subject guessed from the code prefix (ML- is math, IT- is IT and so on),
and finally in every subject of the manifest.

Examples:
  tsbrowse show ML-H2-DSJ-005
  tsbrowse show IT-H3-SF-001 --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runShow(cmd, args[0], format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	addFormatFlag(showCmd, &format)

	return showCmd
}

func runShow(cmd *cobra.Command, code, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx := context.Background()
	l, err := openLoader(ctx)
	if err != nil {
		return err
	}

	std, err := l.LoadStandardByCode(ctx, code)
	if err != nil {
		return err
	}
	if std == nil {
		gn.Warn("<warn>Standard <em>%s</em> is not found</warn>", code)
		return nil
	}

	store, err := openCollections()
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := store.CollectionsFor(ctx, code)
	if err != nil {
		return err
	}

	out := showOutput{Standard: std, Collections: ids}
	if ok, err := encode(cmd, format, out); ok {
		return err
	}

	printStandard(cmd.OutOrStdout(), l, *std, ids)
	return nil
}

func printStandard(
	w io.Writer,
	l catalog.Getter,
	s schema.Standard,
	collections []string,
) {
	fmt.Fprintln(w, headStyle.Render(s.Code))
	field := func(name, val string) {
		if strings.TrimSpace(val) == "" {
			return
		}
		fmt.Fprintf(w, "%s %s\n", mutedStyle.Render(name+":"), val)
	}

	field("Subject", s.Subject)
	field("Domain", s.Domain)
	field("Subdomain", s.Subdomain)
	field("Grade band", bandLabel(s.GradeBand))
	field("Grade", s.Grade)
	field("Standard", s.Standard)
	field("Context", s.Context)
	field("Practice", s.Practice)
	field("Teaching tip", s.TeachingTip)
	field("Evidence", s.AssessmentEvidenceType)
	field("Discipline", s.Discipline)
	field("Art discipline", s.ArtDiscipline)
	field("Materials", s.MaterialsTools)
	field("Safety", s.SafetyNotes)
	field("Project", s.Project)
	field("Primary skills", skillNames(l, s.TSPrimary))
	field("Secondary skills", skillNames(l, s.TSSecondary))
	field("Rationale", s.TSRationale)
	field("Confidence", s.TSConfidence)
	field("Previous", strings.Join(s.PreviousCodes(), ", "))
	field("Next", strings.Join(s.NextCodes(), ", "))
	field("Collections", strings.Join(collections, ", "))
}

func skillNames(l catalog.Getter, codes []string) string {
	res := make([]string, 0, len(codes))
	for _, code := range codes {
		name := code
		main := schema.MainSkillCode(code)
		if sk, ok := l.SkillByCode(main); ok {
			label := sk.NameCN
			if code != main {
				sub, _ := sk.Subskill(code)
				label = sub.NameCN
			}
			if label != "" {
				name = code + " " + label
			}
		}
		res = append(res, name)
	}
	return strings.Join(res, ", ")
}
