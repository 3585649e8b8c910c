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

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/spf13/cobra"
)

type skillsOutput struct {
	Info   map[string]any `json:"info,omitempty" yaml:"info,omitempty"`
	Skills []schema.Skill `json:"skills" yaml:"skills"`
}

type skillOutput struct {
	Skill    schema.Skill     `json:"skill" yaml:"skill"`
	Subskill *schema.Subskill `json:"subskill,omitempty" yaml:"subskill,omitempty"`
	Subjects []string         `json:"subjects" yaml:"subjects"`
}

// getSkillsCmd returns the skills command.
func getSkillsCmd() *cobra.Command {
	var format string

	skillsCmd := &cobra.Command{
		Use:   "skills [CODE]",
		Short: "List transferable skills or describe one of them",
		Long: `Without arguments list all transferable skills with their sub-skills.

With a skill code describe the skill and show which subjects use it. A
sub-skill code such as TS2.3 is described together with its main skill
TS2.

Examples:
  tsbrowse skills
  tsbrowse skills TS2.3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 0 {
				err = runSkillsList(cmd, format)
			} else {
				err = runSkill(cmd, strings.ToUpper(args[0]), format)
			}
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	addFormatFlag(skillsCmd, &format)

	return skillsCmd
}

func runSkillsList(cmd *cobra.Command, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx := context.Background()
	l, err := openLoader(ctx)
	if err != nil {
		return err
	}

	info, err := l.LoadSkillsInfo(ctx)
	if err != nil {
		return err
	}

	out := skillsOutput{Info: info, Skills: l.SkillsMeta()}
	if ok, err := encode(cmd, format, out); ok {
		return err
	}

	w := cmd.OutOrStdout()
	for _, sk := range out.Skills {
		fmt.Fprintf(w, "%s %s %s\n",
			codeStyle.Render(sk.Code), sk.NameCN, mutedStyle.Render(sk.NameEN))
		for _, sub := range sk.Subskills {
			fmt.Fprintf(w, "  %s %s %s\n",
				sub.Code, sub.NameCN, mutedStyle.Render(sub.NameEN))
		}
	}
	return nil
}

func runSkill(cmd *cobra.Command, code, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx := context.Background()
	l, err := openLoader(ctx)
	if err != nil {
		return err
	}

	main := schema.MainSkillCode(code)
	sk, ok := l.SkillByCode(main)
	if !ok {
		gn.Warn("<warn>Skill <em>%s</em> is not found</warn>", code)
		return nil
	}

	out := skillOutput{Skill: sk}
	if code != main {
		sub, ok := sk.Subskill(code)
		if !ok {
			gn.Warn("<warn>Skill <em>%s</em> is not found</warn>", code)
			return nil
		}
		out.Subskill = &sub
	}

	out.Subjects, err = l.SubjectsForSkill(ctx, code)
	if err != nil {
		return err
	}

	if ok, err := encode(cmd, format, out); ok {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, headStyle.Render(sk.Code+" "+sk.NameCN))
	field := func(name, val string) {
		if strings.TrimSpace(val) == "" {
			return
		}
		fmt.Fprintf(w, "%s %s\n", mutedStyle.Render(name+":"), val)
	}
	field("English", sk.NameEN)
	field("Tagline", sk.TaglineCN)
	field("Definition", sk.DefinitionCN)
	field("Progression", sk.ProgressionNotes)
	field("Core literacy", strings.Join(sk.ChinaCoreLiteracyMapping, ", "))
	if sub := out.Subskill; sub != nil {
		fmt.Fprintln(w, headStyle.Render(sub.Code+" "+sub.NameCN))
		field("English", sub.NameEN)
		field("Tagline", sub.TaglineCN)
		field("Definition", sub.DefinitionCN)
		field("Look fors", strings.Join(sub.LookFors, "; "))
		field("Teacher moves", strings.Join(sub.TeacherMoves, "; "))
	} else {
		field("Look fors", strings.Join(sk.LookFors, "; "))
		field("Teacher moves", strings.Join(sk.TeacherMoves, "; "))
	}
	field("Subjects", strings.Join(subjectLabels(l, out.Subjects), ", "))
	return nil
}
