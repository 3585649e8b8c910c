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
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var formats = []string{formatText, formatJSON, formatYAML}

var (
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	codeStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	colStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(
		format, "format", "f", formatText,
		"output format: text, json or yaml",
	)
}

func checkFormat(format string) error {
	if slices.Contains(formats, format) {
		return nil
	}
	return fmt.Errorf("unknown output format %q, use one of %s",
		format, strings.Join(formats, ", "))
}

// encode renders machine-readable output. It returns false for the
// text format, which every command renders by itself.
func encode(cmd *cobra.Command, format string, v any) (bool, error) {
	var res []byte
	var err error
	switch format {
	case formatJSON:
		res, err = gnfmt.GNjson{Pretty: true}.Encode(v)
	case formatYAML:
		res, err = yaml.Marshal(v)
	default:
		return false, nil
	}
	if err != nil {
		return true, err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(res), "\n"))
	return true, nil
}

func standardLine(s schema.Standard) string {
	return fmt.Sprintf("%s %s %s",
		codeStyle.Render(s.Code),
		mutedStyle.Render(s.GradeBand),
		s.Standard,
	)
}

func renderGroups(groups []catalog.DomainGroup) string {
	var sb strings.Builder
	for _, g := range groups {
		sb.WriteString(headStyle.Render(fmt.Sprintf(
			"%s (%s)", g.Domain, humanize.Comma(int64(len(g.Standards))),
		)))
		sb.WriteString("\n")
		for _, s := range g.Standards {
			sb.WriteString("  ")
			sb.WriteString(standardLine(s))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderColumns places blocks side by side, each block in a frame of
// the same width.
func renderColumns(blocks []string, width int) string {
	cols := make([]string, len(blocks))
	for i, v := range blocks {
		cols[i] = colStyle.Width(width).Render(v)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func bandLabel(band string) string {
	if info, ok := schema.GradeBands[band]; ok {
		return fmt.Sprintf("%s %s (%s)", band, info.Label, info.Range)
	}
	return band
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
