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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/tsbrowse/internal/ioindex"
	"github.com/gnames/tsbrowse/pkg/index"
	"github.com/spf13/cobra"
)

// getBuildIndexesCmd returns the build-indexes command.
func getBuildIndexesCmd() *cobra.Command {
	var (
		dataDir string
		watch   bool
	)

	buildCmd := &cobra.Command{
		Use:   "build-indexes",
		Short: "Build lookup indexes from subject documents",
		Long: `Read every by_subject/*.json document of a data directory and write
three index files into its indexes/ directory:

  code_to_subject.json     standard code -> subject slug
  skill_to_subjects.json   main skill code -> subject slugs
  subject_stats.json       per-subject totals, domains, grade bands
                           and skill coverage

When a code appears in several subjects, the last one wins and a warning
is logged.

With --watch the indexes are rebuilt every time a subject document
changes, until the command is interrupted.

Examples:
  # Build indexes of the configured data directory
  tsbrowse build-indexes

  # Build indexes of another directory and keep them up to date
  tsbrowse build-indexes --data-dir ./public/data --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuildIndexes(cmd, dataDir, watch)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	buildCmd.Flags().StringVarP(
		&dataDir, "data-dir", "d", "",
		"data directory (default: data.source from config)",
	)
	buildCmd.Flags().BoolVarP(
		&watch, "watch", "w", false,
		"rebuild indexes when subject documents change",
	)

	return buildCmd
}

func runBuildIndexes(cmd *cobra.Command, dataDir string, watch bool) error {
	if dataDir == "" {
		if cfg.Data.IsURL() {
			return fmt.Errorf(
				"data source %s is a URL, use --data-dir", cfg.Data.Source,
			)
		}
		dataDir = cfg.Data.Source
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	bld := ioindex.New(dataDir, ioindex.OptProgress(!watch))
	if !watch {
		start := time.Now()
		rep, err := bld.Build(ctx)
		if err != nil {
			return err
		}
		printReport(rep)
		gn.Info("Done in %s", gnfmt.TimeString(time.Since(start).Seconds()))
		return nil
	}

	gn.Info("Watching <em>%s</em>, press Ctrl-C to stop", dataDir)
	err := bld.Watch(ctx, func(rep *index.Report, err error) {
		if err != nil {
			gn.PrintErrorMessage(err)
			return
		}
		printReport(rep)
	})
	if err != nil {
		return err
	}
	gn.Info("Stopped watching")
	return nil
}

func printReport(rep *index.Report) {
	codes, skills, subjects := rep.Summary()
	gn.Info(
		"Indexed <em>%s</em> documents: %s codes, %s skills, %s subjects",
		humanize.Comma(int64(rep.Documents)),
		humanize.Comma(int64(codes)),
		humanize.Comma(int64(skills)),
		humanize.Comma(int64(subjects)),
	)
	for _, f := range rep.Files {
		gn.Info("  %s %s", f.Name, humanize.Bytes(uint64(f.Size)))
	}
	if n := len(rep.Duplicates); n > 0 {
		gn.Warn("<warn>%d duplicate codes, see the log for details</warn>", n)
	}
}
