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
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/internal/iocollections"
	"github.com/gnames/tsbrowse/internal/iofs"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/collections"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/spf13/cobra"
)

type collectionOutput struct {
	Collection collections.Collection `json:"collection" yaml:"collection"`
	Stats      collections.Stats      `json:"stats" yaml:"stats"`
	Standards  []schema.Standard      `json:"standards" yaml:"standards"`
}

// getCollectionsCmd returns the collections command with its
// subcommands.
func getCollectionsCmd() *cobra.Command {
	colCmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"col"},
		Short:   "Manage collections of favorite standards",
		Long: `Collections keep ordered lists of standard codes in
~/.local/share/tsbrowse/collections.sqlite.

The default collection (id 'default') always exists and cannot be
deleted. A collection can be exported to a JSON file and imported
on another machine, where it gets a new id.

Examples:
  tsbrowse collections create "Data literacy" -d "TS2 across subjects"
  tsbrowse collections add default ML-H2-DSJ-005
  tsbrowse collections move default ML-H2-DSJ-005 0
  tsbrowse collections show default
  tsbrowse collections export col-... -o data.json
  tsbrowse collections import data.json`,
	}

	colCmd.AddCommand(
		getColListCmd(),
		getColCreateCmd(),
		getColRenameCmd(),
		getColDeleteCmd(),
		getColAddCmd(),
		getColRemoveCmd(),
		getColMoveCmd(),
		getColShowCmd(),
		getColExportCmd(),
		getColImportCmd(),
	)
	return colCmd
}

// withStore runs f with an open collections store and prints errors.
func withStore(
	f func(ctx context.Context, store collections.Store) error,
) error {
	store, err := openCollections()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer store.Close()

	if err = f(context.Background(), store); err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}

func getColListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return withStore(func(ctx context.Context, store collections.Store) error {
				cols, err := store.List(ctx)
				if err != nil {
					return err
				}
				if ok, err := encode(cmd, format, cols); ok {
					return err
				}
				w := cmd.OutOrStdout()
				for _, c := range cols {
					fmt.Fprintf(w, "%s %s %s %s\n",
						codeStyle.Render(c.ID),
						c.Name,
						mutedStyle.Render(fmt.Sprintf(
							"%d standards", len(c.StandardCodes),
						)),
						mutedStyle.Render(humanize.Time(c.CreatedAt)),
					)
				}
				return nil
			})
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func getColCreateCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, store collections.Store) error {
				c, err := store.Create(ctx, args[0], description)
				if err != nil {
					return err
				}
				gn.Info("Created collection <em>%s</em> (%s)", c.Name, c.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "",
		"description of the collection")
	return cmd
}

func getColRenameCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a collection or change its description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := collections.Update{Name: &args[1]}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			return withStore(func(ctx context.Context, store collections.Store) error {
				c, err := store.Update(ctx, args[0], upd)
				if err != nil {
					return err
				}
				if c == nil {
					return iocollections.NotFoundError(args[0])
				}
				gn.Info("Collection <em>%s</em> is now <em>%s</em>", c.ID, c.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "",
		"new description")
	return cmd
}

func getColDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if id == collections.DefaultID {
				err := iocollections.DefaultError()
				gn.PrintErrorMessage(err)
				return err
			}
			return withStore(func(ctx context.Context, store collections.Store) error {
				ok, err := store.Delete(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					return iocollections.NotFoundError(id)
				}
				gn.Info("Deleted collection <em>%s</em>", id)
				return nil
			})
		},
	}
}

func getColAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add ID CODE...",
		Short: "Add standards to a collection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withStore(func(ctx context.Context, store collections.Store) error {
				for _, code := range args[1:] {
					ok, err := store.Add(ctx, id, code)
					if err != nil {
						return err
					}
					if !ok {
						return iocollections.NotFoundError(id)
					}
					gn.Info("Added <em>%s</em> to <em>%s</em>", code, id)
				}
				return nil
			})
		},
	}
}

func getColRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID CODE...",
		Short: "Remove standards from a collection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withStore(func(ctx context.Context, store collections.Store) error {
				for _, code := range args[1:] {
					ok, err := store.Remove(ctx, id, code)
					if err != nil {
						return err
					}
					if !ok {
						return iocollections.NotFoundError(id)
					}
					gn.Info("Removed <em>%s</em> from <em>%s</em>", code, id)
				}
				return nil
			})
		},
	}
}

func getColMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move ID CODE INDEX",
		Short: "Move a standard to a new position, starting from 0",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("index %q is not a number", args[2])
			}
			return withStore(func(ctx context.Context, store collections.Store) error {
				ok, err := store.Reorder(ctx, args[0], args[1], idx)
				if err != nil {
					return err
				}
				if !ok {
					gn.Warn("<warn><em>%s</em> is not in <em>%s</em></warn>",
						args[1], args[0])
					return nil
				}
				gn.Info("Moved <em>%s</em>", args[1])
				return nil
			})
		},
	}
}

func getColShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show standards and statistics of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return withStore(func(ctx context.Context, store collections.Store) error {
				return showCollection(ctx, cmd, store, args[0], format)
			})
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func showCollection(
	ctx context.Context,
	cmd *cobra.Command,
	store collections.Store,
	id, format string,
) error {
	c, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return iocollections.NotFoundError(id)
	}

	l, err := openLoader(ctx)
	if err != nil {
		return err
	}
	standards, err := loadCodes(ctx, l, c.StandardCodes)
	if err != nil {
		return err
	}

	out := collectionOutput{
		Collection: *c,
		Stats:      collections.NewStats(standards),
		Standards:  standards,
	}
	if ok, err := encode(cmd, format, out); ok {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, headStyle.Render(c.Name))
	if c.Description != "" {
		fmt.Fprintln(w, c.Description)
	}
	if c.ImportedAt != nil {
		fmt.Fprintln(w, mutedStyle.Render(
			"Imported "+humanize.Time(*c.ImportedAt),
		))
	}
	fmt.Fprintf(w, "%s of %s standards found\n",
		humanize.Comma(int64(out.Stats.Total)),
		humanize.Comma(int64(len(c.StandardCodes))),
	)
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("Subjects:"),
		countLine(out.Stats.BySubject))
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("Grade bands:"),
		bandCounts(out.Stats.ByGradeBand))
	fmt.Fprintf(w, "%s %s\n\n", mutedStyle.Render("Skills:"),
		countLine(out.Stats.BySkill))
	fmt.Fprint(w, renderGroups(catalog.GroupByDomain(standards)))
	return nil
}

func getColExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a collection to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, store collections.Store) error {
				env, err := store.Export(ctx, args[0])
				if err != nil {
					return err
				}
				if env == nil {
					return iocollections.NotFoundError(args[0])
				}
				res, err := env.Encode()
				if err != nil {
					return err
				}
				if output == "" {
					fmt.Fprintln(cmd.OutOrStdout(), string(res))
					return nil
				}
				if err = iofs.WriteFile(output, res); err != nil {
					return err
				}
				gn.Info("Exported <em>%s</em> to <em>%s</em>", args[0], output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (default: stdout)")
	return cmd
}

func getColImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import an exported collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := iofs.ReadFile(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			env, err := collections.ParseEnvelope(data)
			if err != nil {
				err = iocollections.ImportError(err)
				gn.PrintErrorMessage(err)
				return err
			}
			return withStore(func(ctx context.Context, store collections.Store) error {
				c, err := store.Import(ctx, env)
				if err != nil {
					return err
				}
				gn.Info(
					"Imported <em>%s</em> (%s) with %d standards, exported %s",
					c.Name, c.ID, len(c.StandardCodes),
					exportedAgo(env.ExportedAt),
				)
				return nil
			})
		},
	}
}

// exportedAgo renders the export time of an envelope relative to now.
func exportedAgo(exportedAt string) string {
	t, err := time.Parse(time.RFC3339Nano, exportedAt)
	if err != nil {
		return exportedAt
	}
	return humanize.Time(t)
}

// countLine renders counts from the largest to the smallest.
func countLine(counts map[string]int) string {
	keys := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})
	res := make([]string, len(keys))
	for i, k := range keys {
		res[i] = fmt.Sprintf("%s %d", k, counts[k])
	}
	return strings.Join(res, ", ")
}
