// Package ioindex builds index files of a local dataset directory.
package ioindex

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/tsbrowse/pkg/index"
)

// documents is the pattern of subject documents inside a data directory.
const documents = "by_subject/*.json"

type builder struct {
	dataDir  string
	progress bool
	debounce time.Duration
}

// Option configures a builder.
type Option func(*builder)

// OptProgress shows a progress bar while documents are read.
func OptProgress(b bool) Option {
	return func(bld *builder) {
		bld.progress = b
	}
}

// OptDebounce sets how long Watch waits for more changes before
// rebuilding.
func OptDebounce(d time.Duration) Option {
	return func(bld *builder) {
		if d > 0 {
			bld.debounce = d
		}
	}
}

// New creates a builder for the given data directory.
func New(dataDir string, opts ...Option) index.Builder {
	res := &builder{
		dataDir:  dataDir,
		debounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Build implements index.Builder.
func (b *builder) Build(ctx context.Context) (*index.Report, error) {
	files, err := b.discover()
	if err != nil {
		return nil, err
	}
	slog.Info("Found subject documents", "count", len(files), "dir", b.dataDir)

	docs, err := b.readDocs(ctx, files)
	if err != nil {
		return nil, err
	}

	idx := index.Build(docs)
	for _, v := range idx.Duplicates {
		slog.Warn("Duplicate standard code",
			"code", v.Code, "previous", v.Previous, "current", v.Current)
	}

	written, err := b.write(idx)
	if err != nil {
		return nil, err
	}

	return &index.Report{
		Indexes:   idx,
		Documents: len(docs),
		Files:     written,
	}, nil
}

func (b *builder) discover() ([]string, error) {
	files, err := doublestar.Glob(os.DirFS(b.dataDir), documents)
	if err != nil {
		return nil, NoDocumentsError(b.dataDir, err)
	}
	if len(files) == 0 {
		return nil, NoDocumentsError(b.dataDir, nil)
	}
	slices.Sort(files)
	return files, nil
}

func (b *builder) readDocs(
	ctx context.Context,
	files []string,
) ([]index.SubjectDocument, error) {
	var bar *pb.ProgressBar
	if b.progress {
		bar = newProgressBar(len(files), "Reading subjects: ")
		defer bar.Finish()
	}

	enc := gnfmt.GNjson{}
	res := make([]index.SubjectDocument, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := os.ReadFile(filepath.Join(b.dataDir, filepath.FromSlash(file)))
		if err != nil {
			return nil, DocumentError(file, err)
		}
		var raw map[string]any
		if err = enc.Decode(body, &raw); err != nil {
			return nil, DocumentError(file, err)
		}

		doc := index.SubjectDocument{
			Slug:      strings.TrimSuffix(path.Base(file), ".json"),
			Standards: raw["standards"],
		}
		slog.Debug("Read subject document", "slug", doc.Slug,
			"bytes", humanize.Bytes(uint64(len(body))))
		res = append(res, doc)

		if bar != nil {
			bar.Increment()
		}
	}
	return res, nil
}

func (b *builder) write(idx *index.Indexes) ([]index.File, error) {
	dir := filepath.Join(b.dataDir, "indexes")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, WriteError(dir, err)
	}

	outputs := []struct {
		name string
		data any
	}{
		{index.CodeToSubjectFile, idx.CodeToSubject},
		{index.SkillToSubjectsFile, idx.SkillToSubjects},
		{index.SubjectStatsFile, idx.SubjectStats},
	}

	enc := gnfmt.GNjson{Pretty: true}
	res := make([]index.File, 0, len(outputs))
	for _, v := range outputs {
		file := filepath.Join(dir, v.name)
		body, err := enc.Encode(v.data)
		if err != nil {
			return nil, WriteError(file, err)
		}
		if err = os.WriteFile(file, body, 0644); err != nil {
			return nil, WriteError(file, err)
		}
		slog.Info("Wrote index", "file", file,
			"size", humanize.Bytes(uint64(len(body))))
		res = append(res, index.File{Name: v.name, Size: int64(len(body))})
	}
	return res, nil
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
