package index

import "context"

// Builder reads subject documents from a data directory and writes
// their indexes next to them.
type Builder interface {
	// Build creates all indexes once.
	Build(ctx context.Context) (*Report, error)
	// Watch builds indexes and rebuilds them after every change of
	// subject documents until ctx is canceled. Every build result is
	// passed to onBuild.
	Watch(ctx context.Context, onBuild func(*Report, error)) error
}

// Report describes a finished build.
type Report struct {
	*Indexes
	// Documents is the number of subject documents read.
	Documents int
	// Files are the written index files.
	Files []File
}

// File is a written index file.
type File struct {
	Name string
	Size int64
}
