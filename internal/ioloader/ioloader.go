// Package ioloader implements catalog.Loader on top of a catalog.Fetcher.
//
// Each resource has a slot that goes from Empty to Pending to Ready.
// Concurrent callers of the same resource share one fetch. A caller can
// stop waiting by canceling its context; the shared fetch still completes
// and fills the slot for later callers.
package ioloader

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/config"
	"github.com/gnames/tsbrowse/pkg/schema"
	"golang.org/x/sync/singleflight"
)

type loader struct {
	fetcher catalog.Fetcher
	jobs    int

	flight singleflight.Group

	mu      sync.RWMutex
	ready   map[string]any
	pending map[string]struct{}
}

// skillsDoc keeps both sections of the skills document.
type skillsDoc struct {
	skills []schema.Skill
	info   map[string]any
}

// New creates a loader with empty cache. JobsNumber of the configuration
// limits concurrent subject fetches.
func New(cfg *config.Config, f catalog.Fetcher) catalog.Loader {
	jobs := cfg.JobsNumber
	if jobs < 1 {
		jobs = 1
	}
	return &loader{
		fetcher: f,
		jobs:    jobs,
		ready:   make(map[string]any),
		pending: make(map[string]struct{}),
	}
}

// load returns the value of a ready slot, or joins the fetch of the slot,
// or starts it.
func load[T any](
	ctx context.Context,
	l *loader,
	key string,
	fetch func(context.Context) (T, error),
) (T, error) {
	var zero T
	if v, ok := l.value(key); ok {
		return v.(T), nil
	}

	ch := l.flight.DoChan(key, func() (any, error) {
		// a flight that ended just before this one could fill the slot
		if v, ok := l.value(key); ok {
			return v, nil
		}
		l.setPending(key)
		v, err := fetch(context.WithoutCancel(ctx))
		l.settle(key, v, err)
		return v, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// get returns the value of a ready slot.
func get[T any](l *loader, key string) (T, bool) {
	var zero T
	v, ok := l.value(key)
	if !ok {
		return zero, false
	}
	return v.(T), true
}

func (l *loader) value(key string) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.ready[key]
	return v, ok
}

func (l *loader) setPending(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending[key] = struct{}{}
}

func (l *loader) settle(key string, v any, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, key)
	if err != nil {
		slog.Warn("Cannot load resource", "key", key, "error", err)
		return
	}
	l.ready[key] = v
}

// State implements catalog.Loader.
func (l *loader) State(key string) catalog.SlotState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.ready[key]; ok {
		return catalog.Ready
	}
	if _, ok := l.pending[key]; ok {
		return catalog.Pending
	}
	return catalog.Empty
}

// residentSubjects returns slugs of loaded subjects in sorted order.
func (l *loader) residentSubjects() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var res []string
	prefix := catalog.SubjectKey("")
	for k := range l.ready {
		if slug, ok := strings.CutPrefix(k, prefix); ok {
			res = append(res, slug)
		}
	}
	slices.Sort(res)
	return res
}
