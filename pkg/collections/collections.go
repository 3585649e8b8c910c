// Package collections describes user collections of favorite standards.
//
// A collection keeps an ordered list of standard codes. The default
// collection always exists and cannot be deleted. Collections can be
// exported to a self-describing JSON envelope and imported back, usually
// on another machine.
package collections

import (
	"context"
	"slices"
	"time"
)

// Default collection.
const (
	DefaultID          = "default"
	DefaultName        = "我的收藏"
	DefaultDescription = "默认收藏夹"
)

// Collection is a named ordered list of standard codes.
type Collection struct {
	// ID is empty inside an exported Envelope.
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string    `json:"name" yaml:"name" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
	// ImportedAt and ImportedFrom are set for imported collections.
	// ImportedFrom keeps exportedAt of the envelope.
	ImportedAt    *time.Time `json:"importedAt,omitempty" yaml:"imported_at,omitempty"`
	ImportedFrom  string     `json:"importedFrom,omitempty" yaml:"imported_from,omitempty"`
	StandardCodes []string   `json:"standardCodes" yaml:"standard_codes"`
}

// Has is true when the collection contains the code.
func (c Collection) Has(code string) bool {
	return slices.Contains(c.StandardCodes, code)
}

// Update changes collection metadata. Nil fields stay as they are.
type Update struct {
	Name        *string
	Description *string
}

// Store keeps collections persistently. Methods that take an id return
// nil or false without an error when the collection does not exist.
type Store interface {
	// List returns the default collection first, then the rest from
	// newest to oldest.
	List(ctx context.Context) ([]Collection, error)
	// Get returns a collection or nil.
	Get(ctx context.Context, id string) (*Collection, error)
	// Create makes a new empty collection.
	Create(ctx context.Context, name, description string) (*Collection, error)
	// Update changes name or description. ID never changes.
	Update(ctx context.Context, id string, upd Update) (*Collection, error)
	// Delete removes a collection. The default collection is never
	// deleted.
	Delete(ctx context.Context, id string) (bool, error)

	// Add appends a code unless it is already there.
	Add(ctx context.Context, id, code string) (bool, error)
	// Remove deletes a code from a collection.
	Remove(ctx context.Context, id, code string) (bool, error)
	// Reorder moves a code to newIndex, clamped to the list bounds.
	Reorder(ctx context.Context, id, code string, newIndex int) (bool, error)
	// IsFavorited is true when any collection has the code.
	IsFavorited(ctx context.Context, code string) (bool, error)
	// CollectionsFor returns ids of collections with the code.
	CollectionsFor(ctx context.Context, code string) ([]string, error)

	// Export wraps a collection into an Envelope.
	Export(ctx context.Context, id string) (*Envelope, error)
	// Import saves the collection of an Envelope under a new id.
	Import(ctx context.Context, env Envelope) (*Collection, error)

	Close() error
}

// SortList puts the default collection first and the rest by creation
// time, newest first.
func SortList(cols []Collection) {
	slices.SortStableFunc(cols, func(a, b Collection) int {
		switch {
		case a.ID == DefaultID:
			return -1
		case b.ID == DefaultID:
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Move returns codes with code moved to newIndex. Indexes out of bounds
// are clamped. The second value is false when code is missing.
func Move(codes []string, code string, newIndex int) ([]string, bool) {
	cur := slices.Index(codes, code)
	if cur < 0 {
		return codes, false
	}
	res := slices.Delete(slices.Clone(codes), cur, cur+1)
	newIndex = max(0, min(newIndex, len(res)))
	return slices.Insert(res, newIndex, code), true
}
