// Package store persists page documents, leads and settings as JSON
// values in a buntdb file and fans out per-key change notifications so
// live views and builder panels observe every write.
package store

import (
	"context"
	"errors"
)

// Collections used by the builder. Keys inside a collection are slugs
// for pages, server-assigned ids for leads, and fixed names for
// settings.
const (
	Pages    = "pages"
	Leads    = "leads"
	Settings = "settings"

	// AdminSettingsKey is the single settings document holding the
	// shared passphrase.
	AdminSettingsKey = "admin"
)

// Common store errors.
var (
	ErrNotFound = errors.New("document not found")
	ErrClosed   = errors.New("store is closed")
)

// Store is the document-store interface the rest of the system codes
// against. Writes are full-document overwrites at last-writer-wins
// granularity: there is no field-level merge on Put and no revision
// check, so two simultaneous editors silently overwrite each other.
// A known consistency gap, inherited deliberately.
type Store interface {
	// Get retrieves one document.
	Get(ctx context.Context, collection, key string) ([]byte, error)

	// Put stores a document, replacing any previous value, and
	// notifies subscribers of the key.
	Put(ctx context.Context, collection, key string, value []byte) error

	// Merge shallow-merges fields into an existing JSON object
	// document and notifies subscribers.
	Merge(ctx context.Context, collection, key string, fields map[string]any) error

	// Delete removes a document. Deleting an absent key is a no-op.
	// Subscribers of the key are notified with a nil value.
	Delete(ctx context.Context, collection, key string) error

	// List returns every document in a collection, keyed by id.
	List(ctx context.Context, collection string) (map[string][]byte, error)

	// Append stores a document under a server-assigned id and returns
	// the id. Used for leads.
	Append(ctx context.Context, collection string, value []byte) (string, error)

	// Subscribe registers fn for changes to one key. fn receives the
	// new value (nil on delete) in write order; it must not block.
	// The returned cancel tears the subscription down; views call it
	// on unmount so a replaced view never sees stale updates.
	Subscribe(collection, key string, fn func(value []byte)) (cancel func())

	// Close releases the store. Further calls fail with ErrClosed.
	Close() error
}
