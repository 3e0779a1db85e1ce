package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/buntdb"
)

// Bunt is the buntdb-backed Store. Documents live under
// "<collection>:<key>" with JSON values; notifications fan out
// in-process after each committed write.
type Bunt struct {
	db       *buntdb.DB
	notifier *notifier

	// writeMu spans commit and publish. Without it two writers can
	// commit in one order and publish in the other, and subscribers
	// would be left holding the older document as the latest.
	writeMu sync.Mutex

	mu     sync.Mutex
	closed bool
}

// Open opens (or creates) a store at path. Use ":memory:" for an
// ephemeral store in tests.
func Open(path string) (*Bunt, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.Shrink()
	return &Bunt{db: db, notifier: newNotifier()}, nil
}

func dbKey(collection, key string) string {
	return collection + ":" + key
}

func (b *Bunt) checkOpen() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

// Get retrieves one document.
func (b *Bunt) Get(ctx context.Context, collection, key string) ([]byte, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}

	var val string
	err := b.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(dbKey(collection, key))
		if err != nil {
			return err
		}
		val = v
		return nil
	})
	if err == buntdb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return []byte(val), nil
}

// Put stores a document and notifies subscribers.
func (b *Bunt) Put(ctx context.Context, collection, key string, value []byte) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	err := b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(dbKey(collection, key), string(value), nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}

	b.notifier.publish(collection, key, value)
	return nil
}

// Merge shallow-merges fields into an existing JSON object. A missing
// document fails with ErrNotFound; merging is for partial edits of
// documents that already exist (the settings doc, SEO tweaks).
func (b *Bunt) Merge(ctx context.Context, collection, key string, fields map[string]any) error {
	current, err := b.Get(ctx, collection, key)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(current, &doc); err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, key, err)
	}
	for k, v := range fields {
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, key, err)
	}
	return b.Put(ctx, collection, key, merged)
}

// Delete removes a document; absent keys are a no-op.
func (b *Bunt) Delete(ctx context.Context, collection, key string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	err := b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(dbKey(collection, key))
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, key, err)
	}

	b.notifier.publish(collection, key, nil)
	return nil
}

// List returns every document in a collection.
func (b *Bunt) List(ctx context.Context, collection string) (map[string][]byte, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}

	prefix := collection + ":"
	out := make(map[string][]byte)
	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(prefix+"*", func(k, v string) bool {
			out[strings.TrimPrefix(k, prefix)] = []byte(v)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return out, nil
}

// Append stores a document under a fresh uuid and returns the id.
func (b *Bunt) Append(ctx context.Context, collection string, value []byte) (string, error) {
	id := uuid.NewString()
	if err := b.Put(ctx, collection, id, value); err != nil {
		return "", err
	}
	return id, nil
}

// Subscribe registers fn for changes to one key.
func (b *Bunt) Subscribe(collection, key string, fn func(value []byte)) (cancel func()) {
	return b.notifier.subscribe(dbKey(collection, key), fn)
}

// Close closes the store.
func (b *Bunt) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.db.Close()
}

// notifier fans a committed write out to the key's subscribers.
// Delivery is synchronous with the write so subscribers see documents
// in write order; handlers hand off to their own mailbox and return.
type notifier struct {
	mu     sync.RWMutex
	subs   map[string]map[int]func([]byte)
	nextID int
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]func([]byte))}
}

func (n *notifier) subscribe(topic string, fn func([]byte)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[topic] == nil {
		n.subs[topic] = make(map[int]func([]byte))
	}
	n.nextID++
	id := n.nextID
	n.subs[topic][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[topic], id)
			if len(n.subs[topic]) == 0 {
				delete(n.subs, topic)
			}
		})
	}
}

func (n *notifier) publish(collection, key string, value []byte) {
	n.mu.RLock()
	fns := make([]func([]byte), 0, len(n.subs[dbKey(collection, key)]))
	for _, fn := range n.subs[dbKey(collection, key)] {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(value)
	}
}
