package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/verolabs/vero/pkg/page"
)

// Catalog is the typed layer over the raw store: page documents in and
// out as page.Document, leads as page.Lead, settings as page.Settings.
// It owns the revision counter bump on page writes.
type Catalog struct {
	store Store
}

// NewCatalog wraps a store.
func NewCatalog(s Store) *Catalog {
	return &Catalog{store: s}
}

// Store exposes the underlying raw store.
func (c *Catalog) Store() Store {
	return c.store
}

// GetPage loads one page document.
func (c *Catalog) GetPage(ctx context.Context, slug string) (page.Document, error) {
	var doc page.Document
	raw, err := c.store.Get(ctx, Pages, slug)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode page %s: %w", slug, err)
	}
	return doc, nil
}

// PutPage stores a whole page document under its slug, bumping the
// revision counter. The counter is informational: there is no
// compare-and-swap, writes remain last-writer-wins.
func (c *Catalog) PutPage(ctx context.Context, doc page.Document) error {
	doc.Revision++
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode page %s: %w", doc.ID, err)
	}
	return c.store.Put(ctx, Pages, doc.ID, raw)
}

// DeletePage removes a page document.
func (c *Catalog) DeletePage(ctx context.Context, slug string) error {
	return c.store.Delete(ctx, Pages, slug)
}

// ListPages returns every page document.
func (c *Catalog) ListPages(ctx context.Context) ([]page.Document, error) {
	raws, err := c.store.List(ctx, Pages)
	if err != nil {
		return nil, err
	}
	out := make([]page.Document, 0, len(raws))
	for slug, raw := range raws {
		var doc page.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode page %s: %w", slug, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// SubscribePage delivers decoded page documents in write order; a nil
// document signals deletion. Undecodable payloads are dropped rather
// than delivered half-parsed.
func (c *Catalog) SubscribePage(slug string, fn func(*page.Document)) (cancel func()) {
	return c.store.Subscribe(Pages, slug, func(raw []byte) {
		if raw == nil {
			fn(nil)
			return
		}
		var doc page.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return
		}
		fn(&doc)
	})
}

// AppendLead records a form submission against its source page and
// returns the server-assigned lead id. Leads are append-only: nothing
// in this system updates or deletes them.
func (c *Catalog) AppendLead(ctx context.Context, lead page.Lead) (string, error) {
	if lead.SubmittedAt.IsZero() {
		lead.SubmittedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(lead)
	if err != nil {
		return "", fmt.Errorf("encode lead: %w", err)
	}
	return c.store.Append(ctx, Leads, raw)
}

// LeadCounts aggregates lead totals per source page.
func (c *Catalog) LeadCounts(ctx context.Context) (map[string]int, error) {
	raws, err := c.store.List(ctx, Leads)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, raw := range raws {
		var lead page.Lead
		if err := json.Unmarshal(raw, &lead); err != nil {
			continue
		}
		if lead.SourcePage != "" {
			counts[lead.SourcePage]++
		}
	}
	return counts, nil
}

// GetSettings loads the shared admin settings. A missing document
// returns ErrNotFound; callers treat that as "setup mode".
func (c *Catalog) GetSettings(ctx context.Context) (page.Settings, error) {
	var s page.Settings
	raw, err := c.store.Get(ctx, Settings, AdminSettingsKey)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// PutSettings stores the shared admin settings.
func (c *Catalog) PutSettings(ctx context.Context, s page.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return c.store.Put(ctx, Settings, AdminSettingsKey, raw)
}
