// Package page defines the page-document model: the typed shape of a
// campaign page, its sections, and the pure mutation operations the
// builder applies to it. Nothing in this package performs I/O;
// persistence of mutated documents is the caller's responsibility.
package page

import (
	"encoding/json"
	"time"
)

// SectionType identifies a block renderer.
type SectionType string

const (
	TypeHero      SectionType = "hero"
	TypeSmartText SectionType = "smart_text"
	TypeContent   SectionType = "content"
	TypeFeatures  SectionType = "features"
	TypeBio       SectionType = "bio"
	TypeForm      SectionType = "form"
)

// SectionTypes lists every block type in the order the builder's
// add-section menu shows them.
var SectionTypes = []SectionType{
	TypeHero, TypeSmartText, TypeContent, TypeFeatures, TypeBio, TypeForm,
}

// Effect is a section-level visual effect.
type Effect string

const (
	EffectNone   Effect = "none"
	EffectPulse  Effect = "pulse"
	EffectBounce Effect = "bounce"
	EffectGlow   Effect = "glow"
	EffectShake  Effect = "shake"
)

// EffectConfig tunes the glow effect.
type EffectConfig struct {
	GlowColor     string `json:"glowColor,omitempty"`
	GlowIntensity string `json:"glowIntensity,omitempty"`
}

// SizeTier scales a section's base font size.
type SizeTier string

const (
	SizeSmall   SizeTier = "small"
	SizeDefault SizeTier = "default"
	SizeLarge   SizeTier = "large"
	SizeXLarge  SizeTier = "xlarge"
)

// FontFamily selects the page typeface class.
type FontFamily string

const (
	FontSerif FontFamily = "serif"
	FontSans  FontFamily = "sans"
	FontMono  FontFamily = "mono"
)

// CornerStyle selects the corner rounding applied to cards and buttons.
type CornerStyle string

const (
	CornerNone    CornerStyle = "none"
	CornerSmall   CornerStyle = "small"
	CornerRounded CornerStyle = "rounded"
	CornerPill    CornerStyle = "pill"
)

// Theme is the page-wide color and typography configuration. It is a
// value type: edits substitute a whole new Theme, never patch one.
type Theme struct {
	Primary     string      `json:"primary"`
	Secondary   string      `json:"secondary"`
	Background  string      `json:"background"`
	FontFamily  FontFamily  `json:"fontFamily"`
	CornerStyle CornerStyle `json:"cornerStyle"`
}

// SEO holds the document head metadata.
type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// ThankYou configures the post-submission screen.
type ThankYou struct {
	Title          string `json:"title"`
	Message        string `json:"message"`
	ShowSocials    bool   `json:"showSocials"`
	WhatsappLink   string `json:"whatsappLink,omitempty"`
	TelegramLink   string `json:"telegramLink,omitempty"`
	InstagramLink  string `json:"instagramLink,omitempty"`
	FacebookLink   string `json:"facebookLink,omitempty"`
	CustomLink     string `json:"customLink,omitempty"`
	CustomLinkText string `json:"customLinkText,omitempty"`
}

// Content is a section's free-form field map. Values are strings or
// string lists; anything else that arrives through JSON is coerced by
// the accessors. Unknown string keys are still edited and rendered
// generically, which is what lets new fields appear without code
// changes.
type Content map[string]any

// Str returns the string value for key, or fallback when the key is
// missing, empty, or not a string.
func (c Content) Str(key, fallback string) string {
	if v, ok := c[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// List returns the string-list value for key. JSON decoding produces
// []any, so both representations are accepted.
func (c Content) List(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Clone deep-copies the content map.
func (c Content) Clone() Content {
	out := make(Content, len(c))
	for k, v := range c {
		if list, ok := v.([]string); ok {
			out[k] = append([]string(nil), list...)
			continue
		}
		if list, ok := v.([]any); ok {
			out[k] = append([]any(nil), list...)
			continue
		}
		out[k] = v
	}
	return out
}

// Section is one renderable unit of a page. ID is unique within the
// document and stable once created; it is the render key and the target
// of every mutation. Slice order is render order.
type Section struct {
	ID              string       `json:"id"`
	Type            SectionType  `json:"type"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	VisualEffect    Effect       `json:"visualEffect,omitempty"`
	EffectConfig    EffectConfig `json:"effectConfig,omitempty"`
	FontSizeTier    SizeTier     `json:"fontSizeTier,omitempty"`
	Content         Content      `json:"content"`
}

// Clone deep-copies the section.
func (s Section) Clone() Section {
	s.Content = s.Content.Clone()
	return s
}

// Status is the publication state of a document.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Document is one campaign page, keyed by slug. It is replaced whole on
// every edit; Revision counts store writes and is informational only
// (writes are last-writer-wins, see the store package).
type Document struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Revision  uint64    `json:"revision"`
	Theme     Theme     `json:"theme"`
	SEO       SEO       `json:"seo"`
	ThankYou  ThankYou  `json:"thankYou"`
	Sections  []Section `json:"sections"`
}

// Clone deep-copies the document. Every mutation operation starts from
// a clone so callers keep an untouched copy for retry after a failed
// write.
func (d Document) Clone() Document {
	sections := make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		sections[i] = s.Clone()
	}
	d.Sections = sections
	return d
}

// Section returns the section with the given id, or nil.
func (d *Document) Section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// MarshalJSON keeps Sections non-null so a decoded document always has
// a list to render, even when empty.
func (d Document) MarshalJSON() ([]byte, error) {
	type alias Document
	if d.Sections == nil {
		d.Sections = []Section{}
	}
	return json.Marshal(alias(d))
}

// Lead is one captured form submission, tied to its source page.
// Leads are append-only: created once, never updated or deleted here.
type Lead struct {
	ID          string            `json:"id,omitempty"`
	Fields      map[string]string `json:"fields"`
	SourcePage  string            `json:"source_page"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// Settings is the single shared admin settings document. The passphrase
// is stored and compared in plaintext, exactly like the system this
// replaces. A known security gap, kept visible rather than patched.
type Settings struct {
	Passphrase string `json:"passphrase"`
}
