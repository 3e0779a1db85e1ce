// Package blocks renders page sections to HTML. Every renderer is a
// pure function of (section, theme): no hidden state, no I/O, and a
// sensible render even from a freshly templated, otherwise-empty
// content map.
package blocks

import (
	"github.com/verolabs/vero/pkg/page"
)

// Block is one registry entry. Adding a block type is this entry plus a
// content template in the page package; nothing else changes.
type Block struct {
	Type   page.SectionType
	Label  string
	Render func(page.Section, page.Theme) string
}

var registry = map[page.SectionType]Block{
	page.TypeHero:      {Type: page.TypeHero, Label: "Hero", Render: renderHero},
	page.TypeSmartText: {Type: page.TypeSmartText, Label: "Smart Text", Render: renderSmartText},
	page.TypeContent:   {Type: page.TypeContent, Label: "Content", Render: renderContent},
	page.TypeFeatures:  {Type: page.TypeFeatures, Label: "Features", Render: renderFeatures},
	page.TypeBio:       {Type: page.TypeBio, Label: "Bio", Render: renderBio},
	page.TypeForm:      {Type: page.TypeForm, Label: "Form", Render: renderForm},
}

// Lookup returns the registry entry for a section type.
func Lookup(t page.SectionType) (Block, bool) {
	b, ok := registry[t]
	return b, ok
}

// Label returns the builder display name for a type, falling back to
// the raw type string for unregistered types.
func Label(t page.SectionType) string {
	if b, ok := registry[t]; ok {
		return b.Label
	}
	return string(t)
}

// Render renders one section. Sections of a type the registry does not
// know render to nothing: a stored document must never take the page
// down because the binary predates one of its block types.
func Render(s page.Section, theme page.Theme) string {
	b, ok := registry[s.Type]
	if !ok {
		return ""
	}
	return b.Render(s, theme)
}

// RenderAll renders a document's sections in list order, which is the
// render order.
func RenderAll(d page.Document) string {
	var out string
	for _, s := range d.Sections {
		out += Render(s, d.Theme)
	}
	return out
}
