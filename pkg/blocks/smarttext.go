package blocks

import (
	"fmt"
	"strings"

	"github.com/verolabs/vero/pkg/page"
	"github.com/verolabs/vero/pkg/smarttext"
)

// renderSmartText renders each paragraph through the smart-text parser
// independently. The optional word effect (content key "wordEffect") is
// distinct from the section-level effect and applies only to
// highlighted segments.
func renderSmartText(s page.Section, theme page.Theme) string {
	c := s.Content

	wordEffect := page.EffectClass(page.Effect(c.Str("wordEffect", "")))

	var body strings.Builder
	if title := c.Str("title", ""); title != "" {
		fmt.Fprintf(&body, `<h2 style="color:%s">%s</h2>`, esc(theme.Secondary), esc(title))
	}

	paragraphs := c.List("paragraphs")
	if len(paragraphs) == 0 {
		paragraphs = []string{"Write [highlighted|#FF6B00] smart text here."}
	}
	for _, p := range paragraphs {
		body.WriteString("<p>")
		for _, seg := range smarttext.Parse(p) {
			if !seg.Highlighted {
				body.WriteString(esc(seg.Text))
				continue
			}
			cls := "smart-highlight"
			if wordEffect != "" {
				cls += " " + wordEffect
			}
			fmt.Fprintf(&body, `<span class="%s" style="color:%s">%s</span>`,
				cls, esc(seg.Color), esc(seg.Text))
		}
		body.WriteString("</p>")
	}

	return sectionOpen(s, theme, true) + body.String() + sectionClose
}
