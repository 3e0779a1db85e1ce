package blocks

import (
	"fmt"

	"github.com/verolabs/vero/pkg/page"
)

// renderContent renders a title/body pair with an optional image on the
// left or right. No image means no placeholder: the text simply takes
// the full width.
func renderContent(s page.Section, theme page.Theme) string {
	c := s.Content

	img := ""
	layout := "content-full"
	if src := c.Str("imageUrl", ""); src != "" {
		img = fmt.Sprintf(`<img class="content-img %s" src="%s" alt="%s">`,
			page.CornerClass(theme.CornerStyle), esc(src), esc(c.Str("title", "")))
		layout = "content-img-right"
		if c.Str("imagePosition", "right") == "left" {
			layout = "content-img-left"
		}
	}

	text := fmt.Sprintf(
		`<div class="content-text"><h2 style="color:%s">%s</h2><p>%s</p></div>`,
		esc(theme.Secondary),
		esc(c.Str("title", "Content Title")),
		esc(c.Str("body", "Describe your offer in detail.")),
	)

	return sectionOpen(s, theme, true) +
		fmt.Sprintf(`<div class="content-inner %s">%s%s</div>`, layout, text, img) +
		sectionClose
}
