package blocks

import (
	"fmt"

	"github.com/verolabs/vero/pkg/page"
)

// renderBio renders a name/role card with an optional avatar image and
// free-text bio.
func renderBio(s page.Section, theme page.Theme) string {
	c := s.Content

	avatar := ""
	if src := c.Str("avatarUrl", ""); src != "" {
		avatar = fmt.Sprintf(`<img class="bio-avatar" src="%s" alt="%s">`,
			esc(src), esc(c.Str("name", "")))
	}

	return sectionOpen(s, theme, true) + fmt.Sprintf(
		`<div class="bio-card %s">%s`+
			`<h2 style="color:%s">%s</h2>`+
			`<p class="bio-role" style="color:%s">%s</p>`+
			`<p class="bio-text">%s</p>`+
			`</div>`,
		page.CornerClass(theme.CornerStyle), avatar,
		esc(theme.Secondary), esc(c.Str("name", "Your Name")),
		esc(theme.Primary), esc(c.Str("role", "Founder")),
		esc(c.Str("bio", "Tell visitors who you are.")),
	) + sectionClose
}
