package blocks

import (
	"fmt"
	"strings"

	"github.com/verolabs/vero/pkg/page"
)

// renderFeatures renders the three fixed feature slots as a closed-form
// grid. Exactly three, always: the slot count is part of the block's
// contract, not a list to grow.
func renderFeatures(s page.Section, theme page.Theme) string {
	c := s.Content

	var cards strings.Builder
	for i := 1; i <= 3; i++ {
		title := c.Str(fmt.Sprintf("feature%dTitle", i), fmt.Sprintf("Feature %d", i))
		text := c.Str(fmt.Sprintf("feature%dText", i), "Explain this benefit.")
		fmt.Fprintf(&cards,
			`<div class="feature-card %s"><h3 style="color:%s">%s</h3><p>%s</p></div>`,
			page.CornerClass(theme.CornerStyle), esc(theme.Primary), esc(title), esc(text))
	}

	return sectionOpen(s, theme, true) + fmt.Sprintf(
		`<div class="features-head"><h2 style="color:%s">%s</h2><p>%s</p></div>`+
			`<div class="features-grid">%s</div>`,
		esc(theme.Secondary),
		esc(c.Str("title", "Why Choose Us")),
		esc(c.Str("subtitle", "Three reasons that matter.")),
		cards.String(),
	) + sectionClose
}
