package blocks

import (
	"fmt"

	"github.com/verolabs/vero/pkg/page"
)

// renderHero renders the fixed-role hero fields: tag, headline,
// subheadline and CTA, plus an optional secondary CTA that only appears
// when its text is set. Glow attaches to the primary button here, not
// the section.
func renderHero(s page.Section, theme page.Theme) string {
	c := s.Content

	primaryBtn := button(c.Str("ctaText", "Get Started"), "cta-click", theme, heroGlowClass(s))
	if s.VisualEffect == page.EffectGlow {
		primaryBtn = wrapGlowVars(primaryBtn, s)
	}

	secondary := ""
	if txt := c.Str("ctaSecondary", ""); txt != "" {
		secondary = fmt.Sprintf(`<button class="btn btn-secondary %s" lv-click="cta-click">%s</button>`,
			page.CornerClass(theme.CornerStyle), esc(txt))
	}

	return sectionOpen(s, theme, false) + fmt.Sprintf(
		`<div class="hero-inner" style="background-color:%s">`+
			`<span class="hero-tag" style="color:%s">%s</span>`+
			`<h1>%s</h1>`+
			`<p class="hero-sub">%s</p>`+
			`<div class="hero-cta">%s%s</div>`+
			`</div>`,
		esc(theme.Secondary), esc(theme.Primary),
		esc(c.Str("tag", "NEW")),
		esc(c.Str("headline", "Your Headline Here")),
		esc(c.Str("subheadline", "Write a compelling subtitle.")),
		primaryBtn, secondary,
	) + sectionClose
}

func heroGlowClass(s page.Section) string {
	if s.VisualEffect == page.EffectGlow {
		return "fx-glow"
	}
	return ""
}

// wrapGlowVars surrounds the CTA with a span carrying the glow custom
// properties so the animation reads the configured color and spread.
func wrapGlowVars(inner string, s page.Section) string {
	color := s.EffectConfig.GlowColor
	if color == "" {
		color = "#FF6B00"
	}
	return fmt.Sprintf(`<span style="--glow-color:%s;--glow-intensity:%s">%s</span>`,
		esc(color), esc(glowIntensity(s.EffectConfig.GlowIntensity)), inner)
}
