package blocks

import (
	"fmt"
	"html"
	"strings"

	"github.com/verolabs/vero/pkg/page"
)

func esc(s string) string {
	return html.EscapeString(s)
}

// sectionOpen emits the wrapping element every block shares: the
// data-section id used as render key and mutation target, the size tier
// class, the background override, and the section-level effect class.
//
// Effect scope: pulse, bounce and shake animate the whole section. Glow
// animates the hero's primary CTA instead (see renderHero); on any
// other block type glow falls back to the section wrapper.
func sectionOpen(s page.Section, theme page.Theme, glowOnSection bool) string {
	classes := []string{"block", "block-" + string(s.Type), page.FontClass(theme.FontFamily)}
	if c := page.SizeClass(s.FontSizeTier); c != "" {
		classes = append(classes, c)
	}
	switch s.VisualEffect {
	case page.EffectGlow:
		if glowOnSection {
			classes = append(classes, page.EffectClass(s.VisualEffect))
		}
	case page.EffectNone, "":
	default:
		classes = append(classes, page.EffectClass(s.VisualEffect))
	}

	style := ""
	if s.BackgroundColor != "" {
		style = fmt.Sprintf(` style="background-color:%s"`, esc(s.BackgroundColor))
	}
	if s.VisualEffect == page.EffectGlow && glowOnSection {
		style = glowStyle(s, style)
	}

	return fmt.Sprintf(`<section class="%s" data-section="%s"%s>`,
		strings.Join(classes, " "), esc(s.ID), style)
}

const sectionClose = "</section>"

// glowStyle folds the glow config into an existing style attribute.
func glowStyle(s page.Section, style string) string {
	color := s.EffectConfig.GlowColor
	if color == "" {
		color = "#FF6B00"
	}
	decl := fmt.Sprintf("--glow-color:%s;--glow-intensity:%s",
		esc(color), esc(glowIntensity(s.EffectConfig.GlowIntensity)))
	if style == "" {
		return fmt.Sprintf(` style="%s"`, decl)
	}
	return strings.TrimSuffix(style, `"`) + ";" + decl + `"`
}

func glowIntensity(v string) string {
	switch v {
	case "low":
		return "6px"
	case "high":
		return "24px"
	default:
		return "12px"
	}
}

// button renders a themed CTA button carrying a client event name.
func button(label, event string, theme page.Theme, extraClass string) string {
	cls := "btn " + page.CornerClass(theme.CornerStyle)
	if extraClass != "" {
		cls += " " + extraClass
	}
	return fmt.Sprintf(`<button class="%s" style="background-color:%s" lv-click="%s">%s</button>`,
		cls, esc(theme.Primary), esc(event), esc(label))
}
