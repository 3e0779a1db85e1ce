package live

import (
	"fmt"
	"html"
	"strings"

	"github.com/verolabs/vero/pkg/blocks"
	"github.com/verolabs/vero/pkg/page"
)

func esc(s string) string { return html.EscapeString(s) }

// pageShell wraps body markup in the themed page container. The theme
// colors become CSS custom properties so the stylesheet and the block
// markup share one source of truth.
func pageShell(d page.Document, body string) string {
	theme := d.Theme
	return fmt.Sprintf(
		`<div class="vero-page %s %s" style="--primary:%s;--secondary:%s;--background:%s">%s</div>`,
		page.FontClass(theme.FontFamily), page.CornerClass(theme.CornerStyle),
		esc(theme.Primary), esc(theme.Secondary), esc(theme.Background),
		body)
}

func renderLoading() string {
	return `<div class="vero-loading"><div class="spinner"></div></div>`
}

func renderNotFound(slug string) string {
	return fmt.Sprintf(
		`<div class="vero-notfound"><h1>Page not found</h1><p>No page exists at <code>%s</code>.</p></div>`,
		esc(slug))
}

func renderLive(d page.Document, overlay string) string {
	var b strings.Builder
	b.WriteString(blocks.RenderAll(d))
	if d.Status == page.StatusDraft && overlay != "" {
		b.WriteString(`<div class="draft-banner">Draft — not published</div>`)
	}
	b.WriteString(overlay)
	return pageShell(d, b.String())
}

// renderThankYou renders the post-submission screen. Social links only
// appear when enabled and non-empty, so a half-configured page never
// shows dead buttons.
func renderThankYou(d page.Document, overlay string) string {
	ty := d.ThankYou
	title := ty.Title
	if title == "" {
		title = "Thank you!"
	}
	message := ty.Message
	if message == "" {
		message = "We received your details and will be in touch shortly."
	}

	var b strings.Builder
	b.WriteString(`<div class="thankyou">`)
	fmt.Fprintf(&b, `<h1 class="thankyou-title">%s</h1>`, esc(title))
	fmt.Fprintf(&b, `<p class="thankyou-message">%s</p>`, esc(message))

	if ty.ShowSocials {
		links := []struct{ href, label string }{
			{ty.WhatsappLink, "WhatsApp"},
			{ty.TelegramLink, "Telegram"},
			{ty.InstagramLink, "Instagram"},
			{ty.FacebookLink, "Facebook"},
		}
		var items []string
		for _, l := range links {
			if l.href != "" {
				items = append(items, fmt.Sprintf(
					`<a class="social-link" href="%s" target="_blank" rel="noopener">%s</a>`,
					esc(l.href), l.label))
			}
		}
		if ty.CustomLink != "" {
			label := ty.CustomLinkText
			if label == "" {
				label = ty.CustomLink
			}
			items = append(items, fmt.Sprintf(
				`<a class="social-link" href="%s" target="_blank" rel="noopener">%s</a>`,
				esc(ty.CustomLink), esc(label)))
		}
		if len(items) > 0 {
			fmt.Fprintf(&b, `<div class="thankyou-socials">%s</div>`, strings.Join(items, ""))
		}
	}

	b.WriteString(`<button class="btn btn-ghost" lv-click="thankyou-back">Back to page</button>`)
	b.WriteString(`</div>`)
	b.WriteString(overlay)
	return pageShell(d, b.String())
}

func renderUnlockPrompt(configured bool) string {
	var b strings.Builder
	b.WriteString(`<div class="builder-prompt"><div class="builder-prompt-card">`)
	if configured {
		b.WriteString(`<h2>Builder</h2>`)
		b.WriteString(`<form lv-submit="builder-unlock">`)
		b.WriteString(`<input type="password" name="passphrase" placeholder="Passphrase" autofocus>`)
		b.WriteString(`<button type="submit" class="btn btn-primary">Unlock</button>`)
		b.WriteString(`</form>`)
	} else {
		b.WriteString(`<h2>Builder</h2>`)
		b.WriteString(`<p>No passphrase is configured yet. Open the dashboard to set one up.</p>`)
	}
	b.WriteString(`<button class="btn btn-ghost" lv-click="builder-close">Close</button>`)
	b.WriteString(`</div></div>`)
	return b.String()
}

// renderBuilder draws the editing side panel over the live page.
func renderBuilder(d page.Document, bs builderState) string {
	var b strings.Builder
	b.WriteString(`<aside class="builder">`)
	b.WriteString(`<header class="builder-head">`)
	b.WriteString(`<span class="builder-title">Builder</span>`)
	b.WriteString(builderStatusToggle(d.Status))
	b.WriteString(`<button class="btn-icon" lv-click="builder-close" title="Close">&times;</button>`)
	b.WriteString(`</header>`)

	b.WriteString(`<nav class="builder-tabs">`)
	for _, tab := range []struct{ id, label string }{
		{TabSections, "Sections"},
		{TabTheme, "Theme"},
		{TabSEO, "SEO"},
		{TabThankYou, "Thank You"},
	} {
		active := ""
		if tab.id == bs.tab {
			active = " active"
		}
		fmt.Fprintf(&b, `<button class="builder-tab%s" lv-click="builder-tab" lv-value-tab="%s">%s</button>`,
			active, tab.id, tab.label)
	}
	b.WriteString(`</nav>`)

	b.WriteString(`<div class="builder-body">`)
	switch bs.tab {
	case TabTheme:
		b.WriteString(renderThemeTab(d))
	case TabSEO:
		b.WriteString(renderSEOTab(d))
	case TabThankYou:
		b.WriteString(renderThankYouTab(d))
	default:
		b.WriteString(renderSectionsTab(d, bs))
	}
	b.WriteString(`</div></aside>`)
	return b.String()
}

func builderStatusToggle(status page.Status) string {
	if status == page.StatusPublished {
		return `<button class="btn btn-status published" lv-click="set-status" lv-value-value="draft">Published</button>`
	}
	return `<button class="btn btn-status draft" lv-click="set-status" lv-value-value="published">Draft</button>`
}

func renderSectionsTab(d page.Document, bs builderState) string {
	var b strings.Builder

	b.WriteString(`<div class="builder-add">`)
	for _, t := range page.SectionTypes {
		fmt.Fprintf(&b, `<button class="btn btn-add" lv-click="add-section" lv-value-type="%s">+ %s</button>`,
			t, esc(blocks.Label(t)))
	}
	b.WriteString(`</div>`)

	b.WriteString(`<ul class="builder-sections">`)
	for i, s := range d.Sections {
		fmt.Fprintf(&b, `<li class="builder-section" data-section-ref="%s">`, esc(s.ID))
		fmt.Fprintf(&b, `<span class="section-label">%s</span>`, esc(blocks.Label(s.Type)))

		b.WriteString(`<span class="section-controls">`)
		if i > 0 {
			fmt.Fprintf(&b, `<button class="btn-icon" lv-click="move-section" lv-value-id="%s" lv-value-dir="up">&uarr;</button>`, esc(s.ID))
		}
		if i < len(d.Sections)-1 {
			fmt.Fprintf(&b, `<button class="btn-icon" lv-click="move-section" lv-value-id="%s" lv-value-dir="down">&darr;</button>`, esc(s.ID))
		}
		fmt.Fprintf(&b, `<button class="btn-icon" lv-click="edit-section" lv-value-id="%s">&#9998;</button>`, esc(s.ID))
		if bs.armedDelete == s.ID {
			b.WriteString(`<button class="btn btn-danger" lv-click="confirm-delete">Confirm</button>`)
			b.WriteString(`<button class="btn btn-ghost" lv-click="cancel-delete">Keep</button>`)
		} else {
			fmt.Fprintf(&b, `<button class="btn-icon" lv-click="delete-section" lv-value-id="%s">&times;</button>`, esc(s.ID))
		}
		b.WriteString(`</span>`)

		if bs.editing == s.ID {
			b.WriteString(renderSectionEditor(s))
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// renderSectionEditor emits inputs for every content field the section
// actually carries, plus the shared style controls. Field widgets come
// from the value's shape, so new content keys need no builder change.
func renderSectionEditor(s page.Section) string {
	var b strings.Builder
	b.WriteString(`<div class="section-editor">`)

	for _, fd := range page.DescribeContent(s.Content) {
		fmt.Fprintf(&b, `<label class="field-label">%s</label>`, esc(fd.Key))
		switch fd.Kind {
		case page.FieldMultiline:
			fmt.Fprintf(&b,
				`<textarea lv-change="update-content" lv-value-id="%s" lv-value-field="%s">%s</textarea>`,
				esc(s.ID), esc(fd.Key), esc(fd.Value))
		case page.FieldList:
			fmt.Fprintf(&b, `<div class="field-list" lv-change="update-content" lv-value-id="%s" lv-value-field="%s">`,
				esc(s.ID), esc(fd.Key))
			for _, item := range fd.Items {
				fmt.Fprintf(&b, `<input type="text" value="%s">`, esc(item))
			}
			b.WriteString(`</div>`)
		default:
			fmt.Fprintf(&b,
				`<input type="text" value="%s" lv-change="update-content" lv-value-id="%s" lv-value-field="%s">`,
				esc(fd.Value), esc(s.ID), esc(fd.Key))
		}
	}

	b.WriteString(`<label class="field-label">Background</label>`)
	fmt.Fprintf(&b,
		`<input type="color" value="%s" lv-change="update-field" lv-value-id="%s" lv-value-field="backgroundColor">`,
		esc(s.BackgroundColor), esc(s.ID))

	b.WriteString(`<label class="field-label">Effect</label>`)
	fmt.Fprintf(&b, `<select lv-change="update-field" lv-value-id="%s" lv-value-field="visualEffect">`, esc(s.ID))
	for _, e := range page.Effects {
		sel := ""
		if e == s.VisualEffect || (s.VisualEffect == "" && e == page.EffectNone) {
			sel = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, e, sel, e)
	}
	b.WriteString(`</select>`)

	if s.VisualEffect == page.EffectGlow {
		b.WriteString(`<label class="field-label">Glow color</label>`)
		fmt.Fprintf(&b,
			`<input type="color" value="%s" lv-change="update-effect" lv-value-id="%s" lv-value-field="glowColor">`,
			esc(s.EffectConfig.GlowColor), esc(s.ID))
		b.WriteString(`<label class="field-label">Glow intensity</label>`)
		fmt.Fprintf(&b, `<select lv-change="update-effect" lv-value-id="%s" lv-value-field="glowIntensity">`, esc(s.ID))
		for _, level := range []string{"low", "medium", "high"} {
			sel := ""
			if level == s.EffectConfig.GlowIntensity {
				sel = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, level, sel, level)
		}
		b.WriteString(`</select>`)
	}

	b.WriteString(`<label class="field-label">Font size</label>`)
	fmt.Fprintf(&b, `<select lv-change="update-field" lv-value-id="%s" lv-value-field="fontSizeTier">`, esc(s.ID))
	for _, t := range page.SizeTiers {
		sel := ""
		if t == s.FontSizeTier || (s.FontSizeTier == "" && t == page.SizeDefault) {
			sel = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, t, sel, t)
	}
	b.WriteString(`</select>`)

	b.WriteString(`</div>`)
	return b.String()
}

func renderThemeTab(d page.Document) string {
	var b strings.Builder
	b.WriteString(`<div class="theme-grid">`)
	for _, name := range page.ThemeNames() {
		t := page.ThemeByName(name)
		fmt.Fprintf(&b,
			`<button class="theme-swatch" lv-click="set-theme" lv-value-name="%s" style="--primary:%s;--background:%s">%s</button>`,
			name, esc(t.Primary), esc(t.Background), esc(name))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderSEOTab(d page.Document) string {
	var b strings.Builder
	fields := []struct{ key, label, value string }{
		{"title", "Title", d.SEO.Title},
		{"description", "Description", d.SEO.Description},
		{"keywords", "Keywords", d.SEO.Keywords},
	}
	for _, f := range fields {
		fmt.Fprintf(&b, `<label class="field-label">%s</label>`, f.label)
		fmt.Fprintf(&b,
			`<input type="text" value="%s" lv-change="update-seo" lv-value-field="%s">`,
			esc(f.value), f.key)
	}
	return b.String()
}

func renderThankYouTab(d page.Document) string {
	ty := d.ThankYou
	var b strings.Builder
	fields := []struct{ key, label, value string }{
		{"title", "Title", ty.Title},
		{"message", "Message", ty.Message},
		{"whatsappLink", "WhatsApp link", ty.WhatsappLink},
		{"telegramLink", "Telegram link", ty.TelegramLink},
		{"instagramLink", "Instagram link", ty.InstagramLink},
		{"facebookLink", "Facebook link", ty.FacebookLink},
		{"customLink", "Custom link", ty.CustomLink},
		{"customLinkText", "Custom link text", ty.CustomLinkText},
	}
	for _, f := range fields {
		fmt.Fprintf(&b, `<label class="field-label">%s</label>`, f.label)
		fmt.Fprintf(&b,
			`<input type="text" value="%s" lv-change="update-thankyou" lv-value-field="%s">`,
			esc(f.value), f.key)
	}

	checked := ""
	if ty.ShowSocials {
		checked = " checked"
	}
	fmt.Fprintf(&b,
		`<label class="field-check"><input type="checkbox"%s lv-change="update-thankyou" lv-value-field="showSocials"> Show social links</label>`,
		checked)
	return b.String()
}
