package live

import (
	"fmt"
	"strings"

	"github.com/verolabs/vero/pkg/page"
)

func renderSetup() string {
	var b strings.Builder
	b.WriteString(`<div class="dash dash-auth"><div class="auth-card">`)
	b.WriteString(`<h1>Welcome</h1>`)
	b.WriteString(`<p>Choose a passphrase to protect the dashboard and the page builder.</p>`)
	b.WriteString(`<form lv-submit="setup">`)
	b.WriteString(`<input type="password" name="passphrase" placeholder="Passphrase" autofocus>`)
	b.WriteString(`<input type="password" name="confirm" placeholder="Confirm passphrase">`)
	b.WriteString(`<button type="submit" class="btn btn-primary">Set up</button>`)
	b.WriteString(`</form></div></div>`)
	return b.String()
}

func renderLogin() string {
	var b strings.Builder
	b.WriteString(`<div class="dash dash-auth"><div class="auth-card">`)
	b.WriteString(`<h1>Dashboard</h1>`)
	b.WriteString(`<form lv-submit="login">`)
	b.WriteString(`<input type="password" name="passphrase" placeholder="Passphrase" autofocus>`)
	b.WriteString(`<button type="submit" class="btn btn-primary">Sign in</button>`)
	b.WriteString(`</form></div></div>`)
	return b.String()
}

func renderHome(pages []page.Document, counts map[string]int, armedDelete, notice string) string {
	var b strings.Builder
	b.WriteString(`<div class="dash">`)

	b.WriteString(`<header class="dash-head">`)
	b.WriteString(`<h1>Campaigns</h1>`)
	b.WriteString(`<button class="btn btn-ghost" lv-click="refresh">Refresh</button>`)
	b.WriteString(`<button class="btn btn-ghost" lv-click="logout">Sign out</button>`)
	b.WriteString(`</header>`)

	if notice != "" {
		fmt.Fprintf(&b, `<div class="dash-notice">%s</div>`, esc(notice))
	}

	if slug, n := topPerformer(counts); slug != "" {
		fmt.Fprintf(&b,
			`<div class="dash-top">Top performer: <strong>%s</strong> with %d leads</div>`,
			esc(slug), n)
	}

	b.WriteString(`<form class="dash-create" lv-submit="create-page">`)
	b.WriteString(`<input type="text" name="name" placeholder="New campaign name">`)
	b.WriteString(`<button type="submit" class="btn btn-primary">Create</button>`)
	b.WriteString(`</form>`)

	b.WriteString(`<table class="dash-table"><thead><tr>`)
	b.WriteString(`<th>Page</th><th>Status</th><th>Leads</th><th></th>`)
	b.WriteString(`</tr></thead><tbody>`)
	for _, d := range pages {
		b.WriteString(`<tr>`)
		fmt.Fprintf(&b, `<td><a href="/p/%s" target="_blank">%s</a></td>`, esc(d.ID), esc(d.ID))
		fmt.Fprintf(&b, `<td><span class="status status-%s">%s</span></td>`, d.Status, d.Status)
		fmt.Fprintf(&b, `<td>%d</td>`, counts[d.ID])

		b.WriteString(`<td class="dash-actions">`)
		toggleLabel := "Publish"
		if d.Status == page.StatusPublished {
			toggleLabel = "Unpublish"
		}
		fmt.Fprintf(&b, `<button class="btn btn-ghost" lv-click="toggle-status" lv-value-slug="%s">%s</button>`,
			esc(d.ID), toggleLabel)
		fmt.Fprintf(&b, `<button class="btn btn-ghost" lv-click="clone-page" lv-value-slug="%s">Clone</button>`,
			esc(d.ID))
		if armedDelete == d.ID {
			b.WriteString(`<button class="btn btn-danger" lv-click="confirm-delete">Confirm</button>`)
			b.WriteString(`<button class="btn btn-ghost" lv-click="cancel-delete">Keep</button>`)
		} else {
			fmt.Fprintf(&b, `<button class="btn btn-ghost" lv-click="delete-page" lv-value-slug="%s">Delete</button>`,
				esc(d.ID))
		}
		b.WriteString(`</td></tr>`)
	}
	if len(pages) == 0 {
		b.WriteString(`<tr><td colspan="4" class="dash-empty">No pages yet. Create your first campaign above.</td></tr>`)
	}
	b.WriteString(`</tbody></table></div>`)
	return b.String()
}
