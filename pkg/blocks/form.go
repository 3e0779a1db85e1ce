package blocks

import (
	"fmt"

	"github.com/verolabs/vero/pkg/page"
)

// renderForm renders the lead-capture form: required name, email and
// phone inputs plus a submit button. Submission raises the lead-submit
// event on the owning view; the block itself performs no network I/O.
func renderForm(s page.Section, theme page.Theme) string {
	c := s.Content
	corner := page.CornerClass(theme.CornerStyle)

	return sectionOpen(s, theme, true) + fmt.Sprintf(
		`<div class="form-card %s">`+
			`<h2 style="color:%s">%s</h2>`+
			`<p class="form-sub">%s</p>`+
			`<form lv-submit="lead-submit">`+
			`<input required type="text" name="name" placeholder="Full Name" class="%s">`+
			`<input required type="email" name="email" placeholder="Email Address" class="%s">`+
			`<input required type="tel" name="phone" placeholder="Phone Number" class="%s">`+
			`<button type="submit" class="btn %s" style="background-color:%s">%s</button>`+
			`</form>`+
			`</div>`,
		corner,
		esc(theme.Secondary), esc(c.Str("title", "Secure Your Seat")),
		esc(c.Str("subtitle", "Register now to unlock the material.")),
		corner, corner, corner,
		corner, esc(theme.Primary), esc(c.Str("btnText", "Register")),
	) + sectionClose
}
