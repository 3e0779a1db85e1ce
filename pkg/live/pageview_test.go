package live

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verolabs/vero/pkg/auth"
	"github.com/verolabs/vero/pkg/page"
	"github.com/verolabs/vero/pkg/store"
)

func newTestCatalog(t *testing.T) *store.Catalog {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return store.NewCatalog(s)
}

func mountedPageView(t *testing.T, catalog *store.Catalog, slug string) *PageView {
	t.Helper()
	v := NewPageView(catalog, auth.NewGate(catalog), nil)
	require.NoError(t, v.Mount(context.Background(), Params{"slug": slug}))
	t.Cleanup(v.Unmount)
	return v
}

// recorder captures posted info messages without a running runtime.
type recorder struct {
	msgs []any
}

func (r *recorder) Info(msg any) { r.msgs = append(r.msgs, msg) }

func TestPageViewMountSeedsDefaultSlug(t *testing.T) {
	catalog := newTestCatalog(t)
	v := mountedPageView(t, catalog, "")

	require.Equal(t, StateLive, v.state)
	require.Equal(t, page.DefaultSlug, v.doc.ID)

	stored, err := catalog.GetPage(context.Background(), page.DefaultSlug)
	require.NoError(t, err)
	require.Len(t, stored.Sections, 2)

	html := v.Render()
	hero := strings.Index(html, `data-section="hero_imported"`)
	form := strings.Index(html, `data-section="form_imported"`)
	require.Greater(t, hero, -1)
	require.Greater(t, form, hero)
}

func TestPageViewMountUnknownSlug(t *testing.T) {
	v := mountedPageView(t, newTestCatalog(t), "no-such-page")
	require.Equal(t, StateNotFound, v.state)
	require.Contains(t, v.Render(), "Page not found")
}

func TestPageViewLeadSubmit(t *testing.T) {
	catalog := newTestCatalog(t)
	v := mountedPageView(t, catalog, "")
	ctx := context.Background()

	err := v.HandleEvent(ctx, "lead-submit", map[string]any{"name": "Asha"})
	require.Error(t, err)
	require.Equal(t, StateLive, v.state)

	err = v.HandleEvent(ctx, "lead-submit", map[string]any{
		"name": "Asha", "email": "asha@example.com", "phone": "555",
	})
	require.NoError(t, err)
	require.Equal(t, StateThankYou, v.state)
	require.Contains(t, v.Render(), "Registration Successful!")

	counts, err := catalog.LeadCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{page.DefaultSlug: 1}, counts)
}

func TestThankYouStickyAcrossUpdates(t *testing.T) {
	catalog := newTestCatalog(t)
	v := mountedPageView(t, catalog, "")
	ctx := context.Background()

	require.NoError(t, v.HandleEvent(ctx, "lead-submit", map[string]any{"email": "a@b.c"}))
	require.Equal(t, StateThankYou, v.state)

	updated := v.doc.Clone()
	updated.Sections[0].Content["headline"] = "Changed Headline"
	require.NoError(t, v.HandleInfo(ctx, docUpdate{doc: &updated}))
	require.Equal(t, StateThankYou, v.state)

	require.NoError(t, v.HandleEvent(ctx, "thankyou-back", nil))
	require.Equal(t, StateLive, v.state)
	require.Contains(t, v.Render(), "Changed Headline")
}

func TestPageDeletedWhileViewing(t *testing.T) {
	v := mountedPageView(t, newTestCatalog(t), "")
	require.NoError(t, v.HandleInfo(context.Background(), docUpdate{doc: nil}))
	require.Equal(t, StateNotFound, v.state)
}

func TestSubscriptionReachesView(t *testing.T) {
	catalog := newTestCatalog(t)
	v := mountedPageView(t, catalog, "")
	rec := &recorder{}
	v.Attach(rec)

	changed := v.doc.Clone()
	changed.Sections[0].Content["headline"] = "Pushed"
	require.NoError(t, catalog.PutPage(context.Background(), changed))

	require.Len(t, rec.msgs, 1)
	require.NoError(t, v.HandleInfo(context.Background(), rec.msgs[0]))
	require.Contains(t, v.Render(), "Pushed")
}

// The subscription is registered before the initial load, so a page
// written at any point after mount reaches the view, even one that
// did not exist when the view came up.
func TestPageCreatedAfterMountGoesLive(t *testing.T) {
	catalog := newTestCatalog(t)
	v := NewPageView(catalog, auth.NewGate(catalog), nil)
	rec := &recorder{}
	v.Attach(rec)
	require.NoError(t, v.Mount(context.Background(), Params{"slug": "launch"}))
	t.Cleanup(v.Unmount)
	require.Equal(t, StateNotFound, v.state)

	doc := page.SeedDocument()
	doc.ID = "launch"
	doc.Sections[0].Content["headline"] = "Now Live"
	require.NoError(t, catalog.PutPage(context.Background(), doc))

	require.Len(t, rec.msgs, 1)
	require.NoError(t, v.HandleInfo(context.Background(), rec.msgs[0]))
	require.Equal(t, StateLive, v.state)
	require.Contains(t, v.Render(), "Now Live")
}

func TestBuilderLockedByDefault(t *testing.T) {
	v := mountedPageView(t, newTestCatalog(t), "")
	err := v.HandleEvent(context.Background(), "add-section", map[string]any{"type": "bio"})
	require.EqualError(t, err, "builder is locked")
}

func TestBuilderPromptWithoutPassphrase(t *testing.T) {
	v := mountedPageView(t, newTestCatalog(t), "")
	require.NoError(t, v.HandleEvent(context.Background(), "builder-toggle", nil))
	require.Contains(t, v.Render(), "No passphrase is configured")
}

func TestBuilderUnlockFlow(t *testing.T) {
	catalog := newTestCatalog(t)
	gate := auth.NewGate(catalog)
	ctx := context.Background()
	require.NoError(t, gate.Setup(ctx, "secret-pass"))

	v := mountedPageView(t, catalog, "")

	require.NoError(t, v.HandleEvent(ctx, "builder-toggle", nil))
	require.Contains(t, v.Render(), `lv-submit="builder-unlock"`)

	err := v.HandleEvent(ctx, "builder-unlock", map[string]any{"passphrase": "wrong"})
	require.ErrorIs(t, err, auth.ErrBadPassphrase)
	require.False(t, v.builder.unlocked)

	require.NoError(t, v.HandleEvent(ctx, "builder-unlock", map[string]any{"passphrase": "secret-pass"}))
	require.True(t, v.builder.unlocked)
	require.Contains(t, v.Render(), `class="builder"`)

	require.NoError(t, v.HandleEvent(ctx, "builder-toggle", nil))
	require.NotContains(t, v.Render(), `class="builder"`)
}

func unlockedPageView(t *testing.T, catalog *store.Catalog) *PageView {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, auth.NewGate(catalog).Setup(ctx, "secret-pass"))
	v := mountedPageView(t, catalog, "")
	require.NoError(t, v.HandleEvent(ctx, "builder-unlock", map[string]any{"passphrase": "secret-pass"}))
	return v
}

func TestAddSectionPersists(t *testing.T) {
	catalog := newTestCatalog(t)
	v := unlockedPageView(t, catalog)
	ctx := context.Background()

	require.NoError(t, v.HandleEvent(ctx, "add-section", map[string]any{"type": "bio"}))
	require.Len(t, v.doc.Sections, 3)
	require.Equal(t, page.TypeBio, v.doc.Sections[2].Type)

	stored, err := catalog.GetPage(ctx, page.DefaultSlug)
	require.NoError(t, err)
	require.Len(t, stored.Sections, 3)
	require.Greater(t, stored.Revision, uint64(0))
}

func TestAddSectionRejectsUnknownType(t *testing.T) {
	v := unlockedPageView(t, newTestCatalog(t))
	err := v.HandleEvent(context.Background(), "add-section", map[string]any{"type": "carousel"})
	require.Error(t, err)
	require.Len(t, v.doc.Sections, 2)
}

func TestDeleteSectionIsTwoStep(t *testing.T) {
	catalog := newTestCatalog(t)
	v := unlockedPageView(t, catalog)
	ctx := context.Background()
	id := v.doc.Sections[0].ID

	require.NoError(t, v.HandleEvent(ctx, "delete-section", map[string]any{"id": id}))
	require.Len(t, v.doc.Sections, 2)
	require.Contains(t, v.Render(), "Confirm")

	require.NoError(t, v.HandleEvent(ctx, "cancel-delete", nil))
	require.Len(t, v.doc.Sections, 2)

	require.NoError(t, v.HandleEvent(ctx, "delete-section", map[string]any{"id": id}))
	require.NoError(t, v.HandleEvent(ctx, "confirm-delete", nil))
	require.Len(t, v.doc.Sections, 1)
	require.Nil(t, v.doc.Section(id))
}

func TestMoveSection(t *testing.T) {
	v := unlockedPageView(t, newTestCatalog(t))
	ctx := context.Background()

	require.NoError(t, v.HandleEvent(ctx, "move-section", map[string]any{
		"id": "form_imported", "dir": "up",
	}))
	require.Equal(t, "form_imported", v.doc.Sections[0].ID)

	// Moving the top section further up is a no-op.
	require.NoError(t, v.HandleEvent(ctx, "move-section", map[string]any{
		"id": "form_imported", "dir": "up",
	}))
	require.Equal(t, "form_imported", v.doc.Sections[0].ID)
}

func TestUpdateContentRendersNewText(t *testing.T) {
	v := unlockedPageView(t, newTestCatalog(t))
	require.NoError(t, v.HandleEvent(context.Background(), "update-content", map[string]any{
		"id": "hero_imported", "field": "headline", "value": "Fresh Headline",
	}))
	require.Contains(t, v.Render(), "Fresh Headline")
}

func TestSetThemeAndSEO(t *testing.T) {
	catalog := newTestCatalog(t)
	v := unlockedPageView(t, catalog)
	ctx := context.Background()

	require.NoError(t, v.HandleEvent(ctx, "set-theme", map[string]any{"name": "ocean"}))
	require.Equal(t, page.ThemeByName("ocean"), v.doc.Theme)

	require.NoError(t, v.HandleEvent(ctx, "update-seo", map[string]any{
		"field": "title", "value": "New Title",
	}))
	stored, err := catalog.GetPage(ctx, page.DefaultSlug)
	require.NoError(t, err)
	require.Equal(t, "New Title", stored.SEO.Title)
}

func TestResetSeedRestoresImportedSections(t *testing.T) {
	v := unlockedPageView(t, newTestCatalog(t))
	ctx := context.Background()

	require.NoError(t, v.HandleEvent(ctx, "delete-section", map[string]any{"id": "hero_imported"}))
	require.NoError(t, v.HandleEvent(ctx, "confirm-delete", nil))
	require.Len(t, v.doc.Sections, 1)

	require.NoError(t, v.HandleEvent(ctx, "reset-seed", nil))
	require.Len(t, v.doc.Sections, 2)
	require.Equal(t, "hero_imported", v.doc.Sections[0].ID)
}
