package live

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/verolabs/vero/pkg/auth"
	"github.com/verolabs/vero/pkg/logging"
	"github.com/verolabs/vero/pkg/page"
	"github.com/verolabs/vero/pkg/store"
)

// Dashboard modes.
const (
	ModeSetup = "setup"
	ModeLogin = "login"
	ModeHome  = "home"
)

// Dashboard is the campaign overview: every page with its lead count,
// plus create, clone, publish and delete. It sits behind the same
// passphrase as the builder; a fresh install shows the setup form.
type Dashboard struct {
	Base

	catalog *store.Catalog
	gate    *auth.Gate
	log     logging.Logger

	mode        string
	pages       []page.Document
	counts      map[string]int
	armedDelete string
	notice      string
}

// NewDashboard creates a dashboard view.
func NewDashboard(catalog *store.Catalog, gate *auth.Gate, log logging.Logger) *Dashboard {
	if log == nil {
		log = logging.Nop{}
	}
	return &Dashboard{catalog: catalog, gate: gate, log: log, mode: ModeLogin}
}

// Mount decides between setup and login. Every connection starts
// unauthenticated; dashboard sessions do not survive a reconnect.
func (v *Dashboard) Mount(ctx context.Context, _ Params) error {
	configured, err := v.gate.Configured(ctx)
	if err != nil {
		return fmt.Errorf("check settings: %w", err)
	}
	if configured {
		v.mode = ModeLogin
	} else {
		v.mode = ModeSetup
	}
	return nil
}

func (v *Dashboard) Unmount() {}

func (v *Dashboard) HandleInfo(context.Context, any) error { return nil }

func (v *Dashboard) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	v.notice = ""

	switch event {
	case "setup":
		return v.setup(ctx, payload)
	case "login":
		if err := v.gate.Check(ctx, strArg(payload, "passphrase")); err != nil {
			return err
		}
		v.mode = ModeHome
		return v.reload(ctx)
	case "logout":
		v.mode = ModeLogin
		v.pages = nil
		v.counts = nil
		v.armedDelete = ""
		return nil
	}

	if v.mode != ModeHome {
		return errors.New("sign in first")
	}

	switch event {
	case "refresh":
		return v.reload(ctx)
	case "create-page":
		return v.create(ctx, strArg(payload, "name"))
	case "clone-page":
		return v.clone(ctx, strArg(payload, "slug"))
	case "toggle-status":
		return v.toggleStatus(ctx, strArg(payload, "slug"))
	case "delete-page":
		v.armedDelete = strArg(payload, "slug")
		return nil
	case "cancel-delete":
		v.armedDelete = ""
		return nil
	case "confirm-delete":
		slug := v.armedDelete
		v.armedDelete = ""
		if slug == "" {
			return nil
		}
		if err := v.catalog.DeletePage(ctx, slug); err != nil {
			return fmt.Errorf("delete %q: %w", slug, err)
		}
		v.log.Info("page deleted", logging.String("slug", slug))
		return v.reload(ctx)
	}
	return fmt.Errorf("unknown event %q", event)
}

func (v *Dashboard) Render() string {
	switch v.mode {
	case ModeSetup:
		return renderSetup()
	case ModeLogin:
		return renderLogin()
	default:
		return renderHome(v.pages, v.counts, v.armedDelete, v.notice)
	}
}

func (v *Dashboard) setup(ctx context.Context, payload map[string]any) error {
	pass := strArg(payload, "passphrase")
	if pass != strArg(payload, "confirm") {
		return errors.New("passphrases do not match")
	}
	if err := v.gate.Setup(ctx, pass); err != nil {
		return err
	}
	v.mode = ModeHome
	return v.reload(ctx)
}

// reload fetches the page list and lead counts. Pages sort newest
// first with the slug as tiebreak so the order is stable across loads.
func (v *Dashboard) reload(ctx context.Context) error {
	pages, err := v.catalog.ListPages(ctx)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}
	sort.Slice(pages, func(i, j int) bool {
		if !pages[i].CreatedAt.Equal(pages[j].CreatedAt) {
			return pages[i].CreatedAt.After(pages[j].CreatedAt)
		}
		return pages[i].ID < pages[j].ID
	})
	counts, err := v.catalog.LeadCounts(ctx)
	if err != nil {
		return fmt.Errorf("count leads: %w", err)
	}
	v.pages = pages
	v.counts = counts
	return nil
}

func (v *Dashboard) create(ctx context.Context, name string) error {
	slug := page.Slugify(name)
	if slug == "" {
		return errors.New("a page needs a name")
	}
	if _, err := v.catalog.GetPage(ctx, slug); err == nil {
		return fmt.Errorf("a page named %q already exists", slug)
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check %q: %w", slug, err)
	}
	doc := page.NewDocument(slug)
	if err := v.catalog.PutPage(ctx, doc); err != nil {
		return fmt.Errorf("create %q: %w", slug, err)
	}
	v.notice = fmt.Sprintf("Created %s", slug)
	v.log.Info("page created", logging.String("slug", slug))
	return v.reload(ctx)
}

// clone copies a page under the first free "-copy" suffixed slug.
func (v *Dashboard) clone(ctx context.Context, slug string) error {
	src, err := v.catalog.GetPage(ctx, slug)
	if err != nil {
		return fmt.Errorf("load %q: %w", slug, err)
	}
	newSlug := slug + "-copy"
	for i := 2; ; i++ {
		if _, err := v.catalog.GetPage(ctx, newSlug); errors.Is(err, store.ErrNotFound) {
			break
		} else if err != nil {
			return fmt.Errorf("check %q: %w", newSlug, err)
		}
		newSlug = fmt.Sprintf("%s-copy-%d", slug, i)
	}
	doc := page.CloneDocument(src, newSlug)
	if err := v.catalog.PutPage(ctx, doc); err != nil {
		return fmt.Errorf("clone to %q: %w", newSlug, err)
	}
	v.notice = fmt.Sprintf("Cloned %s to %s", slug, newSlug)
	return v.reload(ctx)
}

func (v *Dashboard) toggleStatus(ctx context.Context, slug string) error {
	doc, err := v.catalog.GetPage(ctx, slug)
	if err != nil {
		return fmt.Errorf("load %q: %w", slug, err)
	}
	status := page.StatusPublished
	if doc.Status == page.StatusPublished {
		status = page.StatusDraft
	}
	if err := v.catalog.PutPage(ctx, page.SetStatus(doc, status)); err != nil {
		return fmt.Errorf("save %q: %w", slug, err)
	}
	return v.reload(ctx)
}

// topPerformer names the page with the most leads, empty when no page
// has any.
func topPerformer(counts map[string]int) (string, int) {
	best, bestN := "", 0
	var slugs []string
	for slug := range counts {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		if counts[slug] > bestN {
			best, bestN = slug, counts[slug]
		}
	}
	return best, bestN
}
