package live

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verolabs/vero/pkg/auth"
	"github.com/verolabs/vero/pkg/logging"
	"github.com/verolabs/vero/pkg/page"
	"github.com/verolabs/vero/pkg/store"
)

// Page view states.
const (
	StateLoading  = "loading"
	StateLive     = "live"
	StateNotFound = "not_found"
	StateThankYou = "thank_you"
)

// Builder tabs.
const (
	TabSections = "sections"
	TabTheme    = "theme"
	TabSEO      = "seo"
	TabThankYou = "thankyou"
)

// docUpdate is posted by the store subscription. A nil document means
// the page was deleted.
type docUpdate struct {
	doc *page.Document
}

// builderState is the overlay's transient UI state. It is never
// persisted; a reconnect starts locked again.
type builderState struct {
	prompt      bool
	configured  bool
	unlocked    bool
	open        bool
	tab         string
	armedDelete string
	editing     string
}

// PageView renders one landing page for one visitor and carries the
// builder overlay for editing it in place.
type PageView struct {
	Base

	catalog *store.Catalog
	gate    *auth.Gate
	log     logging.Logger

	slug    string
	state   string
	doc     page.Document
	builder builderState
	cancel  func()
}

// NewPageView creates a page view backed by the catalog.
func NewPageView(catalog *store.Catalog, gate *auth.Gate, log logging.Logger) *PageView {
	if log == nil {
		log = logging.Nop{}
	}
	return &PageView{
		catalog: catalog,
		gate:    gate,
		log:     log,
		state:   StateLoading,
		builder: builderState{tab: TabSections},
	}
}

// Mount subscribes to the page for the slug param and then loads it.
// Subscribing first closes the gap where a write lands after the load
// but before the subscription; such a write is queued and replayed
// through HandleInfo instead of lost. The default slug is bootstrapped
// with the seed campaign on first visit so a fresh install always has
// a working page.
func (v *PageView) Mount(ctx context.Context, params Params) error {
	v.slug = params.Get("slug", page.DefaultSlug)

	v.cancel = v.catalog.SubscribePage(v.slug, func(d *page.Document) {
		v.Post(docUpdate{doc: d})
	})

	doc, err := v.catalog.GetPage(ctx, v.slug)
	switch {
	case err == nil:
		v.doc = doc
		v.state = StateLive
	case errors.Is(err, store.ErrNotFound) && v.slug == page.DefaultSlug:
		seeded := page.SeedDocument()
		if err := v.catalog.PutPage(ctx, seeded); err != nil {
			return fmt.Errorf("seed %q: %w", v.slug, err)
		}
		v.doc = seeded
		v.state = StateLive
		v.log.Info("seeded default page", logging.String("slug", v.slug))
	case errors.Is(err, store.ErrNotFound):
		v.state = StateNotFound
	default:
		return fmt.Errorf("load %q: %w", v.slug, err)
	}
	return nil
}

// Unmount drops the store subscription.
func (v *PageView) Unmount() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// HandleInfo applies store notifications. A visitor already on the
// thank-you screen stays there when the document changes underneath;
// only the page content is swapped.
func (v *PageView) HandleInfo(_ context.Context, msg any) error {
	upd, ok := msg.(docUpdate)
	if !ok {
		return nil
	}
	if upd.doc == nil {
		v.state = StateNotFound
		v.doc = page.Document{}
		return nil
	}
	v.doc = *upd.doc
	if v.state != StateThankYou {
		v.state = StateLive
	}
	return nil
}

func (v *PageView) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	switch event {
	case "lead-submit":
		return v.leadSubmit(ctx, payload)
	case "cta-click":
		if v.state == StateLive {
			v.state = StateThankYou
		}
		return nil
	case "thankyou-back":
		if v.state == StateThankYou {
			v.state = StateLive
		}
		return nil
	case "builder-toggle":
		if v.builder.unlocked {
			v.builder.open = !v.builder.open
			return nil
		}
		v.builder.prompt = !v.builder.prompt
		if v.builder.prompt {
			configured, err := v.gate.Configured(ctx)
			if err != nil {
				v.builder.prompt = false
				return fmt.Errorf("check passphrase: %w", err)
			}
			v.builder.configured = configured
		}
		return nil
	case "builder-unlock":
		return v.unlock(ctx, strArg(payload, "passphrase"))
	case "builder-close":
		v.builder.open = false
		v.builder.prompt = false
		return nil
	case "builder-tab":
		v.builder.tab = strArg(payload, "tab")
		v.builder.armedDelete = ""
		return nil
	case "edit-section":
		v.builder.editing = strArg(payload, "id")
		return nil
	}

	// Everything below mutates the document and requires an unlocked
	// builder on a live page.
	if !v.builder.unlocked {
		return errors.New("builder is locked")
	}
	if v.state != StateLive && v.state != StateThankYou {
		return errors.New("no page to edit")
	}

	switch event {
	case "add-section":
		t := page.SectionType(strArg(payload, "type"))
		if !validSectionType(t) {
			return fmt.Errorf("unknown section type %q", t)
		}
		return v.save(ctx, page.AddSection(v.doc, t))
	case "delete-section":
		v.builder.armedDelete = strArg(payload, "id")
		return nil
	case "confirm-delete":
		id := v.builder.armedDelete
		v.builder.armedDelete = ""
		if id == "" {
			return nil
		}
		if v.builder.editing == id {
			v.builder.editing = ""
		}
		return v.save(ctx, page.DeleteSection(v.doc, id))
	case "cancel-delete":
		v.builder.armedDelete = ""
		return nil
	case "move-section":
		dir := page.MoveUp
		if strArg(payload, "dir") == "down" {
			dir = page.MoveDown
		}
		return v.save(ctx, page.MoveSection(v.doc, strArg(payload, "id"), dir))
	case "update-content":
		return v.save(ctx, page.UpdateSectionContent(v.doc,
			strArg(payload, "id"), strArg(payload, "field"), payloadValue(payload)))
	case "update-field":
		return v.save(ctx, page.UpdateSectionField(v.doc,
			strArg(payload, "id"), strArg(payload, "field"), strArg(payload, "value")))
	case "update-effect":
		return v.save(ctx, page.UpdateEffectConfig(v.doc,
			strArg(payload, "id"), strArg(payload, "field"), strArg(payload, "value")))
	case "set-theme":
		return v.save(ctx, page.SetTheme(v.doc, page.ThemeByName(strArg(payload, "name"))))
	case "update-seo":
		return v.save(ctx, page.UpdateSEO(v.doc,
			strArg(payload, "field"), strArg(payload, "value")))
	case "update-thankyou":
		return v.save(ctx, page.UpdateThankYou(v.doc,
			strArg(payload, "field"), strArg(payload, "value")))
	case "set-status":
		status := page.StatusDraft
		if strArg(payload, "value") == string(page.StatusPublished) {
			status = page.StatusPublished
		}
		return v.save(ctx, page.SetStatus(v.doc, status))
	case "reset-seed":
		if v.slug != page.DefaultSlug {
			return errors.New("only the default page can be reset")
		}
		seeded := page.SeedDocument()
		return v.save(ctx, seeded)
	}
	return fmt.Errorf("unknown event %q", event)
}

// Render produces the full page HTML for the current state.
func (v *PageView) Render() string {
	switch v.state {
	case StateLoading:
		return renderLoading()
	case StateNotFound:
		return renderNotFound(v.slug)
	case StateThankYou:
		return renderThankYou(v.doc, v.builderOverlay())
	default:
		return renderLive(v.doc, v.builderOverlay())
	}
}

func (v *PageView) builderOverlay() string {
	switch {
	case v.builder.open:
		return renderBuilder(v.doc, v.builder)
	case v.builder.prompt:
		return renderUnlockPrompt(v.builder.configured)
	default:
		return ""
	}
}

func (v *PageView) unlock(ctx context.Context, passphrase string) error {
	if err := v.gate.Check(ctx, passphrase); err != nil {
		if errors.Is(err, auth.ErrNoPassphrase) {
			return errors.New("no passphrase set; open the dashboard to configure one")
		}
		return err
	}
	v.builder.unlocked = true
	v.builder.open = true
	v.builder.prompt = false
	return nil
}

// leadSubmit validates the captured fields, appends the lead tagged
// with this page's slug, and moves the visitor to the thank-you screen.
func (v *PageView) leadSubmit(ctx context.Context, payload map[string]any) error {
	if v.state != StateLive {
		return errors.New("no page to submit to")
	}
	fields := map[string]string{}
	for _, key := range []string{"name", "email", "phone"} {
		fields[key] = strings.TrimSpace(strArg(payload, key))
	}
	if fields["email"] == "" {
		return errors.New("email is required")
	}
	lead := page.Lead{Fields: fields, SourcePage: v.slug}
	if _, err := v.catalog.AppendLead(ctx, lead); err != nil {
		return fmt.Errorf("save lead: %w", err)
	}
	v.state = StateThankYou
	return nil
}

// save persists the mutated document. The local copy is replaced
// either way so the editor keeps what they typed and can retry the
// write after a failure.
func (v *PageView) save(ctx context.Context, doc page.Document) error {
	v.doc = doc
	if err := v.catalog.PutPage(ctx, v.doc); err != nil {
		return fmt.Errorf("save page: %w", err)
	}
	return nil
}

func validSectionType(t page.SectionType) bool {
	for _, st := range page.SectionTypes {
		if st == t {
			return true
		}
	}
	return false
}

func strArg(payload map[string]any, key string) string {
	v, _ := payload[key].(string)
	return v
}

// payloadValue keeps list-shaped values intact so list fields survive
// a content update; everything else is coerced to a string.
func payloadValue(payload map[string]any) any {
	if items, ok := payload["value"].([]any); ok {
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return strArg(payload, "value")
}
