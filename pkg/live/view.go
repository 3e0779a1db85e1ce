// Package live implements the server-side views: a page's live
// rendering with its builder overlay, and the campaign dashboard. Each
// connected browser gets one view instance driven by a single-goroutine
// runtime, so event handling and store notifications never race.
package live

import (
	"context"
	"sync"

	"github.com/verolabs/vero/pkg/logging"
	"github.com/verolabs/vero/pkg/protocol"
)

// Params carries URL parameters into Mount.
type Params map[string]string

// Get returns a parameter or the fallback.
func (p Params) Get(key, fallback string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return fallback
}

// View is a stateful server-side page. Mount runs once per connection,
// HandleEvent processes client interactions, HandleInfo processes
// internal messages (store notifications), Render produces the full
// HTML after each of them, and Unmount cleans up subscriptions.
type View interface {
	Mount(ctx context.Context, params Params) error
	Render() string
	HandleEvent(ctx context.Context, event string, payload map[string]any) error
	HandleInfo(ctx context.Context, msg any) error
	Unmount()
}

// InfoSink accepts internal messages for a view. Store subscription
// callbacks post through it so updates join the view's event loop
// instead of touching state concurrently.
type InfoSink interface {
	Info(msg any)
}

// Base gives views the sink plumbing; embed it and post internal
// messages with Post.
type Base struct {
	sink InfoSink
}

// Attach wires the runtime's sink. Called by the runtime before Mount.
func (b *Base) Attach(s InfoSink) { b.sink = s }

// Post forwards an internal message into the view's event loop. Safe
// to call from any goroutine; drops the message when unattached.
func (b *Base) Post(msg any) {
	if b.sink != nil {
		b.sink.Info(msg)
	}
}

// SendFunc delivers one protocol frame to the client.
type SendFunc func(protocol.Message) error

// alertMsg is the internal message a view posts to surface a blocking
// alert without re-entering its own handlers.
type alertMsg struct{ text string }

type envelope struct {
	event   string
	payload map[string]any
}

// Runtime drives one view over one connection: it serializes client
// events and internal messages into a single loop, re-renders after
// each handled message, and pushes the result to the client.
type Runtime struct {
	view View
	send SendFunc
	log  logging.Logger

	mailbox chan envelope

	// Internal messages queue without bound so a store notification is
	// never dropped; losing the final one would leave the view stale
	// until the next write. Client events may drop under flood, the
	// client can always re-emit those.
	infoMu  sync.Mutex
	infoQ   []any
	infoSig chan struct{}
}

// NewRuntime creates a runtime for a view.
func NewRuntime(view View, send SendFunc, log logging.Logger) *Runtime {
	if log == nil {
		log = logging.Nop{}
	}
	return &Runtime{
		view:    view,
		send:    send,
		log:     log,
		mailbox: make(chan envelope, 64),
		infoSig: make(chan struct{}, 1),
	}
}

// Info implements InfoSink. It never blocks and never drops: messages
// join an unbounded queue drained by the run loop.
func (r *Runtime) Info(msg any) {
	r.infoMu.Lock()
	r.infoQ = append(r.infoQ, msg)
	r.infoMu.Unlock()

	select {
	case r.infoSig <- struct{}{}:
	default:
	}
}

// Dispatch queues a client event.
func (r *Runtime) Dispatch(event string, payload map[string]any) {
	select {
	case r.mailbox <- envelope{event: event, payload: payload}:
	default:
		r.log.Warn("mailbox full, dropping event", logging.String("event", event))
	}
}

func (r *Runtime) drainInfo() []any {
	r.infoMu.Lock()
	defer r.infoMu.Unlock()
	q := r.infoQ
	r.infoQ = nil
	return q
}

// Run mounts the view, pushes the initial render, then loops until the
// context is cancelled. The view is unmounted on the way out so its
// store subscription never outlives the connection.
func (r *Runtime) Run(ctx context.Context, params Params) error {
	if a, ok := r.view.(interface{ Attach(InfoSink) }); ok {
		a.Attach(r)
	}
	defer r.view.Unmount()

	if err := r.view.Mount(ctx, params); err != nil {
		return err
	}
	if err := r.push(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-r.mailbox:
			r.handle(ctx, env)
			if err := r.push(); err != nil {
				return err
			}
		case <-r.infoSig:
			for _, msg := range r.drainInfo() {
				r.handleInfo(ctx, msg)
			}
			if err := r.push(); err != nil {
				return err
			}
		}
	}
}

func (r *Runtime) handleInfo(ctx context.Context, msg any) {
	if alert, ok := msg.(alertMsg); ok {
		if err := r.send(protocol.Alert(alert.text)); err != nil {
			r.log.Warn("alert send failed", logging.Err(err))
		}
		return
	}
	if err := r.view.HandleInfo(ctx, msg); err != nil {
		r.log.Error("info handler failed", logging.Err(err))
	}
}

func (r *Runtime) handle(ctx context.Context, env envelope) {
	if err := r.view.HandleEvent(ctx, env.event, env.payload); err != nil {
		// Handler errors surface to the user and never kill the view:
		// the page stays interactive after any single failure.
		r.log.Error("event failed",
			logging.String("event", env.event), logging.Err(err))
		if err := r.send(protocol.Alert(err.Error())); err != nil {
			r.log.Warn("alert send failed", logging.Err(err))
		}
	}
}

func (r *Runtime) push() error {
	return r.send(protocol.Render(r.view.Render()))
}
