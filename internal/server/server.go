// Package server wires the HTTP surface: page and dashboard shells,
// the live websocket, and the embedded client assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/verolabs/vero/client"
	"github.com/verolabs/vero/pkg/auth"
	"github.com/verolabs/vero/pkg/health"
	"github.com/verolabs/vero/pkg/live"
	"github.com/verolabs/vero/pkg/logging"
	"github.com/verolabs/vero/pkg/protocol"
	"github.com/verolabs/vero/pkg/store"
)

// Config holds the server settings.
type Config struct {
	Addr string

	// AllowedOrigins whitelists websocket origins. Empty means
	// same-origin only unless DevMode is set.
	AllowedOrigins []string

	// DevMode disables origin checks. Local development only.
	DevMode bool
}

// Server serves the landing pages and the dashboard.
type Server struct {
	cfg      Config
	catalog  *store.Catalog
	gate     *auth.Gate
	sessions *auth.Sessions
	log      logging.Logger

	http *http.Server
}

// New builds the server and its routes.
func New(cfg Config, catalog *store.Catalog, log logging.Logger) *Server {
	if log == nil {
		log = logging.Nop{}
	}
	s := &Server{
		cfg:      cfg,
		catalog:  catalog,
		gate:     auth.NewGate(catalog),
		sessions: auth.NewSessions(),
		log:      log,
	}

	checker := health.NewChecker(2 * time.Second)
	checker.Register("store", func(ctx context.Context) error {
		_, err := catalog.GetSettings(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /p/{slug}", s.handlePage)
	mux.HandleFunc("GET /live", s.handleLive)
	mux.Handle("GET /healthz", checker)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", client.Handler()))

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           logging.Requests(log)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", logging.String("addr", s.cfg.Addr))
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests. Live sockets close when their
// contexts are cancelled by the connection teardown.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeShell(w, shellData{
		Title: "Dashboard",
		View:  "dash",
	})
}

// handlePage serves the static shell for one page. SEO metadata comes
// from the stored document so crawlers see it without running the
// socket; the body itself renders live.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	data := shellData{Title: slug, View: "page", Slug: slug}
	if doc, err := s.catalog.GetPage(r.Context(), slug); err == nil {
		if doc.SEO.Title != "" {
			data.Title = doc.SEO.Title
		}
		data.Description = doc.SEO.Description
		data.Keywords = doc.SEO.Keywords
	}
	writeShell(w, data)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:       []string{protocol.SubprotocolMsgpack, protocol.SubprotocolJSON},
		OriginPatterns:     s.cfg.AllowedOrigins,
		InsecureSkipVerify: s.cfg.DevMode,
	})
	if err != nil {
		s.log.Warn("websocket accept failed", logging.Err(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "teardown")

	codec := protocol.Negotiate(conn.Subprotocol())
	msgType := websocket.MessageText
	if codec.Name() == protocol.SubprotocolMsgpack {
		msgType = websocket.MessageBinary
	}

	// Each socket gets an anonymous session; it carries no rights, it
	// only marks the connection in logs and is dropped on teardown.
	sess := s.sessions.Anonymous()
	defer s.sessions.Drop(sess.ID)
	log := s.log.With(logging.String("session", sess.ID))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	view := s.viewFor(r.URL.Query().Get("view"), log)
	send := func(m protocol.Message) error {
		data, err := codec.Encode(m)
		if err != nil {
			return err
		}
		return conn.Write(ctx, msgType, data)
	}
	rt := live.NewRuntime(view, send, log)

	// Reader feeds client frames into the runtime; any read error ends
	// the connection and with it the runtime loop.
	go func() {
		defer cancel()
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			msg, err := codec.Decode(data)
			if err != nil {
				log.Warn("bad frame", logging.Err(err))
				continue
			}
			if msg.Kind == protocol.KindEvent {
				rt.Dispatch(msg.Event, msg.Payload)
			}
		}
	}()

	params := live.Params{"slug": r.URL.Query().Get("slug")}
	if err := rt.Run(ctx, params); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("live session ended", logging.Err(err))
	}
	conn.Close(websocket.StatusNormalClosure, "bye")
}

func (s *Server) viewFor(name string, log logging.Logger) live.View {
	if name == "dash" {
		return live.NewDashboard(s.catalog, s.gate, log)
	}
	return live.NewPageView(s.catalog, s.gate, log)
}

func htmlAttr(s string) string { return html.EscapeString(s) }

type shellData struct {
	Title       string
	Description string
	Keywords    string
	View        string
	Slug        string
}

// writeShell emits the static HTML document that boots the client
// runtime. Everything inside #vero-root is replaced by the first
// render pushed over the socket.
func writeShell(w http.ResponseWriter, d shellData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	meta := ""
	if d.Description != "" {
		meta += fmt.Sprintf(`<meta name="description" content="%s">`, htmlAttr(d.Description))
	}
	if d.Keywords != "" {
		meta += fmt.Sprintf(`<meta name="keywords" content="%s">`, htmlAttr(d.Keywords))
	}
	fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
%s<link rel="stylesheet" href="/assets/vero.css">
</head>
<body>
<div id="vero-root" data-view="%s" data-slug="%s">
<div class="vero-loading"><div class="spinner"></div></div>
</div>
<script src="/assets/vero.js"></script>
</body>
</html>`, htmlAttr(d.Title), meta, htmlAttr(d.View), htmlAttr(d.Slug))
}
