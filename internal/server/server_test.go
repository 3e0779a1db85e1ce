package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"

	"github.com/verolabs/vero/pkg/page"
	"github.com/verolabs/vero/pkg/protocol"
	"github.com/verolabs/vero/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server, *store.Catalog) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalog := store.NewCatalog(st)
	s := New(Config{Addr: ":0", DevMode: true}, catalog, nil)
	ts := httptest.NewServer(s.http.Handler)
	t.Cleanup(ts.Close)
	return s, ts, catalog
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestDashboardShell(t *testing.T) {
	_, ts, _ := newTestServer(t)
	body := get(t, ts.URL+"/")
	require.Contains(t, body, `data-view="dash"`)
	require.Contains(t, body, "/assets/vero.js")
}

func TestPageShellCarriesSEO(t *testing.T) {
	_, ts, catalog := newTestServer(t)

	doc := page.NewDocument("launch")
	doc.SEO = page.SEO{Title: "Big Launch", Description: "The big one"}
	require.NoError(t, catalog.PutPage(context.Background(), doc))

	body := get(t, ts.URL+"/p/launch")
	require.Contains(t, body, "<title>Big Launch</title>")
	require.Contains(t, body, `content="The big one"`)
	require.Contains(t, body, `data-slug="launch"`)
}

func TestPageShellUnknownSlugStillBoots(t *testing.T) {
	_, ts, _ := newTestServer(t)
	body := get(t, ts.URL+"/p/missing")
	require.Contains(t, body, `data-slug="missing"`)
}

func TestHealthz(t *testing.T) {
	_, ts, _ := newTestServer(t)
	body := get(t, ts.URL+"/healthz")
	require.Contains(t, body, `"status":"ok"`)
}

func TestAssetsServed(t *testing.T) {
	_, ts, _ := newTestServer(t)
	require.Contains(t, get(t, ts.URL+"/assets/vero.js"), "vero-root")
	require.Contains(t, get(t, ts.URL+"/assets/vero.css"), "fx-pulse")
}

func dialLive(t *testing.T, ts *httptest.Server, query, subprotocol string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live?" + query
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		Subprotocols: []string{subprotocol},
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn, codec protocol.Codec) protocol.Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	msg, err := codec.Decode(data)
	require.NoError(t, err)
	return msg
}

func TestLiveSocketSeedsAndRenders(t *testing.T) {
	_, ts, _ := newTestServer(t)
	conn := dialLive(t, ts, "view=page&slug="+page.DefaultSlug, protocol.SubprotocolJSON)

	first := readFrame(t, conn, protocol.JSONCodec{})
	require.Equal(t, protocol.KindRender, first.Kind)
	html, _ := first.Payload["html"].(string)
	require.Contains(t, html, "hero_imported")
}

func TestLiveSocketDispatchesEvents(t *testing.T) {
	_, ts, _ := newTestServer(t)
	conn := dialLive(t, ts, "view=page&slug="+page.DefaultSlug, protocol.SubprotocolJSON)
	codec := protocol.JSONCodec{}
	readFrame(t, conn, codec)

	ctx := context.Background()
	data, err := codec.Encode(protocol.Event("cta-click", nil))
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, data))

	after := readFrame(t, conn, codec)
	require.Equal(t, protocol.KindRender, after.Kind)
	html, _ := after.Payload["html"].(string)
	require.Contains(t, html, "thankyou")
}

func TestLiveSocketMsgpackNegotiation(t *testing.T) {
	_, ts, _ := newTestServer(t)
	conn := dialLive(t, ts, "view=page", protocol.SubprotocolMsgpack)
	require.Equal(t, protocol.SubprotocolMsgpack, conn.Subprotocol())

	first := readFrame(t, conn, protocol.MsgpackCodec{})
	require.Equal(t, protocol.KindRender, first.Kind)
}

func TestLiveSocketDashboardView(t *testing.T) {
	_, ts, _ := newTestServer(t)
	conn := dialLive(t, ts, "view=dash", protocol.SubprotocolJSON)

	first := readFrame(t, conn, protocol.JSONCodec{})
	require.Equal(t, protocol.KindRender, first.Kind)
	html, _ := first.Payload["html"].(string)
	require.Contains(t, html, `lv-submit="setup"`)
}
