package server

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"seehuhn.de/go/sketchpad/export"
)

type reply struct {
	Type     string
	Session  string
	Palette  []string
	Version  uint64
	Mode     string
	Selected string
	Current  *strokeMsg
	Strokes  []strokeMsg
	OK       bool
	Name     string
	URL      string
	Reason   string
	Message  string
}

func newTestServer(t *testing.T, opts Options) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(opts)
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
		hub.Wait()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func send(t *testing.T, ws *websocket.Conn, msg string) {
	t.Helper()
	if err := ws.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatal(err)
	}
}

func read(t *testing.T, ws *websocket.Conn) reply {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	var r reply
	if err := ws.ReadJSON(&r); err != nil {
		t.Fatal(err)
	}
	return r
}

// readType skips messages until one of the given type arrives.
func readType(t *testing.T, ws *websocket.Conn, typ string) reply {
	t.Helper()
	for {
		r := read(t, ws)
		if r.Type == typ {
			return r
		}
	}
}

// greet reads the messages every new connection receives.
func greet(t *testing.T, ws *websocket.Conn) (hello, state reply) {
	t.Helper()
	hello = read(t, ws)
	if hello.Type != "hello" {
		t.Fatalf("first message is %q, want hello", hello.Type)
	}
	state = read(t, ws)
	if state.Type != "state" {
		t.Fatalf("second message is %q, want state", state.Type)
	}
	return hello, state
}

func TestHello(t *testing.T) {
	_, srv := newTestServer(t, Options{})
	ws := dial(t, srv, "")

	hello, state := greet(t, ws)
	if _, err := uuid.Parse(hello.Session); err != nil {
		t.Errorf("session %q: %v", hello.Session, err)
	}
	if len(hello.Palette) != 7 || hello.Palette[0] != "#000000" {
		t.Errorf("palette = %v", hello.Palette)
	}
	if state.Version != 0 || state.Mode != "idle" || state.Current != nil || len(state.Strokes) != 0 {
		t.Errorf("initial state = %+v", state)
	}
	if state.Selected != "#000000" {
		t.Errorf("selected = %q, want #000000", state.Selected)
	}
}

func TestGesture(t *testing.T) {
	_, srv := newTestServer(t, Options{})
	ws := dial(t, srv, "")
	greet(t, ws)

	send(t, ws, `{"type":"down","x":10,"y":20}`)
	send(t, ws, `{"type":"move","points":[[30,40],[50,60]]}`)
	send(t, ws, `{"type":"move","x":70,"y":80}`)
	send(t, ws, `{"type":"up"}`)

	var last reply
	for want := uint64(1); want <= 6; want++ {
		last = readType(t, ws, "state")
		if last.Version != want {
			t.Fatalf("version = %d, want %d", last.Version, want)
		}
		if want == 2 && (last.Current == nil || len(last.Current.Points) != 1) {
			t.Errorf("after down: current = %+v", last.Current)
		}
	}
	if last.Mode != "idle" || last.Current != nil {
		t.Errorf("stroke not committed: %+v", last)
	}
	if len(last.Strokes) != 1 {
		t.Fatalf("%d strokes, want 1", len(last.Strokes))
	}
	got := last.Strokes[0]
	want := [][2]float64{{10, 20}, {30, 40}, {50, 60}, {70, 80}}
	if !slices.Equal(got.Points, want) {
		t.Errorf("points = %v, want %v", got.Points, want)
	}
	if got.ID != 1 || got.Color != "#000000" {
		t.Errorf("stroke = %+v", got)
	}
}

func TestSharedSession(t *testing.T) {
	hub, srv := newTestServer(t, Options{})

	a := dial(t, srv, "")
	hello, _ := greet(t, a)
	b := dial(t, srv, "?session="+hello.Session)
	helloB, _ := greet(t, b)
	if helloB.Session != hello.Session {
		t.Fatalf("joined session %s, want %s", helloB.Session, hello.Session)
	}
	if n := hub.Sessions(); n != 1 {
		t.Errorf("%d sessions, want 1", n)
	}

	send(t, a, `{"type":"color","color":"#ff0000"}`)
	for _, ws := range []*websocket.Conn{a, b} {
		st := readType(t, ws, "state")
		if st.Version != 1 || st.Selected != "#ff0000" {
			t.Errorf("state = %+v", st)
		}
	}

	send(t, b, `{"type":"clear"}`)
	if st := readType(t, a, "state"); st.Version != 2 {
		t.Errorf("version = %d, want 2", st.Version)
	}

	a.Close()
	b.Close()
	deadline := time.Now().Add(5 * time.Second)
	for hub.Sessions() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("session not closed after the last connection left")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBadMessages(t *testing.T) {
	_, srv := newTestServer(t, Options{})
	ws := dial(t, srv, "")
	greet(t, ws)

	cases := []struct {
		msg  string
		want string
	}{
		{`not json`, "malformed"},
		{`{"type":"down"}`, "missing coordinates"},
		{`{"type":"move"}`, "missing coordinates"},
		{`{"type":"color","color":"red"}`, "invalid colour"},
		{`{"type":"jump"}`, "unknown message type"},
		{`{"type":"export","format":"svg"}`, "unknown export format"},
	}
	for _, tc := range cases {
		send(t, ws, tc.msg)
		r := read(t, ws)
		if r.Type != "error" || !strings.Contains(r.Message, tc.want) {
			t.Errorf("%s: got %+v, want error containing %q", tc.msg, r, tc.want)
		}
	}
}

func TestExport(t *testing.T) {
	store, err := export.NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, srv := newTestServer(t, Options{
		Exporter:     export.New(store),
		Downloads:    store,
		CanvasWidth:  100,
		CanvasHeight: 100,
	})
	ws := dial(t, srv, "")
	greet(t, ws)

	send(t, ws, `{"type":"export","width":50,"height":50}`)
	r := readType(t, ws, "export")
	if r.OK || r.Reason != "empty" {
		t.Errorf("empty canvas: %+v", r)
	}

	send(t, ws, `{"type":"down","x":10,"y":10}`)
	send(t, ws, `{"type":"move","x":90,"y":90}`)
	send(t, ws, `{"type":"up"}`)
	send(t, ws, `{"type":"export","width":50,"height":50}`)
	r = readType(t, ws, "export")
	if !r.OK || !strings.HasSuffix(r.Name, ".png") {
		t.Fatalf("export: %+v", r)
	}

	resp, err := http.Get(srv.URL + r.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(string(body), "\x89PNG") {
		t.Errorf("download: status %d, %d bytes", resp.StatusCode, len(body))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
}

func TestExportTooLarge(t *testing.T) {
	store := &export.MemStore{}
	_, srv := newTestServer(t, Options{
		Exporter:     export.New(store),
		CanvasWidth:  100,
		CanvasHeight: 100,
	})
	ws := dial(t, srv, "")
	greet(t, ws)

	send(t, ws, `{"type":"down","x":10,"y":10}`)
	send(t, ws, `{"type":"up"}`)
	send(t, ws, `{"type":"export","width":1099511627776,"height":1099511627776}`)
	r := readType(t, ws, "export")
	if r.OK || r.Reason != "too_large" {
		t.Errorf("got %+v, want too_large", r)
	}
	if n := len(store.Names()); n != 0 || store.Pending() != 0 {
		t.Errorf("store has %d entries, %d pending", n, store.Pending())
	}

	// the connection keeps working
	send(t, ws, `{"type":"clear"}`)
	if st := readType(t, ws, "state"); st.Version != 4 || len(st.Strokes) != 0 {
		t.Errorf("state after clear = %+v", st)
	}
}

func TestExportDisabled(t *testing.T) {
	_, srv := newTestServer(t, Options{})
	ws := dial(t, srv, "")
	greet(t, ws)

	send(t, ws, `{"type":"export"}`)
	r := readType(t, ws, "export")
	if r.OK || r.Reason != "failed" {
		t.Errorf("got %+v", r)
	}
}

func TestHTTP(t *testing.T) {
	store, err := export.NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, srv := newTestServer(t, Options{Downloads: store})

	cases := []struct {
		path   string
		status int
	}{
		{"/palette", http.StatusOK},
		{"/ws?session=not-a-uuid", http.StatusBadRequest},
		{"/exports/missing.png", http.StatusNotFound},
		{"/exports/.pending-123", http.StatusNotFound},
	}
	for _, tc := range cases {
		resp, err := http.Get(srv.URL + tc.path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Errorf("%s: status %d, want %d", tc.path, resp.StatusCode, tc.status)
		}
	}

	resp, err := http.Get(srv.URL + "/palette")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var pal []string
	if err := json.NewDecoder(resp.Body).Decode(&pal); err != nil {
		t.Fatal(err)
	}
	if len(pal) != 7 {
		t.Errorf("palette = %v", pal)
	}
}

func TestHubClose(t *testing.T) {
	hub, srv := newTestServer(t, Options{})
	ws := dial(t, srv, "")
	greet(t, ws)

	hub.Close()
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, _, err := ws.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			t.Errorf("read error %v, want normal closure", err)
		}
		break
	}
}

func TestNewService(t *testing.T) {
	ips := []net.IP{net.IPv4(192, 168, 1, 7)}
	svc, err := newService("kitchen", "tablet.local.", 8080, ips, nil)
	if err != nil {
		t.Fatal(err)
	}
	if svc.Instance != "kitchen" || svc.Service != ServiceType || svc.Port != 8080 {
		t.Errorf("service = %+v", svc)
	}
	if !slices.Equal(svc.TXT, []string{"path=/ws"}) {
		t.Errorf("txt = %v", svc.TXT)
	}

	if _, err := newService("", "tablet.local.", 8080, ips, nil); err == nil {
		t.Error("empty instance name accepted")
	}
	if _, err := newService("kitchen", "tablet.local.", 0, ips, nil); err == nil {
		t.Error("port 0 accepted")
	}
}
