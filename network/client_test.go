package network

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/types"
	"github.com/gorilla/websocket"
)

type fakeZone struct {
	avatars map[uint32]subsystem.PositionUpdate
	states  map[uint32]subsystem.StateChange
}

func newFakeZone() *fakeZone {
	return &fakeZone{
		avatars: make(map[uint32]subsystem.PositionUpdate),
		states:  make(map[uint32]subsystem.StateChange),
	}
}

func (z *fakeZone) AddAvatar(id uint32, pos subsystem.PositionUpdate)  { z.avatars[id] = pos }
func (z *fakeZone) MoveAvatar(id uint32, pos subsystem.PositionUpdate) { z.avatars[id] = pos }
func (z *fakeZone) SetAvatarState(id uint32, s subsystem.StateChange)  { z.states[id] = s }
func (z *fakeZone) RemoveAvatar(id uint32)                             { delete(z.avatars, id) }

type fakeChat struct {
	lines []string
}

func (c *fakeChat) AddChatMessage(text string) { c.lines = append(c.lines, text) }

// A test server that greets clients, answers pings and forwards every other
// client message to received.
func newTestServer(t *testing.T, greeting []message, received chan<- message) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for _, msg := range greeting {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}

		for {
			var msg message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type == msgPing {
				conn.WriteJSON(message{Type: msgPong, Sent: msg.Sent})
				continue
			}
			received <- msg
		}
	}))
}

func endpoint(t *testing.T, srv *httptest.Server) (string, int) {
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(portStr)
	return host, port
}

// Run client frames until cond holds or the deadline expires.
func frameUntil(t *testing.T, c *Client, descr string, cond func() bool) {
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", descr)
		}
		c.Frame()
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClientRoundTrip(t *testing.T) {
	spawn := types.XYZ(4, 0, 2)
	greeting := []message{
		{Type: msgJoin, ID: 7, Position: &spawn},
		{Type: msgState, ID: 7, State: "W"},
		{Type: msgChat, Text: "welcome"},
		{Type: "weather"},
	}
	received := make(chan message, 8)
	srv := newTestServer(t, greeting, received)
	defer srv.Close()

	zone, chat := newFakeZone(), &fakeChat{}
	c := New(zone, chat, DefaultOptions())
	host, port := endpoint(t, srv)
	if err := c.Init(host, port); err != nil {
		t.Fatalf("unexpected dial error: %v", err)
	}
	defer c.Shutdown()

	frameUntil(t, c, "greeting", func() bool {
		return len(chat.lines) == 1 && zone.states[7] == subsystem.AvatarWalking
	})
	if zone.avatars[7].Position != spawn {
		t.Fatalf("expected avatar 7 at %v; got %v", spawn, zone.avatars[7])
	}
	if chat.lines[0] != "welcome" {
		t.Fatalf("expected welcome chat line; got %v", chat.lines)
	}

	frameUntil(t, c, "latency", func() bool { return c.Latency() > 0 })

	c.SendStateChange(subsystem.AvatarJumping)
	pos := subsystem.PositionUpdate{Position: types.XYZ(1, 2, 3), Rotation: types.XYZ(0, 45, 0)}
	c.SendPositionUpdate(pos)

	select {
	case msg := <-received:
		if msg.Type != msgState || msg.State != "J" {
			t.Fatalf("expected state message J; got %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state message")
	}

	select {
	case msg := <-received:
		if msg.Type != msgPosition || msg.positionUpdate() != pos {
			t.Fatalf("expected position message %v; got %+v", pos, msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for position message")
	}
}

func TestClientInitFailsWithoutServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	host, port := endpoint(t, srv)
	srv.Close()

	opts := DefaultOptions()
	opts.DialTimeout = 500 * time.Millisecond
	c := New(newFakeZone(), &fakeChat{}, opts)
	if err := c.Init(host, port); err == nil {
		t.Fatal("expected dial to fail")
	}

	// An unconnected client ignores frames and sends.
	c.Frame()
	c.SendStateChange(subsystem.AvatarIdle)
	c.Shutdown()
	c.Shutdown()
}

func TestClientSurvivesServerDisconnect(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	c := New(newFakeZone(), &fakeChat{}, DefaultOptions())
	host, port := endpoint(t, srv)
	if err := c.Init(host, port); err != nil {
		t.Fatalf("unexpected dial error: %v", err)
	}

	frameUntil(t, c, "disconnect", func() bool { return !c.connected })

	// Sends after the connection dropped are swallowed.
	c.SendPositionUpdate(subsystem.PositionUpdate{})
	c.Shutdown()
	c.Shutdown()
}

func TestClientSkipsMalformedMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		frames := []string{
			`{"type":"chat","id":-1}`,
			`not json`,
			`{"type":"chat","text":"still here"}`,
		}
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	chat := &fakeChat{}
	c := New(newFakeZone(), chat, DefaultOptions())
	host, port := endpoint(t, srv)
	if err := c.Init(host, port); err != nil {
		t.Fatalf("unexpected dial error: %v", err)
	}
	defer c.Shutdown()

	frameUntil(t, c, "chat after malformed frames", func() bool { return len(chat.lines) == 1 })
	if chat.lines[0] != "still here" {
		t.Fatalf("expected the valid chat line; got %v", chat.lines)
	}

	for i := 0; i < 5; i++ {
		c.Frame()
		time.Sleep(5 * time.Millisecond)
	}
	if !c.connected {
		t.Fatal("expected the client to stay connected after malformed messages")
	}
}

func TestMessageHelpers(t *testing.T) {
	if _, ok := (message{State: "JW"}).stateChange(); ok {
		t.Fatal("expected multi-byte state to be rejected")
	}
	if s, ok := stateMessage(subsystem.AvatarJumping).stateChange(); !ok || s != subsystem.AvatarJumping {
		t.Fatalf("expected state J; got %v", s)
	}
	if p := (message{}).positionUpdate(); p != (subsystem.PositionUpdate{}) {
		t.Fatalf("expected zero position for empty message; got %v", p)
	}
}
