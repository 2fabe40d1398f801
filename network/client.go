// Package network implements the websocket client that exchanges avatar
// deltas, chat and latency probes with the game server.
package network

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/backusd/cubeworld/log"
	"github.com/backusd/cubeworld/subsystem"
	"github.com/gorilla/websocket"
)

// Size of the buffer between the reader goroutine and the frame thread.
const inboundQueueSize = 256

type Options struct {
	// Websocket endpoint path on the server.
	Path string

	DialTimeout  time.Duration
	WriteTimeout time.Duration
	PingInterval time.Duration
}

func DefaultOptions() Options {
	return Options{
		Path:         "/ws",
		DialTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Second,
		PingInterval: time.Second,
	}
}

// Client talks to the game server. Reads happen on a background goroutine;
// every other call, including all writes and all calls into the zone and UI,
// happens on the frame thread.
type Client struct {
	logger log.Logger
	opts   Options
	now    func() time.Time

	zone subsystem.RemoteAvatars
	chat subsystem.ChatSink

	conn      *websocket.Conn
	inbound   chan message
	done      chan struct{}
	closing   atomic.Bool
	dropped   atomic.Uint64
	closeOnce sync.Once

	connected bool
	lastPing  time.Time
	latency   float32
}

// Create a client that forwards remote avatar traffic to zone and chat
// messages to chat. Both must outlive the client.
func New(zone subsystem.RemoteAvatars, chat subsystem.ChatSink, opts Options) *Client {
	return &Client{
		logger:  log.New("network"),
		opts:    opts,
		now:     time.Now,
		zone:    zone,
		chat:    chat,
		inbound: make(chan message, inboundQueueSize),
		done:    make(chan struct{}),
	}
}

// Connect to the server at address:port.
func (c *Client) Init(address string, port int) error {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(address, strconv.Itoa(port)),
		Path:   c.opts.Path,
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.opts.DialTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("network: dial %s: %w", u.String(), err)
	}

	c.conn = conn
	c.connected = true
	go c.readLoop()

	c.logger.Noticef("connected to %s", u.String())
	c.ping()
	return nil
}

func (c *Client) readLoop() {
	defer close(c.done)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !c.closing.Load() && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warningf("read error: %v", err)
			}
			return
		}

		// A malformed message is dropped; only transport errors end the reader.
		var msg message
		if err = json.Unmarshal(data, &msg); err != nil {
			c.logger.Warningf("discarding malformed message: %v", err)
			continue
		}

		select {
		case c.inbound <- msg:
		default:
			c.dropped.Add(1)
		}
	}
}

// Process the inbound messages received since the previous frame and send a
// latency probe when one is due. Connection loss is logged once; the client
// then stays idle.
func (c *Client) Frame() {
	if !c.connected {
		return
	}

	// Checked before draining so messages queued by the reader right before
	// it exited are still delivered.
	lost := false
	select {
	case <-c.done:
		lost = true
	default:
	}

drain:
	for {
		select {
		case msg := <-c.inbound:
			c.dispatch(msg)
		default:
			break drain
		}
	}

	if lost {
		c.connected = false
		c.logger.Warning("connection to server lost")
		return
	}

	if dropped := c.dropped.Swap(0); dropped > 0 {
		c.logger.Warningf("dropped %d inbound messages", dropped)
	}

	if c.now().Sub(c.lastPing) >= c.opts.PingInterval {
		c.ping()
	}
}

func (c *Client) dispatch(msg message) {
	switch msg.Type {
	case msgJoin:
		c.zone.AddAvatar(msg.ID, msg.positionUpdate())
	case msgLeave:
		c.zone.RemoveAvatar(msg.ID)
	case msgPosition:
		c.zone.MoveAvatar(msg.ID, msg.positionUpdate())
	case msgState:
		if state, ok := msg.stateChange(); ok {
			c.zone.SetAvatarState(msg.ID, state)
		}
	case msgChat:
		c.chat.AddChatMessage(msg.Text)
	case msgPong:
		if msg.Sent > 0 {
			rtt := c.now().Sub(time.Unix(0, msg.Sent))
			c.latency = float32(rtt.Nanoseconds()) / float32(time.Millisecond)
		}
	default:
		c.logger.Debugf("ignoring message of type %q", msg.Type)
	}
}

func (c *Client) ping() {
	c.lastPing = c.now()
	c.send(message{Type: msgPing, Sent: c.lastPing.UnixNano()})
}

func (c *Client) SendStateChange(state subsystem.StateChange) {
	c.send(stateMessage(state))
}

func (c *Client) SendPositionUpdate(pos subsystem.PositionUpdate) {
	c.send(positionMessage(pos))
}

// Write a message. Failures are logged and the message is dropped.
func (c *Client) send(msg message) {
	if !c.connected {
		return
	}

	c.conn.SetWriteDeadline(c.now().Add(c.opts.WriteTimeout))
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Warningf("could not send %s message: %v", msg.Type, err)
	}
}

// Get the last measured round trip time in milliseconds.
func (c *Client) Latency() float32 {
	return c.latency
}

// Close the connection and wait for the reader goroutine to exit.
func (c *Client) Shutdown() {
	c.closeOnce.Do(func() {
		if c.conn != nil {
			c.closing.Store(true)
			c.conn.SetWriteDeadline(c.now().Add(c.opts.WriteTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client shutting down"))
			c.conn.Close()
			<-c.done
		}

		c.connected = false
		c.zone = nil
		c.chat = nil
	})
}
