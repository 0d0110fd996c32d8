package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/bus"
)

// Heartbeat and reconnect cadence the backend expects.
const (
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultReconnectDelay    = 60 * time.Second
)

// SocketEvent is one inbound frame: either an init frame assigning this
// client its identity, or an out-of-band change notification.
type SocketEvent struct {
	Collection string          `json:"collection"`
	Action     string          `json:"action"`
	Detail     json.RawMessage `json:"detail,omitempty"`
}

// socketSession is the slice of the session store the socket client needs.
type socketSession interface {
	LoadToken() (string, error)
	SaveClientID(id string) error
}

// SocketClient keeps a long-lived connection to the backend and shortcuts the
// polling interval: every change notification publishes the collection's
// topic on the refresh bus, and subscribers re-read from the cache.
//
// Heartbeats are fire-and-forget pings; there is no pong bookkeeping. They
// keep intermediaries from idling the connection out, nothing more.
type SocketClient struct {
	url            string
	heartbeat      time.Duration
	reconnectDelay time.Duration
	session        socketSession
	bus            *bus.RefreshBus
	log            *zap.SugaredLogger

	// onEvent, when set, runs before the bus publish for every change
	// notification. The watch wiring uses it to pull the changed
	// collection immediately instead of waiting for the next poll tick.
	onEvent func(collection string)
}

// SetOnEvent installs the pre-publish hook. Call before Run.
func (c *SocketClient) SetOnEvent(fn func(collection string)) { c.onEvent = fn }

// SetCadence overrides the heartbeat and reconnect intervals. Non-positive
// values keep the defaults. Call before Run.
func (c *SocketClient) SetCadence(heartbeat, reconnect time.Duration) {
	if heartbeat > 0 {
		c.heartbeat = heartbeat
	}
	if reconnect > 0 {
		c.reconnectDelay = reconnect
	}
}

func NewSocketClient(url string, session socketSession, b *bus.RefreshBus, log *zap.SugaredLogger) *SocketClient {
	return &SocketClient{
		url:            url,
		heartbeat:      DefaultHeartbeatInterval,
		reconnectDelay: DefaultReconnectDelay,
		session:        session,
		bus:            b,
		log:            log,
	}
}

// Run connects and serves frames until ctx is cancelled. On any disconnect it
// waits the fixed reconnect delay and dials again. Cancelling ctx stops the
// heartbeat, closes the socket and returns without reconnecting.
func (c *SocketClient) Run(ctx context.Context) {
	for {
		if err := c.serve(ctx); err != nil && ctx.Err() == nil {
			c.log.Warnw("socket disconnected", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.reconnectDelay):
		}
	}
}

func (c *SocketClient) serve(ctx context.Context) error {
	header := http.Header{}
	if token, err := c.session.LoadToken(); err == nil && token != "" {
		header.Set("Cookie", "auth_token="+token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	if err != nil {
		return err
	}
	c.log.Infow("socket connected", "url", c.url)

	done := make(chan struct{})
	defer close(done)

	// Heartbeat and ctx watchdog. Closing the conn unblocks ReadMessage.
	go func() {
		ticker := time.NewTicker(c.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				conn.Close()
				return
			case <-done:
				conn.Close()
				return
			case <-ticker.C:
				if err := conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
					c.log.Warnw("heartbeat failed", "error", err)
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		c.handleFrame(data)
	}
}

func (c *SocketClient) handleFrame(data []byte) {
	var ev SocketEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		c.log.Warnw("dropping malformed socket frame", "error", err, "frame", truncate(data, 200))
		return
	}
	switch {
	case ev.Action == "init":
		var clientID string
		if err := json.Unmarshal(ev.Detail, &clientID); err != nil || clientID == "" {
			c.log.Warnw("init frame without client id", "frame", truncate(data, 200))
			return
		}
		if err := c.session.SaveClientID(clientID); err != nil {
			c.log.Errorw("persisting client id failed", "error", err)
		}
	case ev.Collection != "" && ev.Action != "":
		if c.onEvent != nil {
			c.onEvent(ev.Collection)
		}
		c.bus.Publish(bus.Topic(ev.Collection))
	default:
		c.log.Warnw("unexpected socket message format", "frame", truncate(data, 200))
	}
}
