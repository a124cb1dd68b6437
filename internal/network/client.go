package network

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Deimvis/MafiaGame/internal/platform/metrics"
	"github.com/Deimvis/MafiaGame/internal/room"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Action is an inbound command from a client. The acting username is bound
// to the connection at upgrade time and never trusted from the payload.
type Action struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Suspect string `json:"suspect,omitempty"`
	Target  string `json:"target,omitempty"`
	RoomID  string `json:"room_id,omitempty"`
}

// Client is one active websocket connection with its view subscription.
// The send queue is never closed: readPump owns teardown and signals it
// through done, so a late emission from the view stream cannot panic.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{} // closed by readPump once the connection is torn down
	username string
	connID   string
	cancel   context.CancelFunc
}

// NewClient wraps an upgraded connection for the given username.
func NewClient(hub *Hub, conn *websocket.Conn, username string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		done:     make(chan struct{}),
		username: username,
		connID:   uuid.NewString(),
	}
}

// Join adds the player to the room. A username-taken failure is returned
// to the caller so the connection can be refused before any pump starts.
func (c *Client) Join() error {
	return c.hub.room.AddPlayer(c.username)
}

// Start registers the client and launches the pumps and the view stream.
// A connection arriving while the hub shuts down is dropped.
func (c *Client) Start(ctx context.Context) {
	streamCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	select {
	case c.hub.register <- c:
	case <-c.hub.done:
		cancel()
		c.conn.Close()
		return
	}
	go c.writePump()
	go c.streamViews(streamCtx)
	go c.readPump()
}

// detach removes the client from the hub. Must not block when the hub
// already shut down.
func (c *Client) detach() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// readPump pumps commands from the websocket connection into the room.
// It owns connection teardown: cancel the stream, detach from the hub,
// then signal writePump through done.
func (c *Client) readPump() {
	defer func() {
		c.cancel()
		c.detach()
		c.conn.Close()
		close(c.done)
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", "username", c.username, "error", err)
			}
			return
		}
		var action Action
		if err := json.Unmarshal(message, &action); err != nil {
			c.hub.logger.Warn("failed to parse action", "username", c.username, "error", err)
			continue
		}
		c.handleAction(action)
	}
}

// handleAction routes one command to the room. Stale commands come back as
// nil and are dropped silently; real errors are logged and counted.
func (c *Client) handleAction(action Action) {
	metrics.CommandsTotal.WithLabelValues(action.Type).Inc()
	rm := c.hub.room

	var err error
	switch action.Type {
	case "send_message":
		err = rm.SendMessage(c.username, action.Text)
	case "begin_vote":
		err = rm.BeginVote(c.username)
	case "vote":
		err = rm.Vote(c.username, action.Suspect)
	case "mafia_vote":
		err = rm.MafiaVote(c.username, action.Suspect)
	case "sheriff_vote":
		err = rm.SheriffVote(c.username, action.Suspect)
	case "expose":
		err = rm.Expose(c.username, action.Target)
	case "disconnect":
		if action.RoomID != rm.ID() {
			c.hub.logger.Warn("disconnect for wrong room", "username", c.username, "room_id", action.RoomID)
			return
		}
		err = rm.RemovePlayer(c.username)
	default:
		c.hub.logger.Warn("unknown action type", "username", c.username, "type", action.Type)
		return
	}
	if err != nil {
		metrics.CommandErrors.WithLabelValues(action.Type).Inc()
		c.hub.logger.Warn("command rejected", "username", c.username, "type", action.Type, "error", err)
	}
}

// streamViews runs the room subscription and pushes each new projection to
// the peer. Ends the connection when the stream terminates.
func (c *Client) streamViews(ctx context.Context) {
	err := c.hub.room.Stream(ctx, c.username, func(v room.View) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		select {
		case c.send <- data:
			metrics.ViewsEmitted.Inc()
			return nil
		default:
			return errors.New("subscriber is too slow")
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		c.hub.logger.Info("view stream ended", "username", c.username, "reason", err)
	}
	c.conn.Close()
}

// writePump pumps queued frames to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
