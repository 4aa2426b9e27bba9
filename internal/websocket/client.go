// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package websocket

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cicerone/internal/logging"
	"github.com/tomtom215/cicerone/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Clients only send small control frames (subscribe, ping).
	maxMessageSize = 4 * 1024
)

// clientIDCounter generates unique, monotonically increasing client IDs
// so broadcast order is reproducible.
var clientIDCounter atomic.Uint64

// Client is a middleman between one websocket connection and the hub.
// watching holds the request IDs this client filtered to; empty means
// receive everything.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	mu       sync.RWMutex
	watching map[string]struct{}
}

// NewClient creates a new Client with a unique ID and an empty filter.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:       clientIDCounter.Add(1),
		hub:      hub,
		conn:     conn,
		send:     make(chan Message, 64),
		watching: make(map[string]struct{}),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// wants reports whether this client should receive a progress message
// for the given request ID. Messages without a request ID always pass.
func (c *Client) wants(requestID string) bool {
	if requestID == "" {
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.watching) == 0 {
		return true
	}
	_, ok := c.watching[requestID]
	return ok
}

func (c *Client) subscribe(requestID string) {
	c.mu.Lock()
	c.watching[requestID] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) unsubscribe(requestID string) {
	c.mu.Lock()
	delete(c.watching, requestID)
	c.mu.Unlock()
}

// readPump pumps control frames from the websocket connection to the
// client's filter state and replies to application-level pings.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Msg("unexpected websocket close error")
			}
			break
		}

		c.handleInbound(msg)
	}
}

// handleInbound processes one message from the browser.
func (c *Client) handleInbound(msg Message) {
	switch msg.Type {
	case MessageTypePing:
		c.reply(Message{Type: MessageTypePong})

	case MessageTypeSubscribe:
		id := inboundRequestID(msg)
		if id == "" {
			c.reply(Message{Type: MessageTypeError, Data: "subscribe requires a request_id"})
			return
		}
		c.subscribe(id)
		c.reply(Message{Type: MessageTypeSubscribed, Data: map[string]string{"request_id": id}})

	case MessageTypeUnsubscribe:
		id := inboundRequestID(msg)
		if id == "" {
			c.reply(Message{Type: MessageTypeError, Data: "unsubscribe requires a request_id"})
			return
		}
		c.unsubscribe(id)
		c.reply(Message{Type: MessageTypeUnsubscribed, Data: map[string]string{"request_id": id}})
	}
}

// inboundRequestID pulls the request_id field out of a decoded message.
func inboundRequestID(msg Message) string {
	data, ok := msg.Data.(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := data["request_id"].(string)
	return id
}

// reply queues a message for this client only, dropping it if the
// buffer is full.
func (c *Client) reply(msg Message) {
	select {
	case c.send <- msg:
	default:
	}
}

// writePump pumps messages from the hub to the websocket connection and
// keeps the connection alive with protocol pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				// The hub closed the channel.
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logging.Error().Err(err).Msg("failed to write close message")
				}
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				logging.Error().Err(err).Msg("failed to write JSON message")
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
