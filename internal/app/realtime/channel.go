/*
Package realtime maintains the client's single connection to the backend's
subscribe/publish endpoint.

This file implements the Channel: connect handshake, read and write pumps,
idempotent topic subscription, and the best-effort offline announcement on
teardown. Inbound deliveries are exposed as a channel of events that closes
on disconnect, consumed by a single dispatch loop.
*/
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chatfront/internal/pkg/errs"
	"chatfront/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed to wait for a Pong after a Ping.
	pongWait = 60 * time.Second

	// frequency at which the client sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame received from the server.
	maxMessageSize = 65536

	// outbound frame queue capacity.
	sendQueueSize = 256

	// inbound event queue capacity.
	eventQueueSize = 256
)

// Channel is one bidirectional connection to the backend realtime endpoint.
// A Channel is single-use: after Close or a connection drop a new Channel
// must be created. There is no automatic reconnect.
type Channel struct {
	url      string
	username string

	conn   *websocket.Conn
	send   chan Frame
	events chan Event
	done   chan struct{}

	// mu protects subscribed and connected.
	mu         sync.Mutex
	subscribed map[string]string
	connected  bool

	closeOnce sync.Once
	logger    zerolog.Logger
}

// NewChannel returns an unconnected Channel for the given endpoint URL,
// announcing as username.
func NewChannel(url, username string) *Channel {
	channelLogger := logx.Logger().With().
		Str("component", "realtime").
		Str("username", username).
		Logger()

	return &Channel{
		url:        url,
		username:   username,
		send:       make(chan Frame, sendQueueSize),
		events:     make(chan Event, eventQueueSize),
		done:       make(chan struct{}),
		subscribed: make(map[string]string),
		logger:     channelLogger,
	}
}

// Connect dials the realtime endpoint and performs the connect handshake:
// subscribe to the public feed and the private inbox before anything else,
// then announce presence exactly once for this connection.
func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return errs.NewError(errs.ErrChannelConnect)
	}
	c.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", c.url).Msg("Realtime dial failed.")
		return errs.NewError(errs.ErrChannelConnect)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.writePump()
	go c.readPump()

	// Handshake order matters: the fixed subscriptions must be in place
	// before the presence announcements trigger any broadcasts back.
	if err := c.Subscribe(TopicPublic); err != nil {
		return err
	}
	if err := c.Subscribe(TopicPrivateQueue); err != nil {
		return err
	}

	announcement := presenceAnnouncement{Username: c.username}
	if err := c.Publish(DestAddUser, announcement); err != nil {
		return err
	}
	if err := c.Publish(DestUserOnline, announcement); err != nil {
		return err
	}

	c.logger.Info().Msg("Realtime channel connected.")
	return nil
}

// Events returns the inbound delivery stream. The channel is closed when the
// connection ends, which terminates the consumer's dispatch loop.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// IsConnected reports whether the channel currently holds a live connection.
func (c *Channel) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Subscribe registers interest in a topic. Subscribing to a topic that is
// already subscribed on this connection is a no-op: at most one SUBSCRIBE
// frame is sent per topic per connection lifetime, so repeated opens of the
// same room never double-subscribe.
func (c *Channel) Subscribe(topic string) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return errs.NewError(errs.ErrChannelClosed)
	}

	if _, ok := c.subscribed[topic]; ok {
		c.mu.Unlock()
		c.logger.Debug().Str("topic", topic).Msg("Topic already subscribed. Skipping.")
		return nil
	}

	id := uuid.NewString()
	c.subscribed[topic] = id
	c.mu.Unlock()

	return c.enqueue(Frame{
		Type:        FrameSubscribe,
		ID:          id,
		Destination: topic,
	})
}

// Publish marshals the payload and queues a SEND frame for the destination.
func (c *Channel) Publish(destination string, payload any) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return errs.NewError(errs.ErrChannelClosed)
	}
	c.mu.Unlock()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return c.enqueue(Frame{
		Type:        FrameSend,
		Destination: destination,
		Body:        body,
	})
}

// Close announces userOffline best-effort and tears the connection down.
// The offline signal is fire-and-forget: no acknowledgement is awaited and
// failure to deliver it is not an error. Close is safe to call twice and on
// a channel that never connected.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		wasConnected := c.connected
		c.connected = false
		c.mu.Unlock()

		if wasConnected {
			body, err := json.Marshal(presenceAnnouncement{Username: c.username})
			if err == nil {
				select {
				case c.send <- Frame{Type: FrameSend, Destination: DestUserOffline, Body: body}:
				default:
					c.logger.Warn().Msg("Send queue full. Dropping offline announcement.")
				}
			}
		}

		close(c.done)
	})
}

// enqueue places a frame on the outbound queue without blocking the caller.
func (c *Channel) enqueue(frame Frame) error {
	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return errs.NewError(errs.ErrChannelClosed)
	default:
		c.logger.Warn().
			Str("destination", frame.Destination).
			Msg("Send queue full. Dropping frame.")
		return errs.NewError(errs.ErrChannelClosed)
	}
}

// writePump owns all writes to the connection: queued frames, the ping
// heartbeat, and the final close message after done is signalled.
func (c *Channel) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in write pump.")
		}
	}()

	for {
		select {
		case frame := <-c.send:
			if !c.writeFrame(frame) {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Info().Err(err).Msg("Ping failed. Closing connection.")
				return
			}

		case <-c.done:
			// Drain anything still queued (the offline announcement in
			// particular) before saying goodbye.
			for {
				select {
				case frame := <-c.send:
					if !c.writeFrame(frame) {
						return
					}
				default:
					if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err == nil {
						c.conn.WriteMessage(websocket.CloseMessage,
							websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					}
					return
				}
			}
		}
	}
}

// writeFrame writes one frame with a deadline. Returns false when the write
// pump should terminate.
func (c *Channel) writeFrame(frame Frame) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}

	data, err := json.Marshal(frame)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error marshaling outbound frame.")
		return true
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.logger.Info().Err(err).Msg("Error writing frame. Closing connection.")
		return false
	}

	return true
}

// readPump reads frames until the connection ends, forwarding MESSAGE frames
// to the event stream. It closes the event stream on exit so the dispatch
// loop observes the disconnect.
func (c *Channel) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()

		c.Close()
		close(c.events)
		c.logger.Info().Msg("Realtime channel disconnected.")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Unexpected connection close.")
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.logger.Warn().Err(err).Msg("Server sent invalid frame JSON. Skipping.")
			continue
		}

		switch frame.Type {
		case FrameMessage:
			select {
			case c.events <- Event{Topic: frame.Destination, Body: frame.Body}:
			case <-c.done:
				return
			}

		case FrameError:
			c.logger.Warn().
				Str("destination", frame.Destination).
				Bytes("body", frame.Body).
				Msg("Broker reported an error.")

		default:
			c.logger.Warn().Str("frame_type", string(frame.Type)).Msg("Server sent unsupported frame type.")
		}
	}
}
