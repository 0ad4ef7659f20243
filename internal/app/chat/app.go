/*
Package chat implements the client-side conversation state.

This file defines the App struct, the single authoritative owner of session,
context, and presence state. Handlers receive the App explicitly and the
renderer only ever receives data, never a reference back into the state.
Inbound traffic arrives as a stream of events consumed by one dispatch loop.
*/
package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chatfront/internal/app/api"
	"chatfront/internal/app/directory"
	"chatfront/internal/app/realtime"
	"chatfront/internal/app/render"
	"chatfront/internal/app/session"
	"chatfront/internal/pkg/logx"
)

// Channel is the subset of the realtime channel the router depends on.
type Channel interface {
	Publish(destination string, payload any) error
	Subscribe(topic string) error
	IsConnected() bool
}

// HistoryFetcher loads a room's stored messages.
type HistoryFetcher interface {
	RoomMessages(ctx context.Context, userID int64, roomID int64) ([]api.HistoryMessage, error)
}

// App holds all client-side conversation state and routes messages between
// the realtime channel, the REST history endpoint, and the renderer.
type App struct {
	sess     session.Session
	channel  Channel
	history  HistoryFetcher
	dir      *directory.Directory
	renderer render.Renderer

	// mu protects current, presence, and generation.
	mu       sync.Mutex
	current  Context
	presence []string

	// generation invalidates in-flight history fetches: a response whose
	// generation no longer matches belongs to a superseded context and is
	// discarded instead of overwriting the new transcript.
	generation uint64

	logger zerolog.Logger
}

// NewApp returns an App starting in the public context.
func NewApp(sess session.Session, channel Channel, history HistoryFetcher, dir *directory.Directory, renderer render.Renderer) *App {
	appLogger := logx.Logger().With().
		Str("component", "chat").
		Str("username", sess.Username).
		Logger()

	return &App{
		sess:     sess,
		channel:  channel,
		history:  history,
		dir:      dir,
		renderer: renderer,
		current:  Public(),
		logger:   appLogger,
	}
}

// Current returns the active context.
func (a *App) Current() Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Presence returns the last-reported online usernames.
func (a *App) Presence() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, len(a.presence))
	copy(out, a.presence)
	return out
}

// SetContext switches the active conversation. The transcript is cleared,
// the prompt updated, a group room's topic subscription ensured (the channel
// makes repeat subscribes a no-op), and the room's history fetched
// asynchronously. Switching again while a fetch is in flight supersedes it.
func (a *App) SetContext(ctx context.Context, next Context) {
	a.mu.Lock()
	a.current = next
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	a.renderer.Clear()

	switch next.Kind {
	case KindPrivate:
		if next.RoomID != 0 {
			a.renderer.AppendSystem("Opened chat: " + a.roomName(next.RoomID, "Unknown Chat"))
			a.renderer.SetPrompt("Type your message...")
		} else {
			a.renderer.AppendSystem("Private chat with " + next.Peer)
			a.renderer.SetPrompt("Message " + next.Peer + "...")
		}

	case KindGroup:
		if err := a.channel.Subscribe(realtime.GroupTopic(next.RoomID)); err != nil {
			a.logger.Warn().Err(err).Int64("room_id", next.RoomID).Msg("Group topic subscription failed.")
		}
		a.renderer.AppendSystem("Opened group: " + a.roomName(next.RoomID, "Unknown Group"))
		a.renderer.SetPrompt("Message group...")

	default:
		a.renderer.SetPrompt("Type your message...")
	}

	if next.RoomID != 0 {
		go a.loadHistory(ctx, gen, next.RoomID)
	}
}

// roomName resolves a room id to its cached name.
func (a *App) roomName(roomID int64, fallback string) string {
	if room, ok := a.dir.RoomByID(roomID); ok {
		return room.Name
	}
	return fallback
}

// loadHistory fetches a room's history and appends it in server order.
// A result whose generation was superseded by a later SetContext is dropped.
func (a *App) loadHistory(ctx context.Context, gen uint64, roomID int64) {
	messages, err := a.history.RoomMessages(ctx, a.sess.ID, roomID)
	if err != nil {
		a.logger.Warn().Err(err).Int64("room_id", roomID).Msg("History fetch failed.")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		a.logger.Debug().Int64("room_id", roomID).Msg("Discarding history for superseded context.")
		return
	}

	for _, m := range messages {
		a.renderer.AppendMessage(render.Line{
			Username:  m.Sender.Username,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Own:       m.Sender.Username == a.sess.Username,
		})
	}
}

// Send builds the outgoing envelope for the active context and publishes it.
// Empty or whitespace-only input is a no-op, as is sending while the channel
// is not connected. Public and private sends are echoed locally right away;
// group sends wait for the server's broadcast on the room topic, so the
// sender sees the message once delivery is confirmed, not before.
func (a *App) Send(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	if !a.channel.IsConnected() {
		return
	}

	current := a.Current()

	msg := Message{
		Username:    a.sess.Username,
		Content:     trimmed,
		MessageType: MessageChat,
	}

	switch current.Kind {
	case KindPrivate:
		msg.TargetUser = current.Peer
	case KindGroup:
		msg.ChatRoomID = current.RoomID
	}

	if current.Kind != KindGroup {
		a.renderer.AppendMessage(render.Line{
			Username:  a.sess.Username,
			Content:   trimmed,
			Timestamp: time.Now(),
			Own:       true,
		})
	}

	if err := a.channel.Publish(realtime.DestSendMessage, msg); err != nil {
		a.logger.Warn().Err(err).Msg("Publish failed.")
	}
}

// RouteIncoming dispatches one inbound message. Presence updates are applied
// before their system line renders, so the user list never lags behind the
// transcript. JOIN/LEAVE lines update the count display when one is carried.
func (a *App) RouteIncoming(msg Message) {
	switch msg.MessageType {
	case MessageOnline, MessageOffline:
		a.mu.Lock()
		a.presence = append([]string(nil), msg.OnlineUsers...)
		users := make([]string, len(a.presence))
		copy(users, a.presence)
		a.mu.Unlock()

		a.renderer.SetPresence(users, a.sess.Username)
		a.renderer.SetUserCount(len(users))
		a.renderer.AppendSystem(msg.Content)

	case MessageJoin, MessageLeave:
		a.renderer.AppendSystem(msg.Content)
		if msg.OnlineCount != nil {
			a.renderer.SetUserCount(*msg.OnlineCount)
		}

	default:
		a.renderer.AppendMessage(render.Line{
			Username:  msg.Username,
			Content:   msg.Content,
			Timestamp: msg.Time(),
			Own:       msg.Username == a.sess.Username,
		})
	}
}

// Run is the single dispatch loop. It drains the event stream until the
// stream closes (disconnect) or ctx is cancelled. Events are handled in
// delivery order; nothing is buffered or reordered here.
func (a *App) Run(ctx context.Context, events <-chan realtime.Event) {
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				a.renderer.AppendSystem("Disconnected from chat server")
				return
			}

			var msg Message
			if err := json.Unmarshal(ev.Body, &msg); err != nil {
				a.logger.Warn().Err(err).Str("topic", ev.Topic).Msg("Dropping undecodable message.")
				continue
			}

			a.RouteIncoming(msg)
		}
	}
}
