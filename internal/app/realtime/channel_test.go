package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// broker is a scripted stand-in for the backend realtime endpoint.
type broker struct {
	server *httptest.Server

	mu     sync.Mutex
	conn   *websocket.Conn
	ready  chan struct{}
	frames chan Frame
	closed chan struct{}
}

func newBroker(t *testing.T) *broker {
	t.Helper()

	b := &broker{
		ready:  make(chan struct{}),
		frames: make(chan Frame, 64),
		closed: make(chan struct{}),
	}

	upgrader := websocket.Upgrader{}

	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		b.mu.Lock()
		b.conn = conn
		b.mu.Unlock()
		close(b.ready)

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				close(b.closed)
				return
			}

			var frame Frame
			if err := json.Unmarshal(data, &frame); err != nil {
				continue
			}
			b.frames <- frame
		}
	}))

	t.Cleanup(b.server.Close)
	return b
}

func (b *broker) url() string {
	return "ws" + strings.TrimPrefix(b.server.URL, "http")
}

func (b *broker) next(t *testing.T) Frame {
	t.Helper()
	select {
	case frame := <-b.frames:
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return Frame{}
	}
}

func (b *broker) deliver(t *testing.T, frame Frame) {
	t.Helper()
	select {
	case <-b.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("broker never accepted a connection")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	require.NoError(t, b.conn.WriteJSON(frame))
}

func connect(t *testing.T, b *broker, username string) *Channel {
	t.Helper()

	channel := NewChannel(b.url(), username)
	require.NoError(t, channel.Connect(context.Background()))
	t.Cleanup(channel.Close)
	return channel
}

func TestConnectHandshakeOrder(t *testing.T) {
	b := newBroker(t)
	connect(t, b, "alice")

	first := b.next(t)
	assert.Equal(t, FrameSubscribe, first.Type)
	assert.Equal(t, TopicPublic, first.Destination)
	assert.NotEmpty(t, first.ID)

	second := b.next(t)
	assert.Equal(t, FrameSubscribe, second.Type)
	assert.Equal(t, TopicPrivateQueue, second.Destination)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	third := b.next(t)
	assert.Equal(t, FrameSend, third.Type)
	assert.Equal(t, DestAddUser, third.Destination)
	assert.JSONEq(t, `{"username":"alice"}`, string(third.Body))

	fourth := b.next(t)
	assert.Equal(t, FrameSend, fourth.Type)
	assert.Equal(t, DestUserOnline, fourth.Destination)
	assert.JSONEq(t, `{"username":"alice"}`, string(fourth.Body))
}

func drainHandshake(t *testing.T, b *broker) {
	t.Helper()
	for i := 0; i < 4; i++ {
		b.next(t)
	}
}

func TestSubscribeIsIdempotentPerTopic(t *testing.T) {
	b := newBroker(t)
	channel := connect(t, b, "alice")
	drainHandshake(t, b)

	topic := GroupTopic(7)
	require.NoError(t, channel.Subscribe(topic))
	require.NoError(t, channel.Subscribe(topic))
	require.NoError(t, channel.Subscribe(topic))

	// A marker publish after the repeated subscribes: if any duplicate
	// SUBSCRIBE frame had been sent, it would arrive before the marker.
	require.NoError(t, channel.Publish(DestSendMessage, map[string]string{"content": "marker"}))

	sub := b.next(t)
	assert.Equal(t, FrameSubscribe, sub.Type)
	assert.Equal(t, topic, sub.Destination)

	marker := b.next(t)
	assert.Equal(t, FrameSend, marker.Type)
	assert.Equal(t, DestSendMessage, marker.Destination)
}

func TestPublishSendsFrameWithBody(t *testing.T) {
	b := newBroker(t)
	channel := connect(t, b, "alice")
	drainHandshake(t, b)

	payload := map[string]any{"username": "alice", "content": "hello", "messageType": "CHAT"}
	require.NoError(t, channel.Publish(DestSendMessage, payload))

	frame := b.next(t)
	assert.Equal(t, FrameSend, frame.Type)
	assert.Equal(t, DestSendMessage, frame.Destination)
	assert.JSONEq(t, `{"username":"alice","content":"hello","messageType":"CHAT"}`, string(frame.Body))
}

func TestCloseAnnouncesOffline(t *testing.T) {
	b := newBroker(t)
	channel := connect(t, b, "alice")
	drainHandshake(t, b)

	channel.Close()

	frame := b.next(t)
	assert.Equal(t, FrameSend, frame.Type)
	assert.Equal(t, DestUserOffline, frame.Destination)
	assert.JSONEq(t, `{"username":"alice"}`, string(frame.Body))

	select {
	case <-b.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not closed after offline announcement")
	}

	assert.False(t, channel.IsConnected())
}

func TestEventsDeliverMessagesAndCloseOnDisconnect(t *testing.T) {
	b := newBroker(t)
	channel := connect(t, b, "alice")
	drainHandshake(t, b)

	b.deliver(t, Frame{
		Type:        FrameMessage,
		Destination: TopicPublic,
		Body:        json.RawMessage(`{"username":"bob","content":"hi","messageType":"CHAT"}`),
	})

	select {
	case ev := <-channel.Events():
		assert.Equal(t, TopicPublic, ev.Topic)
		assert.JSONEq(t, `{"username":"bob","content":"hi","messageType":"CHAT"}`, string(ev.Body))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	// Server-side close terminates the event stream.
	b.mu.Lock()
	b.conn.Close()
	b.mu.Unlock()

	select {
	case _, ok := <-channel.Events():
		assert.False(t, ok, "event stream should close on disconnect")
	case <-time.After(2 * time.Second):
		t.Fatal("event stream did not close on disconnect")
	}
}

func TestConnectFailureReturnsError(t *testing.T) {
	channel := NewChannel("ws://127.0.0.1:1/ws", "alice")

	err := channel.Connect(context.Background())
	require.Error(t, err)
	assert.False(t, channel.IsConnected())
}

func TestSubscribeBeforeConnectFails(t *testing.T) {
	channel := NewChannel("ws://example.invalid/ws", "alice")

	assert.Error(t, channel.Subscribe(TopicPublic))
	assert.Error(t, channel.Publish(DestSendMessage, map[string]string{}))
}

func TestGroupTopicFormat(t *testing.T) {
	assert.Equal(t, "/topic/group/42", GroupTopic(42))
}
