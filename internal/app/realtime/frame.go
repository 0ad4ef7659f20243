/*
Package realtime maintains the client's single connection to the backend's
subscribe/publish endpoint.

This file defines the wire frames exchanged over the WebSocket and the
destination names the backend routes on.
*/
package realtime

import (
	"encoding/json"
	"fmt"
)

// FrameType identifies the purpose of a frame on the realtime wire.
type FrameType string

const (
	// FrameSubscribe registers interest in a topic. Client to server only.
	FrameSubscribe FrameType = "SUBSCRIBE"

	// FrameSend publishes a payload to an application destination. Client to server only.
	FrameSend FrameType = "SEND"

	// FrameMessage delivers a payload for a subscribed topic. Server to client only.
	FrameMessage FrameType = "MESSAGE"

	// FrameError reports a broker-side problem. Server to client only.
	FrameError FrameType = "ERROR"
)

// Frame is one JSON text message on the realtime connection.
type Frame struct {
	Type FrameType `json:"type"`

	// ID is the client-assigned subscription id, present on SUBSCRIBE frames.
	ID string `json:"id,omitempty"`

	// Destination is the topic or application destination the frame concerns.
	Destination string `json:"destination,omitempty"`

	// Body is the frame payload, left raw so each layer decodes its own types.
	Body json.RawMessage `json:"body,omitempty"`
}

// Event is one inbound delivery handed to the dispatch loop.
type Event struct {
	// Topic is the subscribed topic the payload arrived on.
	Topic string

	// Body is the undecoded message payload.
	Body json.RawMessage
}

// Application destinations the client publishes to.
const (
	DestAddUser     = "/app/chat.addUser"
	DestUserOnline  = "/app/chat.userOnline"
	DestUserOffline = "/app/chat.userOffline"
	DestSendMessage = "/app/chat.sendMessage"
)

// Topics the client subscribes to.
const (
	// TopicPublic carries the public feed and presence broadcasts.
	TopicPublic = "/topic/public"

	// TopicPrivateQueue is the per-user private message inbox.
	TopicPrivateQueue = "/user/queue/private"
)

// GroupTopic returns the feed topic for one group room. Group topics are
// subscribed lazily, the first time the user opens the room.
func GroupTopic(roomID int64) string {
	return fmt.Sprintf("/topic/group/%d", roomID)
}

// presenceAnnouncement is the body of addUser/userOnline/userOffline publishes.
type presenceAnnouncement struct {
	Username string `json:"username"`
}
