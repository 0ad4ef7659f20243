/*
Package chat implements the client-side conversation state: the single active
context, the outgoing message envelopes, and the routing of inbound messages
to the renderer.

This file defines the realtime message envelope. The backend owns this shape;
the client only builds and reads it, never stores it.
*/
package chat

import "time"

// MessageType classifies a realtime message.
type MessageType string

const (
	// MessageChat is a regular user chat message.
	MessageChat MessageType = "CHAT"

	// MessageJoin announces a user joining the public chat.
	MessageJoin MessageType = "JOIN"

	// MessageLeave announces a user leaving the public chat.
	MessageLeave MessageType = "LEAVE"

	// MessageOnline carries a presence update with the full online list.
	MessageOnline MessageType = "ONLINE"

	// MessageOffline carries a presence update with the full online list.
	MessageOffline MessageType = "OFFLINE"
)

// Message is the flat realtime envelope exchanged over the channel.
// TargetUser is set only for private messages and ChatRoomID only for group
// messages; the public feed carries neither.
type Message struct {
	Username    string      `json:"username"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"messageType"`

	// Timestamp is milliseconds since the Unix epoch. Zero means unset.
	Timestamp int64 `json:"timestamp,omitempty"`

	TargetUser string `json:"targetUser,omitempty"`
	ChatRoomID int64  `json:"chatRoomId,omitempty"`

	// OnlineUsers is the authoritative presence list on ONLINE/OFFLINE messages.
	OnlineUsers []string `json:"onlineUsers,omitempty"`

	// OnlineCount is the displayed count on JOIN/LEAVE messages, when the
	// backend includes one.
	OnlineCount *int `json:"onlineCount,omitempty"`
}

// IsSystem reports whether the message renders as a system line rather than
// a chat bubble.
func (m Message) IsSystem() bool {
	switch m.MessageType {
	case MessageJoin, MessageLeave, MessageOnline, MessageOffline:
		return true
	}
	return false
}

// Time converts the envelope timestamp, substituting the current time when
// the backend sent none.
func (m Message) Time() time.Time {
	if m.Timestamp == 0 {
		return time.Now()
	}
	return time.UnixMilli(m.Timestamp)
}
