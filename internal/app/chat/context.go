/*
Package chat implements the client-side conversation state.

This file defines the Context value: the single active conversation target.
Exactly one Context is live at a time; it determines which fields the
outgoing envelope carries and which system lines a switch produces.
*/
package chat

// Kind is the category of the active conversation.
type Kind string

const (
	KindPublic  Kind = "public"
	KindPrivate Kind = "private"
	KindGroup   Kind = "group"
)

// Context identifies the active conversation target.
type Context struct {
	Kind Kind

	// Peer is the private conversation partner's username. Set for private
	// contexts only; outgoing private envelopes address this user.
	Peer string

	// RoomID is the backend room id. Set for group contexts, and for private
	// contexts opened from the room list so history can be fetched.
	RoomID int64
}

// Public returns the public-feed context.
func Public() Context {
	return Context{Kind: KindPublic}
}

// Private returns a private context addressed to peer, with no room history.
// Used when starting a conversation from a contact or search result.
func Private(peer string) Context {
	return Context{Kind: KindPrivate, Peer: peer}
}

// PrivateRoom returns a private context opened from an existing room, which
// both addresses peer and fetches the room's history.
func PrivateRoom(roomID int64, peer string) Context {
	return Context{Kind: KindPrivate, Peer: peer, RoomID: roomID}
}

// Group returns a group context for the given room.
func Group(roomID int64) Context {
	return Context{Kind: KindGroup, RoomID: roomID}
}
