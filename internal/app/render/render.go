/*
Package render defines the view boundary of the client.

A Renderer is a pure projection of already-decided data: the router hands it
messages, system lines, presence, and prompt text, and it owns no chat state
of its own. Handlers never reach into a renderer's internals.
*/
package render

import "time"

// Line is one chat message ready to display.
type Line struct {
	// Username is the sender's handle.
	Username string

	// Content is the message text.
	Content string

	// Timestamp is when the message was sent.
	Timestamp time.Time

	// Own marks a message sent by the local user.
	Own bool
}

// Renderer receives display updates from the message router and UI wiring.
type Renderer interface {
	// AppendMessage appends one chat bubble to the transcript.
	AppendMessage(line Line)

	// AppendSystem appends one system line to the transcript.
	AppendSystem(text string)

	// Clear empties the transcript, typically on a context switch.
	Clear()

	// SetPrompt replaces the input placeholder text.
	SetPrompt(placeholder string)

	// SetPresence replaces the online-users list. The entry matching self
	// must be visually distinguished from the others.
	SetPresence(users []string, self string)

	// SetUserCount updates the displayed online count.
	SetUserCount(n int)
}
