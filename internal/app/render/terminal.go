/*
Package render defines the view boundary of the client.

This file implements the terminal renderer used by the interactive client
binary. Output is plain lines with optional ANSI styling; the transcript is
append-only, so Clear prints a divider rather than wiping the scrollback.
*/
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
	ansiGreen = "\033[32m"
)

// Terminal renders the chat view as lines on an io.Writer.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	color  bool
	prompt string
}

// NewTerminal returns a Terminal writing to out. Styling is applied only
// when color is true.
func NewTerminal(out io.Writer, color bool) *Terminal {
	return &Terminal{
		out:    out,
		color:  color,
		prompt: "Type your message...",
	}
}

// Prompt returns the current input placeholder, shown by the input loop.
func (t *Terminal) Prompt() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prompt
}

// AppendMessage appends one chat bubble.
func (t *Terminal) AppendMessage(line Line) {
	t.mu.Lock()
	defer t.mu.Unlock()

	who := line.Username
	if line.Own {
		who = "You"
	}

	stamp := line.Timestamp.Format("15:04")

	if t.color {
		nameColor := ansiCyan
		if line.Own {
			nameColor = ansiGreen
		}
		fmt.Fprintf(t.out, "%s%s%s %s• %s%s %s\n",
			nameColor, who, ansiReset, ansiDim, stamp, ansiReset, line.Content)
		return
	}

	fmt.Fprintf(t.out, "%s • %s  %s\n", who, stamp, line.Content)
}

// AppendSystem appends one system line.
func (t *Terminal) AppendSystem(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.color {
		fmt.Fprintf(t.out, "%s-- %s --%s\n", ansiDim, text, ansiReset)
		return
	}
	fmt.Fprintf(t.out, "-- %s --\n", text)
}

// Clear marks the start of a fresh transcript.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintln(t.out, strings.Repeat("=", 40))
}

// SetPrompt replaces the input placeholder.
func (t *Terminal) SetPrompt(placeholder string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prompt = placeholder
}

// SetPresence prints the online-users list, highlighting the local user.
func (t *Terminal) SetPresence(users []string, self string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]string, 0, len(users))
	for _, u := range users {
		if u == self {
			if t.color {
				entries = append(entries, ansiBold+u+ansiReset)
			} else {
				entries = append(entries, "*"+u+"*")
			}
			continue
		}
		entries = append(entries, u)
	}

	fmt.Fprintf(t.out, "Online: %s\n", strings.Join(entries, ", "))
}

// SetUserCount prints the online count.
func (t *Terminal) SetUserCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "Users online: %d\n", n)
}
