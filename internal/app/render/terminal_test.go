package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppendMessageOwnShowsYou(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, false)

	term.AppendMessage(Line{
		Username:  "alice",
		Content:   "hello",
		Timestamp: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Own:       true,
	})

	assert.Equal(t, "You • 12:30  hello\n", buf.String())
}

func TestAppendMessageOtherShowsUsername(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, false)

	term.AppendMessage(Line{
		Username:  "bob",
		Content:   "hi there",
		Timestamp: time.Date(2024, 5, 1, 9, 5, 0, 0, time.UTC),
	})

	assert.Equal(t, "bob • 09:05  hi there\n", buf.String())
}

func TestSetPresenceHighlightsSelf(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, false)

	term.SetPresence([]string{"alice", "bob", "carol"}, "bob")

	assert.Equal(t, "Online: alice, *bob*, carol\n", buf.String())
}

func TestSetPresenceHighlightsSelfWithColor(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, true)

	term.SetPresence([]string{"alice", "bob"}, "bob")

	out := buf.String()
	assert.Contains(t, out, ansiBold+"bob"+ansiReset)
	assert.Contains(t, out, "alice")
}

func TestAppendSystemPlain(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, false)

	term.AppendSystem("bob joined")

	assert.Equal(t, "-- bob joined --\n", buf.String())
}

func TestSetPromptIsReadBack(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, false)

	assert.Equal(t, "Type your message...", term.Prompt())

	term.SetPrompt("Message bob...")
	assert.Equal(t, "Message bob...", term.Prompt())
}

func TestSetUserCount(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, false)

	term.SetUserCount(3)

	assert.Equal(t, "Users online: 3\n", buf.String())
}

func TestClearPrintsDivider(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, false)

	term.Clear()

	assert.Contains(t, buf.String(), "====")
}
