package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrivateMessage(t *testing.T) {
	m, err := NewPrivateMessage("alice", "bob", "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", m.Content)
	assert.Equal(t, MessageTypePrivate, m.Type)
	assert.False(t, m.IsRead)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestNewPrivateMessageValidation(t *testing.T) {
	_, err := NewPrivateMessage("alice", "bob", "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = NewPrivateMessage("alice", "", "hi")
	assert.ErrorIs(t, err, ErrMissingRecipient)
}

func TestNewRoomMessageValidation(t *testing.T) {
	_, err := NewRoomMessage("alice", "general", "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = NewRoomMessage("alice", "", "hi")
	assert.ErrorIs(t, err, ErrMissingRoom)

	m, err := NewRoomMessage("alice", "general", "hi")
	require.NoError(t, err)
	assert.Equal(t, MessageTypeRoom, m.Type)
	assert.Empty(t, m.RecipientID)
}

func TestPrivateNotificationPreviewTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	n := NewPrivateNotification("bob", "alice", "Alice", long)

	assert.Contains(t, n.Text, "New message from Alice: ")
	assert.Contains(t, n.Text, strings.Repeat("x", 50)+"...")
	assert.NotContains(t, n.Text, strings.Repeat("x", 51))
}

func TestPrivateNotificationPreviewTruncatesOnRunes(t *testing.T) {
	long := strings.Repeat("é", 60)
	n := NewPrivateNotification("bob", "alice", "Alice", long)

	assert.True(t, utf8.ValidString(n.Text))
	assert.Contains(t, n.Text, strings.Repeat("é", 50)+"...")
	assert.NotContains(t, n.Text, strings.Repeat("é", 51))
}

func TestPrivateNotificationShortContentNotTruncated(t *testing.T) {
	n := NewPrivateNotification("bob", "alice", "Alice", "short")
	assert.Equal(t, "New message from Alice: short", n.Text)
	assert.Empty(t, n.RoomID)
}

func TestRoomNotification(t *testing.T) {
	n := NewRoomNotification("bob", "alice", "general", "Alice")
	assert.Equal(t, "New message from Alice in room", n.Text)
	assert.Equal(t, "general", n.RoomID)
	assert.Equal(t, "bob", n.UserID)
}
