package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "go-parley/internal/pkg/chat/domain"
)

func TestSendPrivateMessagePersistsMessageAndNotification(t *testing.T) {
	msgs := newFakeMessageRepo()
	notifs := &fakeNotificationRepo{}
	uc := NewSendPrivateMessageUseCase(msgs, notifs)

	m, err := uc.Execute(context.Background(), SendPrivateMessageInput{
		SenderID:    "carol",
		SenderName:  "Carol",
		RecipientID: "dave",
		Content:     "hey",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.IsRead)

	require.Len(t, msgs.messages, 1)
	got := notifs.forUser("dave")
	require.Len(t, got, 1)
	assert.Equal(t, "carol", got[0].FromUserID)
	assert.Contains(t, got[0].Text, "Carol")
}

func TestSendPrivateMessageValidation(t *testing.T) {
	uc := NewSendPrivateMessageUseCase(newFakeMessageRepo(), &fakeNotificationRepo{})

	_, err := uc.Execute(context.Background(), SendPrivateMessageInput{SenderID: "a", RecipientID: "b", Content: "   "})
	assert.ErrorIs(t, err, chat.ErrEmptyContent)
	assert.True(t, IsValidationError(err))

	_, err = uc.Execute(context.Background(), SendPrivateMessageInput{SenderID: "a", Content: "hi"})
	assert.ErrorIs(t, err, chat.ErrMissingRecipient)
}

func TestSendRoomMessageRequiresMembership(t *testing.T) {
	members := &fakeMembers{rooms: map[string][]string{"general": {"alice"}}}
	uc := NewSendRoomMessageUseCase(newFakeMessageRepo(), members)

	_, err := uc.Execute(context.Background(), SendRoomMessageInput{SenderID: "mallory", RoomID: "general", Content: "hi"})
	assert.ErrorIs(t, err, chat.ErrNotMember)

	m, err := uc.Execute(context.Background(), SendRoomMessageInput{SenderID: "alice", RoomID: "general", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, chat.MessageTypeRoom, m.Type)
}

func TestMarkPrivateReadFlipsOnlyPeersMessages(t *testing.T) {
	msgs := newFakeMessageRepo()
	ctx := context.Background()

	save := func(sender, recipient, text string) string {
		m, err := chat.NewPrivateMessage(sender, recipient, text)
		require.NoError(t, err)
		id, err := msgs.Save(ctx, *m)
		require.NoError(t, err)
		return id
	}
	fromBob1 := save("bob", "alice", "one")
	fromBob2 := save("bob", "alice", "two")
	fromAlice := save("alice", "bob", "reply")
	toCarol := save("bob", "carol", "unrelated")

	uc := NewMarkPrivateReadUseCase(msgs)
	flipped, err := uc.Execute(ctx, MarkPrivateReadInput{ReaderID: "alice", PeerID: "bob"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{fromBob1, fromBob2}, flipped)
	assert.False(t, msgs.messages[fromAlice].IsRead)
	assert.False(t, msgs.messages[toCarol].IsRead)

	flipped, err = uc.Execute(ctx, MarkPrivateReadInput{ReaderID: "alice", PeerID: "bob"})
	require.NoError(t, err)
	assert.Empty(t, flipped, "repeating the call flips nothing")
}

func TestMarkRoomReadFlipsAtMemberCountMinusOne(t *testing.T) {
	ctx := context.Background()
	msgs := newFakeMessageRepo()
	members := &fakeMembers{rooms: map[string][]string{"general": {"alice", "bob"}}}

	m, err := chat.NewRoomMessage("alice", "general", "hi")
	require.NoError(t, err)
	id, err := msgs.Save(ctx, *m)
	require.NoError(t, err)

	uc := NewMarkRoomReadUseCase(msgs, members, members)

	flipped, err := uc.Execute(ctx, MarkRoomReadInput{ReaderID: "bob", RoomID: "general"})
	require.NoError(t, err)
	require.Len(t, flipped, 1)
	assert.Equal(t, id, flipped[0].MessageID)
	assert.Equal(t, "alice", flipped[0].SenderID)
	assert.True(t, msgs.messages[id].IsRead)
}

func TestMarkRoomReadBelowThresholdDoesNotFlip(t *testing.T) {
	ctx := context.Background()
	msgs := newFakeMessageRepo()
	members := &fakeMembers{rooms: map[string][]string{"general": {"alice", "bob", "carol"}}}

	m, err := chat.NewRoomMessage("alice", "general", "hi")
	require.NoError(t, err)
	id, err := msgs.Save(ctx, *m)
	require.NoError(t, err)

	uc := NewMarkRoomReadUseCase(msgs, members, members)

	flipped, err := uc.Execute(ctx, MarkRoomReadInput{ReaderID: "bob", RoomID: "general"})
	require.NoError(t, err)
	assert.Empty(t, flipped, "one of two required acknowledgments")
	assert.False(t, msgs.messages[id].IsRead)

	flipped, err = uc.Execute(ctx, MarkRoomReadInput{ReaderID: "carol", RoomID: "general"})
	require.NoError(t, err)
	require.Len(t, flipped, 1)
	assert.True(t, msgs.messages[id].IsRead)
}

func TestMarkRoomReadIsIdempotentAndMonotonic(t *testing.T) {
	ctx := context.Background()
	msgs := newFakeMessageRepo()
	members := &fakeMembers{rooms: map[string][]string{"general": {"alice", "bob"}}}

	m, err := chat.NewRoomMessage("alice", "general", "hi")
	require.NoError(t, err)
	id, err := msgs.Save(ctx, *m)
	require.NoError(t, err)

	uc := NewMarkRoomReadUseCase(msgs, members, members)
	flipped, err := uc.Execute(ctx, MarkRoomReadInput{ReaderID: "bob", RoomID: "general"})
	require.NoError(t, err)
	require.Len(t, flipped, 1)

	// Re-acknowledging must not report the flip a second time, and the
	// flag stays true even after membership grows past the old threshold.
	flipped, err = uc.Execute(ctx, MarkRoomReadInput{ReaderID: "bob", RoomID: "general"})
	require.NoError(t, err)
	assert.Empty(t, flipped)

	members.rooms["general"] = append(members.rooms["general"], "carol")
	flipped, err = uc.Execute(ctx, MarkRoomReadInput{ReaderID: "carol", RoomID: "general"})
	require.NoError(t, err)
	assert.Empty(t, flipped)
	assert.True(t, msgs.messages[id].IsRead)
}

func TestMarkRoomReadRequiresMembership(t *testing.T) {
	members := &fakeMembers{rooms: map[string][]string{"general": {"alice"}}}
	uc := NewMarkRoomReadUseCase(newFakeMessageRepo(), members, members)

	_, err := uc.Execute(context.Background(), MarkRoomReadInput{ReaderID: "mallory", RoomID: "general"})
	assert.ErrorIs(t, err, chat.ErrNotMember)
}

func TestGetChatHistoryMarksPeerMessagesRead(t *testing.T) {
	ctx := context.Background()
	msgs := newFakeMessageRepo()

	m, err := chat.NewPrivateMessage("carol", "dave", "offline hello")
	require.NoError(t, err)
	id, err := msgs.Save(ctx, *m)
	require.NoError(t, err)

	uc := NewGetChatHistoryUseCase(msgs, fakeNames{})
	res, err := uc.Execute(ctx, GetChatHistoryInput{UserID: "dave", PeerID: "carol"})
	require.NoError(t, err)

	require.Len(t, res.Messages, 1)
	assert.Equal(t, []string{id}, res.ReadIDs)
	assert.True(t, msgs.messages[id].IsRead)
	assert.Equal(t, "carol", res.Usernames["carol"])

	res, err = uc.Execute(ctx, GetChatHistoryInput{UserID: "dave", PeerID: "carol"})
	require.NoError(t, err)
	assert.Empty(t, res.ReadIDs, "second fetch has nothing left to flip")
}

func TestGetRoomMessagesRequiresMembership(t *testing.T) {
	members := &fakeMembers{rooms: map[string][]string{"general": {"alice"}}}
	uc := NewGetRoomMessagesUseCase(newFakeMessageRepo(), fakeNames{}, members)

	_, err := uc.Execute(context.Background(), GetRoomMessagesInput{UserID: "mallory", RoomID: "general"})
	assert.ErrorIs(t, err, chat.ErrNotMember)
}

func TestUnreadCountsBySender(t *testing.T) {
	ctx := context.Background()
	msgs := newFakeMessageRepo()

	for n := 0; n < 3; n++ {
		m, err := chat.NewPrivateMessage("bob", "alice", "ping")
		require.NoError(t, err)
		_, err = msgs.Save(ctx, *m)
		require.NoError(t, err)
	}
	m, err := chat.NewPrivateMessage("carol", "alice", "hi")
	require.NoError(t, err)
	_, err = msgs.Save(ctx, *m)
	require.NoError(t, err)

	counts, err := NewGetUnreadCountsUseCase(msgs).Execute(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"bob": 3, "carol": 1}, counts)
}

func TestFanOutRoomNotificationsExcludesSender(t *testing.T) {
	members := &fakeMembers{rooms: map[string][]string{"general": {"alice", "bob", "carol"}}}
	notifs := &fakeNotificationRepo{}
	uc := NewFanOutRoomNotificationsUseCase(notifs, members)

	n, err := uc.Execute(context.Background(), FanOutRoomNotificationsInput{
		RoomID:     "general",
		SenderID:   "alice",
		SenderName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, notifs.forUser("alice"))
	assert.Len(t, notifs.forUser("bob"), 1)
	assert.Len(t, notifs.forUser("carol"), 1)
}

func TestDeleteNotificationsRequiresIDs(t *testing.T) {
	uc := NewDeleteNotificationsUseCase(&fakeNotificationRepo{})
	err := uc.Execute(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, ErrNoNotificationIDs)
}

func TestDeleteNotificationsIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	notifs := &fakeNotificationRepo{}
	id1, err := notifs.Save(ctx, chat.Notification{UserID: "alice", FromUserID: "bob", Text: "hi"})
	require.NoError(t, err)
	id2, err := notifs.Save(ctx, chat.Notification{UserID: "carol", FromUserID: "bob", Text: "hi"})
	require.NoError(t, err)

	uc := NewDeleteNotificationsUseCase(notifs)
	require.NoError(t, uc.Execute(ctx, "alice", []string{id1, id2}))

	assert.Empty(t, notifs.forUser("alice"))
	assert.Len(t, notifs.forUser("carol"), 1, "someone else's notification survives")
}
