package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
	room "go-parley/internal/pkg/room/domain"
)

// fakeMessageRepo implements the message repository port in memory with the
// same read-state semantics as the SQL adapter.
type fakeMessageRepo struct {
	messages map[string]*chat.Message
	receipts map[string]map[string]time.Time // messageID -> userID -> readAt
	nextID   int

	failSave bool
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		messages: make(map[string]*chat.Message),
		receipts: make(map[string]map[string]time.Time),
	}
}

func (f *fakeMessageRepo) Save(_ context.Context, m chat.Message) (string, error) {
	if f.failSave {
		return "", errors.New("insert failed")
	}
	f.nextID++
	m.ID = fmt.Sprintf("msg-%d", f.nextID)
	f.messages[m.ID] = &m
	return m.ID, nil
}

func (f *fakeMessageRepo) MarkPrivateRead(_ context.Context, senderID, recipientID string) ([]string, error) {
	var flipped []string
	for id, m := range f.messages {
		if m.Type == chat.MessageTypePrivate && m.SenderID == senderID && m.RecipientID == recipientID && !m.IsRead {
			m.IsRead = true
			flipped = append(flipped, id)
		}
	}
	sort.Strings(flipped)
	return flipped, nil
}

func (f *fakeMessageRepo) AddRoomReadReceipts(_ context.Context, roomID, userID string, at time.Time) error {
	for id, m := range f.messages {
		if m.Type != chat.MessageTypeRoom || m.RoomID != roomID || m.SenderID == userID {
			continue
		}
		set := f.receipts[id]
		if set == nil {
			set = make(map[string]time.Time)
			f.receipts[id] = set
		}
		if _, ok := set[userID]; !ok {
			set[userID] = at
		}
	}
	return nil
}

func (f *fakeMessageRepo) RoomReadStates(_ context.Context, roomID string) ([]repository.RoomReadState, error) {
	var out []repository.RoomReadState
	for id, m := range f.messages {
		if m.Type == chat.MessageTypeRoom && m.RoomID == roomID && !m.IsRead {
			out = append(out, repository.RoomReadState{
				MessageID: id,
				SenderID:  m.SenderID,
				ReadCount: len(f.receipts[id]),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MessageID < out[j].MessageID })
	return out, nil
}

func (f *fakeMessageRepo) MarkRoomMessageRead(_ context.Context, messageID string) (bool, error) {
	m, ok := f.messages[messageID]
	if !ok || m.IsRead {
		return false, nil
	}
	m.IsRead = true
	return true, nil
}

func (f *fakeMessageRepo) PrivateHistory(_ context.Context, userA, userB string) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range f.messages {
		if m.Type != chat.MessageTypePrivate {
			continue
		}
		if (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMessageRepo) RoomMessages(_ context.Context, roomID string, limit, offset int) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range f.messages {
		if m.Type == chat.MessageTypeRoom && m.RoomID == roomID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMessageRepo) UnreadCountsBySender(_ context.Context, recipientID string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, m := range f.messages {
		if m.Type == chat.MessageTypePrivate && m.RecipientID == recipientID && !m.IsRead {
			counts[m.SenderID]++
		}
	}
	return counts, nil
}

func (f *fakeMessageRepo) UnreadRoomCounts(_ context.Context, userID string) (map[string]int, error) {
	counts := make(map[string]int)
	for id, m := range f.messages {
		if m.Type != chat.MessageTypeRoom || m.SenderID == userID {
			continue
		}
		if _, acked := f.receipts[id][userID]; !acked {
			counts[m.RoomID]++
		}
	}
	return counts, nil
}

func (f *fakeMessageRepo) ConversationPreviews(_ context.Context, userID string) ([]chat.ConversationPreview, error) {
	latest := make(map[string]chat.Message)
	for _, m := range f.messages {
		if m.Type != chat.MessageTypePrivate {
			continue
		}
		var peer string
		switch userID {
		case m.SenderID:
			peer = m.RecipientID
		case m.RecipientID:
			peer = m.SenderID
		default:
			continue
		}
		if prev, ok := latest[peer]; !ok || m.ID > prev.ID {
			latest[peer] = *m
		}
	}
	var out []chat.ConversationPreview
	for peer, m := range latest {
		out = append(out, chat.ConversationPreview{
			UserID:        peer,
			Username:      peer,
			LastMessage:   m.Content,
			LastMessageAt: m.CreatedAt,
			LastIsMine:    m.SenderID == userID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []chat.Notification
	nextID        int
}

func (f *fakeNotificationRepo) Save(_ context.Context, n chat.Notification) (string, error) {
	f.nextID++
	n.ID = fmt.Sprintf("notif-%d", f.nextID)
	f.notifications = append(f.notifications, n)
	return n.ID, nil
}

func (f *fakeNotificationRepo) SaveBatch(ctx context.Context, ns []chat.Notification) error {
	for _, n := range ns {
		if _, err := f.Save(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ListUnread(_ context.Context, userID string, limit int) ([]chat.Notification, error) {
	var out []chat.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		n := f.notifications[i]
		if n.UserID == userID && !n.Read {
			out = append(out, n)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) DeleteByIDs(_ context.Context, userID string, ids []string) error {
	keep := f.notifications[:0]
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	for _, n := range f.notifications {
		if _, ok := drop[n.ID]; ok && n.UserID == userID {
			continue
		}
		keep = append(keep, n)
	}
	f.notifications = keep
	return nil
}

func (f *fakeNotificationRepo) forUser(userID string) []chat.Notification {
	var out []chat.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// fakeMembers doubles as the membership checker and the durable member
// source, with one shared member set per room.
type fakeMembers struct {
	rooms map[string][]string
}

func (f *fakeMembers) IsMember(roomID, userID string) bool {
	for _, id := range f.rooms[roomID] {
		if id == userID {
			return true
		}
	}
	return false
}

func (f *fakeMembers) Members(_ context.Context, roomID string) ([]room.Member, error) {
	var out []room.Member
	for _, id := range f.rooms[roomID] {
		out = append(out, room.Member{UserID: id, Username: id})
	}
	return out, nil
}

func (f *fakeMembers) MemberCount(_ context.Context, roomID string) (int, error) {
	return len(f.rooms[roomID]), nil
}

type fakeNames struct{}

func (fakeNames) Usernames(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = id
	}
	return out, nil
}
