package adapter

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// PgMessageRepository persists messages, read receipts and the aggregate
// read flag in Postgres.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Save(ctx context.Context, m chat.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgMessageRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, recipient_id, room_id, content, type, is_read, created_at)
		VALUES ($1::uuid, NULLIF($2, '')::uuid, NULLIF($3, '')::uuid, $4, $5, false, $6)
		RETURNING id::text
	`, m.SenderID, m.RecipientID, m.RoomID, m.Content, m.Type, m.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgMessageRepository) MarkPrivateRead(ctx context.Context, senderID, recipientID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		UPDATE messages
		SET is_read = true
		WHERE sender_id = $1::uuid AND recipient_id = $2::uuid AND type = 'private' AND is_read = false
		RETURNING id::text
	`, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgMessageRepository) AddRoomReadReceipts(ctx context.Context, roomID, userID string, at time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgMessageRepository: nil pool")
	}
	// Add-to-set: the primary key on (message_id, user_id) makes the
	// insert idempotent under concurrent mark-read calls.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO message_reads (message_id, user_id, read_at)
		SELECT m.id, $2::uuid, $3
		FROM messages m
		WHERE m.room_id = $1::uuid AND m.type = 'room' AND m.sender_id <> $2::uuid
		ON CONFLICT (message_id, user_id) DO NOTHING
	`, roomID, userID, at)
	return err
}

func (r *PgMessageRepository) RoomReadStates(ctx context.Context, roomID string) ([]repository.RoomReadState, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id::text, m.sender_id::text, count(rr.user_id)
		FROM messages m
		LEFT JOIN message_reads rr ON rr.message_id = m.id
		WHERE m.room_id = $1::uuid AND m.type = 'room' AND m.is_read = false
		GROUP BY m.id, m.sender_id
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []repository.RoomReadState
	for rows.Next() {
		var s repository.RoomReadState
		if err := rows.Scan(&s.MessageID, &s.SenderID, &s.ReadCount); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func (r *PgMessageRepository) MarkRoomMessageRead(ctx context.Context, messageID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgMessageRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE messages SET is_read = true WHERE id = $1::uuid AND is_read = false
	`, messageID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgMessageRepository) PrivateHistory(ctx context.Context, userA, userB string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	return r.queryMessages(ctx, `
		SELECT id::text, sender_id::text, COALESCE(recipient_id::text, ''), COALESCE(room_id::text, ''), content, type, is_read, created_at
		FROM messages
		WHERE type = 'private'
		  AND ((sender_id = $1::uuid AND recipient_id = $2::uuid)
		    OR (sender_id = $2::uuid AND recipient_id = $1::uuid))
		ORDER BY created_at
	`, userA, userB)
}

func (r *PgMessageRepository) RoomMessages(ctx context.Context, roomID string, limit, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.queryMessages(ctx, `
		SELECT id::text, sender_id::text, COALESCE(recipient_id::text, ''), COALESCE(room_id::text, ''), content, type, is_read, created_at
		FROM messages
		WHERE room_id = $1::uuid AND type = 'room'
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`, roomID, limit, offset)
}

func (r *PgMessageRepository) UnreadCountsBySender(ctx context.Context, recipientID string) (map[string]int, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT sender_id::text, count(*)
		FROM messages
		WHERE recipient_id = $1::uuid AND type = 'private' AND is_read = false
		GROUP BY sender_id
	`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCounts(rows)
}

func (r *PgMessageRepository) UnreadRoomCounts(ctx context.Context, userID string) (map[string]int, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.room_id::text, count(*)
		FROM messages m
		JOIN room_members rm ON rm.room_id = m.room_id AND rm.user_id = $1::uuid
		WHERE m.type = 'room'
		  AND m.sender_id <> $1::uuid
		  AND NOT EXISTS (
			SELECT 1 FROM message_reads rr
			WHERE rr.message_id = m.id AND rr.user_id = $1::uuid
		  )
		GROUP BY m.room_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCounts(rows)
}

func (r *PgMessageRepository) ConversationPreviews(ctx context.Context, userID string) ([]chat.ConversationPreview, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (peer)
		       CASE WHEN m.sender_id = $1::uuid THEN m.recipient_id ELSE m.sender_id END AS peer,
		       u.username,
		       m.content,
		       m.created_at,
		       m.sender_id = $1::uuid AS is_mine
		FROM messages m
		JOIN users u ON u.id = CASE WHEN m.sender_id = $1::uuid THEN m.recipient_id ELSE m.sender_id END
		WHERE m.type = 'private' AND (m.sender_id = $1::uuid OR m.recipient_id = $1::uuid)
		ORDER BY peer, m.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var previews []chat.ConversationPreview
	for rows.Next() {
		var p chat.ConversationPreview
		if err := rows.Scan(&p.UserID, &p.Username, &p.LastMessage, &p.LastMessageAt, &p.LastIsMine); err != nil {
			return nil, err
		}
		previews = append(previews, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// DISTINCT ON orders by peer; the conversation list wants newest first.
	sort.Slice(previews, func(i, j int) bool {
		return previews[i].LastMessageAt.After(previews[j].LastMessageAt)
	})
	return previews, nil
}

func (r *PgMessageRepository) queryMessages(ctx context.Context, sql string, args ...any) ([]chat.Message, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.RoomID, &m.Content, &m.Type, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func scanCounts(rows pgx.Rows) (map[string]int, error) {
	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}
