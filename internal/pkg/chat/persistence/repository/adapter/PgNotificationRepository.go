package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	chat "go-parley/internal/pkg/chat/domain"
)

// PgNotificationRepository persists the notification side channel.
type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

func (r *PgNotificationRepository) Save(ctx context.Context, n chat.Notification) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgNotificationRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, from_user_id, room_id, text, read, created_at)
		VALUES ($1::uuid, $2::uuid, NULLIF($3, '')::uuid, $4, false, $5)
		RETURNING id::text
	`, n.UserID, n.FromUserID, n.RoomID, n.Text, n.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgNotificationRepository) SaveBatch(ctx context.Context, ns []chat.Notification) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	if len(ns) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, n := range ns {
		_, err := tx.Exec(ctx, `
			INSERT INTO notifications (user_id, from_user_id, room_id, text, read, created_at)
			VALUES ($1::uuid, $2::uuid, NULLIF($3, '')::uuid, $4, false, $5)
		`, n.UserID, n.FromUserID, n.RoomID, n.Text, n.CreatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PgNotificationRepository) ListUnread(ctx context.Context, userID string, limit int) ([]chat.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_id::text, from_user_id::text, COALESCE(room_id::text, ''), text, read, created_at
		FROM notifications
		WHERE user_id = $1::uuid AND read = false
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []chat.Notification
	for rows.Next() {
		var n chat.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.FromUserID, &n.RoomID, &n.Text, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PgNotificationRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	if len(ids) == 0 {
		return nil
	}
	// user_id predicate keeps one user from deleting another's records.
	_, err := r.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE id = ANY($1::uuid[]) AND user_id = $2::uuid
	`, ids, userID)
	return err
}
