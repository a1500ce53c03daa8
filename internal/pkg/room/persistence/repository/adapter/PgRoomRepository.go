package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	room "go-parley/internal/pkg/room/domain"
)

const uniqueViolation = "23505"

// PgRoomRepository persists rooms and memberships in Postgres.
type PgRoomRepository struct {
	pool *pgxpool.Pool
}

func NewPgRoomRepository(pool *pgxpool.Pool) *PgRoomRepository {
	return &PgRoomRepository{pool: pool}
}

func (r *PgRoomRepository) CreateWithCreator(ctx context.Context, rm room.Room) (*room.Room, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgRoomRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO rooms (name, created_by, created_at)
		VALUES ($1, $2::uuid, $3)
		RETURNING id::text
	`, rm.Name, rm.CreatedBy, rm.CreatedAt).Scan(&rm.ID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO room_members (room_id, user_id, joined_at)
		VALUES ($1::uuid, $2::uuid, $3)
	`, rm.ID, rm.CreatedBy, rm.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *PgRoomRepository) FindByID(ctx context.Context, id string) (*room.Room, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgRoomRepository: nil pool")
	}
	var rm room.Room
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, created_by::text, created_at
		FROM rooms
		WHERE id = $1::uuid
	`, id).Scan(&rm.ID, &rm.Name, &rm.CreatedBy, &rm.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, room.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *PgRoomRepository) DeleteCascade(ctx context.Context, roomID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgRoomRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	statements := []string{
		`DELETE FROM message_reads WHERE message_id IN (SELECT id FROM messages WHERE room_id = $1::uuid)`,
		`DELETE FROM messages WHERE room_id = $1::uuid`,
		`DELETE FROM notifications WHERE room_id = $1::uuid`,
		`DELETE FROM room_members WHERE room_id = $1::uuid`,
		`DELETE FROM rooms WHERE id = $1::uuid`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, roomID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PgRoomRepository) AddMember(ctx context.Context, roomID, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgRoomRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO room_members (room_id, user_id, joined_at)
		VALUES ($1::uuid, $2::uuid, $3)
	`, roomID, userID, time.Now().UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return room.ErrAlreadyMember
	}
	return err
}

func (r *PgRoomRepository) RemoveMember(ctx context.Context, roomID, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgRoomRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM room_members WHERE room_id = $1::uuid AND user_id = $2::uuid
	`, roomID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return room.ErrNotMember
	}
	return nil
}

func (r *PgRoomRepository) Members(ctx context.Context, roomID string) ([]room.Member, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgRoomRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.user_id::text, u.username, m.joined_at
		FROM room_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.room_id = $1::uuid
		ORDER BY m.joined_at
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []room.Member
	for rows.Next() {
		var m room.Member
		if err := rows.Scan(&m.UserID, &m.Username, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PgRoomRepository) MemberCount(ctx context.Context, roomID string) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgRoomRepository: nil pool")
	}
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM room_members WHERE room_id = $1::uuid
	`, roomID).Scan(&count)
	return count, err
}

func (r *PgRoomRepository) AllMemberships(ctx context.Context) ([]room.Membership, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgRoomRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT room_id::text, user_id::text, joined_at FROM room_members
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []room.Membership
	for rows.Next() {
		var m room.Membership
		if err := rows.Scan(&m.RoomID, &m.UserID, &m.JoinedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *PgRoomRepository) RoomsForUser(ctx context.Context, userID string) ([]room.Summary, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgRoomRepository: nil pool")
	}
	return r.querySummaries(ctx, `
		SELECT r.id::text, r.name, r.created_by::text, r.created_at,
		       (SELECT count(*) FROM room_members c WHERE c.room_id = r.id) AS member_count
		FROM rooms r
		JOIN room_members m ON m.room_id = r.id
		WHERE m.user_id = $1::uuid
		ORDER BY r.created_at DESC
	`, userID)
}

func (r *PgRoomRepository) SearchByName(ctx context.Context, q string) ([]room.Summary, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgRoomRepository: nil pool")
	}
	return r.querySummaries(ctx, `
		SELECT r.id::text, r.name, r.created_by::text, r.created_at,
		       (SELECT count(*) FROM room_members c WHERE c.room_id = r.id) AS member_count
		FROM rooms r
		WHERE r.name ILIKE '%' || $1 || '%'
		ORDER BY r.name
	`, q)
}

func (r *PgRoomRepository) querySummaries(ctx context.Context, sql string, args ...any) ([]room.Summary, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []room.Summary
	for rows.Next() {
		var s room.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedBy, &s.CreatedAt, &s.MemberCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
