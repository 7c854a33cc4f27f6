package adapter

import (
	"context"
	"errors"

	note "pairingbook/internal/pkg/note/application/domain"
	repository "pairingbook/internal/pkg/note/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

var _ repository.NoteRepository = (*PgNoteRepository)(nil)

func (r *PgNoteRepository) GetOrCreateThread(ctx context.Context, t note.Thread) (*note.Thread, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNoteRepository: nil pool")
	}
	// Upsert keyed on the normalized pair; DO UPDATE makes RETURNING yield
	// the surviving row whether it was just inserted or already existed.
	var out note.Thread
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notes.thread (user_a_id, user_b_id, created_at)
		VALUES ($1::uuid, $2::uuid, $3)
		ON CONFLICT (user_a_id, user_b_id)
		DO UPDATE SET user_a_id = EXCLUDED.user_a_id
		RETURNING id::text, user_a_id::text, user_b_id::text, created_at
	`, t.UserAID, t.UserBID, t.CreatedAt).Scan(&out.ID, &out.UserAID, &out.UserBID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PgNoteRepository) GetThread(ctx context.Context, id string) (*note.Thread, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNoteRepository: nil pool")
	}
	var t note.Thread
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, user_a_id::text, user_b_id::text, created_at
		FROM notes.thread
		WHERE id = $1::uuid
	`, id).Scan(&t.ID, &t.UserAID, &t.UserBID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgNoteRepository) ListThreadsByUser(ctx context.Context, userID string) ([]note.Thread, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNoteRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_a_id::text, user_b_id::text, created_at
		FROM notes.thread
		WHERE user_a_id = $1::uuid OR user_b_id = $1::uuid
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []note.Thread
	for rows.Next() {
		var t note.Thread
		if err := rows.Scan(&t.ID, &t.UserAID, &t.UserBID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PgNoteRepository) SaveNote(ctx context.Context, n note.Note) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgNoteRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notes.note (thread_id, sender_id, body, image_url, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		RETURNING id::text
	`, n.ThreadID, n.SenderID, n.Body, n.ImageURL, n.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgNoteRepository) ListNotesByThread(ctx context.Context, threadID string, limit, offset int) ([]note.Note, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNoteRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, thread_id::text, sender_id::text, body, image_url, created_at
		FROM notes.note
		WHERE thread_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, threadID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []note.Note
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.ThreadID, &n.SenderID, &n.Body, &n.ImageURL, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
