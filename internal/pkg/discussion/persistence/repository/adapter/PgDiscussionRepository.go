package adapter

import (
	"context"
	"errors"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

type PgDiscussionRepository struct {
	pool *pgxpool.Pool
}

func NewPgDiscussionRepository(pool *pgxpool.Pool) *PgDiscussionRepository {
	return &PgDiscussionRepository{pool: pool}
}

var _ repository.DiscussionRepository = (*PgDiscussionRepository)(nil)

func (r *PgDiscussionRepository) CreateDiscussion(ctx context.Context, d discussion.Discussion) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgDiscussionRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO club.discussion (
			title, content, book_title, book_author, topics, tags, image_urls,
			visibility, scheduled_at, max_participants, author_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::uuid, $12)
		RETURNING id::text
	`, d.Title, d.Content, d.BookTitle, d.BookAuthor, d.Topics, d.Tags, d.ImageURLs,
		d.Visibility, d.ScheduledAt, d.MaxParticipants, d.AuthorID, d.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgDiscussionRepository) GetDiscussion(ctx context.Context, id string) (*discussion.Discussion, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDiscussionRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, title, content, book_title, book_author, topics, tags, image_urls,
		       visibility, scheduled_at, max_participants, author_id::text, created_at
		FROM club.discussion
		WHERE id = $1::uuid
	`, id)
	d, err := scanDiscussion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PgDiscussionRepository) ListDiscussionsByAuthor(ctx context.Context, authorID string) ([]discussion.Discussion, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDiscussionRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, title, content, book_title, book_author, topics, tags, image_urls,
		       visibility, scheduled_at, max_participants, author_id::text, created_at
		FROM club.discussion
		WHERE author_id = $1::uuid
		ORDER BY created_at DESC
	`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []discussion.Discussion
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *PgDiscussionRepository) CreateParticipant(ctx context.Context, p discussion.Participant) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgDiscussionRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO club.participant (discussion_id, user_id, status, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text
	`, p.DiscussionID, p.UserID, p.Status, p.CreatedAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", repository.ErrDuplicateParticipant
		}
		return "", err
	}
	return id, nil
}

func (r *PgDiscussionRepository) GetParticipant(ctx context.Context, id string) (*discussion.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDiscussionRepository: nil pool")
	}
	var p discussion.Participant
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, discussion_id::text, user_id::text, status, created_at
		FROM club.participant
		WHERE id = $1::uuid
	`, id).Scan(&p.ID, &p.DiscussionID, &p.UserID, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgDiscussionRepository) GetParticipantByUserAndDiscussion(ctx context.Context, discussionID, userID string) (*discussion.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDiscussionRepository: nil pool")
	}
	var p discussion.Participant
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, discussion_id::text, user_id::text, status, created_at
		FROM club.participant
		WHERE discussion_id = $1::uuid AND user_id = $2::uuid
	`, discussionID, userID).Scan(&p.ID, &p.DiscussionID, &p.UserID, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgDiscussionRepository) UpdateParticipantStatus(ctx context.Context, id string, status discussion.ParticipationStatus) error {
	if r == nil || r.pool == nil {
		return errors.New("PgDiscussionRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE club.participant
		SET status = $2
		WHERE id = $1::uuid
	`, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgDiscussionRepository) DeleteParticipant(ctx context.Context, id string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgDiscussionRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM club.participant WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgDiscussionRepository) CountApprovedParticipants(ctx context.Context, discussionID string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgDiscussionRepository: nil pool")
	}
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM club.participant
		WHERE discussion_id = $1::uuid AND status = $2
	`, discussionID, discussion.StatusApproved).Scan(&n)
	return n, err
}

func (r *PgDiscussionRepository) ListParticipantsByDiscussion(ctx context.Context, discussionID string, status discussion.ParticipationStatus) ([]discussion.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDiscussionRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, discussion_id::text, user_id::text, status, created_at
		FROM club.participant
		WHERE discussion_id = $1::uuid AND ($2 = '' OR status = $2)
		ORDER BY created_at ASC
	`, discussionID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []discussion.Participant
	for rows.Next() {
		var p discussion.Participant
		if err := rows.Scan(&p.ID, &p.DiscussionID, &p.UserID, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PgDiscussionRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]discussion.Membership, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDiscussionRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT d.id::text, d.title, d.content, d.book_title, d.book_author, d.topics, d.tags, d.image_urls,
		       d.visibility, d.scheduled_at, d.max_participants, d.author_id::text, d.created_at,
		       p.id::text, p.discussion_id::text, p.user_id::text, p.status, p.created_at
		FROM club.participant p
		JOIN club.discussion d ON d.id = p.discussion_id
		WHERE p.user_id = $1::uuid
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []discussion.Membership
	for rows.Next() {
		var m discussion.Membership
		d := &m.Discussion
		p := &m.Participant
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Content, &d.BookTitle, &d.BookAuthor, &d.Topics, &d.Tags, &d.ImageURLs,
			&d.Visibility, &d.ScheduledAt, &d.MaxParticipants, &d.AuthorID, &d.CreatedAt,
			&p.ID, &p.DiscussionID, &p.UserID, &p.Status, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanDiscussion(row pgx.Row) (*discussion.Discussion, error) {
	var d discussion.Discussion
	err := row.Scan(
		&d.ID, &d.Title, &d.Content, &d.BookTitle, &d.BookAuthor, &d.Topics, &d.Tags, &d.ImageURLs,
		&d.Visibility, &d.ScheduledAt, &d.MaxParticipants, &d.AuthorID, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
