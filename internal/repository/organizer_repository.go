package repository

import (
	"context"
	"errors"

	"protest-tracker/internal/model"
	apperrors "protest-tracker/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE codes mapped to domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type OrganizerRepository interface {
	Create(ctx context.Context, organizer *model.Organizer) (*model.Organizer, error)
	FindByID(ctx context.Context, id int64) (*model.Organizer, error)
	FindByEmail(ctx context.Context, email string) (*model.Organizer, error)
	// AdjustFollowers adds delta to the follower count, floored at zero, and returns the new count.
	AdjustFollowers(ctx context.Context, id int64, delta int) (int, error)
	Analytics(ctx context.Context, id int64) (*model.Analytics, error)
}

type OrganizerRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewOrganizerRepository(pool *pgxpool.Pool) OrganizerRepository {
	return &OrganizerRepositoryImpl{
		pool: pool,
	}
}

func (r *OrganizerRepositoryImpl) Create(ctx context.Context, organizer *model.Organizer) (*model.Organizer, error) {
	query := `
		INSERT INTO organizers (name, email, password_hash, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, bio, followers, social_clicks, created_at
	`
	var created model.Organizer
	err := r.pool.QueryRow(ctx, query,
		organizer.Name, organizer.Email, organizer.PasswordHash, organizer.Bio,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.PasswordHash,
		&created.Bio,
		&created.Followers,
		&created.SocialClicks,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, err
	}
	return &created, nil
}

func (r *OrganizerRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Organizer, error) {
	query := `
		SELECT id, name, email, password_hash, bio, followers, social_clicks, created_at
		FROM organizers
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

func (r *OrganizerRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.Organizer, error) {
	query := `
		SELECT id, name, email, password_hash, bio, followers, social_clicks, created_at
		FROM organizers
		WHERE email = $1
	`
	return r.findOne(ctx, query, email)
}

func (r *OrganizerRepositoryImpl) findOne(ctx context.Context, query string, arg any) (*model.Organizer, error) {
	var organizer model.Organizer
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&organizer.ID,
		&organizer.Name,
		&organizer.Email,
		&organizer.PasswordHash,
		&organizer.Bio,
		&organizer.Followers,
		&organizer.SocialClicks,
		&organizer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizerNotFound
		}
		return nil, err
	}
	return &organizer, nil
}

func (r *OrganizerRepositoryImpl) AdjustFollowers(ctx context.Context, id int64, delta int) (int, error) {
	query := `
		UPDATE organizers
		SET followers = GREATEST(0, followers + $1)
		WHERE id = $2
		RETURNING followers
	`
	var followers int
	err := r.pool.QueryRow(ctx, query, delta, id).Scan(&followers)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrOrganizerNotFound
		}
		return 0, err
	}
	return followers, nil
}

func (r *OrganizerRepositoryImpl) Analytics(ctx context.Context, id int64) (*model.Analytics, error) {
	query := `
		SELECT o.followers, o.social_clicks,
			COALESCE(SUM(p.likes), 0)::bigint, COUNT(p.id)::int
		FROM organizers o
		LEFT JOIN protests p ON p.organizer_id = o.id
		WHERE o.id = $1
		GROUP BY o.id
	`
	var analytics model.Analytics
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&analytics.Followers,
		&analytics.SocialClicks,
		&analytics.TotalLikes,
		&analytics.ProtestCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizerNotFound
		}
		return nil, err
	}
	return &analytics, nil
}
