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

// protestColumns expects protests aliased as p and organizers as o.
const protestColumns = `
	p.id, p.organizer_id, o.name, p.name, p.cause, p.description, p.location,
	p.latitude::float8, p.longitude::float8, p.date::text, p.time::text,
	p.link, p.tags, p.likes, p.created_at
`

type ProtestRepository interface {
	Create(ctx context.Context, organizerID int64, params model.ProtestParams) (*model.Protest, error)
	// List returns protests ordered by date then time; upcoming restricts to today onward.
	List(ctx context.Context, upcoming bool) ([]*model.Protest, error)
	ListByOrganizer(ctx context.Context, organizerID int64) ([]*model.Protest, error)
	FindByID(ctx context.Context, id int64) (*model.Protest, error)
	// OwnerOf returns the owning organizer id, or ErrProtestNotFound.
	OwnerOf(ctx context.Context, id int64) (int64, error)
	// UpdateOwned and DeleteOwned only touch a row owned by organizerID.
	// They return ErrProtestNotFound when no such row matched.
	UpdateOwned(ctx context.Context, id, organizerID int64, params model.ProtestParams) (*model.Protest, error)
	DeleteOwned(ctx context.Context, id, organizerID int64) error
	// AdjustLikes adds delta to the like count, floored at zero, and returns the new count.
	AdjustLikes(ctx context.Context, id int64, delta int) (int, error)
}

type ProtestRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewProtestRepository(pool *pgxpool.Pool) ProtestRepository {
	return &ProtestRepositoryImpl{
		pool: pool,
	}
}

func (r *ProtestRepositoryImpl) Create(ctx context.Context, organizerID int64, params model.ProtestParams) (*model.Protest, error) {
	query := `
		WITH p AS (
			INSERT INTO protests (organizer_id, name, cause, description, location,
				latitude, longitude, date, time, link, tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9::time, $10, COALESCE($11::text[], '{}'))
			RETURNING *
		)
		SELECT ` + protestColumns + `
		FROM p
		JOIN organizers o ON o.id = p.organizer_id
	`
	protest, err := scanProtest(r.pool.QueryRow(ctx, query,
		organizerID, params.Name, params.Cause, params.Description, params.Location,
		params.Latitude, params.Longitude, params.Date, params.Time, params.Link, params.Tags,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation) {
			return nil, apperrors.ErrOrganizerNotFound
		}
		return nil, err
	}
	return protest, nil
}

func (r *ProtestRepositoryImpl) List(ctx context.Context, upcoming bool) ([]*model.Protest, error) {
	query := `
		SELECT ` + protestColumns + `
		FROM protests p
		JOIN organizers o ON o.id = p.organizer_id
		WHERE NOT $1::bool OR p.date >= CURRENT_DATE
		ORDER BY p.date ASC, p.time ASC, p.id ASC
	`
	return r.list(ctx, query, upcoming)
}

func (r *ProtestRepositoryImpl) ListByOrganizer(ctx context.Context, organizerID int64) ([]*model.Protest, error) {
	query := `
		SELECT ` + protestColumns + `
		FROM protests p
		JOIN organizers o ON o.id = p.organizer_id
		WHERE p.organizer_id = $1
		ORDER BY p.date ASC, p.time ASC, p.id ASC
	`
	return r.list(ctx, query, organizerID)
}

func (r *ProtestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]*model.Protest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	protests := make([]*model.Protest, 0)
	for rows.Next() {
		protest, err := scanProtest(rows)
		if err != nil {
			return nil, err
		}
		protests = append(protests, protest)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return protests, nil
}

func (r *ProtestRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Protest, error) {
	query := `
		SELECT ` + protestColumns + `
		FROM protests p
		JOIN organizers o ON o.id = p.organizer_id
		WHERE p.id = $1
	`
	protest, err := scanProtest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProtestNotFound
		}
		return nil, err
	}
	return protest, nil
}

func (r *ProtestRepositoryImpl) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.pool.QueryRow(ctx, `SELECT organizer_id FROM protests WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrProtestNotFound
		}
		return 0, err
	}
	return owner, nil
}

func (r *ProtestRepositoryImpl) UpdateOwned(ctx context.Context, id, organizerID int64, params model.ProtestParams) (*model.Protest, error) {
	query := `
		WITH p AS (
			UPDATE protests
			SET name = $3, cause = $4, description = $5, location = $6,
				latitude = $7, longitude = $8, date = $9::date, time = $10::time,
				link = $11, tags = COALESCE($12::text[], '{}')
			WHERE id = $1 AND organizer_id = $2
			RETURNING *
		)
		SELECT ` + protestColumns + `
		FROM p
		JOIN organizers o ON o.id = p.organizer_id
	`
	protest, err := scanProtest(r.pool.QueryRow(ctx, query,
		id, organizerID, params.Name, params.Cause, params.Description, params.Location,
		params.Latitude, params.Longitude, params.Date, params.Time, params.Link, params.Tags,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProtestNotFound
		}
		return nil, err
	}
	return protest, nil
}

func (r *ProtestRepositoryImpl) DeleteOwned(ctx context.Context, id, organizerID int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM protests WHERE id = $1 AND organizer_id = $2`, id, organizerID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrProtestNotFound
	}

	return nil
}

func (r *ProtestRepositoryImpl) AdjustLikes(ctx context.Context, id int64, delta int) (int, error) {
	query := `
		UPDATE protests
		SET likes = GREATEST(0, likes + $1)
		WHERE id = $2
		RETURNING likes
	`
	var likes int
	err := r.pool.QueryRow(ctx, query, delta, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrProtestNotFound
		}
		return 0, err
	}
	return likes, nil
}

func scanProtest(row pgx.Row) (*model.Protest, error) {
	var protest model.Protest
	err := row.Scan(
		&protest.ID,
		&protest.OrganizerID,
		&protest.OrganizerName,
		&protest.Name,
		&protest.Cause,
		&protest.Description,
		&protest.Location,
		&protest.Latitude,
		&protest.Longitude,
		&protest.Date,
		&protest.Time,
		&protest.Link,
		&protest.Tags,
		&protest.Likes,
		&protest.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	protest.Normalize()
	return &protest, nil
}
