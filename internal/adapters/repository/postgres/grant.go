package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlGrantRepository struct {
	db SQLQuerier
}

// NewSQLGrantRepository creates sqlGrantRepository that implements port.GrantRepository
func NewSQLGrantRepository(db SQLQuerier) port.GrantRepository {
	return &sqlGrantRepository{db: db}
}

// Create persists a new upload grant
func (s *sqlGrantRepository) Create(ctx context.Context, grant domain.UploadGrant) error {
	query := `
		INSERT INTO upload_grant (
			id, token, owner_id, context_id, storage_key, max_size_bytes,
			allowed_mime_types, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		grant.ID,
		grant.Token,
		grant.OwnerID,
		grant.ContextID,
		grant.StorageKey,
		grant.MaxSizeBytes,
		pq.Array(grant.AllowedMimeTypes),
		grant.Status,
		grant.ExpiresAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("grant token: %w", domain.ErrAlreadyExists)
		}
		return fmt.Errorf("error inserting upload grant: %w", err)
	}
	return nil
}

// FindByToken finds a grant by its opaque token
func (s *sqlGrantRepository) FindByToken(ctx context.Context, token string) (*domain.UploadGrant, error) {
	query := `
		SELECT id, token, owner_id, context_id, storage_key, max_size_bytes,
		       allowed_mime_types, status, expires_at, used_at, created_at, updated_at
		FROM upload_grant
		WHERE token = $1`

	var row dbUploadGrant
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&row.ID,
		&row.Token,
		&row.OwnerID,
		&row.ContextID,
		&row.StorageKey,
		&row.MaxSizeBytes,
		pq.Array(&row.AllowedMimeTypes),
		&row.Status,
		&row.ExpiresAt,
		&row.UsedAt,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

// MarkUsed flips a pending grant to used. The status guard makes the
// transition exactly-once: a second call affects zero rows.
func (s *sqlGrantRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	query := `
		UPDATE upload_grant
		SET status = $1, used_at = $2, updated_at = now()
		WHERE id = $3 AND status = $4`

	result, err := s.db.ExecContext(ctx, query, domain.GrantStatusUsed, usedAt, id, domain.GrantStatusPending)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGrantNotFound
	}
	return nil
}

// UpdateStatus updates status
func (s *sqlGrantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.GrantStatus) error {
	query := `UPDATE upload_grant SET status = $1, updated_at = now() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGrantNotFound
	}
	return nil
}

// FindAllExpired finds pending grants past their TTL
func (s *sqlGrantRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadGrant, error) {
	query := `
		SELECT id, token, owner_id, context_id, storage_key, max_size_bytes,
		       allowed_mime_types, status, expires_at, used_at, created_at, updated_at
		FROM upload_grant
		WHERE status = $1 AND expires_at < $2`

	rows, err := s.db.QueryContext(ctx, query, domain.GrantStatusPending, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.UploadGrant
	for rows.Next() {
		var row dbUploadGrant
		if err := rows.Scan(
			&row.ID,
			&row.Token,
			&row.OwnerID,
			&row.ContextID,
			&row.StorageKey,
			&row.MaxSizeBytes,
			pq.Array(&row.AllowedMimeTypes),
			&row.Status,
			&row.ExpiresAt,
			&row.UsedAt,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		grants = append(grants, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grants, nil
}

type dbUploadGrant struct {
	ID               uuid.UUID
	Token            string
	OwnerID          uuid.UUID
	ContextID        *uuid.UUID
	StorageKey       string
	MaxSizeBytes     int64
	AllowedMimeTypes []string
	Status           string
	ExpiresAt        time.Time
	UsedAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ToDomain converts db obj to domain
func (g *dbUploadGrant) ToDomain() *domain.UploadGrant {
	return &domain.UploadGrant{
		ID:               g.ID,
		Token:            g.Token,
		OwnerID:          g.OwnerID,
		ContextID:        g.ContextID,
		StorageKey:       g.StorageKey,
		MaxSizeBytes:     g.MaxSizeBytes,
		AllowedMimeTypes: g.AllowedMimeTypes,
		Status:           domain.GrantStatus(g.Status),
		ExpiresAt:        g.ExpiresAt,
		UsedAt:           g.UsedAt,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}
