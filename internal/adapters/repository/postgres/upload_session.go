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
)

type sqlUploadSessionRepository struct {
	db SQLQuerier
}

// NewSQLUploadSessionRepository creates sqlUploadSessionRepository that implements port.UploadSessionRepository
func NewSQLUploadSessionRepository(db SQLQuerier) port.UploadSessionRepository {
	return &sqlUploadSessionRepository{db: db}
}

// Create creates an upload session
func (s *sqlUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	query := `
		INSERT INTO upload_session (
			id, remote_upload_id, owner_id, context_id, storage_key, mime_type,
			total_size_bytes, chunk_size_bytes, total_chunks, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.RemoteUploadID,
		session.OwnerID,
		session.ContextID,
		session.StorageKey,
		session.MimeType,
		session.TotalSizeBytes,
		session.ChunkSizeBytes,
		session.TotalChunks,
		session.Status,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting upload session: %w", err)
	}
	return nil
}

// FindByID finds a session by id
func (s *sqlUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `
		SELECT id, remote_upload_id, owner_id, context_id, storage_key, mime_type,
		       total_size_bytes, chunk_size_bytes, total_chunks, status, expires_at,
		       created_at, updated_at
		FROM upload_session
		WHERE id = $1`

	var row dbUploadSession
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.RemoteUploadID,
		&row.OwnerID,
		&row.ContextID,
		&row.StorageKey,
		&row.MimeType,
		&row.TotalSizeBytes,
		&row.ChunkSizeBytes,
		&row.TotalChunks,
		&row.Status,
		&row.ExpiresAt,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

// RecordPart merges one acknowledged part, keyed by (session_id, part_number).
// The upsert is a single atomic statement, so concurrent reports of different
// parts cannot erase each other and re-reporting a part is idempotent.
func (s *sqlUploadSessionRepository) RecordPart(ctx context.Context, sessionID uuid.UUID, part domain.UploadPart) error {
	query := `
		INSERT INTO upload_session_part (session_id, part_number, etag)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, part_number)
		DO UPDATE SET etag = EXCLUDED.etag, reported_at = now()`

	_, err := s.db.ExecContext(ctx, query, sessionID, part.PartNumber, part.ETag)
	if err != nil {
		return fmt.Errorf("error recording part %d: %w", part.PartNumber, err)
	}
	return nil
}

// ListParts returns recorded parts in ascending part-number order, the order
// the backend requires at completion time.
func (s *sqlUploadSessionRepository) ListParts(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadPart, error) {
	query := `
		SELECT part_number, etag, reported_at
		FROM upload_session_part
		WHERE session_id = $1
		ORDER BY part_number ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []domain.UploadPart
	for rows.Next() {
		var part domain.UploadPart
		if err := rows.Scan(&part.PartNumber, &part.ETag, &part.ReportedAt); err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

// CountParts counts recorded parts
func (s *sqlUploadSessionRepository) CountParts(ctx context.Context, sessionID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM upload_session_part WHERE session_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateStatus updates status
func (s *sqlUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	query := `UPDATE upload_session SET status = $1, updated_at = now() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// FindAllExpired finds in-progress sessions past their TTL
func (s *sqlUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	query := `
		SELECT id, remote_upload_id, owner_id, context_id, storage_key, mime_type,
		       total_size_bytes, chunk_size_bytes, total_chunks, status, expires_at,
		       created_at, updated_at
		FROM upload_session
		WHERE status = $1 AND expires_at < $2`

	rows, err := s.db.QueryContext(ctx, query, domain.UploadSessionStatusInProgress, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.UploadSession
	for rows.Next() {
		var row dbUploadSession
		if err := rows.Scan(
			&row.ID,
			&row.RemoteUploadID,
			&row.OwnerID,
			&row.ContextID,
			&row.StorageKey,
			&row.MimeType,
			&row.TotalSizeBytes,
			&row.ChunkSizeBytes,
			&row.TotalChunks,
			&row.Status,
			&row.ExpiresAt,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

type dbUploadSession struct {
	ID             uuid.UUID
	RemoteUploadID string
	OwnerID        uuid.UUID
	ContextID      *uuid.UUID
	StorageKey     string
	MimeType       string
	TotalSizeBytes int64
	ChunkSizeBytes int64
	TotalChunks    int
	Status         string
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ToDomain converts db obj to domain
func (s *dbUploadSession) ToDomain() *domain.UploadSession {
	return &domain.UploadSession{
		ID:             s.ID,
		RemoteUploadID: s.RemoteUploadID,
		OwnerID:        s.OwnerID,
		ContextID:      s.ContextID,
		StorageKey:     s.StorageKey,
		MimeType:       s.MimeType,
		TotalSizeBytes: s.TotalSizeBytes,
		ChunkSizeBytes: s.ChunkSizeBytes,
		TotalChunks:    s.TotalChunks,
		Status:         domain.UploadSessionStatus(s.Status),
		ExpiresAt:      s.ExpiresAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
