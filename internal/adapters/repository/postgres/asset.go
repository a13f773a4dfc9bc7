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

type sqlAssetRepository struct {
	db SQLQuerier
}

// NewSQLAssetRepository creates sqlAssetRepository that implements port.AssetRepository
func NewSQLAssetRepository(db SQLQuerier) port.AssetRepository {
	return &sqlAssetRepository{db: db}
}

// Create persists a stored asset. The unique index on storage_key turns a
// duplicate completion race into domain.ErrAlreadyExists instead of a second
// asset row.
func (s *sqlAssetRepository) Create(ctx context.Context, asset domain.StoredAsset) error {
	query := `
		INSERT INTO stored_asset (
			id, storage_key, owner_id, context_id, mime_type, size_bytes,
			checksum, visibility, category
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		asset.ID,
		asset.StorageKey,
		asset.OwnerID,
		asset.ContextID,
		asset.MimeType,
		asset.SizeBytes,
		asset.Checksum,
		asset.Visibility,
		asset.Category,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("asset for %s: %w", asset.StorageKey, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("error inserting stored asset: %w", err)
	}
	return nil
}

// FindByID finds an asset by id
func (s *sqlAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StoredAsset, error) {
	return s.findOne(ctx, `WHERE id = $1`, id)
}

// FindByStorageKey finds an asset by its storage key
func (s *sqlAssetRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.StoredAsset, error) {
	return s.findOne(ctx, `WHERE storage_key = $1`, storageKey)
}

func (s *sqlAssetRepository) findOne(ctx context.Context, where string, arg any) (*domain.StoredAsset, error) {
	query := `
		SELECT id, storage_key, owner_id, context_id, mime_type, size_bytes,
		       checksum, visibility, category, created_at
		FROM stored_asset ` + where

	var row dbStoredAsset
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&row.ID,
		&row.StorageKey,
		&row.OwnerID,
		&row.ContextID,
		&row.MimeType,
		&row.SizeBytes,
		&row.Checksum,
		&row.Visibility,
		&row.Category,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

type dbStoredAsset struct {
	ID         uuid.UUID
	StorageKey string
	OwnerID    uuid.UUID
	ContextID  *uuid.UUID
	MimeType   string
	SizeBytes  int64
	Checksum   string
	Visibility string
	Category   string
	CreatedAt  time.Time
}

// ToDomain converts db obj to domain
func (a *dbStoredAsset) ToDomain() *domain.StoredAsset {
	return &domain.StoredAsset{
		ID:         a.ID,
		StorageKey: a.StorageKey,
		OwnerID:    a.OwnerID,
		ContextID:  a.ContextID,
		MimeType:   a.MimeType,
		SizeBytes:  a.SizeBytes,
		Checksum:   a.Checksum,
		Visibility: domain.Visibility(a.Visibility),
		Category:   domain.Category(a.Category),
		CreatedAt:  a.CreatedAt,
	}
}
