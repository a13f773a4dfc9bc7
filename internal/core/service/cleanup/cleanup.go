package cleanup

import (
	"log/slog"

	"media-vault/internal/core/port"
)

type cleanupService struct {
	uow     port.UnitOfWork
	storage port.ObjectStorage
	logger  *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(uow port.UnitOfWork, storage port.ObjectStorage, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		uow:     uow,
		storage: storage,
		logger:  logger,
	}
}
