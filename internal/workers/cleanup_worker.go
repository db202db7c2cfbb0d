package workers

import (
	"context"
	"time"

	"jobhive_backend/internal/logger"
	"jobhive_backend/internal/repositories"
)

// CleanupWorker периодически удаляет истекшие refresh-токены
type CleanupWorker struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
}

func NewCleanupWorker(refreshTokenRepo repositories.RefreshTokenRepository) *CleanupWorker {
	return &CleanupWorker{
		refreshTokenRepo: refreshTokenRepo,
		interval:         6 * time.Hour,
	}
}

// Start запускает фоновую чистку, остановка через ctx
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.purgeExpiredTokens(ctx)
}

func (w *CleanupWorker) purgeExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.refreshTokenRepo.DeleteExpired()
			if err != nil {
				logger.WithError(err).Error("Failed to purge expired refresh tokens")
				continue
			}
			if deleted > 0 {
				logger.Info("Purged expired refresh tokens", "count", deleted)
			}
		}
	}
}
