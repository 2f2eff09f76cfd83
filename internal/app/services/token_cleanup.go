package services

import (
	"context"
	"time"

	"github.com/roadwise/roadwise/internal/pkg/logger"
)

// expiredTokenDeleter is the slice of the token repository the cleanup loop
// needs.
type expiredTokenDeleter interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// RunTokenCleanup deletes expired and long-revoked refresh tokens on a fixed
// interval until the context is cancelled. One pass runs immediately so a
// freshly started instance does not wait a full interval to catch up.
func RunTokenCleanup(ctx context.Context, repo expiredTokenDeleter, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	runPass := func() {
		if _, err := repo.CleanupExpiredTokens(ctx); err != nil {
			logger.Error().Err(err).Msg("Refresh token cleanup failed")
		}
	}

	runPass()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runPass()
		}
	}
}
