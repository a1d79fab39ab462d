package jobs

import (
	"context"
	"fmt"

	"gearshare-backend/internal/logger"
)

// PurgeCompletedSessions removes completed rental session snapshots that are
// past the retention period. Until then they are kept as dispute evidence.
func (jr *JobRunner) PurgeCompletedSessions() {
	jr.runWithRecovery("PurgeCompletedSessions", func(ctx context.Context) error {
		_, err := jr.purgeCompletedSessions(ctx)
		return err
	})
}

func (jr *JobRunner) purgeCompletedSessions(ctx context.Context) (int64, error) {
	cutoff := jr.now().UTC().Add(-jr.config.SessionRetention())
	n, err := jr.repos.Sessions.PurgeCompleted(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge completed sessions: %w", err)
	}
	logger.Info("Purged completed rental sessions", "count", n, "cutoff", cutoff)
	return n, nil
}
