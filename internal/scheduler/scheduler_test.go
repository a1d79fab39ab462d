package scheduler

import (
	"testing"

	"gearshare-backend/internal/config"
	"gearshare-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler(t *testing.T) {
	t.Run("Registers every job", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			SendReturnReminders:    "0 0 8 * * *",
			PurgeCompletedSessions: "0 30 3 * * *",
		}}
		s, err := NewScheduler(jobs.NewJobRunner(jobs.Repositories{}, nil, cfg))
		require.NoError(t, err)
		assert.Equal(t, 2, s.Entries())
	})

	t.Run("Bad spec", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			SendReturnReminders:    "every morning",
			PurgeCompletedSessions: "0 30 3 * * *",
		}}
		_, err := NewScheduler(jobs.NewJobRunner(jobs.Repositories{}, nil, cfg))
		assert.Error(t, err)
	})
}
