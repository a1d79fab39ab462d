package jobs

import (
	"context"
	"time"

	"gearshare-backend/internal/config"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
	"gearshare-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos  Repositories
	email  service.EmailService
	config *config.Config
	now    func() time.Time
}

// Repositories holds the stores the jobs read and write
type Repositories struct {
	Bookings      repository.BookingRepository
	Listings      repository.ListingRepository
	Users         repository.UserRepository
	Sessions      repository.SessionRepository
	Notifications repository.NotificationRepository
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos Repositories, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:  repos,
		email:  email,
		config: cfg,
		now:    time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	start := time.Now()
	if err := jobFunc(context.Background()); err != nil {
		logger.Error("Job failed", "job", jobName, "duration", time.Since(start), "error", err)
		return
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
}

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendReturnReminders()
	jr.PurgeCompletedSessions()
}

// Names lists the jobs Lookup knows, in the order they are documented.
var Names = []string{"send-return-reminders", "purge-completed-sessions", "all-daily"}

// Lookup returns the job registered under a command-line name.
func (jr *JobRunner) Lookup(name string) (func(), bool) {
	job, ok := map[string]func(){
		"send-return-reminders":    jr.SendReturnReminders,
		"purge-completed-sessions": jr.PurgeCompletedSessions,
		"all-daily":                jr.RunAllDailyJobs,
	}[name]
	return job, ok
}
