package shell

import (
	"context"
	"time"
)

// ScheduledJob is one unit of work the DailyScheduler runs per tick.
type ScheduledJob func(ctx context.Context) error

// DailyScheduler runs a set of jobs once per day at midnight UTC.
//
// It replaces an external cron dependency: the trigger is a plain timer that is
// re-armed after every run, so a missed tick (process restart, clock jump) is
// caught up at the next midnight. Jobs run sequentially in registration order,
// and a failing job is logged but never stops the remaining jobs or the schedule.
type DailyScheduler struct {
	clock            Clock
	jobs             []namedJob
	logger           Logger
	contextualLogger ContextualLogger
}

type namedJob struct {
	name string
	job  ScheduledJob
}

// NewDailyScheduler creates a scheduler ticking at midnight UTC on the given clock.
func NewDailyScheduler(clock Clock, logger Logger, contextualLogger ContextualLogger) *DailyScheduler {
	return &DailyScheduler{
		clock:            clock,
		logger:           logger,
		contextualLogger: contextualLogger,
	}
}

// AddJob registers a job to run on every tick. Not safe to call after Start.
func (s *DailyScheduler) AddJob(name string, job ScheduledJob) {
	s.jobs = append(s.jobs, namedJob{name: name, job: job})
}

// Start blocks and runs the daily schedule until ctx is cancelled.
func (s *DailyScheduler) Start(ctx context.Context) {
	for {
		now := s.clock.Now()
		timer := time.NewTimer(NextUTCMidnight(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case <-timer.C:
			s.RunJobs(ctx)
		}
	}
}

// RunJobs executes all registered jobs once, sequentially.
// Exposed so that an operational trigger can force a run between ticks.
func (s *DailyScheduler) RunJobs(ctx context.Context) {
	for _, nj := range s.jobs {
		if err := nj.job(ctx); err != nil {
			if IsCancellationError(err) || IsTimeoutError(err) {
				return // shutdown in progress, the next tick catches up
			}

			s.logJobError(ctx, nj.name, err)
		}
	}
}

// NextUTCMidnight returns the first instant strictly after now that is
// midnight in UTC.
func NextUTCMidnight(now time.Time) time.Time {
	utc := now.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	return midnight.AddDate(0, 0, 1)
}

func (s *DailyScheduler) logJobError(ctx context.Context, jobName string, err error) {
	args := []any{
		"job", jobName,
		LogAttrError, err.Error(),
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, "scheduled job failed", args...)
	} else if s.logger != nil {
		s.logger.Error("scheduled job failed", args...)
	}
}
