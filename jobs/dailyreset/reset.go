package dailyreset

import (
	"context"
	"time"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/logger"
)

// Resetter is the daily maintenance surface of the workshop manager.
type Resetter interface {
	ResetDailyCounters()
}

// Job invokes the daily counter reset at local midnight. The per-day
// emergency slot cap depends on this hook firing once per calendar day.
type Job struct {
	target Resetter
	now    func() time.Time
	log    logger.Logger
}

// New creates the job.
func New(target Resetter, log logger.Logger) *Job {
	if log == nil {
		log = logger.Nop{}
	}
	return &Job{target: target, now: time.Now, log: log}
}

// Run blocks until the context is canceled, firing the reset at each
// local midnight.
func (j *Job) Run(ctx context.Context) {
	for {
		now := j.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			j.target.ResetDailyCounters()
			j.log.Infof("daily counters reset at %s", j.now().Format(time.RFC3339))
		}
	}
}
