package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBadInterval rejects non-positive monitor intervals; the registry stays
// untouched when it is returned.
var ErrBadInterval = errors.New("interval must be positive")

// Recorder tracks the live job count; satisfied by metrics.Metrics.
type Recorder interface {
	ActiveMonitors(n int)
}

// Registry owns at most one recurring job per user. Start replaces, Cancel is
// idempotent, and both are atomic with respect to concurrent ticks: the jobs
// map and the underlying scheduler are only touched under one mutex, and a
// removed job schedules no further runs (a tick already executing is allowed
// to finish).
type Registry struct {
	log   *zap.Logger
	sched gocron.Scheduler
	rec   Recorder

	mu   sync.Mutex
	jobs map[int64]uuid.UUID
}

// NewRegistry creates the registry and starts its scheduler. rec may be nil.
func NewRegistry(log *zap.Logger, rec Recorder) (*Registry, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	s.Start()
	return &Registry{
		log:   log,
		sched: s,
		rec:   rec,
		jobs:  make(map[int64]uuid.UUID),
	}, nil
}

// Start registers a recurring job firing fire(userID) every interval. An
// existing job for the user is cancelled before the new one is installed, so
// there is never a window with two live jobs for the same user. The first
// tick fires one interval after registration.
func (r *Registry) Start(userID int64, interval time.Duration, fire func(userID int64)) error {
	if interval <= 0 {
		return ErrBadInterval
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Register the replacement first: if it fails, the prior job (if any)
	// stays installed, so the user never drops to zero jobs. The new job's
	// first tick is a full interval away, so removing the old one right
	// after cannot double-fire.
	job, err := r.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fire, userID),
		gocron.WithName(fmt.Sprintf("monitor-%d", userID)),
	)
	if err != nil {
		return fmt.Errorf("register job: %w", err)
	}

	if old, ok := r.jobs[userID]; ok {
		if err := r.sched.RemoveJob(old); err != nil {
			r.log.Warn("remove superseded job failed",
				zap.Int64("user", userID),
				zap.Error(err),
			)
		}
	}

	r.jobs[userID] = job.ID()
	r.recordLocked()
	r.log.Info("monitor started",
		zap.Int64("user", userID),
		zap.Duration("interval", interval),
	)
	return nil
}

// Cancel removes the user's job if present and reports whether one existed.
// Cancelling an absent job is a safe no-op.
func (r *Registry) Cancel(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.jobs[userID]
	if !ok {
		return false
	}
	if err := r.sched.RemoveJob(id); err != nil {
		r.log.Warn("remove job failed", zap.Int64("user", userID), zap.Error(err))
	}
	delete(r.jobs, userID)
	r.recordLocked()
	r.log.Info("monitor stopped", zap.Int64("user", userID))
	return true
}

// Active reports whether the user currently has a live job.
func (r *Registry) Active(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.jobs[userID]
	return ok
}

// Len returns the number of live jobs across all users.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// Shutdown stops the scheduler and drops all jobs.
func (r *Registry) Shutdown() error {
	r.mu.Lock()
	r.jobs = make(map[int64]uuid.UUID)
	r.recordLocked()
	r.mu.Unlock()
	return r.sched.Shutdown()
}

func (r *Registry) recordLocked() {
	if r.rec != nil {
		r.rec.ActiveMonitors(len(r.jobs))
	}
}
