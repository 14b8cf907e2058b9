// Package sched drives periodic jobs on a shared cron timer wheel.
// Each job runs at most once at a time; a tick that fires while the previous
// run is still executing is skipped
package sched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"playerpulse/internal/platform/logger"
)

// DefaultDrain bounds how long Stop waits for in-flight jobs
const DefaultDrain = 30 * time.Second

// Job is one periodic unit of work
type Job struct {
	// Name identifies the job in logs
	Name string

	// Spec is a cron expression, @every included
	Spec string

	// AtStartup also runs the job once when the scheduler starts
	AtStartup bool

	// StartupDelay postpones the startup run
	StartupDelay time.Duration

	// Run does the work; it must honor ctx cancellation
	Run func(ctx context.Context) error
}

// Scheduler owns the timer wheel and the lifecycle of its jobs
type Scheduler struct {
	cron    *cron.Cron
	log     logger.Logger
	drain   time.Duration
	running atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	startup []startupRun
}

// startupRun is a registered job's wrapped closure plus its startup delay.
// Holding the closure, not the Job, keeps the startup run and the cron entry
// on the same busy flag
type startupRun struct {
	delay time.Duration
	run   func()
}

// New creates a stopped scheduler
func New(drain time.Duration) *Scheduler {
	if drain <= 0 {
		drain = DefaultDrain
	}
	log := *logger.Named("sched")
	cl := cronLogger{log: log}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
		),
		log:    log,
		drain:  drain,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a job to the wheel; call before Start
func (s *Scheduler) Register(j Job) error {
	run := s.wrap(j, new(atomic.Bool))
	if _, err := s.cron.AddFunc(j.Spec, run); err != nil {
		return err
	}
	if j.AtStartup {
		s.startup = append(s.startup, startupRun{delay: j.StartupDelay, run: run})
	}
	return nil
}

// wrap serializes runs of one job, tracks the execution for drain, and logs
// terminal states. The busy flag is shared by the cron entry and the startup
// run, so overlapping invocations from either path are skipped
func (s *Scheduler) wrap(j Job, busy *atomic.Bool) func() {
	return func() {
		if !busy.CompareAndSwap(false, true) {
			s.log.Debug().Str("job", j.Name).Msg("previous run still in flight, skipping")
			return
		}
		defer busy.Store(false)

		s.wg.Add(1)
		defer s.wg.Done()

		runID := uuid.NewString()
		start := time.Now()
		log := s.log.With().Str("job", j.Name).Str("run_id", runID).Logger()

		log.Debug().Msg("job running")
		err := j.Run(s.ctx)
		elapsed := time.Since(start)

		switch {
		case err == nil:
			log.Info().Dur("elapsed", elapsed).Msg("job completed")
		case s.ctx.Err() != nil:
			log.Warn().Dur("elapsed", elapsed).Msg("job cancelled at shutdown")
		default:
			log.Error().Err(err).Dur("elapsed", elapsed).Msg("job errored")
		}
	}
}

// Start launches startup runs and the timer wheel
func (s *Scheduler) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	for _, sr := range s.startup {
		sr := sr
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if sr.delay > 0 {
				select {
				case <-time.After(sr.delay):
				case <-s.ctx.Done():
					return
				}
			}
			sr.run()
		}()
	}
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Running reports whether the wheel is live
func (s *Scheduler) Running() bool { return s.running.Load() }

// Stop cancels in-flight jobs and waits up to the drain window
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	stopped := s.cron.Stop()
	s.cancel()

	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info().Msg("scheduler drained")
	case <-time.After(s.drain):
		s.log.Warn().Dur("drain", s.drain).Msg("scheduler drain window elapsed with jobs in flight")
	}
}

// cronLogger adapts the project logger to cron's logging seam
type cronLogger struct {
	log logger.Logger
}

func (c cronLogger) Info(msg string, kv ...any) {
	c.log.Debug().Fields(kv).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.log.Error().Err(err).Fields(kv).Msg(msg)
}
