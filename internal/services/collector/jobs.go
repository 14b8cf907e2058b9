package collector

import (
	"time"

	"playerpulse/internal/services/sched"
)

// RegisterJobs places every collection job on the scheduler's wheel
func (e *Engine) RegisterJobs(s *sched.Scheduler) error {
	jobs := []sched.Job{
		{Name: "sample-current-counts", Spec: "@every 5m", Run: e.SampleOnce},
		{Name: "refresh-watched-list", Spec: "@every 1h", AtStartup: true, Run: e.RefreshWatched},
		{Name: "enrich-game-metadata", Spec: "@every 1h", AtStartup: true, StartupDelay: 2 * time.Minute, Run: e.EnrichMetadata},
		{Name: "rollup-hourly", Spec: "@every 1h", Run: e.RollupHourly},
		{Name: "rollup-daily", Spec: "@every 24h", Run: e.RollupDaily},
		{Name: "purge-hourly", Spec: "@every 24h", Run: e.PurgeHourly},
		{Name: "purge-daily", Spec: "@every 24h", Run: e.PurgeDaily},
	}
	for _, j := range jobs {
		if err := s.Register(j); err != nil {
			return err
		}
	}
	return nil
}
