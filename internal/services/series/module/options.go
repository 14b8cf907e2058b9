package module

import (
	"playerpulse/internal/platform/config"
	"playerpulse/internal/services/series/service"
)

// Options holds configuration settings for the series module
type Options struct {
	Cfg service.Config
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("SERIES_")
	return Options{
		Cfg: service.Config{
			RawRetention:    sf.MayDuration("RAW_RETENTION", service.DefaultRawRetention),
			HourlyRetention: sf.MayDuration("HOURLY_RETENTION", service.DefaultHourlyRetention),
			DailyRetention:  sf.MayDuration("DAILY_RETENTION", service.DefaultDailyRetention),
		},
	}
}
