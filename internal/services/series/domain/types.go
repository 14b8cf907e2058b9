// Package domain holds DTOs for series http and service contracts
package domain

// RawSample is one observed player count
type RawSample struct {
	AppID int64 `json:"appid"`
	TS    int64 `json:"ts"`
	Count int64 `json:"player_count"`
}

// Point5Min is one five-minute bucket of raw samples
type Point5Min struct {
	TS  int64   `json:"ts"`
	Avg float64 `json:"avg"`
	Min int64   `json:"min"`
	Max int64   `json:"max"`
}

// HourlyRow is one persisted hourly rollup bucket
type HourlyRow struct {
	AppID  int64   `json:"appid"`
	HourTS int64   `json:"hour_ts"`
	Avg    float64 `json:"avg"`
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	P95    int64   `json:"p95"`
}

// DailyRow is one persisted daily rollup bucket; Day is ISO YYYY-MM-DD in UTC
type DailyRow struct {
	AppID int64   `json:"appid"`
	Day   string  `json:"date"`
	Avg   float64 `json:"avg"`
	Min   int64   `json:"min"`
	Max   int64   `json:"max"`
	P95   int64   `json:"p95"`
}

// RollupWindow narrows a rollup run; zero-valued fields mean unbounded
type RollupWindow struct {
	Since int64
	Until int64
	IDs   []int64
}

// SeriesRange is the inclusive time range of a series read
type SeriesRange struct {
	Since int64
	Until int64
}
