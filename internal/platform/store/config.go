package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity, pooling, and tracing
type PGConfig struct {
	Enabled bool
	URL     string

	// Schema is the logical namespace all tables live in
	// it becomes the connection search_path so parallel test runs can isolate state
	Schema string

	MinConns    int32
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}
