package store

import (
	"context"
	"strings"
	"testing"
	"time"
)

func fastFailPGURL() string {
	// user/pass/db don't matter; 127.0.0.1:1 is a closed port on all systems
	return "postgres://u:p@127.0.0.1:1/db?sslmode=disable"
}

func TestWithSchema(t *testing.T) {
	t.Parallel()

	base := "postgres://u:p@localhost:5432/app?sslmode=disable"

	got := WithSchema(base, "playerpulse")
	if !strings.Contains(got, "search_path=playerpulse") {
		t.Fatalf("missing search_path: %q", got)
	}
	if !strings.Contains(got, "sslmode=disable") {
		t.Fatalf("existing query params must survive: %q", got)
	}

	// empty or blank schema leaves the URL untouched
	if got := WithSchema(base, ""); got != base {
		t.Fatalf("empty schema changed url: %q", got)
	}
	if got := WithSchema(base, "   "); got != base {
		t.Fatalf("blank schema changed url: %q", got)
	}

	// unparseable URLs pass through
	if got := WithSchema("://bad", "s"); got != "://bad" {
		t.Fatalf("bad url should pass through, got %q", got)
	}
}

func TestOpenPG_ParentAlreadyCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{
		PG: PGConfig{
			Enabled:        true,
			URL:            fastFailPGURL(),
			MaxConns:       2,
			ConnectRetries: 3,
		},
	}

	s := &Store{}

	start := time.Now()
	txr, err := openPG(ctx, cfg, s)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected error due to canceled context, got nil (txr=%T)", txr)
	}
	if txr != nil {
		t.Fatalf("expected nil TxRunner on canceled context, got %T", txr)
	}
	// should return quickly (no DNS, immediate ECONNREFUSED)
	if elapsed > time.Second {
		t.Fatalf("expected quick failure, got %v", elapsed)
	}
}

func TestOpenPG_BackoffThenCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := Config{
		PG: PGConfig{
			Enabled:        true,
			URL:            fastFailPGURL(),
			MaxConns:       2,
			ConnectRetries: 20,
		},
	}

	// cancel a bit after the first 150ms backoff sleep is in progress so the
	// next iteration observes ctx.Err()
	go func() {
		time.Sleep(160 * time.Millisecond)
		cancel()
	}()

	s := &Store{}

	start := time.Now()
	txr, err := openPG(ctx, cfg, s)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected error due to parent cancellation, got nil (txr=%T)", txr)
	}
	if txr != nil {
		t.Fatalf("expected nil TxRunner when parent cancel hits, got %T", txr)
	}

	if elapsed < 140*time.Millisecond {
		t.Fatalf("expected at least one backoff sleep (~150ms), got %v", elapsed)
	}
	if elapsed > 3*time.Second {
		t.Fatalf("test took too long (%v); expected early cancel", elapsed)
	}
}

func TestOpenPG_RetriesExhausted(t *testing.T) {
	t.Parallel()

	cfg := Config{
		PG: PGConfig{
			Enabled:        true,
			URL:            fastFailPGURL(),
			MaxConns:       1,
			ConnectRetries: 2,
		},
	}

	txr, err := openPG(context.Background(), cfg, &Store{})
	if err == nil {
		t.Fatalf("expected error after exhausted retries, got nil (txr=%T)", txr)
	}
	if !strings.Contains(err.Error(), "postgres ping failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}
