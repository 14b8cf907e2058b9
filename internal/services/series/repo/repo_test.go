package repo

import (
	"context"
	"errors"
	"testing"

	"playerpulse/internal/platform/store"

	"playerpulse/internal/services/series/domain"
)

type cmdTag int64

func (c cmdTag) String() string      { return "OK" }
func (c cmdTag) RowsAffected() int64 { return int64(c) }

// fakeQ hands out scripted result sets in order
type fakeQ struct {
	queue    []store.Rows
	execTag  cmdTag
	lastSQL  string
	lastArgs []any
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.lastSQL = sql
	f.lastArgs = args
	return f.execTag, nil
}

func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) {
	if len(f.queue) == 0 {
		return nil, errors.New("no scripted result set")
	}
	r := f.queue[0]
	f.queue = f.queue[1:]
	return r, nil
}

func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row { return nil }

type fakeRows struct {
	data [][]any
	idx  int
}

func newRows(data [][]any) *fakeRows { return &fakeRows{data: data, idx: -1} }

func (r *fakeRows) Columns() []string { return nil }
func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	for i := range dest {
		switch p := dest[i].(type) {
		case *int64:
			*p = row[i].(int64)
		case *float64:
			*p = row[i].(float64)
		case *string:
			*p = row[i].(string)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func TestRawRange_ScansRows(t *testing.T) {
	t.Parallel()

	q := &fakeQ{queue: []store.Rows{newRows([][]any{
		{int64(730), int64(100), int64(12000)},
		{int64(730), int64(400), int64(13000)},
	})}}
	r := NewPG().Bind(q)

	got, err := r.RawRange(context.Background(), 730, domain.SeriesRange{Since: 0, Until: 500})
	if err != nil {
		t.Fatalf("RawRange: %v", err)
	}
	if len(got) != 2 || got[0].TS != 100 || got[1].Count != 13000 {
		t.Fatalf("samples = %+v", got)
	}
}

func TestHourlyRange_ScansRows(t *testing.T) {
	t.Parallel()

	q := &fakeQ{queue: []store.Rows{newRows([][]any{
		{int64(730), int64(3600), 150.5, int64(100), int64(300), int64(290)},
	})}}
	r := NewPG().Bind(q)

	got, err := r.HourlyRange(context.Background(), 730, domain.SeriesRange{Since: 0, Until: 7200})
	if err != nil {
		t.Fatalf("HourlyRange: %v", err)
	}
	if len(got) != 1 || got[0].HourTS != 3600 || got[0].P95 != 290 {
		t.Fatalf("rows = %+v", got)
	}
}

func TestDailyRange_ScansRows(t *testing.T) {
	t.Parallel()

	q := &fakeQ{queue: []store.Rows{newRows([][]any{
		{int64(730), "2026-08-25", 150.5, int64(100), int64(300), int64(290)},
	})}}
	r := NewPG().Bind(q)

	got, err := r.DailyRange(context.Background(), 730, domain.SeriesRange{Since: 0, Until: 86400})
	if err != nil {
		t.Fatalf("DailyRange: %v", err)
	}
	if len(got) != 1 || got[0].Day != "2026-08-25" {
		t.Fatalf("rows = %+v", got)
	}
}

func TestRollupHourly_ReportsAffected(t *testing.T) {
	t.Parallel()

	q := &fakeQ{execTag: cmdTag(7)}
	r := NewPG().Bind(q)

	n, err := r.RollupHourly(context.Background(), domain.RollupWindow{Since: 100, Until: 200})
	if err != nil {
		t.Fatalf("RollupHourly: %v", err)
	}
	if n != 7 {
		t.Fatalf("affected = %d, want 7", n)
	}
	if len(q.lastArgs) != 2 || q.lastArgs[0] != int64(100) || q.lastArgs[1] != int64(200) {
		t.Fatalf("window args = %v", q.lastArgs)
	}
}
