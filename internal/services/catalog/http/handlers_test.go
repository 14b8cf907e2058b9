package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	perr "playerpulse/internal/platform/errors"
	phttp "playerpulse/internal/platform/net/http"

	"playerpulse/internal/services/catalog/domain"

	"github.com/go-chi/chi/v5"
)

// fakeService serves canned catalog data
type fakeService struct {
	games   map[int64]domain.Game
	watched []domain.WatchedGame
}

func (f *fakeService) UpsertWatched(context.Context, int64, string, int64) error { return nil }
func (f *fakeService) RemoveWatched(context.Context, int64) error                { return nil }

func (f *fakeService) ListWatched(context.Context) ([]domain.WatchedGame, error) {
	return f.watched, nil
}

func (f *fakeService) UpsertMetadata(context.Context, domain.MetadataWrite, bool) error { return nil }

func (f *fakeService) GetGame(_ context.Context, id int64) (domain.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return domain.Game{}, perr.NotFoundf("game %d not found", id)
	}
	return g, nil
}

func (f *fakeService) GetAllGames(context.Context) ([]domain.Game, error) {
	out := make([]domain.Game, 0, len(f.games))
	for _, g := range f.games {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeService) TagsBatch(_ context.Context, in domain.TagsBatchInput) (domain.TagsBatchOutput, error) {
	tags := map[int64]domain.GameTags{}
	for _, id := range in.IDs {
		if g, ok := f.games[id]; ok {
			tags[id] = domain.GameTags{Genres: g.Genres, Categories: g.Categories}
		}
	}
	return domain.TagsBatchOutput{Tags: tags}, nil
}

func (f *fakeService) Genres(context.Context) ([]string, error) {
	return []string{"Action"}, nil
}

func (f *fakeService) Categories(context.Context) ([]string, error) {
	return []string{"Co-op"}, nil
}

func mount(t *testing.T, f *fakeService) stdhttp.Handler {
	t.Helper()
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), f)
	return m
}

func do(t *testing.T, h stdhttp.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_GetEndpoints(t *testing.T) {
	t.Parallel()

	f := &fakeService{
		games: map[int64]domain.Game{
			730: {AppID: 730, Name: "Counter-Strike 2", Genres: []string{"Action"}},
		},
		watched: []domain.WatchedGame{{AppID: 730, Name: "Counter-Strike 2", LastCount: 100}},
	}
	h := mount(t, f)

	for _, path := range []string{"/games", "/current-players", "/genres", "/categories"} {
		rec := do(t, h, "GET", path, "")
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("GET %s = %d", path, rec.Code)
		}
	}

	rec := do(t, h, "GET", "/games/730", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("GET /games/730 = %d", rec.Code)
	}
	var g domain.Game
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.AppID != 730 || g.Name != "Counter-Strike 2" {
		t.Fatalf("game = %+v", g)
	}
}

func TestRoutes_GameNotFound(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeService{games: map[int64]domain.Game{}})

	rec := do(t, h, "GET", "/games/440", "")
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("missing game = %d, want 404", rec.Code)
	}
	var body phttp.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Detail == "" {
		t.Fatal("error body must carry a detail")
	}
}

func TestRoutes_GameBadID(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeService{games: map[int64]domain.Game{}})

	rec := do(t, h, "GET", "/games/abc", "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("non-numeric id = %d, want 400", rec.Code)
	}
}

func TestRoutes_TagsBatch(t *testing.T) {
	t.Parallel()

	f := &fakeService{
		games: map[int64]domain.Game{
			570: {AppID: 570, Genres: []string{"Action"}, Categories: []string{"Co-op"}},
		},
	}
	h := mount(t, f)

	rec := do(t, h, "POST", "/games/tags/batch", `{"ids":[570]}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("tags batch = %d: %s", rec.Code, rec.Body.String())
	}
	var out domain.TagsBatchOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := out.Tags[570]; len(got.Genres) != 1 || got.Genres[0] != "Action" {
		t.Fatalf("tags[570] = %+v", got)
	}

	// oversized batches are stopped by validation before the service runs
	ids := make([]string, 101)
	for i := range ids {
		ids[i] = strconv.Itoa(i + 1)
	}
	rec = do(t, h, "POST", "/games/tags/batch", `{"ids":[`+strings.Join(ids, ",")+`]}`)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("101 ids = %d, want 422", rec.Code)
	}
}
