package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shinyyama/leaderboard-backend/internal/handler"
	"github.com/shinyyama/leaderboard-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRewards struct{ n int }

func (f fixedRewards) Points() int { return f.n }

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createUser(t *testing.T, srv http.Handler, name string) handler.UserResponse {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/users/add", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[handler.UserResponse](t, rec)
}

func TestClaimFlow(t *testing.T) {
	srv := New(testutil.NewDB(t), Options{Rewards: fixedRewards{n: 6}})

	a := createUser(t, srv, "Asha")
	assert.Zero(t, a.TotalPoints)
	b := createUser(t, srv, "Bilal")

	rec := do(t, srv, http.MethodPost, "/api/claim-points", map[string]string{"userId": b.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	claim := decode[handler.ClaimResponse](t, rec)
	assert.Equal(t, 6, claim.ClaimedPoints)
	assert.EqualValues(t, 6, claim.User.TotalPoints)
	assert.Equal(t, "Points claimed successfully", claim.Message)

	rec = do(t, srv, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]handler.UserResponse](t, rec)
	require.Len(t, users, 2)

	rec = do(t, srv, http.MethodGet, "/api/users/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decode[[]handler.LeaderboardEntryResponse](t, rec)
	require.Len(t, board, 2)
	assert.Equal(t, handler.LeaderboardEntryResponse{UserID: b.ID, Name: "Bilal", TotalPoints: 6, Rank: 1}, board[0])
	assert.Equal(t, handler.LeaderboardEntryResponse{UserID: a.ID, Name: "Asha", TotalPoints: 0, Rank: 2}, board[1])

	rec = do(t, srv, http.MethodGet, "/api/users/leaderboard/podium?n=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]handler.LeaderboardEntryResponse](t, rec), 1)

	rec = do(t, srv, http.MethodGet, "/api/claim-points/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]handler.ClaimEventResponse](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, b.ID, history[0].UserID)
	require.NotNil(t, history[0].UserName)
	assert.Equal(t, "Bilal", *history[0].UserName)
	assert.Equal(t, 6, history[0].Points)

	rec = do(t, srv, http.MethodGet, "/api/users/"+b.ID+"/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]handler.ClaimEventResponse](t, rec)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].UserName)
	assert.Equal(t, "Bilal", *mine[0].UserName)

	rec = do(t, srv, http.MethodGet, "/api/users/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asha", decode[handler.UserResponse](t, rec).Name)
}

func TestValidationAndNotFound(t *testing.T) {
	srv := New(testutil.NewDB(t), Options{Rewards: fixedRewards{n: 2}})

	for _, name := range []string{"", "   "} {
		rec := do(t, srv, http.MethodPost, "/api/users/add", map[string]string{"name": name})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decode[handler.ErrorResponse](t, rec).Error.Code)
	}

	rec := do(t, srv, http.MethodPost, "/api/claim-points", map[string]string{"userId": "unknown"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[handler.ErrorResponse](t, rec).Error.Code)

	rec = do(t, srv, http.MethodPost, "/api/claim-points", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/users/unknown/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/users/leaderboard/podium?n=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, srv, http.MethodGet, "/api/users/leaderboard/podium?n=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]handler.UserResponse](t, rec))

	rec = do(t, srv, http.MethodGet, "/api/claim-points/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestConcurrentClaimsOverHTTP(t *testing.T) {
	srv := New(testutil.NewDB(t), Options{Rewards: fixedRewards{n: 3}})
	u := createUser(t, srv, "Chen")

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := do(t, srv, http.MethodPost, "/api/claim-points", map[string]string{"userId": u.ID})
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	rec := do(t, srv, http.MethodGet, "/api/users/"+u.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3*n, decode[handler.UserResponse](t, rec).TotalPoints)
}

func TestStorageUnavailableUntilSetDB(t *testing.T) {
	srv := New(nil, Options{SHA: "abc123"})

	rec := do(t, srv, http.MethodGet, "/api/users/leaderboard", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "storage_unavailable", decode[handler.ErrorResponse](t, rec).Error.Code)

	rec = do(t, srv, http.MethodPost, "/api/claim-points", map[string]string{"userId": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, srv, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[map[string]any](t, rec)
	assert.Equal(t, false, health["db"])
	assert.Equal(t, "abc123", health["git_sha"])

	srv.SetDB(testutil.NewDB(t))
	rec = do(t, srv, http.MethodGet, "/api/users/leaderboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, true, decode[map[string]any](t, rec)["db"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := New(testutil.NewDB(t), Options{Rewards: fixedRewards{n: 4}})
	u := createUser(t, srv, "Dana")
	do(t, srv, http.MethodPost, "/api/claim-points", map[string]string{"userId": u.ID})

	rec := do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "leaderboard_claims_total 1")
	assert.Contains(t, body, "leaderboard_claim_points_total 4")
	assert.Contains(t, body, `path="/api/claim-points"`)
}

func TestAllowOrigin(t *testing.T) {
	allow := allowOrigin([]string{"vercel.app", " example.org "})
	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"https://127.0.0.1:3000", true},
		{"https://board.vercel.app", true},
		{"https://www.example.org", true},
		{"https://evil.com", false},
		{"ftp://board.vercel.app", false},
	}
	for _, tt := range tests {
		got, err := allow(tt.origin)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.origin)
	}
}
