package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/harryz-code/network-school-fitness-sub000/internal/enrich"
	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

/* ─── Fake store ─────────────────────────────────────────────────────── */

// fakeStore is an in-memory Store. Setting err makes every call fail except
// the token lookup, which fails only with authErr.
type fakeStore struct {
	users    []user
	profiles map[int]profileRow
	meals    []mealRow
	workouts []workoutRow
	water    []waterRow
	nextID   int
	err      error
	authErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: map[int]profileRow{}, nextID: 1}
}

func (s *fakeStore) id() int {
	s.nextID++
	return s.nextID - 1
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (s *fakeStore) UserByUsername(ctx context.Context, username string) (user, error) {
	if s.err != nil {
		return user{}, s.err
	}
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user{}, pgx.ErrNoRows
}

func (s *fakeStore) UserIDByToken(ctx context.Context, token string) (int, error) {
	if s.authErr != nil {
		return 0, s.authErr
	}
	for _, u := range s.users {
		if u.AuthToken == token {
			return u.ID, nil
		}
	}
	return 0, pgx.ErrNoRows
}

func (s *fakeStore) Profile(ctx context.Context, userID int) (profileRow, error) {
	if s.err != nil {
		return profileRow{}, s.err
	}
	p, ok := s.profiles[userID]
	if !ok {
		return profileRow{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakeStore) UpsertProfile(ctx context.Context, p profileRow) (profileRow, error) {
	if s.err != nil {
		return profileRow{}, s.err
	}
	now := time.Now()
	p.UpdatedAt = &now
	s.profiles[p.UserID] = p
	return p, nil
}

func (s *fakeStore) Meals(ctx context.Context, userID int, from, to time.Time) ([]mealRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []mealRow
	for _, m := range s.meals {
		if m.UserID == userID && inRange(m.LoggedAt, from, to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateMeal(ctx context.Context, m mealRow) (mealRow, error) {
	if s.err != nil {
		return mealRow{}, s.err
	}
	m.ID = s.id()
	s.meals = append(s.meals, m)
	return m, nil
}

func (s *fakeStore) DeleteMeal(ctx context.Context, userID, id int) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for i, m := range s.meals {
		if m.ID == id && m.UserID == userID {
			s.meals = append(s.meals[:i], s.meals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) Workouts(ctx context.Context, userID int, from, to time.Time) ([]workoutRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []workoutRow
	for _, w := range s.workouts {
		if w.UserID == userID && inRange(w.LoggedAt, from, to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateWorkout(ctx context.Context, w workoutRow) (workoutRow, error) {
	if s.err != nil {
		return workoutRow{}, s.err
	}
	w.ID = s.id()
	s.workouts = append(s.workouts, w)
	return w, nil
}

func (s *fakeStore) DeleteWorkout(ctx context.Context, userID, id int) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for i, w := range s.workouts {
		if w.ID == id && w.UserID == userID {
			s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) Water(ctx context.Context, userID int, from, to time.Time) ([]waterRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []waterRow
	for _, w := range s.water {
		if w.UserID == userID && inRange(w.LoggedAt, from, to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateWater(ctx context.Context, w waterRow) (waterRow, error) {
	if s.err != nil {
		return waterRow{}, s.err
	}
	w.ID = s.id()
	s.water = append(s.water, w)
	return w, nil
}

func (s *fakeStore) EarliestLogDate(ctx context.Context, userID int) (*DateOnly, error) {
	if s.err != nil {
		return nil, s.err
	}
	var all []time.Time
	for _, m := range s.meals {
		if m.UserID == userID {
			all = append(all, m.LoggedAt)
		}
	}
	for _, w := range s.workouts {
		if w.UserID == userID {
			all = append(all, w.LoggedAt)
		}
	}
	for _, w := range s.water {
		if w.UserID == userID {
			all = append(all, w.LoggedAt)
		}
	}
	if len(all) == 0 {
		return nil, nil
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Before(all[j]) })
	y, m, d := all[0].UTC().Date()
	return &DateOnly{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
}

/* ─── Test server ────────────────────────────────────────────────────── */

const (
	testToken  = "test-token"
	testUserID = 1
)

// testNow is the handler clock: 2026-03-10 18:00 UTC.
var testNow = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

// moderateMale is 80 kg, 180 cm, 30 y, moderately active, 500 kcal deficit
// with 40% from workouts: TDEE 2759, target 2259, workout share 200.
func moderateMale() profileRow {
	return profileRow{
		UserID:              testUserID,
		Age:                 30,
		Sex:                 "male",
		HeightCm:            180,
		WeightKg:            80,
		ActivityLevel:       "moderate",
		DailyDeficit:        500,
		WorkoutSplitPercent: 40,
	}
}

// setupTest builds a router over a fake store with one user (testToken) and
// a fixed clock. enricher may be nil.
func setupTest(t *testing.T, enricher *enrich.Enricher) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	store := newFakeStore()
	store.users = []user{
		{ID: testUserID, Username: "harry", Email: "harry@example.com", AuthToken: testToken, Password: string(hash)},
		{ID: 2, Username: "other", Email: "other@example.com", AuthToken: "other-token", Password: string(hash)},
	}

	logger := zaptest.NewLogger(t)
	h := newHandler(store, logger, enricher, health.DefaultWeeklyGoalMinutes)
	h.now = func() time.Time { return testNow }

	router := gin.New()
	router.Use(requestLogger(logger))
	h.registerRoutes(router)
	return router, store
}

// doRequest sends an authenticated request with an optional JSON body.
func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	return doRequestAs(router, testToken, method, path, body)
}

func doRequestAs(router *gin.Engine, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, contains string) {
	t.Helper()
	expectStatus(t, w, status)
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, w, &resp)
	if !strings.Contains(resp.Error, contains) {
		t.Errorf("expected error containing %q, got %q", contains, resp.Error)
	}
}

/* ─── Auth ───────────────────────────────────────────────────────────── */

func TestAuthMiddleware(t *testing.T) {
	router, _ := setupTest(t, nil)

	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{"missing header", "", "", http.StatusUnauthorized},
		{"not bearer", "", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "", "Bearer   ", http.StatusUnauthorized},
		{"unknown token", "nope", "", http.StatusUnauthorized},
		{"valid token", testToken, "", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/hydration-goal", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			} else if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestLogin(t *testing.T) {
	router, _ := setupTest(t, nil)

	w := doRequestAs(router, "", "POST", "/api/login", `{"username":"harry","password":"hunter22"}`)
	expectStatus(t, w, http.StatusOK)
	var resp struct {
		Token  string `json:"token"`
		UserID int    `json:"user_id"`
	}
	decode(t, w, &resp)
	if resp.Token != testToken || resp.UserID != testUserID {
		t.Errorf("unexpected login response %+v", resp)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrong password", `{"username":"harry","password":"nope"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"ghost","password":"hunter22"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"harry"}`, http.StatusBadRequest},
		{"not json", `username=harry`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequestAs(router, "", "POST", "/api/login", tc.body)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuth_StoreFailure(t *testing.T) {
	router, store := setupTest(t, nil)
	store.authErr = errors.New("connection reset")

	w := doRequest(router, "GET", "/api/hydration-goal", "")
	expectStatus(t, w, http.StatusInternalServerError)

	// Login takes the user lookup through err; bad credentials stay 401.
	store.authErr = nil
	store.err = errors.New("connection reset")
	w = doRequestAs(router, "", "POST", "/api/login", `{"username":"harry","password":"hunter22"}`)
	expectStatus(t, w, http.StatusInternalServerError)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer  abc ", "abc", true},
		{"Bearer ", "", false},
		{"bearer abc", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		token, ok := bearerToken(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Errorf("%q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

/* ─── Helpers & middleware ───────────────────────────────────────────── */

func TestRefDate_Invalid(t *testing.T) {
	router, _ := setupTest(t, nil)
	for _, path := range []string{"/api/meals?date=03-10-2026", "/api/progress/streak?date=2026-13-01"} {
		w := doRequest(router, "GET", path, "")
		expectError(t, w, http.StatusBadRequest, "YYYY-MM-DD")
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	router, _ := setupTest(t, nil)

	w := doRequest(router, "GET", "/api/hydration-goal", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated request id")
	}

	req := httptest.NewRequest("GET", "/api/exercise-catalog", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected request id to be echoed, got %q", got)
	}
}

func TestWindow(t *testing.T) {
	ref := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	from, to := window(ref, 7)
	if !from.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window %v – %v", from, to)
	}
}

func TestLoggedAt(t *testing.T) {
	h := &Handler{now: func() time.Time { return testNow }}
	ts := time.Date(2026, 3, 9, 7, 30, 0, 0, time.FixedZone("EST", -5*3600))
	date := &DateOnly{time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)}

	if got := h.loggedAt(&ts, date); !got.Equal(ts) || got.Location() != time.UTC {
		t.Errorf("explicit timestamp: got %v", got)
	}
	if got := h.loggedAt(nil, date); !got.Equal(time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("date only: got %v", got)
	}
	if got := h.loggedAt(nil, nil); !got.Equal(testNow) {
		t.Errorf("default: got %v", got)
	}
}

func TestStoreErrorIs500(t *testing.T) {
	router, store := setupTest(t, nil)
	store.err = errors.New("connection reset")

	for _, path := range []string{"/api/profile", "/api/meals", "/api/workouts", "/api/water", "/api/progress/streak", "/api/progress/earliest-date"} {
		w := doRequest(router, "GET", path, "")
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", path, w.Code)
		}
	}
}
