package main

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

func floatPtr(v float64) *float64 { return &v }

func TestEstimate(t *testing.T) {
	p := moderateMale().health()

	tests := []struct {
		name    string
		profile *health.Profile
		req     workoutRequest
		want    workoutEstimate
	}{
		{
			// 80 kg × MET 7 × 0.5 h
			name:    "met with profile",
			profile: &p,
			req:     workoutRequest{ExerciseType: "cardio", DurationMinutes: 30},
			want:    workoutEstimate{Method: methodMET, ExerciseType: "cardio", Intensity: "moderate", EstimatedCalories: 280, CaloriesBurned: 280},
		},
		{
			// 70 kg × MET 6 × 1 h
			name: "met without profile uses reference weight",
			req:  workoutRequest{ExerciseType: "strength", DurationMinutes: 60, Intensity: "vigorous"},
			want: workoutEstimate{Method: methodMET, ExerciseType: "strength", Intensity: "vigorous", EstimatedCalories: 420, CaloriesBurned: 420},
		},
		{
			name: "override wins",
			req:  workoutRequest{ExerciseType: "cardio", DurationMinutes: 30, CaloriesOverride: floatPtr(150)},
			want: workoutEstimate{Method: methodMET, ExerciseType: "cardio", Intensity: "moderate", EstimatedCalories: 245, CaloriesBurned: 150, CaloriesOverridden: true},
		},
		{
			// 0.5 kcal × 20 reps, no personalization
			name: "catalog per rep from sets",
			req:  workoutRequest{CatalogID: "push_ups", Sets: []health.WorkoutSet{{Reps: 12}, {Reps: 8}}},
			want: workoutEstimate{Method: methodCatalog, ExerciseType: "strength", EstimatedCalories: 10, CaloriesBurned: 10},
		},
		{
			name: "catalog per rep defaults to ten",
			req:  workoutRequest{CatalogID: "burpees"},
			want: workoutEstimate{Method: methodCatalog, ExerciseType: "hiit", EstimatedCalories: 12, CaloriesBurned: 12},
		},
		{
			// 2.5 kcal/min × 20 min
			name: "catalog per minute",
			req:  workoutRequest{CatalogID: "stretching", DurationMinutes: 20},
			want: workoutEstimate{Method: methodCatalog, ExerciseType: "flexibility", EstimatedCalories: 50, CaloriesBurned: 50},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := estimate(tc.profile, tc.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestEstimate_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  workoutRequest
		want error
	}{
		{"unknown catalog id", workoutRequest{CatalogID: "moonwalk"}, errUnknownCatalogEntry},
		{"no type", workoutRequest{DurationMinutes: 30}, errNoExerciseType},
		{"no duration", workoutRequest{ExerciseType: "cardio"}, errNoDuration},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := estimate(nil, tc.req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// A manual value makes the duration optional.
	got, err := estimate(nil, workoutRequest{ExerciseType: "sports", CaloriesOverride: floatPtr(300)})
	if err != nil || got.CaloriesBurned != 300 {
		t.Errorf("expected override without duration, got %+v, %v", got, err)
	}
}

func TestCreateWorkout(t *testing.T) {
	router, store := setupTest(t, nil)
	store.profiles[testUserID] = moderateMale()

	w := doRequest(router, "POST", "/api/workouts", `{"exercise_type":"cardio","duration_minutes":45,"intensity":"vigorous"}`)
	expectStatus(t, w, http.StatusCreated)

	var resp struct {
		Workout  workoutRow      `json:"workout"`
		Estimate workoutEstimate `json:"estimate"`
	}
	decode(t, w, &resp)
	// 80 kg × MET 10 × 0.75 h
	if resp.Workout.CaloriesBurned != 600 || resp.Estimate.EstimatedCalories != 600 {
		t.Errorf("unexpected calories %+v / %+v", resp.Workout, resp.Estimate)
	}
	if resp.Workout.Intensity == nil || *resp.Workout.Intensity != "vigorous" || resp.Workout.CatalogID != nil {
		t.Errorf("unexpected stored workout %+v", resp.Workout)
	}
	if !resp.Workout.LoggedAt.Equal(testNow) || resp.Workout.CaloriesOverridden {
		t.Errorf("unexpected stored workout %+v", resp.Workout)
	}
	if len(store.workouts) != 1 {
		t.Errorf("expected one stored workout, got %d", len(store.workouts))
	}
}

func TestCreateWorkout_CatalogWithOverride(t *testing.T) {
	router, store := setupTest(t, nil)

	w := doRequest(router, "POST", "/api/workouts",
		`{"catalog_id":"squats","sets":[{"reps":15,"weight_kg":0},{"reps":15,"weight_kg":0}],"calories_override":25.4,"date":"2026-03-08"}`)
	expectStatus(t, w, http.StatusCreated)

	got := store.workouts[0]
	if got.ExerciseType != "strength" || got.CatalogID == nil || *got.CatalogID != "squats" {
		t.Errorf("unexpected catalog workout %+v", got)
	}
	if got.CaloriesBurned != 25 || !got.CaloriesOverridden {
		t.Errorf("expected rounded override, got %+v", got)
	}
	if len(got.Sets) != 2 || got.Intensity != nil {
		t.Errorf("unexpected sets/intensity %+v", got)
	}
	if !got.LoggedAt.Equal(time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected logged_at %v", got.LoggedAt)
	}
}

func TestCreateWorkout_Invalid(t *testing.T) {
	router, store := setupTest(t, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown type", `{"exercise_type":"juggling","duration_minutes":10}`, "invalid request body"},
		{"unknown intensity", `{"exercise_type":"cardio","duration_minutes":10,"intensity":"extreme"}`, "invalid request body"},
		{"negative duration", `{"exercise_type":"cardio","duration_minutes":-10}`, "invalid request body"},
		{"negative override", `{"exercise_type":"cardio","duration_minutes":10,"calories_override":-1}`, "invalid request body"},
		{"negative reps in sets", `{"catalog_id":"push_ups","sets":[{"reps":-3}]}`, "sets must not be negative"},
		{"unknown catalog id", `{"catalog_id":"moonwalk"}`, "unknown catalog_id"},
		{"nothing to estimate", `{"duration_minutes":10}`, "exercise_type or catalog_id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, "POST", "/api/workouts", tc.body)
			expectError(t, w, http.StatusBadRequest, tc.want)
		})
	}
	if len(store.workouts) != 0 {
		t.Errorf("invalid workouts must not be stored: %+v", store.workouts)
	}
}

func TestEstimateWorkout_DoesNotStore(t *testing.T) {
	router, store := setupTest(t, nil)
	store.profiles[testUserID] = moderateMale()

	w := doRequest(router, "POST", "/api/workouts/estimate", `{"exercise_type":"walking","duration_minutes":60}`)
	expectStatus(t, w, http.StatusOK)

	var got workoutEstimate
	decode(t, w, &got)
	// 80 kg × MET 3.8 × 1 h
	if got.CaloriesBurned != 304 || got.Method != methodMET {
		t.Errorf("unexpected estimate %+v", got)
	}
	if len(store.workouts) != 0 {
		t.Error("estimate must not store a workout")
	}
}

func TestGetWorkouts(t *testing.T) {
	router, store := setupTest(t, nil)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	store.workouts = []workoutRow{
		{ID: 1, UserID: testUserID, LoggedAt: day.Add(7 * time.Hour), ExerciseType: "cardio", DurationMinutes: 30, CaloriesBurned: 280},
		{ID: 2, UserID: testUserID, LoggedAt: day.Add(19 * time.Hour), ExerciseType: "strength", DurationMinutes: 40, CaloriesBurned: 220},
		{ID: 3, UserID: testUserID, LoggedAt: day.Add(-time.Hour), ExerciseType: "walking", DurationMinutes: 20, CaloriesBurned: 90},
	}

	w := doRequest(router, "GET", "/api/workouts?date=2026-03-10", "")
	expectStatus(t, w, http.StatusOK)

	var resp struct {
		Items          []workoutRow `json:"items"`
		CaloriesBurned int          `json:"calories_burned"`
	}
	decode(t, w, &resp)
	if len(resp.Items) != 2 || resp.CaloriesBurned != 500 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestDeleteWorkout(t *testing.T) {
	router, store := setupTest(t, nil)
	store.workouts = []workoutRow{{ID: 3, UserID: testUserID, LoggedAt: testNow, ExerciseType: "cardio", CaloriesBurned: 100}}

	expectStatus(t, doRequest(router, "DELETE", "/api/workouts/3", ""), http.StatusNoContent)
	expectStatus(t, doRequest(router, "DELETE", "/api/workouts/3", ""), http.StatusNotFound)
	expectStatus(t, doRequest(router, "DELETE", "/api/workouts/x", ""), http.StatusBadRequest)
}

func TestGetExerciseCatalog_Public(t *testing.T) {
	router, _ := setupTest(t, nil)

	w := doRequestAs(router, "", "GET", "/api/exercise-catalog", "")
	expectStatus(t, w, http.StatusOK)

	var got []health.CatalogExercise
	decode(t, w, &got)
	if len(got) != len(health.DefaultCatalog) || got[0] != health.DefaultCatalog[0] {
		t.Errorf("unexpected catalog %+v", got)
	}
}
