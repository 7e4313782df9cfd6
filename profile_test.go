package main

import (
	"net/http"
	"testing"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

func TestGetProfile_NotSetUp(t *testing.T) {
	router, _ := setupTest(t, nil)

	for _, path := range []string{"/api/profile", "/api/energy-targets", "/api/progress/daily", "/api/analysis/biometrics", "/api/analysis/nutrition"} {
		w := doRequest(router, "GET", path, "")
		expectError(t, w, http.StatusNotFound, "set up goals first")
	}
}

func TestPutProfile(t *testing.T) {
	router, store := setupTest(t, nil)

	w := doRequest(router, "PUT", "/api/profile",
		`{"age":30,"sex":"male","height_cm":180,"weight_kg":80,"activity_level":"moderate"}`)
	expectStatus(t, w, http.StatusOK)

	var resp profileResponse
	decode(t, w, &resp)
	if resp.Targets.BMR != 1780 || resp.Targets.TDEE != 2759 || resp.Targets.RecommendedCalories != 2259 {
		t.Errorf("unexpected targets %+v", resp.Targets)
	}
	if resp.Plan.WorkoutCalories != 200 || resp.Plan.DietCalories != 300 || resp.Plan.TargetCalories != 2259 {
		t.Errorf("unexpected plan %+v", resp.Plan)
	}
	p := moderateMale().health()
	if want := health.ComputeHydrationGoalMl(&p, 200); resp.HydrationGoalMl != want {
		t.Errorf("expected hydration goal %v, got %v", want, resp.HydrationGoalMl)
	}

	stored := store.profiles[testUserID]
	if stored.DailyDeficit != defaultDailyDeficit || stored.WorkoutSplitPercent != defaultWorkoutSplitPercent {
		t.Errorf("expected default deficit choice, got %+v", stored)
	}
}

func TestPutProfile_KeepsDeficitChoice(t *testing.T) {
	router, store := setupTest(t, nil)
	existing := moderateMale()
	existing.DailyDeficit = 250
	existing.WorkoutSplitPercent = 20
	store.profiles[testUserID] = existing

	w := doRequest(router, "PUT", "/api/profile",
		`{"age":31,"sex":"male","height_cm":180,"weight_kg":78,"activity_level":"active","body_fat_percent":18}`)
	expectStatus(t, w, http.StatusOK)

	stored := store.profiles[testUserID]
	if stored.DailyDeficit != 250 || stored.WorkoutSplitPercent != 20 {
		t.Errorf("deficit choice lost: %+v", stored)
	}
	if stored.Age != 31 || stored.WeightKg != 78 || stored.BodyFatPercent == nil || *stored.BodyFatPercent != 18 {
		t.Errorf("biometrics not replaced: %+v", stored)
	}
}

func TestPutProfile_Invalid(t *testing.T) {
	router, store := setupTest(t, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"too young", `{"age":10,"sex":"male","height_cm":180,"weight_kg":80,"activity_level":"moderate"}`, "Age"},
		{"unknown sex", `{"age":30,"sex":"x","height_cm":180,"weight_kg":80,"activity_level":"moderate"}`, "Sex"},
		{"no activity", `{"age":30,"sex":"female","height_cm":165,"weight_kg":60}`, "ActivityLevel"},
		{"deficit too large", `{"age":30,"sex":"female","height_cm":165,"weight_kg":60,"activity_level":"light","daily_deficit":2000}`, "DailyDeficit"},
		{"split out of range", `{"age":30,"sex":"female","height_cm":165,"weight_kg":60,"activity_level":"light","workout_split_percent":-1}`, "WorkoutSplitPercent"},
		{"not json", `{`, "invalid request body"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, "PUT", "/api/profile", tc.body)
			expectError(t, w, http.StatusBadRequest, tc.want)
		})
	}
	if len(store.profiles) != 0 {
		t.Errorf("invalid profiles must not be stored, got %+v", store.profiles)
	}
}

func TestPatchProfile(t *testing.T) {
	router, store := setupTest(t, nil)
	store.profiles[testUserID] = moderateMale()

	w := doRequest(router, "PATCH", "/api/profile", `{"weight_kg":76.5,"daily_deficit":300}`)
	expectStatus(t, w, http.StatusOK)

	stored := store.profiles[testUserID]
	if stored.WeightKg != 76.5 || stored.DailyDeficit != 300 {
		t.Errorf("patch not applied: %+v", stored)
	}
	if stored.Age != 30 || stored.HeightCm != 180 || stored.ActivityLevel != "moderate" || stored.WorkoutSplitPercent != 40 {
		t.Errorf("untouched fields changed: %+v", stored)
	}

	w = doRequest(router, "PATCH", "/api/profile", `{"age":200}`)
	expectError(t, w, http.StatusBadRequest, "Age")
	if store.profiles[testUserID].Age != 30 {
		t.Error("invalid patch must not be stored")
	}
}

func TestPatchProfile_FirstTimeNeedsEverything(t *testing.T) {
	router, store := setupTest(t, nil)

	w := doRequest(router, "PATCH", "/api/profile", `{"weight_kg":70}`)
	expectStatus(t, w, http.StatusBadRequest)
	if len(store.profiles) != 0 {
		t.Error("incomplete profile must not be stored")
	}
}

func TestGetEnergyTargets(t *testing.T) {
	router, store := setupTest(t, nil)
	store.profiles[testUserID] = moderateMale()

	w := doRequest(router, "GET", "/api/energy-targets", "")
	expectStatus(t, w, http.StatusOK)

	var resp struct {
		Targets health.EnergyTargets `json:"targets"`
		Plan    health.DeficitPlan   `json:"plan"`
	}
	decode(t, w, &resp)
	wantTargets, wantPlan := derive(moderateMale())
	if resp.Targets != wantTargets {
		t.Errorf("targets: got %+v, want %+v", resp.Targets, wantTargets)
	}
	if resp.Plan != wantPlan {
		t.Errorf("plan: got %+v, want %+v", resp.Plan, wantPlan)
	}
	if resp.Plan.WeeklyDeficitCalories != 3500 {
		t.Errorf("expected 3500 weekly deficit, got %v", resp.Plan.WeeklyDeficitCalories)
	}
}
