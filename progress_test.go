package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// dayAt is hour o'clock UTC, daysAgo days before the test clock's date.
func dayAt(daysAgo, hour int) time.Time {
	return time.Date(2026, 3, 10-daysAgo, hour, 0, 0, 0, time.UTC)
}

func TestGetDailyProgress(t *testing.T) {
	router, store := setupTest(t, nil)
	store.profiles[testUserID] = moderateMale()
	store.meals = []mealRow{
		{ID: 1, UserID: testUserID, LoggedAt: dayAt(0, 8), FoodLabel: "Breakfast", Calories: 600, MealType: "cafe"},
		{ID: 2, UserID: testUserID, LoggedAt: dayAt(0, 13), FoodLabel: "Lunch", Calories: 900, MealType: "lunch"},
		{ID: 3, UserID: testUserID, LoggedAt: dayAt(1, 13), FoodLabel: "Yesterday", Calories: 2500, MealType: "lunch"},
	}
	store.workouts = []workoutRow{
		{ID: 4, UserID: testUserID, LoggedAt: dayAt(0, 7), ExerciseType: "cardio", DurationMinutes: 30, CaloriesBurned: 300},
	}

	w := doRequest(router, "GET", "/api/progress/daily", "")
	expectStatus(t, w, http.StatusOK)

	var resp struct {
		Progress health.DailyProgress `json:"progress"`
		Plan     health.DeficitPlan   `json:"plan"`
	}
	decode(t, w, &resp)
	p := resp.Progress
	// (2259 + 300) - 1500 = 1059 against a 500 kcal plan; 300 of 200 workout kcal.
	if p.Date != "2026-03-10" || p.CaloriesConsumed != 1500 || p.CaloriesBurned != 300 {
		t.Errorf("unexpected totals %+v", p)
	}
	if p.CurrentDeficit != 1059 || p.DailyDeficitProgressPercent != 212 || p.WorkoutProgressPercent != 150 {
		t.Errorf("unexpected progress %+v", p)
	}
	if resp.Plan.DailyDeficitCalories != 500 {
		t.Errorf("unexpected plan %+v", resp.Plan)
	}
}

func TestGetWeeklyProgress(t *testing.T) {
	router, store := setupTest(t, nil)
	store.profiles[testUserID] = moderateMale()
	store.meals = []mealRow{
		{ID: 1, UserID: testUserID, LoggedAt: dayAt(0, 12), FoodLabel: "a", Calories: 1759, MealType: "lunch"},
		{ID: 2, UserID: testUserID, LoggedAt: dayAt(3, 12), FoodLabel: "b", Calories: 3000, MealType: "lunch"},
		{ID: 3, UserID: testUserID, LoggedAt: dayAt(7, 12), FoodLabel: "outside window", Calories: 100, MealType: "lunch"},
	}

	w := doRequest(router, "GET", "/api/progress/weekly?date=2026-03-10", "")
	expectStatus(t, w, http.StatusOK)

	var resp struct {
		Progress health.WindowProgress `json:"progress"`
	}
	decode(t, w, &resp)
	got := resp.Progress
	if got.WindowDays != 7 || len(got.Days) != 7 || got.Days[0].Date != "2026-03-04" || got.Days[6].Date != "2026-03-10" {
		t.Fatalf("unexpected window %+v", got)
	}
	// Day 0 earns 500, the surplus day earns nothing rather than subtracting.
	if got.ActiveDays != 2 || got.TotalConsumed != 4759 || got.DeficitAchieved != 500 || got.DeficitTarget != 3500 {
		t.Errorf("unexpected aggregate %+v", got)
	}
	if got.DeficitProgressPercent != 14 {
		t.Errorf("expected 14%%, got %d", got.DeficitProgressPercent)
	}
}

func TestGetMonthlyProgress(t *testing.T) {
	router, store := setupTest(t, nil)
	store.profiles[testUserID] = moderateMale()

	w := doRequest(router, "GET", "/api/progress/monthly?date=2026-03-10", "")
	expectStatus(t, w, http.StatusOK)

	var resp struct {
		Progress health.WindowProgress `json:"progress"`
	}
	decode(t, w, &resp)
	if resp.Progress.WindowDays != 30 || resp.Progress.Days[0].Date != "2026-02-09" || resp.Progress.DeficitProgressPercent != 0 {
		t.Errorf("unexpected monthly window %+v", resp.Progress)
	}
}

func TestGetStreak(t *testing.T) {
	router, store := setupTest(t, nil)
	// No profile needed.
	store.water = []waterRow{{ID: 1, UserID: testUserID, LoggedAt: dayAt(0, 9), AmountMl: 250}}
	store.meals = []mealRow{
		{ID: 2, UserID: testUserID, LoggedAt: dayAt(1, 12), FoodLabel: "a", Calories: 500, MealType: "lunch"},
		{ID: 3, UserID: testUserID, LoggedAt: dayAt(3, 12), FoodLabel: "b", Calories: 500, MealType: "lunch"},
	}
	store.workouts = []workoutRow{{ID: 4, UserID: testUserID, LoggedAt: dayAt(2, 18), ExerciseType: "walking", CaloriesBurned: 90}}

	tests := []struct {
		date string
		want int
	}{
		{"2026-03-10", 4},
		{"2026-03-11", 4}, // nothing logged yet on the 11th
		{"2026-03-12", 0},
		{"2026-03-08", 2},
	}
	for _, tc := range tests {
		t.Run(tc.date, func(t *testing.T) {
			w := doRequest(router, "GET", "/api/progress/streak?date="+tc.date, "")
			expectStatus(t, w, http.StatusOK)
			var resp struct {
				Streak int `json:"streak"`
			}
			decode(t, w, &resp)
			if resp.Streak != tc.want {
				t.Errorf("expected streak %d, got %d", tc.want, resp.Streak)
			}
		})
	}
}

func TestGetEarliestLogDate(t *testing.T) {
	router, store := setupTest(t, nil)

	w := doRequest(router, "GET", "/api/progress/earliest-date", "")
	expectStatus(t, w, http.StatusOK)
	if got := w.Body.String(); got != `{"earliest_date":null}` {
		t.Errorf("expected null date, got %s", got)
	}

	store.water = []waterRow{{ID: 1, UserID: testUserID, LoggedAt: dayAt(5, 9), AmountMl: 250}}
	store.meals = []mealRow{{ID: 2, UserID: testUserID, LoggedAt: dayAt(2, 9), FoodLabel: "a", Calories: 1, MealType: "other"}}

	w = doRequest(router, "GET", "/api/progress/earliest-date", "")
	expectStatus(t, w, http.StatusOK)
	if got := w.Body.String(); got != `{"earliest_date":"2026-03-05"}` {
		t.Errorf("unexpected body %s", got)
	}
}
