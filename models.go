package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan date expressions
// such as MIN(logged_at)::date. NULL zeroes the time.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Rows ───────────────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// profileRow maps to profiles: the biometric snapshot plus the deficit choice.
type profileRow struct {
	UserID              int        `json:"-"                     db:"user_id"`
	Age                 int        `json:"age"                   db:"age"`
	Sex                 string     `json:"sex"                   db:"sex"`
	HeightCm            float64    `json:"height_cm"             db:"height_cm"`
	WeightKg            float64    `json:"weight_kg"             db:"weight_kg"`
	BodyFatPercent      *float64   `json:"body_fat_percent"      db:"body_fat_percent"`
	ActivityLevel       string     `json:"activity_level"        db:"activity_level"`
	TargetWeightKg      *float64   `json:"target_weight_kg"      db:"target_weight_kg"`
	DailyDeficit        float64    `json:"daily_deficit"         db:"daily_deficit"`
	WorkoutSplitPercent float64    `json:"workout_split_percent" db:"workout_split_percent"`
	UpdatedAt           *time.Time `json:"updated_at"            db:"updated_at"`
}

func (p profileRow) health() health.Profile {
	return health.Profile{
		Age:            p.Age,
		Sex:            health.Sex(p.Sex),
		HeightCm:       p.HeightCm,
		WeightKg:       p.WeightKg,
		BodyFatPercent: p.BodyFatPercent,
		ActivityLevel:  health.ActivityLevel(p.ActivityLevel),
		TargetWeightKg: p.TargetWeightKg,
	}
}

// mealRow maps to meal_log.
type mealRow struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"-"          db:"user_id"`
	LoggedAt  time.Time  `json:"logged_at"  db:"logged_at"`
	FoodLabel string     `json:"food_label" db:"food_label"`
	Calories  float64    `json:"calories"   db:"calories"`
	ProteinG  float64    `json:"protein_g"  db:"protein_g"`
	CarbsG    float64    `json:"carbs_g"    db:"carbs_g"`
	FatG      float64    `json:"fat_g"      db:"fat_g"`
	FiberG    float64    `json:"fiber_g"    db:"fiber_g"`
	MealType  string     `json:"meal_type"  db:"meal_type"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

func (m mealRow) entry() health.MealLogEntry {
	return health.MealLogEntry{
		Timestamp:    m.LoggedAt,
		FoodLabel:    m.FoodLabel,
		Calories:     m.Calories,
		ProteinGrams: m.ProteinG,
		CarbsGrams:   m.CarbsG,
		FatGrams:     m.FatG,
		FiberGrams:   m.FiberG,
		MealType:     health.MealType(m.MealType),
	}
}

// workoutRow maps to workout_log. Sets is JSONB and NULL for untimed or
// unstructured workouts.
type workoutRow struct {
	ID                 int                 `json:"id"                  db:"id"`
	UserID             int                 `json:"-"                   db:"user_id"`
	LoggedAt           time.Time           `json:"logged_at"           db:"logged_at"`
	ExerciseType       string              `json:"exercise_type"       db:"exercise_type"`
	CatalogID          *string             `json:"catalog_id"          db:"catalog_id"`
	DurationMinutes    float64             `json:"duration_minutes"    db:"duration_minutes"`
	Intensity          *string             `json:"intensity"           db:"intensity"`
	Sets               []health.WorkoutSet `json:"sets"                db:"sets"`
	CaloriesBurned     int                 `json:"calories_burned"     db:"calories_burned"`
	CaloriesOverridden bool                `json:"calories_overridden" db:"calories_overridden"`
	CreatedAt          *time.Time          `json:"created_at"          db:"created_at"`
}

func (w workoutRow) entry() health.WorkoutLogEntry {
	e := health.WorkoutLogEntry{
		Timestamp:       w.LoggedAt,
		ExerciseType:    health.ExerciseType(w.ExerciseType),
		DurationMinutes: w.DurationMinutes,
		Sets:            w.Sets,
		CaloriesBurned:  float64(w.CaloriesBurned),
	}
	if w.Intensity != nil {
		e.Intensity = health.Intensity(*w.Intensity)
	}
	return e
}

// waterRow maps to water_log.
type waterRow struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"-"          db:"user_id"`
	LoggedAt  time.Time  `json:"logged_at"  db:"logged_at"`
	AmountMl  int        `json:"amount_ml"  db:"amount_ml"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

func (w waterRow) entry() health.WaterLogEntry {
	return health.WaterLogEntry{Timestamp: w.LoggedAt, AmountMl: float64(w.AmountMl)}
}

func mealEntries(rows []mealRow) []health.MealLogEntry {
	out := make([]health.MealLogEntry, len(rows))
	for i, r := range rows {
		out[i] = r.entry()
	}
	return out
}

func workoutEntries(rows []workoutRow) []health.WorkoutLogEntry {
	out := make([]health.WorkoutLogEntry, len(rows))
	for i, r := range rows {
		out[i] = r.entry()
	}
	return out
}

func waterEntries(rows []waterRow) []health.WaterLogEntry {
	out := make([]health.WaterLogEntry, len(rows))
	for i, r := range rows {
		out[i] = r.entry()
	}
	return out
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// profileRequest is the body for PUT /api/profile. Biometrics are checked by
// health.ValidateProfile; the deficit choice by health.ValidateDeficitChoice.
type profileRequest struct {
	health.Profile
	DailyDeficit        *float64 `json:"daily_deficit"`
	WorkoutSplitPercent *float64 `json:"workout_split_percent"`
}

// patchProfileRequest is the body for PATCH /api/profile. Only non-nil fields
// change; the merged profile is validated as a whole.
type patchProfileRequest struct {
	Age                 *int     `json:"age"`
	Sex                 *string  `json:"sex"`
	HeightCm            *float64 `json:"height_cm"`
	WeightKg            *float64 `json:"weight_kg"`
	BodyFatPercent      *float64 `json:"body_fat_percent"`
	ActivityLevel       *string  `json:"activity_level"`
	TargetWeightKg      *float64 `json:"target_weight_kg"`
	DailyDeficit        *float64 `json:"daily_deficit"`
	WorkoutSplitPercent *float64 `json:"workout_split_percent"`
}

// createMealRequest is the body for POST /api/meals. LoggedAt wins over Date;
// with neither the entry is stamped with the current time.
type createMealRequest struct {
	LoggedAt  *time.Time `json:"logged_at"`
	Date      *DateOnly  `json:"date"`
	FoodLabel string     `json:"food_label" binding:"required,max=200"`
	Calories  float64    `json:"calories"   binding:"gte=0,lte=20000"`
	ProteinG  float64    `json:"protein_g"  binding:"gte=0"`
	CarbsG    float64    `json:"carbs_g"    binding:"gte=0"`
	FatG      float64    `json:"fat_g"      binding:"gte=0"`
	FiberG    float64    `json:"fiber_g"    binding:"gte=0"`
	MealType  string     `json:"meal_type"  binding:"omitempty,oneof=cafe lunch dinner other"`
}

// workoutRequest is the body for POST /api/workouts and /api/workouts/estimate.
// Either CatalogID or ExerciseType selects the estimation model.
type workoutRequest struct {
	LoggedAt         *time.Time          `json:"logged_at"`
	Date             *DateOnly           `json:"date"`
	ExerciseType     string              `json:"exercise_type"     binding:"omitempty,oneof=cardio strength hiit flexibility sports walking"`
	CatalogID        string              `json:"catalog_id"`
	DurationMinutes  float64             `json:"duration_minutes"  binding:"gte=0,lte=1440"`
	Intensity        string              `json:"intensity"         binding:"omitempty,oneof=light moderate vigorous maximum"`
	Reps             int                 `json:"reps"              binding:"gte=0"`
	Sets             []health.WorkoutSet `json:"sets"`
	CaloriesOverride *float64            `json:"calories_override" binding:"omitempty,gte=0,lte=10000"`
}

// createWaterRequest is the body for POST /api/water.
type createWaterRequest struct {
	LoggedAt *time.Time `json:"logged_at"`
	Date     *DateOnly  `json:"date"`
	AmountMl int        `json:"amount_ml" binding:"required,gt=0,lte=5000"`
}

/* ─── Responses ──────────────────────────────────────────────────────── */

// profileResponse is GET/PUT /api/profile: the stored row plus everything
// derived from it.
type profileResponse struct {
	Profile         profileRow           `json:"profile"`
	Targets         health.EnergyTargets `json:"targets"`
	Plan            health.DeficitPlan   `json:"plan"`
	HydrationGoalMl float64              `json:"hydration_goal_ml"`
}

// workoutEstimate is the estimation result shared by the estimate and create
// endpoints.
type workoutEstimate struct {
	Method             string  `json:"method"`
	ExerciseType       string  `json:"exercise_type"`
	Intensity          string  `json:"intensity,omitempty"`
	EstimatedCalories  float64 `json:"estimated_calories"`
	CaloriesBurned     float64 `json:"calories_burned"`
	CaloriesOverridden bool    `json:"calories_overridden"`
}

// waterDay is GET /api/water.
type waterDay struct {
	Date            string     `json:"date"`
	Entries         []waterRow `json:"entries"`
	TotalMl         int        `json:"total_ml"`
	GoalMl          float64    `json:"goal_ml"`
	ProgressPercent float64    `json:"progress_percent"`
}
