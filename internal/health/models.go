// Package health holds the pure health-metrics and recommendation engine:
// energy budgets, deficit plans, progress, rule-based scoring, workout calorie
// estimates and hydration goals. Nothing in this package performs I/O or reads
// the wall clock; callers pass a snapshot of profile and logs and get a fresh
// result back.
package health

import "time"

// Sex selects the sex-specific constants (BMR offset, body-fat bands).
// Anything other than SexMale uses the non-male constants.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// ActivityLevel drives the TDEE multiplier, hydration factor and catalog
// personalization.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// MealType mirrors the meal_type enum on the meal log.
type MealType string

const (
	MealCafe   MealType = "cafe"
	MealLunch  MealType = "lunch"
	MealDinner MealType = "dinner"
	MealOther  MealType = "other"
)

// ExerciseType is a row of the MET table.
type ExerciseType string

const (
	ExerciseCardio      ExerciseType = "cardio"
	ExerciseStrength    ExerciseType = "strength"
	ExerciseHIIT        ExerciseType = "hiit"
	ExerciseFlexibility ExerciseType = "flexibility"
	ExerciseSports      ExerciseType = "sports"
	ExerciseWalking     ExerciseType = "walking"
)

// Intensity is a column of the MET table.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
	IntensityMaximum  Intensity = "maximum"
)

/* ─── Inputs ─────────────────────────────────────────────────────────── */

// Profile is the biometric snapshot the engine works from. Optional fields are
// pointers so "not provided" is distinguishable from zero.
type Profile struct {
	Age            int           `json:"age"              validate:"gte=13,lte=130"`
	Sex            Sex           `json:"sex"              validate:"required,oneof=male female other"`
	HeightCm       float64       `json:"height_cm"        validate:"gt=0,lte=300"`
	WeightKg       float64       `json:"weight_kg"        validate:"gt=0,lte=700"`
	BodyFatPercent *float64      `json:"body_fat_percent" validate:"omitempty,gte=0,lte=75"`
	ActivityLevel  ActivityLevel `json:"activity_level"   validate:"required,oneof=sedentary light moderate active very_active"`
	TargetWeightKg *float64      `json:"target_weight_kg" validate:"omitempty,gt=0,lte=700"`
}

// MealLogEntry is one logged food item.
type MealLogEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	FoodLabel    string    `json:"food_label"`
	Calories     float64   `json:"calories"`
	ProteinGrams float64   `json:"protein_g"`
	CarbsGrams   float64   `json:"carbs_g"`
	FatGrams     float64   `json:"fat_g"`
	FiberGrams   float64   `json:"fiber_g"`
	MealType     MealType  `json:"meal_type"`
}

// WorkoutSet is one set of a structured strength exercise.
type WorkoutSet struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

// WorkoutLogEntry is one logged workout. Either Intensity or Sets describes the
// effort; CaloriesBurned is whatever was stored (estimated or overridden).
type WorkoutLogEntry struct {
	Timestamp       time.Time    `json:"timestamp"`
	ExerciseType    ExerciseType `json:"exercise_type"`
	DurationMinutes float64      `json:"duration_minutes"`
	Intensity       Intensity    `json:"intensity,omitempty"`
	Sets            []WorkoutSet `json:"sets,omitempty"`
	CaloriesBurned  float64      `json:"calories_burned"`
}

// WaterLogEntry is one logged drink.
type WaterLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	AmountMl  float64   `json:"amount_ml"`
}

/* ─── Derived targets ────────────────────────────────────────────────── */

// EnergyTargets is recomputed from a Profile and a deficit choice; it is never
// stored on its own.
type EnergyTargets struct {
	BMR                 float64 `json:"bmr"`
	TDEE                float64 `json:"tdee"`
	RecommendedCalories float64 `json:"recommended_calories"`
	ProteinGrams        float64 `json:"protein_g"`
	CarbsGrams          float64 `json:"carbs_g"`
	FatGrams            float64 `json:"fat_g"`
	FiberGrams          float64 `json:"fiber_g"`
}

// DeficitPlan splits a daily deficit between diet and exercise.
type DeficitPlan struct {
	DailyDeficitCalories  float64 `json:"daily_deficit_calories"`
	WorkoutSplitPercent   float64 `json:"workout_split_percent"`
	WeeklyDeficitCalories float64 `json:"weekly_deficit_calories"`
	WorkoutCalories       float64 `json:"workout_calories"`
	DietCalories          float64 `json:"diet_calories"`
	TargetCalories        float64 `json:"target_calories"`
	WeeklyWeightLossKg    float64 `json:"weekly_weight_loss_kg"`
}
