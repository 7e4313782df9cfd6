package health

// referenceWeightKg is the body weight the catalog's per-rep and per-minute
// figures are calibrated for, and the MET model's weight when no profile is
// available.
const referenceWeightKg = 70.0

// defaultCatalogCount is the rep or minute count assumed when none is given.
const defaultCatalogCount = 10.0

// metTable holds MET values by exercise type and intensity.
var metTable = map[ExerciseType]map[Intensity]float64{
	ExerciseCardio:      {IntensityLight: 4.0, IntensityModerate: 7.0, IntensityVigorous: 10.0, IntensityMaximum: 12.5},
	ExerciseStrength:    {IntensityLight: 3.5, IntensityModerate: 5.0, IntensityVigorous: 6.0, IntensityMaximum: 8.0},
	ExerciseHIIT:        {IntensityLight: 6.0, IntensityModerate: 8.0, IntensityVigorous: 12.0, IntensityMaximum: 15.0},
	ExerciseFlexibility: {IntensityLight: 2.5, IntensityModerate: 3.0, IntensityVigorous: 4.0, IntensityMaximum: 5.0},
	ExerciseSports:      {IntensityLight: 4.0, IntensityModerate: 6.0, IntensityVigorous: 8.0, IntensityMaximum: 10.0},
	ExerciseWalking:     {IntensityLight: 3.0, IntensityModerate: 3.8, IntensityVigorous: 5.0, IntensityMaximum: 6.5},
}

// MET looks up the MET value. An unknown type falls back to cardio and an
// unknown intensity to moderate.
func MET(t ExerciseType, i Intensity) float64 {
	row, ok := metTable[t]
	if !ok {
		row = metTable[ExerciseCardio]
	}
	if v, ok := row[i]; ok {
		return v
	}
	return row[IntensityModerate]
}

// ValidExerciseType reports whether t is a MET table row.
func ValidExerciseType(t ExerciseType) bool {
	_, ok := metTable[t]
	return ok
}

// ValidIntensity reports whether i is a MET table column.
func ValidIntensity(i Intensity) bool {
	_, ok := metTable[ExerciseCardio][i]
	return ok
}

// EstimateWorkoutCalories is the MET model: weight × MET × hours, rounded.
// Without a profile the reference weight is used. Negative durations count as
// zero.
func EstimateWorkoutCalories(p *Profile, t ExerciseType, durationMinutes float64, i Intensity) float64 {
	weight := referenceWeightKg
	if p != nil && p.WeightKg > 0 {
		weight = p.WeightKg
	}
	return Round(weight * MET(t, i) * nonNegative(durationMinutes) / 60)
}

/* ─── Catalog model ──────────────────────────────────────────────────── */

// CatalogExercise is an entry of the structured exercise database. Exactly one
// of CaloriesPerRep or CaloriesPerMinute is set.
type CatalogExercise struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Category          ExerciseType `json:"category"`
	CaloriesPerRep    float64      `json:"calories_per_rep,omitempty"`
	CaloriesPerMinute float64      `json:"calories_per_minute,omitempty"`
}

// PerRep reports whether the entry is counted in repetitions.
func (e CatalogExercise) PerRep() bool { return e.CaloriesPerRep > 0 }

// DefaultCatalog is the fixed exercise database.
var DefaultCatalog = []CatalogExercise{
	{ID: "push_ups", Name: "Push-ups", Category: ExerciseStrength, CaloriesPerRep: 0.5},
	{ID: "squats", Name: "Bodyweight Squats", Category: ExerciseStrength, CaloriesPerRep: 0.32},
	{ID: "pull_ups", Name: "Pull-ups", Category: ExerciseStrength, CaloriesPerRep: 1.0},
	{ID: "lunges", Name: "Lunges", Category: ExerciseStrength, CaloriesPerRep: 0.4},
	{ID: "sit_ups", Name: "Sit-ups", Category: ExerciseStrength, CaloriesPerRep: 0.15},
	{ID: "deadlifts", Name: "Deadlifts", Category: ExerciseStrength, CaloriesPerRep: 0.6},
	{ID: "bench_press", Name: "Bench Press", Category: ExerciseStrength, CaloriesPerRep: 0.45},
	{ID: "burpees", Name: "Burpees", Category: ExerciseHIIT, CaloriesPerRep: 1.2},
	{ID: "jumping_jacks", Name: "Jumping Jacks", Category: ExerciseCardio, CaloriesPerRep: 0.2},
	{ID: "running", Name: "Running", Category: ExerciseCardio, CaloriesPerMinute: 11.4},
	{ID: "cycling", Name: "Cycling", Category: ExerciseCardio, CaloriesPerMinute: 8.5},
	{ID: "swimming", Name: "Swimming", Category: ExerciseCardio, CaloriesPerMinute: 9.8},
	{ID: "rowing", Name: "Rowing", Category: ExerciseCardio, CaloriesPerMinute: 8.0},
	{ID: "jump_rope", Name: "Jump Rope", Category: ExerciseHIIT, CaloriesPerMinute: 12.3},
	{ID: "plank", Name: "Plank", Category: ExerciseStrength, CaloriesPerMinute: 4.0},
	{ID: "yoga", Name: "Yoga", Category: ExerciseFlexibility, CaloriesPerMinute: 3.0},
	{ID: "stretching", Name: "Stretching", Category: ExerciseFlexibility, CaloriesPerMinute: 2.5},
	{ID: "brisk_walk", Name: "Brisk Walk", Category: ExerciseWalking, CaloriesPerMinute: 4.5},
	{ID: "basketball", Name: "Basketball", Category: ExerciseSports, CaloriesPerMinute: 8.0},
	{ID: "tennis", Name: "Tennis", Category: ExerciseSports, CaloriesPerMinute: 7.0},
}

var catalogByID = func() map[string]CatalogExercise {
	m := make(map[string]CatalogExercise, len(DefaultCatalog))
	for _, e := range DefaultCatalog {
		m[e.ID] = e
	}
	return m
}()

// LookupCatalogExercise finds a catalog entry by id.
func LookupCatalogExercise(id string) (CatalogExercise, bool) {
	e, ok := catalogByID[id]
	return e, ok
}

// PersonalizationMultiplier scales catalog figures to the user:
// (weight/70) × sex base × age factor × activity multiplier. It is 1 without a
// profile.
func PersonalizationMultiplier(p *Profile) float64 {
	if p == nil {
		return 1
	}
	sexBase := 1.1
	if p.Sex == SexMale {
		sexBase = 1.2
	}
	ageFactor := 1 - float64(p.Age-25)*0.01
	if ageFactor < 0.8 {
		ageFactor = 0.8
	}
	return (p.WeightKg / referenceWeightKg) * sexBase * ageFactor * ActivityMultiplier(p.ActivityLevel)
}

// EstimateCatalogExerciseCalories is the catalog model. repsOrMinutes is reps
// for per-rep entries and minutes otherwise; a non-positive count is replaced
// by the default of 10.
func EstimateCatalogExerciseCalories(p *Profile, e CatalogExercise, repsOrMinutes float64) float64 {
	if repsOrMinutes <= 0 {
		repsOrMinutes = defaultCatalogCount
	}
	base := e.CaloriesPerMinute * repsOrMinutes
	if e.PerRep() {
		base = e.CaloriesPerRep * repsOrMinutes
	}
	return Round(base * PersonalizationMultiplier(p))
}

// TotalReps sums reps across a set list.
func TotalReps(sets []WorkoutSet) int {
	total := 0
	for _, s := range sets {
		if s.Reps > 0 {
			total += s.Reps
		}
	}
	return total
}

// ApplyCaloriesOverride returns the user's manual value when one was given,
// otherwise the estimate.
func ApplyCaloriesOverride(estimated float64, override *float64) float64 {
	if override != nil {
		return *override
	}
	return estimated
}
