package health

const (
	// DefaultHydrationGoalMl applies when no body weight is known.
	DefaultHydrationGoalMl = 2000.0

	minHydrationGoalMl = 1500.0
	maxHydrationGoalMl = 4000.0

	// hydrationLbPerKg is the coarse conversion the hydration rule of thumb
	// is stated in.
	hydrationLbPerKg = 2.2
)

var hydrationFactors = map[ActivityLevel]float64{
	ActivitySedentary:  1.0,
	ActivityLight:      1.1,
	ActivityModerate:   1.2,
	ActivityActive:     1.3,
	ActivityVeryActive: 1.4,
}

// HydrationFactor returns the activity factor; unknown levels use 1.0.
func HydrationFactor(level ActivityLevel) float64 {
	if f, ok := hydrationFactors[level]; ok {
		return f
	}
	return 1.0
}

// ComputeHydrationGoalMl is the daily water goal: two thirds of body weight in
// pounds as ounces, scaled by activity, plus 12 oz per 30 estimated workout
// minutes (15 minutes per 100 kcal of the workout target). The result is
// clamped to [1500, 4000] ml.
func ComputeHydrationGoalMl(p *Profile, workoutCalories float64) float64 {
	if p == nil || p.WeightKg <= 0 {
		return DefaultHydrationGoalMl
	}
	weightLb := p.WeightKg * hydrationLbPerKg
	baselineOz := weightLb * 2 / 3 * HydrationFactor(p.ActivityLevel)

	exerciseMinutes := nonNegative(workoutCalories) / 100 * 15
	extraOz := exerciseMinutes / 30 * 12

	ml := Round(OzToMl(baselineOz + extraOz))
	return Clamp(ml, minHydrationGoalMl, maxHydrationGoalMl)
}
