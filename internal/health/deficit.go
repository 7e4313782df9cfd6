package health

import "math"

// KcalPerKgFat is the energy content of one kilogram of body fat.
const KcalPerKgFat = 7700.0

// BuildDeficitPlan turns a daily deficit and the share of it to be burned
// through exercise into daily and weekly targets. The workout share is rounded
// to a whole calorie (never above the deficit) and the diet share takes the
// rest, so WorkoutCalories + DietCalories == DailyDeficitCalories exactly.
// The split is clamped to [0, 100].
func BuildDeficitPlan(dailyDeficit, workoutSplitPercent, tdee float64) DeficitPlan {
	daily := dailyDeficit
	split := Clamp(workoutSplitPercent, 0, 100)

	workout := math.Min(Round(daily*split/100), daily)
	weekly := daily * 7

	return DeficitPlan{
		DailyDeficitCalories:  daily,
		WorkoutSplitPercent:   split,
		WeeklyDeficitCalories: weekly,
		WorkoutCalories:       workout,
		DietCalories:          daily - workout,
		TargetCalories:        Round(ComputeRecommendedCalories(tdee, daily)),
		WeeklyWeightLossKg:    Round1(weekly / KcalPerKgFat),
	}
}
