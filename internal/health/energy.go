package health

// activityMultipliers maps activity levels to their TDEE multiplier. This is
// also the catalog model's activity multiplier table.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

const (
	// FiberTargetGrams is the daily fiber goal; it does not scale with calories.
	FiberTargetGrams = 25.0

	proteinCalorieShare = 0.30
	carbsCalorieShare   = 0.45
	fatCalorieShare     = 0.25

	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// Macros is a protein/carbs/fat split in grams.
type Macros struct {
	ProteinGrams float64 `json:"protein_g"`
	CarbsGrams   float64 `json:"carbs_g"`
	FatGrams     float64 `json:"fat_g"`
}

// ActivityMultiplier returns the TDEE multiplier for level. Unknown levels get
// the sedentary multiplier so the caller always has something to render.
func ActivityMultiplier(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[ActivitySedentary]
}

// ValidActivityLevel reports whether level is one of the known levels.
func ValidActivityLevel(level ActivityLevel) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// ComputeBMR estimates basal metabolic rate in kcal/day via Mifflin-St Jeor.
// Implausible inputs are not clamped; a negative result is passed through.
func ComputeBMR(sex Sex, weightKg, heightCm float64, age int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// ComputeTDEE scales bmr by the activity multiplier.
func ComputeTDEE(bmr float64, level ActivityLevel) float64 {
	return bmr * ActivityMultiplier(level)
}

// ComputeRecommendedCalories is tdee minus the chosen daily deficit. It can go
// negative for extreme inputs; warning the user is the caller's job.
func ComputeRecommendedCalories(tdee, dailyDeficit float64) float64 {
	return tdee - dailyDeficit
}

// ComputeMacros splits dailyCalories 30/45/25 across protein, carbs and fat.
// Grams keep one decimal so the split sums back to within a few kcal of the
// input.
func ComputeMacros(dailyCalories float64) Macros {
	return Macros{
		ProteinGrams: Round1(dailyCalories * proteinCalorieShare / kcalPerGramProtein),
		CarbsGrams:   Round1(dailyCalories * carbsCalorieShare / kcalPerGramCarbs),
		FatGrams:     Round1(dailyCalories * fatCalorieShare / kcalPerGramFat),
	}
}

// ComputeEnergyTargets derives the full energy budget for p with the given
// daily deficit. The chain runs on unrounded values; only the reported
// calorie figures are rounded to whole kcal.
func ComputeEnergyTargets(p Profile, dailyDeficit float64) EnergyTargets {
	bmr := ComputeBMR(p.Sex, p.WeightKg, p.HeightCm, p.Age)
	tdee := ComputeTDEE(bmr, p.ActivityLevel)
	recommended := Round(ComputeRecommendedCalories(tdee, dailyDeficit))
	m := ComputeMacros(recommended)

	return EnergyTargets{
		BMR:                 Round(bmr),
		TDEE:                Round(tdee),
		RecommendedCalories: recommended,
		ProteinGrams:        m.ProteinGrams,
		CarbsGrams:          m.CarbsGrams,
		FatGrams:            m.FatGrams,
		FiberGrams:          FiberTargetGrams,
	}
}
