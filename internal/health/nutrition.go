package health

import "fmt"

// NutritionTotals is one day of logged nutrition plus the calorie target it is
// judged against.
type NutritionTotals struct {
	ConsumedCalories float64 `json:"consumed_calories"`
	TargetCalories   float64 `json:"target_calories"`
	ProteinGrams     float64 `json:"protein_g"`
	CarbsGrams       float64 `json:"carbs_g"`
	FatGrams         float64 `json:"fat_g"`
	FiberGrams       float64 `json:"fiber_g"`
	MealsLogged      int     `json:"meals_logged"`
}

// MacroBreakdown is each macro's share of the calories the macros contribute.
type MacroBreakdown struct {
	ProteinPercent  float64 `json:"protein_percent"`
	CarbsPercent    float64 `json:"carbs_percent"`
	FatPercent      float64 `json:"fat_percent"`
	ProteinCalories float64 `json:"protein_calories"`
	CarbsCalories   float64 `json:"carbs_calories"`
	FatCalories     float64 `json:"fat_calories"`
}

// NutritionDetails is the structured extra on a nutrition analysis.
type NutritionDetails struct {
	CalorieStatus  string         `json:"calorie_status"`
	CaloriePercent int            `json:"calorie_percent"`
	MacroBreakdown MacroBreakdown `json:"macro_breakdown"`
	FiberGrams     float64        `json:"fiber_g"`
	FiberTarget    float64        `json:"fiber_target_g"`
	MealsLogged    int            `json:"meals_logged"`
}

const (
	CalorieStatusLow     = "low"
	CalorieStatusGood    = "good"
	CalorieStatusHigh    = "high"
	CalorieStatusUnknown = "unknown"

	nutritionBaseScore = 85

	calorieLowRatio  = 0.8
	calorieHighRatio = 1.2

	// fiberLowGrams is 60% of the daily fiber target.
	fiberLowGrams = 0.6 * FiberTargetGrams
)

// nutritionFacts is the rule-table input: the raw totals plus derived shares.
type nutritionFacts struct {
	NutritionTotals
	status string
	macros MacroBreakdown
}

// ComputeMacroBreakdown converts grams to calorie shares. With no macro
// calories at all every share is 0.
func ComputeMacroBreakdown(proteinG, carbsG, fatG float64) MacroBreakdown {
	b := MacroBreakdown{
		ProteinCalories: proteinG * kcalPerGramProtein,
		CarbsCalories:   carbsG * kcalPerGramCarbs,
		FatCalories:     fatG * kcalPerGramFat,
	}
	total := b.ProteinCalories + b.CarbsCalories + b.FatCalories
	b.ProteinPercent = 100 * SafeDiv(b.ProteinCalories, total)
	b.CarbsPercent = 100 * SafeDiv(b.CarbsCalories, total)
	b.FatPercent = 100 * SafeDiv(b.FatCalories, total)
	return b
}

// CalorieStatus classifies consumed against target. Without a positive target
// there is nothing to compare to and the status is "unknown".
func CalorieStatus(consumed, target float64) string {
	if target <= 0 {
		return CalorieStatusUnknown
	}
	switch {
	case consumed < calorieLowRatio*target:
		return CalorieStatusLow
	case consumed > calorieHighRatio*target:
		return CalorieStatusHigh
	default:
		return CalorieStatusGood
	}
}

// nutritionRules is evaluated top to bottom: calories, macros, fiber, meal
// frequency. Tip order follows this table.
var nutritionRules = []rule[nutritionFacts]{
	{
		name:   "calories_low",
		delta:  -10,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.status == CalorieStatusLow },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("You've eaten %.0f of %.0f kcal today. Add a balanced meal or snack so you don't under-fuel.", f.ConsumedCalories, f.TargetCalories)
		},
	},
	{
		name:   "calories_high",
		delta:  -8,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.status == CalorieStatusHigh },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("You're at %.0f kcal, above your %.0f kcal target. Lean on vegetables and lighter meals for the rest of the day.", f.ConsumedCalories, f.TargetCalories)
		},
	},
	{
		name:   "calories_good",
		delta:  5,
		kind:   kindInsight,
		when:   func(f nutritionFacts) bool { return f.status == CalorieStatusGood },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Calories are on target at %.0f%% of your goal.", 100*SafeDiv(f.ConsumedCalories, f.TargetCalories))
		},
	},
	{
		name:   "protein_low",
		delta:  -8,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.macros.ProteinPercent < 15 },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Protein is only %.0f%% of your calories. Add lean meat, fish, eggs, legumes or Greek yogurt.", f.macros.ProteinPercent)
		},
	},
	{
		name:   "protein_high",
		delta:  -5,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.macros.ProteinPercent > 35 },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Protein is %.0f%% of your calories. Balance it with whole grains, fruit and vegetables.", f.macros.ProteinPercent)
		},
	},
	{
		name:   "protein_balanced",
		delta:  3,
		kind:   kindInsight,
		when:   func(f nutritionFacts) bool { return f.macros.ProteinPercent >= 15 && f.macros.ProteinPercent <= 35 },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Protein at %.0f%% of calories is right in the 15-35%% range.", f.macros.ProteinPercent)
		},
	},
	{
		name:   "carbs_low",
		delta:  -6,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.macros.CarbsPercent < 25 },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Carbs are only %.0f%% of calories. Whole grains, fruit and starchy vegetables fuel your workouts.", f.macros.CarbsPercent)
		},
	},
	{
		name:   "carbs_high",
		delta:  -4,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.macros.CarbsPercent > 65 },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Carbs make up %.0f%% of calories. Swap some refined carbs for protein or healthy fats.", f.macros.CarbsPercent)
		},
	},
	{
		name:   "fat_low",
		delta:  -7,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.macros.FatPercent < 20 },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Fat is only %.0f%% of calories. Nuts, olive oil and avocado support hormone health.", f.macros.FatPercent)
		},
	},
	{
		name:   "fat_high",
		delta:  -6,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.macros.FatPercent > 40 },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Fat is %.0f%% of calories. Pick leaner proteins and cook with less oil.", f.macros.FatPercent)
		},
	},
	{
		name:   "fiber_low",
		delta:  -8,
		kind:   kindTip,
		when:   func(f nutritionFacts) bool { return f.FiberGrams < fiberLowGrams },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Only %.0fg of fiber so far. Aim for %.0fg with vegetables, berries, oats and beans.", f.FiberGrams, FiberTargetGrams)
		},
	},
	{
		name:   "fiber_met",
		delta:  3,
		kind:   kindInsight,
		when:   func(f nutritionFacts) bool { return f.FiberGrams >= FiberTargetGrams },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("Great fiber intake: %.0fg reached the %.0fg goal.", f.FiberGrams, FiberTargetGrams)
		},
	},
	{
		name:  "meals_few",
		delta: -5,
		kind:  kindTip,
		when:  func(f nutritionFacts) bool { return f.MealsLogged < 2 },
		text:  "Log at least 2-3 meals a day. Regular meals keep energy and appetite steady.",
	},
	{
		name:   "meals_regular",
		delta:  2,
		kind:   kindInsight,
		when:   func(f nutritionFacts) bool { return f.MealsLogged >= 4 },
		textFn: func(f nutritionFacts) string {
			return fmt.Sprintf("%d meals logged today. Consistent tracking pays off.", f.MealsLogged)
		},
	},
}

// AnalyzeNutrition scores one day of nutrition against its calorie target.
func AnalyzeNutrition(t NutritionTotals) AnalysisResult {
	facts := nutritionFacts{
		NutritionTotals: t,
		status:          CalorieStatus(t.ConsumedCalories, t.TargetCalories),
		macros:          ComputeMacroBreakdown(t.ProteinGrams, t.CarbsGrams, t.FatGrams),
	}
	out := evaluateRules(nutritionBaseScore, nutritionRules, facts)

	res := newResult(out.score, out.tips, out.insights)
	res.Nutrition = &NutritionDetails{
		CalorieStatus:  facts.status,
		CaloriePercent: progressPercent(t.ConsumedCalories, t.TargetCalories),
		MacroBreakdown: roundBreakdown(facts.macros),
		FiberGrams:     t.FiberGrams,
		FiberTarget:    FiberTargetGrams,
		MealsLogged:    t.MealsLogged,
	}
	return res
}

func roundBreakdown(b MacroBreakdown) MacroBreakdown {
	return MacroBreakdown{
		ProteinPercent:  Round1(b.ProteinPercent),
		CarbsPercent:    Round1(b.CarbsPercent),
		FatPercent:      Round1(b.FatPercent),
		ProteinCalories: Round(b.ProteinCalories),
		CarbsCalories:   Round(b.CarbsCalories),
		FatCalories:     Round(b.FatCalories),
	}
}
