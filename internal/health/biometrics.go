package health

import (
	"fmt"
	"math"
)

// RiskFactor is one flagged health risk.
type RiskFactor struct {
	Factor string `json:"factor"`
	Level  string `json:"level"`
}

// Goal is a prioritized target suggested from the biometric thresholds.
type Goal struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// BiometricDetails is the structured extra on a biometric analysis.
type BiometricDetails struct {
	BMI              float64      `json:"bmi"`
	BMICategory      string       `json:"bmi_category"`
	BodyFatPercent   *float64     `json:"body_fat_percent,omitempty"`
	BodyFatCategory  string       `json:"body_fat_category,omitempty"`
	BodyFatPoor      bool         `json:"body_fat_poor,omitempty"`
	IdealWeightMinKg float64      `json:"ideal_weight_min_kg"`
	IdealWeightMaxKg float64      `json:"ideal_weight_max_kg"`
	MetabolicAge     int          `json:"metabolic_age"`
	RiskFactors      []RiskFactor `json:"risk_factors"`
	Goals            []Goal       `json:"goals"`
}

const (
	biometricBaseScore = 85

	RiskModerate = "Moderate"
	RiskHigh     = "High"

	BodyFatEssential    = "essential"
	BodyFatAthletic     = "athletic"
	BodyFatFitness      = "fitness"
	BodyFatAverage      = "average"
	BodyFatAboveAverage = "above_average"

	maxGoals = 3
)

/* ─── BMI ────────────────────────────────────────────────────────────── */

// bmiBand is one step of the BMI ladder; the first band whose below bound the
// BMI is under wins.
type bmiBand struct {
	below           float64
	category        string
	delta           int
	recommendations []string
}

var bmiBands = []bmiBand{
	{16, "Severely Underweight", -25, []string{
		"Your BMI is in a range that needs medical attention. Please talk to a doctor or registered dietitian.",
		"Increase calories gradually with nutrient-dense foods.",
	}},
	{18.5, "Underweight", -15, []string{
		"Add a 300-500 kcal daily surplus from nutrient-dense foods.",
		"Pair strength training with extra protein to build lean mass.",
	}},
	{25, "Normal", 15, []string{
		"Keep up balanced eating and regular activity to maintain a healthy weight.",
	}},
	{30, "Overweight", -10, []string{
		"A moderate 300-500 kcal daily deficit supports steady fat loss.",
		"Aim for at least 150 minutes of activity per week.",
	}},
	{35, "Obesity Class I", -20, []string{
		"Work toward a sustainable deficit and log your meals every day.",
		"Combine cardio with strength training 3-4 times per week.",
	}},
	{40, "Obesity Class II", -30, []string{
		"Consider a supervised weight-management plan with a healthcare provider.",
		"Start with low-impact activity such as walking or swimming.",
	}},
	{math.Inf(1), "Obesity Class III", -35, []string{
		"Please consult a healthcare provider about a medically supervised plan.",
		"Begin with gentle, low-impact movement every day.",
	}},
}

// ComputeBMI is weight over height in metres squared; 0 without a height.
func ComputeBMI(weightKg, heightCm float64) float64 {
	h := CmToM(heightCm)
	return SafeDiv(weightKg, h*h)
}

func bmiBandFor(bmi float64) bmiBand {
	for _, b := range bmiBands {
		if bmi < b.below {
			return b
		}
	}
	return bmiBands[len(bmiBands)-1]
}

// IdealWeightRange is the weight span that keeps BMI within 18.5-24.9.
func IdealWeightRange(heightCm float64) (minKg, maxKg float64) {
	h := CmToM(heightCm)
	return Round1(18.5 * h * h), Round1(24.9 * h * h)
}

/* ─── Body fat ───────────────────────────────────────────────────────── */

type bodyFatBand struct {
	below    float64
	category string
	delta    int
	poor     bool
}

// Upper bounds are exclusive; anything past the last bound is above average.
var (
	maleBodyFatBands = []bodyFatBand{
		{2, BodyFatEssential, -20, true},
		{6, BodyFatEssential, 10, false},
		{14, BodyFatAthletic, 15, false},
		{18, BodyFatFitness, 10, false},
		{25, BodyFatAverage, 5, false},
	}
	femaleBodyFatBands = []bodyFatBand{
		{10, BodyFatEssential, -20, true},
		{14, BodyFatEssential, 10, false},
		{21, BodyFatAthletic, 15, false},
		{25, BodyFatFitness, 10, false},
		{32, BodyFatAverage, 5, false},
	}
	aboveAverageBand = bodyFatBand{math.Inf(1), BodyFatAboveAverage, -15, false}
)

// averageBodyFat is the midpoint of each sex's average band, the reference
// point for metabolic age.
func averageBodyFat(sex Sex) float64 {
	if sex == SexMale {
		return 21
	}
	return 28
}

// ClassifyBodyFat places pct in the sex-specific band table. poor is set when
// pct is under the essential minimum.
func ClassifyBodyFat(sex Sex, pct float64) (category string, poor bool) {
	b := bodyFatBandFor(sex, pct)
	return b.category, b.poor
}

func bodyFatBandFor(sex Sex, pct float64) bodyFatBand {
	bands := femaleBodyFatBands
	if sex == SexMale {
		bands = maleBodyFatBands
	}
	for _, b := range bands {
		if pct < b.below {
			return b
		}
	}
	return aboveAverageBand
}

var bodyFatAdvice = map[string]string{
	BodyFatEssential:    "Body fat is at essential levels. Make sure you're eating enough to support hormone and organ health.",
	BodyFatAverage:      "Strength training and enough protein will shift your body composition toward the fitness range.",
	BodyFatAboveAverage: "Lowering body fat through diet and regular exercise will reduce your health risks.",
}

const bodyFatBelowMinimumAdvice = "Body fat is below essential levels. Please check in with a healthcare provider."

/* ─── Age ────────────────────────────────────────────────────────────── */

type ageBand struct {
	below  int
	advice []string
}

var ageBands = []ageBand{
	{25, []string{
		"Build a strong foundation now while bone density is still increasing.",
		"Try different sports and activities to find ones you enjoy.",
	}},
	{35, []string{
		"Make strength training a consistent habit to keep your muscle mass.",
		"Protect your recovery with 7-9 hours of sleep a night.",
	}},
	{50, []string{
		"Strength train at least twice a week to offset age-related muscle loss.",
		"Keep up with regular health screenings.",
		"Add mobility work to keep your joints healthy.",
	}},
	{65, []string{
		"Focus on balance, flexibility and joint-friendly cardio.",
		"Keep protein intake high to preserve muscle.",
	}},
	{math.MaxInt, []string{
		"Include balance exercises to reduce fall risk.",
		"Stay active every day with walking, swimming or light resistance work.",
		"Check with your doctor before starting a new training program.",
	}},
}

const boneHealthAdvice = "Support bone health with calcium, vitamin D and weight-bearing exercise."

// AgeAdvice returns the advisory text for age; it never affects the score.
func AgeAdvice(age int, sex Sex) []string {
	var out []string
	for _, b := range ageBands {
		if age < b.below {
			out = append(out, b.advice...)
			break
		}
	}
	if sex == SexFemale && age >= 35 && age < 50 {
		out = append(out, boneHealthAdvice)
	}
	return out
}

// MetabolicAge approximates how old the body "acts" from body fat and BMI,
// kept within [age-10, age+15].
func MetabolicAge(age int, sex Sex, bmi float64, bodyFat *float64) int {
	m := age
	if bodyFat != nil {
		m += int(Round(0.5 * (*bodyFat - averageBodyFat(sex))))
	}
	switch {
	case bmi > 25:
		m += int(Round(0.8 * (bmi - 25)))
	case bmi < 18.5:
		m += int(Round(1.2 * (18.5 - bmi)))
	}
	return clampInt(m, age-10, age+15)
}

/* ─── Analysis ───────────────────────────────────────────────────────── */

// AnalyzeBiometrics scores a profile's BMI and body fat and collects advice,
// risk factors and goals.
func AnalyzeBiometrics(p Profile) AnalysisResult {
	bmi := ComputeBMI(p.WeightKg, p.HeightCm)
	band := bmiBandFor(bmi)

	score := biometricBaseScore + band.delta
	recs := append([]string{}, band.recommendations...)
	var insights []string
	if band.delta > 0 {
		insights = append(insights, fmt.Sprintf("Your BMI of %.1f is in the healthy range.", bmi))
	}

	d := &BiometricDetails{
		BMI:         Round1(bmi),
		BMICategory: band.category,
	}
	d.IdealWeightMinKg, d.IdealWeightMaxKg = IdealWeightRange(p.HeightCm)

	var fat bodyFatBand
	if p.BodyFatPercent != nil {
		pct := *p.BodyFatPercent
		fat = bodyFatBandFor(p.Sex, pct)
		score += fat.delta

		d.BodyFatPercent = &pct
		d.BodyFatCategory = fat.category
		d.BodyFatPoor = fat.poor

		switch {
		case fat.poor:
			recs = append(recs, bodyFatBelowMinimumAdvice)
		case fat.category == BodyFatAthletic || fat.category == BodyFatFitness:
			insights = append(insights, fmt.Sprintf("Body fat of %.1f%% puts you in the %s range.", pct, fat.category))
		default:
			recs = append(recs, bodyFatAdvice[fat.category])
		}
	}

	recs = append(recs, AgeAdvice(p.Age, p.Sex)...)

	d.MetabolicAge = MetabolicAge(p.Age, p.Sex, bmi, p.BodyFatPercent)
	d.RiskFactors = riskFactors(p.Age, bmi, fat.category)

	res := newResult(score, recs, insights)
	d.Goals = biometricGoals(p, bmi, fat.category, d, res.Score)
	res.Biometrics = d
	return res
}

func riskFactors(age int, bmi float64, bodyFatCategory string) []RiskFactor {
	out := []RiskFactor{}
	switch {
	case bmi >= 30:
		out = append(out, RiskFactor{Factor: "High obesity risk", Level: RiskHigh})
	case bmi >= 25:
		out = append(out, RiskFactor{Factor: "Moderate overweight risk", Level: RiskModerate})
	}
	switch {
	case age >= 65:
		out = append(out, RiskFactor{Factor: "Age-related risk", Level: RiskHigh})
	case age >= 45:
		out = append(out, RiskFactor{Factor: "Age-related risk", Level: RiskModerate})
	}
	if bodyFatCategory == BodyFatAboveAverage {
		out = append(out, RiskFactor{Factor: "Elevated body fat", Level: RiskModerate})
	}
	return out
}

// biometricGoals lists at most maxGoals goals in fixed priority order.
func biometricGoals(p Profile, bmi float64, bodyFatCategory string, d *BiometricDetails, score int) []Goal {
	goals := []Goal{}
	add := func(g Goal) {
		if len(goals) < maxGoals {
			g.Priority = len(goals) + 1
			goals = append(goals, g)
		}
	}

	if bmi > 25 {
		add(Goal{
			Type:        "weight_management",
			Title:       "Reach a healthy weight",
			Description: fmt.Sprintf("Work toward %.1f-%.1f kg at about 0.5 kg per week.", d.IdealWeightMinKg, d.IdealWeightMaxKg),
		})
	}
	if bodyFatCategory == BodyFatAverage || bodyFatCategory == BodyFatAboveAverage {
		add(Goal{
			Type:        "body_composition",
			Title:       "Improve body composition",
			Description: "Lift 2-3 times a week and hit your protein target to bring body fat into the fitness range.",
		})
	}
	if p.Age > 35 {
		add(Goal{
			Type:        "strength_maintenance",
			Title:       "Maintain strength",
			Description: "Keep at least two full-body strength sessions in every week.",
		})
	}
	if score < 70 {
		add(Goal{
			Type:        "overall_health",
			Title:       "Improve overall health",
			Description: "Build daily habits around sleep, movement and whole foods.",
		})
	}
	return goals
}
