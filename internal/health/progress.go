package health

import "time"

// DailyProgress is one calendar day measured against the deficit plan.
type DailyProgress struct {
	Date                        string  `json:"date"`
	CaloriesConsumed            float64 `json:"calories_consumed"`
	CaloriesBurned              float64 `json:"calories_burned"`
	NetCalories                 float64 `json:"net_calories"`
	CurrentDeficit              float64 `json:"current_deficit"`
	DailyDeficitProgressPercent int     `json:"daily_deficit_progress_percent"`
	WorkoutProgressPercent      int     `json:"workout_progress_percent"`
	MealsLogged                 int     `json:"meals_logged"`
	WorkoutsLogged              int     `json:"workouts_logged"`
	HasActivity                 bool    `json:"has_activity"`
}

// WindowProgress aggregates a trailing window of days ending on the reference
// date. Days are ordered oldest first.
type WindowProgress struct {
	Days                   []DailyProgress `json:"days"`
	WindowDays             int             `json:"window_days"`
	ActiveDays             int             `json:"active_days"`
	TotalConsumed          float64         `json:"total_consumed"`
	TotalBurned            float64         `json:"total_burned"`
	DeficitAchieved        float64         `json:"deficit_achieved"`
	DeficitTarget          float64         `json:"deficit_target"`
	DeficitProgressPercent int             `json:"deficit_progress_percent"`
}

// dateLayout is the calendar-day key format used throughout the engine.
const dateLayout = "2006-01-02"

// dayKey returns the calendar day of t as seen in loc.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// daysBack returns midnight of the day offset days before ref, in ref's
// location. Building from the civil date keeps DST shifts out of the math.
func daysBack(ref time.Time, offset int) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, ref.Location())
}

// progressPercent is round(100*achieved/target) with the zero-target rule.
func progressPercent(achieved, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(SafePercent(achieved, target))
}

func nonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// dayLogs is the subset of logs that fall on one calendar day.
type dayLogs struct {
	meals    []MealLogEntry
	workouts []WorkoutLogEntry
	water    int
}

// groupByDay buckets every log entry by its calendar day in loc.
func groupByDay(loc *time.Location, meals []MealLogEntry, workouts []WorkoutLogEntry, water []WaterLogEntry) map[string]*dayLogs {
	days := make(map[string]*dayLogs)
	get := func(k string) *dayLogs {
		d, ok := days[k]
		if !ok {
			d = &dayLogs{}
			days[k] = d
		}
		return d
	}
	for _, m := range meals {
		d := get(dayKey(m.Timestamp, loc))
		d.meals = append(d.meals, m)
	}
	for _, w := range workouts {
		d := get(dayKey(w.Timestamp, loc))
		d.workouts = append(d.workouts, w)
	}
	for _, w := range water {
		get(dayKey(w.Timestamp, loc)).water++
	}
	return days
}

// dailyFrom computes one day's progress from logs already filtered to it.
func dailyFrom(date string, logs *dayLogs, plan DeficitPlan, targets EnergyTargets) DailyProgress {
	p := DailyProgress{Date: date}
	if logs == nil {
		return p
	}

	for _, m := range logs.meals {
		p.CaloriesConsumed += m.Calories
	}
	for _, w := range logs.workouts {
		p.CaloriesBurned += w.CaloriesBurned
	}
	p.MealsLogged = len(logs.meals)
	p.WorkoutsLogged = len(logs.workouts)
	p.HasActivity = p.MealsLogged > 0 || p.WorkoutsLogged > 0

	p.NetCalories = p.CaloriesConsumed - p.CaloriesBurned
	p.CurrentDeficit = (targets.RecommendedCalories + p.CaloriesBurned) - p.CaloriesConsumed

	// A day with nothing logged earns no progress, whatever the arithmetic says.
	if p.HasActivity {
		p.DailyDeficitProgressPercent = progressPercent(nonNegative(p.CurrentDeficit), plan.DailyDeficitCalories)
	}
	if p.WorkoutsLogged > 0 {
		p.WorkoutProgressPercent = progressPercent(nonNegative(p.CaloriesBurned), plan.WorkoutCalories)
	}
	return p
}

// ComputeDailyProgress measures the reference date's logs against the plan.
// Entries are matched to the day by their timestamp's calendar date in ref's
// location. Progress is not capped at 100.
func ComputeDailyProgress(ref time.Time, meals []MealLogEntry, workouts []WorkoutLogEntry, plan DeficitPlan, targets EnergyTargets) DailyProgress {
	loc := ref.Location()
	key := dayKey(ref, loc)
	days := groupByDay(loc, meals, workouts, nil)
	return dailyFrom(key, days[key], plan, targets)
}

// ComputeWindowProgress walks the trailing window of days calendar days ending
// on ref. Each day contributes max(0, deficit) only if it has logged activity,
// so an untracked day cannot be covered by an earlier good one and a bad day
// cannot drag the total below zero.
func ComputeWindowProgress(ref time.Time, days int, meals []MealLogEntry, workouts []WorkoutLogEntry, plan DeficitPlan, targets EnergyTargets) WindowProgress {
	if days < 1 {
		days = 1
	}
	loc := ref.Location()
	byDay := groupByDay(loc, meals, workouts, nil)

	w := WindowProgress{
		Days:          make([]DailyProgress, days),
		WindowDays:    days,
		DeficitTarget: plan.DailyDeficitCalories * float64(days),
	}
	for i := 0; i < days; i++ {
		key := dayKey(daysBack(ref, i), loc)
		d := dailyFrom(key, byDay[key], plan, targets)
		w.Days[days-1-i] = d

		w.TotalConsumed += d.CaloriesConsumed
		w.TotalBurned += d.CaloriesBurned
		if d.HasActivity {
			w.ActiveDays++
			w.DeficitAchieved += nonNegative(d.CurrentDeficit)
		}
	}
	w.DeficitProgressPercent = progressPercent(w.DeficitAchieved, w.DeficitTarget)
	return w
}

// ComputeWeeklyProgress is the 7-day window, today inclusive.
func ComputeWeeklyProgress(ref time.Time, meals []MealLogEntry, workouts []WorkoutLogEntry, plan DeficitPlan, targets EnergyTargets) WindowProgress {
	return ComputeWindowProgress(ref, 7, meals, workouts, plan, targets)
}

// ComputeStreak counts consecutive days with at least one meal, workout or
// water entry, walking backwards from ref's day. An empty ref day does not
// break the streak since the day is not over; the count then starts from the
// day before. Any earlier empty day ends it.
func ComputeStreak(ref time.Time, meals []MealLogEntry, workouts []WorkoutLogEntry, water []WaterLogEntry) int {
	loc := ref.Location()
	byDay := groupByDay(loc, meals, workouts, water)

	offset := 0
	if _, ok := byDay[dayKey(ref, loc)]; !ok {
		offset = 1
	}
	streak := 0
	for {
		if _, ok := byDay[dayKey(daysBack(ref, offset+streak), loc)]; !ok {
			return streak
		}
		streak++
	}
}

// DailyNutritionTotals sums the reference date's meals into the input of
// AnalyzeNutrition. TargetCalories is left for the caller to fill.
func DailyNutritionTotals(ref time.Time, meals []MealLogEntry) NutritionTotals {
	loc := ref.Location()
	key := dayKey(ref, loc)

	var t NutritionTotals
	for _, m := range meals {
		if dayKey(m.Timestamp, loc) != key {
			continue
		}
		t.ConsumedCalories += m.Calories
		t.ProteinGrams += m.ProteinGrams
		t.CarbsGrams += m.CarbsGrams
		t.FatGrams += m.FatGrams
		t.FiberGrams += m.FiberGrams
		t.MealsLogged++
	}
	return t
}

// WeeklyWorkouts returns the workouts that fall in the 7 calendar days ending
// on ref, in their original order.
func WeeklyWorkouts(ref time.Time, workouts []WorkoutLogEntry) []WorkoutLogEntry {
	loc := ref.Location()
	window := make(map[string]bool, 7)
	for i := 0; i < 7; i++ {
		window[dayKey(daysBack(ref, i), loc)] = true
	}

	var out []WorkoutLogEntry
	for _, w := range workouts {
		if window[dayKey(w.Timestamp, loc)] {
			out = append(out, w)
		}
	}
	return out
}
