package health

import (
	"fmt"
	"sort"
)

// DefaultWeeklyGoalMinutes is the weekly activity goal when none is given.
const DefaultWeeklyGoalMinutes = 150.0

const exerciseBaseScore = 50

// WeeklyExerciseProgress is time spent against the weekly goal.
type WeeklyExerciseProgress struct {
	GoalMinutes      float64 `json:"goal_minutes"`
	CompletedMinutes float64 `json:"completed_minutes"`
	Percent          float64 `json:"percent"`
}

// ExerciseStats summarizes the week's workouts.
type ExerciseStats struct {
	TotalWorkouts       int            `json:"total_workouts"`
	TotalDurationMin    float64        `json:"total_duration_minutes"`
	TotalCaloriesBurned float64        `json:"total_calories_burned"`
	AverageDurationMin  float64        `json:"average_duration_minutes"`
	DistinctTypes       int            `json:"distinct_types"`
	MostFrequentType    ExerciseType   `json:"most_frequent_type,omitempty"`
	TypeCounts          map[string]int `json:"type_counts"`
}

// ExerciseDetails is the structured extra on an exercise analysis.
type ExerciseDetails struct {
	WeeklyProgress WeeklyExerciseProgress `json:"weekly_progress"`
	Stats          ExerciseStats          `json:"stats"`
}

// SummarizeWorkouts totals a list of workouts.
func SummarizeWorkouts(workouts []WorkoutLogEntry) ExerciseStats {
	s := ExerciseStats{TypeCounts: map[string]int{}}
	for _, w := range workouts {
		s.TotalWorkouts++
		s.TotalDurationMin += w.DurationMinutes
		s.TotalCaloriesBurned += w.CaloriesBurned
		s.TypeCounts[string(w.ExerciseType)]++
	}
	s.DistinctTypes = len(s.TypeCounts)
	s.AverageDurationMin = Round1(SafeDiv(s.TotalDurationMin, float64(s.TotalWorkouts)))

	// Ties break alphabetically so the result does not depend on map order.
	types := make([]string, 0, len(s.TypeCounts))
	for t := range s.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	best := 0
	for _, t := range types {
		if s.TypeCounts[t] > best {
			best = s.TypeCounts[t]
			s.MostFrequentType = ExerciseType(t)
		}
	}
	return s
}

// exerciseFacts is the rule-table input.
type exerciseFacts struct {
	stats           ExerciseStats
	progressPercent float64
}

var exerciseRules = []rule[exerciseFacts]{
	// Weekly minutes against the goal.
	{
		name:  "goal_met",
		delta: 15,
		kind:  kindInsight,
		when:  func(f exerciseFacts) bool { return f.progressPercent >= 100 },
		text:  "You hit your weekly activity goal. Outstanding consistency!",
	},
	{
		name:   "goal_close",
		delta:  10,
		kind:   kindInsight,
		when:   func(f exerciseFacts) bool { return f.progressPercent >= 75 && f.progressPercent < 100 },
		textFn: func(f exerciseFacts) string { return fmt.Sprintf("%.0f%% of your weekly goal done. Almost there!", f.progressPercent) },
	},
	{
		name:   "goal_halfway",
		delta:  5,
		kind:   kindInsight,
		when:   func(f exerciseFacts) bool { return f.progressPercent >= 50 && f.progressPercent < 75 },
		textFn: func(f exerciseFacts) string { return fmt.Sprintf("Halfway there with %.0f%% of your weekly goal.", f.progressPercent) },
	},
	{
		name:  "goal_behind",
		delta: -10,
		kind:  kindTip,
		when:  func(f exerciseFacts) bool { return f.progressPercent < 50 },
		text:  "Add a few short sessions this week. Even 20-minute workouts add up toward your goal.",
	},
	// Variety.
	{
		name:   "variety_high",
		delta:  10,
		kind:   kindInsight,
		when:   func(f exerciseFacts) bool { return f.stats.DistinctTypes >= 3 },
		textFn: func(f exerciseFacts) string { return fmt.Sprintf("Great variety with %d different workout types.", f.stats.DistinctTypes) },
	},
	{
		name:  "variety_two",
		delta: 5,
		kind:  kindInsight,
		when:  func(f exerciseFacts) bool { return f.stats.DistinctTypes == 2 },
		text:  "Good mix of two workout types this week.",
	},
	{
		name: "variety_two_flexibility",
		kind: kindTip,
		when: func(f exerciseFacts) bool { return f.stats.DistinctTypes == 2 },
		text: "Add a flexibility or mobility session to round out your week.",
	},
	{
		name:  "variety_single",
		delta: -5,
		kind:  kindTip,
		when:  func(f exerciseFacts) bool { return f.stats.DistinctTypes == 1 },
		text:  "Mix in different workout types, such as cardio, strength and flexibility, for balanced fitness.",
	},
	// Frequency.
	{
		name:   "frequency_high",
		delta:  10,
		kind:   kindInsight,
		when:   func(f exerciseFacts) bool { return f.stats.TotalWorkouts >= 4 },
		textFn: func(f exerciseFacts) string { return fmt.Sprintf("%d workouts this week. Excellent frequency.", f.stats.TotalWorkouts) },
	},
	{
		name:  "frequency_good",
		delta: 5,
		kind:  kindInsight,
		when:  func(f exerciseFacts) bool { return f.stats.TotalWorkouts == 3 },
		text:  "3 workouts this week. Solid routine.",
	},
	{
		name:  "frequency_low",
		delta: -5,
		kind:  kindTip,
		when:  func(f exerciseFacts) bool { return f.stats.TotalWorkouts >= 1 && f.stats.TotalWorkouts < 3 },
		text:  "Try to schedule at least 3 workouts a week.",
	},
	{
		name:  "frequency_none",
		delta: -15,
		kind:  kindTip,
		when:  func(f exerciseFacts) bool { return f.stats.TotalWorkouts == 0 },
		text:  "No workouts logged yet this week. Start with 2-3 sessions this week.",
	},
	// Energy.
	{
		name:   "calories_high",
		delta:  8,
		kind:   kindInsight,
		when:   func(f exerciseFacts) bool { return f.stats.TotalCaloriesBurned >= 2000 },
		textFn: func(f exerciseFacts) string { return fmt.Sprintf("%.0f kcal burned this week. Impressive work.", f.stats.TotalCaloriesBurned) },
	},
	{
		name:   "calories_solid",
		delta:  5,
		kind:   kindInsight,
		when:   func(f exerciseFacts) bool { return f.stats.TotalCaloriesBurned >= 1000 && f.stats.TotalCaloriesBurned < 2000 },
		textFn: func(f exerciseFacts) string { return fmt.Sprintf("%.0f kcal burned this week.", f.stats.TotalCaloriesBurned) },
	},
}

// AnalyzeExercise scores a week of workouts. A non-positive goal falls back to
// DefaultWeeklyGoalMinutes.
func AnalyzeExercise(workouts []WorkoutLogEntry, weeklyGoalMinutes float64) AnalysisResult {
	if weeklyGoalMinutes <= 0 {
		weeklyGoalMinutes = DefaultWeeklyGoalMinutes
	}
	stats := SummarizeWorkouts(workouts)
	progress := Clamp(100*SafeDiv(stats.TotalDurationMin, weeklyGoalMinutes), 0, 100)

	facts := exerciseFacts{stats: stats, progressPercent: progress}
	out := evaluateRules(exerciseBaseScore, exerciseRules, facts)

	res := newResult(out.score, out.tips, out.insights)
	res.Exercise = &ExerciseDetails{
		WeeklyProgress: WeeklyExerciseProgress{
			GoalMinutes:      weeklyGoalMinutes,
			CompletedMinutes: stats.TotalDurationMin,
			Percent:          Round1(progress),
		},
		Stats: stats,
	}
	return res
}
