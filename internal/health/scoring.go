package health

import "strings"

// MaxTips is the most tips an AnalysisResult carries.
const MaxTips = 3

// Rating is the qualitative label for a score.
type Rating struct {
	Text      string `json:"text"`
	Emoji     string `json:"emoji"`
	ColorHint string `json:"color_hint"`
}

// AnalysisResult is what every analysis returns. Tips is the short, ordered,
// possibly enriched list; Recommendations keeps every rule-generated message
// in evaluation order. Exactly one of the domain detail fields is set.
type AnalysisResult struct {
	Score           int               `json:"score"`
	Rating          Rating            `json:"rating"`
	Tips            []string          `json:"tips"`
	Insights        []string          `json:"insights"`
	Recommendations []string          `json:"recommendations"`
	Enriched        bool              `json:"enriched"`
	Nutrition       *NutritionDetails `json:"nutrition,omitempty"`
	Biometrics      *BiometricDetails `json:"biometrics,omitempty"`
	Exercise        *ExerciseDetails  `json:"exercise,omitempty"`
}

// ratingLadder is checked top-down; the first floor the score reaches wins.
var ratingLadder = []struct {
	floor  int
	rating Rating
}{
	{90, Rating{Text: "Excellent", Emoji: "🌟", ColorHint: "green"}},
	{80, Rating{Text: "Very Good", Emoji: "💪", ColorHint: "teal"}},
	{70, Rating{Text: "Good", Emoji: "👍", ColorHint: "blue"}},
	{60, Rating{Text: "Fair", Emoji: "🙂", ColorHint: "yellow"}},
	{50, Rating{Text: "Needs Work", Emoji: "⚠️", ColorHint: "orange"}},
}

var poorRating = Rating{Text: "Poor", Emoji: "🔴", ColorHint: "red"}

// RatingFor maps a score onto the rating ladder.
func RatingFor(score int) Rating {
	for _, step := range ratingLadder {
		if score >= step.floor {
			return step.rating
		}
	}
	return poorRating
}

/* ─── Rule tables ────────────────────────────────────────────────────── */

type messageKind int

const (
	kindTip messageKind = iota
	kindInsight
)

// rule is one row of a domain's rule table: when the predicate holds, delta is
// added to the score and the message lands in tips or insights. Rules are
// evaluated in table order and their effects accumulate. A rule with neither
// text nor textFn only moves the score.
type rule[T any] struct {
	name   string
	when   func(T) bool
	delta  int
	kind   messageKind
	text   string
	textFn func(T) string
}

func (r rule[T]) message(in T) string {
	if r.textFn != nil {
		return r.textFn(in)
	}
	return r.text
}

// ruleOutcome is the audit trail of one evaluation.
type ruleOutcome struct {
	score    int
	tips     []string
	insights []string
	fired    []string
}

func evaluateRules[T any](base int, rules []rule[T], in T) ruleOutcome {
	out := ruleOutcome{score: base}
	for _, r := range rules {
		if !r.when(in) {
			continue
		}
		out.score += r.delta
		out.fired = append(out.fired, r.name)
		msg := r.message(in)
		if msg == "" {
			continue
		}
		switch r.kind {
		case kindTip:
			out.tips = append(out.tips, msg)
		case kindInsight:
			out.insights = append(out.insights, msg)
		}
	}
	return out
}

func clampScore(score int) int {
	return clampInt(score, 0, 100)
}

func truncate(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

// newResult assembles the common fields: clamped score, rating, truncated tips.
// Recommendations is a copy so later enrichment never aliases it.
func newResult(score int, recommendations, insights []string) AnalysisResult {
	score = clampScore(score)
	recs := append([]string{}, recommendations...)
	return AnalysisResult{
		Score:           score,
		Rating:          RatingFor(score),
		Tips:            append([]string{}, truncate(recs, MaxTips)...),
		Insights:        append([]string{}, insights...),
		Recommendations: recs,
	}
}

// WithEnrichedTips returns a copy of base whose Tips are replaced by the
// non-blank entries of override, capped at MaxTips. An empty override leaves
// base untouched. Numeric fields are never modified.
func WithEnrichedTips(base AnalysisResult, override []string) AnalysisResult {
	var tips []string
	for _, t := range override {
		if t = strings.TrimSpace(t); t != "" {
			tips = append(tips, t)
		}
	}
	if len(tips) == 0 {
		return base
	}
	out := base
	out.Tips = truncate(tips, MaxTips)
	out.Enriched = true
	return out
}
