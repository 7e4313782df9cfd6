package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harryz-code/network-school-fitness-sub000/internal/enrich"
	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// respondAnalysis optionally swaps in generated tips and writes the result.
// Enrichment never changes the score and never fails the request.
func (h *Handler) respondAnalysis(c *gin.Context, domain enrich.Domain, res health.AnalysisResult) {
	if enrichEnabled(c) {
		res = h.enricher.Apply(c.Request.Context(), domain, res)
	}
	c.JSON(http.StatusOK, res)
}

// getNutritionAnalysis scores one day's meals against the calorie target.
// GET /api/analysis/nutrition?date=YYYY-MM-DD
func (h *Handler) getNutritionAnalysis(c *gin.Context) {
	ref, ok := h.refDate(c)
	if !ok {
		return
	}
	p, ok := h.loadProfile(c, true)
	if !ok {
		return
	}
	a, ok := h.loadActivity(c, ref, 1, false)
	if !ok {
		return
	}

	targets, _ := derive(*p)
	totals := health.DailyNutritionTotals(ref, a.meals)
	totals.TargetCalories = targets.RecommendedCalories

	h.respondAnalysis(c, enrich.DomainNutrition, health.AnalyzeNutrition(totals))
}

// getBiometricsAnalysis scores the stored profile.
// GET /api/analysis/biometrics
func (h *Handler) getBiometricsAnalysis(c *gin.Context) {
	p, ok := h.loadProfile(c, true)
	if !ok {
		return
	}
	h.respondAnalysis(c, enrich.DomainBiometrics, health.AnalyzeBiometrics(p.health()))
}

// getExerciseAnalysis scores the 7 days of workouts ending on date.
// GET /api/analysis/exercise?date=YYYY-MM-DD
func (h *Handler) getExerciseAnalysis(c *gin.Context) {
	ref, ok := h.refDate(c)
	if !ok {
		return
	}
	a, ok := h.loadActivity(c, ref, 7, false)
	if !ok {
		return
	}

	workouts := health.WeeklyWorkouts(ref, a.workouts)
	h.respondAnalysis(c, enrich.DomainExercise, health.AnalyzeExercise(workouts, h.weeklyGoalMinutes))
}
