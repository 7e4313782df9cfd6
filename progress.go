package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// streakLookbackDays bounds how far back the streak query reads.
const streakLookbackDays = 366

// activity holds the caller's logs for a trailing window.
type activity struct {
	meals    []health.MealLogEntry
	workouts []health.WorkoutLogEntry
	water    []health.WaterLogEntry
}

// loadActivity reads the logs of the `days` calendar days ending on ref.
// Water is only read when withWater is set.
func (h *Handler) loadActivity(c *gin.Context, ref time.Time, days int, withWater bool) (activity, bool) {
	userID := c.GetInt("user_id")
	from, to := window(ref, days)

	meals, err := h.store.Meals(c, userID, from, to)
	if err != nil {
		h.logger.Error("[loadActivity] meals", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to load meals")
		return activity{}, false
	}
	workouts, err := h.store.Workouts(c, userID, from, to)
	if err != nil {
		h.logger.Error("[loadActivity] workouts", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to load workouts")
		return activity{}, false
	}
	a := activity{meals: mealEntries(meals), workouts: workoutEntries(workouts)}

	if withWater {
		water, err := h.store.Water(c, userID, from, to)
		if err != nil {
			h.logger.Error("[loadActivity] water", zap.Error(err))
			apiError(c, http.StatusInternalServerError, "failed to load water log")
			return activity{}, false
		}
		a.water = waterEntries(water)
	}
	return a, true
}

// getDailyProgress measures one day against the deficit plan.
// GET /api/progress/daily?date=YYYY-MM-DD
func (h *Handler) getDailyProgress(c *gin.Context) {
	h.windowProgress(c, 1)
}

// getWeeklyProgress aggregates the 7 days ending on date.
// GET /api/progress/weekly?date=YYYY-MM-DD
func (h *Handler) getWeeklyProgress(c *gin.Context) {
	h.windowProgress(c, 7)
}

// getMonthlyProgress aggregates the 30 days ending on date.
// GET /api/progress/monthly?date=YYYY-MM-DD
func (h *Handler) getMonthlyProgress(c *gin.Context) {
	h.windowProgress(c, 30)
}

func (h *Handler) windowProgress(c *gin.Context, days int) {
	ref, ok := h.refDate(c)
	if !ok {
		return
	}
	p, ok := h.loadProfile(c, true)
	if !ok {
		return
	}
	a, ok := h.loadActivity(c, ref, days, false)
	if !ok {
		return
	}
	targets, plan := derive(*p)

	if days == 1 {
		c.JSON(http.StatusOK, gin.H{
			"progress": health.ComputeDailyProgress(ref, a.meals, a.workouts, plan, targets),
			"plan":     plan,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"progress": health.ComputeWindowProgress(ref, days, a.meals, a.workouts, plan, targets),
		"plan":     plan,
	})
}

// getStreak counts consecutive logged days ending on date.
// GET /api/progress/streak?date=YYYY-MM-DD
func (h *Handler) getStreak(c *gin.Context) {
	ref, ok := h.refDate(c)
	if !ok {
		return
	}
	a, ok := h.loadActivity(c, ref, streakLookbackDays, true)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   ref.Format(dateLayout),
		"streak": health.ComputeStreak(ref, a.meals, a.workouts, a.water),
	})
}

// getEarliestLogDate returns the first day with any logged entry, or null.
// GET /api/progress/earliest-date
func (h *Handler) getEarliestLogDate(c *gin.Context) {
	d, err := h.store.EarliestLogDate(c, c.GetInt("user_id"))
	if err != nil {
		h.logger.Error("[getEarliestLogDate] query", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to load earliest date")
		return
	}
	c.JSON(http.StatusOK, gin.H{"earliest_date": d})
}
