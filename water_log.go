package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// hydrationGoal is the caller's daily goal in ml: the default without a
// profile, otherwise weight and activity based plus the plan's workout burn.
func (h *Handler) hydrationGoal(c *gin.Context) (float64, bool) {
	row, ok := h.loadProfile(c, false)
	if !ok {
		return 0, false
	}
	if row == nil {
		return health.ComputeHydrationGoalMl(nil, 0), true
	}
	_, plan := derive(*row)
	p := row.health()
	return health.ComputeHydrationGoalMl(&p, plan.WorkoutCalories), true
}

// getHydrationGoal returns the daily hydration goal.
// GET /api/hydration-goal
func (h *Handler) getHydrationGoal(c *gin.Context) {
	goal, ok := h.hydrationGoal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal_ml": goal, "goal_oz": health.Round1(health.MlToOz(goal))})
}

// getWater returns one day's water entries against the goal.
// GET /api/water?date=YYYY-MM-DD
func (h *Handler) getWater(c *gin.Context) {
	ref, ok := h.refDate(c)
	if !ok {
		return
	}
	goal, ok := h.hydrationGoal(c)
	if !ok {
		return
	}
	from, to := window(ref, 1)

	rows, err := h.store.Water(c, c.GetInt("user_id"), from, to)
	if err != nil {
		h.logger.Error("[getWater] query", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to load water log")
		return
	}
	if rows == nil {
		rows = []waterRow{}
	}

	total := 0
	for _, r := range rows {
		total += r.AmountMl
	}
	c.JSON(http.StatusOK, waterDay{
		Date:            ref.Format(dateLayout),
		Entries:         rows,
		TotalMl:         total,
		GoalMl:          goal,
		ProgressPercent: health.SafePercent(float64(total), goal),
	})
}

// createWater appends a water entry. The log is append-only.
// POST /api/water
func (h *Handler) createWater(c *gin.Context) {
	var body createWaterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	saved, err := h.store.CreateWater(c, waterRow{
		UserID:   c.GetInt("user_id"),
		LoggedAt: h.loggedAt(body.LoggedAt, body.Date),
		AmountMl: body.AmountMl,
	})
	if err != nil {
		h.logger.Error("[createWater] insert", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to log water")
		return
	}

	c.JSON(http.StatusCreated, saved)
}
