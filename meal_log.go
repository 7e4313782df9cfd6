package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// getMeals returns one day's meal entries with the day's nutrition totals.
// GET /api/meals?date=YYYY-MM-DD
func (h *Handler) getMeals(c *gin.Context) {
	ref, ok := h.refDate(c)
	if !ok {
		return
	}
	from, to := window(ref, 1)

	rows, err := h.store.Meals(c, c.GetInt("user_id"), from, to)
	if err != nil {
		h.logger.Error("[getMeals] query", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to load meals")
		return
	}
	if rows == nil {
		rows = []mealRow{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   ref.Format(dateLayout),
		"items":  rows,
		"totals": health.DailyNutritionTotals(ref, mealEntries(rows)),
	})
}

// createMeal appends a meal entry.
// POST /api/meals
func (h *Handler) createMeal(c *gin.Context) {
	var body createMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	mealType := body.MealType
	if mealType == "" {
		mealType = string(health.MealOther)
	}

	item, err := h.store.CreateMeal(c, mealRow{
		UserID:    c.GetInt("user_id"),
		LoggedAt:  h.loggedAt(body.LoggedAt, body.Date),
		FoodLabel: body.FoodLabel,
		Calories:  body.Calories,
		ProteinG:  body.ProteinG,
		CarbsG:    body.CarbsG,
		FatG:      body.FatG,
		FiberG:    body.FiberG,
		MealType:  mealType,
	})
	if err != nil {
		h.logger.Error("[createMeal] insert", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to create meal")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// deleteMeal removes a meal entry owned by the caller.
// DELETE /api/meals/:id
func (h *Handler) deleteMeal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	deleted, err := h.store.DeleteMeal(c, c.GetInt("user_id"), id)
	if err != nil {
		h.logger.Error("[deleteMeal] delete", zap.Int("id", id), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to delete meal")
		return
	}
	if !deleted {
		apiError(c, http.StatusNotFound, "meal not found")
		return
	}

	c.Status(http.StatusNoContent)
}
