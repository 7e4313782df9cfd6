package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

const (
	methodMET     = "met"
	methodCatalog = "catalog"
)

var (
	errUnknownCatalogEntry = errors.New("unknown catalog_id")
	errNoExerciseType      = errors.New("exercise_type or catalog_id is required")
	errNoDuration          = errors.New("duration_minutes is required for timed workouts")
)

// estimate runs the catalog model when a catalog id is given and the MET model
// otherwise, then applies the manual override. p may be nil.
func estimate(p *health.Profile, req workoutRequest) (workoutEstimate, error) {
	if req.CatalogID != "" {
		entry, ok := health.LookupCatalogExercise(req.CatalogID)
		if !ok {
			return workoutEstimate{}, errUnknownCatalogEntry
		}
		count := req.DurationMinutes
		if entry.PerRep() {
			count = float64(req.Reps)
			if len(req.Sets) > 0 {
				count = float64(health.TotalReps(req.Sets))
			}
		}
		exerciseType := req.ExerciseType
		if exerciseType == "" {
			exerciseType = string(entry.Category)
		}
		est := health.EstimateCatalogExerciseCalories(p, entry, count)
		return withOverride(workoutEstimate{
			Method:            methodCatalog,
			ExerciseType:      exerciseType,
			Intensity:         req.Intensity,
			EstimatedCalories: est,
		}, req.CaloriesOverride), nil
	}

	if req.ExerciseType == "" {
		return workoutEstimate{}, errNoExerciseType
	}
	if req.DurationMinutes <= 0 && req.CaloriesOverride == nil {
		return workoutEstimate{}, errNoDuration
	}
	intensity := req.Intensity
	if intensity == "" {
		intensity = string(health.IntensityModerate)
	}
	est := health.EstimateWorkoutCalories(p, health.ExerciseType(req.ExerciseType), req.DurationMinutes, health.Intensity(intensity))
	return withOverride(workoutEstimate{
		Method:            methodMET,
		ExerciseType:      req.ExerciseType,
		Intensity:         intensity,
		EstimatedCalories: est,
	}, req.CaloriesOverride), nil
}

func withOverride(e workoutEstimate, override *float64) workoutEstimate {
	e.CaloriesBurned = health.ApplyCaloriesOverride(e.EstimatedCalories, override)
	e.CaloriesOverridden = override != nil
	return e
}

// bindWorkout parses the body and estimates calories against the caller's
// profile, if any. ok is false when a response has already been written.
func (h *Handler) bindWorkout(c *gin.Context) (workoutRequest, workoutEstimate, bool) {
	var body workoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return body, workoutEstimate{}, false
	}
	for _, s := range body.Sets {
		if s.Reps < 0 || s.WeightKg < 0 {
			apiError(c, http.StatusBadRequest, "sets must not be negative")
			return body, workoutEstimate{}, false
		}
	}

	row, ok := h.loadProfile(c, false)
	if !ok {
		return body, workoutEstimate{}, false
	}
	var p *health.Profile
	if row != nil {
		hp := row.health()
		p = &hp
	}

	est, err := estimate(p, body)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return body, workoutEstimate{}, false
	}
	return body, est, true
}

// estimateWorkout previews the calories a workout would be logged with.
// POST /api/workouts/estimate
func (h *Handler) estimateWorkout(c *gin.Context) {
	_, est, ok := h.bindWorkout(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, est)
}

// createWorkout estimates (or takes the override) and stores a workout.
// POST /api/workouts
func (h *Handler) createWorkout(c *gin.Context) {
	body, est, ok := h.bindWorkout(c)
	if !ok {
		return
	}

	row := workoutRow{
		UserID:             c.GetInt("user_id"),
		LoggedAt:           h.loggedAt(body.LoggedAt, body.Date),
		ExerciseType:       est.ExerciseType,
		DurationMinutes:    body.DurationMinutes,
		Sets:               body.Sets,
		CaloriesBurned:     int(health.Round(est.CaloriesBurned)),
		CaloriesOverridden: est.CaloriesOverridden,
	}
	if body.CatalogID != "" {
		row.CatalogID = &body.CatalogID
	}
	if est.Intensity != "" {
		row.Intensity = &est.Intensity
	}

	saved, err := h.store.CreateWorkout(c, row)
	if err != nil {
		h.logger.Error("[createWorkout] insert", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to create workout")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workout": saved, "estimate": est})
}

// getWorkouts returns one day's workouts.
// GET /api/workouts?date=YYYY-MM-DD
func (h *Handler) getWorkouts(c *gin.Context) {
	ref, ok := h.refDate(c)
	if !ok {
		return
	}
	from, to := window(ref, 1)

	rows, err := h.store.Workouts(c, c.GetInt("user_id"), from, to)
	if err != nil {
		h.logger.Error("[getWorkouts] query", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to load workouts")
		return
	}
	if rows == nil {
		rows = []workoutRow{}
	}

	burned := 0
	for _, r := range rows {
		burned += r.CaloriesBurned
	}
	c.JSON(http.StatusOK, gin.H{
		"date":            ref.Format(dateLayout),
		"items":           rows,
		"calories_burned": burned,
	})
}

// deleteWorkout removes a workout owned by the caller.
// DELETE /api/workouts/:id
func (h *Handler) deleteWorkout(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	deleted, err := h.store.DeleteWorkout(c, c.GetInt("user_id"), id)
	if err != nil {
		h.logger.Error("[deleteWorkout] delete", zap.Int("id", id), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to delete workout")
		return
	}
	if !deleted {
		apiError(c, http.StatusNotFound, "workout not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// getExerciseCatalog lists the fixed exercise catalog.
// GET /api/exercise-catalog (public)
func (h *Handler) getExerciseCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, health.DefaultCatalog)
}
