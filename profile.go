package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// Defaults for the deficit choice when a profile is first created without one.
const (
	defaultDailyDeficit        = 500.0
	defaultWorkoutSplitPercent = 40.0
)

func newProfileResponse(p profileRow) profileResponse {
	targets, plan := derive(p)
	hp := p.health()
	return profileResponse{
		Profile:         p,
		Targets:         targets,
		Plan:            plan,
		HydrationGoalMl: health.ComputeHydrationGoalMl(&hp, plan.WorkoutCalories),
	}
}

// getProfile returns the stored profile with its derived targets.
// GET /api/profile
func (h *Handler) getProfile(c *gin.Context) {
	p, ok := h.loadProfile(c, true)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(*p))
}

// putProfile replaces the caller's biometrics. A missing deficit choice keeps
// the stored one, or the defaults for a new profile.
// PUT /api/profile
func (h *Handler) putProfile(c *gin.Context) {
	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, ok := h.loadProfile(c, false)
	if !ok {
		return
	}
	row := profileRow{
		UserID:              c.GetInt("user_id"),
		DailyDeficit:        defaultDailyDeficit,
		WorkoutSplitPercent: defaultWorkoutSplitPercent,
	}
	if existing != nil {
		row.DailyDeficit = existing.DailyDeficit
		row.WorkoutSplitPercent = existing.WorkoutSplitPercent
	}
	setBiometrics(&row, body.Profile)
	if body.DailyDeficit != nil {
		row.DailyDeficit = *body.DailyDeficit
	}
	if body.WorkoutSplitPercent != nil {
		row.WorkoutSplitPercent = *body.WorkoutSplitPercent
	}

	h.saveProfile(c, row)
}

// patchProfile updates only the provided fields. The merged result must still
// be a valid profile, so a first-time PATCH has to carry every required field.
// PATCH /api/profile
func (h *Handler) patchProfile(c *gin.Context) {
	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, ok := h.loadProfile(c, false)
	if !ok {
		return
	}
	row := profileRow{
		UserID:              c.GetInt("user_id"),
		DailyDeficit:        defaultDailyDeficit,
		WorkoutSplitPercent: defaultWorkoutSplitPercent,
	}
	if existing != nil {
		row = *existing
	}

	if body.Age != nil {
		row.Age = *body.Age
	}
	if body.Sex != nil {
		row.Sex = *body.Sex
	}
	if body.HeightCm != nil {
		row.HeightCm = *body.HeightCm
	}
	if body.WeightKg != nil {
		row.WeightKg = *body.WeightKg
	}
	if body.BodyFatPercent != nil {
		row.BodyFatPercent = body.BodyFatPercent
	}
	if body.ActivityLevel != nil {
		row.ActivityLevel = *body.ActivityLevel
	}
	if body.TargetWeightKg != nil {
		row.TargetWeightKg = body.TargetWeightKg
	}
	if body.DailyDeficit != nil {
		row.DailyDeficit = *body.DailyDeficit
	}
	if body.WorkoutSplitPercent != nil {
		row.WorkoutSplitPercent = *body.WorkoutSplitPercent
	}

	h.saveProfile(c, row)
}

func setBiometrics(row *profileRow, p health.Profile) {
	row.Age = p.Age
	row.Sex = string(p.Sex)
	row.HeightCm = p.HeightCm
	row.WeightKg = p.WeightKg
	row.BodyFatPercent = p.BodyFatPercent
	row.ActivityLevel = string(p.ActivityLevel)
	row.TargetWeightKg = p.TargetWeightKg
}

// saveProfile validates row at the boundary, stores it and answers with the
// derived targets.
func (h *Handler) saveProfile(c *gin.Context, row profileRow) {
	if err := validateProfileRow(row); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.store.UpsertProfile(c, row)
	if err != nil {
		h.logger.Error("[saveProfile] upsert", zap.Int("user_id", row.UserID), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(saved))
}

func validateProfileRow(row profileRow) error {
	var fields []string
	for _, err := range []error{
		health.ValidateProfile(row.health()),
		health.ValidateDeficitChoice(row.DailyDeficit, row.WorkoutSplitPercent),
	} {
		var inv *health.InvalidInputError
		switch {
		case err == nil:
		case errors.As(err, &inv):
			fields = append(fields, inv.Fields...)
		default:
			return err
		}
	}
	if len(fields) > 0 {
		return &health.InvalidInputError{Fields: fields}
	}
	return nil
}

// getEnergyTargets returns BMR, TDEE, macros and the deficit plan.
// GET /api/energy-targets
func (h *Handler) getEnergyTargets(c *gin.Context) {
	p, ok := h.loadProfile(c, true)
	if !ok {
		return
	}
	targets, plan := derive(*p)
	c.JSON(http.StatusOK, gin.H{"targets": targets, "plan": plan})
}
