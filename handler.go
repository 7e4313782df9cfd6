package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/enrich"
	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// Handler holds shared dependencies (store, logger, enricher) for all route handlers.
type Handler struct {
	store             Store
	logger            *zap.Logger
	enricher          *enrich.Enricher // nil disables generated tips
	now               func() time.Time // overridable for tests
	weeklyGoalMinutes float64
}

func newHandler(store Store, logger *zap.Logger, enricher *enrich.Enricher, weeklyGoalMinutes float64) *Handler {
	return &Handler{
		store:             store,
		logger:            logger,
		enricher:          enricher,
		now:               time.Now,
		weeklyGoalMinutes: weeklyGoalMinutes,
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Request helpers ────────────────────────────────────────────────── */

const dateLayout = "2006-01-02"

// refDate reads ?date=YYYY-MM-DD as midnight UTC, defaulting to today.
func (h *Handler) refDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		y, m, d := h.now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		apiError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

// window returns the half-open range covering `days` calendar days ending on ref.
func window(ref time.Time, days int) (from, to time.Time) {
	return ref.AddDate(0, 0, -(days - 1)), ref.AddDate(0, 0, 1)
}

// loggedAt resolves the timestamp of a new log entry. An explicit timestamp
// wins; a bare date is stamped at noon UTC so it stays on that day.
func (h *Handler) loggedAt(ts *time.Time, date *DateOnly) time.Time {
	switch {
	case ts != nil:
		return ts.UTC()
	case date != nil:
		y, m, d := date.Time.Date()
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	default:
		return h.now().UTC()
	}
}

// loadProfile fetches the caller's profile. ok is false when a response has
// already been written; with required=false a missing profile yields nil.
func (h *Handler) loadProfile(c *gin.Context, required bool) (p *profileRow, ok bool) {
	row, err := h.store.Profile(c, c.GetInt("user_id"))
	switch {
	case err == nil:
		return &row, true
	case errors.Is(err, pgx.ErrNoRows):
		if required {
			apiError(c, http.StatusNotFound, "set up goals first")
			return nil, false
		}
		return nil, true
	default:
		h.logger.Error("[loadProfile] store", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to load profile")
		return nil, false
	}
}

// derive computes the targets and plan that follow from a stored profile.
func derive(p profileRow) (health.EnergyTargets, health.DeficitPlan) {
	targets := health.ComputeEnergyTargets(p.health(), p.DailyDeficit)
	plan := health.BuildDeficitPlan(p.DailyDeficit, p.WorkoutSplitPercent, targets.TDEE)
	return targets, plan
}

// enrichEnabled lets a client opt out of generated tips with ?enrich=false.
func enrichEnabled(c *gin.Context) bool {
	return c.Query("enrich") != "false"
}

/* ─── Middleware ─────────────────────────────────────────────────────── */

// requestLogger logs one line per request and tags it with a request id.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Next()

		logger.Info("http request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("user_id", c.GetInt("user_id")),
		)
	}
}

/* ─── Routes ─────────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)
	router.GET("/api/exercise-catalog", h.getExerciseCatalog)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.PATCH("/profile", h.patchProfile)
	api.GET("/energy-targets", h.getEnergyTargets)

	api.GET("/meals", h.getMeals)
	api.POST("/meals", h.createMeal)
	api.DELETE("/meals/:id", h.deleteMeal)

	api.GET("/workouts", h.getWorkouts)
	api.POST("/workouts", h.createWorkout)
	api.POST("/workouts/estimate", h.estimateWorkout)
	api.DELETE("/workouts/:id", h.deleteWorkout)

	api.GET("/water", h.getWater)
	api.POST("/water", h.createWater)
	api.GET("/hydration-goal", h.getHydrationGoal)

	api.GET("/progress/daily", h.getDailyProgress)
	api.GET("/progress/weekly", h.getWeeklyProgress)
	api.GET("/progress/monthly", h.getMonthlyProgress)
	api.GET("/progress/streak", h.getStreak)
	api.GET("/progress/earliest-date", h.getEarliestLogDate)

	api.GET("/analysis/nutrition", h.getNutritionAnalysis)
	api.GET("/analysis/biometrics", h.getBiometricsAnalysis)
	api.GET("/analysis/exercise", h.getExerciseAnalysis)
}
