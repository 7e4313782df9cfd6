package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store is the persistence surface the handlers need. Lookups that find
// nothing return pgx.ErrNoRows; deletes report whether a row was removed.
type Store interface {
	UserByUsername(ctx context.Context, username string) (user, error)
	UserIDByToken(ctx context.Context, token string) (int, error)

	Profile(ctx context.Context, userID int) (profileRow, error)
	UpsertProfile(ctx context.Context, p profileRow) (profileRow, error)

	// Range queries are half-open: from <= logged_at < to.
	Meals(ctx context.Context, userID int, from, to time.Time) ([]mealRow, error)
	CreateMeal(ctx context.Context, m mealRow) (mealRow, error)
	DeleteMeal(ctx context.Context, userID, id int) (bool, error)

	Workouts(ctx context.Context, userID int, from, to time.Time) ([]workoutRow, error)
	CreateWorkout(ctx context.Context, w workoutRow) (workoutRow, error)
	DeleteWorkout(ctx context.Context, userID, id int) (bool, error)

	Water(ctx context.Context, userID int, from, to time.Time) ([]waterRow, error)
	CreateWater(ctx context.Context, w waterRow) (waterRow, error)

	// EarliestLogDate is the first day with any meal, workout or water entry,
	// or nil when the user has logged nothing.
	EarliestLogDate(ctx context.Context, userID int) (*DateOnly, error)
}

/* ─── Postgres ───────────────────────────────────────────────────────── */

// pgStore implements Store on a pgx pool.
type pgStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func newPGStore(db *pgxpool.Pool, logger *zap.Logger) *pgStore {
	return &pgStore{db: db, logger: logger}
}

// newDBPool creates a connection pool. A pool (not a single conn) survives
// hosted Postgres closing idle connections.
func newDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Simple protocol avoids "cached plan must not change result type" after
	// migrations alter a table under a live server.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Scan errors are logged since they usually mean a struct/column mismatch.
func queryOne[T any](ctx context.Context, s *pgStore, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := s.db.Query(ctx, sql, args)
	if err != nil {
		s.logger.Error("[queryOne] query", zap.Error(err))
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error("[queryOne] scan", zap.Error(err))
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, s *pgStore, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := s.db.Query(ctx, sql, args)
	if err != nil {
		s.logger.Error("[queryMany] query", zap.Error(err))
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		s.logger.Error("[queryMany] scan", zap.Error(err))
	}
	return results, err
}

// exec runs a statement and returns the number of affected rows.
func (s *pgStore) exec(ctx context.Context, sql string, args pgx.NamedArgs) (int64, error) {
	tag, err := s.db.Exec(ctx, sql, args)
	if err != nil {
		s.logger.Error("[exec]", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgStore) UserByUsername(ctx context.Context, username string) (user, error) {
	return queryOne[user](ctx, s,
		`SELECT id, username, email, auth_token, password, created_at FROM users WHERE username = @username`,
		pgx.NamedArgs{"username": username})
}

func (s *pgStore) UserIDByToken(ctx context.Context, token string) (int, error) {
	var userID int
	err := s.db.QueryRow(ctx, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&userID)
	return userID, err
}

const profileColumns = `user_id, age, sex, height_cm, weight_kg, body_fat_percent, activity_level,
	target_weight_kg, daily_deficit, workout_split_percent, updated_at`

func (s *pgStore) Profile(ctx context.Context, userID int) (profileRow, error) {
	return queryOne[profileRow](ctx, s,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
}

func (s *pgStore) UpsertProfile(ctx context.Context, p profileRow) (profileRow, error) {
	return queryOne[profileRow](ctx, s, `
		INSERT INTO profiles (user_id, age, sex, height_cm, weight_kg, body_fat_percent, activity_level,
			target_weight_kg, daily_deficit, workout_split_percent, updated_at)
		VALUES (@userID, @age, @sex, @heightCm, @weightKg, @bodyFat, @activityLevel,
			@targetWeight, @dailyDeficit, @split, now())
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			sex = EXCLUDED.sex,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			body_fat_percent = EXCLUDED.body_fat_percent,
			activity_level = EXCLUDED.activity_level,
			target_weight_kg = EXCLUDED.target_weight_kg,
			daily_deficit = EXCLUDED.daily_deficit,
			workout_split_percent = EXCLUDED.workout_split_percent,
			updated_at = now()
		RETURNING `+profileColumns,
		pgx.NamedArgs{
			"userID":        p.UserID,
			"age":           p.Age,
			"sex":           p.Sex,
			"heightCm":      p.HeightCm,
			"weightKg":      p.WeightKg,
			"bodyFat":       p.BodyFatPercent,
			"activityLevel": p.ActivityLevel,
			"targetWeight":  p.TargetWeightKg,
			"dailyDeficit":  p.DailyDeficit,
			"split":         p.WorkoutSplitPercent,
		})
}

const mealColumns = `id, user_id, logged_at, food_label, calories, protein_g, carbs_g, fat_g, fiber_g, meal_type, created_at`

func (s *pgStore) Meals(ctx context.Context, userID int, from, to time.Time) ([]mealRow, error) {
	return queryMany[mealRow](ctx, s,
		`SELECT `+mealColumns+` FROM meal_log
		 WHERE user_id = @userID AND logged_at >= @from AND logged_at < @to
		 ORDER BY logged_at, id`,
		pgx.NamedArgs{"userID": userID, "from": from, "to": to})
}

func (s *pgStore) CreateMeal(ctx context.Context, m mealRow) (mealRow, error) {
	return queryOne[mealRow](ctx, s, `
		INSERT INTO meal_log (user_id, logged_at, food_label, calories, protein_g, carbs_g, fat_g, fiber_g, meal_type)
		VALUES (@userID, @loggedAt, @foodLabel, @calories, @protein, @carbs, @fat, @fiber, @mealType)
		RETURNING `+mealColumns,
		pgx.NamedArgs{
			"userID":    m.UserID,
			"loggedAt":  m.LoggedAt,
			"foodLabel": m.FoodLabel,
			"calories":  m.Calories,
			"protein":   m.ProteinG,
			"carbs":     m.CarbsG,
			"fat":       m.FatG,
			"fiber":     m.FiberG,
			"mealType":  m.MealType,
		})
}

func (s *pgStore) DeleteMeal(ctx context.Context, userID, id int) (bool, error) {
	n, err := s.exec(ctx, `DELETE FROM meal_log WHERE id = @id AND user_id = @userID`,
		pgx.NamedArgs{"id": id, "userID": userID})
	return n > 0, err
}

const workoutColumns = `id, user_id, logged_at, exercise_type, catalog_id, duration_minutes, intensity, sets,
	calories_burned, calories_overridden, created_at`

func (s *pgStore) Workouts(ctx context.Context, userID int, from, to time.Time) ([]workoutRow, error) {
	return queryMany[workoutRow](ctx, s,
		`SELECT `+workoutColumns+` FROM workout_log
		 WHERE user_id = @userID AND logged_at >= @from AND logged_at < @to
		 ORDER BY logged_at, id`,
		pgx.NamedArgs{"userID": userID, "from": from, "to": to})
}

func (s *pgStore) CreateWorkout(ctx context.Context, w workoutRow) (workoutRow, error) {
	args, err := workoutInsertArgs(w)
	if err != nil {
		return workoutRow{}, err
	}
	return queryOne[workoutRow](ctx, s, `
		INSERT INTO workout_log (user_id, logged_at, exercise_type, catalog_id, duration_minutes, intensity, sets,
			calories_burned, calories_overridden)
		VALUES (@userID, @loggedAt, @exerciseType, @catalogID, @duration, @intensity, @sets,
			@calories, @overridden)
		RETURNING `+workoutColumns, args)
}

// workoutInsertArgs binds a workout for insertion. The simple protocol sends
// every argument as untyped text, so the set list goes over as JSON text and
// Postgres casts it to jsonb. No sets binds NULL.
func workoutInsertArgs(w workoutRow) (pgx.NamedArgs, error) {
	var sets any
	if len(w.Sets) > 0 {
		b, err := json.Marshal(w.Sets)
		if err != nil {
			return nil, fmt.Errorf("encode sets: %w", err)
		}
		sets = string(b)
	}
	return pgx.NamedArgs{
		"userID":       w.UserID,
		"loggedAt":     w.LoggedAt,
		"exerciseType": w.ExerciseType,
		"catalogID":    w.CatalogID,
		"duration":     w.DurationMinutes,
		"intensity":    w.Intensity,
		"sets":         sets,
		"calories":     w.CaloriesBurned,
		"overridden":   w.CaloriesOverridden,
	}, nil
}

func (s *pgStore) DeleteWorkout(ctx context.Context, userID, id int) (bool, error) {
	n, err := s.exec(ctx, `DELETE FROM workout_log WHERE id = @id AND user_id = @userID`,
		pgx.NamedArgs{"id": id, "userID": userID})
	return n > 0, err
}

const waterColumns = `id, user_id, logged_at, amount_ml, created_at`

func (s *pgStore) Water(ctx context.Context, userID int, from, to time.Time) ([]waterRow, error) {
	return queryMany[waterRow](ctx, s,
		`SELECT `+waterColumns+` FROM water_log
		 WHERE user_id = @userID AND logged_at >= @from AND logged_at < @to
		 ORDER BY logged_at, id`,
		pgx.NamedArgs{"userID": userID, "from": from, "to": to})
}

func (s *pgStore) CreateWater(ctx context.Context, w waterRow) (waterRow, error) {
	return queryOne[waterRow](ctx, s, `
		INSERT INTO water_log (user_id, logged_at, amount_ml)
		VALUES (@userID, @loggedAt, @amountMl)
		RETURNING `+waterColumns,
		pgx.NamedArgs{"userID": w.UserID, "loggedAt": w.LoggedAt, "amountMl": w.AmountMl})
}

func (s *pgStore) EarliestLogDate(ctx context.Context, userID int) (*DateOnly, error) {
	var d DateOnly
	err := s.db.QueryRow(ctx, `
		SELECT MIN(d)::date FROM (
			SELECT MIN(logged_at AT TIME ZONE 'UTC') AS d FROM meal_log WHERE user_id = $1
			UNION ALL
			SELECT MIN(logged_at AT TIME ZONE 'UTC') FROM workout_log WHERE user_id = $1
			UNION ALL
			SELECT MIN(logged_at AT TIME ZONE 'UTC') FROM water_log WHERE user_id = $1
		) firsts`, userID).Scan(&d)
	if err != nil {
		return nil, err
	}
	if d.Time.IsZero() {
		return nil, nil
	}
	return &d, nil
}
