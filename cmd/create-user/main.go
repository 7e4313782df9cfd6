// CLI tool to create a user with a bcrypt-hashed password and, optionally, a
// starting biometric profile with the default deficit plan.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/harryz-code/network-school-fitness-sub000/internal/config"
	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

const (
	defaultDailyDeficit        = 500.0
	defaultWorkoutSplitPercent = 40.0
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	in := bufio.NewReader(os.Stdin)
	username := prompt(in, "Username: ")
	email := prompt(in, "Email: ")
	password := prompt(in, "Password: ")
	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Username and password are required")
		os.Exit(1)
	}

	fmt.Println("\nStarting profile (leave age blank to skip):")
	profile, err := readProfile(in, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid profile: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}
	authToken := uuid.New().String()

	tx, err := conn.Begin(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting transaction: %v\n", err)
		os.Exit(1)
	}
	defer tx.Rollback(ctx)

	var userID int
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		username, email, string(hash), authToken,
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	if profile != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO profiles (user_id, age, sex, height_cm, weight_kg, activity_level, daily_deficit, workout_split_percent)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			userID, profile.Age, string(profile.Sex), profile.HeightCm, profile.WeightKg,
			string(profile.ActivityLevel), defaultDailyDeficit, defaultWorkoutSplitPercent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
			os.Exit(1)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error committing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", userID)
	fmt.Printf("  Username:   %s\n", username)
	fmt.Printf("  Auth Token: %s\n", authToken)
	if profile != nil {
		t := health.ComputeEnergyTargets(*profile, defaultDailyDeficit)
		fmt.Printf("  TDEE:       %.0f kcal\n", t.TDEE)
		fmt.Printf("  Target:     %.0f kcal/day\n", t.RecommendedCalories)
	}
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// readProfile asks for the required biometrics. A blank age skips the
// profile and returns nil; anything entered must pass health.ValidateProfile.
func readProfile(in *bufio.Reader, out io.Writer) (*health.Profile, error) {
	ask := func(label string) string {
		fmt.Fprint(out, label)
		line, _ := in.ReadString('\n')
		return strings.TrimSpace(line)
	}

	ageText := ask("  Age: ")
	if ageText == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		return nil, errors.New("age must be a whole number")
	}
	sex := ask("  Sex (male/female/other): ")
	height, err := strconv.ParseFloat(ask("  Height (cm): "), 64)
	if err != nil {
		return nil, errors.New("height must be a number")
	}
	weight, err := strconv.ParseFloat(ask("  Weight (kg): "), 64)
	if err != nil {
		return nil, errors.New("weight must be a number")
	}
	activity := ask("  Activity (sedentary/light/moderate/active/very_active) [sedentary]: ")
	if activity == "" {
		activity = string(health.ActivitySedentary)
	}

	p := health.Profile{
		Age:           age,
		Sex:           health.Sex(strings.ToLower(sex)),
		HeightCm:      height,
		WeightKg:      weight,
		ActivityLevel: health.ActivityLevel(strings.ToLower(activity)),
	}
	if err := health.ValidateProfile(p); err != nil {
		return nil, err
	}
	return &p, nil
}
