// CLI tool to apply pending SQL migrations from db/.
// Already-applied files are recorded in the migrations table and skipped;
// each file and its record insert run in one transaction.
// Usage: go run ./cmd/migrate [-dir db]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/config"
)

func main() {
	dir := flag.String("dir", "db", "directory holding *.sql migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBURL)
	if err != nil {
		logger.Fatal("unable to connect to database", zap.Error(err))
	}
	defer conn.Close(ctx)

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil || len(files) == 0 {
		logger.Fatal("no migration files found", zap.String("dir", *dir))
	}

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		logger.Fatal("read migrations table", zap.Error(err))
	}

	ran := 0
	for _, f := range pending(files, applied) {
		filename := filepath.Base(f)
		if err := apply(ctx, conn, f); err != nil {
			logger.Fatal("migration failed", zap.String("file", filename), zap.Error(err))
		}
		logger.Info("applied", zap.String("file", filename))
		ran++
	}

	if ran == 0 {
		logger.Info("no pending migrations")
	} else {
		logger.Info("migrations applied", zap.Int("count", ran))
	}
}

// appliedMigrations reads the migrations table. A missing table means
// nothing has been applied yet.
func appliedMigrations(ctx context.Context, conn *pgx.Conn) (map[string]bool, error) {
	var exists bool
	if err := conn.QueryRow(ctx, "SELECT to_regclass('migrations') IS NOT NULL").Scan(&exists); err != nil {
		return nil, err
	}
	applied := make(map[string]bool)
	if !exists {
		return applied, nil
	}

	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

// pending returns the files not yet applied, in filename order.
func pending(files []string, applied map[string]bool) []string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	var out []string
	for _, f := range sorted {
		if !applied[filepath.Base(f)] {
			out = append(out, f)
		}
	}
	return out
}

// apply runs one migration file and records it, atomically.
func apply(ctx context.Context, conn *pgx.Conn, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	filename := filepath.Base(path)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO migrations (migration, description) VALUES ($1, $2)",
		filename, descriptionFromFilename(filename)); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit(ctx)
}

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := datePrefix.ReplaceAllString(strings.TrimSuffix(filename, ".sql"), "")
	return strings.ReplaceAll(name, "-", " ")
}
