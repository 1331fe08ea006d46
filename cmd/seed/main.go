// Package main provides a CLI tool that creates the example schema and seeds
// demo data.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"querykit/internal/core/id"
	"querykit/internal/domain/example"
	"querykit/internal/infrastructure/storage/postgres"
	"querykit/pkg/logger"
)

//go:embed schema.sql
var schema string

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema applied")

	if os.Getenv("SEED_DEMO_DATA") != "false" {
		txm := postgres.NewTxManager(pool)
		if err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
			return seedDemoData(ctx, txm)
		}); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

type exampleSeed struct {
	name     string
	price    string
	category string
}

var demoExamples = []exampleSeed{
	{"Top hammer", "19.90", "tools"},
	{"Laptop stand", "45.00", "office"},
	{"Stopwatch", "12.50", "sports"},
	{"Screwdriver set", "24.99", "tools"},
	{"Desk lamp", "31.00", "office"},
	{"Football", "18.00", "sports"},
	{"Spinning top", "4.50", "toys"},
	{"Puzzle box", "15.75", ""},
}

func seedDemoData(ctx context.Context, txm *postgres.TxManager) error {
	q := txm.GetQuerier(ctx)
	batch := postgres.NewBatchWriter(txm)

	categories := []string{"tools", "office", "sports", "toys"}
	upserts := make([]postgres.BatchQuery, 0, len(categories))
	for _, name := range categories {
		upserts = append(upserts, postgres.BatchQuery{
			SQL:  `INSERT INTO cat_categories (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			Args: []any{id.New(), name},
		})
	}
	if err := batch.Exec(ctx, upserts); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	categoryIDs := make(map[string]id.ID, len(categories))
	rows, err := q.Query(ctx, `SELECT id, name FROM cat_categories`)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	for rows.Next() {
		var (
			catID id.ID
			name  string
		)
		if err := rows.Scan(&catID, &name); err != nil {
			rows.Close()
			return fmt.Errorf("scan category: %w", err)
		}
		categoryIDs[name] = catID
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	var existing int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM examples`).Scan(&existing); err != nil {
		return fmt.Errorf("count examples: %w", err)
	}
	if existing > 0 {
		logger.Info(ctx, "examples already seeded", "count", existing)
		return nil
	}

	copyRows := make([][]any, 0, len(demoExamples))
	for _, s := range demoExamples {
		e := example.NewExample(s.name, decimal.RequireFromString(s.price))
		if catID, ok := categoryIDs[s.category]; ok {
			e.CategoryID = &catID
		}
		copyRows = append(copyRows, []any{e.ID, e.Name, numeric(e.Price), e.CategoryID, e.CreatedAt, e.UpdatedAt})
	}

	n, err := batch.Copy(ctx, "examples",
		[]string{"id", "name", "price", "category_id", "created_at", "updated_at"},
		copyRows,
	)
	if err != nil {
		return err
	}

	logger.Info(ctx, "demo data seeded", "categories", len(categoryIDs), "examples", n)
	return nil
}

// numeric converts d for the binary COPY protocol.
func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
