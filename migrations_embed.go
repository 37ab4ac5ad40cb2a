package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"restaurant-till/db"
)

// The SQL files ship inside the binary, so `restaurant-till migrate` works
// from any working directory.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	name string
	sql  string
}

// readMigrations returns the .sql files under dir sorted by file name.
func readMigrations(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	var out []migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		out = append(out, migration{name: e.Name(), sql: string(b)})
	}
	return out, nil
}

// applyMigrations runs every embedded migration in one transaction.
func applyMigrations(ctx context.Context, log *zap.Logger) error {
	migs, err := readMigrations(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	err = pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		for _, m := range migs {
			if _, err := tx.Exec(ctx, m.sql); err != nil {
				return fmt.Errorf("apply migration %s: %w", m.name, err)
			}
			log.Debug("migration applied", zap.String("name", m.name))
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("migrations applied", zap.Int("count", len(migs)))
	return nil
}
