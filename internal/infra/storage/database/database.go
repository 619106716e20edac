package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

var (
	// ErrOpen возвращается, если не удалось открыть соединение с БД
	ErrOpen = errors.New("database: failed to open")

	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("database: failed to migrate")
)

// Open открывает пул соединений и настраивает его под драйвер.
// SQLite работает с одним соединением: запись сериализуется блокировкой базы.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, psqlbuilder.Dialect, error) {
	dialect, err := psqlbuilder.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrOpen, err)
	}

	driverName := "postgres"
	if dialect == psqlbuilder.SQLite {
		driverName = "sqlite3"
	}

	db, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrOpen, err)
	}

	if dialect == psqlbuilder.SQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("%w: ping: %v", ErrOpen, err)
	}

	return db, dialect, nil
}

// Migrate применяет встроенные миграции диалекта, которые ещё не записаны в schema_migrations
func Migrate(ctx context.Context, db *sql.DB, dialect psqlbuilder.Dialect) ([]string, error) {
	dir := path.Join("migrations", string(dialect))

	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMigrate, dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".sql" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("%w: create schema_migrations: %v", ErrMigrate, err)
	}

	builder := psqlbuilder.New(dialect)
	applied := make([]string, 0)

	for _, name := range names {
		query, args, err := builder.Select("COUNT(*)").From("schema_migrations").
			Where("version = ?", name).ToSql()
		if err != nil {
			return applied, fmt.Errorf("%w: %v", ErrMigrate, err)
		}

		var count int
		if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
			return applied, fmt.Errorf("%w: check %s: %v", ErrMigrate, name, err)
		}
		if count > 0 {
			continue
		}

		script, err := migrations.ReadFile(path.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("%w: read %s: %v", ErrMigrate, name, err)
		}

		if err := applyMigration(ctx, db, builder, name, string(script)); err != nil {
			return applied, err
		}
		applied = append(applied, name)
	}

	return applied, nil
}

func applyMigration(ctx context.Context, db *sql.DB, builder psqlbuilder.Builder, name, script string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %v", ErrMigrate, name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("%w: apply %s: %v", ErrMigrate, name, err)
	}

	query, args, err := builder.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(name, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: record %s: %v", ErrMigrate, name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %v", ErrMigrate, name, err)
	}
	return nil
}
