package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"

	"feiyi/pkg/config"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Dialect captures the SQL differences between the supported drivers.
type Dialect struct {
	Name        string
	Placeholder squirrel.PlaceholderFormat
	// containsFunc is a two-argument function returning the 1-based position
	// of a substring, or 0. It is case-sensitive and has no wildcards.
	containsFunc string
}

var (
	SQLite   = Dialect{Name: config.DriverSQLite, Placeholder: squirrel.Question, containsFunc: "instr"}
	Postgres = Dialect{Name: config.DriverPostgres, Placeholder: squirrel.Dollar, containsFunc: "strpos"}
)

// Builder returns a squirrel statement builder using the dialect's placeholders.
func (d Dialect) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder)
}

// Contains matches rows whose column contains keyword as a raw substring.
func (d Dialect) Contains(column, keyword string) squirrel.Sqlizer {
	return squirrel.Expr(fmt.Sprintf("%s(%s, ?) > 0", d.containsFunc, column), keyword)
}

// ContainsAny ORs Contains over several columns.
func (d Dialect) ContainsAny(keyword string, columns ...string) squirrel.Sqlizer {
	or := squirrel.Or{}
	for _, c := range columns {
		or = append(or, d.Contains(c, keyword))
	}
	return or
}

// DB is the content store handle shared by all repositories.
type DB struct {
	*sql.DB
	Dialect Dialect

	closeFn func()
}

// Open connects to the configured driver and applies pending migrations.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	var (
		db      *sql.DB
		dialect Dialect
		closeFn func()
		err     error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		dialect = Postgres
		db, closeFn, err = openPostgres(ctx, cfg, logger)
	case config.DriverSQLite, "":
		dialect = SQLite
		db, err = openSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	d := &DB{DB: db, Dialect: dialect, closeFn: closeFn}
	if err := d.migrate(ctx, logger); err != nil {
		d.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// Close releases the connection and, for postgres, the underlying pool.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.closeFn != nil {
		d.closeFn()
	}
	return err
}

func (d *DB) migrate(ctx context.Context, logger *zap.Logger) error {
	if _, err := d.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	dir := "migrations/" + d.Dialect.Name
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			return fmt.Errorf("parsing migration version from %q: %w", entry.Name(), err)
		}

		applied, err := d.migrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		content, err := migrationsFS.ReadFile(dir + "/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}
		if err := d.applyMigration(ctx, version, string(content)); err != nil {
			return err
		}
		logger.Info("Applied migration", zap.Int("version", version), zap.String("dialect", d.Dialect.Name))
	}
	return nil
}

func (d *DB) migrationApplied(ctx context.Context, version int) (bool, error) {
	query, args, err := d.Dialect.Builder().
		Select("COUNT(*)").From("schema_version").
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := d.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("checking migration %d: %w", version, err)
	}
	return n > 0, nil
}

func (d *DB) applyMigration(ctx context.Context, version int, content string) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(content) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
	}

	query, args, err := d.Dialect.Builder().Insert("schema_version").Columns("version").Values(version).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("recording migration %d: %w", version, err)
	}
	return tx.Commit()
}

// AppliedMigrations returns applied migration versions in ascending order.
func (d *DB) AppliedMigrations(ctx context.Context) ([]int, error) {
	rows, err := d.QueryContext(ctx, "SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func splitStatements(content string) []string {
	var out []string
	for _, s := range strings.Split(content, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
