// internal/words/sqlite.go
//
// SQLite-backed dictionary.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Loading and seeding the words table.

package words

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
)

//go:embed sql/*.sql
var migrations embed.FS

// OpenDB opens (and creates if missing) a SQLite database file and applies
// pending migrations.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/words.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// migrate applies each embedded *.sql file once, in lexical order, inside
// its own transaction.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// SQLiteSource loads the dictionary from the words table.
type SQLiteSource struct {
	DB *sql.DB
	// Name identifies the database in errors (typically the DSN).
	Name string
}

func (s SQLiteSource) Load(ctx context.Context) ([]game.Word, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT word FROM words ORDER BY word`)
	if err != nil {
		return nil, &ReadError{Source: s.source(), Err: err}
	}
	defer rows.Close()

	var out []game.Word
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, &ReadError{Source: s.source(), Err: err}
		}
		if w, err := game.ParseWord(raw); err == nil {
			out = append(out, w)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &ReadError{Source: s.source(), Err: err}
	}
	if len(out) == 0 {
		return nil, &ReadError{Source: s.source(), Err: ErrNoWords}
	}
	return out, nil
}

func (s SQLiteSource) source() string {
	if s.Name != "" {
		return "sqlite:" + s.Name
	}
	return "sqlite"
}

// Seed inserts list into the words table in one transaction.
// Existing words are ignored. It returns the number of rows added.
func Seed(ctx context.Context, db *sql.DB, list []game.Word) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word) VALUES (?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range list {
		res, err := stmt.ExecContext(ctx, string(w))
		if err != nil {
			return added, fmt.Errorf("seed %s: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return added, nil
}

// Count returns the number of stored words.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n)
	return n, err
}
