package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"nlu-router/internal/recognizer/repository"
	"nlu-router/pkg/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversation_contexts (
	key        TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

type implRepository struct {
	db  *sql.DB
	opt repository.Options
	l   log.Logger
	now func() time.Time
}

// New opens (or creates) the SQLite database at path and ensures the schema exists.
func New(ctx context.Context, path string, opt repository.Options, l log.Logger) (repository.Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open %s: %w", path, err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: migrate: %w", err)
	}

	l.Infof(ctx, "sqlite.New: context store at %s", path)
	return &implRepository{
		db:  db,
		opt: opt.WithDefaults(),
		l:   l,
		now: time.Now,
	}, nil
}
