// internal/words/resolve.go
//
// Picks the dictionary source from configuration and seeds an empty SQLite
// dictionary on first use.

package words

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Resolve picks the dictionary source from configuration:
//
//  1. dbPath set: SQLite. An empty words table is seeded from filePath,
//     or from the embedded list when filePath is empty.
//  2. filePath set: that flat file.
//  3. Neither: the embedded list.
//
// The returned Closer releases the database, if one was opened.
func Resolve(ctx context.Context, dbPath, filePath string) (Source, io.Closer, error) {
	var flat Source = EmbeddedSource{}
	if filePath != "" {
		flat = FileSource{Path: filePath}
	}
	if dbPath == "" {
		return flat, nopCloser{}, nil
	}

	db, err := OpenDB(ctx, dbPath)
	if err != nil {
		return nil, nil, &ReadError{Source: "sqlite:" + dbPath, Err: err}
	}
	n, err := Count(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, &ReadError{Source: "sqlite:" + dbPath, Err: err}
	}
	if n == 0 {
		list, err := flat.Load(ctx)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		added, err := Seed(ctx, db, list)
		if err != nil {
			_ = db.Close()
			return nil, nil, &ReadError{Source: "sqlite:" + dbPath, Err: err}
		}
		log.Info().Int("words", added).Str("db", dbPath).Msg("seeded dictionary")
	}
	return SQLiteSource{DB: db, Name: dbPath}, db, nil
}
