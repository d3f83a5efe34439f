// Package storage persists keys and protocol sessions in a badger
// database. Rows are grouped into typed tables and encoded as CBOR.
package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Options configures Open.
type Options struct {
	// InMemory keeps all data in memory. The path is ignored.
	InMemory bool
	Logger   zerolog.Logger
}

// Storage is a badger database shared by any number of tables.
type Storage struct {
	db       *badger.DB
	inMemory bool
	log      zerolog.Logger
}

// Open opens or creates the database at path.
func Open(path string, opts Options) (*Storage, error) {
	bopts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{opts.Logger.With().Str("component", "badger").Logger()})
	if opts.InMemory {
		bopts = bopts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", path, err)
	}
	opts.Logger.Debug().Str("path", path).Bool("in_memory", opts.InMemory).Msg("storage opened")

	return &Storage{db: db, inMemory: opts.InMemory, log: opts.Logger}, nil
}

// Flush syncs pending writes to disk.
func (s *Storage) Flush() error {
	if s.inMemory {
		return nil
	}
	if err := s.db.Sync(); err != nil {
		return fmt.Errorf("storage: flush: %w", err)
	}
	return nil
}

// Close flushes and closes the database.
func (s *Storage) Close() error {
	return errors.Join(s.Flush(), s.db.Close())
}

// badgerLogger routes badger's log output through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}
