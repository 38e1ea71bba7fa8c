// Package log provides a zerolog-based package logger. Events go to the
// console, and optionally to a SQLite history database that the history
// command reads back.
package log

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

var (
	pkgLogger        = zerolog.Nop()
	dbWriterInstance *sqliteWriter
	dbHandle         *sql.DB
	mu               sync.RWMutex
	timeFieldFormat  = time.RFC3339Nano

	ErrNotInitialized = errors.New("log: history database not initialized, call log.Init() first")
)

type sqliteWriter struct {
	db   *sql.DB
	stmt *sql.Stmt
	mu   sync.Mutex
}

func newSQLiteWriter(dbPath string) (*sqliteWriter, *sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode=wal&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite db %s: %w", dbPath, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping sqlite db %s: %w", dbPath, err)
	}

	_, err = db.Exec(`
    CREATE TABLE IF NOT EXISTS events (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
        event TEXT NOT NULL
    );`)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create events table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_events_level ON events (json_extract(event, '$.level'));`)
	if err != nil {
		stdlog.Printf("Warning: failed to create level index: %v\n", err)
	}

	stmt, err := db.Prepare(`INSERT INTO events (event) VALUES (?)`)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	return &sqliteWriter{db: db, stmt: stmt}, db, nil
}

func (w *sqliteWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.stmt.Exec(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *sqliteWriter) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing statement: %w", err))
		}
		w.stmt = nil
	}
	if w.db != nil {
		if err := w.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing db: %w", err))
		}
		w.db = nil
	}
	return errors.Join(errs...)
}

// SetStd sends events to a console writer on stderr. An open history
// database keeps receiving events.
func SetStd(debug bool) {
	setOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, debug)
}

// SetOutput sends events to w as JSON lines.
func SetOutput(w io.Writer, debug bool) {
	setOutput(w, debug)
}

func setOutput(w io.Writer, debug bool) {
	mu.Lock()
	defer mu.Unlock()
	out := w
	if dbWriterInstance != nil {
		out = zerolog.MultiLevelWriter(w, dbWriterInstance)
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = timeFieldFormat
	pkgLogger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Init opens (or creates) the history database at dbPath and adds it as an
// event sink next to the console.
func Init(dbPath string, debug bool) error {
	if dbPath == "" {
		return fmt.Errorf("log: history needs an explicit database path")
	}

	mu.Lock()
	if dbWriterInstance != nil {
		mu.Unlock()
		return fmt.Errorf("log: history already initialized")
	}
	writer, db, err := newSQLiteWriter(dbPath)
	if err != nil {
		mu.Unlock()
		return fmt.Errorf("failed to create SQLite writer: %w", err)
	}
	dbWriterInstance = writer
	dbHandle = db
	mu.Unlock()

	SetStd(debug)
	return nil
}

// Close closes the history database. Console logging continues.
func Close() error {
	mu.Lock()
	w := dbWriterInstance
	dbWriterInstance = nil
	dbHandle = nil
	level := pkgLogger.GetLevel()
	mu.Unlock()

	if w == nil {
		return nil
	}
	SetStd(level == zerolog.DebugLevel)
	if err := w.close(); err != nil {
		return fmt.Errorf("error closing SQLite history: %w", err)
	}
	return nil
}

func Debug() *zerolog.Event { return pkgLogger.Debug() }
func Info() *zerolog.Event  { return pkgLogger.Info() }
func Warn() *zerolog.Event  { return pkgLogger.Warn() }
func Error() *zerolog.Event { return pkgLogger.Error() }

// Printf sends an info event with no extra fields.
// Arguments are handled in the manner of fmt.Printf.
func Printf(format string, v ...any) {
	pkgLogger.Info().CallerSkipFrame(1).Msgf(format, v...)
}
