package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported driver names
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps the sqlx handle together with the driver it was opened with,
// so repositories can pick dialect-specific SQL without consulting the
// environment on every query.
type DB struct {
	*sqlx.DB
	Driver string
}

// Connect opens a database connection based on DB_TYPE. With DB_TYPE=sqlite
// (the default) it opens SQLITE_PATH, falling back to data/flashcards.db.
// With DB_TYPE=postgres it opens DATABASE_URL.
func Connect() (*DB, error) {
	switch os.Getenv("DB_TYPE") {
	case DriverPostgres:
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		return ConnectPostgres(dsn)
	case DriverSQLite, "":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = filepath.Join("data", "flashcards.db")
		}
		return ConnectSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", os.Getenv("DB_TYPE"))
	}
}

// ConnectSQLite opens (creating if needed) a SQLite database file
func ConnectSQLite(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Cascade deletes depend on this pragma
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	wrapped := &DB{DB: db, Driver: DriverSQLite}
	if err := wrapped.InitSchema(); err != nil {
		return nil, err
	}
	return wrapped, nil
}

// ConnectPostgres opens a PostgreSQL database
func ConnectPostgres(dsn string) (*DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	wrapped := &DB{DB: db, Driver: DriverPostgres}
	if err := wrapped.InitSchema(); err != nil {
		return nil, err
	}
	return wrapped, nil
}

// serialPK returns the dialect's auto-incrementing primary key column type
func (db *DB) serialPK() string {
	if db.Driver == DriverPostgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// InitSchema creates the tables and indexes if they don't exist
func (db *DB) InitSchema() error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				telegram_id BIGINT UNIQUE NOT NULL,
				username TEXT,
				notification_enabled BOOLEAN NOT NULL DEFAULT true,
				notification_hour INTEGER NOT NULL DEFAULT 9,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`, db.serialPK()),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS cards (
				id %s,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				front TEXT NOT NULL,
				back TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(user_id, front)
			)
		`, db.serialPK()),
		`
			CREATE TABLE IF NOT EXISTS card_schedules (
				card_id BIGINT PRIMARY KEY REFERENCES cards(id) ON DELETE CASCADE,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				ease_factor REAL NOT NULL DEFAULT 2.5,
				interval_days INTEGER NOT NULL DEFAULT 1,
				repetitions INTEGER NOT NULL DEFAULT 0,
				next_due_at TIMESTAMP NOT NULL,
				last_reviewed_at TIMESTAMP,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
		`
			CREATE TABLE IF NOT EXISTS review_history (
				id TEXT PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				card_id BIGINT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
				quality INTEGER NOT NULL,
				correct BOOLEAN NOT NULL,
				ease_before REAL NOT NULL,
				ease_after REAL NOT NULL,
				interval_before INTEGER NOT NULL,
				interval_after INTEGER NOT NULL,
				latency_seconds INTEGER NOT NULL DEFAULT 0,
				reviewed_at TIMESTAMP NOT NULL
			)
		`,
		`
			CREATE TABLE IF NOT EXISTS daily_stats (
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				stat_date TEXT NOT NULL,
				cards_reviewed INTEGER NOT NULL DEFAULT 0,
				cards_learned INTEGER NOT NULL DEFAULT 0,
				correct_answers INTEGER NOT NULL DEFAULT 0,
				total_answers INTEGER NOT NULL DEFAULT 0,
				study_minutes INTEGER NOT NULL DEFAULT 0,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (user_id, stat_date)
			)
		`,
		`
			CREATE TABLE IF NOT EXISTS study_streaks (
				user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				current_streak INTEGER NOT NULL DEFAULT 0,
				longest_streak INTEGER NOT NULL DEFAULT 0,
				last_study_date TEXT,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
		`CREATE INDEX IF NOT EXISTS idx_card_schedules_due ON card_schedules(user_id, next_due_at)`,
		`CREATE INDEX IF NOT EXISTS idx_review_history_user ON review_history(user_id, reviewed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_review_history_card ON review_history(card_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}
