package database

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/growthapp/garden/core"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var schema = map[string]string{
	DriverSQLite: `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`,
	DriverPostgres: `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`,
}

// Open connects to the SQL database configured in conf.Storage, waits for it to be ready and migrates it.
func Open(conf *core.Config) (*sqlx.DB, error) {
	driver := conf.Storage.Driver
	dsn := strings.TrimSpace(conf.Storage.DSN)
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = "file:garden.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, errors.New("postgres storage requires a DSN")
		}
	default:
		return nil, errors.Errorf("unsupported SQL driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if driver == DriverSQLite {
		// sqlite serializes writers, and every :memory: connection is its own database
		db.SetMaxOpenConns(1)
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	if err = Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate creates the key-value table if it does not exist.
func Migrate(db *sqlx.DB) error {
	ddl, ok := schema[db.DriverName()]
	if !ok {
		return errors.Errorf("no schema for driver %q", db.DriverName())
	}
	if _, err := db.Exec(ddl); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
