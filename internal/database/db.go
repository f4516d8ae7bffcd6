// Package database opens the relational store that holds custom roles and
// dynamic role permissions, and applies its schema migrations.
package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB wraps *sql.DB with the driver name so queries can be rebound to the
// driver's placeholder style.
type DB struct {
	*sql.DB
	Driver string
}

// Open opens a database. For sqlite3 the dsn is a file path; for postgres
// it is a connection URL.
func Open(driver, dsn string) (*DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverSQLite:
		db, err = sql.Open(DriverSQLite, fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", dsn))
		if err == nil {
			db.SetMaxOpenConns(1) // sqlite
		}
	case DriverPostgres:
		db, err = sql.Open(DriverPostgres, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	return &DB{DB: db, Driver: driver}, nil
}

// Rebind rewrites '?' placeholders as $1, $2, ... for postgres.
func (db *DB) Rebind(query string) string {
	if db.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
