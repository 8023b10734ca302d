package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/01moynul/plantsy-golang/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const pingTimeout = 2 * time.Second

// OpenDB opens the connection pool described by cfg, verifies it with a ping
// and makes sure the plant table exists. The returned Dialect must be used for
// every query issued against the pool.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := OpenDBWithDSN(ctx, dialect, cfg.DSN)
	if err != nil {
		return nil, Dialect{}, err
	}

	if err := CreateTables(ctx, db, dialect); err != nil {
		db.Close()
		return nil, Dialect{}, err
	}

	return db, dialect, nil
}

// OpenDBWithDSN creates and configures a pool for the given dialect and DSN.
func OpenDBWithDSN(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if dialect.Name == config.DriverSQLite {
		// An in-memory sqlite database lives and dies with its connection,
		// so the pool is pinned to a single long-lived one.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pctx); err != nil {
		db.Close()
		log.Printf("Error connecting to %s database: %v", dialect.Name, err)
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if dialect.Name == config.DriverSQLite && dsn != ":memory:" {
		if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
			db.Close()
			return nil, fmt.Errorf("db pragma: %w", err)
		}
	}

	log.Printf("Database connection pool established successfully (%s)", dialect.Name)
	return db, nil
}

// CreateTables creates the plant table when it does not exist yet.
func CreateTables(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if _, err := db.ExecContext(ctx, dialect.CreatePlantTable); err != nil {
		return fmt.Errorf("create plant table: %w", err)
	}
	return nil
}
