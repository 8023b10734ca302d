package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/01moynul/plantsy-golang/internal/config"
)

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	Name       string
	DriverName string

	// ReturningID is set when inserts report the new key through
	// "RETURNING id" instead of LastInsertId.
	ReturningID bool

	// Numbered is set when placeholders are $1, $2, ... instead of ?.
	Numbered bool

	CreatePlantTable string
}

var dialects = map[string]Dialect{
	config.DriverSQLite: {
		Name:       config.DriverSQLite,
		DriverName: "sqlite",
		CreatePlantTable: `
		CREATE TABLE IF NOT EXISTS plant (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			image TEXT NOT NULL,
			price REAL NOT NULL,
			is_in_stock BOOLEAN NOT NULL DEFAULT 0
		);`,
	},
	config.DriverMySQL: {
		Name:       config.DriverMySQL,
		DriverName: "mysql",
		CreatePlantTable: `
		CREATE TABLE IF NOT EXISTS plant (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			image TEXT NOT NULL,
			price DOUBLE NOT NULL,
			is_in_stock BOOLEAN NOT NULL DEFAULT FALSE
		);`,
	},
	config.DriverPostgres: {
		Name:        config.DriverPostgres,
		DriverName:  "pgx",
		ReturningID: true,
		Numbered:    true,
		CreatePlantTable: `
		CREATE TABLE IF NOT EXISTS plant (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			image TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			is_in_stock BOOLEAN NOT NULL DEFAULT FALSE
		);`,
	},
}

// DialectFor returns the dialect registered for a DB_DRIVER value.
func DialectFor(driver string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(driver)]
	if !ok {
		return Dialect{}, fmt.Errorf("database: unsupported driver %q", driver)
	}
	return d, nil
}

// Rebind rewrites ? placeholders into the dialect's native form.
// Queries in this repo never contain a literal '?', so no quoting rules apply.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
