package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

// Sources holds one connection pool per upstream database. The reporting
// API only ever reads from them; there is no write path.
type Sources struct {
	Admin    *sql.DB // locations, cities, variants, products
	Customer *sql.DB // orders, order items, users
	IMS      *sql.DB // location inventories and their movement logs
	Machine  *sql.DB // scale sensor readings
}

func NewPostgresConnection(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping the database: %w", err)
	}

	return db, nil
}

// OpenSources dials all four upstream databases from their environment
// URLs. A missing URL or unreachable database is fatal: the API never
// serves partially-sourced responses.
func OpenSources() (*Sources, error) {
	sources := &Sources{}
	for _, target := range []struct {
		env string
		db  **sql.DB
	}{
		{"ADMIN_DATABASE_URL", &sources.Admin},
		{"CUSTOMER_DATABASE_URL", &sources.Customer},
		{"IMS_DATABASE_URL", &sources.IMS},
		{"MACHINE_DATABASE_URL", &sources.Machine},
	} {
		dbURL := os.Getenv(target.env)
		if dbURL == "" {
			return nil, fmt.Errorf("%s environment variable is not set", target.env)
		}
		db, err := NewPostgresConnection(dbURL)
		if err != nil {
			return nil, fmt.Errorf("connecting %s: %w", target.env, err)
		}
		*target.db = db
	}
	return sources, nil
}

func (s *Sources) Close() {
	for _, db := range []*sql.DB{s.Admin, s.Customer, s.IMS, s.Machine} {
		if db != nil {
			db.Close()
		}
	}
}
