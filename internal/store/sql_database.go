package store

import (
	"database/sql"

	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/migrations"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"
)

// DB is a database connection together with the dialect specific helpers.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	dialect            string
}

// Migrate applies the embedded migrations that match the dialect of db.
func (db *DB) Migrate() error {
	if db.dialect == dialectSQLite {
		return migrations.MigrateClient(db.DB)
	}
	return migrations.Migrate(db.DB)
}
