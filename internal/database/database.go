package database

import (
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func Connect(dsn string, log *logrus.Entry) (*gorm.DB, error) {
	if isPostgres(dsn) {
		log.Info("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.WithField("dsn", dsn).Info("Using SQLite for local development")

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// ConnectSQLX opens the sqlx handle used by the lead and discount
// verticals. Postgres only; local sqlite development runs without them.
func ConnectSQLX(dsn string) (*sqlx.DB, error) {
	if !isPostgres(dsn) {
		return nil, nil
	}
	return sqlx.Connect("postgres", dsn)
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
