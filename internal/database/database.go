package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
)

// OpenDB creates and configures the MySQL connection pool for the
// given DSN. The DSN must include parseTime=true so that DATETIME
// columns scan into time.Time.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Ping the database to verify the connection before anything
	// else starts depending on it.
	if err := db.Ping(); err != nil {
		logger.Errorf("Error connecting to database: %v", err)
		return nil, err
	}

	logger.Info("Database connection pool established")
	return db, nil
}
