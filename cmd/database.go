package cmd

import (
	"context"
	"errors"

	"github.com/finantrack/cartola/config"
	"github.com/finantrack/cartola/ingest"
	"github.com/finantrack/cartola/integrations/postgres"
)

// openService connects to PostgreSQL, ensures the schema and wires the
// ingestion service on top of it. The caller closes the returned DB.
func openService(ctx context.Context, dbURL string) (*postgres.DB, *ingest.Service, error) {
	if dbURL == "" {
		dbURL = config.DatabaseURL()
	}
	if dbURL == "" {
		return nil, nil, errors.New("--db-url, database.url or DATABASE_URL is required")
	}

	appLog.Info().Msg("connecting to database")
	db, err := postgres.Connect(ctx, dbURL)
	if err != nil {
		return nil, nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	appLog.Debug().Msg("database schema ready")

	return db, ingest.NewService(db, db, config.IngestSettings()), nil
}
