package infrastructure

import (
	"context"

	"Pocketbook/config"
	appErrors "Pocketbook/internal/errors"
	"Pocketbook/internal/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// NewMongo connects to cfg.Database.URI and verifies the server answers
// before returning, so that a misconfigured deployment fails at start-up.
func NewMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetAppName(cfg.App.Name).
		SetTimeout(cfg.Database.Timeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		logger.Error().
			Err(err).
			Str("database", cfg.Database.Name).
			Msg("failed to create mongodb client")
		return nil, appErrors.ErrStorageUnavailable.WithError(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Error().
			Err(err).
			Str("database", cfg.Database.Name).
			Msg("mongodb did not answer ping")
		_ = client.Disconnect(context.Background())
		return nil, appErrors.ErrStorageUnavailable.WithError(err)
	}

	logger.Info().
		Str("database", cfg.Database.Name).
		Msg("connected to mongodb")

	return client, nil
}
