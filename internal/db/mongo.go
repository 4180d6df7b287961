package db

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/coursenotes/internal/config"
	"github.com/yigit/coursenotes/internal/pkg/helpers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB wraps a client and the application database
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDB creates a MongoDB client. The driver connects in the background,
// so an unreachable server is only reported by Ping.
func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	timeout := helpers.ParseDuration(cfg.Database.ConnectTimeout, 10*time.Second)
	opts := options.Client().
		ApplyURI(cfg.DatabaseURL()).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if cfg.Database.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.Database.MaxOpenConns))
	}
	if cfg.Database.MaxIdleConns > 0 {
		opts.SetMinPoolSize(uint64(cfg.Database.MaxIdleConns))
	}

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Database.Name),
	}, nil
}

// Ping verifies the primary is reachable
func (m *MongoDB) Ping(ctx context.Context) error {
	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to reach mongo: %w", err)
	}
	return nil
}

// Close disconnects the client
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
