// Package mongo connects to the document store holding users and orders.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kailas-cloud/storeguard/internal/db"
)

// ErrConnect is returned when no connection attempt succeeded.
var ErrConnect = errors.New("failed to connect to mongo")

// Compile-time check: Store implements db.Pinger.
var _ db.Pinger = (*Store)(nil)

// Config holds connection parameters for a MongoDB deployment.
type Config struct {
	URI            string
	Username       string
	Password       string
	AuthSource     string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	RetryAttempts  int
	RetryInterval  time.Duration
}

// Store wraps a connected client and the application database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects and pings, retrying up to cfg.RetryAttempts times.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}
	attempts := max(cfg.RetryAttempts, 1)

	var lastErr error
	for i := range attempts {
		client, err := mongo.Connect(clientOptions(cfg))
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return &Store{client: client, db: client.Database(cfg.Database)}, nil
			}
			_ = client.Disconnect(context.Background())
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnect, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, errors.Join(ErrConnect, lastErr)
}

func clientOptions(cfg Config) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.Username != "" {
		cred := options.Credential{Username: cfg.Username, Password: cfg.Password}
		if cfg.AuthSource != "" {
			cred.AuthSource = cfg.AuthSource
		}
		opts.SetAuth(cred)
	}
	return opts
}

// Ping checks connectivity with a lightweight server round trip.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Collection returns a handle on the named collection of the application database.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
