package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrValidation     = errors.New("missing or invalid field")
	ErrDuplicateOrder = errors.New("leg order already taken for this shipment")
	ErrUnavailable    = errors.New("store unavailable")
)

// Store wraps the Mongo client so availability can be checked before
// issuing queries. Injected everywhere; there is no package-level
// connection state.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

// Available pings the deployment with a short deadline. The health
// endpoint uses it as a circuit breaker; repositories classify failed
// queries into ErrUnavailable themselves.
func (s *Store) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary()) == nil
}

// classify maps driver errors to the repository taxonomy. A missing
// document and an unreachable store must never look the same to callers.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return ErrUnavailable
	}
	return err
}
