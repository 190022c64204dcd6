package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kailas-cloud/storeguard/internal/db"
	mongostore "github.com/kailas-cloud/storeguard/internal/db/mongo"
	domorder "github.com/kailas-cloud/storeguard/internal/domain/order"
	"github.com/kailas-cloud/storeguard/internal/repository/dberr"
)

// CollectionName is the collection holding orders.
const CollectionName = "pedidos"

// collection is the consumer interface over *mongo.Collection (ISP).
type collection interface {
	InsertOne(
		ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions],
	) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
}

// Repo implements usecase/order.Repository.
type Repo struct {
	coll collection
	now  func() time.Time
}

// New creates an order repository.
func New(c collection) *Repo {
	return &Repo{coll: c, now: time.Now}
}

// Insert stores o under a fresh UUID and returns it with that id and its creation time.
func (r *Repo) Insert(ctx context.Context, o domorder.Order) (domorder.Order, error) {
	orderID := uuid.NewString()
	createdAt := r.now().UTC().Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, toDTO(o, bson.NewObjectID(), orderID, createdAt)); err != nil {
		return domorder.Order{}, fmt.Errorf("insert order: %w", dberr.Translate(mongostore.Classify(db.OpInsert, err)))
	}
	return o.WithID(orderID, createdAt), nil
}

// List returns up to limit orders after skipping offset, in insertion order.
func (r *Repo) List(ctx context.Context, offset, limit int) ([]domorder.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", dberr.Translate(mongostore.Classify(db.OpFind, err)))
	}

	var dtos []orderDTO
	if err := cur.All(ctx, &dtos); err != nil {
		return nil, fmt.Errorf("decode orders: %w", dberr.Translate(mongostore.Classify(db.OpFind, err)))
	}

	orders := make([]domorder.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}

// Count returns the total number of stored orders.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", dberr.Translate(mongostore.Classify(db.OpCount, err)))
	}
	return n, nil
}
