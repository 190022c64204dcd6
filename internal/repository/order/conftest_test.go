package order

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// mockCollection implements the consumer interface for tests.
type mockCollection struct {
	insertOneFn      func(ctx context.Context, document any) (*mongo.InsertOneResult, error)
	findFn           func(ctx context.Context, filter any, opts []options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	countDocumentsFn func(ctx context.Context, filter any) (int64, error)
}

func (m *mockCollection) InsertOne(
	ctx context.Context, document any, _ ...options.Lister[options.InsertOneOptions],
) (*mongo.InsertOneResult, error) {
	if m.insertOneFn != nil {
		return m.insertOneFn(ctx, document)
	}
	return &mongo.InsertOneResult{Acknowledged: true}, nil
}

func (m *mockCollection) Find(
	ctx context.Context, filter any, opts ...options.Lister[options.FindOptions],
) (*mongo.Cursor, error) {
	if m.findFn != nil {
		return m.findFn(ctx, filter, opts)
	}
	return mongo.NewCursorFromDocuments(nil, nil, nil)
}

func (m *mockCollection) CountDocuments(
	ctx context.Context, filter any, _ ...options.Lister[options.CountOptions],
) (int64, error) {
	if m.countDocumentsFn != nil {
		return m.countDocumentsFn(ctx, filter)
	}
	return 0, nil
}
