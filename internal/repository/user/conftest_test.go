package user

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// mockCollection implements the consumer interface for tests.
type mockCollection struct {
	findOneFn func(ctx context.Context, filter any) *mongo.SingleResult
	calls     int
}

func (m *mockCollection) FindOne(
	ctx context.Context, filter any, _ ...options.Lister[options.FindOneOptions],
) *mongo.SingleResult {
	m.calls++
	if m.findOneFn != nil {
		return m.findOneFn(ctx, filter)
	}
	return mongo.NewSingleResultFromDocument(struct{}{}, mongo.ErrNoDocuments, nil)
}
