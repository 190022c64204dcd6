package user

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kailas-cloud/storeguard/internal/domain"
)

func TestFindByCredentials_Found(t *testing.T) {
	var gotFilter bson.D
	mc := &mockCollection{findOneFn: func(_ context.Context, filter any) *mongo.SingleResult {
		gotFilter, _ = filter.(bson.D)
		return mongo.NewSingleResultFromDocument(bson.D{
			{Key: "username", Value: "alice"},
			{Key: "role", Value: "admin"},
		}, nil, nil)
	}}
	repo := New(mc)

	u, err := repo.FindByCredentials(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "alice" || u.Role != "admin" {
		t.Fatalf("unexpected user: %+v", u)
	}

	want := bson.D{{Key: "username", Value: "alice"}, {Key: "password", Value: "s3cret"}}
	if len(gotFilter) != len(want) {
		t.Fatalf("unexpected filter: %v", gotFilter)
	}
	for i := range want {
		if gotFilter[i] != want[i] {
			t.Fatalf("filter[%d] = %v, want %v", i, gotFilter[i], want[i])
		}
	}
}

func TestFindByCredentials_NotFound(t *testing.T) {
	repo := New(&mockCollection{})

	_, err := repo.FindByCredentials(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByCredentials_BackendError(t *testing.T) {
	cause := errors.New("connection reset")
	mc := &mockCollection{findOneFn: func(context.Context, any) *mongo.SingleResult {
		return mongo.NewSingleResultFromDocument(struct{}{}, cause, nil)
	}}
	repo := New(mc)

	_, err := repo.FindByCredentials(context.Background(), "alice", "s3cret")
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatal("backend error must not look like a missing user")
	}
}
