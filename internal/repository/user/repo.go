package user

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kailas-cloud/storeguard/internal/db"
	mongostore "github.com/kailas-cloud/storeguard/internal/db/mongo"
	domuser "github.com/kailas-cloud/storeguard/internal/domain/user"
	"github.com/kailas-cloud/storeguard/internal/repository/dberr"
)

// CollectionName is the collection holding accounts.
const CollectionName = "usuarios"

// collection is the consumer interface over *mongo.Collection (ISP).
type collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

// userDTO is the stored account without its password.
type userDTO struct {
	Username string `bson:"username"`
	Role     string `bson:"role"`
}

// Repo implements usecase/auth.Repository.
type Repo struct {
	coll collection
}

// New creates a user repository.
func New(c collection) *Repo {
	return &Repo{coll: c}
}

// FindByCredentials looks up an account by exact username and password match.
// Callers must validate both values first: they are used verbatim as filter values.
// A missing account yields domain.ErrNotFound.
func (r *Repo) FindByCredentials(ctx context.Context, username, password string) (domuser.User, error) {
	filter := bson.D{
		{Key: "username", Value: username},
		{Key: "password", Value: password},
	}
	opts := options.FindOne().SetProjection(bson.D{
		{Key: "_id", Value: 0},
		{Key: "password", Value: 0},
	})

	var dto userDTO
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&dto); err != nil {
		return domuser.User{}, fmt.Errorf("find user: %w", dberr.Translate(mongostore.Classify(db.OpFind, err)))
	}
	return domuser.User{Username: dto.Username, Role: dto.Role}, nil
}
