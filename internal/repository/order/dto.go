package order

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	domorder "github.com/kailas-cloud/storeguard/internal/domain/order"
)

// orderDTO is the stored order. Field names follow the seeded "pedidos" collection;
// rows written by older clients carry "usuario" instead of "user" and no order_id.
type orderDTO struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	OrderID    string        `bson:"order_id,omitempty"`
	User       string        `bson:"user,omitempty"`
	LegacyUser string        `bson:"usuario,omitempty"`
	Product    string        `bson:"producto"`
	Quantity   int64         `bson:"cantidad"`
	Price      *float64      `bson:"precio,omitempty"`
	CreatedAt  time.Time     `bson:"created_at,omitempty"`
}

func toDTO(o domorder.Order, id bson.ObjectID, orderID string, createdAt time.Time) orderDTO {
	return orderDTO{
		ID:        id,
		OrderID:   orderID,
		User:      o.Username(),
		Product:   o.Product(),
		Quantity:  o.Quantity(),
		Price:     o.Price(),
		CreatedAt: createdAt,
	}
}

func (d orderDTO) toDomain() domorder.Order {
	username := d.User
	if username == "" {
		username = d.LegacyUser
	}
	id := d.OrderID
	if id == "" {
		id = d.ID.Hex()
	}
	return domorder.Restore(id, d.Product, d.Quantity, username, d.Price, d.CreatedAt)
}
