// Package order holds the order entity accepted by POST /orders.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/storeguard/internal/domain"
	"github.com/kailas-cloud/storeguard/internal/domain/payload"
)

// Payload field names.
const (
	FieldProduct  = "product"
	FieldQuantity = "quantity"
	FieldUser     = "user"
	FieldPrice    = "price"
)

// Order is a validated order line.
type Order struct {
	id        string
	product   string
	quantity  int64
	username  string
	price     *float64
	createdAt time.Time
}

// New validates the order fields. Quantity must be positive; product and user must be
// non-empty and free of the reserved operator prefix.
func New(product string, quantity int64, username string, price *float64) (Order, error) {
	if err := checkText(FieldProduct, product); err != nil {
		return Order{}, err
	}
	if err := checkText(FieldUser, username); err != nil {
		return Order{}, err
	}
	if quantity <= 0 {
		return Order{}, fmt.Errorf("%s must be positive, got %d: %w", FieldQuantity, quantity, domain.ErrInvalidOrder)
	}
	if price != nil && *price < 0 {
		return Order{}, fmt.Errorf("%s must not be negative: %w", FieldPrice, domain.ErrInvalidOrder)
	}
	return Order{product: product, quantity: quantity, username: username, price: price}, nil
}

// Restore rebuilds an order read back from storage without validation.
func Restore(id, product string, quantity int64, username string, price *float64, createdAt time.Time) Order {
	return Order{
		id:        id,
		product:   product,
		quantity:  quantity,
		username:  username,
		price:     price,
		createdAt: createdAt,
	}
}

// FromPayload extracts and validates an order from a guarded request payload.
// Unknown fields are ignored.
func FromPayload(p payload.Payload) (Order, error) {
	product, err := textField(p, FieldProduct)
	if err != nil {
		return Order{}, err
	}
	username, err := textField(p, FieldUser)
	if err != nil {
		return Order{}, err
	}

	v, ok := p.Get(FieldQuantity)
	if !ok {
		return Order{}, fmt.Errorf("%s is required: %w", FieldQuantity, domain.ErrInvalidOrder)
	}
	quantity, ok := v.AsInteger()
	if !ok {
		return Order{}, fmt.Errorf("%s must be an integer, got %s: %w", FieldQuantity, v.Kind(), domain.ErrInvalidOrder)
	}

	var price *float64
	if v, ok := p.Get(FieldPrice); ok && v.Kind() != payload.KindNull {
		f, ok := v.AsFloat()
		if !ok {
			return Order{}, fmt.Errorf("%s must be a number, got %s: %w", FieldPrice, v.Kind(), domain.ErrInvalidOrder)
		}
		price = &f
	}

	return New(product, quantity, username, price)
}

func textField(p payload.Payload, name string) (string, error) {
	v, ok := p.Get(name)
	if !ok {
		return "", fmt.Errorf("%s is required: %w", name, domain.ErrInvalidOrder)
	}
	s, ok := v.AsText()
	if !ok {
		return "", fmt.Errorf("%s must be text, got %s: %w", name, v.Kind(), domain.ErrInvalidOrder)
	}
	return s, nil
}

func checkText(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required: %w", name, domain.ErrInvalidOrder)
	}
	if strings.Contains(v, payload.ReservedPrefix) {
		return fmt.Errorf("%s: %w", name, domain.ErrForbiddenOperator)
	}
	return nil
}

// WithID returns a copy carrying the storage id and creation time.
func (o Order) WithID(id string, createdAt time.Time) Order {
	o.id = id
	o.createdAt = createdAt
	return o
}

// ID returns the storage id (empty until persisted).
func (o Order) ID() string { return o.id }

// Product returns the product name.
func (o Order) Product() string { return o.product }

// Quantity returns the ordered quantity.
func (o Order) Quantity() int64 { return o.quantity }

// Username returns the ordering user.
func (o Order) Username() string { return o.username }

// Price returns the unit price, nil when unknown.
func (o Order) Price() *float64 { return o.price }

// CreatedAt returns the creation time (zero for legacy rows).
func (o Order) CreatedAt() time.Time { return o.createdAt }
