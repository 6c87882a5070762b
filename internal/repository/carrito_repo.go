package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ItemCarrito is the stored form of a cart line. Only the product reference
// and quantity persist — prices are resolved from the catalog at read time so
// the cart always shows current prices.
type ItemCarrito struct {
	ProductoID uuid.UUID `json:"producto_id"`
	Cantidad   int       `json:"cantidad"`
}

// CarritoRepository keeps one cart per user in Redis, serialized as JSON
// under "carrito:{usuario_id}". Carts expire after 30 days of inactivity.
type CarritoRepository interface {
	Load(ctx context.Context, usuarioID uuid.UUID) ([]ItemCarrito, error)
	Save(ctx context.Context, usuarioID uuid.UUID, items []ItemCarrito) error
	Clear(ctx context.Context, usuarioID uuid.UUID) error
}

const carritoTTL = 30 * 24 * time.Hour

type carritoRepo struct{ rdb *redis.Client }

func NewCarritoRepository(rdb *redis.Client) CarritoRepository { return &carritoRepo{rdb: rdb} }

func carritoKey(usuarioID uuid.UUID) string { return fmt.Sprintf("carrito:%s", usuarioID) }

func (r *carritoRepo) Load(ctx context.Context, usuarioID uuid.UUID) ([]ItemCarrito, error) {
	raw, err := r.rdb.Get(ctx, carritoKey(usuarioID)).Bytes()
	if err == redis.Nil {
		return []ItemCarrito{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []ItemCarrito
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("carrito corrupto: %w", err)
	}
	return items, nil
}

func (r *carritoRepo) Save(ctx context.Context, usuarioID uuid.UUID, items []ItemCarrito) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, carritoKey(usuarioID), raw, carritoTTL).Err()
}

func (r *carritoRepo) Clear(ctx context.Context, usuarioID uuid.UUID) error {
	return r.rdb.Del(ctx, carritoKey(usuarioID)).Err()
}
