package repository

import (
	"context"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

// ProductRepository defines the interface for product catalogue storage.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	List(ctx context.Context) ([]entity.Product, error)
}
