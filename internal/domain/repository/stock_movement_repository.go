package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de inventario (DIP).
type StockMovementRepository interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos del producto; productID vacío devuelve todos.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
