package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity es la única fuente de verdad del stock disponible; solo se modifica
// vía ajuste de cantidad (delta) o al aprobar un inventario físico.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	PurchasePrice   decimal.Decimal `json:"purchasePrice"` // costo de compra
	SalePrice       decimal.Decimal `json:"salePrice"`     // precio de venta sugerido
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimumQuantity"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// IsLowStock indica si el producto está en o por debajo de su mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinimumQuantity
}
