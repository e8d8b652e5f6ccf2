package entity

import "time"

// MovementType tipo de movimiento de inventario.
type MovementType string

const (
	MovementIn         MovementType = "in"         // entrada de mercancía
	MovementOut        MovementType = "out"        // salida por venta
	MovementAdjustment MovementType = "adjustment" // ajuste por inventario físico
)

// Valid indica si el tipo de movimiento es conocido.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable de un cambio de cantidad.
// Quantity lleva signo: positivo para entradas, negativo para salidas.
type StockMovement struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"productId"`
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	Type        MovementType `json:"type"`
	Reason      string       `json:"reason"`
	Reference   string       `json:"reference,omitempty"` // factura o inventario de origen
	Date        time.Time    `json:"date"`
	CreatedAt   time.Time    `json:"createdAt"`
}
