package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockInRequest body para POST /api/stock/in.
// Con SupplierID y UnitCost se registra además la compra al proveedor.
type StockInRequest struct {
	ProductID  string           `json:"product_id"`
	Quantity   int              `json:"quantity"`
	Reason     string           `json:"reason"`
	SupplierID *string          `json:"supplier_id,omitempty"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
}

// StockInResponse producto actualizado, movimiento y, si hubo compra, la línea del proveedor.
type StockInResponse struct {
	Product     ProductResponse      `json:"product"`
	Movement    MovementResponse     `json:"movement"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// MovementResponse movimiento de inventario.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Type        string    `json:"type"`
	Reason      string    `json:"reason"`
	Reference   string    `json:"reference,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateAuditRequest body para POST /api/audits.
type CreateAuditRequest struct {
	Notes string `json:"notes"`
}

// UpdateAuditItemRequest conteo físico de una línea.
type UpdateAuditItemRequest struct {
	ActualQuantity int `json:"actual_quantity"`
}

// AuditResponse inventario físico con sus líneas.
type AuditResponse struct {
	ID              string              `json:"id"`
	AuditDate       time.Time           `json:"audit_date"`
	Status          string              `json:"status"`
	Notes           string              `json:"notes"`
	CreatedAt       time.Time           `json:"created_at"`
	ApprovedAt      *time.Time          `json:"approved_at,omitempty"`
	Items           []AuditItemResponse `json:"items,omitempty"`
	ItemsWithDiff   int                 `json:"items_with_difference"`
	TotalDifference int                 `json:"total_difference"`
}

// AuditItemResponse línea de inventario físico.
type AuditItemResponse struct {
	ID             string `json:"id"`
	AuditID        string `json:"audit_id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	SystemQuantity int    `json:"system_quantity"`
	ActualQuantity int    `json:"actual_quantity"`
	Difference     int    `json:"difference"`
}
