package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/sales/checkout.
// CustomerID es obligatorio en ventas a crédito.
type CheckoutRequest struct {
	PaymentType string            `json:"payment_type"` // cash | credit
	CustomerID  *string           `json:"customer_id,omitempty"`
	Items       []CartLineRequest `json:"items"`
}

// CartLineRequest línea del carrito. Sin UnitPrice se usa el precio de venta del producto; cero es un precio válido.
type CartLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoiceResponse factura con su detalle.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber int64                 `json:"invoice_number"`
	InvoiceDate   time.Time             `json:"invoice_date"`
	PaymentType   string                `json:"payment_type"`
	CustomerID    *string               `json:"customer_id,omitempty"`
	CustomerName  *string               `json:"customer_name,omitempty"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	TotalProfit   decimal.Decimal       `json:"total_profit"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Profit        decimal.Decimal `json:"profit"`
}

// InvoiceListResponse lista de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Total int               `json:"total"`
}
