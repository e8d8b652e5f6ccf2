package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType forma de pago de una factura.
type PaymentType string

const (
	PaymentCash   PaymentType = "cash"   // contado
	PaymentCredit PaymentType = "credit" // crédito (genera cargo al cliente)
)

// Valid indica si la forma de pago es conocida.
func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCash, PaymentCredit:
		return true
	}
	return false
}

// Invoice representa una factura de venta. Inmutable una vez creada.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber int64           `json:"invoiceNumber"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	PaymentType   PaymentType     `json:"paymentType"`
	CustomerID    *string         `json:"customerId"`
	CustomerName  *string         `json:"customerName"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	Items         []InvoiceItem   `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// InvoiceItem línea de factura con los precios vigentes al momento de la venta.
type InvoiceItem struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoiceId"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Profit        decimal.Decimal `json:"profit"`
}

// LineTotal devuelve UnitPrice × Quantity.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
