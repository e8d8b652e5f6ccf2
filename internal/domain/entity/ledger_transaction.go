package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de línea del libro de un tercero.
type TransactionType string

const (
	TransactionSale       TransactionType = "sale"     // solo clientes
	TransactionPurchase   TransactionType = "purchase" // solo proveedores
	TransactionPayment    TransactionType = "payment"
	TransactionAdjustment TransactionType = "adjustment"
)

// ValidFor indica si el tipo de transacción aplica al tipo de tercero.
func (t TransactionType) ValidFor(kind PartyKind) bool {
	switch t {
	case TransactionSale:
		return kind == PartyCustomer
	case TransactionPurchase:
		return kind == PartySupplier
	case TransactionPayment, TransactionAdjustment:
		return kind.Valid()
	}
	return false
}

// LedgerTransaction línea inmutable del libro de un cliente o proveedor.
// Amount lleva signo: positivo incrementa el saldo, negativo lo reduce.
type LedgerTransaction struct {
	ID          string          `json:"id"`
	PartyID     string          `json:"partyId"`
	InvoiceID   *string         `json:"invoiceId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}
