package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyKind distingue clientes de proveedores.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartySupplier PartyKind = "supplier"
)

// Valid indica si el tipo de tercero es conocido.
func (k PartyKind) Valid() bool {
	switch k {
	case PartyCustomer, PartySupplier:
		return true
	}
	return false
}

// ChargeType devuelve el tipo de transacción que incrementa el saldo del tercero:
// venta a crédito para clientes, compra a crédito para proveedores.
func (k PartyKind) ChargeType() TransactionType {
	switch k {
	case PartyCustomer:
		return TransactionSale
	case PartySupplier:
		return TransactionPurchase
	}
	return ""
}

// Party representa un cliente o un proveedor (mismo modelo).
//
// Balance es la suma de todas las transacciones registradas para el tercero.
// Cliente: saldo positivo = nos debe. Proveedor: saldo positivo = le debemos.
type Party struct {
	ID        string          `json:"id"`
	Kind      PartyKind       `json:"kind"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}
