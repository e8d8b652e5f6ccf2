// Package storage implementa el almacén de entidades: colecciones JSON bajo
// claves lógicas fijas, leídas y escritas dentro de unidades de trabajo sobre
// un Backend intercambiable (memoria, PostgreSQL o Redis).
package storage

import "context"

// Backend persiste valores JSON crudos bajo claves lógicas.
// Begin debe garantizar exclusión mutua entre transacciones abiertas.
type Backend interface {
	Begin(ctx context.Context) (BackendTx, error)
	Close() error
}

// BackendTx transacción abierta sobre un Backend.
// Get devuelve (nil, nil) si la clave no existe.
type BackendTx interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Nombres lógicos de las colecciones persistidas.
const (
	KeyUsers                = "users"
	KeyProducts             = "products"
	KeyCustomers            = "customers"
	KeySuppliers            = "suppliers"
	KeyInvoices             = "invoices"
	KeyInvoiceCounter       = "invoice_counter"
	KeyCustomerTransactions = "customer_transactions"
	KeySupplierTransactions = "supplier_transactions"
	KeyInventoryAudits      = "inventory_audits"
	KeyInventoryAuditItems  = "inventory_audit_items"
	KeyStockMovements       = "stock_movements"
	KeyCurrentUser          = "current_user"
)

// DefaultKeyPrefix prefijo de claves por defecto.
const DefaultKeyPrefix = "inv_"

// Keys resuelve los nombres lógicos a claves físicas con prefijo.
type Keys struct {
	Prefix string
}

// Of devuelve la clave física del nombre lógico.
func (k Keys) Of(name string) string {
	return k.Prefix + name
}

// All devuelve todas las claves físicas conocidas.
func (k Keys) All() []string {
	names := []string{
		KeyUsers, KeyProducts, KeyCustomers, KeySuppliers, KeyInvoices, KeyInvoiceCounter,
		KeyCustomerTransactions, KeySupplierTransactions, KeyInventoryAudits,
		KeyInventoryAuditItems, KeyStockMovements, KeyCurrentUser,
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = k.Of(n)
	}
	return out
}
