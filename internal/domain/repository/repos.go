package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// Repos agrupa los repositorios atados a una misma unidad de trabajo.
// Todo lo escrito a través de ellos se confirma o se descarta en bloque.
type Repos struct {
	Products       ProductRepository
	Customers      PartyRepository
	Suppliers      PartyRepository
	CustomerLedger LedgerRepository
	SupplierLedger LedgerRepository
	Invoices       InvoiceRepository
	Movements      StockMovementRepository
	Audits         AuditRepository
	Users          UserRepository
	Session        SessionRepository
}

// TxRunner ejecuta fn dentro de una unidad de trabajo: si fn devuelve error no se
// persiste nada. Las unidades de trabajo se ejecutan en exclusión mutua.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// Parties devuelve el repositorio de terceros del tipo indicado (nil si el tipo no es válido).
func (r Repos) Parties(kind entity.PartyKind) PartyRepository {
	switch kind {
	case entity.PartyCustomer:
		return r.Customers
	case entity.PartySupplier:
		return r.Suppliers
	}
	return nil
}

// Ledger devuelve el libro de transacciones del tipo de tercero indicado.
func (r Repos) Ledger(kind entity.PartyKind) LedgerRepository {
	switch kind {
	case entity.PartyCustomer:
		return r.CustomerLedger
	case entity.PartySupplier:
		return r.SupplierLedger
	}
	return nil
}
