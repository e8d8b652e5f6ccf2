package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

var _ repository.TxRunner = (*Store)(nil)

// Store almacén de entidades. Cada Run es una unidad de trabajo sobre el backend.
type Store struct {
	backend Backend
	keys    Keys
	log     *logger.Logger
}

// NewStore crea el almacén. prefix vacío usa DefaultKeyPrefix.
func NewStore(backend Backend, prefix string, log *logger.Logger) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{backend: backend, keys: Keys{Prefix: prefix}, log: log}
}

// Keys devuelve el resolvedor de claves físicas del almacén.
func (s *Store) Keys() Keys { return s.keys }

// Run ejecuta fn en una unidad de trabajo. Si fn falla no se escribe nada en el backend.
// Las unidades de trabajo no se anidan: fn no debe llamar a Run.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := s.backend.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar unidad de trabajo: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.log.Warn().Err(rbErr).Msg("rollback de unidad de trabajo")
			}
		}
	}()

	uow := newUnitOfWork(tx, s.keys, s.log)
	if err := fn(uow.repos()); err != nil {
		return err
	}
	for _, f := range uow.flushers {
		if err := f.flush(ctx, tx); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar unidad de trabajo: %w", err)
	}
	committed = true
	return nil
}

// Close libera el backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

type unitOfWork struct {
	products   *collection[entity.Product]
	customers  *collection[entity.Party]
	suppliers  *collection[entity.Party]
	customerTx *collection[ledgerRecord]
	supplierTx *collection[ledgerRecord]
	invoices   *collection[entity.Invoice]
	counter    *document[int64]
	movements  *collection[entity.StockMovement]
	audits     *collection[entity.InventoryAudit]
	auditItems *collection[entity.InventoryAuditItem]
	users      *collection[entity.User]
	session    *document[entity.Session]
	flushers   []flusher
}

func newUnitOfWork(tx BackendTx, keys Keys, log *logger.Logger) *unitOfWork {
	u := &unitOfWork{
		products:   newCollection(keys.Of(KeyProducts), tx, log, func(p *entity.Product) string { return p.ID }),
		customers:  newCollection(keys.Of(KeyCustomers), tx, log, partyID),
		suppliers:  newCollection(keys.Of(KeySuppliers), tx, log, partyID),
		customerTx: newCollection(keys.Of(KeyCustomerTransactions), tx, log, ledgerID),
		supplierTx: newCollection(keys.Of(KeySupplierTransactions), tx, log, ledgerID),
		invoices:   newCollection(keys.Of(KeyInvoices), tx, log, func(i *entity.Invoice) string { return i.ID }),
		counter:    newDocument[int64](keys.Of(KeyInvoiceCounter), tx, log),
		movements:  newCollection(keys.Of(KeyStockMovements), tx, log, func(m *entity.StockMovement) string { return m.ID }),
		audits:     newCollection(keys.Of(KeyInventoryAudits), tx, log, func(a *entity.InventoryAudit) string { return a.ID }),
		auditItems: newCollection(keys.Of(KeyInventoryAuditItems), tx, log, func(i *entity.InventoryAuditItem) string { return i.ID }),
		users:      newCollection(keys.Of(KeyUsers), tx, log, func(u *entity.User) string { return u.ID }),
		session:    newDocument[entity.Session](keys.Of(KeyCurrentUser), tx, log),
	}
	u.flushers = []flusher{
		u.products, u.customers, u.suppliers, u.customerTx, u.supplierTx, u.invoices,
		u.counter, u.movements, u.audits, u.auditItems, u.users, u.session,
	}
	return u
}

func partyID(p *entity.Party) string  { return p.ID }
func ledgerID(r *ledgerRecord) string { return r.ID }

func (u *unitOfWork) repos() repository.Repos {
	return repository.Repos{
		Products:       &ProductRepo{c: u.products},
		Customers:      &PartyRepo{kind: entity.PartyCustomer, c: u.customers},
		Suppliers:      &PartyRepo{kind: entity.PartySupplier, c: u.suppliers},
		CustomerLedger: &LedgerRepo{kind: entity.PartyCustomer, c: u.customerTx},
		SupplierLedger: &LedgerRepo{kind: entity.PartySupplier, c: u.supplierTx},
		Invoices:       &InvoiceRepo{c: u.invoices, counter: u.counter},
		Movements:      &StockMovementRepo{c: u.movements},
		Audits:         &AuditRepo{audits: u.audits, items: u.auditItems},
		Users:          &UserRepo{c: u.users},
		Session:        &SessionRepo{d: u.session},
	}
}
