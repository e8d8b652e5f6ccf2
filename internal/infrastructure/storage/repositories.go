package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.PartyRepository         = (*PartyRepo)(nil)
	_ repository.LedgerRepository        = (*LedgerRepo)(nil)
	_ repository.InvoiceRepository       = (*InvoiceRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.AuditRepository         = (*AuditRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.SessionRepository       = (*SessionRepo)(nil)
)

// ProductRepo productos sobre la colección products.
type ProductRepo struct {
	c *collection[entity.Product]
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.c.insert(ctx, *p)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.c.get(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return mustReplace(r.c.replace(ctx, *p))
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.c.remove(ctx, id)
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.c.filter(ctx, nil)
}

// PartyRepo clientes o proveedores, según la colección recibida.
// El tipo se fija al leer: los registros heredados no lo traen.
type PartyRepo struct {
	kind entity.PartyKind
	c    *collection[entity.Party]
}

func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	return r.c.insert(ctx, *p)
}

func (r *PartyRepo) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	p, err := r.c.get(ctx, id)
	if p != nil {
		p.Kind = r.kind
	}
	return p, err
}

func (r *PartyRepo) Update(ctx context.Context, p *entity.Party) error {
	return mustReplace(r.c.replace(ctx, *p))
}

func (r *PartyRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.c.remove(ctx, id)
}

func (r *PartyRepo) List(ctx context.Context) ([]*entity.Party, error) {
	list, err := r.c.filter(ctx, nil)
	for _, p := range list {
		p.Kind = r.kind
	}
	return list, err
}

// LedgerRepo libro de transacciones; solo admite anexar.
type LedgerRepo struct {
	kind entity.PartyKind
	c    *collection[ledgerRecord]
}

func (r *LedgerRepo) Append(ctx context.Context, t *entity.LedgerTransaction) error {
	return r.c.insert(ctx, toLedgerRecord(r.kind, t))
}

func (r *LedgerRepo) ListByParty(ctx context.Context, partyID string) ([]*entity.LedgerTransaction, error) {
	recs, err := r.c.filter(ctx, func(rec *ledgerRecord) bool {
		return partyID == "" || rec.partyID() == partyID
	})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.LedgerTransaction, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toEntity())
	}
	return out, nil
}

// InvoiceRepo facturas con sus líneas embebidas y el consecutivo invoice_counter.
type InvoiceRepo struct {
	c       *collection[entity.Invoice]
	counter *document[int64]
}

func (r *InvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	current, err := r.counter.load(ctx)
	if err != nil {
		return 0, err
	}
	var next int64 = 1
	if current != nil && *current > 0 {
		next = *current + 1
	}
	r.counter.set(next)
	return next, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.c.insert(ctx, cloneInvoice(*inv))
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := r.c.get(ctx, id)
	if err != nil || inv == nil {
		return nil, err
	}
	out := cloneInvoice(*inv)
	return &out, nil
}

func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	list, err := r.c.filter(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i, inv := range list {
		c := cloneInvoice(*inv)
		list[i] = &c
	}
	return list, nil
}

func cloneInvoice(inv entity.Invoice) entity.Invoice {
	if inv.Items != nil {
		items := make([]entity.InvoiceItem, len(inv.Items))
		copy(items, inv.Items)
		inv.Items = items
	}
	return inv
}

// StockMovementRepo movimientos de inventario (solo anexar).
type StockMovementRepo struct {
	c *collection[entity.StockMovement]
}

func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	return r.c.insert(ctx, *m)
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	if productID == "" {
		return r.c.filter(ctx, nil)
	}
	return r.c.filter(ctx, func(m *entity.StockMovement) bool { return m.ProductID == productID })
}

// AuditRepo inventarios físicos (inventory_audits) y sus líneas (inventory_audit_items).
type AuditRepo struct {
	audits *collection[entity.InventoryAudit]
	items  *collection[entity.InventoryAuditItem]
}

func (r *AuditRepo) Create(ctx context.Context, a *entity.InventoryAudit, items []*entity.InventoryAuditItem) error {
	if err := r.audits.insert(ctx, *a); err != nil {
		return err
	}
	for _, it := range items {
		if err := r.items.insert(ctx, *it); err != nil {
			return err
		}
	}
	return nil
}

func (r *AuditRepo) GetByID(ctx context.Context, id string) (*entity.InventoryAudit, error) {
	return r.audits.get(ctx, id)
}

func (r *AuditRepo) Update(ctx context.Context, a *entity.InventoryAudit) error {
	return mustReplace(r.audits.replace(ctx, *a))
}

func (r *AuditRepo) List(ctx context.Context) ([]*entity.InventoryAudit, error) {
	return r.audits.filter(ctx, nil)
}

func (r *AuditRepo) GetItem(ctx context.Context, itemID string) (*entity.InventoryAuditItem, error) {
	return r.items.get(ctx, itemID)
}

func (r *AuditRepo) UpdateItem(ctx context.Context, it *entity.InventoryAuditItem) error {
	return mustReplace(r.items.replace(ctx, *it))
}

func (r *AuditRepo) ListItems(ctx context.Context, auditID string) ([]*entity.InventoryAuditItem, error) {
	return r.items.filter(ctx, func(it *entity.InventoryAuditItem) bool { return it.AuditID == auditID })
}

// UserRepo usuarios registrados.
type UserRepo struct {
	c *collection[entity.User]
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	existing, err := r.GetByUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("usuario %q: %w", u.Username, domain.ErrConflict)
	}
	return r.c.insert(ctx, *u)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.c.get(ctx, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	list, err := r.c.filter(ctx, func(u *entity.User) bool { return u.Username == username })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.c.filter(ctx, nil)
}

// SessionRepo marca del usuario actual (current_user). Ausente = sin sesión.
type SessionRepo struct {
	d *document[entity.Session]
}

func (r *SessionRepo) Get(ctx context.Context) (*entity.Session, error) {
	s, err := r.d.load(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	out := *s
	return &out, nil
}

func (r *SessionRepo) Set(_ context.Context, s *entity.Session) error {
	r.d.set(*s)
	return nil
}

func (r *SessionRepo) Clear(_ context.Context) error {
	r.d.clear()
	return nil
}

func mustReplace(found bool, err error) error {
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
