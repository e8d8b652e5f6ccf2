package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// ledgerRecord forma persistida de una línea del libro: customerId o supplierId según la colección.
type ledgerRecord struct {
	ID          string                 `json:"id"`
	CustomerID  string                 `json:"customerId,omitempty"`
	SupplierID  string                 `json:"supplierId,omitempty"`
	InvoiceID   *string                `json:"invoiceId"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        entity.TransactionType `json:"type"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func toLedgerRecord(kind entity.PartyKind, t *entity.LedgerTransaction) ledgerRecord {
	rec := ledgerRecord{
		ID:          t.ID,
		InvoiceID:   t.InvoiceID,
		Amount:      t.Amount,
		Type:        t.Type,
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
	if kind == entity.PartySupplier {
		rec.SupplierID = t.PartyID
	} else {
		rec.CustomerID = t.PartyID
	}
	return rec
}

func (r *ledgerRecord) partyID() string {
	if r.SupplierID != "" {
		return r.SupplierID
	}
	return r.CustomerID
}

func (r *ledgerRecord) toEntity() *entity.LedgerTransaction {
	return &entity.LedgerTransaction{
		ID:          r.ID,
		PartyID:     r.partyID(),
		InvoiceID:   r.InvoiceID,
		Amount:      r.Amount,
		Type:        r.Type,
		Description: r.Description,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
}
