package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// PartyRepository puerto de persistencia para clientes o proveedores.
// Hay una instancia por tipo de tercero; cada una usa su propia colección.
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id string) (*entity.Party, error)
	Update(ctx context.Context, party *entity.Party) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Party, error)
}

// LedgerRepository libro de transacciones de un tipo de tercero (solo anexar).
type LedgerRepository interface {
	Append(ctx context.Context, tx *entity.LedgerTransaction) error
	// ListByParty devuelve las líneas del tercero; partyID vacío devuelve todas.
	ListByParty(ctx context.Context, partyID string) ([]*entity.LedgerTransaction, error)
}
