package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// LedgerPoster registra un movimiento en el libro de un tercero dentro de una unidad de trabajo abierta.
// Lo implementa ledger.PartyUseCase.
type LedgerPoster interface {
	Kind() entity.PartyKind
	PostInTx(ctx context.Context, r repository.Repos, in ledger.Posting) (*entity.Party, *entity.LedgerTransaction, error)
}

// StockPolicy política de existencias.
type StockPolicy struct {
	// AllowNegativeStock permite salidas por encima de la cantidad disponible.
	AllowNegativeStock bool
}
