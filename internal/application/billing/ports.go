package billing

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// InventoryUseCase integra facturación con inventario dentro de la misma unidad de trabajo.
// Si RegisterOutInTx falla (ej: ErrInsufficientStock) la venta completa se descarta.
type InventoryUseCase interface {
	Policy() inventory.StockPolicy
	RegisterOutInTx(ctx context.Context, r repository.Repos, productID string, quantity int, reason, reference string) (*entity.Product, *entity.StockMovement, error)
}

// LedgerPoster registra el cargo de una venta a crédito en el libro del cliente.
type LedgerPoster interface {
	Kind() entity.PartyKind
	PostInTx(ctx context.Context, r repository.Repos, in ledger.Posting) (*entity.Party, *entity.LedgerTransaction, error)
}

// Receipt datos del comprobante imprimible.
type Receipt struct {
	BusinessName string
	Invoice      *entity.Invoice
	Customer     *entity.Party // nil en ventas de contado sin cliente
}

// ReceiptPDFGenerator genera el PDF del comprobante (implementado en infrastructure/pdf).
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt Receipt) ([]byte, error)
}
