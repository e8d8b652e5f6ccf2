package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// DefaultStockInReason motivo de una entrada sin notas.
const DefaultStockInReason = "Entrada de mercancía"

// StockInUseCase entradas de mercancía, opcionalmente acompañadas de la compra al proveedor.
type StockInUseCase struct {
	tx        repository.TxRunner
	products  *ProductUseCase
	suppliers LedgerPoster
	log       *logger.Logger
	now       func() time.Time
}

// NewStockInUseCase construye el caso de uso. suppliers debe administrar proveedores.
func NewStockInUseCase(tx repository.TxRunner, products *ProductUseCase, suppliers LedgerPoster, log *logger.Logger) *StockInUseCase {
	if suppliers != nil && suppliers.Kind() != entity.PartySupplier {
		panic("inventory: el libro de compras debe ser de proveedores")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockInUseCase{
		tx:        tx,
		products:  products,
		suppliers: suppliers,
		log:       log.Component("inventory.stock"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Receive despacha la solicitud HTTP: con proveedor registra además la compra.
func (uc *StockInUseCase) Receive(ctx context.Context, in dto.StockInRequest) (*dto.StockInResponse, error) {
	if in.SupplierID != nil && *in.SupplierID != "" {
		return uc.StockInWithPurchase(ctx, in.ProductID, in.Quantity, in.Reason, *in.SupplierID, in.UnitCost)
	}
	return uc.StockIn(ctx, in.ProductID, in.Quantity, in.Reason)
}

// StockIn suma quantity (> 0) al producto y anexa un movimiento "in".
func (uc *StockInUseCase) StockIn(ctx context.Context, productID string, quantity int, reason string) (*dto.StockInResponse, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	var out dto.StockInResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, m, err := uc.stockInTx(ctx, r, productID, quantity, reason)
		if err != nil {
			return err
		}
		out = dto.StockInResponse{Product: dto.FromProduct(p), Movement: dto.FromMovement(m)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Int("quantity", quantity).Int("new_quantity", out.Product.Quantity).Msg("entrada de mercancía")
	return &out, nil
}

// StockInWithPurchase registra la entrada y la compra a crédito al proveedor
// (unitCost × quantity) en una sola unidad de trabajo. unitCost nil usa el precio de compra del producto.
// El proveedor debe existir aunque el total sea cero; una compra sin costo no genera línea en el libro.
func (uc *StockInUseCase) StockInWithPurchase(ctx context.Context, productID string, quantity int, reason, supplierID string, unitCost *decimal.Decimal) (*dto.StockInResponse, error) {
	if uc.suppliers == nil {
		return nil, fmt.Errorf("%w: compras a proveedor no habilitadas", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if unitCost != nil && unitCost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	var out dto.StockInResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		supplier, err := r.Suppliers.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return fmt.Errorf("proveedor %q: %w", supplierID, domain.ErrNotFound)
		}
		p, m, err := uc.stockInTx(ctx, r, productID, quantity, reason)
		if err != nil {
			return err
		}
		cost := p.PurchasePrice
		if unitCost != nil {
			cost = *unitCost
		}
		total := cost.Mul(decimal.NewFromInt(int64(quantity)))
		resp := dto.StockInResponse{Product: dto.FromProduct(p), Movement: dto.FromMovement(m)}
		if total.IsPositive() {
			_, t, err := uc.suppliers.PostInTx(ctx, r, ledger.Posting{
				PartyID:     supplierID,
				Amount:      total,
				Type:        entity.TransactionPurchase,
				Description: fmt.Sprintf("Compra de %d %s a %s", quantity, p.Name, supplier.Name),
				Date:        m.Date,
			})
			if err != nil {
				return err
			}
			tr := dto.FromTransaction(t)
			resp.Transaction = &tr
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Str("supplier_id", supplierID).Int("quantity", quantity).Msg("entrada con compra a proveedor")
	return &out, nil
}

// ListMovements movimientos en orden de registro; productID vacío devuelve todos.
func (uc *StockInUseCase) ListMovements(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	var list []*entity.StockMovement
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		list, err = r.Movements.ListByProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.FromMovements(list), nil
}

func (uc *StockInUseCase) stockInTx(ctx context.Context, r repository.Repos, productID string, quantity int, reason string) (*entity.Product, *entity.StockMovement, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultStockInReason
	}
	p, err := uc.products.AdjustQuantityInTx(ctx, r, productID, quantity)
	if err != nil {
		return nil, nil, err
	}
	m, err := appendMovement(ctx, r, p, quantity, entity.MovementIn, reason, "", uc.now())
	if err != nil {
		return nil, nil, err
	}
	return p, m, nil
}
