package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
)

type fixture struct {
	store     *storage.Store
	products  *ProductUseCase
	stock     *StockInUseCase
	audits    *AuditUseCase
	suppliers *ledger.PartyUseCase
}

func newFixture(t *testing.T, policy StockPolicy) *fixture {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend(), "", nil)
	products := NewProductUseCase(store, policy, nil)
	suppliers := ledger.NewPartyUseCase(entity.PartySupplier, store, nil)
	return &fixture{
		store:     store,
		products:  products,
		stock:     NewStockInUseCase(store, products, suppliers, nil),
		audits:    NewAuditUseCase(store, nil),
		suppliers: suppliers,
	}
}

func (f *fixture) product(t *testing.T, name string, qty, minQty int, purchase, sale string) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name:            name,
		PurchasePrice:   decimal.RequireFromString(purchase),
		SalePrice:       decimal.RequireFromString(sale),
		Quantity:        qty,
		MinimumQuantity: minQty,
	})
	require.NoError(t, err)
	return p
}
