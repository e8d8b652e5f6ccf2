package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
)

func TestStockIn_AddsQuantityAndMovement(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	p := f.product(t, "P", 10, 2, "1", "2")

	res, err := f.stock.StockIn(ctx, p.ID, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 15, res.Product.Quantity)
	assert.Equal(t, "in", res.Movement.Type)
	assert.Equal(t, 5, res.Movement.Quantity)
	assert.Equal(t, DefaultStockInReason, res.Movement.Reason)
	assert.Nil(t, res.Transaction)

	movs, err := f.stock.ListMovements(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, 5, movs[0].Quantity)
}

func TestStockIn_Rejects(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	p := f.product(t, "P", 10, 2, "1", "2")

	_, err := f.stock.StockIn(ctx, p.ID, 0, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.stock.StockIn(ctx, "nope", 1, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movs, err := f.stock.ListMovements(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestStockInWithPurchase_SingleUnitOfWork(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	p := f.product(t, "Arroz", 1, 0, "2000", "3000")
	s, err := f.suppliers.Create(ctx, dto.CreatePartyRequest{Name: "Distribuidora"})
	require.NoError(t, err)

	cost := decimal.NewFromInt(1500)
	res, err := f.stock.Receive(ctx, dto.StockInRequest{ProductID: p.ID, Quantity: 4, Reason: "pedido", SupplierID: &s.ID, UnitCost: &cost})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Product.Quantity)
	require.NotNil(t, res.Transaction)
	assert.True(t, res.Transaction.Amount.Equal(decimal.NewFromInt(6000)))
	assert.Equal(t, "purchase", res.Transaction.Type)
	assert.Equal(t, "Compra de 4 Arroz a Distribuidora", res.Transaction.Description)

	sup, err := f.suppliers.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, sup.Balance.Equal(decimal.NewFromInt(6000)))

	// Proveedor inexistente: ni entrada ni movimiento.
	missing := "nope"
	_, err = f.stock.StockInWithPurchase(ctx, p.ID, 3, "", missing, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	movs, err := f.stock.ListMovements(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestStockInWithPurchase_DefaultsToPurchasePrice(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	p := f.product(t, "Arroz", 0, 0, "2000", "3000")
	s, err := f.suppliers.Create(ctx, dto.CreatePartyRequest{Name: "Prov"})
	require.NoError(t, err)

	res, err := f.stock.StockInWithPurchase(ctx, p.ID, 2, "", s.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, res.Transaction)
	assert.True(t, res.Transaction.Amount.Equal(decimal.NewFromInt(4000)))

	neg := decimal.NewFromInt(-1)
	_, err = f.stock.StockInWithPurchase(ctx, p.ID, 2, "", s.ID, &neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockInWithPurchase_UnknownSupplierAtZeroCost(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	p := f.product(t, "Muestra", 10, 0, "0", "0")

	zero := decimal.Zero
	_, err := f.stock.StockInWithPurchase(ctx, p.ID, 5, "", "no-existe", &zero)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.stock.StockInWithPurchase(ctx, p.ID, 5, "", "no-existe", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	movs, err := f.stock.ListMovements(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)

	s, err := f.suppliers.Create(ctx, dto.CreatePartyRequest{Name: "Donante"})
	require.NoError(t, err)
	res, err := f.stock.StockInWithPurchase(ctx, p.ID, 5, "", s.ID, &zero)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Product.Quantity)
	assert.Nil(t, res.Transaction)
}
