package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCases(t *testing.T) (*PartyUseCase, *PartyUseCase, *storage.Store) {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend(), "", nil)
	return NewPartyUseCase(entity.PartyCustomer, store, nil), NewPartyUseCase(entity.PartySupplier, store, nil), store
}

// sumLedger suma las líneas del tercero directamente desde el almacén.
func sumLedger(t *testing.T, store *storage.Store, kind entity.PartyKind, partyID string) decimal.Decimal {
	t.Helper()
	ctx := context.Background()
	total := decimal.Zero
	require.NoError(t, store.Run(ctx, func(r repository.Repos) error {
		lines, err := r.Ledger(kind).ListByParty(ctx, partyID)
		for _, l := range lines {
			total = total.Add(l.Amount)
		}
		return err
	}))
	return total
}

// ─── CRUD ───────────────────────────────────────────────────────────────────

func TestCreate_StartsAtZeroBalance(t *testing.T) {
	customers, _, _ := newUseCases(t)
	ctx := context.Background()

	c, err := customers.Create(ctx, dto.CreatePartyRequest{Name: "  Ana  ", Phone: "300"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "customer", c.Kind)
	assert.True(t, c.Balance.IsZero())

	_, err = customers.Create(ctx, dto.CreatePartyRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_DoesNotTouchBalance(t *testing.T) {
	customers, _, _ := newUseCases(t)
	ctx := context.Background()
	c, err := customers.Create(ctx, dto.CreatePartyRequest{Name: "Ana"})
	require.NoError(t, err)
	_, err = customers.AddPurchaseOrSale(ctx, c.ID, dec("10"), "venta", nil)
	require.NoError(t, err)

	name, addr := "Ana María", "Calle 1"
	got, err := customers.Update(ctx, c.ID, dto.UpdatePartyRequest{Name: &name, Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, "Calle 1", got.Address)
	assert.True(t, got.Balance.Equal(dec("10")))

	_, err = customers.Update(ctx, "nope", dto.UpdatePartyRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RejectsNonZeroBalance(t *testing.T) {
	_, suppliers, _ := newUseCases(t)
	ctx := context.Background()
	s, err := suppliers.Create(ctx, dto.CreatePartyRequest{Name: "Distribuidora"})
	require.NoError(t, err)
	_, err = suppliers.AddPurchaseOrSale(ctx, s.ID, dec("50"), "compra", nil)
	require.NoError(t, err)

	ok, err := suppliers.Delete(ctx, s.ID)
	require.ErrorIs(t, err, domain.ErrHasBalance)
	assert.False(t, ok)

	still, err := suppliers.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, still.Balance.Equal(dec("50")))

	_, err = suppliers.AddPayment(ctx, s.ID, dec("50"), "")
	require.NoError(t, err)
	ok, err = suppliers.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = suppliers.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// ─── Libro ──────────────────────────────────────────────────────────────────

func TestCreditSaleThenPayment(t *testing.T) {
	customers, _, store := newUseCases(t)
	ctx := context.Background()
	c, err := customers.Create(ctx, dto.CreatePartyRequest{Name: "Ana"})
	require.NoError(t, err)

	_, err = customers.AddPurchaseOrSale(ctx, c.ID, dec("100"), "Factura de venta N° 1", nil)
	require.NoError(t, err)
	res, err := customers.AddPayment(ctx, c.ID, dec("40"), "")
	require.NoError(t, err)
	assert.True(t, res.Party.Balance.Equal(dec("60")))
	assert.Equal(t, "Cobro en efectivo", res.Transaction.Description)

	lines, err := customers.ListTransactions(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Amount.Equal(dec("100")))
	assert.Equal(t, "sale", lines[0].Type)
	assert.True(t, lines[1].Amount.Equal(dec("-40")))
	assert.Equal(t, "payment", lines[1].Type)

	assert.True(t, sumLedger(t, store, entity.PartyCustomer, c.ID).Equal(res.Party.Balance))
}

func TestBalanceEqualsSumOfLines(t *testing.T) {
	customers, _, store := newUseCases(t)
	ctx := context.Background()
	c, err := customers.Create(ctx, dto.CreatePartyRequest{Name: "Ana"})
	require.NoError(t, err)

	steps := []func() error{
		func() error { _, err := customers.AddPurchaseOrSale(ctx, c.ID, dec("12.50"), "", nil); return err },
		func() error { _, err := customers.AddAdjustment(ctx, c.ID, dec("-2.25"), ""); return err },
		func() error { _, err := customers.AddPayment(ctx, c.ID, dec("5"), ""); return err },
		func() error { _, err := customers.AddPayment(ctx, c.ID, dec("0"), ""); return err },    // rechazado
		func() error { _, err := customers.AddAdjustment(ctx, c.ID, dec("0"), ""); return err }, // rechazado
		func() error { _, err := customers.AddPurchaseOrSale(ctx, "nope", dec("1"), "", nil); return err },
	}
	for _, step := range steps {
		_ = step()
		got, err := customers.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, sumLedger(t, store, entity.PartyCustomer, c.ID).Equal(got.Balance))
	}
	got, err := customers.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("5.25")), "balance=%s", got.Balance)
}

func TestPostInTx_RejectsTypeOfOtherKind(t *testing.T) {
	customers, suppliers, store := newUseCases(t)
	ctx := context.Background()
	c, err := customers.Create(ctx, dto.CreatePartyRequest{Name: "Ana"})
	require.NoError(t, err)
	s, err := suppliers.Create(ctx, dto.CreatePartyRequest{Name: "Prov"})
	require.NoError(t, err)

	err = store.Run(ctx, func(r repository.Repos) error {
		_, _, err := customers.PostInTx(ctx, r, Posting{PartyID: c.ID, Amount: dec("1"), Type: entity.TransactionPurchase})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = suppliers.RecordTransaction(ctx, Posting{PartyID: s.ID, Amount: dec("1"), Type: entity.TransactionSale})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := suppliers.AddPurchaseOrSale(ctx, s.ID, dec("3"), "compra", nil)
	require.NoError(t, err)
	assert.Equal(t, "purchase", res.Transaction.Type)
}

func TestAdjustBalance_AloneDoesNotAppendLine(t *testing.T) {
	customers, _, _ := newUseCases(t)
	ctx := context.Background()
	c, err := customers.Create(ctx, dto.CreatePartyRequest{Name: "Ana"})
	require.NoError(t, err)

	got, err := customers.AdjustBalance(ctx, c.ID, dec("7"))
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("7")))

	lines, err := customers.ListTransactions(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = customers.AdjustBalance(ctx, "nope", dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatement_RunningBalance(t *testing.T) {
	_, suppliers, _ := newUseCases(t)
	ctx := context.Background()
	s, err := suppliers.Create(ctx, dto.CreatePartyRequest{Name: "Prov"})
	require.NoError(t, err)
	_, err = suppliers.AddPurchaseOrSale(ctx, s.ID, dec("30"), "compra", nil)
	require.NoError(t, err)
	_, err = suppliers.AddPayment(ctx, s.ID, dec("10"), "")
	require.NoError(t, err)

	st, err := suppliers.Statement(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, st.Lines, 2)
	assert.True(t, st.Lines[0].RunningBalance.Equal(dec("30")))
	assert.True(t, st.Lines[1].RunningBalance.Equal(dec("20")))
	assert.True(t, st.Party.Balance.Equal(dec("20")))
	assert.Equal(t, "Pago a proveedor", st.Lines[1].Description)

	list, err := suppliers.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.True(t, list.TotalBalance.Equal(dec("20")))
}

func TestKindsUseSeparateCollections(t *testing.T) {
	customers, suppliers, _ := newUseCases(t)
	ctx := context.Background()
	_, err := customers.Create(ctx, dto.CreatePartyRequest{Name: "Ana"})
	require.NoError(t, err)

	list, err := suppliers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Panics(t, func() { NewPartyUseCase("empleado", nil, nil) })
}
