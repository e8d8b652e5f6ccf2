package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

func TestAudit_ApproveWithoutEditsChangesNothing(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	a := f.product(t, "A", 10, 2, "1", "2")
	f.product(t, "B", 0, 0, "1", "2")

	audit, err := f.audits.CreateAudit(ctx, "cierre")
	require.NoError(t, err)
	require.Len(t, audit.Items, 2)
	assert.Equal(t, "draft", audit.Status)
	for _, it := range audit.Items {
		assert.Equal(t, it.SystemQuantity, it.ActualQuantity)
		assert.Zero(t, it.Difference)
	}

	approved, err := f.audits.Approve(ctx, audit.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.Zero(t, approved.ItemsWithDiff)

	got, err := f.products.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	movs, err := f.stock.ListMovements(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestAudit_ApproveAppliesDifferences(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	a := f.product(t, "A", 10, 2, "1", "2")
	b := f.product(t, "B", 4, 0, "1", "2")

	audit, err := f.audits.CreateAudit(ctx, "")
	require.NoError(t, err)
	byProduct := map[string]string{}
	for _, it := range audit.Items {
		byProduct[it.ProductID] = it.ID
	}

	item, err := f.audits.UpdateItem(ctx, byProduct[a.ID], 7)
	require.NoError(t, err)
	assert.Equal(t, -3, item.Difference)
	_, err = f.audits.UpdateItem(ctx, byProduct[a.ID], -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Venta entre la foto y la aprobación: se fija el valor contado.
	_, err = f.products.AdjustQuantity(ctx, a.ID, -1)
	require.NoError(t, err)

	approved, err := f.audits.Approve(ctx, audit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, approved.ItemsWithDiff)
	assert.Equal(t, -3, approved.TotalDifference)

	got, err := f.products.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
	untouched, err := f.products.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, untouched.Quantity)

	movs, err := f.stock.ListMovements(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, string(entity.MovementAdjustment), movs[0].Type)
	assert.Equal(t, -3, movs[0].Quantity)
	assert.Equal(t, audit.ID, movs[0].Reference)

	// Terminal: ni ediciones ni segunda aprobación.
	_, err = f.audits.UpdateItem(ctx, byProduct[b.ID], 1)
	assert.ErrorIs(t, err, domain.ErrAuditApproved)
	_, err = f.audits.Approve(ctx, audit.ID)
	assert.ErrorIs(t, err, domain.ErrAuditApproved)
}

func TestAudit_SkipsDeletedProducts(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	a := f.product(t, "A", 10, 2, "1", "2")

	audit, err := f.audits.CreateAudit(ctx, "")
	require.NoError(t, err)
	_, err = f.audits.UpdateItem(ctx, audit.Items[0].ID, 3)
	require.NoError(t, err)
	_, err = f.products.Delete(ctx, a.ID)
	require.NoError(t, err)

	_, err = f.audits.Approve(ctx, audit.ID)
	require.NoError(t, err)
	movs, err := f.stock.ListMovements(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestAudit_GetAndList(t *testing.T) {
	f := newFixture(t, StockPolicy{})
	ctx := context.Background()
	f.product(t, "A", 1, 0, "1", "2")

	first, err := f.audits.CreateAudit(ctx, "uno")
	require.NoError(t, err)
	_, err = f.audits.CreateAudit(ctx, "dos")
	require.NoError(t, err)
	_, err = f.audits.Approve(ctx, first.ID)
	require.NoError(t, err)

	all, err := f.audits.ListAudits(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	drafts, err := f.audits.ListAudits(ctx, entity.AuditDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "dos", drafts[0].Notes)
	_, err = f.audits.ListAudits(ctx, "cerrado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.audits.GetAudit(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	_, err = f.audits.GetAudit(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.audits.UpdateItem(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
