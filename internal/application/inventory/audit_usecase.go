package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// AuditUseCase flujo de inventario físico: borrador -> aprobado (terminal).
type AuditUseCase struct {
	tx  repository.TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(tx repository.TxRunner, log *logger.Logger) *AuditUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditUseCase{
		tx:  tx,
		log: log.Component("inventory.audits"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateAudit toma una foto del catálogo: una línea por producto con contado = sistema.
func (uc *AuditUseCase) CreateAudit(ctx context.Context, notes string) (*dto.AuditResponse, error) {
	now := uc.now()
	audit := &entity.InventoryAudit{
		ID:        uuid.New().String(),
		AuditDate: now,
		Status:    entity.AuditDraft,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
	}
	var items []*entity.InventoryAuditItem
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		products, err := r.Products.List(ctx)
		if err != nil {
			return err
		}
		items = make([]*entity.InventoryAuditItem, 0, len(products))
		for _, p := range products {
			items = append(items, &entity.InventoryAuditItem{
				ID:             uuid.New().String(),
				AuditID:        audit.ID,
				ProductID:      p.ID,
				ProductName:    p.Name,
				SystemQuantity: p.Quantity,
				ActualQuantity: p.Quantity,
			})
		}
		return r.Audits.Create(ctx, audit, items)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("audit_id", audit.ID).Int("items", len(items)).Msg("inventario físico creado")
	out := dto.FromAudit(audit, items)
	return &out, nil
}

// UpdateItem registra el conteo de una línea. Solo en borrador.
func (uc *AuditUseCase) UpdateItem(ctx context.Context, itemID string, actual int) (*dto.AuditItemResponse, error) {
	if actual < 0 {
		return nil, fmt.Errorf("%w: la cantidad contada no puede ser negativa", domain.ErrInvalidInput)
	}
	var out dto.AuditItemResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		item, err := r.Audits.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("línea %q: %w", itemID, domain.ErrNotFound)
		}
		audit, err := loadAudit(ctx, r, item.AuditID)
		if err != nil {
			return err
		}
		if audit.IsApproved() {
			return domain.ErrAuditApproved
		}
		item.SetActual(actual)
		if err := r.Audits.UpdateItem(ctx, item); err != nil {
			return err
		}
		out = dto.FromAuditItem(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve cierra el inventario. Cada línea con diferencia fija la cantidad del producto
// al valor contado y deja un movimiento "adjustment" por la diferencia.
// Las líneas de productos eliminados después de la foto se omiten.
func (uc *AuditUseCase) Approve(ctx context.Context, auditID string) (*dto.AuditResponse, error) {
	var (
		audit    *entity.InventoryAudit
		items    []*entity.InventoryAuditItem
		adjusted int
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if audit, err = loadAudit(ctx, r, auditID); err != nil {
			return err
		}
		if audit.IsApproved() {
			return domain.ErrAuditApproved
		}
		now := uc.now()
		audit.Status = entity.AuditApproved
		audit.ApprovedAt = &now
		if err := r.Audits.Update(ctx, audit); err != nil {
			return err
		}
		if items, err = r.Audits.ListItems(ctx, auditID); err != nil {
			return err
		}
		reason := "Ajuste por inventario físico"
		if audit.Notes != "" {
			reason += ": " + audit.Notes
		}
		for _, it := range items {
			if it.Difference == 0 {
				continue
			}
			p, err := r.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				uc.log.Warn().Str("audit_id", auditID).Str("product_id", it.ProductID).Msg("producto eliminado, se omite el ajuste")
				continue
			}
			p.Quantity = it.ActualQuantity
			if err := r.Products.Update(ctx, p); err != nil {
				return err
			}
			if _, err := appendMovement(ctx, r, p, it.Difference, entity.MovementAdjustment, reason, audit.ID, now); err != nil {
				return err
			}
			adjusted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("audit_id", auditID).Int("adjusted", adjusted).Msg("inventario físico aprobado")
	out := dto.FromAudit(audit, items)
	return &out, nil
}

// GetAudit inventario con sus líneas.
func (uc *AuditUseCase) GetAudit(ctx context.Context, auditID string) (*dto.AuditResponse, error) {
	var out dto.AuditResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		audit, err := loadAudit(ctx, r, auditID)
		if err != nil {
			return err
		}
		items, err := r.Audits.ListItems(ctx, auditID)
		if err != nil {
			return err
		}
		if items == nil {
			items = []*entity.InventoryAuditItem{}
		}
		out = dto.FromAudit(audit, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAudits inventarios sin detalle; status vacío devuelve todos.
func (uc *AuditUseCase) ListAudits(ctx context.Context, status entity.AuditStatus) ([]dto.AuditResponse, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	var out []dto.AuditResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		list, err := r.Audits.List(ctx)
		if err != nil {
			return err
		}
		out = make([]dto.AuditResponse, 0, len(list))
		for _, a := range list {
			if status == "" || a.Status == status {
				out = append(out, dto.FromAudit(a, nil))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func loadAudit(ctx context.Context, r repository.Repos, id string) (*entity.InventoryAudit, error) {
	a, err := r.Audits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("inventario %q: %w", id, domain.ErrNotFound)
	}
	return a, nil
}
