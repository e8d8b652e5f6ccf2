package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// AuditRepository puerto de persistencia para inventarios físicos y sus líneas.
type AuditRepository interface {
	Create(ctx context.Context, audit *entity.InventoryAudit, items []*entity.InventoryAuditItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryAudit, error)
	Update(ctx context.Context, audit *entity.InventoryAudit) error
	List(ctx context.Context) ([]*entity.InventoryAudit, error)
	GetItem(ctx context.Context, itemID string) (*entity.InventoryAuditItem, error)
	UpdateItem(ctx context.Context, item *entity.InventoryAuditItem) error
	ListItems(ctx context.Context, auditID string) ([]*entity.InventoryAuditItem, error)
}
