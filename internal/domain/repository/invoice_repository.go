package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas y su consecutivo.
type InvoiceRepository interface {
	// NextNumber incrementa y devuelve el consecutivo de facturación. Nunca reutiliza números.
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
}
