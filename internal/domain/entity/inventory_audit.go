package entity

import "time"

// AuditStatus estado del inventario físico.
type AuditStatus string

const (
	AuditDraft    AuditStatus = "draft"
	AuditApproved AuditStatus = "approved" // terminal
)

// Valid indica si el estado es conocido.
func (s AuditStatus) Valid() bool {
	switch s {
	case AuditDraft, AuditApproved:
		return true
	}
	return false
}

// InventoryAudit conteo físico de todo el catálogo. Borrador hasta su aprobación;
// después es un registro histórico inmutable.
type InventoryAudit struct {
	ID         string      `json:"id"`
	AuditDate  time.Time   `json:"auditDate"`
	Status     AuditStatus `json:"status"`
	Notes      string      `json:"notes"`
	CreatedAt  time.Time   `json:"createdAt"`
	ApprovedAt *time.Time  `json:"approvedAt"`
}

// IsApproved indica si el inventario ya no admite cambios.
func (a *InventoryAudit) IsApproved() bool {
	return a.Status == AuditApproved
}

// InventoryAuditItem línea del conteo. SystemQuantity queda congelada al crear el inventario.
type InventoryAuditItem struct {
	ID             string `json:"id"`
	AuditID        string `json:"auditId"`
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	SystemQuantity int    `json:"systemQuantity"`
	ActualQuantity int    `json:"actualQuantity"`
	Difference     int    `json:"difference"`
}

// SetActual registra la cantidad contada y recalcula la diferencia.
func (i *InventoryAuditItem) SetActual(actual int) {
	i.ActualQuantity = actual
	i.Difference = actual - i.SystemQuantity
}
