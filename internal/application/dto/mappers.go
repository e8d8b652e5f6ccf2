package dto

import (
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// FromProduct convierte la entidad a su representación HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		PurchasePrice:   p.PurchasePrice,
		SalePrice:       p.SalePrice,
		Quantity:        p.Quantity,
		MinimumQuantity: p.MinimumQuantity,
		LowStock:        p.IsLowStock(),
		CreatedAt:       p.CreatedAt,
	}
}

// FromProducts convierte una lista de productos.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromParty(p *entity.Party) PartyResponse {
	return PartyResponse{
		ID:        p.ID,
		Kind:      string(p.Kind),
		Name:      p.Name,
		Phone:     p.Phone,
		Address:   p.Address,
		Balance:   p.Balance,
		CreatedAt: p.CreatedAt,
	}
}

func FromTransaction(t *entity.LedgerTransaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		PartyID:     t.PartyID,
		InvoiceID:   t.InvoiceID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
}

func FromTransactions(list []*entity.LedgerTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, FromTransaction(t))
	}
	return out
}

// FromInvoice incluye el subtotal de cada línea.
func FromInvoice(inv *entity.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			PurchasePrice: it.PurchasePrice,
			Subtotal:      it.LineTotal(),
			Profit:        it.Profit,
		})
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		PaymentType:   string(inv.PaymentType),
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		TotalAmount:   inv.TotalAmount,
		TotalProfit:   inv.TotalProfit,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
	}
}

func FromInvoices(list []*entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, FromInvoice(inv))
	}
	return out
}

func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Type:        string(m.Type),
		Reason:      m.Reason,
		Reference:   m.Reference,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
	}
}

func FromMovements(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromAudit convierte el inventario y sus líneas y calcula los totales de diferencia.
// items nil omite el detalle.
func FromAudit(a *entity.InventoryAudit, items []*entity.InventoryAuditItem) AuditResponse {
	out := AuditResponse{
		ID:         a.ID,
		AuditDate:  a.AuditDate,
		Status:     string(a.Status),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		ApprovedAt: a.ApprovedAt,
	}
	if items == nil {
		return out
	}
	out.Items = make([]AuditItemResponse, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, FromAuditItem(it))
		if it.Difference != 0 {
			out.ItemsWithDiff++
			out.TotalDifference += it.Difference
		}
	}
	return out
}

func FromAuditItem(it *entity.InventoryAuditItem) AuditItemResponse {
	return AuditItemResponse{
		ID:             it.ID,
		AuditID:        it.AuditID,
		ProductID:      it.ProductID,
		ProductName:    it.ProductName,
		SystemQuantity: it.SystemQuantity,
		ActualQuantity: it.ActualQuantity,
		Difference:     it.Difference,
	}
}

func FromUser(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
