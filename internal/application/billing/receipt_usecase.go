package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una factura.
type ReceiptUseCase struct {
	tx           repository.TxRunner
	generator    ReceiptPDFGenerator
	businessName string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(tx repository.TxRunner, generator ReceiptPDFGenerator, businessName string) *ReceiptUseCase {
	return &ReceiptUseCase{tx: tx, generator: generator, businessName: businessName}
}

// Render devuelve los bytes del PDF y el nombre de archivo sugerido.
// Si el cliente fue eliminado se usa el nombre guardado en la factura.
func (uc *ReceiptUseCase) Render(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	var receipt Receipt
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		inv, err := r.Invoices.GetByID(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("comprobante: obtener factura: %w", err)
		}
		if inv == nil {
			return fmt.Errorf("factura %q: %w", invoiceID, domain.ErrNotFound)
		}
		receipt = Receipt{BusinessName: uc.businessName, Invoice: inv}
		if inv.CustomerID != nil {
			c, err := r.Customers.GetByID(ctx, *inv.CustomerID)
			if err != nil {
				return fmt.Errorf("comprobante: obtener cliente: %w", err)
			}
			if c == nil && inv.CustomerName != nil {
				c = &entity.Party{ID: *inv.CustomerID, Kind: entity.PartyCustomer, Name: *inv.CustomerName}
			}
			receipt.Customer = c
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%06d.pdf", receipt.Invoice.InvoiceNumber), nil
}
