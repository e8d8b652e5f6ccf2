// Package billing contiene la venta (checkout), la consulta de facturas y su comprobante PDF.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// CheckoutUseCase convierte un carrito en factura, descuenta inventario y, a crédito,
// carga el total al cliente. Todo en una sola unidad de trabajo.
type CheckoutUseCase struct {
	tx        repository.TxRunner
	inventory InventoryUseCase
	customers LedgerPoster
	log       *logger.Logger
	now       func() time.Time
}

// NewCheckoutUseCase construye el caso de uso. customers debe administrar clientes.
func NewCheckoutUseCase(tx repository.TxRunner, inventory InventoryUseCase, customers LedgerPoster, log *logger.Logger) *CheckoutUseCase {
	if customers.Kind() != entity.PartyCustomer {
		panic("billing: el libro de ventas debe ser de clientes")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CheckoutUseCase{
		tx:        tx,
		inventory: inventory,
		customers: customers,
		log:       log.Component("billing.checkout"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Checkout registra la venta. Los precios de compra y venta se toman del producto en ese momento;
// UnitPrice nulo o cero usa el precio de venta del producto.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.InvoiceResponse, error) {
	paymentType := entity.PaymentType(strings.ToLower(strings.TrimSpace(in.PaymentType)))
	if err := validateCart(paymentType, in); err != nil {
		return nil, err
	}

	var invoice *entity.Invoice
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		now := uc.now()
		inv := &entity.Invoice{
			ID:          uuid.New().String(),
			InvoiceDate: now,
			PaymentType: paymentType,
			TotalAmount: decimal.Zero,
			TotalProfit: decimal.Zero,
			CreatedAt:   now,
		}

		if in.CustomerID != nil && *in.CustomerID != "" {
			c, err := r.Customers.GetByID(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("cliente %q: %w", *in.CustomerID, domain.ErrNotFound)
			}
			id, name := c.ID, c.Name
			inv.CustomerID, inv.CustomerName = &id, &name
		}

		items, err := uc.buildItems(ctx, r, inv.ID, in.Items)
		if err != nil {
			return err
		}
		for _, it := range items {
			inv.TotalAmount = inv.TotalAmount.Add(it.LineTotal())
			inv.TotalProfit = inv.TotalProfit.Add(it.Profit)
		}
		inv.Items = items

		if inv.InvoiceNumber, err = r.Invoices.NextNumber(ctx); err != nil {
			return err
		}
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}

		reason := fmt.Sprintf("Venta factura N° %d", inv.InvoiceNumber)
		for _, it := range items {
			if _, _, err := uc.inventory.RegisterOutInTx(ctx, r, it.ProductID, it.Quantity, reason, inv.ID); err != nil {
				return err
			}
		}

		if paymentType == entity.PaymentCredit {
			invoiceID := inv.ID
			if _, _, err := uc.customers.PostInTx(ctx, r, ledger.Posting{
				PartyID:     *inv.CustomerID,
				InvoiceID:   &invoiceID,
				Amount:      inv.TotalAmount,
				Type:        entity.TransactionSale,
				Description: fmt.Sprintf("Factura de venta N° %d", inv.InvoiceNumber),
				Date:        inv.InvoiceDate,
			}); err != nil {
				return err
			}
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", invoice.ID).
		Int64("invoice_number", invoice.InvoiceNumber).
		Str("payment_type", string(invoice.PaymentType)).
		Str("total", invoice.TotalAmount.String()).
		Msg("venta registrada")
	out := dto.FromInvoice(invoice)
	return &out, nil
}

// buildItems carga cada producto y arma las líneas. Con la política estricta rechaza
// el carrito si la suma pedida de un producto supera su existencia.
func (uc *CheckoutUseCase) buildItems(ctx context.Context, r repository.Repos, invoiceID string, lines []dto.CartLineRequest) ([]entity.InvoiceItem, error) {
	requested := make(map[string]int, len(lines))
	items := make([]entity.InvoiceItem, 0, len(lines))
	for _, l := range lines {
		p, err := r.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %q: %w", l.ProductID, domain.ErrNotFound)
		}
		requested[p.ID] += l.Quantity
		if !uc.inventory.Policy().AllowNegativeStock && requested[p.ID] > p.Quantity {
			return nil, fmt.Errorf("%w: %s tiene %d, se piden %d", domain.ErrInsufficientStock, p.Name, p.Quantity, requested[p.ID])
		}

		unitPrice := p.SalePrice
		if l.UnitPrice != nil {
			unitPrice = *l.UnitPrice
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		items = append(items, entity.InvoiceItem{
			ID:            uuid.New().String(),
			InvoiceID:     invoiceID,
			ProductID:     p.ID,
			ProductName:   p.Name,
			Quantity:      l.Quantity,
			UnitPrice:     unitPrice,
			PurchasePrice: p.PurchasePrice,
			Profit:        unitPrice.Sub(p.PurchasePrice).Mul(qty),
		})
	}
	return items, nil
}

func validateCart(paymentType entity.PaymentType, in dto.CheckoutRequest) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	if !paymentType.Valid() {
		return fmt.Errorf("%w: forma de pago %q", domain.ErrInvalidInput, in.PaymentType)
	}
	if paymentType == entity.PaymentCredit && (in.CustomerID == nil || *in.CustomerID == "") {
		return fmt.Errorf("%w: la venta a crédito requiere cliente", domain.ErrInvalidInput)
	}
	for i, l := range in.Items {
		if l.ProductID == "" {
			return fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: línea %d con cantidad %d", domain.ErrInvalidInput, i+1, l.Quantity)
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d con precio negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// GetInvoice devuelve la factura o domain.ErrNotFound.
func (uc *CheckoutUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		inv, err = r.Invoices.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("factura %q: %w", id, domain.ErrNotFound)
	}
	out := dto.FromInvoice(inv)
	return &out, nil
}

// ListInvoices facturas en orden de emisión.
func (uc *CheckoutUseCase) ListInvoices(ctx context.Context) (*dto.InvoiceListResponse, error) {
	var list []*entity.Invoice
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		list, err = r.Invoices.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := dto.FromInvoices(list)
	return &dto.InvoiceListResponse{Items: items, Total: len(items)}, nil
}
