package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura.
type ReportUseCase struct {
	tx repository.TxRunner
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(tx repository.TxRunner) *ReportUseCase {
	return &ReportUseCase{tx: tx}
}

// DailySales ventas del día UTC de date.
func (uc *ReportUseCase) DailySales(ctx context.Context, date time.Time) (*dto.SalesReportDTO, error) {
	return uc.sales(ctx, date.UTC().Format(dayLayout), dayLayout)
}

// MonthlySales ventas del mes indicado (1-12).
func (uc *ReportUseCase) MonthlySales(ctx context.Context, year, month int) (*dto.SalesReportDTO, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: mes %d", domain.ErrInvalidInput, month)
	}
	if year < 1 {
		return nil, fmt.Errorf("%w: año %d", domain.ErrInvalidInput, year)
	}
	return uc.sales(ctx, fmt.Sprintf("%04d-%02d", year, month), monthLayout)
}

func (uc *ReportUseCase) sales(ctx context.Context, period, layout string) (*dto.SalesReportDTO, error) {
	var invoices []*entity.Invoice
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		invoices, err = r.Invoices.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	out := &dto.SalesReportDTO{
		Period:      period,
		TotalSales:  decimal.Zero,
		TotalProfit: decimal.Zero,
		CashSales:   decimal.Zero,
		CreditSales: decimal.Zero,
		Invoices:    []dto.InvoiceResponse{},
	}
	for _, inv := range invoices {
		if inv.InvoiceDate.UTC().Format(layout) != period {
			continue
		}
		out.InvoiceCount++
		out.TotalSales = out.TotalSales.Add(inv.TotalAmount)
		out.TotalProfit = out.TotalProfit.Add(inv.TotalProfit)
		if inv.PaymentType == entity.PaymentCredit {
			out.CreditSales = out.CreditSales.Add(inv.TotalAmount)
		} else {
			out.CashSales = out.CashSales.Add(inv.TotalAmount)
		}
		out.Invoices = append(out.Invoices, dto.FromInvoice(inv))
	}
	return out, nil
}

// LowStock productos con existencia en o bajo el mínimo.
func (uc *ReportUseCase) LowStock(ctx context.Context) (*dto.LowStockReportDTO, error) {
	var products []*entity.Product
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		products, err = r.Products.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reporte de existencias: %w", err)
	}
	out := &dto.LowStockReportDTO{Items: []dto.ProductResponse{}}
	for _, p := range products {
		if p.IsLowStock() {
			out.Items = append(out.Items, dto.FromProduct(p))
		}
	}
	out.Total = len(out.Items)
	return out, nil
}

// AuditDifferences inventarios aprobados con sus líneas con diferencia distinta de cero.
func (uc *ReportUseCase) AuditDifferences(ctx context.Context) (*dto.AuditDifferencesDTO, error) {
	out := &dto.AuditDifferencesDTO{Audits: []dto.AuditResponse{}}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		audits, err := r.Audits.List(ctx)
		if err != nil {
			return err
		}
		for _, a := range audits {
			if !a.IsApproved() {
				continue
			}
			items, err := r.Audits.ListItems(ctx, a.ID)
			if err != nil {
				return err
			}
			diff := make([]*entity.InventoryAuditItem, 0, len(items))
			for _, it := range items {
				if it.Difference != 0 {
					diff = append(diff, it)
				}
			}
			out.Audits = append(out.Audits, dto.FromAudit(a, diff))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reporte de inventarios: %w", err)
	}
	return out, nil
}
