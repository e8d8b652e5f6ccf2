// Package analytics contiene el tablero y los reportes de ventas, existencias e inventarios.
// Todo se recalcula en cada llamada a partir de las colecciones persistidas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DashboardUseCase genera el resumen del día y del mes en curso.
type DashboardUseCase struct {
	tx repository.TxRunner
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(tx repository.TxRunner) *DashboardUseCase {
	return &DashboardUseCase{tx: tx}
}

// GetStats calcula las cifras del tablero. "Hoy" y "mes" se comparan por prefijo
// de la fecha UTC de la factura.
func (uc *DashboardUseCase) GetStats(ctx context.Context, now time.Time) (*dto.DashboardStatsDTO, error) {
	now = now.UTC()
	today, month := now.Format(dayLayout), now.Format(monthLayout)

	out := &dto.DashboardStatsDTO{
		TodaySales:        decimal.Zero,
		TodayProfit:       decimal.Zero,
		MonthlySales:      decimal.Zero,
		MonthlyProfit:     decimal.Zero,
		TotalCustomerDebt: decimal.Zero,
		TotalSupplierDebt: decimal.Zero,
		DateLabel:         monthLabel(now),
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		products, err := r.Products.List(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		out.TotalProducts = len(products)
		for _, p := range products {
			if p.IsLowStock() {
				out.LowStockProducts++
			}
		}

		customers, err := r.Customers.List(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		out.TotalCustomers = len(customers)
		out.TotalCustomerDebt = sumBalances(customers)

		suppliers, err := r.Suppliers.List(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: proveedores: %w", err)
		}
		out.TotalSuppliers = len(suppliers)
		out.TotalSupplierDebt = sumBalances(suppliers)

		invoices, err := r.Invoices.List(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: facturas: %w", err)
		}
		for _, inv := range invoices {
			date := inv.InvoiceDate.UTC()
			if date.Format(monthLayout) != month {
				continue
			}
			out.MonthlySales = out.MonthlySales.Add(inv.TotalAmount)
			out.MonthlyProfit = out.MonthlyProfit.Add(inv.TotalProfit)
			if date.Format(dayLayout) == today {
				out.TodaySales = out.TodaySales.Add(inv.TotalAmount)
				out.TodayProfit = out.TodayProfit.Add(inv.TotalProfit)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func sumBalances(parties []*entity.Party) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parties {
		total = total.Add(p.Balance)
	}
	return total
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
