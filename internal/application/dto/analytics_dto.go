package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// "Hoy" y "mes" se comparan por prefijo de la fecha UTC (YYYY-MM-DD / YYYY-MM).
type DashboardStatsDTO struct {
	TotalProducts     int             `json:"total_products"`
	LowStockProducts  int             `json:"low_stock_products"`
	TotalCustomers    int             `json:"total_customers"`
	TotalSuppliers    int             `json:"total_suppliers"`
	TodaySales        decimal.Decimal `json:"today_sales"`
	TodayProfit       decimal.Decimal `json:"today_profit"`
	MonthlySales      decimal.Decimal `json:"monthly_sales"`
	MonthlyProfit     decimal.Decimal `json:"monthly_profit"`
	TotalCustomerDebt decimal.Decimal `json:"total_customer_debt"` // lo que nos deben
	TotalSupplierDebt decimal.Decimal `json:"total_supplier_debt"` // lo que debemos
	DateLabel         string          `json:"date_label"`
}

// SalesReportDTO ventas de un período (día o mes).
type SalesReportDTO struct {
	Period       string            `json:"period"` // YYYY-MM-DD o YYYY-MM
	InvoiceCount int               `json:"invoice_count"`
	TotalSales   decimal.Decimal   `json:"total_sales"`
	TotalProfit  decimal.Decimal   `json:"total_profit"`
	CashSales    decimal.Decimal   `json:"cash_sales"`
	CreditSales  decimal.Decimal   `json:"credit_sales"`
	Invoices     []InvoiceResponse `json:"invoices"`
}

// LowStockReportDTO productos en o bajo el mínimo.
type LowStockReportDTO struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// AuditDifferencesDTO inventarios aprobados con sus líneas con diferencia.
type AuditDifferencesDTO struct {
	Audits []AuditResponse `json:"audits"`
}
