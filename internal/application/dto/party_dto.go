package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartyRequest body para POST /api/customers y /api/suppliers.
type CreatePartyRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdatePartyRequest actualización parcial; el saldo no se edita.
type UpdatePartyRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// PartyResponse cliente o proveedor.
type PartyResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// PartyListResponse lista de terceros con el saldo total.
type PartyListResponse struct {
	Items        []PartyResponse `json:"items"`
	Total        int             `json:"total"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// LedgerEntryRequest body de pagos, cargos y ajustes.
// Amount debe ser positivo en pagos y cargos; con signo en ajustes.
type LedgerEntryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
}

// TransactionResponse línea del libro de un tercero.
type TransactionResponse struct {
	ID          string          `json:"id"`
	PartyID     string          `json:"party_id"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PostingResponse resultado de una operación sobre el libro: tercero actualizado y línea creada.
type PostingResponse struct {
	Party       PartyResponse       `json:"party"`
	Transaction TransactionResponse `json:"transaction"`
}

// StatementResponse estado de cuenta: tercero y sus líneas con saldo acumulado.
type StatementResponse struct {
	Party PartyResponse   `json:"party"`
	Lines []StatementLine `json:"lines"`
}

// StatementLine línea del estado de cuenta con el saldo tras aplicarla.
type StatementLine struct {
	TransactionResponse
	RunningBalance decimal.Decimal `json:"running_balance"`
}
