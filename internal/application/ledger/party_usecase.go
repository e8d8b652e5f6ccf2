// Package ledger administra clientes y proveedores con su saldo corriente y su libro de transacciones.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// Posting movimiento a registrar en el libro de un tercero.
// Date cero usa la hora actual.
type Posting struct {
	PartyID     string
	InvoiceID   *string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Description string
	Date        time.Time
}

// PartyUseCase casos de uso de un tipo de tercero (clientes o proveedores).
// El saldo solo cambia junto con una línea del libro, en la misma unidad de trabajo.
type PartyUseCase struct {
	kind entity.PartyKind
	tx   repository.TxRunner
	log  *logger.Logger
	now  func() time.Time
}

// NewPartyUseCase construye el caso de uso para kind. Un kind desconocido es un error de programación.
func NewPartyUseCase(kind entity.PartyKind, tx repository.TxRunner, log *logger.Logger) *PartyUseCase {
	if !kind.Valid() {
		panic(fmt.Sprintf("ledger: tipo de tercero inválido %q", kind))
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PartyUseCase{
		kind: kind,
		tx:   tx,
		log:  log.Component("ledger." + string(kind)),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Kind tipo de tercero que administra.
func (uc *PartyUseCase) Kind() entity.PartyKind { return uc.kind }

// Create registra un tercero con saldo cero.
func (uc *PartyUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	party := &entity.Party{
		ID:        uuid.New().String(),
		Kind:      uc.kind,
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		Balance:   decimal.Zero,
		CreatedAt: uc.now(),
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Parties(uc.kind).Create(ctx, party)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromParty(party)
	return &out, nil
}

// Get devuelve el tercero o domain.ErrNotFound.
func (uc *PartyUseCase) Get(ctx context.Context, id string) (*dto.PartyResponse, error) {
	var out dto.PartyResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := uc.load(ctx, r, id)
		if err != nil {
			return err
		}
		out = dto.FromParty(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List devuelve los terceros en orden de creación y la suma de sus saldos.
func (uc *PartyUseCase) List(ctx context.Context) (*dto.PartyListResponse, error) {
	var list []*entity.Party
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		list, err = r.Parties(uc.kind).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.PartyListResponse{Items: make([]dto.PartyResponse, 0, len(list)), TotalBalance: decimal.Zero}
	for _, p := range list {
		out.Items = append(out.Items, dto.FromParty(p))
		out.TotalBalance = out.TotalBalance.Add(p.Balance)
	}
	out.Total = len(out.Items)
	return out, nil
}

// Update modifica nombre, teléfono o dirección. El saldo no se toca aquí.
func (uc *PartyUseCase) Update(ctx context.Context, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
	}
	var out dto.PartyResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := uc.load(ctx, r, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Phone != nil {
			p.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Address != nil {
			p.Address = strings.TrimSpace(*in.Address)
		}
		if err := r.Parties(uc.kind).Update(ctx, p); err != nil {
			return err
		}
		out = dto.FromParty(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina el tercero. Devuelve false si no existe y domain.ErrHasBalance si su saldo no es cero.
// Las líneas del libro se conservan.
func (uc *PartyUseCase) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		repo := r.Parties(uc.kind)
		p, err := repo.GetByID(ctx, id)
		if err != nil || p == nil {
			return err
		}
		if !p.Balance.IsZero() {
			return fmt.Errorf("%w: saldo %s", domain.ErrHasBalance, p.Balance.StringFixed(2))
		}
		deleted, err = repo.Delete(ctx, id)
		return err
	})
	return deleted, err
}

// AdjustBalance suma amount al saldo sin registrar línea en el libro.
// Es el único mutador del saldo; los flujos normales usan PostInTx.
func (uc *PartyUseCase) AdjustBalance(ctx context.Context, id string, amount decimal.Decimal) (*dto.PartyResponse, error) {
	var out dto.PartyResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := uc.AdjustBalanceInTx(ctx, r, id, amount)
		if err != nil {
			return err
		}
		out = dto.FromParty(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustBalanceInTx igual que AdjustBalance dentro de una unidad de trabajo abierta.
func (uc *PartyUseCase) AdjustBalanceInTx(ctx context.Context, r repository.Repos, id string, amount decimal.Decimal) (*entity.Party, error) {
	p, err := uc.load(ctx, r, id)
	if err != nil {
		return nil, err
	}
	p.Balance = p.Balance.Add(amount)
	if err := r.Parties(uc.kind).Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RecordTransaction anexa una línea al libro sin modificar el saldo.
func (uc *PartyUseCase) RecordTransaction(ctx context.Context, in Posting) (*dto.TransactionResponse, error) {
	var out dto.TransactionResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if _, err := uc.load(ctx, r, in.PartyID); err != nil {
			return err
		}
		t, err := uc.RecordTransactionInTx(ctx, r, in)
		if err != nil {
			return err
		}
		out = dto.FromTransaction(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordTransactionInTx valida el tipo para este tercero y anexa la línea.
func (uc *PartyUseCase) RecordTransactionInTx(ctx context.Context, r repository.Repos, in Posting) (*entity.LedgerTransaction, error) {
	if !in.Type.ValidFor(uc.kind) {
		return nil, fmt.Errorf("%w: tipo %q no aplica a %s", domain.ErrInvalidInput, in.Type, uc.kind)
	}
	now := uc.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	t := &entity.LedgerTransaction{
		ID:          uuid.New().String(),
		PartyID:     in.PartyID,
		InvoiceID:   in.InvoiceID,
		Amount:      in.Amount,
		Type:        in.Type,
		Description: strings.TrimSpace(in.Description),
		Date:        date.UTC(),
		CreatedAt:   now,
	}
	if err := r.Ledger(uc.kind).Append(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// PostInTx ajusta el saldo y anexa la línea correspondiente en la unidad de trabajo r.
func (uc *PartyUseCase) PostInTx(ctx context.Context, r repository.Repos, in Posting) (*entity.Party, *entity.LedgerTransaction, error) {
	if !in.Type.ValidFor(uc.kind) {
		return nil, nil, fmt.Errorf("%w: tipo %q no aplica a %s", domain.ErrInvalidInput, in.Type, uc.kind)
	}
	p, err := uc.AdjustBalanceInTx(ctx, r, in.PartyID, in.Amount)
	if err != nil {
		return nil, nil, err
	}
	t, err := uc.RecordTransactionInTx(ctx, r, in)
	if err != nil {
		return nil, nil, err
	}
	return p, t, nil
}

// AddPayment registra un pago: resta amount (> 0) del saldo.
func (uc *PartyUseCase) AddPayment(ctx context.Context, partyID string, amount decimal.Decimal, description string) (*dto.PostingResponse, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del pago debe ser positivo", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(description) == "" {
		description = uc.defaultPaymentDescription()
	}
	return uc.post(ctx, Posting{
		PartyID:     partyID,
		Amount:      amount.Neg(),
		Type:        entity.TransactionPayment,
		Description: description,
	})
}

// AddPurchaseOrSale registra un cargo (> 0): venta a crédito para clientes, compra para proveedores.
func (uc *PartyUseCase) AddPurchaseOrSale(ctx context.Context, partyID string, amount decimal.Decimal, description string, invoiceID *string) (*dto.PostingResponse, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del cargo debe ser positivo", domain.ErrInvalidInput)
	}
	return uc.post(ctx, Posting{
		PartyID:     partyID,
		InvoiceID:   invoiceID,
		Amount:      amount,
		Type:        uc.kind.ChargeType(),
		Description: description,
	})
}

// AddAdjustment registra un ajuste con signo (distinto de cero).
func (uc *PartyUseCase) AddAdjustment(ctx context.Context, partyID string, amount decimal.Decimal, description string) (*dto.PostingResponse, error) {
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(description) == "" {
		description = "Ajuste de saldo"
	}
	return uc.post(ctx, Posting{
		PartyID:     partyID,
		Amount:      amount,
		Type:        entity.TransactionAdjustment,
		Description: description,
	})
}

func (uc *PartyUseCase) post(ctx context.Context, in Posting) (*dto.PostingResponse, error) {
	var out dto.PostingResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, t, err := uc.PostInTx(ctx, r, in)
		if err != nil {
			return err
		}
		out = dto.PostingResponse{Party: dto.FromParty(p), Transaction: dto.FromTransaction(t)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("party_id", in.PartyID).
		Str("type", string(in.Type)).
		Str("amount", in.Amount.String()).
		Str("balance", out.Party.Balance.String()).
		Msg("movimiento registrado")
	return &out, nil
}

// ListTransactions devuelve las líneas del libro en orden de registro; partyID vacío devuelve todas.
func (uc *PartyUseCase) ListTransactions(ctx context.Context, partyID string) ([]dto.TransactionResponse, error) {
	var list []*entity.LedgerTransaction
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		list, err = r.Ledger(uc.kind).ListByParty(ctx, partyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.FromTransactions(list), nil
}

// Statement estado de cuenta del tercero con el saldo acumulado línea a línea.
func (uc *PartyUseCase) Statement(ctx context.Context, partyID string) (*dto.StatementResponse, error) {
	var (
		party *entity.Party
		lines []*entity.LedgerTransaction
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if party, err = uc.load(ctx, r, partyID); err != nil {
			return err
		}
		lines, err = r.Ledger(uc.kind).ListByParty(ctx, partyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.StatementResponse{Party: dto.FromParty(party), Lines: make([]dto.StatementLine, 0, len(lines))}
	running := decimal.Zero
	for _, t := range lines {
		running = running.Add(t.Amount)
		out.Lines = append(out.Lines, dto.StatementLine{TransactionResponse: dto.FromTransaction(t), RunningBalance: running})
	}
	return out, nil
}

func (uc *PartyUseCase) load(ctx context.Context, r repository.Repos, id string) (*entity.Party, error) {
	p, err := r.Parties(uc.kind).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%s %q: %w", uc.kind, id, domain.ErrNotFound)
	}
	return p, nil
}

func (uc *PartyUseCase) defaultPaymentDescription() string {
	if uc.kind == entity.PartySupplier {
		return "Pago a proveedor"
	}
	return "Cobro en efectivo"
}
