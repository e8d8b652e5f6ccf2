// Package inventory contiene los casos de uso de productos, entradas de mercancía e inventarios físicos.
package inventory

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

// ProductUseCase catálogo de productos. La cantidad solo cambia con AdjustQuantity
// (o sus variantes en transacción) y con la aprobación de un inventario físico.
type ProductUseCase struct {
	tx     repository.TxRunner
	policy StockPolicy
	log    *logger.Logger
	now    func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx repository.TxRunner, policy StockPolicy, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		tx:     tx,
		policy: policy,
		log:    log.Component("inventory.products"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Policy devuelve la política de existencias vigente.
func (uc *ProductUseCase) Policy() StockPolicy { return uc.policy }

// Create registra un producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if err := validatePrices(in.PurchasePrice, in.SalePrice); err != nil {
		return nil, err
	}
	if in.Quantity < 0 || in.MinimumQuantity < 0 {
		return nil, fmt.Errorf("%w: cantidad y mínimo no pueden ser negativos", domain.ErrInvalidInput)
	}
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            name,
		PurchasePrice:   in.PurchasePrice,
		SalePrice:       in.SalePrice,
		Quantity:        in.Quantity,
		MinimumQuantity: in.MinimumQuantity,
		CreatedAt:       uc.now(),
	}
	if err := uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Products.Create(ctx, product)
	}); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Get devuelve el producto o domain.ErrNotFound.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := loadProduct(ctx, r, id)
		if err != nil {
			return err
		}
		out = dto.FromProduct(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List devuelve todos los productos en orden de creación.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	var list []*entity.Product
	if err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		list, err = r.Products.List(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	items := dto.FromProducts(list)
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Update aplica los campos presentes. No permite modificar la cantidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
	}
	if in.MinimumQuantity != nil && *in.MinimumQuantity < 0 {
		return nil, fmt.Errorf("%w: el mínimo no puede ser negativo", domain.ErrInvalidInput)
	}
	var out dto.ProductResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := loadProduct(ctx, r, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.PurchasePrice != nil {
			p.PurchasePrice = *in.PurchasePrice
		}
		if in.SalePrice != nil {
			p.SalePrice = *in.SalePrice
		}
		if in.MinimumQuantity != nil {
			p.MinimumQuantity = *in.MinimumQuantity
		}
		if err := validatePrices(p.PurchasePrice, p.SalePrice); err != nil {
			return err
		}
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		out = dto.FromProduct(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina el producto sin condiciones. Devuelve false si no existía.
// Facturas, movimientos e inventarios que lo referencian se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		ok, err = r.Products.Delete(ctx, id)
		return err
	})
	return ok, err
}

// AdjustQuantity suma delta (con signo) a la cantidad. Sin piso en esta capa.
func (uc *ProductUseCase) AdjustQuantity(ctx context.Context, id string, delta int) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := uc.AdjustQuantityInTx(ctx, r, id, delta)
		if err != nil {
			return err
		}
		out = dto.FromProduct(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustQuantityInTx igual que AdjustQuantity dentro de una unidad de trabajo abierta.
func (uc *ProductUseCase) AdjustQuantityInTx(ctx context.Context, r repository.Repos, id string, delta int) (*entity.Product, error) {
	p, err := loadProduct(ctx, r, id)
	if err != nil {
		return nil, err
	}
	p.Quantity += delta
	if err := r.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RegisterOutInTx descuenta quantity (> 0) y anexa un movimiento "out" con la referencia dada.
// Sin AllowNegativeStock rechaza la salida si deja la cantidad bajo cero.
func (uc *ProductUseCase) RegisterOutInTx(ctx context.Context, r repository.Repos, productID string, quantity int, reason, reference string) (*entity.Product, *entity.StockMovement, error) {
	if quantity <= 0 {
		return nil, nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	p, err := loadProduct(ctx, r, productID)
	if err != nil {
		return nil, nil, err
	}
	if !uc.policy.AllowNegativeStock && p.Quantity < quantity {
		return nil, nil, fmt.Errorf("%w: %s tiene %d, se piden %d", domain.ErrInsufficientStock, p.Name, p.Quantity, quantity)
	}
	if p, err = uc.AdjustQuantityInTx(ctx, r, productID, -quantity); err != nil {
		return nil, nil, err
	}
	m, err := appendMovement(ctx, r, p, -quantity, entity.MovementOut, reason, reference, uc.now())
	if err != nil {
		return nil, nil, err
	}
	return p, m, nil
}

// ListLowStock productos con cantidad en o bajo el mínimo, en orden de creación.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	var low []*entity.Product
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		list, err := r.Products.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range list {
			if p.IsLowStock() {
				low = append(low, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(low), nil
}

func loadProduct(ctx context.Context, r repository.Repos, id string) (*entity.Product, error) {
	p, err := r.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %q: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func validatePrices(purchase, sale decimal.Decimal) error {
	if purchase.IsNegative() || sale.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func appendMovement(ctx context.Context, r repository.Repos, p *entity.Product, quantity int, typ entity.MovementType, reason, reference string, now time.Time) (*entity.StockMovement, error) {
	m := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		Type:        typ,
		Reason:      reason,
		Reference:   reference,
		Date:        now,
		CreatedAt:   now,
	}
	if err := r.Movements.Append(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
