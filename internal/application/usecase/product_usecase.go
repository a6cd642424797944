package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	appinv "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock nunca se escribe
// aquí: un initialStock distinto de cero se registra como asiento `initial`
// del ledger y de ahí en adelante solo los documentos validados lo mueven.
type ProductUseCase struct {
	repo     repository.ProductRepository
	stock    repository.StockLevelRepository
	txRunner appinv.TxRunner
	notifier appinv.Notifier
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stock repository.StockLevelRepository, txRunner appinv.TxRunner, notifier appinv.Notifier) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock, txRunner: txRunner, notifier: notifier}
}

// Create crea un producto. SKU duplicado en el tenant devuelve ErrDuplicate.
// Si initialStock no es cero se escribe el asiento inicial en la misma
// transacción que el alta del producto.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(ownerID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		SKU:          in.SKU,
		Name:         in.Name,
		Category:     in.Category,
		UOM:          in.UOM,
		ReorderLevel: in.ReorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(r appinv.TxRepos) error {
		if err := r.Products.Create(product); err != nil {
			return err
		}
		if in.InitialStock.IsZero() {
			return nil
		}
		entry := &entity.LedgerEntry{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			SKU:       product.SKU,
			QtyChange: in.InitialStock,
			Location:  in.InitialLocation,
			Type:      entity.MovementTypeInitial,
			Reason:    "Initial stock",
			TS:        now,
		}
		return appinv.PostEntry(r, entry, now)
	})
	if err != nil {
		return nil, err
	}
	if !in.InitialStock.IsZero() {
		uc.notifier.StockChanged(ownerID, product.SKU)
	}
	return uc.withStock(ownerID, product)
}

// GetBySKU obtiene un producto con su stock por bodega.
func (uc *ProductUseCase) GetBySKU(ownerID, sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(ownerID, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withStock(ownerID, product)
}

// Update actualiza metadatos de un producto. El SKU y el stock no se tocan.
func (uc *ProductUseCase) Update(ownerID, sku string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(ownerID, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.UOM != nil {
		product.UOM = *in.UOM
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.withStock(ownerID, product)
}

// List lista productos del tenant con su stock, una sola consulta de niveles
// para todo el listado.
func (uc *ProductUseCase) List(ownerID string, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	levels, err := uc.stock.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	bySKU := make(map[string]map[string]decimal.Decimal)
	for _, lv := range levels {
		if bySKU[lv.SKU] == nil {
			bySKU[lv.SKU] = make(map[string]decimal.Decimal)
		}
		bySKU[lv.SKU][lv.Location] = bySKU[lv.SKU][lv.Location].Add(lv.Quantity)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p, bySKU[p.SKU]))
	}
	return out, nil
}

// Delete elimina un producto por SKU. Los asientos del ledger se conservan.
func (uc *ProductUseCase) Delete(ownerID, sku string) error {
	return uc.repo.DeleteBySKU(ownerID, sku)
}

func (uc *ProductUseCase) withStock(ownerID string, p *entity.Product) (*dto.ProductResponse, error) {
	levels, err := uc.stock.ListBySKU(ownerID, p.SKU)
	if err != nil {
		return nil, err
	}
	byLocation := make(map[string]decimal.Decimal, len(levels))
	for _, lv := range levels {
		byLocation[lv.Location] = byLocation[lv.Location].Add(lv.Quantity)
	}
	return toProductResponse(p, byLocation), nil
}

func toProductResponse(p *entity.Product, byLocation map[string]decimal.Decimal) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	if byLocation == nil {
		byLocation = map[string]decimal.Decimal{}
	}
	total := decimal.Zero
	for _, qty := range byLocation {
		total = total.Add(qty)
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		UOM:          p.UOM,
		ReorderLevel: p.ReorderLevel,
		Stock:        total,
		ByLocation:   byLocation,
	}
}
