package repository

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"go-minimart/internal/apperrors"
	"go-minimart/internal/model"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = fmt.Errorf("product %w", apperrors.ErrNotFound)

// ProductRepository is the product catalog. Every read returns copies.
type ProductRepository interface {
	Create(name string, purchasePrice, sellingPrice decimal.Decimal, lowStockThreshold int) model.Product
	FindAll() []model.Product
	FindByID(id int) (model.Product, error)
	Update(id int, upd model.ProductUpdate) (model.Product, error)
	Delete(id int) error
	IncreaseStock(id int, quantity int) (model.Product, error)
	DecreaseStock(id int, quantity int) (model.Product, error)
	FindLowStock() []model.Product
	FindAllSortedByName() []model.Product
	NextID() int
	Stats() InventoryStats
}

// InventoryStats summarises the catalog for the overview screen.
type InventoryStats struct {
	TotalProducts int             `json:"total_products"`
	LowStockCount int             `json:"low_stock_count"`
	TotalUnits    int             `json:"total_units"`
	StockValue    decimal.Decimal `json:"stock_value"`  // Sum of stock * purchase price
	RetailValue   decimal.Decimal `json:"retail_value"` // Sum of stock * selling price
}

type productRepo struct {
	mu       sync.RWMutex
	products []model.Product
	ids      *model.Sequence
}

// NewProductRepo builds a catalog from restored products. The counter is
// moved past the highest restored id so a stale counter cannot collide.
func NewProductRepo(products []model.Product, nextID int) ProductRepository {
	ids := model.NewSequence(nextID)
	restored := make([]model.Product, len(products))
	copy(restored, products)
	for _, p := range restored {
		ids.Observe(p.ID)
	}
	return &productRepo{products: restored, ids: ids}
}

// Create does not check prices; callers validate them.
func (r *productRepo) Create(name string, purchasePrice, sellingPrice decimal.Decimal, lowStockThreshold int) model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	product := model.Product{
		ID:                r.ids.Next(),
		Name:              name,
		PurchasePrice:     purchasePrice,
		SellingPrice:      sellingPrice,
		StockQuantity:     0,
		LowStockThreshold: lowStockThreshold,
	}
	r.products = append(r.products, product)
	return product
}

func (r *productRepo) FindAll() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.products)
}

func (r *productRepo) FindByID(id int) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return r.products[i], nil
}

func (r *productRepo) Update(id int, upd model.ProductUpdate) (model.Product, error) {
	return r.mutate(id, func(p *model.Product) error {
		upd.Apply(p)
		return nil
	})
}

// Delete removes the first product with the given id. The id counter is not
// touched and ledger entries that reference the product are left as they are.
func (r *productRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	r.products = slices.Delete(r.products, i, i+1)
	return nil
}

func (r *productRepo) IncreaseStock(id int, quantity int) (model.Product, error) {
	return r.mutate(id, func(p *model.Product) error {
		return p.IncreaseStock(quantity)
	})
}

func (r *productRepo) DecreaseStock(id int, quantity int) (model.Product, error) {
	return r.mutate(id, func(p *model.Product) error {
		return p.DecreaseStock(quantity)
	})
}

func (r *productRepo) FindLowStock() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var low []model.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low
}

// FindAllSortedByName sorts by name, keeping catalog order for equal names.
func (r *productRepo) FindAllSortedByName() []model.Product {
	sorted := r.FindAll()
	slices.SortStableFunc(sorted, func(a, b model.Product) int {
		return strings.Compare(a.Name, b.Name)
	})
	return sorted
}

func (r *productRepo) NextID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ids.Peek()
}

func (r *productRepo) Stats() InventoryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := InventoryStats{
		TotalProducts: len(r.products),
		StockValue:    decimal.Zero,
		RetailValue:   decimal.Zero,
	}
	for _, p := range r.products {
		units := decimal.NewFromInt(int64(p.StockQuantity))
		stats.TotalUnits += p.StockQuantity
		stats.StockValue = stats.StockValue.Add(p.PurchasePrice.Mul(units))
		stats.RetailValue = stats.RetailValue.Add(p.SellingPrice.Mul(units))
		if p.IsLowStock() {
			stats.LowStockCount++
		}
	}
	return stats
}

// mutate applies fn to a scratch copy and commits it only if fn succeeds.
func (r *productRepo) mutate(id int, fn func(p *model.Product) error) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	updated := r.products[i]
	if err := fn(&updated); err != nil {
		return r.products[i], err
	}
	r.products[i] = updated
	return updated, nil
}

func (r *productRepo) indexOf(id int) int {
	return slices.IndexFunc(r.products, func(p model.Product) bool { return p.ID == id })
}
