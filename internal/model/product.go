package model

import (
	"fmt"
	"math"

	"go-minimart/internal/apperrors"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"` // Cost per unit
	SellingPrice      decimal.Decimal `json:"selling_price"`  // Retail per unit
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}

// IsLowStock reports whether stock has fallen below the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity < p.LowStockThreshold
}

// IncreaseStock adds quantity units. Stock is stored as int32, so an increase
// past math.MaxInt32 is rejected and stock is left untouched.
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", apperrors.ErrValidation, quantity)
	}
	if quantity > math.MaxInt32-p.StockQuantity {
		return fmt.Errorf("%w: stock of %d plus %d exceeds %d", apperrors.ErrValidation, p.StockQuantity, quantity, math.MaxInt32)
	}
	p.StockQuantity += quantity
	return nil
}

// DecreaseStock removes quantity units, or leaves stock untouched and
// returns ErrInsufficientStock when fewer than quantity are available.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", apperrors.ErrValidation, quantity)
	}
	if p.StockQuantity < quantity {
		return fmt.Errorf("%w: available %d, requested %d", apperrors.ErrInsufficientStock, p.StockQuantity, quantity)
	}
	p.StockQuantity -= quantity
	return nil
}

// ProductUpdate is a partial edit. Nil fields keep their current value.
type ProductUpdate struct {
	Name              *string
	PurchasePrice     *decimal.Decimal
	SellingPrice      *decimal.Decimal
	LowStockThreshold *int
}

// IsEmpty reports whether the update would change nothing.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.PurchasePrice == nil && u.SellingPrice == nil && u.LowStockThreshold == nil
}

// Apply overwrites every provided field on p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.PurchasePrice != nil {
		p.PurchasePrice = *u.PurchasePrice
	}
	if u.SellingPrice != nil {
		p.SellingPrice = *u.SellingPrice
	}
	if u.LowStockThreshold != nil {
		p.LowStockThreshold = *u.LowStockThreshold
	}
}
