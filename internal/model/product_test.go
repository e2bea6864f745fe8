package model_test

import (
	"math"
	"testing"

	"go-minimart/internal/apperrors"
	"go-minimart/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_DecreaseStock(t *testing.T) {
	p := model.Product{ID: 1, Name: "Milk", StockQuantity: 10, LowStockThreshold: 20}

	err := p.DecreaseStock(15)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Equal(t, 10, p.StockQuantity, "rejected decrease must not touch stock")

	require.NoError(t, p.DecreaseStock(10))
	assert.Equal(t, 0, p.StockQuantity)

	assert.ErrorIs(t, p.DecreaseStock(1), apperrors.ErrInsufficientStock)
	assert.Equal(t, 0, p.StockQuantity)
}

func TestProduct_StockNeverNegative(t *testing.T) {
	p := model.Product{ID: 1, Name: "Eggs", LowStockThreshold: 5}
	ops := []int{3, -4, 2, -1, -9, 7, -7, -1, 4, -4}

	for _, op := range ops {
		if op > 0 {
			require.NoError(t, p.IncreaseStock(op))
		} else {
			before := p.StockQuantity
			if err := p.DecreaseStock(-op); err != nil {
				assert.Equal(t, before, p.StockQuantity)
			}
		}
		assert.GreaterOrEqual(t, p.StockQuantity, 0)
		assert.Equal(t, p.StockQuantity < p.LowStockThreshold, p.IsLowStock())
	}
}

func TestProduct_QuantityMustBePositive(t *testing.T) {
	p := model.Product{StockQuantity: 5}

	assert.ErrorIs(t, p.IncreaseStock(0), apperrors.ErrValidation)
	assert.ErrorIs(t, p.IncreaseStock(-2), apperrors.ErrValidation)
	assert.ErrorIs(t, p.DecreaseStock(0), apperrors.ErrValidation)
	assert.Equal(t, 5, p.StockQuantity)
}

func TestProduct_IncreaseStockCapsAtInt32(t *testing.T) {
	p := model.Product{StockQuantity: math.MaxInt32 - 5}

	err := p.IncreaseStock(6)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, math.MaxInt32-5, p.StockQuantity)

	require.NoError(t, p.IncreaseStock(5))
	assert.Equal(t, math.MaxInt32, p.StockQuantity)
	assert.ErrorIs(t, p.IncreaseStock(1), apperrors.ErrValidation)
}

func TestProduct_IsLowStock(t *testing.T) {
	p := model.Product{StockQuantity: 20, LowStockThreshold: 20}
	assert.False(t, p.IsLowStock(), "stock equal to threshold is not low")

	p.StockQuantity = 19
	assert.True(t, p.IsLowStock())

	p.LowStockThreshold = 0
	assert.False(t, p.IsLowStock())
}

func TestProductUpdate_Apply(t *testing.T) {
	p := model.Product{
		ID:                3,
		Name:              "Bread",
		PurchasePrice:     decimal.RequireFromString("1.20"),
		SellingPrice:      decimal.RequireFromString("2.49"),
		StockQuantity:     7,
		LowStockThreshold: 15,
	}

	name := "Rye Bread"
	threshold := 4
	upd := model.ProductUpdate{Name: &name, LowStockThreshold: &threshold}
	assert.False(t, upd.IsEmpty())
	upd.Apply(&p)

	assert.Equal(t, "Rye Bread", p.Name)
	assert.Equal(t, 4, p.LowStockThreshold)
	assert.True(t, p.PurchasePrice.Equal(decimal.RequireFromString("1.20")))
	assert.True(t, p.SellingPrice.Equal(decimal.RequireFromString("2.49")))
	assert.Equal(t, 7, p.StockQuantity)
	assert.Equal(t, 3, p.ID)

	assert.True(t, model.ProductUpdate{}.IsEmpty())
}
