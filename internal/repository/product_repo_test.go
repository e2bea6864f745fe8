package repository_test

import (
	"testing"

	"go-minimart/internal/apperrors"
	"go-minimart/internal/model"
	"go-minimart/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ProductRepoTestSuite struct {
	suite.Suite
	repo repository.ProductRepository
}

func (suite *ProductRepoTestSuite) SetupTest() {
	suite.repo = repository.NewProductRepo(nil, 1)
}

func (suite *ProductRepoTestSuite) TestCreate_AssignsSequentialIDs() {
	milk := suite.repo.Create("Milk", dec("2.50"), dec("3.99"), 20)
	bread := suite.repo.Create("Bread", dec("1.20"), dec("2.49"), 15)

	suite.Equal(1, milk.ID)
	suite.Equal(0, milk.StockQuantity)
	suite.Equal(2, bread.ID)
	suite.Equal(3, suite.repo.NextID())
	suite.Len(suite.repo.FindAll(), 2)
}

func (suite *ProductRepoTestSuite) TestCreate_AcceptsNegativePrices() {
	p := suite.repo.Create("Odd", dec("-1"), dec("-2"), 0)
	suite.True(p.PurchasePrice.Equal(dec("-1")))
}

func (suite *ProductRepoTestSuite) TestDelete_NeverReusesIDs() {
	suite.repo.Create("Milk", dec("2.50"), dec("3.99"), 20)
	second := suite.repo.Create("Bread", dec("1.20"), dec("2.49"), 15)

	suite.Require().NoError(suite.repo.Delete(second.ID))
	third := suite.repo.Create("Eggs", dec("2.00"), dec("3.49"), 25)

	suite.Equal(3, third.ID)
	_, err := suite.repo.FindByID(second.ID)
	suite.ErrorIs(err, repository.ErrProductNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductRepoTestSuite) TestDelete_NotFound() {
	err := suite.repo.Delete(42)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductRepoTestSuite) TestUpdate_PartialFields() {
	p := suite.repo.Create("Milk", dec("2.50"), dec("3.99"), 20)

	price := dec("2.75")
	updated, err := suite.repo.Update(p.ID, model.ProductUpdate{PurchasePrice: &price})
	suite.Require().NoError(err)
	suite.Equal("Milk", updated.Name)
	suite.True(updated.PurchasePrice.Equal(price))
	suite.True(updated.SellingPrice.Equal(dec("3.99")))

	found, err := suite.repo.FindByID(p.ID)
	suite.Require().NoError(err)
	suite.Equal(updated, found)

	_, err = suite.repo.Update(99, model.ProductUpdate{PurchasePrice: &price})
	suite.ErrorIs(err, repository.ErrProductNotFound)
}

func (suite *ProductRepoTestSuite) TestStockChanges() {
	p := suite.repo.Create("Milk", dec("2.50"), dec("3.99"), 20)

	p, err := suite.repo.IncreaseStock(p.ID, 10)
	suite.Require().NoError(err)
	suite.Equal(10, p.StockQuantity)

	_, err = suite.repo.DecreaseStock(p.ID, 15)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	found, _ := suite.repo.FindByID(p.ID)
	suite.Equal(10, found.StockQuantity)

	p, err = suite.repo.DecreaseStock(p.ID, 10)
	suite.Require().NoError(err)
	suite.Equal(0, p.StockQuantity)

	_, err = suite.repo.IncreaseStock(p.ID, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.repo.IncreaseStock(77, 1)
	suite.ErrorIs(err, repository.ErrProductNotFound)
}

func (suite *ProductRepoTestSuite) TestFindAll_ReturnsCopies() {
	suite.repo.Create("Milk", dec("2.50"), dec("3.99"), 20)

	all := suite.repo.FindAll()
	all[0].StockQuantity = 500

	found, _ := suite.repo.FindByID(1)
	suite.Equal(0, found.StockQuantity)
}

func (suite *ProductRepoTestSuite) TestFindLowStock_CatalogOrder() {
	a := suite.repo.Create("Zucchini", dec("1"), dec("2"), 5)
	b := suite.repo.Create("Apples", dec("1"), dec("2"), 5)
	c := suite.repo.Create("Mango", dec("1"), dec("2"), 5)
	_, _ = suite.repo.IncreaseStock(b.ID, 10)

	low := suite.repo.FindLowStock()
	suite.Require().Len(low, 2)
	suite.Equal(a.ID, low[0].ID)
	suite.Equal(c.ID, low[1].ID)
}

func (suite *ProductRepoTestSuite) TestFindAllSortedByName_Stable() {
	suite.repo.Create("Rice", dec("3"), dec("5.49"), 15)
	suite.repo.Create("Apples", dec("1.50"), dec("2.99"), 30)
	suite.repo.Create("Rice", dec("3"), dec("5.99"), 15)
	suite.repo.Create("Bread", dec("1.20"), dec("2.49"), 15)

	sorted := suite.repo.FindAllSortedByName()
	var ids []int
	for _, p := range sorted {
		ids = append(ids, p.ID)
	}
	suite.Equal([]int{2, 4, 1, 3}, ids)

	// catalog order is unaffected
	suite.Equal(1, suite.repo.FindAll()[0].ID)
}

func (suite *ProductRepoTestSuite) TestNewProductRepo_ReconcilesCounter() {
	restored := []model.Product{
		{ID: 4, Name: "Milk"},
		{ID: 9, Name: "Bread"},
	}
	repo := repository.NewProductRepo(restored, 3)
	suite.Equal(10, repo.NextID())

	repo = repository.NewProductRepo(restored, 25)
	suite.Equal(25, repo.NextID())
}

func (suite *ProductRepoTestSuite) TestStats() {
	milk := suite.repo.Create("Milk", dec("2.50"), dec("3.99"), 20)
	bread := suite.repo.Create("Bread", dec("1.20"), dec("2.49"), 15)
	_, _ = suite.repo.IncreaseStock(milk.ID, 10)
	_, _ = suite.repo.IncreaseStock(bread.ID, 30)

	stats := suite.repo.Stats()
	suite.Equal(2, stats.TotalProducts)
	suite.Equal(1, stats.LowStockCount)
	suite.Equal(40, stats.TotalUnits)
	suite.True(stats.StockValue.Equal(dec("61")), stats.StockValue.String())
	suite.True(stats.RetailValue.Equal(dec("114.6")), stats.RetailValue.String())
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}
