package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go-minimart/internal/apperrors"
	"go-minimart/internal/model"
	"go-minimart/internal/notify"
	"go-minimart/internal/repository"
	"go-minimart/pkg/database"
	"go-minimart/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store is the persistence the services need. *database.Store satisfies it.
type Store interface {
	LoadProducts() (database.ProductSnapshot, error)
	LoadTransactions() (database.TransactionSnapshot, error)
	SaveProducts(snapshot database.ProductSnapshot) error
	SaveTransactions(snapshot database.TransactionSnapshot) error
}

// Prices are capped at one trillion and counts at the int32 range the data
// files store.
type AddProductRequest struct {
	Name              string          `validate:"required,notblank"`
	PurchasePrice     decimal.Decimal `validate:"gte=0,lte=1000000000000"`
	SellingPrice      decimal.Decimal `validate:"gte=0,lte=1000000000000"`
	LowStockThreshold int             `validate:"gte=0,lte=2147483647"`
}

// EditProductRequest changes only the non-nil fields.
type EditProductRequest struct {
	ID                int              `validate:"gt=0"`
	Name              *string          `validate:"omitnil,notblank"`
	PurchasePrice     *decimal.Decimal `validate:"omitnil,gte=0,lte=1000000000000"`
	SellingPrice      *decimal.Decimal `validate:"omitnil,gte=0,lte=1000000000000"`
	LowStockThreshold *int             `validate:"omitnil,gte=0,lte=2147483647"`
}

type StockRequest struct {
	ProductID int `validate:"gt=0"`
	Quantity  int `validate:"gt=0,lte=2147483647"`
}

type Receipt struct {
	Transaction model.Transaction
	Product     model.Product
}

// SaleReceipt adds the money side of a sale. Profit uses the purchase price
// at the moment of the sale.
type SaleReceipt struct {
	Receipt
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

type InventoryService interface {
	AddProduct(req AddProductRequest) (model.Product, error)
	EditProduct(req EditProductRequest) (model.Product, error)
	DeleteProduct(id int) error
	RecordPurchase(req StockRequest) (Receipt, error)
	RecordSale(req StockRequest) (SaleReceipt, error)
	GetProduct(id int) (model.Product, error)
	ListProducts() []model.Product
	ListLowStock() []model.Product
	ListTransactions() []model.Transaction
	ListTransactionsByType(t model.TransactionType) []model.Transaction
	GetTransaction(id int) (model.Transaction, error)
	ProductHistory(productID int) []model.Transaction
}

type inventoryService struct {
	mu              sync.Mutex
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	store           Store
	hub             *notify.Hub
	logger          *zap.Logger
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, store Store, hub *notify.Hub, logger *zap.Logger) InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		store:           store,
		hub:             hub,
		logger:          logger,
	}
}

func (s *inventoryService) AddProduct(req AddProductRequest) (model.Product, error) {
	if err := validate(req); err != nil {
		return model.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.productRepo.Create(strings.TrimSpace(req.Name), req.PurchasePrice, req.SellingPrice, req.LowStockThreshold)
	s.logger.Info("product added", zap.Int("product_id", product.ID), zap.String("name", product.Name))

	err := s.saveProducts()
	s.hub.Publish(notify.TopicProductCreated, notify.Event{
		Product: product,
		Message: fmt.Sprintf("added product '%s'", product.Name),
	})
	return product, err
}

func (s *inventoryService) EditProduct(req EditProductRequest) (model.Product, error) {
	if err := validate(req); err != nil {
		return model.Product{}, err
	}

	upd := model.ProductUpdate{
		Name:              req.Name,
		PurchasePrice:     req.PurchasePrice,
		SellingPrice:      req.SellingPrice,
		LowStockThreshold: req.LowStockThreshold,
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		upd.Name = &name
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before, err := s.productRepo.FindByID(req.ID)
	if err != nil {
		return model.Product{}, err
	}
	if upd.IsEmpty() {
		return before, nil
	}

	product, err := s.productRepo.Update(req.ID, upd)
	if err != nil {
		return model.Product{}, err
	}
	s.logger.Info("product updated", zap.Int("product_id", product.ID))

	err = s.saveProducts()
	s.hub.Publish(notify.TopicProductUpdated, notify.Event{
		Product: product,
		Message: fmt.Sprintf("updated product '%s'", product.Name),
	})
	s.publishLowStock(before, product)
	return product, err
}

// DeleteProduct leaves the product's transactions in the ledger.
func (s *inventoryService) DeleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int("product_id", id))

	err = s.saveProducts()
	s.hub.Publish(notify.TopicProductDeleted, notify.Event{
		Product: product,
		Message: fmt.Sprintf("deleted product '%s'", product.Name),
	})
	return err
}

func (s *inventoryService) RecordPurchase(req StockRequest) (Receipt, error) {
	if err := validate(req); err != nil {
		return Receipt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.productRepo.IncreaseStock(req.ProductID, req.Quantity)
	if err != nil {
		return Receipt{}, err
	}
	tx, err := s.transactionRepo.RecordPurchase(product.ID, product.Name, req.Quantity, product.PurchasePrice)
	if err != nil {
		// Quantity was validated above, so this only guards a ledger refusal.
		if _, rollbackErr := s.productRepo.DecreaseStock(product.ID, req.Quantity); rollbackErr != nil {
			s.logger.Error("purchase rollback failed", zap.Int("product_id", product.ID), zap.Error(rollbackErr))
		}
		return Receipt{}, err
	}
	s.logger.Info("purchase recorded",
		zap.Int("transaction_id", tx.ID),
		zap.Int("product_id", product.ID),
		zap.Int("quantity", req.Quantity),
		zap.Int("stock", product.StockQuantity))

	err = s.saveAll()
	s.hub.Publish(notify.TopicStockChanged, notify.Event{
		Product:     product,
		Transaction: &tx,
		Message:     fmt.Sprintf("purchased %d units of '%s'", req.Quantity, product.Name),
	})
	return Receipt{Transaction: tx, Product: product}, err
}

func (s *inventoryService) RecordSale(req StockRequest) (SaleReceipt, error) {
	if err := validate(req); err != nil {
		return SaleReceipt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before, err := s.productRepo.FindByID(req.ProductID)
	if err != nil {
		return SaleReceipt{}, err
	}
	product, err := s.productRepo.DecreaseStock(req.ProductID, req.Quantity)
	if err != nil {
		return SaleReceipt{}, err
	}
	tx, err := s.transactionRepo.RecordSale(product.ID, product.Name, req.Quantity, product.SellingPrice)
	if err != nil {
		if _, rollbackErr := s.productRepo.IncreaseStock(product.ID, req.Quantity); rollbackErr != nil {
			s.logger.Error("sale rollback failed", zap.Int("product_id", product.ID), zap.Error(rollbackErr))
		}
		return SaleReceipt{}, err
	}
	s.logger.Info("sale recorded",
		zap.Int("transaction_id", tx.ID),
		zap.Int("product_id", product.ID),
		zap.Int("quantity", req.Quantity),
		zap.Int("stock", product.StockQuantity))

	receipt := SaleReceipt{
		Receipt: Receipt{Transaction: tx, Product: product},
		Revenue: tx.TotalAmount,
		Profit:  product.SellingPrice.Sub(product.PurchasePrice).Mul(decimal.NewFromInt(int64(req.Quantity))),
	}

	err = s.saveAll()
	s.hub.Publish(notify.TopicStockChanged, notify.Event{
		Product:     product,
		Transaction: &tx,
		Message:     fmt.Sprintf("sold %d units of '%s'", req.Quantity, product.Name),
	})
	s.publishLowStock(before, product)
	return receipt, err
}

func (s *inventoryService) GetProduct(id int) (model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *inventoryService) ListProducts() []model.Product {
	return s.productRepo.FindAllSortedByName()
}

func (s *inventoryService) ListLowStock() []model.Product {
	return s.productRepo.FindLowStock()
}

func (s *inventoryService) ListTransactions() []model.Transaction {
	return s.transactionRepo.FindAll()
}

func (s *inventoryService) ListTransactionsByType(t model.TransactionType) []model.Transaction {
	return s.transactionRepo.FindByType(t)
}

func (s *inventoryService) GetTransaction(id int) (model.Transaction, error) {
	return s.transactionRepo.FindByID(id)
}

func (s *inventoryService) ProductHistory(productID int) []model.Transaction {
	return s.transactionRepo.FindByProduct(productID)
}

// publishLowStock fires only when a product crosses into low stock.
func (s *inventoryService) publishLowStock(before, after model.Product) {
	if before.IsLowStock() || !after.IsLowStock() {
		return
	}
	s.logger.Warn("product low on stock",
		zap.Int("product_id", after.ID),
		zap.Int("stock", after.StockQuantity),
		zap.Int("threshold", after.LowStockThreshold))
	s.hub.Publish(notify.TopicLowStock, notify.Event{
		Product: after,
		Message: fmt.Sprintf("'%s' is low on stock: %d left (threshold %d)", after.Name, after.StockQuantity, after.LowStockThreshold),
	})
}

func (s *inventoryService) saveProducts() error {
	snapshot := database.ProductSnapshot{
		Products: s.productRepo.FindAll(),
		NextID:   s.productRepo.NextID(),
	}
	if err := s.store.SaveProducts(snapshot); err != nil {
		s.logger.Error("failed to save products", zap.Error(err))
		return fmt.Errorf("%w: %w", apperrors.ErrNotPersisted, err)
	}
	return nil
}

func (s *inventoryService) saveTransactions() error {
	snapshot := database.TransactionSnapshot{
		Transactions: s.transactionRepo.FindAll(),
		NextID:       s.transactionRepo.NextID(),
	}
	if err := s.store.SaveTransactions(snapshot); err != nil {
		s.logger.Error("failed to save transactions", zap.Error(err))
		return fmt.Errorf("%w: %w", apperrors.ErrNotPersisted, err)
	}
	return nil
}

// saveAll attempts both files even when the first one fails.
func (s *inventoryService) saveAll() error {
	return errors.Join(s.saveProducts(), s.saveTransactions())
}

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", apperrors.ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	return nil
}
