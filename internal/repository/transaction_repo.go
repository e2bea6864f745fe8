package repository

import (
	"fmt"
	"slices"
	"sync"

	"go-minimart/internal/apperrors"
	"go-minimart/internal/model"

	"github.com/shopspring/decimal"
)

var ErrTransactionNotFound = fmt.Errorf("transaction %w", apperrors.ErrNotFound)

// TransactionRepository is the append-only ledger of purchases and sales.
type TransactionRepository interface {
	RecordPurchase(productID int, productName string, quantity int, unitPrice decimal.Decimal) (model.Transaction, error)
	RecordSale(productID int, productName string, quantity int, unitPrice decimal.Decimal) (model.Transaction, error)
	FindAll() []model.Transaction
	FindByType(t model.TransactionType) []model.Transaction
	FindByID(id int) (model.Transaction, error)
	FindByProduct(productID int) []model.Transaction
	TotalProfit(products ProductLookup) ProfitSummary
	Summary() TransactionSummary
	NextID() int
}

// ProductLookup is the slice of the catalog the profit report needs.
type ProductLookup interface {
	FindByID(id int) (model.Product, error)
}

type ProfitSummary struct {
	Profit    decimal.Decimal `json:"profit"`
	SaleCount int             `json:"sale_count"`
}

// TransactionSummary counts ledger entries per type.
type TransactionSummary struct {
	Total          int             `json:"total"`
	Purchases      int             `json:"purchases"`
	Sales          int             `json:"sales"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount"`
	SaleAmount     decimal.Decimal `json:"sale_amount"`
}

type transactionRepo struct {
	mu           sync.RWMutex
	transactions []model.Transaction
	ids          *model.Sequence
}

func NewTransactionRepo(transactions []model.Transaction, nextID int) TransactionRepository {
	ids := model.NewSequence(nextID)
	restored := make([]model.Transaction, len(transactions))
	copy(restored, transactions)
	for _, tx := range restored {
		ids.Observe(tx.ID)
	}
	return &transactionRepo{transactions: restored, ids: ids}
}

func (r *transactionRepo) RecordPurchase(productID int, productName string, quantity int, unitPrice decimal.Decimal) (model.Transaction, error) {
	return r.record(model.TxPurchase, productID, productName, quantity, unitPrice)
}

// RecordSale does not look at stock. The caller must already have taken the
// units out of the catalog.
func (r *transactionRepo) RecordSale(productID int, productName string, quantity int, unitPrice decimal.Decimal) (model.Transaction, error) {
	return r.record(model.TxSale, productID, productName, quantity, unitPrice)
}

func (r *transactionRepo) record(typ model.TransactionType, productID int, productName string, quantity int, unitPrice decimal.Decimal) (model.Transaction, error) {
	if quantity <= 0 {
		return model.Transaction{}, fmt.Errorf("%w: quantity must be positive, got %d", apperrors.ErrValidation, quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx := model.NewTransaction(r.ids.Next(), typ, productID, productName, quantity, unitPrice)
	r.transactions = append(r.transactions, tx)
	return tx, nil
}

func (r *transactionRepo) FindAll() []model.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.transactions)
}

func (r *transactionRepo) FindByType(t model.TransactionType) []model.Transaction {
	return r.filter(func(tx model.Transaction) bool { return tx.Type == t })
}

func (r *transactionRepo) FindByProduct(productID int) []model.Transaction {
	return r.filter(func(tx model.Transaction) bool { return tx.ProductID == productID })
}

func (r *transactionRepo) FindByID(id int) (model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.transactions, func(tx model.Transaction) bool { return tx.ID == id })
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("%w: id %d", ErrTransactionNotFound, id)
	}
	return r.transactions[i], nil
}

// TotalProfit prices every sale against the product's current purchase price,
// so editing a purchase price changes historical profit. Sales whose product
// no longer exists are left out of both the profit and the count.
func (r *transactionRepo) TotalProfit(products ProductLookup) ProfitSummary {
	summary := ProfitSummary{Profit: decimal.Zero}
	for _, tx := range r.FindByType(model.TxSale) {
		product, err := products.FindByID(tx.ProductID)
		if err != nil {
			continue
		}
		margin := tx.UnitPrice.Sub(product.PurchasePrice)
		summary.Profit = summary.Profit.Add(margin.Mul(decimal.NewFromInt(int64(tx.Quantity))))
		summary.SaleCount++
	}
	return summary
}

func (r *transactionRepo) Summary() TransactionSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := TransactionSummary{
		Total:          len(r.transactions),
		PurchaseAmount: decimal.Zero,
		SaleAmount:     decimal.Zero,
	}
	for _, tx := range r.transactions {
		switch tx.Type {
		case model.TxPurchase:
			s.Purchases++
			s.PurchaseAmount = s.PurchaseAmount.Add(tx.TotalAmount)
		case model.TxSale:
			s.Sales++
			s.SaleAmount = s.SaleAmount.Add(tx.TotalAmount)
		}
	}
	return s
}

func (r *transactionRepo) NextID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ids.Peek()
}

func (r *transactionRepo) filter(keep func(model.Transaction) bool) []model.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Transaction
	for _, tx := range r.transactions {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}
