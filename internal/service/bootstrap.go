package service

import (
	"go-minimart/internal/repository"

	"go.uber.org/zap"
)

// Repositories is the in-memory state restored at startup.
type Repositories struct {
	Products     repository.ProductRepository
	Transactions repository.TransactionRepository

	// LoadErrors holds the reasons a file was replaced by an empty collection.
	LoadErrors []error
}

// Bootstrap loads both files independently. A file that cannot be read is
// logged and replaced by an empty collection; startup never fails because of it.
func Bootstrap(store Store, logger *zap.Logger) Repositories {
	if logger == nil {
		logger = zap.NewNop()
	}
	var repos Repositories

	products, err := store.LoadProducts()
	if err != nil {
		logger.Warn("product data unreadable, starting with an empty catalog", zap.Error(err))
		repos.LoadErrors = append(repos.LoadErrors, err)
	}
	repos.Products = repository.NewProductRepo(products.Products, products.NextID)

	transactions, err := store.LoadTransactions()
	if err != nil {
		logger.Warn("transaction data unreadable, starting with an empty ledger", zap.Error(err))
		repos.LoadErrors = append(repos.LoadErrors, err)
	}
	repos.Transactions = repository.NewTransactionRepo(transactions.Transactions, transactions.NextID)

	logger.Info("inventory restored",
		zap.Int("products", len(products.Products)),
		zap.Int("next_product_id", repos.Products.NextID()),
		zap.Int("transactions", len(transactions.Transactions)),
		zap.Int("next_transaction_id", repos.Transactions.NextID()))
	return repos
}
