package model

import (
	"fmt"
	"strings"

	"go-minimart/internal/apperrors"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxPurchase TransactionType = "PURCHASE" // Restocking
	TxSale     TransactionType = "SALE"
)

func (t TransactionType) Valid() bool {
	return t == TxPurchase || t == TxSale
}

// ParseTransactionType accepts PURCHASE/SALE in any case, or the P/S shortcuts.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PURCHASE", "P":
		return TxPurchase, nil
	case "SALE", "S":
		return TxSale, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, s)
}

// Transaction is an audit record of one purchase or sale. ProductName is a
// snapshot taken when the event happened and survives renames and deletes.
type Transaction struct {
	ID          int             `json:"transaction_id"`
	Type        TransactionType `json:"type"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"` // Snapshot of quantity * unit price
}

// NewTransaction builds a transaction and fixes its total at creation time.
func NewTransaction(id int, typ TransactionType, productID int, productName string, quantity int, unitPrice decimal.Decimal) Transaction {
	return Transaction{
		ID:          id,
		Type:        typ,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
