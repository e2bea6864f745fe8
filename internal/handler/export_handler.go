package handler

import (
	"fmt"
	"io"

	"go-minimart/internal/model"
	"go-minimart/internal/service"

	"github.com/gocarina/gocsv"
)

type productRow struct {
	ID                int    `csv:"id"`
	Name              string `csv:"name"`
	PurchasePrice     string `csv:"purchase_price"`
	SellingPrice      string `csv:"selling_price"`
	StockQuantity     int    `csv:"stock_quantity"`
	LowStockThreshold int    `csv:"low_stock_threshold"`
	LowStock          bool   `csv:"low_stock"`
}

type transactionRow struct {
	ID          int    `csv:"id"`
	Type        string `csv:"type"`
	ProductID   int    `csv:"product_id"`
	ProductName string `csv:"product_name"`
	Quantity    int    `csv:"quantity"`
	UnitPrice   string `csv:"unit_price"`
	TotalAmount string `csv:"total_amount"`
}

// ExportHandler writes the catalog or the ledger as CSV.
type ExportHandler struct {
	service service.InventoryService
}

func NewExportHandler(s service.InventoryService) *ExportHandler {
	return &ExportHandler{service: s}
}

// Export writes what ("products" or "transactions") to w.
func (h *ExportHandler) Export(what string, w io.Writer) error {
	switch what {
	case "products":
		return h.ExportProducts(w)
	case "transactions":
		return h.ExportTransactions(w)
	default:
		return fmt.Errorf("unknown export %q: use products or transactions", what)
	}
}

// ExportProducts writes products sorted by name, amounts with two decimals.
func (h *ExportHandler) ExportProducts(w io.Writer) error {
	products := h.service.ListProducts()
	rows := make([]*productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &productRow{
			ID:                p.ID,
			Name:              p.Name,
			PurchasePrice:     p.PurchasePrice.StringFixed(2),
			SellingPrice:      p.SellingPrice.StringFixed(2),
			StockQuantity:     p.StockQuantity,
			LowStockThreshold: p.LowStockThreshold,
			LowStock:          p.IsLowStock(),
		})
	}
	return gocsv.Marshal(rows, w)
}

func (h *ExportHandler) ExportTransactions(w io.Writer) error {
	txs := h.service.ListTransactions()
	rows := make([]*transactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, newTransactionRow(tx))
	}
	return gocsv.Marshal(rows, w)
}

func newTransactionRow(tx model.Transaction) *transactionRow {
	return &transactionRow{
		ID:          tx.ID,
		Type:        string(tx.Type),
		ProductID:   tx.ProductID,
		ProductName: tx.ProductName,
		Quantity:    tx.Quantity,
		UnitPrice:   tx.UnitPrice.StringFixed(2),
		TotalAmount: tx.TotalAmount.StringFixed(2),
	}
}
