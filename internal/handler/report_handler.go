package handler

import (
	"fmt"

	"go-minimart/internal/model"
	"go-minimart/internal/service"
)

type ReportHandler struct {
	term      *Terminal
	reports   service.ReportService
	inventory service.InventoryService
}

func NewReportHandler(term *Terminal, reports service.ReportService, inventory service.InventoryService) *ReportHandler {
	return &ReportHandler{term: term, reports: reports, inventory: inventory}
}

// ProfitReport prices each sale against the product's current purchase price.
func (h *ReportHandler) ProfitReport() {
	h.term.Title("Main Window --> Total Profit Report")

	report := h.reports.GetProfitReport()
	h.term.Println(rule)
	h.term.Printf("Total Number of Sales: %d\n", report.SaleCount)
	h.term.Printf("Total Profit: %s\n", money(report.TotalProfit))
	h.term.Println(rule)

	if len(report.Sales) > 0 {
		h.term.Println("\nSale Transactions:")
		writeTransactions(h.term, report.Sales)
	}
}

// Transactions asks for an optional type filter and lists the ledger.
func (h *ReportHandler) Transactions() error {
	h.term.Title("Main Window --> View Transactions")

	filter, err := h.term.Prompt("Filter by type: (P)urchase, (S)ale, or Enter for all: ")
	if err != nil {
		return err
	}
	var typ model.TransactionType
	if filter != "" {
		if typ, err = model.ParseTransactionType(filter); err != nil {
			h.term.Printf("Unknown transaction type %q. Use P, S, or leave blank.\n", filter)
			return nil
		}
	}
	h.ShowTransactions(typ)
	return nil
}

// ShowTransactions lists the ledger in recording order. An empty type lists everything.
func (h *ReportHandler) ShowTransactions(typ model.TransactionType) {
	summary := h.reports.GetTransactionSummary()
	if summary.Total == 0 {
		h.term.Println("No transactions recorded.")
		return
	}
	h.term.Printf("Total Transactions: %d (Purchases: %d, Sales: %d)\n", summary.Total, summary.Purchases, summary.Sales)
	h.term.Printf("Purchased: %s  Sold: %s\n", money(summary.PurchaseAmount), money(summary.SaleAmount))

	txs := h.inventory.ListTransactions()
	label := "All Transactions"
	if typ != "" {
		txs = h.inventory.ListTransactionsByType(typ)
		label = fmt.Sprintf("%s Transactions", typ)
	}
	h.term.Printf("\n%s:\n", label)
	if len(txs) == 0 {
		h.term.Println("None.")
		return
	}
	writeTransactions(h.term, txs)
}

func (h *ReportHandler) LowStock() {
	h.term.Title("Main Window --> Low Stock Report")

	stats := h.reports.GetInventoryStats()
	h.term.Printf("Products: %d  Units in stock: %d  Stock value: %s  Retail value: %s\n",
		stats.TotalProducts, stats.TotalUnits, money(stats.StockValue), money(stats.RetailValue))

	low := h.inventory.ListLowStock()
	if len(low) == 0 {
		h.term.Println("No products are below their low stock threshold.")
		return
	}
	h.term.Printf("%d product(s) below threshold:\n", stats.LowStockCount)
	tw := h.term.Table()
	fmt.Fprintln(tw, "ID\tName\tStock\tThreshold\tShort By")
	for _, p := range low {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", p.ID, p.Name, p.StockQuantity, p.LowStockThreshold, p.LowStockThreshold-p.StockQuantity)
	}
	tw.Flush()
}

func writeTransactions(term *Terminal, txs []model.Transaction) {
	tw := term.Table()
	fmt.Fprintln(tw, "ID\tType\tPID\tProduct Name\tQuantity\tUnit Price\tTotal")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%s\t%s\n",
			tx.ID, tx.Type, tx.ProductID, tx.ProductName, tx.Quantity, money(tx.UnitPrice), money(tx.TotalAmount))
	}
	tw.Flush()
}
