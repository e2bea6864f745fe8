package handler

import (
	"errors"
	"fmt"

	"go-minimart/internal/apperrors"
	"go-minimart/internal/model"
	"go-minimart/internal/service"
)

type InventoryHandler struct {
	term    *Terminal
	service service.InventoryService
	alerts  *Alerts
}

func NewInventoryHandler(term *Terminal, s service.InventoryService, alerts *Alerts) *InventoryHandler {
	return &InventoryHandler{term: term, service: s, alerts: alerts}
}

// Overview lists the catalog and runs the inventory submenu until the user
// goes back. It returns io.EOF when the input ends.
func (h *InventoryHandler) Overview() error {
	for {
		h.term.Title("Main Window --> Inventory Overview")
		products := h.service.ListProducts()
		if len(products) == 0 {
			h.term.Println("No products in the catalog.")
		} else {
			h.writeProducts(products)
			h.writeLowStockAlert(h.service.ListLowStock())
		}

		h.term.Println("\nChoose one of the following options:")
		h.term.Println("(1) Add a new product")
		h.term.Println("(2) Edit product information")
		h.term.Println("(3) Delete a product")
		h.term.Println("(4) Record purchase (restocking)")
		h.term.Println("(5) Record sale")
		h.term.Println("(6) Product history")
		h.term.Println("(7) Back to Main Window")
		choice, err := h.term.Prompt("Enter Your Choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = h.AddProduct()
		case "2":
			err = h.EditProduct()
		case "3":
			err = h.DeleteProduct()
		case "4":
			err = h.RecordPurchase()
		case "5":
			err = h.RecordSale()
		case "6":
			err = h.ProductHistory()
		case "7":
			return nil
		default:
			h.term.Println("Invalid choice. Please enter a number between 1 and 7.")
		}
		if err != nil {
			return err
		}
		h.alerts.Flush(h.term)
	}
}

func (h *InventoryHandler) AddProduct() error {
	h.term.Title("Main Window --> Inventory Overview --> Add a new product")

	name, err := h.term.Prompt("Product Name: ")
	if err != nil {
		return err
	}
	purchasePrice, err := h.term.PromptDecimal("Purchase Price (cost per unit): $")
	if err != nil {
		return h.term.Abort(err)
	}
	sellingPrice, err := h.term.PromptDecimal("Selling Price (retail per unit): $")
	if err != nil {
		return h.term.Abort(err)
	}
	threshold, err := h.term.PromptInt("Low Stock Threshold: ")
	if err != nil {
		return h.term.Abort(err)
	}

	product, err := h.service.AddProduct(service.AddProductRequest{
		Name:              name,
		PurchasePrice:     purchasePrice,
		SellingPrice:      sellingPrice,
		LowStockThreshold: threshold,
	})
	if h.term.Failed(err) {
		return nil
	}
	h.term.Println(rule)
	h.term.Printf("Product added successfully! (ID: %d, stock starts at 0)\n", product.ID)
	h.term.Unsaved(err)
	return nil
}

// EditProduct keeps any field left blank. Stock is changed only through
// purchases and sales.
func (h *InventoryHandler) EditProduct() error {
	h.term.Title("Main Window --> Inventory Overview --> Edit product")

	product, ok, err := h.promptProduct("Enter the Product ID to edit: ")
	if !ok {
		return err
	}

	h.term.Println("\nCurrent product information:")
	h.writeProducts([]model.Product{product})
	h.term.Println("\nEnter new information (press Enter to keep current value):")

	req := service.EditProductRequest{ID: product.ID}
	name, err := h.term.Prompt(fmt.Sprintf("Product Name [%s]: ", product.Name))
	if err != nil {
		return err
	}
	if name != "" {
		req.Name = &name
	}
	if req.PurchasePrice, err = h.term.PromptOptionalDecimal(fmt.Sprintf("Purchase Price [%s]: $", product.PurchasePrice.StringFixed(2))); err != nil {
		return h.term.Abort(err)
	}
	if req.SellingPrice, err = h.term.PromptOptionalDecimal(fmt.Sprintf("Selling Price [%s]: $", product.SellingPrice.StringFixed(2))); err != nil {
		return h.term.Abort(err)
	}
	if req.LowStockThreshold, err = h.term.PromptOptionalInt(fmt.Sprintf("Low Stock Threshold [%d]: ", product.LowStockThreshold)); err != nil {
		return h.term.Abort(err)
	}

	_, err = h.service.EditProduct(req)
	if h.term.Failed(err) {
		return nil
	}
	h.term.Println(rule)
	h.term.Println("Product updated successfully.")
	h.term.Unsaved(err)
	return nil
}

func (h *InventoryHandler) DeleteProduct() error {
	h.term.Title("Main Window --> Inventory Overview --> Delete product")

	product, ok, err := h.promptProduct("Enter the Product ID to delete: ")
	if !ok {
		return err
	}

	err = h.service.DeleteProduct(product.ID)
	if h.term.Failed(err) {
		return nil
	}
	h.term.Println(rule)
	h.term.Printf("Product '%s' deleted successfully. Its transactions are kept.\n", product.Name)
	h.term.Unsaved(err)
	return nil
}

func (h *InventoryHandler) RecordPurchase() error {
	h.term.Title("Main Window --> Inventory Overview --> Record Purchase (Restocking)")

	product, ok, err := h.promptProduct("Enter the Product ID: ")
	if !ok {
		return err
	}
	quantity, err := h.term.PromptInt("Enter the quantity to purchase: ")
	if err != nil {
		return h.term.Abort(err)
	}

	receipt, err := h.service.RecordPurchase(service.StockRequest{ProductID: product.ID, Quantity: quantity})
	if h.term.Failed(err) {
		return nil
	}
	h.term.Println(rule)
	h.term.Println("Purchase recorded successfully!")
	h.term.Printf("Product: %s\n", receipt.Product.Name)
	h.term.Printf("Quantity: %d\n", receipt.Transaction.Quantity)
	h.term.Printf("Unit Price: %s\n", money(receipt.Transaction.UnitPrice))
	h.term.Printf("Total Cost: %s\n", money(receipt.Transaction.TotalAmount))
	h.term.Printf("New Stock Level: %d\n", receipt.Product.StockQuantity)
	h.term.Unsaved(err)
	return nil
}

func (h *InventoryHandler) RecordSale() error {
	h.term.Title("Main Window --> Inventory Overview --> Record Sale")

	product, ok, err := h.promptProduct("Enter the Product ID: ")
	if !ok {
		return err
	}
	quantity, err := h.term.PromptInt("Enter the quantity to sell: ")
	if err != nil {
		return h.term.Abort(err)
	}

	receipt, err := h.service.RecordSale(service.StockRequest{ProductID: product.ID, Quantity: quantity})
	if errors.Is(err, apperrors.ErrInsufficientStock) {
		h.term.Println(rule)
		h.term.Println("ERROR: Insufficient stock!")
		h.term.Printf("Available stock: %d\n", product.StockQuantity)
		h.term.Printf("Requested quantity: %d\n", quantity)
		h.term.Println("Sale rejected. Please adjust the quantity or restock the product.")
		return nil
	}
	if h.term.Failed(err) {
		return nil
	}
	h.term.Println(rule)
	h.term.Println("Sale recorded successfully!")
	h.term.Printf("Product: %s\n", receipt.Product.Name)
	h.term.Printf("Quantity: %d\n", receipt.Transaction.Quantity)
	h.term.Printf("Unit Selling Price: %s\n", money(receipt.Transaction.UnitPrice))
	h.term.Printf("Revenue: %s\n", money(receipt.Revenue))
	h.term.Printf("Profit for this sale: %s\n", money(receipt.Profit))
	h.term.Printf("New Stock Level: %d\n", receipt.Product.StockQuantity)
	h.term.Unsaved(err)
	return nil
}

// ProductHistory also works for deleted products, whose ledger entries remain.
func (h *InventoryHandler) ProductHistory() error {
	h.term.Title("Main Window --> Inventory Overview --> Product history")

	id, err := h.term.PromptInt("Enter the Product ID: ")
	if err != nil {
		return h.term.Abort(err)
	}
	history := h.service.ProductHistory(id)
	if len(history) == 0 {
		h.term.Printf("No transactions recorded for product ID %d.\n", id)
		return nil
	}
	writeTransactions(h.term, history)
	return nil
}

// promptProduct reads a product id and looks it up. ok is false when the
// screen should stop; err is then the error to return from it.
func (h *InventoryHandler) promptProduct(label string) (product model.Product, ok bool, err error) {
	if len(h.service.ListProducts()) == 0 {
		h.term.Println("No products in the catalog. Please add products first.")
		return model.Product{}, false, nil
	}
	id, err := h.term.PromptInt(label)
	if err != nil {
		return model.Product{}, false, h.term.Abort(err)
	}
	product, err = h.service.GetProduct(id)
	if err != nil {
		h.term.Printf("Product with ID %d not found.\n", id)
		return model.Product{}, false, nil
	}
	return product, true, nil
}

func (h *InventoryHandler) writeProducts(products []model.Product) {
	tw := h.term.Table()
	fmt.Fprintln(tw, "ID\tName\tPurchase Price\tSelling Price\tStock\tThreshold\tStatus")
	for _, p := range products {
		status := "OK"
		if p.IsLowStock() {
			status = "LOW"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.Name, money(p.PurchasePrice), money(p.SellingPrice), p.StockQuantity, p.LowStockThreshold, status)
	}
	tw.Flush()
}

func (h *InventoryHandler) writeLowStockAlert(low []model.Product) {
	if len(low) == 0 {
		return
	}
	h.term.Println("\n*** LOW STOCK ALERT ***")
	h.term.Println("The following products are below their threshold:")
	for _, p := range low {
		h.term.Printf("  - %s (ID: %d, Stock: %d, Threshold: %d)\n", p.Name, p.ID, p.StockQuantity, p.LowStockThreshold)
	}
}
