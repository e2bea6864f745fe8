package main

import (
	"flag"
	"log"

	"go-minimart/internal/config"
	"go-minimart/internal/logger"
	"go-minimart/internal/service"
	"go-minimart/pkg/database"

	"github.com/shopspring/decimal"
)

type sampleProduct struct {
	name          string
	purchasePrice string
	sellingPrice  string
	threshold     int
	stock         int
}

var sampleProducts = []sampleProduct{
	{"Milk", "2.50", "3.99", 20, 50},
	{"Bread", "1.20", "2.49", 15, 30},
	{"Eggs", "2.00", "3.49", 25, 40},
	{"Apples", "1.50", "2.99", 30, 60},
	{"Chicken Breast", "5.00", "8.99", 10, 25},
	{"Rice", "3.00", "5.49", 15, 35},
	{"Tomatoes", "1.80", "3.29", 20, 45},
	{"Orange Juice", "2.30", "4.49", 10, 20},
}

// sampleSales refer to products by their position in sampleProducts.
var sampleSales = []struct {
	product  int
	quantity int
}{
	{0, 10}, {1, 15}, {2, 20}, {3, 30}, {4, 10}, {0, 5}, {5, 20}, {6, 25},
}

func main() {
	force := flag.Bool("force", false, "Replace existing data files")
	flag.Parse()

	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	zapLogger, err := logger.New(cfg, false)
	if err != nil {
		log.Fatalf("❌ Failed to set up logging: %v", err)
	}
	defer zapLogger.Sync()

	// 2. Setup store
	store, err := database.Open(database.Options{
		DataDir:          cfg.DataDir,
		ProductsFile:     cfg.ProductsFile,
		TransactionsFile: cfg.TransactionsFile,
	}, zapLogger)
	if err != nil {
		log.Fatalf("❌ Failed to open data directory: %v", err)
	}

	// 3. Refuse to clobber real data
	if store.Exists() {
		if !*force {
			log.Fatalf("❌ Data already exists in %s. Re-run with -force to replace it.", cfg.DataDir)
		}
		if err := store.Reset(); err != nil {
			log.Fatalf("❌ Failed to remove existing data: %v", err)
		}
		log.Println("Existing data removed")
	}

	// 4. Seed through the service so every step is validated and saved
	repos := service.Bootstrap(store, zapLogger)
	svc := service.NewInventoryService(repos.Products, repos.Transactions, store, nil, zapLogger)
	if err := seed(svc); err != nil {
		log.Fatalf("❌ Failed to seed data: %v", err)
	}

	log.Printf("✅ Sample data initialized in %s", cfg.DataDir)
	log.Printf("  - %d products added to catalog", len(sampleProducts))
	log.Printf("  - %d purchase transactions recorded", len(sampleProducts))
	log.Printf("  - %d sale transactions recorded", len(sampleSales))
}

func seed(svc service.InventoryService) error {
	ids := make([]int, len(sampleProducts))
	for i, sp := range sampleProducts {
		p, err := svc.AddProduct(service.AddProductRequest{
			Name:              sp.name,
			PurchasePrice:     decimal.RequireFromString(sp.purchasePrice),
			SellingPrice:      decimal.RequireFromString(sp.sellingPrice),
			LowStockThreshold: sp.threshold,
		})
		if err != nil {
			return err
		}
		ids[i] = p.ID
	}

	for i, sp := range sampleProducts {
		if _, err := svc.RecordPurchase(service.StockRequest{ProductID: ids[i], Quantity: sp.stock}); err != nil {
			return err
		}
	}

	for _, sale := range sampleSales {
		if _, err := svc.RecordSale(service.StockRequest{ProductID: ids[sale.product], Quantity: sale.quantity}); err != nil {
			return err
		}
	}
	return nil
}
