package main

import (
	"go-minimart/internal/config"
	"go-minimart/internal/logger"
	"go-minimart/internal/notify"
	"go-minimart/internal/service"
	"go-minimart/pkg/database"

	"go.uber.org/zap"
)

// application is the wired dependency graph shared by every command.
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *database.Store
	hub       *notify.Hub
	repos     service.Repositories
	inventory service.InventoryService
	reports   service.ReportService
}

func newApplication(verbose bool) (*application, error) {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// 2. Setup logger
	log, err := logger.New(cfg, verbose)
	if err != nil {
		return nil, err
	}

	// 3. Setup store
	store, err := database.Open(database.Options{
		DataDir:          cfg.DataDir,
		ProductsFile:     cfg.ProductsFile,
		TransactionsFile: cfg.TransactionsFile,
	}, log)
	if err != nil {
		return nil, err
	}

	// 4. Restore state
	repos := service.Bootstrap(store, log)

	// 5. Dependency Injection (Wiring Layers)
	hub := notify.NewHub()
	return &application{
		cfg:       cfg,
		logger:    log,
		store:     store,
		hub:       hub,
		repos:     repos,
		inventory: service.NewInventoryService(repos.Products, repos.Transactions, store, hub, log),
		reports:   service.NewReportService(repos.Products, repos.Transactions),
	}, nil
}

func (a *application) Close() {
	_ = a.logger.Sync()
}
