package service

import (
	"go-minimart/internal/model"
	"go-minimart/internal/repository"

	"github.com/shopspring/decimal"
)

// ProfitReport lists every sale in ledger order. Sales of deleted products are
// listed but excluded from TotalProfit and SaleCount.
type ProfitReport struct {
	TotalProfit decimal.Decimal     `json:"total_profit"`
	SaleCount   int                 `json:"sale_count"`
	Sales       []model.Transaction `json:"sales"`
}

type ReportService interface {
	GetProfitReport() ProfitReport
	GetTransactionSummary() repository.TransactionSummary
	GetInventoryStats() repository.InventoryStats
}

type reportService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
}

func NewReportService(pRepo repository.ProductRepository, txRepo repository.TransactionRepository) ReportService {
	return &reportService{productRepo: pRepo, txRepo: txRepo}
}

func (s *reportService) GetProfitReport() ProfitReport {
	summary := s.txRepo.TotalProfit(s.productRepo)
	return ProfitReport{
		TotalProfit: summary.Profit,
		SaleCount:   summary.SaleCount,
		Sales:       s.txRepo.FindByType(model.TxSale),
	}
}

func (s *reportService) GetTransactionSummary() repository.TransactionSummary {
	return s.txRepo.Summary()
}

func (s *reportService) GetInventoryStats() repository.InventoryStats {
	return s.productRepo.Stats()
}
