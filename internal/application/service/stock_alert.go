package service

import (
	"context"
	"log"
	"time"

	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/email"
)

// StockAlertService periodically scans inventory and emails the store contact
// when products sit at or below their low-stock threshold.
type StockAlertService struct {
	inventoryRepo repository.InventoryRepository
	storeRepo     repository.StoreRepository
	emailService  *email.EmailService
	interval      time.Duration
	fallbackEmail string
}

// NewStockAlertService creates a new stock alert service
func NewStockAlertService(
	inventoryRepo repository.InventoryRepository,
	storeRepo repository.StoreRepository,
	emailService *email.EmailService,
	interval time.Duration,
	fallbackEmail string,
) *StockAlertService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &StockAlertService{
		inventoryRepo: inventoryRepo,
		storeRepo:     storeRepo,
		emailService:  emailService,
		interval:      interval,
		fallbackEmail: fallbackEmail,
	}
}

// Run scans on the configured interval until the context is cancelled
func (s *StockAlertService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ScanOnce(ctx); err != nil {
				log.Printf("Low stock scan failed: %v", err)
			}
		}
	}
}

// ScanOnce checks every store's inventory and sends one alert email per store
// that has low-stock products.
func (s *StockAlertService) ScanOnce(ctx context.Context) error {
	stores, err := s.storeRepo.List(ctx)
	if err != nil {
		return err
	}

	for _, store := range stores {
		records, err := s.inventoryRepo.ListLowStock(ctx, store.ID)
		if err != nil {
			log.Printf("Low stock scan failed for store %s: %v", store.ID, err)
			continue
		}
		if len(records) == 0 {
			continue
		}

		items := make([]email.LowStockItem, 0, len(records))
		for _, record := range records {
			items = append(items, email.LowStockItem{
				ProductName: record.Product.Name,
				ProductSKU:  record.Product.SKU,
				Quantity:    record.Quantity,
				Threshold:   record.LowStockThreshold,
			})
		}

		to := s.fallbackEmail
		if store.Email != nil && *store.Email != "" {
			to = *store.Email
		}
		if to == "" {
			continue
		}

		if err := s.emailService.SendLowStockAlert(to, store.Brand, items); err != nil {
			log.Printf("Failed to send low stock alert for store %s: %v", store.ID, err)
		}
	}

	return nil
}
