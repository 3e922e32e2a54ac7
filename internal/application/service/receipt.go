package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/domain/enum"
)

// Receipt is the printable projection of an order. All money fields are
// rounded to two decimals here; the receipt is presentation, not storage.
type Receipt struct {
	OrderID       uuid.UUID        `json:"order_id"`
	StoreName     string           `json:"store_name"`
	StoreAddress  *string          `json:"store_address,omitempty"`
	CashierName   string           `json:"cashier_name"`
	CustomerName  *string          `json:"customer_name,omitempty"`
	PaymentType   enum.PaymentType `json:"payment_type"`
	Lines         []ReceiptLine    `json:"lines"`
	Subtotal      float64          `json:"subtotal"`
	TotalDiscount float64          `json:"total_discount"`
	TotalAmount   float64          `json:"total_amount"`
	IssuedAt      time.Time        `json:"issued_at"`
}

// ReceiptLine is one item line on a receipt
type ReceiptLine struct {
	ProductName string  `json:"product_name"`
	ProductSKU  string  `json:"product_sku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
	LineTotal   float64 `json:"line_total"`
}

// GenerateReceipt builds the receipt projection for a completed order
func (s *OrderService) GenerateReceipt(ctx context.Context, orderID uuid.UUID) (*Receipt, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, ReceiptLine{
			ProductName: item.Product.Name,
			ProductSKU:  item.Product.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.SellingPrice.Round(2).InexactFloat64(),
			Discount:    item.DiscountApplied.Round(2).InexactFloat64(),
			LineTotal:   item.Price.Round(2).InexactFloat64(),
		})
	}

	receipt := &Receipt{
		OrderID:       order.ID,
		StoreName:     order.Store.Brand,
		StoreAddress:  order.Store.Address,
		CashierName:   order.Cashier.FullName(),
		PaymentType:   order.PaymentType,
		Lines:         lines,
		Subtotal:      order.Subtotal.Round(2).InexactFloat64(),
		TotalDiscount: order.TotalDiscount.Round(2).InexactFloat64(),
		TotalAmount:   order.TotalAmount.Round(2).InexactFloat64(),
		IssuedAt:      order.CreatedAt,
	}
	if order.Customer != nil {
		receipt.CustomerName = &order.Customer.FullName
	}
	return receipt, nil
}
