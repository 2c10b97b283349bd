package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alighauridev/ASE-Server/internal/models"
)

// VendorOrderFilter narrows a vendor's order listing. Zero values mean
// "no constraint".
type VendorOrderFilter struct {
	Status    string
	From      *time.Time
	To        *time.Time
	ProductID uint
	UserID    uint
}

// vendorScope restricts a query to orders containing at least one item
// whose product belongs to vendorID.
func (s *OrderService) vendorScope(ctx context.Context, vendorID uint) *gorm.DB {
	sub := s.db.Model(&models.OrderItem{}).
		Select("order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.vendor_id = ?", vendorID)
	return s.db.WithContext(ctx).Where("orders.id IN (?)", sub)
}

// ListVendorOrders returns the vendor's orders, optionally filtered.
func (s *OrderService) ListVendorOrders(ctx context.Context, vendorID uint, f VendorOrderFilter) ([]models.Order, error) {
	q := s.vendorScope(ctx, vendorID).Preload("Items")

	if f.Status != "" {
		q = q.Where("order_status = ?", f.Status)
	}
	if f.From != nil && f.To != nil {
		q = q.Where("created_at BETWEEN ? AND ?", *f.From, *f.To)
	}
	if f.ProductID != 0 {
		itemSub := s.db.Model(&models.OrderItem{}).
			Select("order_id").
			Where("product_id = ?", f.ProductID)
		q = q.Where("orders.id IN (?)", itemSub)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	orders := []models.Order{}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// VendorOrderTotals sums totalPrice over all of the vendor's orders.
func (s *OrderService) VendorOrderTotals(ctx context.Context, vendorID uint) (float64, error) {
	orders, err := s.ListVendorOrders(ctx, vendorID, VendorOrderFilter{})
	if err != nil {
		return 0, err
	}

	var totalAmount float64
	for _, order := range orders {
		totalAmount += order.TotalPrice
	}
	return totalAmount, nil
}

func (s *OrderService) fetchOrder(ctx context.Context, orderID uint) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// MarkOrderAsPaid sets paymentInfo.status to "Paid" and nothing else.
func (s *OrderService) MarkOrderAsPaid(ctx context.Context, orderID uint) error {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&order).Update("payment_status", "Paid").Error
}

// ApplyRefund verifies the order exists and issues a refund reference.
// Actual refund settlement happens in the payment provider, not here.
func (s *OrderService) ApplyRefund(ctx context.Context, orderID uint) (string, error) {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	ref := "REF-" + uuid.NewString()
	log.Printf("Refund %s requested for order %d", ref, order.ID)
	return ref, nil
}

// UpdateOrderNotes replaces the vendor notes on the order.
func (s *OrderService) UpdateOrderNotes(ctx context.Context, orderID uint, notes string) error {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&order).Update("notes", notes).Error
}

// UpdateOrderShipping replaces the order's shipping info, touching only the
// shipping columns.
func (s *OrderService) UpdateOrderShipping(ctx context.Context, orderID uint, info models.ShippingInfo) error {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&order).Updates(map[string]interface{}{
		"shipping_address": info.Address,
		"shipping_city":    info.City,
		"shipping_state":   info.State,
		"shipping_country": info.Country,
		"shipping_pincode": info.Pincode,
		"shipping_phone":   info.Phone,
	}).Error
}

// UpdateOrderTracking replaces the order's tracking info, touching only the
// tracking columns.
func (s *OrderService) UpdateOrderTracking(ctx context.Context, orderID uint, info models.TrackingInfo) error {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&order).Updates(map[string]interface{}{
		"tracking_carrier": info.Carrier,
		"tracking_number":  info.Number,
		"tracking_url":     info.URL,
	}).Error
}

// ConfirmDelivery marks the order delivered with a delivery timestamp.
func (s *OrderService) ConfirmDelivery(ctx context.Context, orderID uint) error {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&order).Updates(map[string]interface{}{
		"order_status": models.StatusDelivered,
		"delivered_at": time.Now(),
	}).Error
}
