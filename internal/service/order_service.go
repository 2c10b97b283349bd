package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/alighauridev/ASE-Server/internal/models"
	"github.com/alighauridev/ASE-Server/internal/notifier"
)

// Notifier delivers the order-confirmation message. Failures are logged,
// never propagated: the order is already committed by the time it runs.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, msg notifier.OrderConfirmation) error
}

// OrderService implements the order lifecycle over an injected store and
// notifier so tests can run it against in-memory sqlite without a mailer.
type OrderService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewOrderService(conn *gorm.DB, n Notifier) *OrderService {
	return &OrderService{db: conn, notifier: n}
}

type OrderItemInput struct {
	ProductID uint    `json:"product" binding:"required"`
	Quantity  uint    `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"gte=0"`
}

type CreateOrderInput struct {
	ShippingInfo models.ShippingInfo `json:"shippingInfo" binding:"required"`
	OrderItems   []OrderItemInput    `json:"orderItems" binding:"required,min=1,dive"`
	PaymentInfo  models.PaymentInfo  `json:"paymentInfo" binding:"required"`
	TotalPrice   float64             `json:"totalPrice" binding:"gte=0"`
}

// CreateOrder persists a new order owned by user. Duplicate payment info is
// rejected by the unique index on payment_id, so two concurrent submissions
// with the same payment cannot both succeed.
func (s *OrderService) CreateOrder(ctx context.Context, user models.User, in CreateOrderInput) (models.Order, error) {
	order := models.Order{
		UserID:       user.ID,
		ShippingInfo: in.ShippingInfo,
		PaymentInfo:  in.PaymentInfo,
		TotalPrice:   in.TotalPrice,
		OrderStatus:  models.StatusProcessing,
		PaidAt:       time.Now(),
	}
	for _, item := range in.OrderItems {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Order{}, ErrDuplicateOrder
		}
		return models.Order{}, err
	}

	go func(order models.Order, user models.User) {
		msg := notifier.OrderConfirmation{
			Email:        user.Email,
			Name:         user.Name,
			OrderID:      order.ID,
			ShippingInfo: order.ShippingInfo,
			Items:        order.Items,
			TotalPrice:   order.TotalPrice,
		}
		if err := s.notifier.SendOrderConfirmation(context.Background(), msg); err != nil {
			log.Printf("Failed to send confirmation for order %d to %s: %v", order.ID, user.Email, err)
		}
	}(order, user)

	return order, nil
}

// GetOrder returns the order with its owning user resolved.
func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// ListUserOrders returns every order owned by userID; an empty slice is a
// valid result, not an error.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAllOrders returns every order plus the sum of their total prices.
func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, float64, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	var totalAmount float64
	for _, order := range orders {
		totalAmount += order.TotalPrice
	}
	return orders, totalAmount, nil
}

// UpdateOrderStatus moves an order along Processing → Shipped → Delivered.
// Delivered is terminal. Shipping decrements stock of every referenced
// product atomically in the store, in the same transaction as the status
// flip, so concurrent shipments cannot lose decrements.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Preload("Items").First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if order.OrderStatus == models.StatusDelivered {
			return ErrAlreadyDelivered
		}

		now := time.Now()
		updates := map[string]interface{}{"order_status": status}

		if status == models.StatusShipped {
			updates["shipped_at"] = now
			for _, item := range order.Items {
				err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).
					UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error
				if err != nil {
					return err
				}
			}
		}
		if status == models.StatusDelivered {
			updates["delivered_at"] = now
		}

		return tx.Model(&order).Updates(updates).Error
	})
}

// DeleteOrder removes an order permanently; items go with it.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// CreateProduct persists a product owned by the calling vendor.
func (s *OrderService) CreateProduct(ctx context.Context, vendor models.User, name string, price float64, stock int) (models.Product, error) {
	product := models.Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		VendorID: vendor.ID,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// GetProduct is used by tests and stock checks.
func (s *OrderService) GetProduct(ctx context.Context, productID uint) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}
