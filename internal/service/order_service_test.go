package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alighauridev/ASE-Server/internal/db"
	"github.com/alighauridev/ASE-Server/internal/models"
	"github.com/alighauridev/ASE-Server/internal/notifier"
	"github.com/alighauridev/ASE-Server/internal/service"
)

type stubNotifier struct {
	sent chan notifier.OrderConfirmation
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{sent: make(chan notifier.OrderConfirmation, 32)}
}

func (s *stubNotifier) SendOrderConfirmation(_ context.Context, msg notifier.OrderConfirmation) error {
	s.sent <- msg
	return nil
}

func setupTestService(t *testing.T) (*service.OrderService, *gorm.DB, *stubNotifier) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	if err := db.AutoMigrate(testDB); err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	n := newStubNotifier()
	return service.NewOrderService(testDB, n), testDB, n
}

func paymentInfo() models.PaymentInfo {
	return models.PaymentInfo{ID: uuid.NewString(), Status: "Pending"}
}

func orderInput(items ...service.OrderItemInput) service.CreateOrderInput {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return service.CreateOrderInput{
		ShippingInfo: models.ShippingInfo{
			Address: "1 Test Lane", City: "Nairobi", State: "NBO",
			Country: "Kenya", Pincode: "00100", Phone: "0712345678",
		},
		OrderItems:  items,
		PaymentInfo: paymentInfo(),
		TotalPrice:  total,
	}
}

func TestCreateOrder(t *testing.T) {
	svc, testDB, n := setupTestService(t)
	ctx := context.Background()

	user := models.User{Name: "Test User", Email: "user@example.com", Role: models.RoleUser}
	assert.NoError(t, testDB.Create(&user).Error)

	t.Run("creates order with defaults and notifies", func(t *testing.T) {
		in := orderInput(service.OrderItemInput{ProductID: 1, Quantity: 2, Price: 5})
		order, err := svc.CreateOrder(ctx, user, in)
		assert.NoError(t, err)
		assert.Greater(t, order.ID, uint(0))
		assert.Equal(t, models.StatusProcessing, order.OrderStatus)
		assert.Equal(t, user.ID, order.UserID)
		assert.False(t, order.PaidAt.IsZero())
		assert.Len(t, order.Items, 1)

		select {
		case msg := <-n.sent:
			assert.Equal(t, user.Email, msg.Email)
			assert.Equal(t, order.ID, msg.OrderID)
			assert.Equal(t, order.TotalPrice, msg.TotalPrice)
		case <-time.After(time.Second):
			t.Fatal("confirmation was never sent")
		}
	})

	t.Run("rejects duplicate payment info", func(t *testing.T) {
		in := orderInput(service.OrderItemInput{ProductID: 1, Quantity: 1, Price: 10})
		_, err := svc.CreateOrder(ctx, user, in)
		assert.NoError(t, err)

		_, err = svc.CreateOrder(ctx, user, in)
		assert.ErrorIs(t, err, service.ErrDuplicateOrder)
	})
}

func TestUsersWithoutOIDCID(t *testing.T) {
	_, testDB, _ := setupTestService(t)

	// Accounts created outside the login flow have no OIDC subject; the
	// unique index must not treat their NULLs as colliding.
	alice := models.User{Name: "Alice", Email: "alice-local@example.com"}
	bob := models.User{Name: "Bob", Email: "bob-local@example.com"}
	assert.NoError(t, testDB.Create(&alice).Error)
	assert.NoError(t, testDB.Create(&bob).Error)
	assert.Greater(t, alice.ID, uint(0))
	assert.Greater(t, bob.ID, alice.ID)
}

func TestGetOrder(t *testing.T) {
	svc, testDB, _ := setupTestService(t)
	ctx := context.Background()

	user := models.User{Name: "Test User", Email: "get@example.com"}
	assert.NoError(t, testDB.Create(&user).Error)

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetOrder(ctx, 9999)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})

	t.Run("resolves owning user", func(t *testing.T) {
		created, err := svc.CreateOrder(ctx, user, orderInput(service.OrderItemInput{ProductID: 1, Quantity: 1, Price: 7}))
		assert.NoError(t, err)

		order, err := svc.GetOrder(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, user.Name, order.User.Name)
		assert.Equal(t, user.Email, order.User.Email)
		assert.Len(t, order.Items, 1)
	})
}

func TestListUserOrders(t *testing.T) {
	svc, testDB, _ := setupTestService(t)
	ctx := context.Background()

	alice := models.User{Name: "Alice", Email: "alice@example.com"}
	bob := models.User{Name: "Bob", Email: "bob@example.com"}
	assert.NoError(t, testDB.Create(&alice).Error)
	assert.NoError(t, testDB.Create(&bob).Error)

	_, err := svc.CreateOrder(ctx, alice, orderInput(service.OrderItemInput{ProductID: 1, Quantity: 1, Price: 1}))
	assert.NoError(t, err)

	t.Run("returns only the caller's orders", func(t *testing.T) {
		orders, err := svc.ListUserOrders(ctx, alice.ID)
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		orders, err := svc.ListUserOrders(ctx, bob.ID)
		assert.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})
}

func TestListAllOrders(t *testing.T) {
	svc, testDB, _ := setupTestService(t)
	ctx := context.Background()

	user := models.User{Name: "Test User", Email: "all@example.com"}
	assert.NoError(t, testDB.Create(&user).Error)

	for _, price := range []float64{10, 20.5, 0} {
		in := orderInput(service.OrderItemInput{ProductID: 1, Quantity: 1, Price: price})
		in.TotalPrice = price
		_, err := svc.CreateOrder(ctx, user, in)
		assert.NoError(t, err)
	}

	orders, totalAmount, err := svc.ListAllOrders(ctx)
	assert.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, 30.5, totalAmount)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, testDB, _ := setupTestService(t)
	ctx := context.Background()

	user := models.User{Name: "Test User", Email: "status@example.com"}
	vendor := models.User{Name: "Vendor", Email: "vendor@example.com", Role: models.RoleVendor}
	assert.NoError(t, testDB.Create(&user).Error)
	assert.NoError(t, testDB.Create(&vendor).Error)

	p1, err := svc.CreateProduct(ctx, vendor, "Widget", 4, 5)
	assert.NoError(t, err)
	p2, err := svc.CreateProduct(ctx, vendor, "Gadget", 6, 10)
	assert.NoError(t, err)

	order, err := svc.CreateOrder(ctx, user, orderInput(
		service.OrderItemInput{ProductID: p1.ID, Quantity: 2, Price: 4},
		service.OrderItemInput{ProductID: p2.ID, Quantity: 3, Price: 6},
	))
	assert.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		err := svc.UpdateOrderStatus(ctx, 9999, models.StatusShipped)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})

	t.Run("shipping sets shippedAt and decrements stock", func(t *testing.T) {
		err := svc.UpdateOrderStatus(ctx, order.ID, models.StatusShipped)
		assert.NoError(t, err)

		updated, err := svc.GetOrder(ctx, order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusShipped, updated.OrderStatus)
		assert.NotNil(t, updated.ShippedAt)

		stock1, err := svc.GetProduct(ctx, p1.ID)
		assert.NoError(t, err)
		assert.Equal(t, 3, stock1.Stock)

		stock2, err := svc.GetProduct(ctx, p2.ID)
		assert.NoError(t, err)
		assert.Equal(t, 7, stock2.Stock)
	})

	t.Run("delivering sets deliveredAt", func(t *testing.T) {
		err := svc.UpdateOrderStatus(ctx, order.ID, models.StatusDelivered)
		assert.NoError(t, err)

		updated, err := svc.GetOrder(ctx, order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusDelivered, updated.OrderStatus)
		assert.NotNil(t, updated.DeliveredAt)
	})

	t.Run("delivered is terminal and order stays unchanged", func(t *testing.T) {
		before, err := svc.GetOrder(ctx, order.ID)
		assert.NoError(t, err)

		err = svc.UpdateOrderStatus(ctx, order.ID, models.StatusDelivered)
		assert.ErrorIs(t, err, service.ErrAlreadyDelivered)

		err = svc.UpdateOrderStatus(ctx, order.ID, models.StatusProcessing)
		assert.ErrorIs(t, err, service.ErrAlreadyDelivered)

		after, err := svc.GetOrder(ctx, order.ID)
		assert.NoError(t, err)
		assert.Equal(t, before.OrderStatus, after.OrderStatus)
		assert.Equal(t, before.DeliveredAt.Unix(), after.DeliveredAt.Unix())

		// Stock was not decremented again either.
		stock1, err := svc.GetProduct(ctx, p1.ID)
		assert.NoError(t, err)
		assert.Equal(t, 3, stock1.Stock)
	})
}

func TestDeleteOrder(t *testing.T) {
	svc, testDB, _ := setupTestService(t)
	ctx := context.Background()

	user := models.User{Name: "Test User", Email: "delete@example.com"}
	assert.NoError(t, testDB.Create(&user).Error)

	order, err := svc.CreateOrder(ctx, user, orderInput(service.OrderItemInput{ProductID: 1, Quantity: 1, Price: 3}))
	assert.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		err := svc.DeleteOrder(ctx, 9999)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	})

	t.Run("deleted order is gone, items included", func(t *testing.T) {
		err := svc.DeleteOrder(ctx, order.ID)
		assert.NoError(t, err)

		_, err = svc.GetOrder(ctx, order.ID)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)

		var count int64
		testDB.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestEndToEndLifecycle(t *testing.T) {
	svc, testDB, _ := setupTestService(t)
	ctx := context.Background()

	user := models.User{Name: "Test User", Email: "e2e@example.com"}
	vendor := models.User{Name: "Vendor", Email: "e2e-vendor@example.com", Role: models.RoleVendor}
	assert.NoError(t, testDB.Create(&user).Error)
	assert.NoError(t, testDB.Create(&vendor).Error)

	p1, err := svc.CreateProduct(ctx, vendor, "P1", 5, 100)
	assert.NoError(t, err)

	created, err := svc.CreateOrder(ctx, user, orderInput(
		service.OrderItemInput{ProductID: p1.ID, Quantity: 2, Price: 5},
	))
	assert.NoError(t, err)
	assert.Equal(t, 10.0, created.TotalPrice)

	order, err := svc.GetOrder(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, order.OrderStatus)

	assert.NoError(t, svc.UpdateOrderStatus(ctx, created.ID, models.StatusShipped))
	order, err = svc.GetOrder(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusShipped, order.OrderStatus)

	product, err := svc.GetProduct(ctx, p1.ID)
	assert.NoError(t, err)
	assert.Equal(t, 98, product.Stock)

	assert.NoError(t, svc.UpdateOrderStatus(ctx, created.ID, models.StatusDelivered))
	order, err = svc.GetOrder(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.OrderStatus)

	err = svc.UpdateOrderStatus(ctx, created.ID, models.StatusDelivered)
	assert.ErrorIs(t, err, service.ErrAlreadyDelivered)
}
