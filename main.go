package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	config "github.com/alighauridev/ASE-Server/configs"
	"github.com/alighauridev/ASE-Server/internal/auth"
	"github.com/alighauridev/ASE-Server/internal/db"
	"github.com/alighauridev/ASE-Server/internal/handlers"
	"github.com/alighauridev/ASE-Server/internal/models"
	"github.com/alighauridev/ASE-Server/internal/notifier"
	"github.com/alighauridev/ASE-Server/internal/service"
)

func main() {
	ctx := context.Background()
	serverCfg := config.LoadServerConfig()

	conn, err := db.Connect(config.LoadDBConfig())
	if err != nil {
		log.Fatalf("DB init error: %v", err)
	}
	log.Println("Database connected and migrated successfully")

	mailer, err := notifier.NewEmailNotifier(ctx, config.LoadEmailConfig())
	if err != nil {
		log.Fatalf("Notifier init error: %v", err)
	}
	sms := notifier.NewSMSNotifier(config.LoadAfricaTalkingConfig())
	confirmations := notifier.Multi{mailer, sms}

	a := auth.New(conn)
	if err := a.ConfigureOIDC(ctx, config.LoadOIDCConfig()); err != nil {
		log.Fatalf("OIDC provider init error: %v", err)
	}

	h := handlers.NewHandler(service.NewOrderService(conn, confirmations))

	r := gin.Default()

	// ── session store ──
	store := cookie.NewStore([]byte(serverCfg.SessionSecret))
	r.Use(sessions.Sessions("gosess", store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/auth/login", a.Login)
	r.GET("/auth/callback", a.Callback)

	// ── user endpoints ──
	user := r.Group("/")
	user.Use(a.RequireAuth())
	{
		user.POST("/order/new", h.CreateOrder)
		user.GET("/order/:id", h.GetOrder)
		user.GET("/orders/me", h.MyOrders)
	}

	// ── admin endpoints ──
	admin := r.Group("/admin")
	admin.Use(a.RequireAuth(), a.RequireRole(models.RoleAdmin))
	{
		admin.GET("/orders", h.GetAllOrders)
		admin.PUT("/order/:id", h.UpdateOrderStatus)
		admin.DELETE("/order/:id", h.DeleteOrder)
	}

	// ── vendor endpoints ──
	vendor := r.Group("/vendor")
	vendor.Use(a.RequireAuth(), a.RequireRole(models.RoleVendor))
	{
		vendor.GET("/orders", h.VendorOrders)
		vendor.GET("/orders/totals", h.VendorOrderTotals)
		vendor.GET("/order/status/:status", h.VendorOrdersByStatus)
		vendor.POST("/order/daterange", h.VendorOrdersByDateRange)
		vendor.GET("/order/product/:productId", h.VendorOrdersByProduct)
		vendor.GET("/order/user/:userId", h.VendorOrdersByUser)
		vendor.PUT("/order/markpaid/:orderId", h.MarkOrderAsPaid)
		vendor.PUT("/order/refund/:orderId", h.ApplyRefundForOrder)
		vendor.PUT("/order/notes/:orderId", h.UpdateVendorOrderNotes)
		vendor.PUT("/order/shipping/:orderId", h.UpdateOrderShippingDetails)
		vendor.PUT("/order/tracking/:orderId", h.UpdateOrderTrackingInfo)
		vendor.PUT("/order/confirm/:orderId", h.ConfirmOrderDelivery)
		vendor.GET("/order/report", h.GenerateVendorOrderReport)
		vendor.GET("/order/export", h.ExportVendorOrders)
		vendor.POST("/product/new", h.CreateProduct)
	}

	r.Run(":" + serverCfg.Port)
}
