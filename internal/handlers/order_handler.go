package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alighauridev/ASE-Server/internal/auth"
	"github.com/alighauridev/ASE-Server/internal/service"
)

// Handler exposes the order lifecycle service over gin routes.
type Handler struct {
	Service *service.OrderService
}

func NewHandler(svc *service.OrderService) *Handler {
	return &Handler{Service: svc}
}

// respondError maps service errors to the HTTP taxonomy: NotFound → 404,
// duplicate/delivered guards → 400, anything else → 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrDuplicateOrder), errors.Is(err, service.ErrAlreadyDelivered):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return uint(id), true
}

// POST /order/new
func (h *Handler) CreateOrder(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req service.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	order, err := h.Service.CreateOrder(c.Request.Context(), *user, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// GET /order/:id
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.Service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// GET /orders/me
func (h *Handler) MyOrders(c *gin.Context) {
	user := auth.CurrentUser(c)

	orders, err := h.Service.ListUserOrders(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GET /admin/orders
func (h *Handler) GetAllOrders(c *gin.Context) {
	orders, totalAmount, err := h.Service.ListAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "totalAmount": totalAmount})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Processing Shipped Delivered"`
}

// PUT /admin/order/:id
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.Service.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /admin/order/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
