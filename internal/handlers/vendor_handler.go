package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alighauridev/ASE-Server/internal/auth"
	"github.com/alighauridev/ASE-Server/internal/models"
	"github.com/alighauridev/ASE-Server/internal/service"
)

// GET /vendor/orders
func (h *Handler) VendorOrders(c *gin.Context) {
	vendor := auth.CurrentUser(c)

	orders, err := h.Service.ListVendorOrders(c.Request.Context(), vendor.ID, service.VendorOrderFilter{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GET /vendor/order/status/:status
func (h *Handler) VendorOrdersByStatus(c *gin.Context) {
	vendor := auth.CurrentUser(c)

	orders, err := h.Service.ListVendorOrders(c.Request.Context(), vendor.ID, service.VendorOrderFilter{
		Status: c.Param("status"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

type DateRangeRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// POST /vendor/order/daterange
func (h *Handler) VendorOrdersByDateRange(c *gin.Context) {
	vendor := auth.CurrentUser(c)

	var req DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	orders, err := h.Service.ListVendorOrders(c.Request.Context(), vendor.ID, service.VendorOrderFilter{
		From: &req.StartDate,
		To:   &req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GET /vendor/order/product/:productId
func (h *Handler) VendorOrdersByProduct(c *gin.Context) {
	vendor := auth.CurrentUser(c)

	productID, ok := uintParam(c, "productId")
	if !ok {
		return
	}

	orders, err := h.Service.ListVendorOrders(c.Request.Context(), vendor.ID, service.VendorOrderFilter{
		ProductID: productID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GET /vendor/order/user/:userId
func (h *Handler) VendorOrdersByUser(c *gin.Context) {
	vendor := auth.CurrentUser(c)

	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}

	orders, err := h.Service.ListVendorOrders(c.Request.Context(), vendor.ID, service.VendorOrderFilter{
		UserID: userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GET /vendor/orders/totals
func (h *Handler) VendorOrderTotals(c *gin.Context) {
	vendor := auth.CurrentUser(c)

	totalAmount, err := h.Service.VendorOrderTotals(c.Request.Context(), vendor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "totalAmount": totalAmount})
}

// PUT /vendor/order/markpaid/:orderId
func (h *Handler) MarkOrderAsPaid(c *gin.Context) {
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}

	if err := h.Service.MarkOrderAsPaid(c.Request.Context(), orderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PUT /vendor/order/refund/:orderId
func (h *Handler) ApplyRefundForOrder(c *gin.Context) {
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}

	ref, err := h.Service.ApplyRefund(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "refundReference": ref})
}

type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// PUT /vendor/order/notes/:orderId
func (h *Handler) UpdateVendorOrderNotes(c *gin.Context) {
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.Service.UpdateOrderNotes(c.Request.Context(), orderID, req.Notes); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type UpdateShippingRequest struct {
	ShippingInfo models.ShippingInfo `json:"shippingInfo" binding:"required"`
}

// PUT /vendor/order/shipping/:orderId
func (h *Handler) UpdateOrderShippingDetails(c *gin.Context) {
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}

	var req UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.Service.UpdateOrderShipping(c.Request.Context(), orderID, req.ShippingInfo); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type UpdateTrackingRequest struct {
	TrackingInfo models.TrackingInfo `json:"trackingInfo" binding:"required"`
}

// PUT /vendor/order/tracking/:orderId
func (h *Handler) UpdateOrderTrackingInfo(c *gin.Context) {
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}

	var req UpdateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.Service.UpdateOrderTracking(c.Request.Context(), orderID, req.TrackingInfo); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PUT /vendor/order/confirm/:orderId
func (h *Handler) ConfirmOrderDelivery(c *gin.Context) {
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}

	if err := h.Service.ConfirmDelivery(c.Request.Context(), orderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /vendor/order/report
func (h *Handler) GenerateVendorOrderReport(c *gin.Context) {
	// Report generation is not implemented yet.
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order report generated"})
}

// GET /vendor/order/export
func (h *Handler) ExportVendorOrders(c *gin.Context) {
	// CSV/Excel export is not implemented yet.
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Orders exported"})
}
