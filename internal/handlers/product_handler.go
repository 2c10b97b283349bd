package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alighauridev/ASE-Server/internal/auth"
)

type CreateProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Stock int     `json:"stock" binding:"gte=0"`
}

// POST /vendor/product/new
func (h *Handler) CreateProduct(c *gin.Context) {
	vendor := auth.CurrentUser(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	product, err := h.Service.CreateProduct(c.Request.Context(), *vendor, req.Name, req.Price, req.Stock)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}
