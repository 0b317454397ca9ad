package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/metrics"
	cartsvc "atelier-storefront/internal/service/cart"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func renderCart(c *gin.Context, cart *domain.Cart) {
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    cart.Lines,
		"subtotal": cart.Subtotal(),
		"count":    cart.Count(),
	})
}

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		renderCart(c, cart)
	}
}

func addCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), sessionID(c), req.ProductID, req.Quantity, req.Size, req.Color)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		metrics.CartOperations.WithLabelValues("add").Inc()
		renderCart(c, cart)
	}
}

func updateCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		cart, err := svc.UpdateItemQuantity(c.Request.Context(), sessionID(c), c.Param("lineId"), req.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		metrics.CartOperations.WithLabelValues("update").Inc()
		renderCart(c, cart)
	}
}

func removeCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.RemoveItem(c.Request.Context(), sessionID(c), c.Param("lineId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		metrics.CartOperations.WithLabelValues("remove").Inc()
		renderCart(c, cart)
	}
}

func clearCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Clear(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		metrics.CartOperations.WithLabelValues("clear").Inc()
		renderCart(c, cart)
	}
}
