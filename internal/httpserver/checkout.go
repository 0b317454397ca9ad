package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/metrics"
	checkoutsvc "atelier-storefront/internal/service/checkout"
)

func startCheckoutHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, err := svc.Start(c.Request.Context(), sessionID(c))
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCart) {
				c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"flow":            flow,
			"shippingMethods": svc.ShippingMethods(),
		})
	}
}

func checkoutStatusHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		flow, err := svc.Current(c.Request.Context(), sid)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		totals, err := svc.Totals(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"flow":            flow,
			"totals":          totals,
			"shippingMethods": svc.ShippingMethods(),
		})
	}
}

func submitShippingHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.ShippingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		flow, err := svc.SubmitShipping(c.Request.Context(), sessionID(c), in)
		if err != nil {
			renderCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"flow": flow})
	}
}

func checkoutBackHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, err := svc.Back(c.Request.Context(), sessionID(c))
		if err != nil {
			renderCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"flow": flow})
	}
}

func submitPaymentHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.PaymentInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		order, err := svc.SubmitPayment(c.Request.Context(), sessionID(c), in)
		if err != nil {
			if errors.Is(err, domain.ErrPaymentDeclined) {
				metrics.OrdersTotal.WithLabelValues("declined").Inc()
			}
			renderCheckoutError(c, err)
			return
		}
		metrics.OrdersTotal.WithLabelValues("confirmed").Inc()
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func renderCheckoutError(c *gin.Context, err error) {
	var verr *checkoutsvc.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
	case errors.Is(err, checkoutsvc.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid checkout step"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
	case errors.Is(err, domain.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment declined"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
