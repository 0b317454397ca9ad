package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"atelier-storefront/internal/catalog"
	"atelier-storefront/internal/domain"
	authsvc "atelier-storefront/internal/service/auth"
	checkoutsvc "atelier-storefront/internal/service/checkout"
)

func adminStatsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders := deps.CheckoutSvc.Orders()
		revenue := decimal.Zero
		for _, o := range orders {
			if o.PaymentStatus == domain.PaymentPaid {
				revenue = revenue.Add(o.Totals.Total)
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"products":   len(deps.Catalog.List(catalog.Filter{})),
			"categories": len(deps.Catalog.Categories()),
			"users":      len(deps.AuthSvc.Users()),
			"orders":     len(orders),
			"revenue":    revenue,
		})
	}
}

func adminProductsHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": cat.List(catalog.Filter{})})
	}
}

func adminUsersHandler(svc *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": svc.Users()})
	}
}

func adminOrdersHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders := svc.Orders()
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
