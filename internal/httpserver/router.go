package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"atelier-storefront/internal/metrics"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), metrics.Middleware())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.SessionRepo))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", sessionMiddleware())

	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/:id", getProductHandler(deps.Catalog))
	api.GET("/categories", listCategoriesHandler(deps.Catalog))

	api.GET("/cart", getCartHandler(deps.CartSvc))
	api.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	api.PATCH("/cart/items/:lineId", updateCartItemHandler(deps.CartSvc))
	api.DELETE("/cart/items/:lineId", removeCartItemHandler(deps.CartSvc))
	api.DELETE("/cart", clearCartHandler(deps.CartSvc))

	api.POST("/checkout", startCheckoutHandler(deps.CheckoutSvc))
	api.GET("/checkout", checkoutStatusHandler(deps.CheckoutSvc))
	api.POST("/checkout/shipping", submitShippingHandler(deps.CheckoutSvc))
	api.POST("/checkout/back", checkoutBackHandler(deps.CheckoutSvc))
	api.POST("/checkout/payment", submitPaymentHandler(deps.CheckoutSvc))

	api.POST("/auth/login", loginHandler(deps.AuthSvc))
	api.POST("/auth/register", registerHandler(deps.AuthSvc))
	api.POST("/auth/logout", logoutHandler(deps.AuthSvc))
	api.GET("/auth/me", currentUserHandler(deps.AuthSvc))

	admin := api.Group("/admin", requireAdmin(deps.AuthSvc))
	admin.GET("/stats", adminStatsHandler(deps))
	admin.GET("/products", adminProductsHandler(deps.Catalog))
	admin.GET("/users", adminUsersHandler(deps.AuthSvc))
	admin.GET("/orders", adminOrdersHandler(deps.CheckoutSvc))

	return router
}
