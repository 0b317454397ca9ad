package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"atelier-storefront/internal/catalog"
	"atelier-storefront/internal/domain"
)

func listProductsHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := catalog.Filter{
			Query: c.Query("q"),
			Sort:  c.Query("sort"),
		}
		if raw := c.Query("category"); raw != "" {
			filter.Categories = strings.Split(raw, ",")
		}
		if raw := c.Query("minPrice"); raw != "" {
			v, err := decimal.NewFromString(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
				return
			}
			filter.MinPrice = &v
		}
		if raw := c.Query("maxPrice"); raw != "" {
			v, err := decimal.NewFromString(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
				return
			}
			filter.MaxPrice = &v
		}

		products := cat.List(filter)
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
	}
}

func getProductHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := cat.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		// related products share the category, excluding the product itself
		related := make([]domain.Product, 0, 4)
		for _, p := range cat.List(catalog.Filter{Categories: []string{product.Category}}) {
			if p.ID != product.ID && len(related) < 4 {
				related = append(related, p)
			}
		}
		c.JSON(http.StatusOK, gin.H{"product": product, "related": related})
	}
}

func listCategoriesHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": cat.Categories()})
	}
}
