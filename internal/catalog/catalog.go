// Package catalog holds the read-only product and category collections
// consumed by the storefront. The data is fixed at construction time; nothing
// in the service ever writes to it.
package catalog

import (
	"sort"
	"strings"

	"atelier-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// Filter narrows and orders a product listing. Zero values mean "no
// constraint"; an empty Sort falls back to newest-first.
type Filter struct {
	Query      string
	Categories []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

type Catalog struct {
	products   []domain.Product
	categories []domain.Category
	byID       map[string]domain.Product
}

func New(products []domain.Product, categories []domain.Category) *Catalog {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, categories: categories, byID: byID}
}

// NewDefault builds the catalog from the built-in demo collection.
func NewDefault() *Catalog {
	return New(defaultProducts(), defaultCategories())
}

func (c *Catalog) Get(id string) (*domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// List returns the products matching the filter, ordered by its sort option.
func (c *Catalog) List(f Filter) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	var out []domain.Product
	for _, p := range c.products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if len(f.Categories) > 0 && !containsFold(f.Categories, p.Category) {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return out
}

func sortProducts(products []domain.Product, option string) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch option {
		case SortPriceAsc:
			return a.Price.LessThan(b.Price)
		case SortPriceDesc:
			return b.Price.LessThan(a.Price)
		case SortNameAsc:
			return a.Name < b.Name
		case SortNameDesc:
			return b.Name < a.Name
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}
