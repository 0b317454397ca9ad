package catalog

import (
	"time"

	"atelier-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultProducts() []domain.Product {
	base := time.Date(2026, time.January, 6, 12, 0, 0, 0, time.UTC)
	at := func(day int) time.Time { return base.AddDate(0, 0, day) }

	return []domain.Product{
		{
			ID:          "1",
			Name:        "Classic White T-Shirt",
			Description: "A timeless classic white t-shirt made from 100% cotton for maximum comfort and breathability.",
			Price:       price("29.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?q=80&w=1480&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1583744946564-b52d01e7f922?q=80&w=1374&auto=format&fit=crop",
			},
			Category:  "shirts",
			Sizes:     []string{"XS", "S", "M", "L", "XL"},
			Colors:    []string{"White", "Black", "Gray"},
			InStock:   true,
			CreatedAt: at(0),
			UpdatedAt: at(0),
		},
		{
			ID:          "2",
			Name:        "Slim Fit Jeans",
			Description: "Modern slim fit jeans with a touch of stretch for comfort throughout the day.",
			Price:       price("59.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1582552938357-32b906df40cb?q=80&w=1374&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1604176424472-3e0c6a4a987a?q=80&w=1374&auto=format&fit=crop",
			},
			Category:  "pants",
			Sizes:     []string{"28", "30", "32", "34", "36"},
			Colors:    []string{"Blue", "Black", "Gray"},
			InStock:   true,
			CreatedAt: at(1),
			UpdatedAt: at(1),
		},
		{
			ID:          "3",
			Name:        "Leather Jacket",
			Description: "Premium leather jacket with stylish design and comfortable fit.",
			Price:       price("199.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1551028719-00167b16eac5?q=80&w=1470&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1521223890158-f9f7c3d5d504?q=80&w=1392&auto=format&fit=crop",
			},
			Category:  "jackets",
			Sizes:     []string{"S", "M", "L", "XL"},
			Colors:    []string{"Black", "Brown"},
			InStock:   true,
			CreatedAt: at(2),
			UpdatedAt: at(2),
		},
		{
			ID:          "4",
			Name:        "Summer Dress",
			Description: "Light and flowy summer dress perfect for warm days and casual outings.",
			Price:       price("49.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1492707892479-7bc8d5a4ee93?q=80&w=1530&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1496747611176-843222e1e57c?q=80&w=1473&auto=format&fit=crop",
			},
			Category:  "dresses",
			Sizes:     []string{"XS", "S", "M", "L"},
			Colors:    []string{"Floral", "Blue", "Pink"},
			InStock:   true,
			CreatedAt: at(3),
			UpdatedAt: at(3),
		},
		{
			ID:          "5",
			Name:        "Running Shoes",
			Description: "Lightweight running shoes with excellent cushioning and support.",
			Price:       price("89.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1470&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1608231387042-66d1773070a5?q=80&w=1374&auto=format&fit=crop",
			},
			Category:  "shoes",
			Sizes:     []string{"7", "8", "9", "10", "11", "12"},
			Colors:    []string{"Black/Red", "Blue/White", "Gray/Yellow"},
			InStock:   true,
			CreatedAt: at(4),
			UpdatedAt: at(4),
		},
		{
			ID:          "6",
			Name:        "Designer Handbag",
			Description: "Elegant designer handbag made from premium materials.",
			Price:       price("129.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1584917865442-de89df76afd3?q=80&w=1470&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1566150905458-1bf1fc113f0d?q=80&w=1471&auto=format&fit=crop",
			},
			Category:  "accessories",
			Colors:    []string{"Black", "Brown", "Tan"},
			InStock:   true,
			CreatedAt: at(5),
			UpdatedAt: at(5),
		},
	}
}

func defaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Shirts", Slug: "shirts", Image: "https://images.unsplash.com/photo-1607345366928-199ea26cfe3e?q=80&w=1374&auto=format&fit=crop"},
		{ID: "2", Name: "Pants", Slug: "pants", Image: "https://images.unsplash.com/photo-1542272604-787c3835535d?q=80&w=1626&auto=format&fit=crop"},
		{ID: "3", Name: "Jackets", Slug: "jackets", Image: "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?q=80&w=1336&auto=format&fit=crop"},
		{ID: "4", Name: "Dresses", Slug: "dresses", Image: "https://images.unsplash.com/photo-1644416877002-97a861bb5862?q=80&w=1414&auto=format&fit=crop"},
		{ID: "5", Name: "Shoes", Slug: "shoes", Image: "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?q=80&w=1480&auto=format&fit=crop"},
		{ID: "6", Name: "Accessories", Slug: "accessories", Image: "https://images.unsplash.com/photo-1611923134239-b9be5816e23c?q=80&w=1471&auto=format&fit=crop"},
	}
}
