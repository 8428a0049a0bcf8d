package catalog

import (
	"fmt"
	"time"

	"github.com/maisonlux/storefront/internal/models"
)

var (
	demoCategories = []string{"Dresses", "Suits", "Blouses", "Trousers", "Skirts", "Jackets", "Coats", "Shoes", "Bags", "Jewelry"}
	demoBrands     = []string{"Vogue", "Dior", "Chanel", "Gucci", "Prada", "Versace", "Armani", "Hermès", "Louis Vuitton", "Balenciaga"}
	demoColors     = []string{"black", "white", "red", "blue", "green", "gold", "silver", "purple", "pink", "brown"}
	demoSizes      = []string{"XS", "S", "M", "L", "XL", "XXL"}
)

// SeedProducts builds the deterministic 48-item demo catalog used when no
// product source responds. Items are created one day apart, newest first,
// relative to now. Brand and color drift against category so no single
// axis pins the others.
func SeedProducts(now time.Time) []models.Product {
	products := make([]models.Product, 0, 48)

	for i := range 48 {
		var discount float64

		switch {
		case i%5 == 0:
			discount = 20
		case i%7 == 0:
			discount = 15
		}

		products = append(products, models.Product{
			ID:          fmt.Sprintf("demo-%d", i+1),
			Name:        fmt.Sprintf("Item %d", i+1),
			Category:    demoCategories[i%len(demoCategories)],
			Brand:       demoBrands[(i+i/10)%len(demoBrands)],
			Color:       demoColors[(i+2*(i/10))%len(demoColors)],
			Size:        demoSizes[i%len(demoSizes)],
			Price:       float64(1000 + (i*97)%5000),
			Discount:    discount,
			Stock:       5 + (i*13)%50,
			Rating:      4 + float64(i%10)/10,
			IsNew:       i < 12,
			IsExclusive: i%10 == 0,
			IsLimited:   i%15 == 0,
			ImageURL:    fmt.Sprintf("/static/img/products/product-%d.jpg", (i%12)+1),
			Description: "Premium piece made from high quality materials with a distinctive design",
			CreatedAt:   now.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}

	return products
}
