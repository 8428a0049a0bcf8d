package models

import "time"

// Product is the canonical item record served by the catalog. Records are
// created by the data source and treated as read-only by the pipeline.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Color       string    `json:"color"`
	Size        string    `json:"size"`
	Price       float64   `json:"price"`
	Discount    float64   `json:"discount"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	IsNew       bool      `json:"is_new"`
	IsExclusive bool      `json:"is_exclusive"`
	IsLimited   bool      `json:"is_limited"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// EffectivePrice is the unit price after the discount percent is applied.
// Malformed numeric data degrades to 0 instead of failing.
func (p *Product) EffectivePrice() float64 {
	price := SafeNumber(p.Price)

	discount := SafeNumber(p.Discount)
	if discount > 100 {
		discount = 100
	}

	return price * (1 - discount/100)
}

// OnSale reports whether the record matches the "sale" special tag.
func (p *Product) OnSale() bool {
	return SafeNumber(p.Discount) > 0
}
