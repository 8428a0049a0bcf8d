package models

import "time"

// ProductSnapshot is the display data captured when an entry is added, so
// the cart keeps working when the live record becomes unavailable.
type ProductSnapshot struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Discount float64 `json:"discount"`
}

// EffectivePrice is the snapshot price after discount.
func (s *ProductSnapshot) EffectivePrice() float64 {
	discount := SafeNumber(s.Discount)
	if discount > 100 {
		discount = 100
	}

	return SafeNumber(s.Price) * (1 - discount/100)
}

// CartEntry is one distinct {item, chosen options} line. At most one entry
// exists per (ProductID, Options) combination.
type CartEntry struct {
	ID        string            `json:"id"`
	ProductID string            `json:"product_id"`
	Product   ProductSnapshot   `json:"product"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options"`
	AddedAt   time.Time         `json:"added_at"`

	// PendingRemoval marks the first phase of a two-phase removal. The entry
	// stays visible until the removal is committed. Not persisted.
	PendingRemoval bool `json:"-"`
}

type AddItemRequest struct {
	ProductID string            `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}
