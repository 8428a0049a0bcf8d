package models

import "math"

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortPopular   SortKey = "popular"
	SortRating    SortKey = "rating"
	SortDiscount  SortKey = "discount"
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// CategoryAll selects every category.
const CategoryAll = "all"

// Special tags are a non-exclusive promotional classification.
const (
	SpecialNew       = "new"
	SpecialSale      = "sale"
	SpecialExclusive = "exclusive"
	SpecialLimited   = "limited"
)

const (
	DefaultPageSize = 12
	DefaultMaxPrice = 100000
)

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSpec is the complete set of active query constraints. Empty slices
// mean "no restriction on this axis". A non-blank Query supersedes the
// structural filters entirely.
type FilterSpec struct {
	Category string     `json:"category"`
	Price    PriceRange `json:"price"`
	Brands   []string   `json:"brands"`
	Colors   []string   `json:"colors"`
	Sizes    []string   `json:"sizes"`
	Specials []string   `json:"specials"`
	Sort     SortKey    `json:"sort"`
	Query    string     `json:"query,omitempty"`
	PageSize int        `json:"page_size"`
	View     ViewMode   `json:"view"`
}

func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Category: CategoryAll,
		Price:    PriceRange{Min: 0, Max: DefaultMaxPrice},
		Sort:     SortNewest,
		PageSize: DefaultPageSize,
		View:     ViewGrid,
	}
}

// PageResult is one page of the filtered and sorted set, derived on every
// mutation and never incrementally patched. Page carries the clamped page
// number; callers must re-read it.
type PageResult struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}

// SafeNumber coerces malformed numeric data (NaN, infinities, negatives) to
// 0 so that no record shape can stop a computation.
func SafeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}

	return v
}
