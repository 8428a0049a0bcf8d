package catalog

import (
	"slices"
	"sort"
	"strings"

	"github.com/maisonlux/storefront/internal/models"
)

// Apply narrows the full record set down to the items matching the filter
// specification. The structural axes (category, price, brands, colors,
// sizes) compose by AND; the specials axis composes by OR within itself. A
// non-blank search query supersedes all structural filtering — the result is
// then derived from the full set, not the narrowed one. Apply never fails:
// malformed inputs degrade to defaults.
func Apply(items []models.Product, spec models.FilterSpec) []models.Product {
	if query := strings.TrimSpace(spec.Query); query != "" {
		return search(items, query)
	}

	out := make([]models.Product, 0, len(items))

	for _, p := range items {
		if spec.Category != "" && spec.Category != models.CategoryAll && p.Category != spec.Category {
			continue
		}

		// Raw, pre-discount price; a missing price counts as 0.
		price := models.SafeNumber(p.Price)
		if price < spec.Price.Min || price > spec.Price.Max {
			continue
		}

		if len(spec.Brands) > 0 && !slices.Contains(spec.Brands, p.Brand) {
			continue
		}

		if len(spec.Colors) > 0 && !slices.Contains(spec.Colors, p.Color) {
			continue
		}

		if len(spec.Sizes) > 0 && !slices.Contains(spec.Sizes, p.Size) {
			continue
		}

		if len(spec.Specials) > 0 && !matchesAnySpecial(&p, spec.Specials) {
			continue
		}

		out = append(out, p)
	}

	return out
}

func matchesAnySpecial(p *models.Product, specials []string) bool {
	for _, special := range specials {
		switch special {
		case models.SpecialNew:
			if p.IsNew {
				return true
			}
		case models.SpecialSale:
			if p.OnSale() {
				return true
			}
		case models.SpecialExclusive:
			if p.IsExclusive {
				return true
			}
		case models.SpecialLimited:
			if p.IsLimited {
				return true
			}
		}
	}

	return false
}

// search selects items whose combined text contains every whitespace
// separated term of the query, lower-cased, substring match per term.
func search(items []models.Product, query string) []models.Product {
	terms := strings.Fields(strings.ToLower(query))

	out := make([]models.Product, 0, len(items))

	for _, p := range items {
		haystack := strings.ToLower(strings.Join([]string{
			p.Name, p.Category, p.Brand, p.Color, p.Description,
		}, " "))

		matched := true

		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				matched = false

				break
			}
		}

		if matched {
			out = append(out, p)
		}
	}

	return out
}

// Sort orders a copy of the filtered set by the given key. The sort is
// stable: items that compare equal keep their relative input order. Unknown
// keys fall back to newest-first.
func Sort(items []models.Product, key models.SortKey) []models.Product {
	out := make([]models.Product, len(items))
	copy(out, items)

	switch key {
	case models.SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() < out[j].EffectivePrice()
		})
	case models.SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() > out[j].EffectivePrice()
		})
	case models.SortPopular, models.SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return models.SafeNumber(out[i].Rating) > models.SafeNumber(out[j].Rating)
		})
	case models.SortDiscount:
		sort.SliceStable(out, func(i, j int) bool {
			return models.SafeNumber(out[i].Discount) > models.SafeNumber(out[j].Discount)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

// Paginate slices one page out of the ordered set. The requested page is
// clamped into [1, totalPages]; callers must re-read the clamped value from
// the result. TotalPages is at least 1 even for an empty set.
func Paginate(items []models.Product, page, pageSize int) models.PageResult {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}

	total := len(items)

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}

	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize

	if start > total {
		start = total
	}

	if end > total {
		end = total
	}

	pageItems := make([]models.Product, end-start)
	copy(pageItems, items[start:end])

	return models.PageResult{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
