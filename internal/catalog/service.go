package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maisonlux/storefront/internal/config"
	"github.com/maisonlux/storefront/internal/events"
	"github.com/maisonlux/storefront/internal/metrics"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/storage"
	"github.com/microcosm-cc/bluemonday"
)

// ProductSource supplies the full record set. Sources are tried in order;
// the first one that answers with records wins.
type ProductSource interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// CategoryCounts are the sidebar tallies derived from the full set.
type CategoryCounts struct {
	All         int            `json:"all"`
	New         int            `json:"new"`
	Sale        int            `json:"sale"`
	Exclusive   int            `json:"exclusive"`
	Limited     int            `json:"limited"`
	PerCategory map[string]int `json:"per_category"`
}

// Service owns the product set and the live filter specification. Every
// mutation re-derives the visible page from the full set through the
// filter → sort → paginate pipeline; there is no incremental update path.
type Service struct {
	mu        sync.Mutex
	log       *slog.Logger
	bus       *events.Bus
	store     storage.Store
	sources   []ProductSource
	sanitizer *bluemonday.Policy

	products []models.Product
	spec     models.FilterSpec
	page     int

	debounce    time.Duration
	searchTimer *time.Timer
}

func NewService(cfg *config.CatalogConfig, log *slog.Logger, bus *events.Bus, store storage.Store, sources ...ProductSource) *Service {
	spec := models.DefaultFilterSpec()
	spec.PageSize = cfg.PageSize
	spec.Price.Max = cfg.MaxPrice

	return &Service{
		log:       log,
		bus:       bus,
		store:     store,
		sources:   sources,
		sanitizer: bluemonday.StrictPolicy(),
		spec:      spec,
		page:      1,
		debounce:  cfg.SearchDebounce,
	}
}

// Load fills the product set from the first answering source, falling back
// to the demo seed, and restores the persisted filter specification. The
// restored spec always starts on page 1. Load never fails.
func (s *Service) Load(ctx context.Context) {
	var products []models.Product

	for _, source := range s.sources {
		items, err := source.Products(ctx)
		if err != nil {
			s.log.Warn("product source unavailable", slog.String("error", err.Error()))

			continue
		}

		if len(items) > 0 {
			products = items

			break
		}
	}

	if len(products) == 0 {
		s.log.Info("no product source answered, using demo catalog")

		products = SeedProducts(time.Now())
	}

	for i := range products {
		products[i].Description = s.sanitizer.Sanitize(products[i].Description)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products

	var saved models.FilterSpec

	found, err := s.store.Load(ctx, storage.KeyFilters, &saved)
	if err != nil {
		s.log.Warn("failed to restore filter spec", slog.String("error", err.Error()))
	}

	if found {
		saved.Query = ""
		if saved.PageSize <= 0 {
			saved.PageSize = s.spec.PageSize
		}

		s.spec = saved
		s.page = 1
	}

	s.log.Info("catalog loaded", slog.Int("products", len(products)))
}

// Page recomputes the current visible page without mutating anything.
func (s *Service) Page() models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.derive()
}

func (s *Service) Spec() models.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.spec
}

func (s *Service) SetCategory(category string) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" {
		category = models.CategoryAll
	}

	s.spec.Category = category
	s.page = 1

	return s.apply()
}

func (s *Service) SetPriceRange(minPrice, maxPrice float64) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	minPrice = models.SafeNumber(minPrice)
	maxPrice = models.SafeNumber(maxPrice)

	if minPrice > maxPrice {
		minPrice, maxPrice = maxPrice, minPrice
	}

	s.spec.Price = models.PriceRange{Min: minPrice, Max: maxPrice}
	s.page = 1

	return s.apply()
}

func (s *Service) ToggleBrand(brand string) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec.Brands = toggle(s.spec.Brands, brand)
	s.page = 1

	return s.apply()
}

func (s *Service) ToggleColor(color string) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec.Colors = toggle(s.spec.Colors, color)
	s.page = 1

	return s.apply()
}

func (s *Service) ToggleSize(size string) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec.Sizes = toggle(s.spec.Sizes, size)
	s.page = 1

	return s.apply()
}

func (s *Service) ToggleSpecial(special string) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec.Specials = toggle(s.spec.Specials, special)
	s.page = 1

	return s.apply()
}

func (s *Service) SetSort(key models.SortKey) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec.Sort = key

	return s.apply()
}

func (s *Service) SetView(view models.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Presentation only; no re-derivation needed.
	s.spec.View = view
	s.persistSpec()
}

func (s *Service) SetPageSize(size int) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if size <= 0 {
		size = models.DefaultPageSize
	}

	s.spec.PageSize = size
	s.page = 1

	return s.apply()
}

// Search debounces rapid keystrokes and applies the query after the
// configured window. SearchNow applies it immediately.
func (s *Service) Search(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}

	s.searchTimer = time.AfterFunc(s.debounce, func() {
		s.SearchNow(query)
	})
}

func (s *Service) SearchNow(query string) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec.Query = s.sanitizer.Sanitize(query)
	s.page = 1

	return s.apply()
}

func (s *Service) GoToPage(page int) models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = page
	result := s.derive()
	s.page = result.Page

	s.bus.Publish(events.TopicPageNavigated, events.PageNavigated{
		Page:       result.Page,
		TotalPages: result.TotalPages,
	})

	return result
}

func (s *Service) ResetFilters() models.PageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	pageSize := s.spec.PageSize
	maxPrice := s.spec.Price.Max

	s.spec = models.DefaultFilterSpec()
	s.spec.PageSize = pageSize
	s.spec.Price.Max = maxPrice
	s.page = 1

	return s.apply()
}

func (s *Service) CategoryCounts() CategoryCounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := CategoryCounts{
		All:         len(s.products),
		PerCategory: make(map[string]int),
	}

	for _, p := range s.products {
		counts.PerCategory[p.Category]++

		if p.IsNew {
			counts.New++
		}

		if p.OnSale() {
			counts.Sale++
		}

		if p.IsExclusive {
			counts.Exclusive++
		}

		if p.IsLimited {
			counts.Limited++
		}
	}

	return counts
}

// apply re-derives the page, persists the spec and broadcasts the outcome.
// Callers must hold the mutex.
func (s *Service) apply() models.PageResult {
	result := s.derive()
	s.page = result.Page

	s.persistSpec()

	metrics.ObserveFilterApplication()

	if s.spec.Query != "" {
		s.bus.Publish(events.TopicSearchResults, events.SearchResults{
			Query: s.spec.Query,
			Total: result.Total,
		})
	} else {
		s.bus.Publish(events.TopicFiltersApplied, events.FiltersApplied{
			Spec:       s.spec,
			Total:      result.Total,
			Page:       result.Page,
			TotalPages: result.TotalPages,
		})
	}

	return result
}

// derive runs the full filter → sort → paginate pipeline from the complete
// set. Callers must hold the mutex.
func (s *Service) derive() models.PageResult {
	filtered := Apply(s.products, s.spec)
	ordered := Sort(filtered, s.spec.Sort)

	return Paginate(ordered, s.page, s.spec.PageSize)
}

func (s *Service) persistSpec() {
	if err := s.store.Save(context.Background(), storage.KeyFilters, s.spec); err != nil {
		// State stays in memory; the engine keeps going.
		s.log.Warn("failed to persist filter spec", slog.String("error", err.Error()))
	}
}

func toggle(values []string, value string) []string {
	for i, v := range values {
		if v == value {
			return append(values[:i], values[i+1:]...)
		}
	}

	return append(values, value)
}
