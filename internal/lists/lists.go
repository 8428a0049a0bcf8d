package lists

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/maisonlux/storefront/internal/storage"
)

// Service keeps the wishlist and the comparison list. Both are ordered sets
// of product ids toggled on and off, persisted across restarts.
type Service struct {
	mu    sync.Mutex
	log   *slog.Logger
	store storage.Store

	wishlist []string
	compare  []string
}

func NewService(log *slog.Logger, store storage.Store) *Service {
	return &Service{
		log:   log,
		store: store,
	}
}

func (s *Service) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Load(ctx, storage.KeyWishlist, &s.wishlist); err != nil {
		s.log.Warn("failed to restore wishlist", slog.String("error", err.Error()))
	}

	if _, err := s.store.Load(ctx, storage.KeyCompare, &s.compare); err != nil {
		s.log.Warn("failed to restore comparison list", slog.String("error", err.Error()))
	}
}

// ToggleWishlist flips membership and reports whether the product is in the
// wishlist afterwards.
func (s *Service) ToggleWishlist(ctx context.Context, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var present bool

	s.wishlist, present = toggle(s.wishlist, productID)
	s.persist(ctx, storage.KeyWishlist, s.wishlist)

	return present
}

// ToggleCompare flips membership and reports whether the product is in the
// comparison list afterwards.
func (s *Service) ToggleCompare(ctx context.Context, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var present bool

	s.compare, present = toggle(s.compare, productID)
	s.persist(ctx, storage.KeyCompare, s.compare)

	return present
}

func (s *Service) InWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Contains(s.wishlist, productID)
}

func (s *Service) InCompare(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Contains(s.compare, productID)
}

func (s *Service) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.wishlist)
}

func (s *Service) Compare() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.compare)
}

func (s *Service) persist(ctx context.Context, key string, values []string) {
	if err := s.store.Save(ctx, key, values); err != nil {
		s.log.Warn("failed to persist list", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func toggle(values []string, value string) ([]string, bool) {
	if i := slices.Index(values, value); i >= 0 {
		return append(values[:i], values[i+1:]...), false
	}

	return append(values, value), true
}
