package cart

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maisonlux/storefront/internal/config"
	"github.com/maisonlux/storefront/internal/events"
	"github.com/maisonlux/storefront/internal/metrics"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/notify"
	"github.com/maisonlux/storefront/internal/storage"
)

// SessionChecker answers whether the current visitor is signed in.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Service is the cart engine. Entries are deduplicated by product id plus
// the exact chosen options; quantities are clamped to [1, stock]. Removal
// is two-phase: an entry is first marked, stays listed for the grace window
// and is only then committed.
type Service struct {
	mu       sync.Mutex
	log      *slog.Logger
	bus      *events.Bus
	store    storage.Store
	session  SessionChecker
	resolver *Resolver
	notifier notify.Notifier
	confirm  Confirmer

	entries []*models.CartEntry

	removeDelay  time.Duration
	clearStagger time.Duration
}

func NewService(cfg *config.CartConfig, log *slog.Logger, bus *events.Bus, store storage.Store,
	session SessionChecker, resolver *Resolver, notifier notify.Notifier, confirm Confirmer,
) *Service {
	svc := &Service{
		log:          log,
		bus:          bus,
		store:        store,
		session:      session,
		resolver:     resolver,
		notifier:     notifier,
		confirm:      confirm,
		removeDelay:  cfg.RemoveDelay,
		clearStagger: cfg.ClearStagger,
	}

	resolver.SetFallback(svc.snapshotFromEntries)

	return svc
}

// Restore loads the persisted entries. Pending-removal marks never survive
// a restart.
func (s *Service) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []*models.CartEntry

	found, err := s.store.Load(ctx, storage.KeyCart, &entries)
	if err != nil {
		s.log.Warn("failed to restore cart", slog.String("error", err.Error()))

		return
	}

	if found {
		s.entries = entries
		s.log.Info("cart restored", slog.Int("entries", len(entries)))
	}
}

// AddItem puts a product in the cart. Unauthenticated visitors are turned
// away with a notification. An existing entry with the same product and the
// same options absorbs the quantity instead of creating a duplicate line.
func (s *Service) AddItem(ctx context.Context, productID string, quantity int, options map[string]string) bool {
	if !s.session.IsAuthenticated(ctx) {
		s.notifier.Warning("Sign in to add items to your cart")
		metrics.ObserveCartOperation("add", false)

		return false
	}

	snapshot := s.resolver.Resolve(ctx, productID)

	s.mu.Lock()

	if quantity < 1 {
		quantity = 1
	}

	entry := s.findEntry(productID, options)
	if entry != nil {
		entry.Quantity = clampQuantity(entry.Quantity+quantity, snapshot.Stock)
		entry.Product = snapshot
	} else {
		entry = &models.CartEntry{
			ID:        uuid.NewString(),
			ProductID: productID,
			Product:   snapshot,
			Quantity:  clampQuantity(quantity, snapshot.Stock),
			Options:   options,
			AddedAt:   time.Now(),
		}
		s.entries = append(s.entries, entry)
	}

	applied := entry.Quantity

	s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("%s added to cart", snapshot.Name))
	metrics.ObserveCartOperation("add", true)

	s.bus.Publish(events.TopicItemAdded, events.ItemAdded{
		Product:  snapshot,
		Quantity: applied,
	})

	return true
}

// UpdateQuantity sets the quantity of an entry. The value is coerced up to
// 1 and clamped to the freshly resolved stock.
func (s *Service) UpdateQuantity(ctx context.Context, entryID string, quantity int) bool {
	s.mu.Lock()

	entry := s.entryByID(entryID)
	if entry == nil {
		s.mu.Unlock()
		metrics.ObserveCartOperation("update", false)

		return false
	}

	productID := entry.ProductID
	s.mu.Unlock()

	snapshot := s.resolver.Resolve(ctx, productID)

	s.mu.Lock()

	entry = s.entryByID(entryID)
	if entry == nil {
		s.mu.Unlock()
		metrics.ObserveCartOperation("update", false)

		return false
	}

	if quantity < 1 {
		quantity = 1
	}

	entry.Product = snapshot
	entry.Quantity = clampQuantity(quantity, snapshot.Stock)
	applied := entry.Quantity

	s.persist(ctx)
	s.mu.Unlock()

	metrics.ObserveCartOperation("update", true)

	s.bus.Publish(events.TopicQuantityUpdated, events.QuantityUpdated{
		EntryID:  entryID,
		Quantity: applied,
	})

	return true
}

// MarkForRemoval flags an entry for removal without dropping it. Marking an
// already marked or unknown entry is a no-op.
func (s *Service) MarkForRemoval(entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entryByID(entryID)
	if entry == nil || entry.PendingRemoval {
		return false
	}

	entry.PendingRemoval = true

	return true
}

// CommitRemoval drops a marked entry. Committing an unmarked entry is a
// no-op so a cancelled removal stays in the cart.
func (s *Service) CommitRemoval(ctx context.Context, entryID string) bool {
	s.mu.Lock()

	removed := false

	for i, entry := range s.entries {
		if entry.ID == entryID && entry.PendingRemoval {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			removed = true

			break
		}
	}

	if removed {
		s.persist(ctx)
	}

	s.mu.Unlock()

	if removed {
		metrics.ObserveCartOperation("remove", true)
		s.bus.Publish(events.TopicItemRemoved, events.ItemRemoved{EntryID: entryID})
	}

	return removed
}

// CancelRemoval clears the pending mark, keeping the entry.
func (s *Service) CancelRemoval(entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entryByID(entryID)
	if entry == nil || !entry.PendingRemoval {
		return false
	}

	entry.PendingRemoval = false

	return true
}

// RemoveAfter runs the two phases with the configured grace window between
// them.
func (s *Service) RemoveAfter(ctx context.Context, entryID string) bool {
	if !s.MarkForRemoval(entryID) {
		return false
	}

	time.AfterFunc(s.removeDelay, func() {
		s.CommitRemoval(ctx, entryID)
	})

	return true
}

// Clear empties the cart after confirmation. The actual drop is delayed in
// proportion to the number of entries, mirroring a staggered exit
// animation.
func (s *Service) Clear(ctx context.Context) bool {
	s.mu.Lock()
	count := len(s.entries)
	s.mu.Unlock()

	if count == 0 {
		s.notifier.Info("Your cart is already empty")

		return false
	}

	if s.confirm != nil && !s.confirm.Confirm("Remove all items from your cart?") {
		return false
	}

	time.AfterFunc(s.clearStagger*time.Duration(count), func() {
		s.mu.Lock()
		s.entries = nil
		s.persist(ctx)
		s.mu.Unlock()

		metrics.ObserveCartOperation("clear", true)
		s.bus.Publish(events.TopicCartCleared, events.CartCleared{})
		s.notifier.Success("Cart cleared")
	})

	return true
}

// Entries returns a copy of every line, pending removals included.
func (s *Service) Entries() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, *entry)
	}

	return out
}

// TotalItems sums the quantities of entries not awaiting removal.
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0

	for _, entry := range s.entries {
		if !entry.PendingRemoval {
			total += entry.Quantity
		}
	}

	return total
}

// TotalPrice sums quantity times discounted price over entries not awaiting
// removal.
func (s *Service) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0

	for _, entry := range s.entries {
		if !entry.PendingRemoval {
			total += float64(entry.Quantity) * entry.Product.EffectivePrice()
		}
	}

	return total
}

func (s *Service) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries) == 0
}

// snapshotFromEntries is the resolver fallback: an entry already in the
// cart still knows how its product looked when it was added.
func (s *Service) snapshotFromEntries(productID string) (models.ProductSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.ProductID == productID {
			return entry.Product, true
		}
	}

	return models.ProductSnapshot{}, false
}

// persist writes the entries; callers must hold the mutex. Failures are
// logged and swallowed so the in-memory cart keeps working.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, storage.KeyCart, s.entries); err != nil {
		s.log.Warn("failed to persist cart", slog.String("error", err.Error()))
	}
}

func (s *Service) findEntry(productID string, options map[string]string) *models.CartEntry {
	for _, entry := range s.entries {
		if entry.ProductID == productID && maps.Equal(entry.Options, options) {
			return entry
		}
	}

	return nil
}

func (s *Service) entryByID(entryID string) *models.CartEntry {
	for _, entry := range s.entries {
		if entry.ID == entryID {
			return entry
		}
	}

	return nil
}

// clampQuantity keeps the quantity inside [1, stock]. A non-positive stock
// means the stock is unknown and only the lower bound applies.
func clampQuantity(quantity, stock int) int {
	if quantity < 1 {
		quantity = 1
	}

	if stock > 0 && quantity > stock {
		quantity = stock
	}

	return quantity
}
