package cart

import (
	"context"
	"log"
	"sync"

	"grocery-storefront/internal/domain"
)

// mirror persists a shopper's lines after every mutation. Writes are best
// effort: on failure the in-memory cart stays authoritative and the error
// is only logged, matching how the UI treats its persisted cart key.
type mirror interface {
	Load(ctx context.Context, shopperID string) ([]domain.CartLine, error)
	Save(ctx context.Context, shopperID string, lines []domain.CartLine) error
	Delete(ctx context.Context, shopperID string) error
}

// Store holds every shopper's in-progress selection and is the single
// source of truth for the totals shown throughout the app. All mutation
// goes through its methods; reads return copies. Mutations are serialized
// by a single mutex, so per-shopper updates apply strictly in arrival
// order and no line can be lost to a concurrent update.
type Store struct {
	mu     sync.Mutex
	mirror mirror
	logger *log.Logger
	carts  map[string][]domain.CartLine
	loaded map[string]bool
}

func NewStore(m mirror, logger *log.Logger) *Store {
	return &Store{
		mirror: m,
		logger: logger,
		carts:  make(map[string][]domain.CartLine),
		loaded: make(map[string]bool),
	}
}

// AddOrIncrement inserts a new line with qty 1, copying the display
// fields and price from the product snapshot, or bumps the existing
// line's qty when the product is already in the cart. It never fails.
func (s *Store) AddOrIncrement(ctx context.Context, shopperID string, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, shopperID)

	lines := s.carts[shopperID]
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Qty++
			s.persist(ctx, shopperID)
			return
		}
	}
	s.carts[shopperID] = append(lines, domain.CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		Image:     p.Image,
		Unit:      p.Unit,
		Price:     p.Price,
		Qty:       1,
	})
	s.persist(ctx, shopperID)
}

// Increment bumps the qty of the matching line. Unknown ids are ignored:
// the UI only offers increment for lines it is already showing.
func (s *Store) Increment(ctx context.Context, shopperID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, shopperID)

	lines := s.carts[shopperID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Qty++
			s.persist(ctx, shopperID)
			return
		}
	}
}

// Decrement lowers the qty of the matching line, removing it entirely
// when the qty would reach zero. Unknown ids are ignored.
func (s *Store) Decrement(ctx context.Context, shopperID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, shopperID)

	lines := s.carts[shopperID]
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		lines[i].Qty--
		if lines[i].Qty <= 0 {
			s.carts[shopperID] = append(lines[:i], lines[i+1:]...)
		}
		s.persist(ctx, shopperID)
		return
	}
}

// Clear empties the shopper's cart and its persisted mirror. Used after a
// submission reaches a terminal state or on explicit reset.
func (s *Store) Clear(ctx context.Context, shopperID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, shopperID)
	s.loaded[shopperID] = true
	if err := s.mirror.Delete(ctx, shopperID); err != nil {
		s.logger.Printf("clear cart mirror for %s: %v", shopperID, err)
	}
}

// Lines returns a copy of the shopper's current selection.
func (s *Store) Lines(ctx context.Context, shopperID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, shopperID)

	lines := s.carts[shopperID]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}

// Total is the sum of price*qty over all lines, recomputed on every call.
func (s *Store) Total(ctx context.Context, shopperID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, shopperID)

	var total float64
	for _, line := range s.carts[shopperID] {
		total += line.LineTotal()
	}
	return total
}

// ItemCount is the sum of quantities, used for the cart badge.
func (s *Store) ItemCount(ctx context.Context, shopperID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, shopperID)

	var count int
	for _, line := range s.carts[shopperID] {
		count += line.Qty
	}
	return count
}

// ensureLoaded rehydrates the shopper's cart from the mirror on first
// touch. A failed read degrades to an empty cart and is not retried.
// Callers must hold s.mu.
func (s *Store) ensureLoaded(ctx context.Context, shopperID string) {
	if s.loaded[shopperID] {
		return
	}
	s.loaded[shopperID] = true

	lines, err := s.mirror.Load(ctx, shopperID)
	if err != nil {
		s.logger.Printf("load cart mirror for %s: %v", shopperID, err)
		return
	}
	if len(lines) > 0 {
		s.carts[shopperID] = lines
	}
}

// persist mirrors the shopper's current lines. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, shopperID string) {
	if err := s.mirror.Save(ctx, shopperID, s.carts[shopperID]); err != nil {
		s.logger.Printf("mirror cart for %s: %v", shopperID, err)
	}
}
