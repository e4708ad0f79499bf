// Package cart implements the session cart: a single in-memory line-item
// list persisted to a local slot for guests and to per-user remote rows for
// signed-in sessions. Mutations apply to memory synchronously; remote writes
// are issued in the background and their failures are absorbed.
package cart

import (
	"context"
	"log"
	"sync"
	"time"

	"agrihub/internal/domain"

	"github.com/google/uuid"
)

// LocalStore is the guest-side persistence slot: one serialized line list.
type LocalStore interface {
	Load() ([]domain.CartItem, error)
	Save(items []domain.CartItem) error
	Clear() error
}

// RemoteStore is the signed-in persistence: cart rows keyed by user id.
type RemoteStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	Insert(ctx context.Context, item domain.CartItem) (string, error)
	UpdateQuantity(ctx context.Context, userID, id string, quantity int) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}

// Item describes a line to add, without a quantity. ID may be left empty for
// guest sessions; the store assigns one.
type Item struct {
	ID        string
	ProductID *string
	Snapshot  domain.LineSnapshot
}

// Store owns the in-memory cart for one session. Construct once per session
// with New; transition between guest and signed-in with SignIn/SignOut.
type Store struct {
	mu      sync.Mutex
	items   []domain.CartItem
	userID  string
	loading bool

	local  LocalStore
	remote RemoteStore
	logger *log.Logger

	syncs      sync.WaitGroup
	retryDelay time.Duration
}

// New builds a Store in the guest state, loading whatever the local slot
// holds. A slot that is missing or unreadable yields an empty cart.
func New(local LocalStore, remote RemoteStore, logger *log.Logger) *Store {
	s := &Store{
		local:      local,
		remote:     remote,
		logger:     logger,
		retryDelay: 500 * time.Millisecond,
	}
	items, err := local.Load()
	if err != nil {
		s.logger.Printf("load local cart: %v", err)
		items = nil
	}
	s.items = items
	return s
}

// AddItem appends a new line with quantity 1, or increments an existing line
// matched by id or, when both sides carry one, by product reference.
func (s *Store) AddItem(candidate Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.findLine(candidate); idx >= 0 {
		s.items[idx].Quantity++
		line := s.items[idx]
		s.persistLocal()
		if s.userID != "" {
			userID := s.userID
			s.background("update cart line", func(ctx context.Context) error {
				return s.remote.UpdateQuantity(ctx, userID, line.ID, line.Quantity)
			})
		}
		return
	}

	line := domain.CartItem{
		ID:        candidate.ID,
		ProductID: candidate.ProductID,
		Snapshot:  candidate.Snapshot,
		Quantity:  1,
	}
	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	if s.userID != "" {
		line.UserID = s.userID
	}
	s.items = append(s.items, line)
	s.persistLocal()

	if s.userID != "" {
		userID := s.userID
		s.background("insert cart line", func(ctx context.Context) error {
			if _, err := s.remote.Insert(ctx, line); err != nil {
				return err
			}
			// Reload to pick up the server-assigned row id.
			items, err := s.remote.ListByUser(ctx, userID)
			if err != nil {
				return err
			}
			s.mu.Lock()
			if s.userID == userID {
				s.items = items
			}
			s.mu.Unlock()
			return nil
		})
	}
}

// RemoveItem drops the line with the given id. Missing ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.persistLocal()
			if s.userID != "" {
				userID := s.userID
				s.background("update cart line", func(ctx context.Context) error {
					return s.remote.UpdateQuantity(ctx, userID, id, quantity)
				})
			}
			return
		}
	}
}

// ClearCart empties the cart, deletes the user's remote rows when signed in,
// and clears the local slot unconditionally.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.local.Clear(); err != nil {
		s.logger.Printf("clear local cart: %v", err)
	}
	if s.userID != "" {
		userID := s.userID
		s.background("clear remote cart", func(ctx context.Context) error {
			return s.remote.DeleteAllByUser(ctx, userID)
		})
	}
}

// SignIn transitions the store to the signed-in state: the remote cart is
// loaded and any guest lines are merged into it (union by product reference,
// quantities summed). The local slot is cleared only once every merge write
// has landed; after a failed load or a failed write it is left in place so a
// later sign-in can merge again, and the unmerged lines stay in memory.
func (s *Store) SignIn(ctx context.Context, userID string) {
	s.mu.Lock()
	guest := s.items
	s.userID = userID
	s.loading = true
	s.mu.Unlock()

	var merged, pending []domain.CartItem
	remote, listErr := s.remote.ListByUser(ctx, userID)
	if listErr != nil {
		// Without the remote list a merge could duplicate rows, so the
		// guest lines wait in memory and in the slot.
		s.logger.Printf("load remote cart: %v", listErr)
		pending = guest
	} else {
		var changed bool
		merged, changed, pending = s.mergeGuestLines(ctx, userID, remote, guest)
		if changed {
			if reloaded, err := s.remote.ListByUser(ctx, userID); err == nil {
				merged = reloaded
			} else {
				s.logger.Printf("reload remote cart: %v", err)
			}
		}
		if len(pending) == 0 {
			if err := s.local.Clear(); err != nil {
				s.logger.Printf("clear local cart: %v", err)
			}
		} else {
			// Rewrite the slot with only the lines still waiting, so the
			// lines that did land are not merged a second time.
			if err := s.local.Save(pending); err != nil {
				s.logger.Printf("save local cart: %v", err)
			}
		}
	}
	if len(pending) > 0 {
		s.logger.Printf("cart merge incomplete for %s, keeping local slot", userID)
		merged = append(merged, pending...)
	}

	s.mu.Lock()
	if s.userID == userID {
		s.items = merged
		s.loading = false
	}
	s.mu.Unlock()
}

// SignOut returns the store to the guest state, reloading the local slot.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	items, err := s.local.Load()
	if err != nil {
		s.logger.Printf("load local cart: %v", err)
		items = nil
	}
	s.items = items
}

// Items returns a copy of the current lines.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPriceCents is the sum of unit price times quantity over all lines.
func (s *Store) TotalPriceCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.TotalCents()
	}
	return total
}

// IsLoading reports whether a full remote load is in progress.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Flush blocks until all background remote writes have settled. Intended
// for shutdown and tests; callers never need it for correctness of the
// in-memory state.
func (s *Store) Flush() {
	s.syncs.Wait()
}

// removeLocked drops the line with the given id. Caller holds s.mu.
func (s *Store) removeLocked(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocal()
			if s.userID != "" {
				userID := s.userID
				s.background("delete cart line", func(ctx context.Context) error {
					return s.remote.Delete(ctx, userID, id)
				})
			}
			return
		}
	}
}

// findLine matches a candidate against current lines by id, or by product
// reference when both carry one. Caller holds s.mu.
func (s *Store) findLine(candidate Item) int {
	for i := range s.items {
		if candidate.ID != "" && s.items[i].ID == candidate.ID {
			return i
		}
		if candidate.ProductID != nil && s.items[i].ProductID != nil &&
			*candidate.ProductID == *s.items[i].ProductID {
			return i
		}
	}
	return -1
}

// persistLocal writes the guest cart to the local slot. Signed-in sessions
// persist remotely instead. Caller holds s.mu.
func (s *Store) persistLocal() {
	if s.userID != "" {
		return
	}
	if err := s.local.Save(s.items); err != nil {
		s.logger.Printf("save local cart: %v", err)
	}
}

// background runs a remote write off the caller's path with one retry.
// Failures are logged and dropped; the in-memory state already stands.
func (s *Store) background(what string, op func(ctx context.Context) error) {
	s.syncs.Add(1)
	go func() {
		defer s.syncs.Done()
		ctx := context.Background()
		err := op(ctx)
		if err == nil {
			return
		}
		time.Sleep(s.retryDelay)
		if err = op(ctx); err != nil {
			s.logger.Printf("%s: %v", what, err)
		}
	}()
}

// mergeGuestLines pushes guest lines into the remote cart: lines whose
// product reference already exists remotely add their quantity to that row,
// everything else is inserted. Returns the resulting line list, whether any
// remote write was issued, and the guest lines whose write failed. Pending
// lines keep their guest ids and wait for the next sign-in.
func (s *Store) mergeGuestLines(ctx context.Context, userID string, remote, guest []domain.CartItem) (merged []domain.CartItem, changed bool, pending []domain.CartItem) {
	if len(guest) == 0 {
		return remote, false, nil
	}

	byProduct := make(map[string]int, len(remote))
	for i, line := range remote {
		if line.ProductID != nil {
			byProduct[*line.ProductID] = i
		}
	}

	for _, line := range guest {
		if line.ProductID != nil {
			if i, ok := byProduct[*line.ProductID]; ok {
				qty := remote[i].Quantity + line.Quantity
				if err := s.remote.UpdateQuantity(ctx, userID, remote[i].ID, qty); err != nil {
					s.logger.Printf("merge cart line: %v", err)
					pending = append(pending, line)
					continue
				}
				remote[i].Quantity = qty
				changed = true
				continue
			}
		}
		line.UserID = userID
		id, err := s.remote.Insert(ctx, line)
		if err != nil {
			s.logger.Printf("merge cart line: %v", err)
			line.UserID = ""
			pending = append(pending, line)
			continue
		}
		line.ID = id
		if line.ProductID != nil {
			byProduct[*line.ProductID] = len(remote)
		}
		remote = append(remote, line)
		changed = true
	}
	return remote, changed, pending
}
