package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/cart"
	"restaurant-storefront/internal/location"
	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
	"restaurant-storefront/internal/order"
)

// Catalog is the read side of the menu the sessions order from
type Catalog interface {
	Item(id string) (models.MenuItem, error)
	Config() models.RestaurantConfig
}

// Publisher announces submitted orders to staff
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, msg *models.OrderPlacedMessage) error
}

// AddRequest describes one configured item to put in the cart
type AddRequest struct {
	ItemID   string   `json:"item_id"`
	SizeIDs  []string `json:"size_ids"`
	ExtraIDs []string `json:"extra_ids"`
	Quantity int      `json:"quantity"`
	Notes    string   `json:"notes"`
	Protein  string   `json:"protein"`
}

// CustomerUpdate changes the checkout form; nil fields are left as they are
type CustomerUpdate struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
	Location *string `json:"location"`
}

type Manager struct {
	catalog   Catalog
	history   order.History
	publisher Publisher
	logger    *logger.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager. publisher may be nil.
func NewManager(catalog Catalog, history order.History, publisher Publisher, log *logger.Logger) *Manager {
	return &Manager{
		catalog:   catalog,
		history:   history,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Create opens a session with an empty cart on the first configured branch
func (m *Manager) Create() State {
	cfg := m.catalog.Config()
	branch := ""
	if len(cfg.Branches) > 0 {
		branch = cfg.Branches[0].Name
	}

	s := newSession(uuid.NewString(), branch, m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s.state(&cfg)
}

func (m *Manager) Get(id string) (State, error) {
	var st State
	err := m.update(id, func(s *Session, cfg *models.RestaurantConfig) error {
		st = s.state(cfg)
		return nil
	})
	return st, err
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of open sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// AddItem adds a configured item. Repeated size or extra ids count once.
func (m *Manager) AddItem(id string, req AddRequest) (State, error) {
	if req.Quantity < 0 || req.Quantity > cart.MaxQuantity {
		return State{}, fmt.Errorf("quantity %d outside 1..%d: %w", req.Quantity, cart.MaxQuantity, apperr.ErrSelection)
	}

	item, err := m.catalog.Item(req.ItemID)
	if err != nil {
		return State{}, err
	}

	sizes := make([]models.Size, 0, len(req.SizeIDs))
	for _, sid := range unique(req.SizeIDs) {
		size, ok := item.FindSize(sid)
		if !ok {
			return State{}, fmt.Errorf("item %s: unknown size %q: %w", item.ID, sid, apperr.ErrSelection)
		}
		sizes = append(sizes, size)
	}

	extras := make([]models.Extra, 0, len(req.ExtraIDs))
	for _, eid := range unique(req.ExtraIDs) {
		extra, ok := item.FindExtra(eid)
		if !ok {
			return State{}, fmt.Errorf("item %s: unknown extra %q: %w", item.ID, eid, apperr.ErrSelection)
		}
		extras = append(extras, extra)
	}

	if err := cart.CheckSelection(&item, sizes, req.Protein); err != nil {
		return State{}, err
	}

	return m.mutate(id, func(s *Session, _ *models.RestaurantConfig) error {
		s.cart = s.cart.Add(&item, sizes, extras, req.Quantity, req.Notes, req.Protein)
		return nil
	})
}

func (m *Manager) RemoveLine(id, key string) (State, error) {
	return m.mutate(id, func(s *Session, _ *models.RestaurantConfig) error {
		s.cart = s.cart.Remove(key)
		return nil
	})
}

func (m *Manager) UpdateQuantity(id, key string, delta int) (State, error) {
	return m.mutate(id, func(s *Session, _ *models.RestaurantConfig) error {
		s.cart = s.cart.UpdateQuantity(key, delta)
		return nil
	})
}

func (m *Manager) ClearCart(id string) (State, error) {
	return m.mutate(id, func(s *Session, _ *models.RestaurantConfig) error {
		s.cart = s.cart.Clear()
		return nil
	})
}

// SetOrderType switches between delivery and pickup. Pickup forgets the chosen tier.
func (m *Manager) SetOrderType(id string, t models.OrderType) (State, error) {
	return m.mutate(id, func(s *Session, _ *models.RestaurantConfig) error {
		s.orderType = t
		if t == models.Pickup {
			s.tierID = ""
		}
		return nil
	})
}

func (m *Manager) SelectTier(id, tierID string) (State, error) {
	return m.mutate(id, func(s *Session, cfg *models.RestaurantConfig) error {
		if _, ok := cfg.FindTier(tierID); !ok {
			return fmt.Errorf("tier %q: %w", tierID, apperr.ErrTierNotFound)
		}
		s.tierID = tierID
		return nil
	})
}

func (m *Manager) SelectBranch(id, branch string) (State, error) {
	return m.mutate(id, func(s *Session, cfg *models.RestaurantConfig) error {
		if _, ok := cfg.FindBranch(branch); !ok {
			return fmt.Errorf("branch %q: %w", branch, apperr.ErrBranchNotFound)
		}
		s.customer.Branch = branch
		return nil
	})
}

func (m *Manager) UpdateCustomer(id string, u CustomerUpdate) (State, error) {
	return m.mutate(id, func(s *Session, _ *models.RestaurantConfig) error {
		if u.Name != nil {
			s.customer.Name = *u.Name
		}
		if u.Phone != nil {
			s.customer.Phone = *u.Phone
		}
		if u.Notes != nil {
			s.customer.Notes = *u.Notes
		}
		if u.Location != nil {
			s.customer.Location = *u.Location
		}
		return nil
	})
}

// ShareLocation stores the maps URL for the located coordinates. On failure the
// location on the form is left untouched.
func (m *Manager) ShareLocation(ctx context.Context, id string, svc location.Service) (State, error) {
	url, err := location.Resolve(ctx, svc)
	if err != nil {
		m.logger.Debug("location_lookup_failed", "Location lookup failed", "", map[string]interface{}{
			"session_id": id,
			"reason":     err.Error(),
		})
		return State{}, fmt.Errorf("%s: %w", location.FailureMessage, err)
	}

	return m.mutate(id, func(s *Session, _ *models.RestaurantConfig) error {
		s.customer.Location = url
		return nil
	})
}

// LastOrder returns the receipt of the session's most recent submission
func (m *Manager) LastOrder(id string) (*Receipt, error) {
	var r *Receipt
	err := m.update(id, func(s *Session, _ *models.RestaurantConfig) error {
		r = s.lastOrder
		return nil
	})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("session %s has no submitted order: %w", id, apperr.ErrItemNotFound)
	}
	return r, nil
}

// Sweep drops sessions idle for longer than maxIdle and returns how many were removed
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.touchedAt.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is done
func (m *Manager) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				m.logger.Info("sessions_swept", "Removed idle sessions", "", map[string]interface{}{
					"removed":   n,
					"remaining": m.Len(),
				})
			}
		}
	}
}

// unique drops repeated ids, keeping the first occurrence
func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, apperr.ErrSessionNotFound)
	}
	return s, nil
}

// update runs fn with the session locked
func (m *Manager) update(id string, fn func(s *Session, cfg *models.RestaurantConfig) error) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	cfg := m.catalog.Config()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = m.now()
	return fn(s, &cfg)
}

func (m *Manager) mutate(id string, fn func(s *Session, cfg *models.RestaurantConfig) error) (State, error) {
	var st State
	err := m.update(id, func(s *Session, cfg *models.RestaurantConfig) error {
		if s.submitting {
			return fmt.Errorf("session %s: %w", s.ID, apperr.ErrCheckoutInProgress)
		}
		if err := fn(s, cfg); err != nil {
			return err
		}
		st = s.state(cfg)
		return nil
	})
	return st, err
}
