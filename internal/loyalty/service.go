// Package loyalty implements registration, order placement and the points
// arithmetic on top of a profiles.Store.
package loyalty

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pchela/internal/logging"
	"github.com/dmitrijs2005/pchela/internal/profiles"
)

// HistoryDateLayout formats the date prefix of order history entries.
const HistoryDateLayout = "02.01.2006"

// DefaultMaxProfiles caps registrations when no limit is configured.
const DefaultMaxProfiles = 999

// ProfileStore is the subset of *profiles.Store used by Service.
type ProfileStore interface {
	Create(ctx context.Context, p profiles.Profile) (profiles.Profile, error)
	Update(ctx context.Context, p profiles.Profile) (profiles.Profile, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (profiles.Profile, error)
	GetAll() []profiles.Profile
	Len() int
}

// OrderResult is returned by PlaceOrder.
type OrderResult struct {
	Profile      profiles.Profile
	PointsEarned int
	Items        []Item
}

type Service struct {
	store       ProfileStore
	catalog     *Catalog
	maxProfiles int
	log         logging.Logger
	now         func() time.Time

	// mu serialises the read-modify-write sequences below.
	mu sync.Mutex
}

func NewService(store ProfileStore, catalog *Catalog, maxProfiles int, log logging.Logger) *Service {
	if maxProfiles <= 0 {
		maxProfiles = DefaultMaxProfiles
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Service{
		store:       store,
		catalog:     catalog,
		maxProfiles: maxProfiles,
		log:         log.With("module", "loyalty"),
		now:         time.Now,
	}
}

func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Register creates a fresh profile for username.
func (s *Service) Register(ctx context.Context, username string) (profiles.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return profiles.Profile{}, fmt.Errorf("%w: username is empty", profiles.ErrInvalidProfile)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Len() >= s.maxProfiles {
		return profiles.Profile{}, ErrProfileLimit
	}

	now := s.now()
	p, err := s.store.Create(ctx, profiles.Profile{
		Username:      username,
		CurrentOrder:  profiles.NoCurrentOrder,
		CreatedAt:     now,
		LastOrderDate: now,
	})
	if err != nil {
		return profiles.Profile{}, err
	}
	s.log.Info(ctx, "profile registered", "id", p.ID)
	return p, nil
}

// PlaceOrder records an order of itemIDs with optional free-text details for
// the given profile and credits its points. Each category counts once per
// order; repeated ids are ignored.
func (s *Service) PlaceOrder(ctx context.Context, profileID string, itemIDs []string, details string) (OrderResult, error) {
	if len(itemIDs) == 0 {
		return OrderResult{}, ErrEmptyOrder
	}

	items := make([]Item, 0, len(itemIDs))
	names := make([]string, 0, len(itemIDs))
	earned := 0
	seen := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		it, ok := s.catalog.Lookup(strings.TrimSpace(id))
		if !ok {
			return OrderResult{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		items = append(items, it)
		names = append(names, it.Name)
		earned += it.Points
	}

	text := strings.Join(names, ", ")
	if d := strings.TrimSpace(details); d != "" {
		text += " - " + d
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.Get(profileID)
	if err != nil {
		return OrderResult{}, err
	}

	now := s.now()
	p.Points += earned
	p.TotalOrders++
	p.LastOrderDate = now
	p.CurrentOrder = text
	p.OrderHistory = p.OrderHistory.Prepend(now.Format(HistoryDateLayout) + ": " + text)

	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return OrderResult{}, err
	}
	s.log.Info(ctx, "order placed", "id", profileID, "points_earned", earned, "total_orders", updated.TotalOrders)
	return OrderResult{Profile: updated, PointsEarned: earned, Items: items}, nil
}

func (s *Service) Profile(profileID string) (profiles.Profile, error) {
	return s.store.Get(profileID)
}

func (s *Service) Profiles() []profiles.Profile {
	return s.store.GetAll()
}

// Unregister deletes the profile.
func (s *Service) Unregister(ctx context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(ctx, profileID)
}
