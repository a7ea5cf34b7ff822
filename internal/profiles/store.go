package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/pchela/internal/logging"
	"github.com/dmitrijs2005/pchela/internal/repositories/kv"
)

// DefaultKey is the storage key of the profile collection.
const DefaultKey = "pchela_user_profiles"

// corruptSuffix is appended to the key when a malformed payload is set aside.
const corruptSuffix = ".corrupt"

// State is the lifecycle phase of a Store.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Observer receives the full collection after Initialize and after every
// successful mutation. It runs after the state lock is released and may call
// the read methods, but must not mutate the store synchronously.
type Observer func(profiles []Profile)

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// Store owns the profile collection. It is safe for concurrent use; mutations
// are serialised.
type Store struct {
	repo kv.Repository
	key  string
	log  logging.Logger
	now  func() time.Time

	initMu sync.Mutex

	// notifyMu is always taken before mu by writers and held through
	// delivery, so observers see changes in commit order. Readers take
	// only mu.
	notifyMu sync.Mutex

	mu        sync.Mutex
	state     State
	profiles  []Profile
	observer  Observer
	recovered bool
}

func NewStore(repo kv.Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		key:  DefaultKey,
		log:  logging.Nop(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("module", "profiles", "key", s.key)
	return s
}

// Initialize loads the persisted collection, moves the store to Ready and
// delivers the collection to observer, which replaces any previous one.
//
// An absent key yields an empty collection. A malformed payload is copied to
// "<key>.corrupt", logged, and replaced by an empty collection without error;
// Recovered reports that this happened. A failed read returns ErrPersistence
// and leaves the store Uninitialized.
func (s *Store) Initialize(ctx context.Context, observer Observer) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.mu.Lock()
	prev := s.state
	s.state = StateInitializing
	s.mu.Unlock()

	loaded, recovered, err := s.load(ctx)
	if err != nil {
		s.mu.Lock()
		if prev == StateReady {
			s.state = StateReady
		} else {
			s.state = StateUninitialized
		}
		s.mu.Unlock()
		s.log.Error(ctx, "failed to load profiles", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.profiles = loaded
	s.recovered = recovered
	s.observer = observer
	s.state = StateReady
	s.log.Info(ctx, "profiles loaded", "count", len(loaded), "recovered", recovered)
	s.notifyLocked()
	return nil
}

func (s *Store) load(ctx context.Context) ([]Profile, bool, error) {
	data, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return []Profile{}, false, nil
	}

	var list []Profile
	if err := json.Unmarshal(data, &list); err != nil {
		s.log.Warn(ctx, "malformed profile payload, starting empty", "error", err, "bytes", len(data))
		if berr := s.repo.Set(ctx, s.key+corruptSuffix, data); berr != nil {
			s.log.Error(ctx, "failed to back up malformed payload", "error", berr)
		}
		return []Profile{}, true, nil
	}
	if list == nil {
		list = []Profile{}
	}
	return list, false, nil
}

// Create stores a new profile under a freshly generated id and returns it.
// Any ID on p is ignored. A zero CreatedAt is set to the current time.
func (s *Store) Create(ctx context.Context, p Profile) (Profile, error) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return Profile{}, ErrNotInitialized
	}
	if err := p.Validate(); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}

	now := s.now()
	p = p.clone()
	p.ID = s.uniqueIDLocked(now)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	next := make([]Profile, 0, len(s.profiles)+1)
	next = append(next, s.profiles...)
	next = append(next, p)

	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}
	s.log.Info(ctx, "profile created", "id", p.ID, "username", p.Username)
	s.notifyLocked()
	return p.clone(), nil
}

// Update replaces the profile with p.ID wholesale.
func (s *Store) Update(ctx context.Context, p Profile) (Profile, error) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return Profile{}, ErrNotInitialized
	}

	i := s.indexLocked(p.ID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Warn(ctx, "update of unknown profile", "id", p.ID)
		return Profile{}, fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	if err := p.Validate(); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}

	p = p.clone()
	next := slices.Clone(s.profiles)
	next[i] = p

	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}
	s.log.Debug(ctx, "profile updated", "id", p.ID)
	s.notifyLocked()
	return p.clone(), nil
}

// Delete removes the profile with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotInitialized
	}

	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Warn(ctx, "delete of unknown profile", "id", id)
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := slices.Delete(slices.Clone(s.profiles), i, i+1)

	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.log.Info(ctx, "profile deleted", "id", id)
	s.notifyLocked()
	return nil
}

// Clear empties the collection and removes the durable copy, whatever the
// store's state. On a storage failure memory is left untouched.
func (s *Store) Clear(ctx context.Context) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if err := s.repo.Delete(ctx, s.key); err != nil {
		s.mu.Unlock()
		s.log.Error(ctx, "failed to clear profiles", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.profiles = []Profile{}
	s.log.Info(ctx, "profiles cleared")
	s.notifyLocked()
	return nil
}

// GetAll returns a copy of the collection in insertion order.
func (s *Store) GetAll() []Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.profiles)
}

// Get returns the profile with the given id.
func (s *Store) Get(id string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Profile{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.profiles[i].clone(), nil
}

// Len returns the number of profiles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

// SetObserver replaces the observer. A nil observer disables notifications.
func (s *Store) SetObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Recovered reports whether the last Initialize discarded a malformed payload.
func (s *Store) Recovered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recovered
}

// commitLocked persists next and, on success, makes it the collection.
func (s *Store) commitLocked(ctx context.Context, next []Profile) error {
	data, err := json.Marshal(next)
	if err != nil {
		s.log.Error(ctx, "failed to encode profiles", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := s.repo.Set(ctx, s.key, data); err != nil {
		s.log.Error(ctx, "failed to persist profiles", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.profiles = next
	return nil
}

// notifyLocked must be called with notifyMu and mu held. It releases mu
// before delivering; the caller still owns notifyMu.
func (s *Store) notifyLocked() {
	observer := s.observer
	if observer == nil {
		s.mu.Unlock()
		return
	}
	snapshot := cloneAll(s.profiles)
	s.mu.Unlock()

	observer(snapshot)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.profiles, func(p Profile) bool { return p.ID == id })
}

func (s *Store) uniqueIDLocked(now time.Time) string {
	for {
		id := newID(now)
		if s.indexLocked(id) < 0 {
			return id
		}
	}
}
