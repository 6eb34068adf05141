package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aoa-site/internal/dto"
	"github.com/noah-isme/aoa-site/internal/observability"
)

// ErrUnknownService indicates a service panel index outside the catalogue.
var ErrUnknownService = errors.New("unknown service panel")

// Session is the UI state of one visitor: header menu, service panels and the contact modal.
type Session struct {
	ID      string
	Contact *ContactFormController
	Toasts  *ToastQueue

	mu            sync.Mutex
	menuOpen      bool
	activeService *int
	lastSeen      time.Time
}

// ToggleMenu flips the mobile navigation menu.
func (s *Session) ToggleMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuOpen = !s.menuOpen
}

// CloseMenu hides the mobile navigation menu, as navigating to a section does.
func (s *Session) CloseMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuOpen = false
}

// ToggleService expands the panel at index, or collapses it when it is already active.
func (s *Session) ToggleService(index int) error {
	if index < 0 || index >= len(studioServices) {
		return ErrUnknownService
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeService != nil && *s.activeService == index {
		s.activeService = nil
		return nil
	}
	s.activeService = &index
	return nil
}

// State returns the page state. When drain is set, queued toasts are consumed.
func (s *Session) State(drain bool) dto.PageState {
	s.mu.Lock()
	state := dto.PageState{MenuOpen: s.menuOpen}
	if s.activeService != nil {
		active := *s.activeService
		state.ActiveService = &active
	}
	s.mu.Unlock()

	state.Contact = s.Contact.Snapshot()
	if drain {
		state.Toasts = s.Toasts.Drain()
	} else {
		state.Toasts = s.Toasts.Peek()
	}
	return state
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionRegistry keeps visitor sessions in memory and evicts idle ones.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	deps      ContactDeps
	ttl       time.Duration
	directory SessionDirectory
	logger    zerolog.Logger
	now       func() time.Time
}

// SessionRegistryOption customises a registry.
type SessionRegistryOption func(*SessionRegistry)

// WithSessionDirectory shares issued identifiers with other replicas.
func WithSessionDirectory(directory SessionDirectory) SessionRegistryOption {
	return func(r *SessionRegistry) {
		r.directory = directory
	}
}

// NewSessionRegistry constructs a registry whose sessions share deps.
func NewSessionRegistry(deps ContactDeps, ttl time.Duration, logger zerolog.Logger, opts ...SessionRegistryOption) *SessionRegistry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	registry := &SessionRegistry{
		sessions: make(map[string]*Session),
		deps:     deps,
		ttl:      ttl,
		logger:   logger.With().Str("component", "session_registry").Logger(),
		now:      now,
	}
	for _, opt := range opts {
		opt(registry)
	}
	return registry
}

// Resolve returns the session for id. Identifiers this registry never issued
// are only adopted when the session directory knows them; otherwise a new
// session with a fresh identifier is created and created is true.
func (r *SessionRegistry) Resolve(ctx context.Context, id string) (session *Session, created bool) {
	now := r.now()
	if id != "" {
		r.mu.Lock()
		existing, ok := r.sessions[id]
		r.mu.Unlock()

		if ok {
			existing.touch(now)
			r.touchDirectory(ctx, id)
			return existing, false
		}
		if r.touchDirectory(ctx, id) {
			return r.store(id, now), false
		}
	}

	id = uuid.NewString()
	session = r.store(id, now)
	if r.directory != nil {
		if err := r.directory.Register(ctx, id, r.ttl); err != nil {
			r.logger.Warn().Err(err).Msg("failed to register session in directory")
		}
	}
	return session, true
}

func (r *SessionRegistry) touchDirectory(ctx context.Context, id string) bool {
	if r.directory == nil {
		return false
	}
	known, err := r.directory.Touch(ctx, id, r.ttl)
	if err != nil {
		r.logger.Warn().Err(err).Msg("session directory unavailable")
		return false
	}
	return known
}

func (r *SessionRegistry) store(id string, now time.Time) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[id]; ok {
		existing.touch(now)
		return existing
	}

	toasts := NewToastQueue()
	deps := r.deps
	deps.Notifier = NewMultiNotifier(toasts, r.deps.Notifier)

	session := &Session{
		ID:       id,
		Contact:  NewContactFormController(id, deps),
		Toasts:   toasts,
		lastSeen: now,
	}
	r.sessions[id] = session
	observability.ActiveSessions().Set(float64(len(r.sessions)))
	return session
}

// Len returns the number of sessions held.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the ttl. Sessions with a submit
// in flight are kept so the outcome is not lost.
func (r *SessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	evicted := 0
	for id, session := range r.sessions {
		if session.idleSince().After(cutoff) || session.Contact.Submitting() {
			continue
		}
		delete(r.sessions, id)
		evicted++
	}
	observability.ActiveSessions().Set(float64(len(r.sessions)))

	if evicted > 0 {
		r.logger.Debug().Int("evicted", evicted).Int("remaining", len(r.sessions)).Msg("evicted idle sessions")
	}
	return evicted
}

// Start runs the eviction loop until ctx is cancelled.
func (r *SessionRegistry) Start(ctx context.Context) {
	interval := r.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}
