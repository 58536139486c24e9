// ABOUTME: In-memory session state, the single source of truth for who is logged in
// ABOUTME: Publishes user changes to subscribers with replay of the latest value

package session

import (
	"errors"
	"sync"
)

// Session holds the current token and user profile. All durable writes go
// through it; no other component touches the credential store directly.
// A nil published user means logged out.
type Session struct {
	mu      sync.Mutex
	store   Store
	token   string
	user    *User
	subs    map[int]chan *User
	nextSub int
}

// New creates a logged-out session backed by the given store.
func New(store Store) *Session {
	return &Session{
		store: store,
		subs:  make(map[int]chan *User),
	}
}

// Initialize restores the session from the credential store. A corrupt
// record tears the session down instead of surfacing a parse error.
func (s *Session) Initialize() error {
	token, user, ok, err := s.store.Load()
	if errors.Is(err, ErrCorruptRecord) {
		return s.Clear()
	}
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// Set stores the token and user durably and publishes the new user.
// Subscribers never observe the token without the matching user.
func (s *Session) Set(token string, user User) error {
	if err := s.store.Save(token, user); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// Clear removes the credential record and publishes logged-out state.
// Safe to call when already logged out.
func (s *Session) Clear() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// Token returns the current bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current profile, nil when logged out.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a token is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// IsAdmin reports whether the session is authenticated with the ADMIN role.
func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil && s.user.Role == RoleAdmin
}

// UpdateProfile merges a new display name into the cached profile, leaving
// email, phone and role untouched. No-op when logged out.
func (s *Session) UpdateProfile(fullName string) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	updated := *s.user
	updated.FullName = fullName
	token := s.token
	s.mu.Unlock()

	if err := s.store.Save(token, updated); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &updated
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// Subscribe registers for user changes. The latest value is replayed
// immediately; the returned cancel func releases the subscription and must
// be called when the consumer goes away.
func (s *Session) Subscribe() (<-chan *User, func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan *User, 16)
	s.subs[id] = ch
	// Replay the current value to the new subscriber.
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// snapshotLocked copies the current user. Caller holds s.mu.
func (s *Session) snapshotLocked() *User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// publishLocked sends the current user to every subscriber. Caller holds
// s.mu. Slow subscribers drop the oldest pending value so publishers never
// block.
func (s *Session) publishLocked() {
	for _, ch := range s.subs {
		u := s.snapshotLocked()
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}
