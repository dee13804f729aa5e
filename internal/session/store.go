// Package session owns the identity lifecycle: login, logout, the startup
// trust check, and the cached identity that makes reloads instant.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// Store is the single source of truth for "who is logged in". It is
// constructed once in main and passed down; there is no package-level state.
type Store struct {
	client    *client.Client
	cachePath string

	mu       sync.Mutex
	identity *domain.Identity
	loading  bool
	onChange func(*domain.Identity)
}

// NewStore creates a session store backed by the given API client and
// identity cache file. The store starts in the loading state until
// Initialize completes.
func NewStore(c *client.Client, cachePath string) *Store {
	return &Store{client: c, cachePath: cachePath, loading: true}
}

// OnChange registers a hook invoked with the new identity (nil on logout)
// after every adoption or clear. The realtime manager hangs off this.
func (s *Store) OnChange(fn func(*domain.Identity)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Current returns the adopted identity, or nil when logged out.
func (s *Store) Current() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Loading reports whether the startup trust check is still in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Initialize performs the startup identity resolution: prefer a
// server-validated session via the ambient cookie, fall back to the cached
// identity when the server is unreachable, otherwise resolve to logged out.
// The loading flag is always cleared, success or failure.
func (s *Store) Initialize(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	id, err := s.client.GetProfile(ctx)
	if err == nil && id.Validate() == nil {
		s.adopt(id)
		return
	}

	// Trust check failed: fall back to the cache if it parses and is
	// complete. Partial or malformed records are discarded, never adopted.
	cached, cacheErr := s.readCache()
	if cacheErr != nil || cached.Validate() != nil {
		s.clear()
		return
	}
	s.mu.Lock()
	s.identity = &cached
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(&cached)
	}
}

// Login authenticates with email and password and adopts the returned
// identity. On failure the session is left unchanged and the server's
// message (or a generic fallback) is returned for inline display.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	id, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%s", client.Message(err))
	}
	if err := id.Validate(); err != nil {
		return nil, fmt.Errorf("server returned an incomplete identity")
	}
	s.adopt(id)
	return id, nil
}

// Register creates an account and signs in, same contract as Login.
func (s *Store) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.Identity, error) {
	id, err := s.client.Register(ctx, client.RegisterRequest{
		Name: name, Email: email, Password: password, Role: role,
	})
	if err != nil {
		return nil, fmt.Errorf("%s", client.Message(err))
	}
	if err := id.Validate(); err != nil {
		return nil, fmt.Errorf("server returned an incomplete identity")
	}
	s.adopt(id)
	return id, nil
}

// CompleteExternalLogin adopts an identity obtained out-of-band (federated
// sign-in), identically to Login's success path.
func (s *Store) CompleteExternalLogin(id *domain.Identity) error {
	if id == nil {
		return fmt.Errorf("session.CompleteExternalLogin: nil identity")
	}
	if err := id.Validate(); err != nil {
		return fmt.Errorf("session.CompleteExternalLogin: %w", err)
	}
	s.adopt(id)
	return nil
}

// Logout invalidates the server session best-effort, then unconditionally
// clears local identity and cache. The user always ends up logged out
// locally even if the server call fails.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		log.Printf("session: server logout failed (clearing local session anyway): %v", err)
	}
	s.clear()
}

func (s *Store) adopt(id *domain.Identity) {
	s.mu.Lock()
	s.identity = id
	fn := s.onChange
	s.mu.Unlock()
	if err := s.writeCache(*id); err != nil {
		log.Printf("session: cache write failed: %v", err)
	}
	if fn != nil {
		fn(id)
	}
}

func (s *Store) clear() {
	s.mu.Lock()
	s.identity = nil
	fn := s.onChange
	s.mu.Unlock()
	if err := os.Remove(s.cachePath); err != nil && !os.IsNotExist(err) {
		log.Printf("session: cache remove failed: %v", err)
	}
	if fn != nil {
		fn(nil)
	}
}

func (s *Store) readCache() (domain.Identity, error) {
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		return domain.Identity{}, err
	}
	var id domain.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		// Corrupt cache: remove so it is never consulted again.
		os.Remove(s.cachePath) //nolint:errcheck // best-effort cleanup
		return domain.Identity{}, fmt.Errorf("parse cached identity: %w", err)
	}
	return id, nil
}

func (s *Store) writeCache(id domain.Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.cachePath), 0700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(s.cachePath, data, 0600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}
