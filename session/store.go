// Package session holds the server-side state of the authentication
// protocol: registered signatures by username, pending verifiers by
// verifier-id, and active session-ids. Each map is guarded by its own
// reader/writer lock (mirroring the compare-and-swap shape of
// ericchiang-poke's storage.Storage interface, collapsed to the
// single in-memory implementation the specification requires) and no
// method holds more than one map's lock at a time.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chaumpedersen/zkpauth/wire"
	"github.com/chaumpedersen/zkpauth/zkp"
)

// ErrAlreadyExists is returned by PutSignature when the username is
// already registered.
var ErrAlreadyExists = errors.New("session: username already registered")

// ErrNotFound is returned when a signature, verifier or session
// cannot be located.
var ErrNotFound = errors.New("session: not found")

// Store is the interface the protocol service depends on. The only
// production implementation is the in-memory Store below; the
// interface is extracted so a future backing store can be swapped in
// without touching authservice.
type Store interface {
	PutSignature(username string, sig wire.Signature) error
	GetSignature(username string) (wire.Signature, error)

	PutVerifier(v *zkp.Verifier, sig wire.Signature) (verifierID uuid.UUID, err error)
	TakeVerifier(id uuid.UUID) (*zkp.Verifier, error)

	PutSession(id uuid.UUID)
	HasSession(id uuid.UUID) bool
	DeleteSession(id uuid.UUID)
}

type pendingVerifier struct {
	verifier  *zkp.Verifier
	signature wire.Signature
	createdAt time.Time
}

// MemStore is the concurrent in-memory Store required by the
// specification. A zero value is not usable; construct one with New.
type MemStore struct {
	sigMu sync.RWMutex
	sigs  map[string]wire.Signature

	verMu sync.RWMutex
	vers  map[uuid.UUID]pendingVerifier

	sessMu sync.RWMutex
	sess   map[uuid.UUID]struct{}
}

// New constructs an empty MemStore.
func New() *MemStore {
	return &MemStore{
		sigs: make(map[string]wire.Signature),
		vers: make(map[uuid.UUID]pendingVerifier),
		sess: make(map[uuid.UUID]struct{}),
	}
}

// PutSignature atomically inserts (username, sig), failing with
// ErrAlreadyExists if the username is already registered.
func (s *MemStore) PutSignature(username string, sig wire.Signature) error {
	s.sigMu.Lock()
	defer s.sigMu.Unlock()

	if _, ok := s.sigs[username]; ok {
		return ErrAlreadyExists
	}
	s.sigs[username] = sig
	return nil
}

// GetSignature looks up the signature registered for username.
func (s *MemStore) GetSignature(username string) (wire.Signature, error) {
	s.sigMu.RLock()
	defer s.sigMu.RUnlock()

	sig, ok := s.sigs[username]
	if !ok {
		return wire.Signature{}, ErrNotFound
	}
	return sig, nil
}

// PutVerifier mints a fresh verifier-id and stores v alongside the
// signature it was built from (kept so a future sweep can log which
// username an evicted verifier belonged to).
func (s *MemStore) PutVerifier(v *zkp.Verifier, sig wire.Signature) (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.UUID{}, err
	}

	s.verMu.Lock()
	s.vers[id] = pendingVerifier{verifier: v, signature: sig, createdAt: time.Now()}
	s.verMu.Unlock()

	return id, nil
}

// TakeVerifier atomically removes and returns the verifier for id.
// A second call with the same id -- whether or not the first call
// succeeded -- returns ErrNotFound, giving the single-use semantics
// the specification requires.
func (s *MemStore) TakeVerifier(id uuid.UUID) (*zkp.Verifier, error) {
	s.verMu.Lock()
	defer s.verMu.Unlock()

	pv, ok := s.vers[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.vers, id)
	return pv.verifier, nil
}

// PutSession marks id as an active session.
func (s *MemStore) PutSession(id uuid.UUID) {
	s.sessMu.Lock()
	s.sess[id] = struct{}{}
	s.sessMu.Unlock()
}

// HasSession reports whether id is an active session.
func (s *MemStore) HasSession(id uuid.UUID) bool {
	s.sessMu.RLock()
	defer s.sessMu.RUnlock()

	_, ok := s.sess[id]
	return ok
}

// DeleteSession logs a session out.
func (s *MemStore) DeleteSession(id uuid.UUID) {
	s.sessMu.Lock()
	delete(s.sess, id)
	s.sessMu.Unlock()
}

// Sweep evicts pending verifiers older than maxAge every interval,
// until ctx is canceled. It is the idle-verifier eviction the
// specification recommends (section 9) without mandating; callers
// that don't need it simply never start this goroutine.
func (s *MemStore) Sweep(ctx context.Context, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.verMu.Lock()
			for id, pv := range s.vers {
				if now.Sub(pv.createdAt) > maxAge {
					delete(s.vers, id)
				}
			}
			s.verMu.Unlock()
		}
	}
}
