// Package group implements the static table of named Schnorr-like
// mod-p groups that the Chaum-Pedersen protocol runs over.
//
// Each group carries (p, q, alpha, beta): p and q are primes with q
// dividing p-1, alpha generates the order-q subgroup of (Z/pZ)*, and
// beta = alpha^r mod p for a fresh r drawn at registration time. The
// four groups in this file are built once, on the first Lookup, and
// are shared read-only for the lifetime of the process.
package group

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
)

// ID names one of the statically registered groups. It never appears
// on the wire -- signatures carry full group parameters per the
// "embedded group" wire scheme -- but it gives logs, flags, and tests
// a short, stable name for a group.
type ID string

// The four mandatory groups.
const (
	Unspecified ID = ""
	Tiny        ID = "tiny"           // 5-bit p, 4-bit q -- tests only.
	ModP1024160 ID = "modp-1024-160"  // RFC 5114 section 2.1
	ModP2048224 ID = "modp-2048-224"  // RFC 5114 section 2.2
	ModP2048256 ID = "modp-2048-256"  // RFC 5114 section 2.3
)

// Group is an immutable set of Schnorr group parameters.
type Group struct {
	ID    ID
	P     *big.Int
	Q     *big.Int
	Alpha *big.Int
	Beta  *big.Int
}

// ErrUnknownGroup is returned by Lookup for an unregistered or
// unspecified id.
type ErrUnknownGroup struct {
	ID ID
}

func (e *ErrUnknownGroup) Error() string {
	return fmt.Sprintf("group: unknown group id %q", string(e.ID))
}

var (
	mu       sync.RWMutex
	registry = map[ID]*Group{}
	once     sync.Once
)

// Lookup returns the registered group for id, or an *ErrUnknownGroup
// if id is unrecognized or Unspecified.
func Lookup(id ID) (*Group, error) {
	initDefaults()

	if id == Unspecified {
		return nil, &ErrUnknownGroup{ID: id}
	}

	mu.RLock()
	defer mu.RUnlock()

	g, ok := registry[id]
	if !ok {
		return nil, &ErrUnknownGroup{ID: id}
	}
	return g, nil
}

// Register validates and installs a group under id, generating a
// fresh beta. It is exported so tests (and operators adding a custom
// field size) can extend the table through the same validated path
// that builds the four defaults, instead of constructing Group{}
// literals directly.
func Register(id ID, p, q, alpha *big.Int) (*Group, error) {
	if id == Unspecified {
		return nil, fmt.Errorf("group: cannot register the unspecified id")
	}
	if p.Cmp(big.NewInt(1)) <= 0 || q.Cmp(big.NewInt(1)) <= 0 {
		return nil, fmt.Errorf("group: p and q must exceed 1")
	}
	if q.Cmp(p) >= 0 {
		return nil, fmt.Errorf("group: q must be smaller than p")
	}
	if alpha.Cmp(big.NewInt(1)) <= 0 || alpha.Cmp(p) >= 0 {
		return nil, fmt.Errorf("group: alpha must lie in (1, p)")
	}

	beta, err := randomBeta(p, q, alpha)
	if err != nil {
		return nil, err
	}

	g := &Group{ID: id, P: p, Q: q, Alpha: alpha, Beta: beta}

	mu.Lock()
	registry[id] = g
	mu.Unlock()

	return g, nil
}

// randomBeta draws beta = alpha^r mod p for r in [1, q), retrying if
// the result happens to equal alpha.
func randomBeta(p, q, alpha *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	for {
		r, err := rand.Int(rand.Reader, new(big.Int).Sub(q, one))
		if err != nil {
			return nil, fmt.Errorf("group: failed to draw r: %w", err)
		}
		r.Add(r, one) // r in [1, q)

		beta := new(big.Int).Exp(alpha, r, p)
		if beta.Cmp(alpha) != 0 {
			return beta, nil
		}
	}
}

// initDefaults registers the four mandatory groups exactly once,
// mirroring the one-time lazy-initialized static table of the
// original implementation.
func initDefaults() {
	once.Do(func() {
		mustRegister(Tiny, big.NewInt(23), big.NewInt(11), big.NewInt(4))
		mustRegister(ModP1024160, hexInt(rfc5114_1024_p), hexInt(rfc5114_1024_q), hexInt(rfc5114_1024_alpha))
		mustRegister(ModP2048224, hexInt(rfc5114_2048_224_p), hexInt(rfc5114_2048_224_q), hexInt(rfc5114_2048_224_alpha))
		mustRegister(ModP2048256, hexInt(rfc5114_2048_256_p), hexInt(rfc5114_2048_256_q), hexInt(rfc5114_2048_256_alpha))
	})
}

func mustRegister(id ID, p, q, alpha *big.Int) {
	if _, err := Register(id, p, q, alpha); err != nil {
		panic(fmt.Sprintf("group: failed to initialize %s: %v", id, err))
	}
}

// hexInt parses a whitespace-separated hex literal (as RFC 5114
// prints its group parameters) into a *big.Int.
func hexInt(s string) *big.Int {
	clean := strings.Join(strings.Fields(s), "")
	n, ok := new(big.Int).SetString(clean, 16)
	if !ok {
		panic(fmt.Sprintf("group: invalid hex literal %q", s))
	}
	return n
}
