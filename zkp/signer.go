// Package zkp implements the Chaum-Pedersen zero-knowledge proof of
// equality of discrete logarithms: a prover convinces a verifier that
// it knows x such that y1 = alpha^x and y2 = beta^x (mod p), without
// revealing x.
//
// Signer embodies the prover; Verifier embodies the verifier. Both
// are safe to use from a single goroutine only -- a Signer holds a
// single-use nonce k and must not be shared across concurrent
// authentication attempts.
package zkp

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/chaumpedersen/zkpauth/group"
)

// Signer is the prover side of the protocol: it holds a group
// reference and a fresh per-session nonce k.
type Signer struct {
	group *group.Group
	k     *big.Int
}

// NewSigner constructs a Signer for g, drawing a fresh nonce k
// uniformly from [0, q).
func NewSigner(g *group.Group) (*Signer, error) {
	if g == nil {
		return nil, fmt.Errorf("zkp: group must not be nil")
	}

	k, err := randBelow(g.Q)
	if err != nil {
		return nil, fmt.Errorf("zkp: failed to draw k: %w", err)
	}

	return &Signer{group: g, k: k}, nil
}

// DeriveSecret implements the password-to-exponent rule of the
// specification: SHA-256(password) interpreted big-endian, reduced
// modulo q. It is a pure function of (password, q) -- repeated calls
// return the same x. Production systems would salt and stretch this;
// that is an explicit non-goal here.
func DeriveSecret(g *group.Group, password []byte) *big.Int {
	sum := sha256.Sum256(password)
	x := new(big.Int).SetBytes(sum[:])
	return x.Mod(x, g.Q)
}

// Sign computes the public signature pair (y1, y2) = (alpha^x, beta^x)
// mod p for the given secret x.
func (s *Signer) Sign(x *big.Int) (y1, y2 *big.Int) {
	p := s.group.P
	y1 = new(big.Int).Exp(s.group.Alpha, x, p)
	y2 = new(big.Int).Exp(s.group.Beta, x, p)
	return y1, y2
}

// Commit computes the commitment pair (r1, r2) = (alpha^k, beta^k)
// mod p using the Signer's stored nonce k.
func (s *Signer) Commit() (r1, r2 *big.Int) {
	p := s.group.P
	r1 = new(big.Int).Exp(s.group.Alpha, s.k, p)
	r2 = new(big.Int).Exp(s.group.Beta, s.k, p)
	return r1, r2
}

// Respond solves the challenge c for secret x, returning
// s = (k - c*x) mod q, always in [0, q). The computation is total:
// every (x, c) pair, including c*x >= k, yields a valid response.
func (s *Signer) Respond(x, c *big.Int) *big.Int {
	q := s.group.Q
	cx := new(big.Int).Mul(c, x)

	if s.k.Cmp(cx) >= 0 {
		diff := new(big.Int).Sub(s.k, cx)
		return diff.Mod(diff, q)
	}

	diff := new(big.Int).Sub(cx, s.k)
	diff.Mod(diff, q)
	diff.Sub(q, diff)
	return diff.Mod(diff, q)
}

// randBelow draws a cryptographically strong value in [0, n).
func randBelow(n *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, n)
}
