package zkp

import (
	"fmt"
	"math/big"

	"github.com/chaumpedersen/zkpauth/group"
)

// Verifier is the verifier side of the protocol. It is constructed
// from a group and a prover's (signature, commitment) pair, and draws
// its own challenge c at construction time.
type Verifier struct {
	group  *group.Group
	y1, y2 *big.Int
	r1, r2 *big.Int
	c      *big.Int
}

// NewVerifier builds a Verifier for g and the given signature/
// commitment, drawing a fresh challenge c uniformly from [0, q).
func NewVerifier(g *group.Group, y1, y2, r1, r2 *big.Int) (*Verifier, error) {
	if g == nil {
		return nil, fmt.Errorf("zkp: group must not be nil")
	}
	if g.P == nil || g.Q == nil || g.P.Sign() <= 0 || g.Q.Sign() <= 0 {
		return nil, fmt.Errorf("zkp: group p and q must be positive")
	}
	if y1 == nil || y2 == nil || r1 == nil || r2 == nil {
		return nil, fmt.Errorf("zkp: signature and commitment values must not be nil")
	}

	c, err := randBelow(g.Q)
	if err != nil {
		return nil, fmt.Errorf("zkp: failed to draw challenge: %w", err)
	}

	return &Verifier{group: g, y1: y1, y2: y2, r1: r1, r2: r2, c: c}, nil
}

// Challenge returns the challenge c generated at construction.
func (v *Verifier) Challenge() *big.Int {
	return v.c
}

// Verify checks that s satisfies both Chaum-Pedersen congruences:
//
//	r1 == alpha^s * y1^c (mod p)
//	r2 == beta^s  * y2^c (mod p)
//
// It never panics -- a nil or otherwise malformed s simply fails to
// verify, per the specification's requirement that no exception
// escape this call.
func (v *Verifier) Verify(s *big.Int) bool {
	if s == nil {
		return false
	}

	p := v.group.P

	lhs1 := new(big.Int).Exp(v.group.Alpha, s, p)
	rhs1 := new(big.Int).Exp(v.y1, v.c, p)
	lhs1.Mul(lhs1, rhs1)
	lhs1.Mod(lhs1, p)

	lhs2 := new(big.Int).Exp(v.group.Beta, s, p)
	rhs2 := new(big.Int).Exp(v.y2, v.c, p)
	lhs2.Mul(lhs2, rhs2)
	lhs2.Mod(lhs2, p)

	return v.r1.Cmp(lhs1) == 0 && v.r2.Cmp(lhs2) == 0
}
