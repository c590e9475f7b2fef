// Package wire defines the message shapes exchanged between prover
// and verifier, per the specification's external interface (section
// 6). Every big integer is a big-endian, minimal-length byte string;
// every identifier is a UUID v4 in canonical hyphenated text form.
//
// This package intentionally does not implement protobuf/gRPC
// framing -- the specification treats that byte-exact codec as an
// external collaborator and only specifies message shape and method
// contracts. See transport for how these types travel over gRPC.
package wire

import (
	"math/big"

	"github.com/chaumpedersen/zkpauth/group"
)

// Group carries full Schnorr group parameters so the server never
// needs to be preconfigured with the client's chosen group -- the
// "parameters embedded in the signature" wire scheme mandated by
// section 4.6 of the specification, in preference to a group-id
// enumeration.
type Group struct {
	P, Q, Alpha, Beta []byte
}

// Signature is the public (y1, y2) pair registered for a username,
// together with the group it was computed in.
type Signature struct {
	Group  Group
	Y1, Y2 []byte
}

// Commitment is the prover's (r1, r2) commitment pair.
type Commitment struct {
	R1, R2 []byte
}

// Challenge carries the verifier's challenge c.
type Challenge struct {
	C []byte
}

// Solution carries the prover's response s.
type Solution struct {
	S []byte
}

// SignUpRequest registers a username's signature.
type SignUpRequest struct {
	Username  string
	Signature Signature
}

// SignUpResponse is an empty acknowledgement.
type SignUpResponse struct{}

// CommitRequest begins an authentication attempt for an already
// registered username.
type CommitRequest struct {
	Username   string
	Commitment Commitment
}

// CommitResponse returns the freshly minted verifier-id and the
// challenge the prover must answer.
type CommitResponse struct {
	VerifierID string
	Challenge  Challenge
}

// AuthRequest answers the challenge identified by VerifierID.
type AuthRequest struct {
	VerifierID string
	Solution   Solution
}

// AuthResponse carries the freshly minted session-id on success.
type AuthResponse struct {
	SessionID string
}

// ToGroup reconstructs a *group.Group from wire-encoded parameters.
// The returned group has no ID -- it did not come from the static
// registry, it came from the wire, which is the point of section
// 4.6's embedded-parameters scheme.
func (g Group) ToGroup() *group.Group {
	return &group.Group{
		P:     BigInt(g.P),
		Q:     BigInt(g.Q),
		Alpha: BigInt(g.Alpha),
		Beta:  BigInt(g.Beta),
	}
}

// GroupFrom encodes a *group.Group for the wire.
func GroupFrom(g *group.Group) Group {
	return Group{
		P:     Bytes(g.P),
		Q:     Bytes(g.Q),
		Alpha: Bytes(g.Alpha),
		Beta:  Bytes(g.Beta),
	}
}

// Bytes encodes n as a big-endian, minimal-length byte string. A nil
// n encodes as a nil slice; zero encodes as an empty, non-nil slice.
func Bytes(n *big.Int) []byte {
	if n == nil {
		return nil
	}
	return n.Bytes()
}

// BigInt decodes a big-endian byte string into a *big.Int. Empty or
// nil input decodes to zero.
func BigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
