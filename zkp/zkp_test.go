package zkp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaumpedersen/zkpauth/group"
)

// tinyGroup returns the literal group used by the specification's
// worked examples S1/S2: p=23, q=11, alpha=4, beta=9.
func tinyGroup(t *testing.T) *group.Group {
	t.Helper()
	g, err := group.Register(group.ID("zkp-test-tiny"), big.NewInt(23), big.NewInt(11), big.NewInt(4))
	require.NoError(t, err)
	// The spec's worked example fixes beta=9; Register draws a
	// random beta, so override it here to reproduce S1/S2 exactly.
	g.Beta = big.NewInt(9)
	return g
}

// TestS1TinyGroupRoundTrip reproduces the literal worked example from
// the specification: x=6, k=7, c=4 over p=23, q=11, alpha=4, beta=9.
func TestS1TinyGroupRoundTrip(t *testing.T) {
	g := tinyGroup(t)

	x := big.NewInt(6)
	k := big.NewInt(7)
	c := big.NewInt(4)

	signer := &Signer{group: g, k: k}
	y1, y2 := signer.Sign(x)
	require.Equal(t, big.NewInt(2), y1)
	require.Equal(t, big.NewInt(3), y2)

	r1, r2 := signer.Commit()
	require.Equal(t, big.NewInt(8), r1)
	require.Equal(t, big.NewInt(4), r2)

	s := signer.Respond(x, c)
	require.Equal(t, big.NewInt(5), s)

	v, err := NewVerifier(g, y1, y2, r1, r2)
	require.NoError(t, err)
	v.c = c // fix the challenge to the spec's literal value

	require.True(t, v.Verify(s))
}

// TestS2TinyGroupRejection checks that an off-by-one response fails
// both congruences, per the specification's S2 scenario.
func TestS2TinyGroupRejection(t *testing.T) {
	g := tinyGroup(t)

	x := big.NewInt(6)
	k := big.NewInt(7)
	c := big.NewInt(4)

	signer := &Signer{group: g, k: k}
	y1, y2 := signer.Sign(x)
	r1, r2 := signer.Commit()

	v, err := NewVerifier(g, y1, y2, r1, r2)
	require.NoError(t, err)
	v.c = c

	require.False(t, v.Verify(big.NewInt(2)))
}

// TestCorrectnessAndSoundness implements testable properties 1-4 of
// the specification over each registered group, for many random
// (x, k, c) triples.
func TestCorrectnessAndSoundness(t *testing.T) {
	for _, id := range []group.ID{group.Tiny, group.ModP1024160, group.ModP2048224, group.ModP2048256} {
		id := id
		t.Run(string(id), func(t *testing.T) {
			g, err := group.Lookup(id)
			require.NoError(t, err)

			iterations := 1000
			if id != group.Tiny {
				// Exponentiation over the RFC 5114 groups is
				// expensive; sample fewer iterations for the large
				// groups but keep the tiny group's full coverage.
				iterations = 25
			}

			for i := 0; i < iterations; i++ {
				x, err := randBelow(g.Q)
				require.NoError(t, err)

				signer, err := NewSigner(g)
				require.NoError(t, err)

				y1, y2 := signer.Sign(x)
				r1, r2 := signer.Commit()

				v, err := NewVerifier(g, y1, y2, r1, r2)
				require.NoError(t, err)

				c := v.Challenge()
				require.Equal(t, -1, c.Cmp(g.Q), "challenge range")
				require.True(t, c.Sign() >= 0, "challenge range")

				s := signer.Respond(x, c)
				require.True(t, s.Sign() >= 0 && s.Cmp(g.Q) < 0, "response range")
				require.True(t, v.Verify(s), "correctness")

				sPrime := new(big.Int).Add(s, big.NewInt(1))
				sPrime.Mod(sPrime, g.Q)
				require.False(t, v.Verify(sPrime), "soundness spot-check")
			}
		})
	}
}

func TestDeriveSecretIsDeterministic(t *testing.T) {
	g, err := group.Lookup(group.Tiny)
	require.NoError(t, err)

	x1 := DeriveSecret(g, []byte("correct horse battery staple"))
	x2 := DeriveSecret(g, []byte("correct horse battery staple"))
	require.Equal(t, 0, x1.Cmp(x2))

	// q is 11 here, so distinct passwords can collide; this one
	// reduces to a different x than the one above.
	x3 := DeriveSecret(g, []byte("another password"))
	require.NotEqual(t, 0, x1.Cmp(x3))

	require.True(t, x1.Sign() >= 0 && x1.Cmp(g.Q) < 0)
}

func TestVerifyNeverPanicsOnMalformedInput(t *testing.T) {
	g, err := group.Lookup(group.Tiny)
	require.NoError(t, err)

	signer, err := NewSigner(g)
	require.NoError(t, err)

	x := DeriveSecret(g, []byte("pw"))
	y1, y2 := signer.Sign(x)
	r1, r2 := signer.Commit()

	v, err := NewVerifier(g, y1, y2, r1, r2)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		require.False(t, v.Verify(nil))
	})
}
