package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownGroups(t *testing.T) {
	for _, id := range []ID{Tiny, ModP1024160, ModP2048224, ModP2048256} {
		g, err := Lookup(id)
		require.NoError(t, err)
		require.NotNil(t, g)

		require.Equal(t, 1, g.Alpha.Cmp(big.NewInt(1)), "alpha must exceed 1")
		require.Equal(t, 1, g.Beta.Cmp(big.NewInt(1)), "beta must exceed 1")
		require.Equal(t, -1, g.Alpha.Cmp(g.P), "alpha must be below p")
		require.Equal(t, -1, g.Beta.Cmp(g.P), "beta must be below p")
		require.Equal(t, -1, g.Q.Cmp(g.P), "q must be below p")
		require.NotEqual(t, 0, g.Alpha.Cmp(g.Beta), "alpha must not equal beta")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup(Unspecified)
	require.Error(t, err)

	_, err = Lookup(ID("does-not-exist"))
	var unknown *ErrUnknownGroup
	require.ErrorAs(t, err, &unknown)
}

func TestTinyGroupMatchesSpecWorkedExample(t *testing.T) {
	// The worked example in the specification (S1) uses p=23, q=11,
	// alpha=4, beta=9. Our registered tiny group shares p, q and
	// alpha; beta is randomly generated at init so we only assert
	// the fixed fields here and let zkp tests exercise the rest
	// against a group constructed with the literal beta.
	g, err := Lookup(Tiny)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(23), g.P)
	require.Equal(t, big.NewInt(11), g.Q)
	require.Equal(t, big.NewInt(4), g.Alpha)
}

func TestRegisterRejectsBadParameters(t *testing.T) {
	_, err := Register(ID("bad"), big.NewInt(1), big.NewInt(1), big.NewInt(2))
	require.Error(t, err)

	_, err = Register(ID("bad2"), big.NewInt(23), big.NewInt(30), big.NewInt(4))
	require.Error(t, err)

	_, err = Register(Unspecified, big.NewInt(23), big.NewInt(11), big.NewInt(4))
	require.Error(t, err)
}
