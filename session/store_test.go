package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chaumpedersen/zkpauth/group"
	"github.com/chaumpedersen/zkpauth/wire"
	"github.com/chaumpedersen/zkpauth/zkp"
)

func testVerifier(t *testing.T) *zkp.Verifier {
	t.Helper()
	g, err := group.Lookup(group.Tiny)
	require.NoError(t, err)

	signer, err := zkp.NewSigner(g)
	require.NoError(t, err)
	x := zkp.DeriveSecret(g, []byte("pw"))
	y1, y2 := signer.Sign(x)
	r1, r2 := signer.Commit()

	v, err := zkp.NewVerifier(g, y1, y2, r1, r2)
	require.NoError(t, err)
	return v
}

func TestPutGetSignature(t *testing.T) {
	s := New()
	sig := wire.Signature{Y1: []byte{1}, Y2: []byte{2}}

	require.NoError(t, s.PutSignature("alice", sig))

	got, err := s.GetSignature("alice")
	require.NoError(t, err)
	require.Equal(t, sig, got)

	require.ErrorIs(t, s.PutSignature("alice", sig), ErrAlreadyExists)
}

func TestGetSignatureNotFound(t *testing.T) {
	s := New()
	_, err := s.GetSignature("nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTakeVerifierIsSingleUse(t *testing.T) {
	s := New()
	id, err := s.PutVerifier(testVerifier(t), wire.Signature{})
	require.NoError(t, err)

	v, err := s.TakeVerifier(id)
	require.NoError(t, err)
	require.NotNil(t, v)

	_, err = s.TakeVerifier(id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	s := New()
	id := uuid.New()

	require.False(t, s.HasSession(id))
	s.PutSession(id)
	require.True(t, s.HasSession(id))
	s.DeleteSession(id)
	require.False(t, s.HasSession(id))
}

func TestSweepEvictsOldVerifiers(t *testing.T) {
	s := New()
	id, err := s.PutVerifier(testVerifier(t), wire.Signature{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	go s.Sweep(ctx, time.Millisecond, time.Millisecond)
	<-ctx.Done()
	// Give the last sweep tick a moment to run after cancellation is
	// observed by the test, not the sweeper (which exits on ctx.Done
	// too, so we check right before it would).
	time.Sleep(5 * time.Millisecond)

	_, err = s.TakeVerifier(id)
	require.ErrorIs(t, err, ErrNotFound)
}
