// Package authservice implements the stateful protocol service:
// SignUp, Commit, Authenticate and the illustrative ResourceAccess
// and Logout operations, driving the per-username state machine of
// the specification's section 4.5. It is grounded directly on
// original_source's AuthService (src/lib/grpc/auth/mod.rs): the same
// insert-or-reject SignUp, the same read-signature/build-verifier/
// store-verifier Commit, and the same atomic take-and-verify
// Authenticate, translated into Go's explicit-error idiom and mapped
// to canonical gRPC status codes at the boundary.
package authservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chaumpedersen/zkpauth/session"
	"github.com/chaumpedersen/zkpauth/wire"
	"github.com/chaumpedersen/zkpauth/zkp"
)

// Service implements the four RPC-style operations against a
// session.Store.
type Service struct {
	store session.Store
	log   *zap.Logger
}

// New constructs a Service backed by store. A nil logger falls back
// to zap's no-op logger.
func New(store session.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// SignUp registers username's signature. It is not idempotent by
// design: a second SignUp for the same username always fails.
func (s *Service) SignUp(ctx context.Context, req wire.SignUpRequest) (wire.SignUpResponse, error) {
	if req.Username == "" {
		return wire.SignUpResponse{}, status.Error(codes.InvalidArgument, "username required")
	}
	if len(req.Signature.Y1) == 0 || len(req.Signature.Y2) == 0 {
		return wire.SignUpResponse{}, status.Error(codes.InvalidArgument, "signature required")
	}

	if err := s.store.PutSignature(req.Username, req.Signature); err != nil {
		if errors.Is(err, session.ErrAlreadyExists) {
			return wire.SignUpResponse{}, status.Error(codes.AlreadyExists, "username already exists")
		}
		s.log.Error("sign up failed", zap.String("username", req.Username), zap.Error(err))
		return wire.SignUpResponse{}, status.Error(codes.Internal, "an internal error occurred")
	}

	s.log.Debug("username and signature saved", zap.String("username", req.Username))
	return wire.SignUpResponse{}, nil
}

// Commit looks up username's signature, builds a Verifier from it and
// the supplied commitment, and returns a fresh verifier-id and
// challenge.
func (s *Service) Commit(ctx context.Context, req wire.CommitRequest) (wire.CommitResponse, error) {
	if len(req.Commitment.R1) == 0 || len(req.Commitment.R2) == 0 {
		return wire.CommitResponse{}, status.Error(codes.InvalidArgument, "commitment required")
	}

	sig, err := s.store.GetSignature(req.Username)
	if err != nil {
		return wire.CommitResponse{}, status.Error(codes.NotFound, "username not found")
	}

	if len(sig.Group.P) == 0 || len(sig.Group.Q) == 0 || len(sig.Group.Alpha) == 0 || len(sig.Group.Beta) == 0 {
		return wire.CommitResponse{}, status.Error(codes.InvalidArgument, "group missing from signature")
	}

	g := sig.Group.ToGroup()
	y1, y2 := wire.BigInt(sig.Y1), wire.BigInt(sig.Y2)
	r1, r2 := wire.BigInt(req.Commitment.R1), wire.BigInt(req.Commitment.R2)

	verifier, err := zkp.NewVerifier(g, y1, y2, r1, r2)
	if err != nil {
		s.log.Error("failed to build verifier", zap.Error(err))
		return wire.CommitResponse{}, status.Error(codes.Internal, "an internal error occurred")
	}

	verifierID, err := s.store.PutVerifier(verifier, sig)
	if err != nil {
		s.log.Error("failed to store verifier", zap.Error(err))
		return wire.CommitResponse{}, status.Error(codes.Internal, "an internal error occurred")
	}

	return wire.CommitResponse{
		VerifierID: verifierID.String(),
		Challenge:  wire.Challenge{C: wire.Bytes(verifier.Challenge())},
	}, nil
}

// Authenticate consumes the verifier identified by req.VerifierID and
// checks the supplied solution. A second Authenticate for the same
// verifier-id -- regardless of the first call's outcome -- fails with
// NotFound, since the verifier was already removed.
func (s *Service) Authenticate(ctx context.Context, req wire.AuthRequest) (wire.AuthResponse, error) {
	// A zero response encodes as an empty, non-nil byte string, so only
	// a nil S counts as absent.
	if req.Solution.S == nil {
		return wire.AuthResponse{}, status.Error(codes.InvalidArgument, "solution required")
	}

	verifierID, err := uuid.Parse(req.VerifierID)
	if err != nil {
		return wire.AuthResponse{}, status.Error(codes.InvalidArgument, "invalid verifier_id")
	}

	verifier, err := s.store.TakeVerifier(verifierID)
	if err != nil {
		return wire.AuthResponse{}, status.Error(codes.NotFound, "verifier not found")
	}

	solution := wire.BigInt(req.Solution.S)
	if !verifier.Verify(solution) {
		return wire.AuthResponse{}, status.Error(codes.Unauthenticated, "authentication failed")
	}

	sessionID, err := uuid.NewRandom()
	if err != nil {
		s.log.Error("failed to mint session id", zap.Error(err))
		return wire.AuthResponse{}, status.Error(codes.Internal, "an internal error occurred")
	}
	s.store.PutSession(sessionID)

	return wire.AuthResponse{SessionID: sessionID.String()}, nil
}

// ResourceAccess is the illustrative, non-core operation: it rejects
// unless sessionID names an active session.
func (s *Service) ResourceAccess(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return status.Error(codes.InvalidArgument, "invalid session_id")
	}
	if !s.store.HasSession(id) {
		return status.Error(codes.Unauthenticated, "not authenticated")
	}
	return nil
}

// Logout tears down a session, moving its owner back from
// Authenticated to Registered per the state diagram in section 3.
// The original implementation never exposed this as an RPC; it's
// added here because the lifecycle table names the transition.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return status.Error(codes.InvalidArgument, "invalid session_id")
	}
	if !s.store.HasSession(id) {
		return status.Error(codes.NotFound, fmt.Sprintf("session %s not found", sessionID))
	}
	s.store.DeleteSession(id)
	return nil
}
