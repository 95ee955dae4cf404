// Package service contains application services for accounts and registration.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/campusware/registrar/internal/crypto"
	"github.com/campusware/registrar/internal/errs"
	"github.com/campusware/registrar/internal/limiter"
	"github.com/campusware/registrar/internal/model"
	"github.com/campusware/registrar/internal/repository"
	"github.com/campusware/registrar/internal/session"
)

// SignIn is the result of a successful credential check: the stored session
// plus the anti-forgery token issued alongside it.
type SignIn struct {
	Session session.Session
	CSRF    string
}

// AuthService defines sign-up/sign-in/sign-out and per-request identity
// resolution.
type AuthService interface {
	// SignUp creates a member through the signup routine and returns its id.
	SignUp(ctx context.Context, username, password, firstName, lastName string) (uuid.UUID, error)
	// SignInWithIP applies rate limiting, verifies credentials, and issues a
	// fresh session with a sliding expiry.
	SignInWithIP(ctx context.Context, username, password, ip string) (SignIn, model.Identity, error)
	// SignOut flushes the session; the token never resolves again.
	SignOut(ctx context.Context, token string) error
	// Resolve rebuilds the caller identity from a session token. Absent or
	// stale tokens degrade to anonymous, never to an error.
	Resolve(ctx context.Context, token string) model.Identity
	// VerifyCSRF checks the anti-forgery token against the session token.
	VerifyCSRF(sessionToken, csrfToken string) error
}

type AuthServiceImpl struct {
	members  repository.MemberRepository
	procs    repository.ProcedureInvoker
	sessions session.Store
	lim      limiter.Limiter
	secret   []byte
	ttl      time.Duration
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(members repository.MemberRepository, procs repository.ProcedureInvoker, sessions session.Store, lim limiter.Limiter, secret []byte, ttl time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{members: members, procs: procs, sessions: sessions, lim: lim, secret: secret, ttl: ttl}
}

// SignUp hashes the password with a per-member salt and delegates creation
// to the signup routine, which enforces username uniqueness.
func (s *AuthServiceImpl) SignUp(ctx context.Context, username, password, firstName, lastName string) (uuid.UUID, error) {
	if username == "" || password == "" {
		return uuid.Nil, errors.New("empty username/password")
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return uuid.Nil, err
	}
	hash := pkgcrypto.HashPassword([]byte(password), salt)

	rows, err := s.procs.Invoke(ctx, "signup_member", username, hash, salt, firstName, lastName)
	if err != nil {
		return uuid.Nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return uuid.Nil, errors.New("signup_member returned no id")
	}
	return UUIDValue(rows[0][0])
}

// SignInWithIP authenticates with rate limiting by (username, ip).
func (s *AuthServiceImpl) SignInWithIP(ctx context.Context, username, password, ip string) (SignIn, model.Identity, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, username, ipHash)
	if err != nil {
		return SignIn{}, model.Identity{}, err
	}
	if !allowed {
		return SignIn{}, model.Identity{}, errs.ErrRateLimited
	}

	m, err := s.members.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return SignIn{}, model.Identity{}, err
	}
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), m.SaltAuth, m.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, username, ipHash); ferr == nil && blocked {
			return SignIn{}, model.Identity{}, errs.ErrRateLimited
		}
		// hide whether the username exists
		return SignIn{}, model.Identity{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, username, ipHash)

	token, err := session.NewToken()
	if err != nil {
		return SignIn{}, model.Identity{}, err
	}
	sess := session.Session{
		Token:     token,
		MemberID:  m.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return SignIn{}, model.Identity{}, err
	}

	csrf, err := s.issueCSRF(token, sess.ExpiresAt)
	if err != nil {
		return SignIn{}, model.Identity{}, err
	}
	return SignIn{Session: sess, CSRF: csrf}, m.Identity(), nil
}

// SignOut flushes the caller's session. A missing token is a no-op.
func (s *AuthServiceImpl) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Resolve rebuilds the identity for one request. It runs before any handler
// logic and never caches across requests, so revocation is immediate.
func (s *AuthServiceImpl) Resolve(ctx context.Context, token string) model.Identity {
	if token == "" {
		return model.Anonymous()
	}
	sess, err := s.sessions.Get(ctx, token)
	if err != nil || sess == nil {
		return model.Anonymous()
	}
	m, err := s.members.GetByID(ctx, sess.MemberID)
	if err != nil {
		return model.Anonymous()
	}
	return m.Identity()
}

// UUIDValue converts a routine result cell to a UUID. Depending on codec
// registration pgx surfaces uuid columns as [16]byte or string.
func UUIDValue(v any) (uuid.UUID, error) {
	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case [16]byte:
		return uuid.FromBytes(x[:])
	case []byte:
		if len(x) == 16 {
			return uuid.FromBytes(x)
		}
		return uuid.FromString(string(x))
	case string:
		return uuid.FromString(x)
	default:
		return uuid.Nil, fmt.Errorf("unexpected id column type %T", v)
	}
}
