package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusware/registrar/internal/errs"
)

// The anti-forgery token is a signed HS256 token bound to the session token
// (by hash, so the HttpOnly session value never appears in a readable
// cookie). It is issued once at sign-in and must be echoed in the
// X-CSRF-Token header on every state-changing request.

func sessionFingerprint(sessionToken string) string {
	sum := sha256.Sum256([]byte(sessionToken))
	return hex.EncodeToString(sum[:])
}

func (s *AuthServiceImpl) issueCSRF(sessionToken string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionFingerprint(sessionToken),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// VerifyCSRF checks signature, expiry, and that the token was issued for
// this session.
func (s *AuthServiceImpl) VerifyCSRF(sessionToken, csrfToken string) error {
	if sessionToken == "" || csrfToken == "" {
		return errs.Forbidden("missing anti-forgery token")
	}
	parsed, err := jwt.ParseWithClaims(csrfToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return errs.Forbidden("invalid anti-forgery token")
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return errs.Forbidden("invalid anti-forgery token")
	}
	want := sessionFingerprint(sessionToken)
	if subtle.ConstantTimeCompare([]byte(claims.Subject), []byte(want)) != 1 {
		return errs.Forbidden("anti-forgery token does not match session")
	}
	return nil
}
