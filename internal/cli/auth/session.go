package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/mo"

	"github.com/salonbook/salon/internal/access"
)

// ErrExpired is returned by LoadSession when the stored credential carries
// an exp claim in the past. The credential is discarded.
var ErrExpired = errors.New("credential expired")

// Session is the client's view of who is logged in. It is created once per
// command and handed to everything that needs the credential or claims.
type Session struct {
	store  TokenStore
	token  string
	claims mo.Option[access.Claims]
}

// NewSession returns an unauthenticated session backed by store
func NewSession(store TokenStore) *Session {
	return &Session{
		store:  store,
		claims: mo.None[access.Claims](),
	}
}

// LoadSession reads the stored credential and derives its claims.
//
// An empty store yields an unauthenticated session and no error. A
// credential that fails to decode, or whose exp has passed at now, is
// deleted from the store; the returned session is unauthenticated and the
// error says why.
func LoadSession(store TokenStore, now time.Time) (*Session, error) {
	s := NewSession(store)

	token, err := store.LoadToken()
	if errors.Is(err, ErrNoToken) || (err == nil && token == "") {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	claims, err := access.Derive(token)
	if err == nil && claims.ExpiredAt(now) {
		err = ErrExpired
	}
	if err != nil {
		if delErr := store.DeleteToken(); delErr != nil {
			return s, fmt.Errorf("%w (clearing it also failed: %v)", err, delErr)
		}
		return s, err
	}

	s.token = token
	s.claims = mo.Some(claims)
	return s, nil
}

// Save derives claims from token and persists it. An undecodable
// credential is rejected and never stored.
func (s *Session) Save(token string) (access.Claims, error) {
	claims, err := access.Derive(token)
	if err != nil {
		return access.Claims{}, err
	}

	if err := s.store.SaveToken(token); err != nil {
		return access.Claims{}, err
	}

	s.token = token
	s.claims = mo.Some(claims)
	return claims, nil
}

// Clear forgets the credential, in memory and in the store
func (s *Session) Clear() error {
	s.token = ""
	s.claims = mo.None[access.Claims]()
	return s.store.DeleteToken()
}

// Token returns the bearer credential, or "" when unauthenticated
func (s *Session) Token() string {
	return s.token
}

func (s *Session) Claims() mo.Option[access.Claims] {
	return s.claims
}

func (s *Session) Authenticated() bool {
	return s.claims.IsPresent()
}
