package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/promptlab/promptlab/internal/common"
)

var ErrBadPassword = errors.New("invalid password")

// Service implements the shared-password login gate. A single secret guards
// the whole app; there are no per-user accounts.
type Service struct {
	store        Store
	secret       string
	password     string
	passwordHash string
	ttl          time.Duration
	disabled     bool
}

func NewService(store Store, secret, password, passwordHash string, ttl time.Duration, disabled bool) *Service {
	return &Service{
		store:        store,
		secret:       secret,
		password:     password,
		passwordHash: passwordHash,
		ttl:          ttl,
		disabled:     disabled,
	}
}

func (s *Service) Disabled() bool { return s.disabled }

func (s *Service) checkPassword(password string) bool {
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}
	if s.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) == 1
}

// Login verifies the shared password and mints a session. When auth is
// disabled any password is accepted so the frontend flow stays uniform.
func (s *Service) Login(ctx context.Context, password string) (token string, expiresAt time.Time, err error) {
	if !s.disabled && !s.checkPassword(password) {
		return "", time.Time{}, ErrBadPassword
	}

	id, err := common.NewULID()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	sess := Session{ID: id, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}
	if err := s.store.Put(ctx, sess); err != nil {
		return "", time.Time{}, err
	}

	token, err = signToken(s.secret, id, sess.ExpiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, sess.ExpiresAt, nil
}

// Validate reports whether the cookie value names a live session.
func (s *Service) Validate(ctx context.Context, token string) error {
	if s.disabled {
		return nil
	}
	id, err := parseToken(s.secret, token)
	if err != nil {
		return ErrInvalidSession
	}
	if _, ok := s.store.Get(ctx, id); !ok {
		return ErrInvalidSession
	}
	return nil
}

// Logout invalidates the session immediately. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) {
	id, err := parseToken(s.secret, token)
	if err != nil {
		return
	}
	_ = s.store.Delete(ctx, id)
}
