package auth

import (
	"context"
	"testing"
	"time"
)

func TestLoginAndValidate(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, "test-secret", "hunter2", "", 24*time.Hour, false)

	token, expiresAt, err := svc.Login(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiresAt must be in the future")
	}
	if err := svc.Validate(context.Background(), token); err != nil {
		t.Fatalf("fresh session must validate: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(NewMemoryStore(), "test-secret", "hunter2", "", time.Hour, false)
	if _, _, err := svc.Login(context.Background(), "wrong"); err != ErrBadPassword {
		t.Fatalf("expected ErrBadPassword, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), ""); err != ErrBadPassword {
		t.Fatalf("expected ErrBadPassword for empty password, got %v", err)
	}
}

func TestNoPasswordConfiguredRejectsAll(t *testing.T) {
	svc := NewService(NewMemoryStore(), "test-secret", "", "", time.Hour, false)
	if _, _, err := svc.Login(context.Background(), ""); err != ErrBadPassword {
		t.Fatalf("empty configured password must not allow login, got %v", err)
	}
}

func TestSessionExpiryPurges(t *testing.T) {
	store := NewMemoryStore()
	ttl := 7 * 24 * time.Hour
	svc := NewService(store, "test-secret", "hunter2", "", ttl, false)

	token, _, err := svc.Login(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// valid immediately after creation
	if err := svc.Validate(context.Background(), token); err != nil {
		t.Fatalf("expected valid session: %v", err)
	}

	// advance the store's clock past createdAt + ttl
	store.now = func() time.Time { return time.Now().Add(ttl + time.Minute) }

	if err := svc.Validate(context.Background(), token); err == nil {
		t.Fatalf("expected expired session to be invalid")
	}

	// the expired entry must be gone from the map, not just masked
	store.mu.Lock()
	n := len(store.sessions)
	store.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected expired session to be purged, %d remain", n)
	}
}

func TestLogoutInvalidatesImmediately(t *testing.T) {
	svc := NewService(NewMemoryStore(), "test-secret", "hunter2", "", time.Hour, false)

	token, _, err := svc.Login(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	svc.Logout(context.Background(), token)
	if err := svc.Validate(context.Background(), token); err == nil {
		t.Fatalf("expected session to be invalid after logout")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	svc := NewService(NewMemoryStore(), "test-secret", "hunter2", "", time.Hour, false)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if err := svc.Validate(context.Background(), tok); err == nil {
			t.Fatalf("token %q must not validate", tok)
		}
	}
}

func TestDisabledAuthAcceptsEverything(t *testing.T) {
	svc := NewService(NewMemoryStore(), "test-secret", "", "", time.Hour, true)
	if _, _, err := svc.Login(context.Background(), "anything"); err != nil {
		t.Fatalf("disabled auth must accept login: %v", err)
	}
	if err := svc.Validate(context.Background(), "no cookie at all"); err != nil {
		t.Fatalf("disabled auth must validate anything: %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := NewService(NewMemoryStore(), "test-secret", "hunter2", "", time.Hour, false)
	other := NewService(NewMemoryStore(), "other-secret", "hunter2", "", time.Hour, false)

	token, _, err := other.Login(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Validate(context.Background(), token); err == nil {
		t.Fatalf("token signed with a different secret must not validate")
	}
}
