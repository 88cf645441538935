package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"obras/internal/core"
	"obras/internal/sheets/memory"

	"golang.org/x/crypto/bcrypt"
)

const usersTab = "Usuarios"

func newTestDirectory(t *testing.T) (*Directory, *memory.Store) {
	t.Helper()
	store := memory.New(map[string][]string{
		usersTab: {"username", "name", "password"},
	})
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store.Seed(usersTab, []string{"maria", "Maria Souza", string(hash)})
	return NewDirectory(store, usersTab, time.Minute), store
}

func TestVerify(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	u, err := d.Verify(ctx, "maria", "segredo")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if u.Name != "Maria Souza" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := d.Verify(ctx, "maria", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := d.Verify(ctx, "ninguem", "segredo"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", err)
	}
}

func TestUsersCachedUntilInvalidate(t *testing.T) {
	d, store := newTestDirectory(t)
	ctx := context.Background()

	if _, err := d.Users(ctx); err != nil {
		t.Fatalf("users: %v", err)
	}
	// A store change behind the cache is invisible until invalidation.
	store.Seed(usersTab, []string{"joao", "João", "x"})
	users, _ := d.Users(ctx)
	if len(users) != 1 || users[0].Username != "maria" {
		t.Fatalf("expected cached list, got %+v", users)
	}

	d.Invalidate()
	users, _ = d.Users(ctx)
	if len(users) != 1 || users[0].Username != "joao" {
		t.Fatalf("expected fresh list, got %+v", users)
	}
}

func TestMissingUsersTabIsAnError(t *testing.T) {
	store := memory.New(map[string][]string{})
	d := NewDirectory(store, usersTab, time.Minute)
	if _, err := d.Users(context.Background()); err == nil {
		t.Fatalf("expected error for missing tab")
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions(time.Minute)
	token := s.Create(core.User{Username: "maria", Name: "Maria"})
	if token == "" {
		t.Fatalf("empty token")
	}

	sess, ok := s.Get(token)
	if !ok || sess.Username != "maria" {
		t.Fatalf("got %+v ok=%v", sess, ok)
	}

	if _, ok := s.Get("not-a-token"); ok {
		t.Fatalf("unknown token must not resolve")
	}

	s.Delete(token)
	if _, ok := s.Get(token); ok {
		t.Fatalf("deleted session must not resolve")
	}
}

func TestSessionExpiry(t *testing.T) {
	s := NewSessions(10 * time.Millisecond)
	token := s.Create(core.User{Username: "maria"})
	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Get(token); ok {
		t.Fatalf("expired session must not resolve")
	}
}
