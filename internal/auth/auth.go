// Package auth verifies users against the store's Users tab and hands out
// cookie sessions with a bounded lifetime. Password cells carry bcrypt
// hashes; plaintext never touches the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"obras/internal/cache"
	"obras/internal/core"
	"obras/internal/sheets"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const usersCacheKey = "users"

// Directory reads the user list from the store, cached on its own TTL
// (user records change far less often than project data).
type Directory struct {
	store sheets.TableReader
	tab   string
	cache *cache.TTLCache[[]core.User]
}

func NewDirectory(store sheets.TableReader, tab string, ttl time.Duration) *Directory {
	return &Directory{
		store: store,
		tab:   tab,
		cache: cache.NewTTL[[]core.User](ttl),
	}
}

// Users returns the current user records. A missing Users tab is a
// configuration error, not an empty directory: authentication must not
// silently accept nobody or everybody.
func (d *Directory) Users(ctx context.Context) ([]core.User, error) {
	if users, ok := d.cache.Get(usersCacheKey); ok {
		return users, nil
	}
	values, err := d.store.ReadValues(ctx, d.tab)
	if err != nil {
		return nil, fmt.Errorf("read users tab: %w", err)
	}
	users := core.UsersFromValues(values)
	d.cache.Set(usersCacheKey, users)
	return users, nil
}

// Verify checks a submitted username and password against the directory.
func (d *Directory) Verify(ctx context.Context, username, password string) (core.User, error) {
	users, err := d.Users(ctx)
	if err != nil {
		return core.User{}, err
	}
	username = strings.TrimSpace(username)
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return core.User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	return core.User{}, ErrInvalidCredentials
}

// Invalidate drops the cached user list so the next read re-fetches.
func (d *Directory) Invalidate() {
	d.cache.Delete(usersCacheKey)
}

// CleanExpired implements cache.Cleaner.
func (d *Directory) CleanExpired() int {
	return d.cache.CleanExpired()
}
