package session

import (
	"context"
	"errors"
	"sync"

	"github.com/stellarburgers/burger/cmd/burger/config/credentials"
	"github.com/stellarburgers/burger/cmd/burger/rest"
	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
)

// Refresher exchanges a refresh token for new credentials. rest.BurgerClient is.
type Refresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (apiauth.Tokens, error)
}

// Keyring writes credentials into two tiers.
//
// The refresh token goes to the long-lived tier, and the access token goes to the short-lived tier.
// Keyring is the only writer of them.
//
// Keyring implements rest.Authenticator.
type Keyring struct {
	refresher Refresher
	longLived credentials.Store
	shortLive credentials.Store

	mu sync.Mutex
}

func NewKeyring(refresher Refresher, longLived credentials.Store, shortLived credentials.Store) *Keyring {
	return &Keyring{
		refresher: refresher,
		longLived: longLived,
		shortLive: shortLived,
	}
}

// AccessToken returns the access token, or "" when there are none.
func (k *Keyring) AccessToken() string {
	tok, ok, err := k.shortLive.Get(credentials.AccessToken)
	if err != nil || !ok {
		return ""
	}
	return tok
}

// HasRefreshToken reports whether the long-lived tier holds a refresh token.
func (k *Keyring) HasRefreshToken() (bool, error) {
	_, ok, err := k.longLived.Get(credentials.RefreshToken)
	return ok, err
}

// Refresh exchanges the refresh token for a new pair, and stores them.
//
// Without refresh token, it returns "" and no error.
// When the API refuses the refresh token (rest.ErrUnauthorized), both tiers are cleared.
// Other failures, like unreachable API or 5xx, keep the tiers as they are.
func (k *Keyring) Refresh(ctx context.Context) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	refresh, ok, err := k.longLived.Get(credentials.RefreshToken)
	if err != nil {
		return "", err
	}
	if !ok || refresh == "" {
		return "", nil
	}

	tokens, err := k.refresher.RefreshToken(ctx, refresh)
	if err != nil {
		if !errors.Is(err, rest.ErrUnauthorized) {
			return "", err
		}
		return "", errors.Join(err, k.clear())
	}
	if err := k.save(tokens); err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

func (k *Keyring) refreshToken() (string, bool, error) {
	return k.longLived.Get(credentials.RefreshToken)
}

func (k *Keyring) store(tokens apiauth.Tokens) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.save(tokens)
}

func (k *Keyring) forget() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.clear()
}

func (k *Keyring) save(tokens apiauth.Tokens) error {
	if err := k.longLived.Set(credentials.RefreshToken, tokens.RefreshToken); err != nil {
		return err
	}
	return k.shortLive.Set(credentials.AccessToken, tokens.AccessToken)
}

func (k *Keyring) clear() error {
	return errors.Join(
		k.longLived.Delete(credentials.RefreshToken),
		k.shortLive.Delete(credentials.AccessToken),
	)
}
