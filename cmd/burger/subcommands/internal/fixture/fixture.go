// Package fixture builds storefronts for tests of subcommands.
package fixture

import (
	"testing"

	"github.com/stellarburgers/burger/cmd/burger/config/credentials"
	"github.com/stellarburgers/burger/cmd/burger/rest"
	"github.com/stellarburgers/burger/cmd/burger/state/session"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	"github.com/stellarburgers/burger/pkg/idgen"
)

var (
	Bun    = apiingr.Ingredient{Id: "bun-1", Name: "Crater bun", Type: apiingr.Bun, Price: 1255}
	Bun2   = apiingr.Ingredient{Id: "bun-2", Name: "Fluorescent bun", Type: apiingr.Bun, Price: 988}
	Steak  = apiingr.Ingredient{Id: "main-1", Name: "Meteorite steak", Type: apiingr.Main, Price: 424}
	Cheese = apiingr.Ingredient{Id: "main-2", Name: "Moon cheese", Type: apiingr.Main, Price: 4142}
	Sauce  = apiingr.Ingredient{Id: "sauce-1", Name: "Spicy-X sauce", Type: apiingr.Sauce, Price: 90}
)

// Catalog is Bun, Bun2, Steak, Cheese and Sauce.
func Catalog() []apiingr.Ingredient {
	return []apiingr.Ingredient{Bun, Bun2, Steak, Cheese, Sauce}
}

type config struct {
	refreshToken string
	opts         storefront.Options
}

type Option func(*config) *config

// LoggedIn puts a refresh token into the long-lived tier, so Rehydrate asks the user.
func LoggedIn(refreshToken string) Option {
	return func(c *config) *config {
		c.refreshToken = refreshToken
		return c
	}
}

func WithOptions(opts storefront.Options) Option {
	return func(c *config) *config {
		c.opts = opts
		return c
	}
}

// Storefront builds a storefront on client, with credentials in memory.
//
// The long-lived tier is returned to inspect.
func Storefront(t *testing.T, client rest.BurgerClient, options ...Option) (*storefront.Storefront, credentials.Store) {
	t.Helper()

	c := &config{}
	for _, o := range options {
		c = o(c)
	}

	longLived := credentials.NewMemoryStore()
	if c.refreshToken != "" {
		if err := longLived.Set(credentials.RefreshToken, c.refreshToken); err != nil {
			t.Fatal(err)
		}
	}
	keyring := session.NewKeyring(client, longLived, credentials.NewMemoryStore())

	opts := c.opts
	if opts.IDs == nil {
		opts.IDs = idgen.NewCounter("item-")
	}
	return storefront.New(client, keyring, opts), longLived
}
