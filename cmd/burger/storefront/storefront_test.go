package storefront_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stellarburgers/burger/cmd/burger/config/credentials"
	kprof "github.com/stellarburgers/burger/cmd/burger/config/profiles"
	"github.com/stellarburgers/burger/cmd/burger/rest"
	"github.com/stellarburgers/burger/cmd/burger/rest/mock"
	"github.com/stellarburgers/burger/cmd/burger/state/session"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/internal/testutils/fakeapi"
	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
	"github.com/stellarburgers/burger/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bun   = apiingr.Ingredient{Id: "bun-1", Name: "Crater bun", Type: apiingr.Bun, Price: 1255}
	steak = apiingr.Ingredient{Id: "main-1", Name: "Meteorite steak", Type: apiingr.Main, Price: 424}
	sauce = apiingr.Ingredient{Id: "sauce-1", Name: "Spicy-X", Type: apiingr.Sauce, Price: 90}
)

var eater = apiauth.User{Email: "eater@example.com", Name: "eater"}

var tokens = apiauth.Tokens{AccessToken: "Bearer access", RefreshToken: "refresh"}

func build(client rest.BurgerClient, opts storefront.Options) *storefront.Storefront {
	keyring := session.NewKeyring(client, credentials.NewMemoryStore(), credentials.NewMemoryStore())
	if opts.IDs == nil {
		opts.IDs = idgen.NewCounter("item-")
	}
	return storefront.New(client, keyring, opts)
}

func TestPlaceOrder(t *testing.T) {
	scenario := func(clearOnPlacement bool) func(*testing.T) {
		return func(t *testing.T) {
			ctx := context.Background()
			client := mock.New(t)
			client.Impl.GetIngredients = func(context.Context) ([]apiingr.Ingredient, error) {
				return []apiingr.Ingredient{bun, steak}, nil
			}
			client.Impl.Login = func(ctx context.Context, email, password string) (apiauth.User, apiauth.Tokens, error) {
				return eater, tokens, nil
			}
			client.Impl.PlaceOrder = func(ctx context.Context, ids []string) (apiorders.Placement, error) {
				return apiorders.Placement{Number: 4242, Name: "Crater burger"}, nil
			}

			testee := build(client, storefront.Options{ClearBuilderOnPlacement: clearOnPlacement})
			_, err := testee.Catalog.Fetch(ctx)
			require.NoError(t, err)
			_, err = testee.Session.Login(ctx, eater.Email, "pa55word")
			require.NoError(t, err)

			b, _ := testee.Catalog.Lookup("bun-1")
			m, _ := testee.Catalog.Lookup("main-1")
			testee.Builder.Add(b)
			testee.Builder.Add(m)
			assert.Equal(t, 2934, testee.Price())

			placement, err := testee.PlaceOrder(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4242, placement.Number)
			assert.Equal(t, [][]string{{"bun-1", "main-1", "bun-1"}}, client.Calls.PlaceOrder)

			snap := testee.Orders.Snapshot()
			require.NotNil(t, snap.Placement)
			assert.Equal(t, 4242, snap.Placement.Number)
			assert.Empty(t, snap.Error())

			if clearOnPlacement {
				assert.True(t, testee.Builder.Snapshot().Empty())
				assert.Equal(t, 0, testee.Price())
			} else {
				assert.False(t, testee.Builder.Snapshot().Empty())
				assert.Equal(t, 2934, testee.Price())
			}
		}
	}

	t.Run("by default, the builder is kept after placement", scenario(false))
	t.Run("with ClearBuilderOnPlacement, the builder is cleared after placement", scenario(true))

	t.Run("without bun, nothing is requested", func(t *testing.T) {
		client := mock.New(t)
		testee := build(client, storefront.Options{})
		testee.Builder.Add(steak)

		_, err := testee.PlaceOrder(context.Background())
		assert.ErrorIs(t, err, storefront.ErrNoBun)
		assert.Empty(t, client.Calls.PlaceOrder)

		snap := testee.Orders.Snapshot()
		assert.Nil(t, snap.Placement)
		assert.False(t, snap.IsLoading())
		assert.Empty(t, snap.Error())
	})

	t.Run("anonymous user is sent to login", func(t *testing.T) {
		client := mock.New(t)
		asked := 0
		testee := build(client, storefront.Options{OnLoginRequired: func() { asked += 1 }})
		testee.Builder.Add(bun)

		_, err := testee.PlaceOrder(context.Background())
		assert.ErrorIs(t, err, storefront.ErrLoginRequired)
		assert.Equal(t, 1, asked)
		assert.Empty(t, client.Calls.PlaceOrder)
	})

	t.Run("while placing, another placement is refused", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.Login = func(ctx context.Context, email, password string) (apiauth.User, apiauth.Tokens, error) {
			return eater, tokens, nil
		}
		testee := build(client, storefront.Options{})
		client.Impl.PlaceOrder = func(ctx context.Context, ids []string) (apiorders.Placement, error) {
			_, err := testee.PlaceOrder(ctx)
			assert.ErrorIs(t, err, storefront.ErrPlacementInFlight)
			return apiorders.Placement{Number: 1}, nil
		}
		_, err := testee.Session.Login(context.Background(), eater.Email, "pa55word")
		require.NoError(t, err)
		testee.Builder.Add(bun)

		_, err = testee.PlaceOrder(context.Background())
		require.NoError(t, err)
		assert.Len(t, client.Calls.PlaceOrder, 1)
	})

	t.Run("on failure, the builder is kept even with ClearBuilderOnPlacement", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.Login = func(ctx context.Context, email, password string) (apiauth.User, apiauth.Tokens, error) {
			return eater, tokens, nil
		}
		client.Impl.PlaceOrder = func(ctx context.Context, ids []string) (apiorders.Placement, error) {
			return apiorders.Placement{}, errors.New("kitchen is closed")
		}
		testee := build(client, storefront.Options{ClearBuilderOnPlacement: true})
		_, err := testee.Session.Login(context.Background(), eater.Email, "pa55word")
		require.NoError(t, err)
		testee.Builder.Add(bun)

		_, err = testee.PlaceOrder(context.Background())
		assert.Error(t, err)
		assert.True(t, testee.Builder.HasBun())
		assert.Equal(t, "kitchen is closed", testee.Orders.Snapshot().Error())
	})
}

func TestStart(t *testing.T) {
	t.Run("catalog failure does not stop session recovery", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetIngredients = func(context.Context) ([]apiingr.Ingredient, error) {
			return nil, errors.New("kitchen is closed")
		}
		client.Impl.GetUser = func(context.Context) (apiauth.User, error) {
			return eater, nil
		}
		long := credentials.NewMemoryStore()
		require.NoError(t, long.Set(credentials.RefreshToken, "refresh"))
		testee := storefront.New(client, session.NewKeyring(client, long, credentials.NewMemoryStore()), storefront.Options{})

		err := testee.Start(context.Background())
		assert.Error(t, err)
		assert.True(t, testee.Session.IsAuthenticated())
		assert.Equal(t, "kitchen is closed", testee.Catalog.Status().Error)
	})

	t.Run("session failure is not an error of Start", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetIngredients = func(context.Context) ([]apiingr.Ingredient, error) {
			return []apiingr.Ingredient{bun}, nil
		}
		client.Impl.GetUser = func(context.Context) (apiauth.User, error) {
			return apiauth.User{}, errors.New("jwt expired")
		}
		long := credentials.NewMemoryStore()
		require.NoError(t, long.Set(credentials.RefreshToken, "refresh"))
		testee := storefront.New(client, session.NewKeyring(client, long, credentials.NewMemoryStore()), storefront.Options{})

		require.NoError(t, testee.Start(context.Background()))
		assert.False(t, testee.Session.IsAuthenticated())
		assert.Len(t, testee.Catalog.Snapshot().Items, 1)
	})
}

func TestDial(t *testing.T) {
	ctx := context.Background()
	server := fakeapi.New(
		t,
		fakeapi.WithIngredients(bun, steak, sauce),
		fakeapi.WithAccount(eater.Name, eater.Email, "pa55word"),
		fakeapi.WithAccessTokenTTL(time.Minute),
	)

	long := credentials.NewMemoryStore()
	testee, err := storefront.Dial(server.Profile(), long, credentials.NewMemoryStore(), storefront.Options{})
	require.NoError(t, err)
	require.NoError(t, testee.Start(ctx))
	require.False(t, testee.Session.IsAuthenticated())

	_, err = testee.Session.Login(ctx, eater.Email, "pa55word")
	require.NoError(t, err)

	testee.Builder.Add(bun)
	testee.Builder.Add(sauce)

	server.Advance(2 * time.Minute)
	placement, err := testee.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.NotZero(t, placement.Number)

	// a new process recovers the session from the long-lived tier.
	server.Advance(2 * time.Minute)
	restarted, err := storefront.Dial(server.Profile(), long, credentials.NewMemoryStore(), storefront.Options{})
	require.NoError(t, err)
	require.NoError(t, restarted.Start(ctx))
	assert.True(t, restarted.Session.IsAuthenticated())

	history, err := restarted.Orders.FetchUserOrders(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, []string{bun.Id, sauce.Id, bun.Id}, history[0].Ingredients)
}

func TestDial_LoginSurvivesUnavailableAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("when the API is unreachable, the refresh token is kept", func(t *testing.T) {
		closed := httptest.NewServer(http.NotFoundHandler())
		closed.Close()

		long := credentials.NewMemoryStore()
		require.NoError(t, long.Set(credentials.RefreshToken, "refresh"))

		testee, err := storefront.Dial(
			&kprof.Profile{ApiRoot: closed.URL}, long, credentials.NewMemoryStore(), storefront.Options{},
		)
		require.NoError(t, err)

		assert.ErrorIs(t, testee.Start(ctx), rest.ErrTransport)
		assert.False(t, testee.Session.IsAuthenticated())

		refresh, ok, err := long.Get(credentials.RefreshToken)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "refresh", refresh)
	})

	t.Run("when refreshing fails with 5xx, the session is recovered after the API is back", func(t *testing.T) {
		server := fakeapi.New(
			t,
			fakeapi.WithIngredients(bun, steak, sauce),
			fakeapi.WithAccount(eater.Name, eater.Email, "pa55word"),
		)
		long := credentials.NewMemoryStore()

		first, err := storefront.Dial(server.Profile(), long, credentials.NewMemoryStore(), storefront.Options{})
		require.NoError(t, err)
		_, err = first.Session.Login(ctx, eater.Email, "pa55word")
		require.NoError(t, err)

		server.Fail("/auth/token", http.StatusInternalServerError, "kitchen is on fire")
		down, err := storefront.Dial(server.Profile(), long, credentials.NewMemoryStore(), storefront.Options{})
		require.NoError(t, err)
		require.NoError(t, down.Start(ctx))
		assert.False(t, down.Session.IsAuthenticated())

		server.Recover("/auth/token")
		up, err := storefront.Dial(server.Profile(), long, credentials.NewMemoryStore(), storefront.Options{})
		require.NoError(t, err)
		require.NoError(t, up.Start(ctx))
		assert.True(t, up.Session.IsAuthenticated())
	})
}
