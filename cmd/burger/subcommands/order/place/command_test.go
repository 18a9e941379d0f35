package place_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/rest/mock"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/internal/commandline"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/internal/fixture"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/logger"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/order/place"
	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
	"github.com/stellarburgers/burger/pkg/cmp"
	"github.com/youta-t/flarc"
)

func TestPlace(t *testing.T) {
	type when struct {
		loggedIn bool
		bun      string
		items    []string
	}
	type then struct {
		placed        [][]string
		receipt       place.Receipt
		loginRequired bool
		err           error
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.GetIngredients = func(context.Context) ([]apiingr.Ingredient, error) {
				return fixture.Catalog(), nil
			}
			client.Impl.GetUser = func(context.Context) (apiauth.User, error) {
				return apiauth.User{Name: "eater", Email: "eater@example.com"}, nil
			}
			client.Impl.PlaceOrder = func(ctx context.Context, ids []string) (apiorders.Placement, error) {
				return apiorders.Placement{Number: 4242, Name: "Crater burger"}, nil
			}

			loginRequired := false
			options := []fixture.Option{
				fixture.WithOptions(storefront.Options{
					OnLoginRequired: func() { loginRequired = true },
				}),
			}
			if when.loggedIn {
				options = append(options, fixture.LoggedIn("refresh"))
			}
			sf, _ := fixture.Storefront(t, client, options...)

			stdout := new(strings.Builder)
			err := place.Task()(
				context.Background(),
				logger.Null(),
				*env.New(),
				sf,
				commandline.MockCommandline[struct{}]{
					Fullname_: "burger order place",
					Stdout_:   stdout,
					Stderr_:   new(strings.Builder),
					Args_: map[string][]string{
						place.ARG_BUN:   {when.bun},
						place.ARG_ITEMS: when.items,
					},
				},
				[]any{},
			)

			if !cmp.SliceEqWith(client.Calls.PlaceOrder, then.placed, cmp.SliceEq[string]) {
				t.Errorf("unexpected placement: %+v", client.Calls.PlaceOrder)
			}
			if loginRequired != then.loginRequired {
				t.Errorf("OnLoginRequired: (actual, expected) = (%t, %t)", loginRequired, then.loginRequired)
			}

			if then.err != nil {
				if !errors.Is(err, then.err) {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			actual := place.Receipt{}
			if err := json.Unmarshal([]byte(stdout.String()), &actual); err != nil {
				t.Fatal(err)
			}
			if actual != then.receipt {
				t.Errorf("unexpected receipt: %+v", actual)
			}
		}
	}

	t.Run("when logged in, it places the burger with the bun on both ends", theory(
		when{
			loggedIn: true,
			bun:      "bun-1",
			items:    []string{"main-1", "sauce-1", "main-1"},
		},
		then{
			placed:  [][]string{{"bun-1", "main-1", "sauce-1", "main-1", "bun-1"}},
			receipt: place.Receipt{Number: 4242, Name: "Crater burger", Price: 3448},
		},
	))

	t.Run("a bun only burger can be placed", theory(
		when{
			loggedIn: true,
			bun:      "bun-2",
		},
		then{
			placed:  [][]string{{"bun-2", "bun-2"}},
			receipt: place.Receipt{Number: 4242, Name: "Crater burger", Price: 1976},
		},
	))

	t.Run("without login, it requires login without placement", theory(
		when{
			bun:   "bun-1",
			items: []string{"main-1"},
		},
		then{
			placed:        [][]string{},
			loginRequired: true,
			err:           storefront.ErrLoginRequired,
		},
	))

	t.Run("with unknown ingredient, it fails", theory(
		when{
			loggedIn: true,
			bun:      "bun-1",
			items:    []string{"main-99"},
		},
		then{
			placed: [][]string{},
			err:    place.ErrUnknownIngredient,
		},
	))

	t.Run("when BUN_ID is not a bun, it is an usage error", theory(
		when{
			loggedIn: true,
			bun:      "main-1",
		},
		then{
			placed: [][]string{},
			err:    flarc.ErrUsage,
		},
	))

	t.Run("when ITEM_ID is a bun, it is an usage error", theory(
		when{
			loggedIn: true,
			bun:      "bun-1",
			items:    []string{"bun-2"},
		},
		then{
			placed: [][]string{},
			err:    flarc.ErrUsage,
		},
	))
}
