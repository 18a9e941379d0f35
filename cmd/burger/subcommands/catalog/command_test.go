package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/rest/mock"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/catalog"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/internal/commandline"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/internal/fixture"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/logger"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	"github.com/stellarburgers/burger/pkg/cmp"
	"github.com/youta-t/flarc"
)

func TestCatalog(t *testing.T) {
	type when struct {
		flags catalog.Flags
		err   error
	}
	type then struct {
		calls int
		items []apiingr.Ingredient
		err   error
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.GetIngredients = func(context.Context) ([]apiingr.Ingredient, error) {
				return fixture.Catalog(), when.err
			}
			sf, _ := fixture.Storefront(t, client)

			stdout := new(strings.Builder)
			err := catalog.Task()(
				context.Background(),
				logger.Null(),
				*env.New(),
				sf,
				commandline.MockCommandline[catalog.Flags]{
					Fullname_: "burger catalog",
					Stdout_:   stdout,
					Stderr_:   new(strings.Builder),
					Flags_:    when.flags,
				},
				[]any{},
			)

			if client.Calls.GetIngredients != then.calls {
				t.Errorf("GetIngredients is called %d times", client.Calls.GetIngredients)
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

			actual := []apiingr.Ingredient{}
			if err := json.Unmarshal([]byte(stdout.String()), &actual); err != nil {
				t.Fatal(err)
			}
			if !cmp.SliceEqWith(actual, then.items, apiingr.Ingredient.Equal) {
				t.Errorf("unexpected output:\n===actual===\n%+v\n===expected===\n%+v", actual, then.items)
			}
		}
	}

	t.Run("it shows all ingredients", theory(
		when{},
		then{calls: 1, items: fixture.Catalog()},
	))

	t.Run("with --type, it shows ingredients of the type", theory(
		when{flags: catalog.Flags{Type: "bun"}},
		then{calls: 1, items: []apiingr.Ingredient{fixture.Bun, fixture.Bun2}},
	))

	t.Run("with unknown --type, it is an usage error without requests", theory(
		when{flags: catalog.Flags{Type: "drink"}},
		then{calls: 0, err: flarc.ErrUsage},
	))

	expected := errors.New("fake error")
	t.Run("when the API fails, it returns the error", theory(
		when{err: expected},
		then{calls: 1, err: expected},
	))
}
