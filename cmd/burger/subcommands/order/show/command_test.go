package show_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/rest/mock"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/internal/commandline"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/internal/fixture"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/logger"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/order/show"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	"github.com/stellarburgers/burger/pkg/api/types/misc/rfctime"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
	"github.com/stellarburgers/burger/pkg/utils/try"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youta-t/flarc"
)

func TestShow(t *testing.T) {
	order := apiorders.Order{
		Id:          "order-1",
		Number:      4242,
		Name:        "Crater burger",
		Status:      apiorders.Done,
		CreatedAt:   try.To(rfctime.Parse("2024-01-02T03:04:05.678Z")).OrFatal(t),
		UpdatedAt:   try.To(rfctime.Parse("2024-01-02T03:04:06.678Z")).OrFatal(t),
		Ingredients: []string{"bun-1", "main-1", "main-1", "unknown", "bun-1"},
	}

	run := func(t *testing.T, number string, found *apiorders.Order) ([]int, int, string, error) {
		client := mock.New(t)
		client.Impl.GetIngredients = func(context.Context) ([]apiingr.Ingredient, error) {
			return fixture.Catalog(), nil
		}
		client.Impl.GetOrderByNumber = func(ctx context.Context, number int) (*apiorders.Order, error) {
			return found, nil
		}
		sf, _ := fixture.Storefront(t, client)

		stdout := new(strings.Builder)
		err := show.Task()(
			context.Background(),
			logger.Null(),
			*env.New(),
			sf,
			commandline.MockCommandline[struct{}]{
				Fullname_: "burger order show",
				Stdout_:   stdout,
				Stderr_:   new(strings.Builder),
				Args_:     map[string][]string{show.ARG_NUMBER: {number}},
			},
			[]any{},
		)
		return client.Calls.GetOrderByNumber, client.Calls.GetIngredients, stdout.String(), err
	}

	t.Run("it shows the order with counted ingredients", func(t *testing.T) {
		lookups, _, stdout, err := run(t, "4242", &order)
		require.NoError(t, err)
		assert.Equal(t, []int{4242}, lookups)

		actual := storefront.OrderInfo{}
		require.NoError(t, json.Unmarshal([]byte(stdout), &actual))
		assert.Equal(t, 4242, actual.Number)
		assert.Equal(t, "Crater burger", actual.Name)
		assert.Equal(t, apiorders.Done, actual.Status)
		assert.True(t, actual.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC)))
		assert.Equal(t, 1255*2+424*2, actual.Total)
		require.Len(t, actual.Lines, 2)
		assert.Equal(t, "bun-1", actual.Lines[0].Id)
		assert.Equal(t, 2, actual.Lines[0].Count)
		assert.Equal(t, "main-1", actual.Lines[1].Id)
		assert.Equal(t, 2, actual.Lines[1].Count)
	})

	t.Run("when the order is not found, it fails", func(t *testing.T) {
		_, _, _, err := run(t, "4243", nil)
		assert.ErrorIs(t, err, show.ErrOrderNotFound)
	})

	for _, number := range []string{"abc", "0", "-1"} {
		t.Run("when NUMBER is "+number+", it is an usage error without requests", func(t *testing.T) {
			lookups, fetches, _, err := run(t, number, nil)
			assert.ErrorIs(t, err, flarc.ErrUsage)
			assert.Empty(t, lookups)
			assert.Zero(t, fetches)
		})
	}
}
