package storefront_test

import (
	"context"
	"testing"

	"github.com/stellarburgers/burger/cmd/burger/rest/mock"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCatalog(t *testing.T, items ...apiingr.Ingredient) *storefront.Storefront {
	t.Helper()
	client := mock.New(t)
	client.Impl.GetIngredients = func(context.Context) ([]apiingr.Ingredient, error) {
		return items, nil
	}
	testee := build(client, storefront.Options{})
	_, err := testee.Catalog.Fetch(context.Background())
	require.NoError(t, err)
	return testee
}

func TestOrderCard(t *testing.T) {
	testee := withCatalog(t, bun, steak, sauce)

	t.Run("up to 6 ingredients are shown, and the rest are counted", func(t *testing.T) {
		o := apiorders.Order{
			Number: 1, Name: "big burger", Status: apiorders.Done,
			Ingredients: []string{
				"bun-1", "main-1", "main-1", "sauce-1", "main-1", "sauce-1", "main-1", "sauce-1", "bun-1",
			},
		}
		card := testee.OrderCard(o)
		assert.Len(t, card.Ingredients, storefront.CardIngredients)
		assert.Equal(t, 3, card.Remains)
		assert.Equal(t, 2*1255+4*424+3*90, card.Total)
		assert.Equal(t, "big burger", card.Name)
	})

	t.Run("unknown ingredients are skipped", func(t *testing.T) {
		card := testee.OrderCard(apiorders.Order{Ingredients: []string{"bun-1", "gone", "bun-1"}})
		assert.Len(t, card.Ingredients, 2)
		assert.Equal(t, 0, card.Remains)
		assert.Equal(t, 2510, card.Total)
	})
}

func TestOrderInfo(t *testing.T) {
	testee := withCatalog(t, bun, steak, sauce)
	info := testee.OrderInfo(apiorders.Order{
		Number: 7, Ingredients: []string{"bun-1", "main-1", "sauce-1", "main-1", "bun-1"},
	})

	require.Len(t, info.Lines, 3)
	assert.Equal(t, "bun-1", info.Lines[0].Id)
	assert.Equal(t, 2, info.Lines[0].Count)
	assert.Equal(t, "main-1", info.Lines[1].Id)
	assert.Equal(t, 2, info.Lines[1].Count)
	assert.Equal(t, "sauce-1", info.Lines[2].Id)
	assert.Equal(t, 1, info.Lines[2].Count)
	assert.Equal(t, 2934+424+90, info.Total)
}

func TestFeedBoard(t *testing.T) {
	client := mock.New(t)
	feed := apiorders.Feed{Total: 30000, TotalToday: 120}
	for n := range 25 {
		feed.Orders = append(feed.Orders, apiorders.Order{Number: 100 + n, Status: apiorders.Done})
	}
	feed.Orders = append(feed.Orders,
		apiorders.Order{Number: 200, Status: apiorders.Pending},
		apiorders.Order{Number: 201, Status: apiorders.Created},
	)
	client.Impl.GetFeed = func(context.Context) (apiorders.Feed, error) { return feed, nil }

	testee := build(client, storefront.Options{})
	_, err := testee.Orders.FetchFeed(context.Background())
	require.NoError(t, err)

	board := testee.FeedBoard()
	assert.Len(t, board.Done, storefront.BoardNumbers)
	assert.Equal(t, 100, board.Done[0])
	assert.Equal(t, []int{200}, board.Pending)
	assert.Equal(t, 30000, board.Total)
	assert.Equal(t, 120, board.TotalToday)
}
