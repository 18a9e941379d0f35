package feed

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/youta-t/flarc"
	"golang.org/x/sync/errgroup"
)

// Feed is printed by this command.
type Feed struct {
	Board  storefront.FeedBoard   `json:"board"`
	Orders []storefront.OrderCard `json:"orders"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show recent orders of everyone.",
		struct{}{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Show recent orders of everyone in the shop, as JSON.

"board" has numbers of done and pending orders, and how many orders are placed.
"orders" has the orders, newest first.
`),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *logrus.Entry,
		_ env.BurgerEnv,
		sf *storefront.Storefront,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		eg, gctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			_, err := sf.Catalog.Fetch(gctx)
			return err
		})
		eg.Go(func() error {
			_, err := sf.Orders.FetchFeed(gctx)
			return err
		})
		if err := eg.Wait(); err != nil {
			return err
		}

		orders := sf.Orders.Snapshot().Feed.Orders
		feed := Feed{
			Board:  sf.FeedBoard(),
			Orders: make([]storefront.OrderCard, 0, len(orders)),
		}
		for _, o := range orders {
			feed.Orders = append(feed.Orders, sf.OrderCard(o))
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		return enc.Encode(feed)
	}
}
