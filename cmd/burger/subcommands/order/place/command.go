package place

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/youta-t/flarc"
)

const (
	ARG_BUN   = "BUN_ID"
	ARG_ITEMS = "ITEM_ID"
)

var ErrUnknownIngredient = errors.New("unknown ingredient")

// Receipt is printed when an order is placed.
type Receipt struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Price  int    `json:"price"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Order a burger.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_BUN, Required: true,
				Help: "Id of the bun. It is put on the top and the bottom.",
			},
			{
				Name: ARG_ITEMS, Required: false, Repeatable: true,
				Help: "Ids of fillings and sauces, from the top. Repeat an Id to put it twice.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Order a burger made of the bun and the other ingredients.

You need to log in with "burger auth login" before.
Ids of ingredients are shown by "burger catalog".

Example
-------

	{{ .Command }} bun-1 main-1 main-1 sauce-1
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
		args := cl.Args()

		if err := sf.Start(ctx); err != nil {
			return fmt.Errorf("ingredients are not available: %w", err)
		}

		bun, ok := sf.Catalog.Lookup(args[ARG_BUN][0])
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownIngredient, args[ARG_BUN][0])
		}
		if !bun.IsBun() {
			return errors.Join(flarc.ErrUsage, fmt.Errorf("%s is not a bun but %s", bun.Id, bun.Type))
		}
		sf.Builder.Add(bun)

		for _, id := range args[ARG_ITEMS] {
			item, ok := sf.Catalog.Lookup(id)
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownIngredient, id)
			}
			if item.IsBun() {
				return errors.Join(flarc.ErrUsage, fmt.Errorf("%s is a bun. Give a bun only once, as %s", id, ARG_BUN))
			}
			sf.Builder.Add(item)
		}

		price := sf.Price()
		placement, err := sf.PlaceOrder(ctx)
		if err != nil {
			return err
		}
		logger.WithField("number", placement.Number).Info("order is placed")

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		return enc.Encode(Receipt{Number: placement.Number, Name: placement.Name, Price: price})
	}
}
