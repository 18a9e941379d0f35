package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/youta-t/flarc"
	"golang.org/x/sync/errgroup"
)

const ARG_NUMBER = "NUMBER"

var ErrOrderNotFound = errors.New("order is not found")

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the order of the number.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_NUMBER, Required: true,
				Help: "number of the order, which is shown when the order is placed.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Show the order of the number, with its ingredients and the price.

Orders of anyone can be shown. Login is not needed.
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
		arg := cl.Args()[ARG_NUMBER][0]
		number, err := strconv.Atoi(arg)
		if err != nil || number <= 0 {
			return errors.Join(flarc.ErrUsage, fmt.Errorf("%s should be a positive number: %s", ARG_NUMBER, arg))
		}

		eg, gctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			_, err := sf.Catalog.Fetch(gctx)
			return err
		})
		eg.Go(func() error {
			_, err := sf.Orders.FetchOrderByNumber(gctx, number)
			return err
		})
		if err := eg.Wait(); err != nil {
			return err
		}

		found := sf.Orders.Snapshot().OrderByNumber
		if found == nil {
			return fmt.Errorf("%w: #%d", ErrOrderNotFound, number)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		return enc.Encode(sf.OrderInfo(*found))
	}
}
