package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/config/credentials"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
	"github.com/stellarburgers/burger/pkg/cmp"
	"github.com/stellarburgers/burger/pkg/utils/retry"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Follow   bool   `flag:"follow" alias:"f" help:"keep watching your orders until interrupted"`
	Interval string `flag:"interval" alias:"i" metavar:"DURATION" help:"interval to check orders with --follow, like 10s or 1m"`
}

// Watch returns a context which is done when the file at path is changed.
type Watch func(ctx context.Context, path string) (context.Context, func(), error)

type Option struct {
	watch Watch
}

func WithWatch(w Watch) func(*Option) *Option {
	return func(o *Option) *Option {
		o.watch = w
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	opt := &Option{watch: credentials.UntilModified}
	for _, o := range options {
		opt = o(opt)
	}

	return flarc.NewCommand(
		"Show orders you placed.",
		Flags{
			Follow:   false,
			Interval: "10s",
		},
		flarc.Args{},
		common.NewTask(Task(opt.watch)),
		flarc.WithDescription(`
Show orders you placed, newest first, as JSON lines.

With --follow, your orders are checked in each --interval, and shown again when changed.
When you log in or out in another terminal, it follows the change.
`),
	)
}

func Task(watch Watch) common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *logrus.Entry,
		_ env.BurgerEnv,
		sf *storefront.Storefront,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		interval, err := time.ParseDuration(flags.Interval)
		if flags.Follow && (err != nil || interval <= 0) {
			return errors.Join(flarc.ErrUsage, fmt.Errorf("--interval should be a positive duration: %s", flags.Interval))
		}

		if err := sf.Start(ctx); err != nil {
			logger.WithError(err).Warn("ingredients are not available. prices are not shown")
		}
		if !sf.Session.IsAuthenticated() {
			return common.NotLoggedIn()
		}

		enc := json.NewEncoder(cl.Stdout())
		var shown []apiorders.Order
		show := func() error {
			found, err := sf.Orders.FetchUserOrders(ctx)
			if err != nil {
				return err
			}
			if shown != nil && cmp.SliceEqWith(shown, found, apiorders.Order.Equal) {
				return nil
			}
			shown = found
			cards := make([]storefront.OrderCard, 0, len(found))
			for _, o := range found {
				cards = append(cards, sf.OrderCard(o))
			}
			return enc.Encode(cards)
		}

		if err := show(); err != nil {
			return err
		}
		if !flags.Follow {
			return nil
		}

		path := ""
		if cf, ok := common.CommonFlagsOf(params); ok {
			path = cf.Credentials
		}
		for {
			updated, stop, err := watch(ctx, path)
			if err != nil {
				return err
			}
			err = retry.StaticBackoff(interval)(updated)
			stop()

			if ctx.Err() != nil {
				return nil
			}
			if err != nil {
				logger.WithField("cause", context.Cause(updated)).Info("credentials are changed")
				if err := sf.Session.Rehydrate(ctx); err != nil {
					logger.WithError(err).Debug("login is not recovered")
				}
				if !sf.Session.IsAuthenticated() {
					return common.NotLoggedIn()
				}
				shown = nil
			}

			if err := show(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}
