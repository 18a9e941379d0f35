package logout

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Log out from the burger shop.",
		struct{}{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Log out from the burger shop.

Your login is removed from the credentials file even if the shop does not respond.
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
		if err := sf.Session.Logout(ctx); err != nil {
			logger.WithError(err).Warn("the shop could not be told, but your login is removed")
			return err
		}
		_, err := fmt.Fprintln(cl.Stdout(), "logged out")
		return err
	}
}
