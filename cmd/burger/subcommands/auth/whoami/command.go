package whoami

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the user logged in.",
		struct{}{},
		flarc.Args{},
		common.NewTask(Task()),
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
		if err := sf.Session.Rehydrate(ctx); err != nil {
			logger.WithError(err).Debug("login is not recovered")
		}
		user, ok := sf.Session.User()
		if !ok {
			return common.NotLoggedIn()
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		return enc.Encode(user)
	}
}
