package update

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/state/session"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name     string `flag:"name" alias:"n" help:"new name"`
	Email    string `flag:"email" alias:"e" help:"new email"`
	Password string `flag:"password" alias:"p" help:"new password"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Update your name, email or password.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Update your account.

Only changed fields are sent. When nothing is changed, the shop is not asked.
`),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *logrus.Entry,
		_ env.BurgerEnv,
		sf *storefront.Storefront,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		if err := sf.Session.Rehydrate(ctx); err != nil {
			logger.WithError(err).Debug("login is not recovered")
		}
		if !sf.Session.IsAuthenticated() {
			return common.NotLoggedIn()
		}

		flags := cl.Flags()
		user, err := sf.Session.UpdateProfile(ctx, session.ProfileForm{
			Name:     flags.Name,
			Email:    flags.Email,
			Password: flags.Password,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		return enc.Encode(user)
	}
}
