package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/auth/internal/secret"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Email    string `flag:"email" alias:"e" help:"email of your account"`
	Password string `flag:"password" alias:"p" help:"password of your account. When omitted, it is read from stdin."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Log in to the burger shop.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Log in to the burger shop with email and password.

Your login is kept in the credentials file (see --credentials),
and other burger commands use it until "burger auth logout".

Example
-------

	echo "$PASSWORD" | {{ .Command }} --email you@example.com
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
		flags := cl.Flags()
		if flags.Email == "" {
			return errors.Join(flarc.ErrUsage, errors.New("--email is required"))
		}
		password, err := secret.Read(flags.Password, cl.Stdin())
		if err != nil {
			return errors.Join(flarc.ErrUsage, err)
		}

		user, err := sf.Session.Login(ctx, flags.Email, password)
		if err != nil {
			return err
		}
		logger.WithField("email", user.Email).Debug("logged in")
		_, err = fmt.Fprintf(cl.Stdout(), "logged in as %s <%s>\n", user.Name, user.Email)
		return err
	}
}
