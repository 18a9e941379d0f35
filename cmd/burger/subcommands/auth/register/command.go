package register

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
	Name     string `flag:"name" alias:"n" help:"your name"`
	Email    string `flag:"email" alias:"e" help:"email of the new account"`
	Password string `flag:"password" alias:"p" help:"password of the new account. When omitted, it is read from stdin."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create an account of the burger shop, and log in.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
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
		if flags.Name == "" || flags.Email == "" {
			return errors.Join(flarc.ErrUsage, errors.New("--name and --email are required"))
		}
		password, err := secret.Read(flags.Password, cl.Stdin())
		if err != nil {
			return errors.Join(flarc.ErrUsage, err)
		}

		user, err := sf.Session.Register(ctx, flags.Name, flags.Email, password)
		if err != nil {
			return err
		}
		logger.WithField("email", user.Email).Debug("registered")
		_, err = fmt.Fprintf(cl.Stdout(), "welcome, %s <%s>\n", user.Name, user.Email)
		return err
	}
}
