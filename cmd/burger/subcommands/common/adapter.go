package common

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/config/credentials"
	"github.com/stellarburgers/burger/cmd/burger/config/profiles"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/rest"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/youta-t/flarc"
)

type BurgerTaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *logrus.Entry,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

// NewLogger returns a logger writing to w, tagged with the command name.
func NewLogger(w io.Writer, command string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l.WithField("command", command)
}

func NewTaskWithCommonFlag[T any](task BurgerTaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		return task(
			ctx,
			NewLogger(cl.Stderr(), cl.Fullname()),
			commonFlag,
			cl,
			newpos,
		)
	}
}

// Task is a body of a command working with the storefront.
//
// The storefront is not started. Tasks load what they need.
// params carries the CommonFlags of the invocation, see CommonFlagsOf.
type Task[T any] func(
	ctx context.Context,
	logger *logrus.Entry,
	burgerEnv env.BurgerEnv,
	sf *storefront.Storefront,
	cl flarc.Commandline[T],
	params []any,
) error

// CommonFlagsOf finds CommonFlags in params of Task.
func CommonFlagsOf(params []any) (CommonFlags, bool) {
	for _, p := range params {
		if cf, ok := p.(CommonFlags); ok {
			return cf, true
		}
	}
	return CommonFlags{}, false
}

func NewTask[T any](task Task[T]) flarc.Task[T] {

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *logrus.Entry,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		profile, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
		if err != nil {
			if errors.Is(err, profiles.ErrProfileStoreNotFound) {
				return fmt.Errorf(
					"%w: burgerprofile store (%s) is not found. Please try `burger init` first",
					err, commonFlag.ProfileStore,
				)
			}
			return fmt.Errorf(
				"%w: failed to load burgerprofile store (%s)",
				err, commonFlag.ProfileStore,
			)
		}
		prof, ok := profile[commonFlag.Profile]
		if !ok {
			return fmt.Errorf(
				"profile '%s' not found in the profile store (%s)",
				commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		e, err := env.LoadBurgerEnv(commonFlag.Env)
		if err != nil {
			return fmt.Errorf("%w: failed to load burgerenv", err)
		}
		if lv, err := e.LogLevel(); err == nil {
			logger.Logger.SetLevel(lv)
		}

		reg := prometheus.NewRegistry()
		sf, err := storefront.Dial(
			prof,
			credentials.NewFileStore(commonFlag.Credentials, commonFlag.Profile),
			credentials.NewMemoryStore(),
			storefront.Options{
				ClearBuilderOnPlacement: e.Policy.ClearBuilderOnPlacement,
				KeepCatalogOnError:      e.Policy.KeepCatalogOnError,
				OnLoginRequired: func() {
					fmt.Fprintln(cl.Stderr(), "Login is expired.", hintLogin)
				},
				Logger: logger,
			},
			rest.WithMetrics(reg),
		)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to create burger client. Your burgerprofile (%s in %s) can be broken.\n\nRemove it and try `burger init` again",
				err, commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		taskErr := task(ctx, logger, *e, sf, cl, append(params, commonFlag))

		if commonFlag.MetricsTextfile != "" {
			if err := prometheus.WriteToTextfile(commonFlag.MetricsTextfile, reg); err != nil {
				logger.WithError(err).Warn("failed to write metrics")
			}
		}
		return taskErr
	})
}
