package main

import (
	"context"
	"os"
	"os/signal"
	"path"

	"github.com/stellarburgers/burger/cmd/burger/subcommands/auth"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/catalog"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/feed"
	subinit "github.com/stellarburgers/burger/cmd/burger/subcommands/init"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/logger"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/order"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/profile"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/shop"
	subver "github.com/stellarburgers/burger/cmd/burger/subcommands/version"
	"github.com/stellarburgers/burger/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	logger := logger.Default().WithField("command", path.Base(os.Args[0]))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	catalog := try.To(catalog.New()).OrFatal(logger)
	auth := try.To(auth.New()).OrFatal(logger)
	profile := try.To(profile.New()).OrFatal(logger)
	order := try.To(order.New()).OrFatal(logger)
	feed := try.To(feed.New()).OrFatal(logger)
	shop := try.To(shop.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	burger := try.To(
		flarc.NewCommandGroup(
			"Stellar Burgers command line interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("catalog", catalog),
			flarc.WithSubcommand("auth", auth),
			flarc.WithSubcommand("profile", profile),
			flarc.WithSubcommand("order", order),
			flarc.WithSubcommand("feed", feed),
			flarc.WithSubcommand("shop", shop),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, burger, flarc.WithHelp(true)))
}
