package order

import (
	order_history "github.com/stellarburgers/burger/cmd/burger/subcommands/order/history"
	order_place "github.com/stellarburgers/burger/cmd/burger/subcommands/order/place"
	order_show "github.com/stellarburgers/burger/cmd/burger/subcommands/order/show"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	place, err := order_place.New()
	if err != nil {
		return nil, err
	}
	show, err := order_show.New()
	if err != nil {
		return nil, err
	}
	history, err := order_history.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Order burgers, and look them up.",
		struct{}{},
		flarc.WithSubcommand("place", place),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("history", history),
	)
}
