package profile

import (
	profile_update "github.com/stellarburgers/burger/cmd/burger/subcommands/profile/update"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	update, err := profile_update.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage your account.",
		struct{}{},
		flarc.WithSubcommand("update", update),
	)
}
