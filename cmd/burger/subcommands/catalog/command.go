package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Type string `flag:"type" alias:"t" metavar:"bun|main|sauce" help:"show only ingredients of this type."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show ingredients for burgers.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Show ingredients which can be put into burgers, as JSON.

Each ingredient has "_id". Use it to order burgers with "burger order place" or "burger shop".
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
		category := apiingr.Category(cl.Flags().Type)
		if category != "" && !category.Valid() {
			return errors.Join(
				flarc.ErrUsage,
				fmt.Errorf("--type should be one of bun, main or sauce: %s", category),
			)
		}

		if _, err := sf.Catalog.Fetch(ctx); err != nil {
			return err
		}

		items := sf.Catalog.Snapshot().Items
		if category != "" {
			items = sf.Catalog.ByCategory(category)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(items); err != nil {
			return err
		}
		logger.WithField("count", len(items)).Debug("ingredients are shown")
		return nil
	}
}
