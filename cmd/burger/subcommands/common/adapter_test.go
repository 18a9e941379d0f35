package common_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/config/profiles"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/internal/commandline"
	"github.com/stellarburgers/burger/internal/testutils/fakeapi"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	"github.com/stellarburgers/burger/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func TestNewTask(t *testing.T) {
	bun := apiingr.Ingredient{Id: "bun-1", Name: "Crater bun", Type: apiingr.Bun, Price: 1255}

	setup := func(t *testing.T) (*fakeapi.Server, common.CommonFlags) {
		server := fakeapi.New(t, fakeapi.WithIngredients(bun))
		dir := t.TempDir()

		store := profiles.ProfileStore{"test": server.Profile()}
		if err := store.Save(filepath.Join(dir, "profile")); err != nil {
			t.Fatal(err)
		}
		envfile := filepath.Join(dir, "burgerenv")
		if err := os.WriteFile(envfile, []byte("policy:\n  keepCatalogOnError: true\nlog:\n  level: debug\n"), 0600); err != nil {
			t.Fatal(err)
		}

		return server, common.CommonFlags{
			Profile:         "test",
			ProfileStore:    filepath.Join(dir, "profile"),
			Env:             envfile,
			Credentials:     filepath.Join(dir, "credentials"),
			MetricsTextfile: filepath.Join(dir, "metrics.prom"),
		}
	}

	t.Run("it passes a storefront connected to the profile, and writes metrics", func(t *testing.T) {
		server, cf := setup(t)

		called := false
		testee := common.NewTask(func(
			ctx context.Context,
			logger *logrus.Entry,
			burgerEnv env.BurgerEnv,
			sf *storefront.Storefront,
			cl flarc.Commandline[struct{}],
			params []any,
		) error {
			called = true
			if !burgerEnv.Policy.KeepCatalogOnError {
				t.Errorf("burgerenv is not loaded: %+v", burgerEnv)
			}
			if logger.Logger.GetLevel() != logrus.DebugLevel {
				t.Errorf("log level is not applied: %s", logger.Logger.GetLevel())
			}
			if got, ok := common.CommonFlagsOf(params); !ok || got != cf {
				t.Errorf("common flags are not passed: %+v", got)
			}

			items, err := sf.Catalog.Fetch(ctx)
			if err != nil {
				return err
			}
			if len(items) != 1 || !items[0].Equal(bun) {
				t.Errorf("unexpected catalog: %+v", items)
			}
			return nil
		})

		stderr := new(strings.Builder)
		err := testee(
			context.Background(),
			commandline.MockCommandline[struct{}]{
				Fullname_: "burger test",
				Stdout_:   new(strings.Builder),
				Stderr_:   stderr,
			},
			[]any{cf},
		)
		if err != nil {
			t.Fatal(err)
		}
		if !called {
			t.Fatal("task is not called")
		}
		if server.Requests("GET /ingredients") != 1 {
			t.Errorf("unexpected requests: %d", server.Requests("GET /ingredients"))
		}
		if !strings.Contains(stderr.String(), "command=\"burger test\"") {
			t.Errorf("log should be tagged with the command: %s", stderr.String())
		}

		content := try.To(os.ReadFile(cf.MetricsTextfile)).OrFatal(t)
		if !strings.Contains(string(content), `burger_client_requests_total{code="200",method="get"} 1`) {
			t.Errorf("unexpected metrics:\n%s", content)
		}
	})

	t.Run("when the profile store is missing, it tells to init", func(t *testing.T) {
		_, cf := setup(t)
		cf.ProfileStore = filepath.Join(t.TempDir(), "missing")

		testee := common.NewTask(func(
			context.Context, *logrus.Entry, env.BurgerEnv, *storefront.Storefront,
			flarc.Commandline[struct{}], []any,
		) error {
			t.Error("task should not be called")
			return nil
		})

		err := testee(
			context.Background(),
			commandline.MockCommandline[struct{}]{Stderr_: new(strings.Builder)},
			[]any{cf},
		)
		if !errors.Is(err, profiles.ErrProfileStoreNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
		if !strings.Contains(err.Error(), "burger init") {
			t.Errorf("error should tell how to recover: %v", err)
		}
	})

	t.Run("when the profile is not in the store, it fails", func(t *testing.T) {
		_, cf := setup(t)
		cf.Profile = "other"

		testee := common.NewTask(func(
			context.Context, *logrus.Entry, env.BurgerEnv, *storefront.Storefront,
			flarc.Commandline[struct{}], []any,
		) error {
			t.Error("task should not be called")
			return nil
		})

		err := testee(
			context.Background(),
			commandline.MockCommandline[struct{}]{Stderr_: new(strings.Builder)},
			[]any{cf},
		)
		if err == nil || !strings.Contains(err.Error(), "'other'") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("without common flags, it is a programming error", func(t *testing.T) {
		testee := common.NewTaskWithCommonFlag(func(
			context.Context, *logrus.Entry, common.CommonFlags,
			flarc.Commandline[struct{}], []any,
		) error {
			t.Error("task should not be called")
			return nil
		})
		err := testee(
			context.Background(),
			commandline.MockCommandline[struct{}]{Stderr_: new(strings.Builder)},
			[]any{"something"},
		)
		if err == nil {
			t.Error("error is expected")
		}
	})
}
