package init

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"

	prof "github.com/stellarburgers/burger/cmd/burger/config/profiles"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
)

const ARG_BURGER_PROFILE_FILE = "BURGER_PROFILE_FILE"

type Option struct {
	workdir string
}

// WithWorkdir sets the directory where .burgerprofile is written. Default is the current directory.
func WithWorkdir(dir string) func(*Option) *Option {
	return func(o *Option) *Option {
		o.workdir = dir
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	opt := &Option{workdir: "."}
	for _, o := range options {
		opt = o(opt)
	}

	return flarc.NewCommand(
		"Initialize this directory to order burgers from the API.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_BURGER_PROFILE_FILE, Required: true,
				Help: "filepath to burgerprofile file, which tells where the API is.",
			},
		},
		common.NewTaskWithCommonFlag(Task(opt.workdir)),
		flarc.WithDescription(`
Register a new burgerprofile into your profile store.

"burgerprofile" is a YAML file which tells where the burger API is, like

	apiRoot: https://norma.nomoreparties.space/api

"{{ .Command }}" registers the given burgerprofile into your profile store,
and makes this directory use it.

The name of the profile is given by "--profile" ( default: current filepath ).
`),
	)
}

func Task(workdir string) common.BurgerTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *logrus.Entry,
		cf common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		profFile := cl.Args()[ARG_BURGER_PROFILE_FILE][0]

		profStore, err := prof.LoadProfileStore(cf.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			// ok.
			profStore = prof.ProfileStore{}
		} else if err != nil {
			return fmt.Errorf("failed to load profile store (%s): %w", cf.ProfileStore, err)
		}

		newProf := new(prof.Profile)
		{
			content, err := os.ReadFile(profFile)
			if err != nil {
				return fmt.Errorf("failed to read profile file (%s): %w", profFile, err)
			}
			if err := yaml.Unmarshal(content, newProf); err != nil {
				return fmt.Errorf("failed to parse profile file (%s): %w", profFile, err)
			}
		}
		if err := newProf.Verify(); err != nil {
			return fmt.Errorf("%s: %w", profFile, err)
		}

		profName := cf.Profile
		profStore[profName] = newProf
		if err := profStore.Save(cf.ProfileStore); err != nil {
			return fmt.Errorf("failed to save profile store (%s): %w", cf.ProfileStore, err)
		}
		logger.WithField("profile", profName).Infof("profile is saved to %s", cf.ProfileStore)

		dotfile := filepath.Join(workdir, ".burgerprofile")
		if err := os.WriteFile(dotfile, []byte(profName), os.FileMode(0600)); err != nil {
			return fmt.Errorf("failed to write %s: %w", dotfile, err)
		}
		return nil
	}
}
