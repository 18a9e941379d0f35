package common

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

type CommonFlags struct {
	Profile         string `flag:"profile" help:"burgerprofile name to use"`
	ProfileStore    string `flag:"profile-store" help:"path to burgerprofile store file"`
	Env             string `flag:"env" help:"path to burgerenv file"`
	Credentials     string `flag:"credentials" help:"path to the file keeping your login"`
	MetricsTextfile string `flag:"metrics-textfile" metavar:"PATH" help:"write metrics of API calls into the file, in textfile collector format"`
}

type commonFlagDetection struct {
	home string
}

type CommonFlagDetectionOption func(*commonFlagDetection) *commonFlagDetection

func WithHome(home string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.home = home
		return opt
	}
}

// Flags returns the default of CommonFlags for the directory from.
//
// .burgerprofile and burgerenv are searched from the directory to its ancestors.
// The profile store and credentials are in ~/.burger .
func Flags(from string, opt ...CommonFlagDetectionOption) (CommonFlags, error) {
	detparam := commonFlagDetection{
		home: "",
	}
	for _, o := range opt {
		detparam = *o(&detparam)
	}

	home := detparam.home
	if home == "" {
		_home, err := os.UserHomeDir()
		if err != nil {
			_home = ""
		}
		home = _home
	}

	if _from, err := filepath.Abs(from); err == nil {
		from = _from
	}

	profile := from

	profileFound := false
	envFound := false
	env := path.Join(from, "burgerenv")
	for searchpath := from; ; {
		if !profileFound {
			candidate := path.Join(searchpath, ".burgerprofile")
			if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
				_profile, err := os.ReadFile(candidate)
				if err != nil {
					return CommonFlags{}, err
				}
				profileFound = true
				if p := strings.Split(string(_profile), "\n"); 0 < len(p) {
					profile = strings.TrimSpace(p[0])
				}
			}
		}
		if !envFound {
			candidate := path.Join(searchpath, "burgerenv")
			if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
				envFound = true
				env = candidate
			}
		}

		if profileFound && envFound {
			break
		}

		next := path.Dir(searchpath)
		if next == searchpath {
			break
		}
		searchpath = next
	}

	return CommonFlags{
		Profile:      profile,
		ProfileStore: path.Join(home, ".burger", "profile"),
		Env:          env,
		Credentials:  path.Join(home, ".burger", "credentials"),
	}, nil
}
