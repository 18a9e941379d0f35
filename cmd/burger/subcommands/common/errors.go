package common

import (
	kerr "github.com/stellarburgers/burger/cmd/burger/errors"
	"github.com/stellarburgers/burger/cmd/burger/state/session"
)

const hintLogin = "Try `burger auth login`."

// NotLoggedIn is the error of commands which need a logged in user.
//
// It wraps session.ErrNotAuthenticated.
func NotLoggedIn() error {
	return kerr.NewCuiError(
		"You are not logged in.",
		kerr.WithHint(hintLogin),
		kerr.WithCause(session.ErrNotAuthenticated),
	)
}
