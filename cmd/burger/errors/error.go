package errors

import "strings"

type Verbose interface {
	Verbose() string
}

// CUIError is an error to be shown to the user of the burger command.
//
// Error() is a short message, followed by a hint line when there is one.
// Verbose() adds the request and the chain of causes for debugging.
type CUIError interface {
	error
	Verbose
}

type cuierror struct {
	summary string
	hint    string
	verbose string
	base    error
}

func (ce *cuierror) Unwrap() error {
	return ce.base
}

func (ce *cuierror) Error() string {
	if ce.hint == "" {
		return ce.summary
	}
	return ce.summary + "\n" + ce.hint
}

func (ce *cuierror) Verbose() string {
	message := []string{ce.Error()}
	if ce.verbose != "" {
		message = append(message, "("+ce.verbose+")")
	}

	switch base := ce.base.(type) {
	case nil:
	case Verbose:
		message = append(message, "caused by: "+base.Verbose())
	default:
		message = append(message, "caused by: "+base.Error())
	}
	return strings.Join(message, "\n")
}

type CuiErrorOption func(cerr *cuierror) *cuierror

func NewCuiError(summary string, options ...CuiErrorOption) CUIError {
	err := &cuierror{summary: summary}
	for _, o := range options {
		err = o(err)
	}
	return err
}

// WithHint tells the user what to do next.
func WithHint(hint string) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.hint = hint
		return cerr
	}
}

// WithVerbose adds a note shown only in Verbose().
func WithVerbose(verbose string) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.verbose = verbose
		return cerr
	}
}

// WithCause makes the error wrap err.
func WithCause(err error) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.base = err
		return cerr
	}
}
