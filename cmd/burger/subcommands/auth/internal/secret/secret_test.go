package secret_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stellarburgers/burger/cmd/burger/subcommands/auth/internal/secret"
)

func TestRead(t *testing.T) {
	for name, testcase := range map[string]struct {
		flag     string
		stdin    io.Reader
		expected string
		err      error
	}{
		"flag wins over stdin": {
			flag: "from-flag", stdin: strings.NewReader("from-stdin\n"), expected: "from-flag",
		},
		"without flag, the first line of stdin is read": {
			stdin: strings.NewReader("from-stdin\r\nsecond line\n"), expected: "from-stdin",
		},
		"stdin without newline is read": {
			stdin: strings.NewReader("no-newline"), expected: "no-newline",
		},
		"empty stdin is an error": {
			stdin: strings.NewReader(""), err: secret.ErrEmpty,
		},
		"nil stdin is an error": {
			err: secret.ErrEmpty,
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual, err := secret.Read(testcase.flag, testcase.stdin)
			if testcase.err != nil {
				if !errors.Is(err, testcase.err) {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if actual != testcase.expected {
				t.Errorf("(actual, expected) = (%s, %s)", actual, testcase.expected)
			}
		})
	}
}
