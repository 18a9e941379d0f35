package secret

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var ErrEmpty = errors.New("password is empty")

// Read returns flag when it is not empty. Otherwise, it reads the first line of stdin.
func Read(flag string, stdin io.Reader) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if stdin == nil {
		return "", ErrEmpty
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", ErrEmpty
	}
	return line, nil
}
