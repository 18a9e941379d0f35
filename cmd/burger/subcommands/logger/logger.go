package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

func Null() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func Default() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}
