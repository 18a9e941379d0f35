// Package idgen provides generators of synthetic identities.
//
// Identities from one Generator never collide within the process lifetime.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

type Generator interface {
	Next() string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() string

func (f GeneratorFunc) Next() string {
	return f()
}

type uuidGenerator struct{}

// UUID returns a Generator of random (version 4) UUIDs.
func UUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) Next() string {
	return uuid.NewString()
}

// Counter is a process-local, monotonically increasing Generator.
//
// It is deterministic, so tests can predict identities.
type Counter struct {
	prefix string
	n      atomic.Uint64
}

func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

func (c *Counter) Next() string {
	return c.prefix + strconv.FormatUint(c.n.Add(1), 10)
}
