// Package ident abstracts unique identifier generation so stores and
// services can be tested with deterministic ids.
package ident

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator produces a new opaque unique identifier.
type Generator interface {
	NewID() string
}

// UUID generates random (v4) UUIDs from the runtime's cryptographic
// source, falling back to a timestamp-based id when that source fails.
type UUID struct {
	counter atomic.Uint64
}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return g.fallbackID()
	}

	return id.String()
}

// fallbackID is non-cryptographic: epoch milliseconds plus a process-local
// counter and a random suffix. Unique within a single process, which is the
// only writer.
func (g *UUID) fallbackID() string {
	return fmt.Sprintf("%d-%d-%04d", time.Now().UnixMilli(), g.counter.Add(1), rand.Intn(10000))
}

// Func adapts a plain function to the Generator interface.
type Func func() string

func (f Func) NewID() string { return f() }
