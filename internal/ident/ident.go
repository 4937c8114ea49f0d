// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

// Package ident supplies the random identifiers the gateway hands out: proxy
// tokens, playlist serving ids and upstream cache-buster integers. Components
// take a Source so tests can substitute a deterministic Sequence.
package ident

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Source produces identifiers.
type Source interface {
	// Token returns a UUID v4 in canonical lower-case text form.
	Token() string
	// ServingID returns 32 lower-case hex characters.
	ServingID() string
	// Intn returns a non-negative integer below n.
	Intn(n int) int
}

// Random draws from google/uuid's crypto-backed v4 generator.
type Random struct{}

var _ Source = Random{}

// Token implements Source.
func (Random) Token() string {
	return uuid.NewString()
}

// ServingID implements Source.
func (Random) ServingID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Intn implements Source. It reduces the 62 random bits of the UUID's second
// half modulo n, so any positive int is a valid bound.
func (Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	id := uuid.New()
	bits := binary.BigEndian.Uint64(id[8:]) & (1<<62 - 1) // drop the variant bits
	return int(bits % uint64(n))
}

// Sequence is a deterministic Source for tests. Tokens are valid v4 UUIDs
// built from an incrementing counter.
type Sequence struct {
	mu sync.Mutex
	n  uint64
	// Int is returned by Intn, reduced modulo n.
	Int int
}

var _ Source = (*Sequence)(nil)

func (s *Sequence) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

// Token implements Source.
func (s *Sequence) Token() string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012x", s.next())
}

// ServingID implements Source.
func (s *Sequence) ServingID() string {
	return fmt.Sprintf("%032x", s.next())
}

// Intn implements Source.
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.Int % n
}
