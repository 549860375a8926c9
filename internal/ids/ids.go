// Package ids hands out record identifiers.
package ids

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator returns a fresh identifier on every call. Identifiers are never
// reused for the lifetime of the generator.
type Generator interface {
	NextID() string
}

// ErrUnknownKind is returned by New for an unsupported generator name.
var ErrUnknownKind = errors.New("unknown id generator")

// Kinds lists the names accepted by New.
var Kinds = []string{"counter", "ulid", "uuid"}

// New builds a generator by name.
func New(kind string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "counter":
		return &Counter{}, nil
	case "", "ulid":
		return NewULID(time.Now, rand.Reader), nil
	case "uuid":
		return UUID{}, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownKind, kind, strings.Join(Kinds, ", "))
}

// Counter yields "1", "2", "3", ...
type Counter struct {
	n uint64
}

func (c *Counter) NextID() string {
	c.n++
	return strconv.FormatUint(c.n, 10)
}

// ULID yields lexically sortable, time-derived identifiers. Identifiers
// minted within the same millisecond still increase.
type ULID struct {
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewULID returns a ULID generator reading time from now and randomness
// from r.
func NewULID(now func() time.Time, r io.Reader) *ULID {
	return &ULID{now: now, entropy: ulid.Monotonic(r, 0)}
}

func (g *ULID) NextID() string {
	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		// only on entropy exhaustion within one millisecond
		return ulid.Make().String()
	}
	return id.String()
}

// UUID yields version 7 UUIDs.
type UUID struct{}

func (UUID) NextID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
