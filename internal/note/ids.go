package note

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator produces opaque note identifiers.
type IDGenerator interface {
	NewID() (string, error)
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() (string, error)

// NewID calls f.
func (f IDGeneratorFunc) NewID() (string, error) { return f() }

// UUIDGenerator returns random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

// ULIDGenerator returns lexically sortable ULIDs. IDs generated within the
// same millisecond are monotonically increasing.
type ULIDGenerator struct {
	mu      sync.Mutex
	clock   Clock
	entropy io.Reader
}

// NewULIDGenerator creates a ULID generator. A nil clock uses SystemClock.
func NewULIDGenerator(clock Clock) *ULIDGenerator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ULIDGenerator{
		clock:   clock,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewID returns a new ULID string.
func (g *ULIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(g.clock.Now()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return id.String(), nil
}

// NewGenerator returns the generator for a configured id format.
// Unknown formats fall back to UUIDs.
func NewGenerator(format string, clock Clock) IDGenerator {
	switch format {
	case "ulid":
		return NewULIDGenerator(clock)
	default:
		return UUIDGenerator{}
	}
}

// Clock reports the current time. Creation rejects times outside years
// 0000-9999 (see CheckDate).
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }
