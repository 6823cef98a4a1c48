package arbitrary

import (
	"fmt"

	"github.com/google/uuid"
)

var byteDomain = IntDomain{Min: 0, Max: 255}

// backendReader adapts a Backend to io.Reader, one byte per integer draw.
type backendReader struct {
	b Backend
}

func (r backendReader) Read(p []byte) (int, error) {
	for i := range p {
		v := r.b.DrawInt(byteDomain)
		if !byteDomain.Contains(v) {
			return i, fmt.Errorf("%w: byte %d", ErrBackendContract, v)
		}
		p[i] = byte(v)
	}
	return len(p), nil
}

// UUIDGenerator draws version 4 UUIDs using the backend as entropy, so a
// seeded backend yields a reproducible sequence.
type UUIDGenerator struct {
	reader backendReader
	raw    rawSlot
}

// UUIDs returns a random UUID generator. A nil backend uses DefaultBackend.
func UUIDs(b Backend) *UUIDGenerator {
	return &UUIDGenerator{reader: backendReader{b: orDefault(b)}}
}

// Sample draws one UUID.
func (g *UUIDGenerator) Sample() (uuid.UUID, error) {
	id, err := uuid.NewRandomFromReader(g.reader)
	if err != nil {
		return uuid.Nil, err
	}
	g.raw.store(id)
	return id, nil
}

// RawValue returns the last drawn UUID, or nil before the first draw.
func (g *UUIDGenerator) RawValue() any { return g.raw.load() }

// Fixed always reports false.
func (g *UUIDGenerator) Fixed() bool { return false }
