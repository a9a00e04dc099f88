package idgen

import "github.com/oklog/ulid/v2"

// ULIDGenerator generates lexicographically sortable entry IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string. IDs made in the same millisecond still increase.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
