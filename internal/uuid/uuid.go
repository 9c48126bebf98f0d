// Package uuid hands out identifiers behind an interface so tests can pin them
package uuid

//go:generate mockgen -destination=mock/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"github.com/google/uuid"
)

// Generator produces identifiers
type Generator interface {
	New() string
}

type googleGenerator struct{}

// NewGenerator returns a Generator issuing random version 4 UUIDs
func NewGenerator() Generator {
	return googleGenerator{}
}

func (googleGenerator) New() string {
	return uuid.NewString()
}

// Valid reports whether s parses as a UUID
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
