package services

import (
	"github.com/google/uuid"

	"github.com/tallybook/tallybook/internal/core/domain"
)

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// NewUUIDGenerator returns the production IDGenerator backed by random UUIDs.
// Tests substitute deterministic generators through the same interface.
func NewUUIDGenerator() domain.IDGenerator {
	return uuidGenerator{}
}
