// Package id provides entity identifier generation.
package id

import "github.com/google/uuid"

// UUIDGenerator mints random UUID identifiers.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator { return UUIDGenerator{} }

func (UUIDGenerator) NewID() string { return uuid.NewString() }
