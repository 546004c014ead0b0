package domain

import "errors"

// ErrTemplatePayloadMissing is returned when a template has no embedded workflow document to import.
var ErrTemplatePayloadMissing = errors.New("template has no embedded workflow data")

// ErrTemplateNotFound is returned when a template ID is not present in the index.
var ErrTemplateNotFound = errors.New("template not found")

// ErrMemoryNotFound is returned when a memory key is missing or has expired.
var ErrMemoryNotFound = errors.New("memory entry not found")

// ErrInvalidTTL is returned for a lifetime in seconds that is negative or
// does not fit in a time.Duration.
var ErrInvalidTTL = errors.New("ttl seconds out of range")

// ErrStepNotFound is returned by plan review operations for unknown step IDs.
var ErrStepNotFound = errors.New("step not found")
