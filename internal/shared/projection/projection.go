package projection

import "time"

// Metadata holds the persistence timestamps of a stored aggregate.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Created returns metadata for a record inserted at t.
func Created(t time.Time) Metadata {
	return Metadata{CreatedAt: t, UpdatedAt: t}
}

// Touch moves UpdatedAt forward to t.
func (m *Metadata) Touch(t time.Time) {
	if t.After(m.UpdatedAt) {
		m.UpdatedAt = t
	}
}

// Projection pairs an aggregate with the timestamps its store recorded.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// Of builds a projection.
func Of[T any](entity T, metadata Metadata) *Projection[T] {
	return &Projection[T]{Entity: entity, Metadata: metadata}
}
