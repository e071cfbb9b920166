package graph

import "errors"

// Sentinel errors for graph construction and lookup.
var (
	// ErrDuplicateName is returned when a vertex name is registered twice.
	ErrDuplicateName = errors.New("graph: duplicate vertex name")

	// ErrUnknownVertex is returned when an edge references an unregistered identity.
	ErrUnknownVertex = errors.New("graph: unknown vertex")

	// ErrUnknownName is returned when a lookup references a name never registered.
	ErrUnknownName = errors.New("graph: unknown name")

	// ErrUnknownIdentity is returned when a lookup references an identity never assigned.
	ErrUnknownIdentity = errors.New("graph: unknown identity")

	// ErrFrozen is returned when a frozen store is asked to change.
	ErrFrozen = errors.New("graph: store is frozen")

	// ErrTooManyVertices is returned once the identity space is exhausted.
	ErrTooManyVertices = errors.New("graph: too many vertices")
)
