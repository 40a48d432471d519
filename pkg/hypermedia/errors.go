package hypermedia

import "errors"

var (
	// ErrUnsupportedType is returned when a hypermedia type selector is not supported
	ErrUnsupportedType = errors.New("unsupported hypermedia type")

	// ErrLinkNotFound is returned when a representation has no link with the requested rel
	ErrLinkNotFound = errors.New("link not found")

	// ErrNoEntityLinks is returned when no EntityLinks supports the requested type
	ErrNoEntityLinks = errors.New("no entity links registered for type")

	// ErrInvalidLink is returned when a link cannot be built or expanded
	ErrInvalidLink = errors.New("invalid link")
)
