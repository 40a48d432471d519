package core

import (
	"fmt"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// LinkDiscoverers maps media types to the discoverer able to read them. It is
// populated on construction and read-only afterwards, so concurrent lookups
// are safe.
type LinkDiscoverers struct {
	byMediaType map[hypermedia.MediaType]hypermedia.LinkDiscoverer
	order       []hypermedia.MediaType
}

// NewLinkDiscoverers creates a registry from the given discoverers. Every
// media type may be claimed by a single discoverer only.
func NewLinkDiscoverers(discoverers ...hypermedia.MediaTypeLinkDiscoverer) (*LinkDiscoverers, error) {
	registry := &LinkDiscoverers{
		byMediaType: make(map[hypermedia.MediaType]hypermedia.LinkDiscoverer),
	}

	for _, d := range discoverers {
		if d == nil {
			return nil, fmt.Errorf("link discoverer cannot be nil")
		}
		for _, mt := range d.MediaTypes() {
			mt = hypermedia.ParseMediaType(string(mt))
			if _, exists := registry.byMediaType[mt]; exists {
				return nil, fmt.Errorf("duplicate link discoverer for media type %s", mt)
			}
			registry.byMediaType[mt] = d
			registry.order = append(registry.order, mt)
		}
	}

	return registry, nil
}

// LinkDiscovererFor returns the discoverer registered for the media type.
// Exact keys win; otherwise the first registered key compatible with a
// wildcard request (e.g. application/*+json) is used.
func (r *LinkDiscoverers) LinkDiscovererFor(mt hypermedia.MediaType) (hypermedia.LinkDiscoverer, bool) {
	mt = hypermedia.ParseMediaType(string(mt))
	if d, ok := r.byMediaType[mt]; ok {
		return d, true
	}
	if !mt.IsWildcard() {
		return nil, false
	}
	for _, key := range r.order {
		if mt.Includes(key) {
			return r.byMediaType[key], true
		}
	}
	return nil, false
}

// LinkDiscovererForContentType parses a Content-Type header value and
// returns the matching discoverer.
func (r *LinkDiscoverers) LinkDiscovererForContentType(contentType string) (hypermedia.LinkDiscoverer, bool) {
	return r.LinkDiscovererFor(hypermedia.ParseMediaType(contentType))
}

// MediaTypes lists the registered media types in registration order
func (r *LinkDiscoverers) MediaTypes() []hypermedia.MediaType {
	out := make([]hypermedia.MediaType, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered media types
func (r *LinkDiscoverers) Len() int {
	return len(r.order)
}
