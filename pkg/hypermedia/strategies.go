package hypermedia

import "reflect"

// LinkDiscoverer finds links in a serialized representation
type LinkDiscoverer interface {
	// FindLinkWithRel returns the first link with the given rel or ErrLinkNotFound
	FindLinkWithRel(rel string, representation []byte) (Link, error)
	// FindLinksWithRel returns every link with the given rel, possibly none
	FindLinksWithRel(rel string, representation []byte) (Links, error)
}

// MediaTypeLinkDiscoverer is a LinkDiscoverer bound to the media types it understands
type MediaTypeLinkDiscoverer interface {
	LinkDiscoverer
	MediaTypes() []MediaType
}

// RelProvider names the relations under which entities of a type are exposed
type RelProvider interface {
	ItemResourceRelFor(t reflect.Type) string
	CollectionResourceRelFor(t reflect.Type) string
	Supports(t reflect.Type) bool
}

// RelationNamer is implemented by entity types that choose their own rels
type RelationNamer interface {
	ItemRel() string
	CollectionRel() string
}

// LinkBuilder builds links by appending path segments to a base URI
type LinkBuilder interface {
	Slash(segment any) LinkBuilder
	WithRel(rel string) Link
	WithSelfRel() Link
	String() string
}

// EntityLinks builds links to the resources exposing entity types
type EntityLinks interface {
	Supports(t reflect.Type) bool
	LinkFor(t reflect.Type, params map[string]string) (LinkBuilder, error)
	LinkToCollectionResource(t reflect.Type) (Link, error)
	LinkToItemResource(t reflect.Type, id any) (Link, error)
}
