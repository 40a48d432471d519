package core

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// DelegatingEntityLinks forwards to the first delegate supporting a type
type DelegatingEntityLinks struct {
	delegates []hypermedia.EntityLinks
}

var _ hypermedia.EntityLinks = (*DelegatingEntityLinks)(nil)

// NewDelegatingEntityLinks creates a facade over zero or more EntityLinks
func NewDelegatingEntityLinks(delegates ...hypermedia.EntityLinks) *DelegatingEntityLinks {
	filtered := make([]hypermedia.EntityLinks, 0, len(delegates))
	for _, d := range delegates {
		if d != nil {
			filtered = append(filtered, d)
		}
	}
	return &DelegatingEntityLinks{delegates: filtered}
}

// Delegates returns the underlying EntityLinks in lookup order
func (d *DelegatingEntityLinks) Delegates() []hypermedia.EntityLinks {
	out := make([]hypermedia.EntityLinks, len(d.delegates))
	copy(out, d.delegates)
	return out
}

// Supports reports whether any delegate supports the type
func (d *DelegatingEntityLinks) Supports(t reflect.Type) bool {
	_, err := d.delegateFor(t)
	return err == nil
}

// LinkFor delegates to the first supporting delegate
func (d *DelegatingEntityLinks) LinkFor(t reflect.Type, params map[string]string) (hypermedia.LinkBuilder, error) {
	delegate, err := d.delegateFor(t)
	if err != nil {
		return nil, err
	}
	return delegate.LinkFor(t, params)
}

// LinkToCollectionResource delegates to the first supporting delegate
func (d *DelegatingEntityLinks) LinkToCollectionResource(t reflect.Type) (hypermedia.Link, error) {
	delegate, err := d.delegateFor(t)
	if err != nil {
		return hypermedia.Link{}, err
	}
	return delegate.LinkToCollectionResource(t)
}

// LinkToItemResource delegates to the first supporting delegate
func (d *DelegatingEntityLinks) LinkToItemResource(t reflect.Type, id any) (hypermedia.Link, error) {
	delegate, err := d.delegateFor(t)
	if err != nil {
		return hypermedia.Link{}, err
	}
	return delegate.LinkToItemResource(t, id)
}

func (d *DelegatingEntityLinks) delegateFor(t reflect.Type) (hypermedia.EntityLinks, error) {
	for _, delegate := range d.delegates {
		if delegate.Supports(t) {
			return delegate, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", hypermedia.ErrNoEntityLinks, hypermedia.IndirectType(t))
}

// RouteLookup resolves named routes. *fiber.App implements it.
type RouteLookup interface {
	GetRoute(name string) fiber.Route
}

// RouteEntityLinks builds links to entity types exposed by named Fiber routes.
// Routes are resolved when links are built, so resources may be exposed
// before their routes are registered.
type RouteEntityLinks struct {
	routes  RouteLookup
	baseURL string

	mu      sync.RWMutex
	exposed map[reflect.Type]string
}

var _ hypermedia.EntityLinks = (*RouteEntityLinks)(nil)

// NewRouteEntityLinks creates entity links resolving routes through lookup.
// Links are prefixed with baseURL, which may be empty for relative links.
func NewRouteEntityLinks(lookup RouteLookup, baseURL string) *RouteEntityLinks {
	return &RouteEntityLinks{
		routes:  lookup,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		exposed: make(map[reflect.Type]string),
	}
}

// ExposeResource declares that the collection of entity type t is served by
// the named route. Item resources live one path segment below it.
func (e *RouteEntityLinks) ExposeResource(t reflect.Type, routeName string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exposed[hypermedia.IndirectType(t)] = routeName
}

// Supports reports whether the type has been exposed
func (e *RouteEntityLinks) Supports(t reflect.Type) bool {
	_, ok := e.routeName(t)
	return ok
}

// LinkFor returns a builder rooted at the collection route of the type,
// substituting route parameters from params.
func (e *RouteEntityLinks) LinkFor(t reflect.Type, params map[string]string) (hypermedia.LinkBuilder, error) {
	name, ok := e.routeName(t)
	if !ok {
		return nil, fmt.Errorf("%w: %v", hypermedia.ErrNoEntityLinks, hypermedia.IndirectType(t))
	}

	route := e.routes.GetRoute(name)
	if route.Path == "" {
		return nil, fmt.Errorf("%w: route %q is not registered", hypermedia.ErrInvalidLink, name)
	}

	path, err := expandRoute(route.Path, params)
	if err != nil {
		return nil, err
	}

	return NewLinkBuilder(e.baseURL + path), nil
}

// LinkToCollectionResource returns a self link to the collection resource
func (e *RouteEntityLinks) LinkToCollectionResource(t reflect.Type) (hypermedia.Link, error) {
	builder, err := e.LinkFor(t, nil)
	if err != nil {
		return hypermedia.Link{}, err
	}
	return builder.WithSelfRel(), nil
}

// LinkToItemResource returns a self link to the item resource with the given id
func (e *RouteEntityLinks) LinkToItemResource(t reflect.Type, id any) (hypermedia.Link, error) {
	builder, err := e.LinkFor(t, nil)
	if err != nil {
		return hypermedia.Link{}, err
	}
	return builder.Slash(id).WithSelfRel(), nil
}

func (e *RouteEntityLinks) routeName(t reflect.Type) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	name, ok := e.exposed[hypermedia.IndirectType(t)]
	return name, ok
}

// expandRoute replaces :param segments with values from params and trims the
// trailing slash of group roots.
func expandRoute(path string, params map[string]string) (string, error) {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(segment, ":"), "?")
		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("%w: missing value for route parameter %q in %s", hypermedia.ErrInvalidLink, name, path)
		}
		segments[i] = url.PathEscape(value)
	}

	expanded := strings.Join(segments, "/")
	if len(expanded) > 1 {
		expanded = strings.TrimSuffix(expanded, "/")
	}
	return expanded, nil
}

// linkBuilder is an immutable href under construction
type linkBuilder struct {
	href string
}

// NewLinkBuilder creates a builder starting at href
func NewLinkBuilder(href string) hypermedia.LinkBuilder {
	return linkBuilder{href: href}
}

// Slash appends an escaped path segment
func (b linkBuilder) Slash(segment any) hypermedia.LinkBuilder {
	s := strings.Trim(fmt.Sprint(segment), "/")
	if s == "" {
		return b
	}
	return linkBuilder{href: strings.TrimSuffix(b.href, "/") + "/" + url.PathEscape(s)}
}

// WithRel creates a link with the given rel
func (b linkBuilder) WithRel(rel string) hypermedia.Link {
	return hypermedia.NewLink(b.href, rel)
}

// WithSelfRel creates a self link
func (b linkBuilder) WithSelfRel() hypermedia.Link {
	return b.WithRel(hypermedia.RelSelf)
}

// String returns the href built so far
func (b linkBuilder) String() string {
	return b.href
}
