package core

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// DefaultRelProvider names item rels after the type with a lower-case first
// letter and collection rels by appending "List".
type DefaultRelProvider struct{}

var _ hypermedia.RelProvider = DefaultRelProvider{}

// ItemResourceRelFor returns e.g. "project" for Project
func (DefaultRelProvider) ItemResourceRelFor(t reflect.Type) string {
	return uncapitalize(typeName(t))
}

// CollectionResourceRelFor returns e.g. "projectList" for Project
func (p DefaultRelProvider) CollectionResourceRelFor(t reflect.Type) string {
	return p.ItemResourceRelFor(t) + "List"
}

// Supports reports true for every type
func (DefaultRelProvider) Supports(reflect.Type) bool {
	return true
}

// InflectorRelProvider pluralizes collection rels, e.g. "projects" for Project
type InflectorRelProvider struct {
	DefaultRelProvider
}

var _ hypermedia.RelProvider = InflectorRelProvider{}

// CollectionResourceRelFor returns the plural of the item rel
func (p InflectorRelProvider) CollectionResourceRelFor(t reflect.Type) string {
	return inflection.Plural(p.ItemResourceRelFor(t))
}

// NamedRelProvider serves types implementing hypermedia.RelationNamer
type NamedRelProvider struct{}

var _ hypermedia.RelProvider = NamedRelProvider{}

var relationNamerType = hypermedia.TypeOf[hypermedia.RelationNamer]()

// Supports reports whether the type or a pointer to it names its own rels
func (NamedRelProvider) Supports(t reflect.Type) bool {
	_, ok := namer(t)
	return ok
}

// ItemResourceRelFor returns the rel chosen by the type
func (NamedRelProvider) ItemResourceRelFor(t reflect.Type) string {
	if n, ok := namer(t); ok {
		return n.ItemRel()
	}
	return ""
}

// CollectionResourceRelFor returns the collection rel chosen by the type
func (NamedRelProvider) CollectionResourceRelFor(t reflect.Type) string {
	if n, ok := namer(t); ok {
		return n.CollectionRel()
	}
	return ""
}

func namer(t reflect.Type) (hypermedia.RelationNamer, bool) {
	t = hypermedia.IndirectType(t)
	if t == nil {
		return nil, false
	}
	if t.Implements(relationNamerType) {
		n, ok := reflect.Zero(t).Interface().(hypermedia.RelationNamer)
		return n, ok
	}
	if reflect.PointerTo(t).Implements(relationNamerType) {
		n, ok := reflect.New(t).Interface().(hypermedia.RelationNamer)
		return n, ok
	}
	return nil, false
}

// DelegatingRelProvider forwards to the first provider supporting a type
type DelegatingRelProvider struct {
	providers []hypermedia.RelProvider
}

var _ hypermedia.RelProvider = (*DelegatingRelProvider)(nil)

// NewDelegatingRelProvider creates a facade over the providers, consulted in order
func NewDelegatingRelProvider(providers ...hypermedia.RelProvider) *DelegatingRelProvider {
	filtered := make([]hypermedia.RelProvider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	return &DelegatingRelProvider{providers: filtered}
}

// Providers returns the delegates in lookup order
func (d *DelegatingRelProvider) Providers() []hypermedia.RelProvider {
	out := make([]hypermedia.RelProvider, len(d.providers))
	copy(out, d.providers)
	return out
}

// ItemResourceRelFor delegates to the first supporting provider
func (d *DelegatingRelProvider) ItemResourceRelFor(t reflect.Type) string {
	if p := d.providerFor(t); p != nil {
		return p.ItemResourceRelFor(t)
	}
	return ""
}

// CollectionResourceRelFor delegates to the first supporting provider
func (d *DelegatingRelProvider) CollectionResourceRelFor(t reflect.Type) string {
	if p := d.providerFor(t); p != nil {
		return p.CollectionResourceRelFor(t)
	}
	return ""
}

// Supports reports whether any delegate supports the type
func (d *DelegatingRelProvider) Supports(t reflect.Type) bool {
	return d.providerFor(t) != nil
}

func (d *DelegatingRelProvider) providerFor(t reflect.Type) hypermedia.RelProvider {
	for _, p := range d.providers {
		if p.Supports(t) {
			return p
		}
	}
	return nil
}

func typeName(t reflect.Type) string {
	t = hypermedia.IndirectType(t)
	if t == nil {
		return ""
	}
	name := t.Name()
	// instantiated generic types carry their type arguments, e.g. Page[pkg.Item]
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		name = t.Kind().String()
	}
	return name
}

func uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
