package hypermedia

import "reflect"

// Representation is implemented by every value that carries hypermedia links
type Representation interface {
	Links() Links
}

// ContentHolder is implemented by models wrapping a single entity
type ContentHolder interface {
	Representation
	ContentValue() any
}

// ItemsHolder is implemented by models wrapping a collection of entities
type ItemsHolder interface {
	Representation
	ItemValues() []any
	ItemType() reflect.Type
}

// RepresentationModel holds links. Embed it in a struct to make the struct a
// Representation.
type RepresentationModel struct {
	links Links
}

// Add appends links to the model
func (m *RepresentationModel) Add(links ...Link) {
	m.links = append(m.links, links...)
}

// Links returns the links of the model
func (m *RepresentationModel) Links() Links {
	return m.links
}

// Link returns the first link with the given rel
func (m *RepresentationModel) Link(rel string) (Link, bool) {
	return m.links.Rel(rel)
}

// HasLink reports whether the model has a link with the given rel
func (m *RepresentationModel) HasLink(rel string) bool {
	return m.links.HasRel(rel)
}

// RemoveLinks drops all links
func (m *RepresentationModel) RemoveLinks() {
	m.links = nil
}

// EntityModel wraps a single entity together with its links
type EntityModel[T any] struct {
	RepresentationModel
	Content T
}

// NewEntityModel creates an entity model with the given content and links
func NewEntityModel[T any](content T, links ...Link) *EntityModel[T] {
	m := &EntityModel[T]{Content: content}
	m.Add(links...)
	return m
}

// ContentValue returns the wrapped entity
func (m *EntityModel[T]) ContentValue() any {
	return m.Content
}

// CollectionModel wraps a collection of entities together with its links
type CollectionModel[T any] struct {
	RepresentationModel
	Content []T
}

// NewCollectionModel creates a collection model with the given items and links
func NewCollectionModel[T any](content []T, links ...Link) *CollectionModel[T] {
	m := &CollectionModel[T]{Content: content}
	m.Add(links...)
	return m
}

// ItemValues returns the wrapped items
func (m *CollectionModel[T]) ItemValues() []any {
	values := make([]any, len(m.Content))
	for i, item := range m.Content {
		values[i] = item
	}
	return values
}

// ItemType returns the element type of the collection, unwrapping entity
// models so a collection of *EntityModel[Project] reports Project.
func (m *CollectionModel[T]) ItemType() reflect.Type {
	t := TypeOf[T]()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if content, ok := reflect.New(t).Interface().(ContentHolder); ok {
		return IndirectType(reflect.TypeOf(content.ContentValue()))
	}
	return t
}

// TypeOf returns the reflect.Type of T
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// IndirectType strips pointer indirections from t
func IndirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
