// Package converter provides the message converters handler adapters use to
// read request bodies and write response representations.
package converter

import (
	"io"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// Converter reads and writes values for a set of media types
type Converter interface {
	// Name identifies the converter in logs and metrics
	Name() string
	// SupportedMediaTypes lists the media types the converter handles, which may contain wildcards
	SupportedMediaTypes() []hypermedia.MediaType
	// CanRead reports whether a body of the given media type can be read into v
	CanRead(v any, mt hypermedia.MediaType) bool
	// CanWrite reports whether v can be written as the given media type
	CanWrite(v any, mt hypermedia.MediaType) bool
	// Read decodes body into v
	Read(body []byte, v any) error
	// Write encodes v to w
	Write(w io.Writer, v any) error
}

// Supports reports whether any of the supported media types is compatible with mt
func Supports(supported []hypermedia.MediaType, mt hypermedia.MediaType) bool {
	if mt == "" {
		return true
	}
	mt = hypermedia.ParseMediaType(string(mt))
	for _, s := range supported {
		if s.IsCompatibleWith(mt) {
			return true
		}
	}
	return false
}

// ConcreteMediaTypes returns the supported media types without wildcards,
// the ones a converter can announce in a Content-Type header.
func ConcreteMediaTypes(c Converter) []hypermedia.MediaType {
	var out []hypermedia.MediaType
	for _, mt := range c.SupportedMediaTypes() {
		if !mt.IsWildcard() {
			out = append(out, mt)
		}
	}
	return out
}

// Contains reports whether list holds c
func Contains(list []Converter, c Converter) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}

// ContainsAll reports whether list holds every converter of subset
func ContainsAll(list, subset []Converter) bool {
	for _, c := range subset {
		if !Contains(list, c) {
			return false
		}
	}
	return true
}

// IndexOfType returns the position of the first converter of type T, or -1
func IndexOfType[T Converter](list []Converter) int {
	for i, c := range list {
		if _, ok := c.(T); ok {
			return i
		}
	}
	return -1
}
