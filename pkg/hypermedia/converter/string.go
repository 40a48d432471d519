package converter

import (
	"fmt"
	"io"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// StringConverter reads and writes text/plain strings
type StringConverter struct{}

var _ Converter = (*StringConverter)(nil)

// NewString creates a text/plain converter
func NewString() *StringConverter {
	return &StringConverter{}
}

// Name returns "string"
func (c *StringConverter) Name() string {
	return "string"
}

// SupportedMediaTypes returns text/plain and */*
func (c *StringConverter) SupportedMediaTypes() []hypermedia.MediaType {
	return []hypermedia.MediaType{hypermedia.TextPlain, hypermedia.All}
}

// CanRead reports whether v is a *string or *[]byte
func (c *StringConverter) CanRead(v any, mt hypermedia.MediaType) bool {
	switch v.(type) {
	case *string, *[]byte:
		return Supports(c.SupportedMediaTypes(), mt)
	default:
		return false
	}
}

// CanWrite reports whether v is textual
func (c *StringConverter) CanWrite(v any, mt hypermedia.MediaType) bool {
	switch v.(type) {
	case string, []byte, fmt.Stringer:
		return Supports(c.SupportedMediaTypes(), mt)
	default:
		return false
	}
}

// Read stores body into a *string or *[]byte
func (c *StringConverter) Read(body []byte, v any) error {
	switch target := v.(type) {
	case *string:
		*target = string(body)
	case *[]byte:
		*target = append((*target)[:0], body...)
	default:
		return fmt.Errorf("cannot read text/plain into %T", v)
	}
	return nil
}

// Write writes the textual value
func (c *StringConverter) Write(w io.Writer, v any) error {
	var err error
	switch value := v.(type) {
	case string:
		_, err = io.WriteString(w, value)
	case []byte:
		_, err = w.Write(value)
	case fmt.Stringer:
		_, err = io.WriteString(w, value.String())
	default:
		return fmt.Errorf("cannot write %T as text/plain", v)
	}
	return err
}
