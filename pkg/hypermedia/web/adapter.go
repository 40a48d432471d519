// Package web provides the handler adapters that turn handler results into
// negotiated representations. RouteAdapter serves Fiber handlers,
// LegacyAdapter serves net/http handlers mounted into Fiber.
package web

import (
	"sync"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/converter"
)

// Negotiation failure reasons reported to metrics
const (
	reasonNotAcceptable        = "not_acceptable"
	reasonNotWritable          = "not_writable"
	reasonUnsupportedMediaType = "unsupported_media_type"
)

// Error messages
const (
	ErrMsgNotWritable = "no message converter can write a value of type %T"
	ErrMsgBadBody     = "error reading request body: %v"
)

// HandlerAdapter owns an ordered list of message converters. Converters
// earlier in the list win when several can serve a request.
type HandlerAdapter interface {
	MessageConverters() []converter.Converter
	SetMessageConverters(converters []converter.Converter)
}

// DefaultConverters returns the converters an adapter starts with
func DefaultConverters() []converter.Converter {
	return []converter.Converter{converter.NewString(), converter.NewJSON()}
}

// converterList is a copy-on-write converter list shared by both adapters
type converterList struct {
	mu         sync.RWMutex
	converters []converter.Converter
}

// reset installs converters, falling back to the defaults when empty
func (l *converterList) reset(converters []converter.Converter) {
	if len(converters) == 0 {
		converters = DefaultConverters()
	}
	l.SetMessageConverters(converters)
}

// MessageConverters returns a copy of the converter list
func (l *converterList) MessageConverters() []converter.Converter {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyConverters(l.converters)
}

// SetMessageConverters replaces the converter list with a copy of converters
func (l *converterList) SetMessageConverters(converters []converter.Converter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.converters = copyConverters(converters)
}

func copyConverters(converters []converter.Converter) []converter.Converter {
	out := make([]converter.Converter, len(converters))
	copy(out, converters)
	return out
}

// offers lists the concrete media types the converters can write v as, in
// converter order and without duplicates.
func offers(converters []converter.Converter, v any) []string {
	var out []string
	seen := make(map[hypermedia.MediaType]bool)
	for _, c := range converters {
		for _, mt := range converter.ConcreteMediaTypes(c) {
			if seen[mt] || !c.CanWrite(v, mt) {
				continue
			}
			seen[mt] = true
			out = append(out, mt.String())
		}
	}
	return out
}

// writerFor returns the first converter able to write v as mt
func writerFor(converters []converter.Converter, v any, mt hypermedia.MediaType) converter.Converter {
	for _, c := range converters {
		if c.CanWrite(v, mt) {
			return c
		}
	}
	return nil
}

// readerFor returns the first converter able to read mt into v
func readerFor(converters []converter.Converter, v any, mt hypermedia.MediaType) converter.Converter {
	for _, c := range converters {
		if c.CanRead(v, mt) {
			return c
		}
	}
	return nil
}
