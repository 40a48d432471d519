// Package hypermedia provides the core hypermedia model: links, representation
// models, media types and the strategy interfaces used to discover links,
// name relations and build links to exposed resources.
package hypermedia

import (
	"strings"
)

// MediaType is a MIME type without parameters, e.g. "application/hal+json"
type MediaType string

// Well known media types
const (
	// HALJSON is the media type of HAL documents
	HALJSON MediaType = "application/hal+json"
	// JSON is the plain JSON media type
	JSON MediaType = "application/json"
	// TextPlain is the plain text media type
	TextPlain MediaType = "text/plain"
	// All matches every media type
	All MediaType = "*/*"
)

// ParseMediaType normalizes a Content-Type or Accept entry, stripping
// parameters such as charset and q-values.
func ParseMediaType(value string) MediaType {
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	return MediaType(strings.ToLower(strings.TrimSpace(value)))
}

// String returns the media type as a string
func (m MediaType) String() string {
	return string(m)
}

// Type returns the primary type, e.g. "application"
func (m MediaType) Type() string {
	t, _ := m.split()
	return t
}

// Subtype returns the subtype, e.g. "hal+json"
func (m MediaType) Subtype() string {
	_, s := m.split()
	return s
}

// Suffix returns the structured syntax suffix of the subtype, e.g. "json" for
// "application/hal+json".
func (m MediaType) Suffix() string {
	s := m.Subtype()
	if i := strings.LastIndexByte(s, '+'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// IsWildcard reports whether the type or subtype contains a wildcard
func (m MediaType) IsWildcard() bool {
	t, s := m.split()
	return t == "*" || s == "*" || strings.HasPrefix(s, "*+")
}

// Includes reports whether m includes other. "*/*" includes everything,
// "application/*" includes every application type and "application/*+json"
// includes every JSON based application type.
func (m MediaType) Includes(other MediaType) bool {
	mt, ms := m.split()
	ot, os := other.split()

	if mt == "*" {
		return true
	}
	if mt != ot {
		return false
	}
	if ms == os || ms == "*" {
		return true
	}
	if strings.HasPrefix(ms, "*+") {
		suffix := ms[2:]
		return other.Suffix() == suffix || os == suffix
	}
	return false
}

// IsCompatibleWith reports whether either media type includes the other
func (m MediaType) IsCompatibleWith(other MediaType) bool {
	return m.Includes(other) || other.Includes(m)
}

func (m MediaType) split() (string, string) {
	parts := strings.SplitN(string(m), "/", 2)
	if len(parts) != 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
