package hal

import (
	"strings"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// curiesRel is the reserved rel listing curie definitions
const curiesRel = "curies"

// CurieProvider shortens custom rels into compact URIs
type CurieProvider interface {
	// NamespacedRelFor returns the rel as rendered in documents
	NamespacedRelFor(rel string) string
	// Curies returns the curie definitions to render alongside namespaced rels
	Curies() hypermedia.Links
}

// DefaultCurieProvider prefixes every non-IANA rel with a single curie
type DefaultCurieProvider struct {
	name string
	href string
}

var _ CurieProvider = (*DefaultCurieProvider)(nil)

// NewDefaultCurieProvider creates a provider for the curie name and URI
// template, e.g. "ex" and "https://example.com/rels/{rel}".
func NewDefaultCurieProvider(name, href string) *DefaultCurieProvider {
	return &DefaultCurieProvider{name: name, href: href}
}

// NamespacedRelFor prefixes custom rels that are not already namespaced
func (p *DefaultCurieProvider) NamespacedRelFor(rel string) string {
	if rel == curiesRel || hypermedia.IsIANARel(rel) || strings.Contains(rel, ":") {
		return rel
	}
	return p.name + ":" + rel
}

// Curies returns the single curie definition
func (p *DefaultCurieProvider) Curies() hypermedia.Links {
	link := hypermedia.NewLink(p.href, curiesRel)
	link.Name = p.name
	link.Templated = true
	return hypermedia.Links{link}
}
