package hypermedia

import (
	"fmt"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// Link relations registered with IANA that are used throughout the library
const (
	RelSelf       = "self"
	RelFirst      = "first"
	RelPrev       = "prev"
	RelNext       = "next"
	RelLast       = "last"
	RelCollection = "collection"
	RelItem       = "item"
	RelProfile    = "profile"
)

var ianaRels = map[string]struct{}{
	"about": {}, "alternate": {}, "appendix": {}, "archives": {}, "author": {},
	"bookmark": {}, "canonical": {}, "chapter": {}, "collection": {}, "contents": {},
	"copyright": {}, "create-form": {}, "current": {}, "describedby": {}, "describes": {},
	"disclosure": {}, "duplicate": {}, "edit": {}, "edit-form": {}, "edit-media": {},
	"enclosure": {}, "first": {}, "glossary": {}, "help": {}, "hosts": {}, "hub": {},
	"icon": {}, "index": {}, "item": {}, "last": {}, "latest-version": {}, "license": {},
	"lrdd": {}, "memento": {}, "monitor": {}, "monitor-group": {}, "next": {},
	"next-archive": {}, "nofollow": {}, "noreferrer": {}, "original": {}, "payment": {},
	"predecessor-version": {}, "prefetch": {}, "prev": {}, "preview": {}, "previous": {},
	"prev-archive": {}, "privacy-policy": {}, "profile": {}, "related": {}, "replies": {},
	"search": {}, "section": {}, "self": {}, "service": {}, "start": {}, "stylesheet": {},
	"subsection": {}, "successor-version": {}, "tag": {}, "terms-of-service": {}, "timegate": {},
	"timemap": {}, "type": {}, "up": {}, "version-history": {}, "via": {},
	"working-copy": {}, "working-copy-of": {},
}

// IsIANARel reports whether rel is a relation registered with IANA
func IsIANARel(rel string) bool {
	_, ok := ianaRels[strings.ToLower(rel)]
	return ok
}

// Link is a hypermedia link with its relation and optional HAL attributes
type Link struct {
	Rel         string `json:"-"`
	Href        string `json:"href"`
	Templated   bool   `json:"templated,omitempty"`
	Type        string `json:"type,omitempty"`
	Deprecation string `json:"deprecation,omitempty"`
	Name        string `json:"name,omitempty"`
	Profile     string `json:"profile,omitempty"`
	Title       string `json:"title,omitempty"`
	Hreflang    string `json:"hreflang,omitempty"`
}

// NewLink creates a link with the given href and rel. Hrefs that parse as a
// URI template with at least one variable are marked as templated.
func NewLink(href, rel string) Link {
	tmpl, err := uritemplate.New(href)
	return Link{
		Rel:       rel,
		Href:      href,
		Templated: err == nil && len(tmpl.Varnames()) > 0,
	}
}

// WithRel returns a copy of the link with a different rel
func (l Link) WithRel(rel string) Link {
	l.Rel = rel
	return l
}

// WithSelfRel returns a copy of the link with the self rel
func (l Link) WithSelfRel() Link {
	return l.WithRel(RelSelf)
}

// Variables returns the names of the URI template variables of the link.
// Hrefs that are not valid templates have none.
func (l Link) Variables() []string {
	tmpl, err := uritemplate.New(l.Href)
	if err != nil {
		return nil
	}
	return tmpl.Varnames()
}

// Expand expands the RFC 6570 URI template of the link with the given
// variables. Variables without a value are dropped.
func (l Link) Expand(vars map[string]string) (Link, error) {
	if !l.Templated {
		return l, nil
	}

	tmpl, err := uritemplate.New(l.Href)
	if err != nil {
		return l, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	values := uritemplate.Values{}
	for name, value := range vars {
		values.Set(name, uritemplate.String(value))
	}
	href, err := tmpl.Expand(values)
	if err != nil {
		return l, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	l.Href = href
	l.Templated = false
	return l, nil
}

// String renders the link in the RFC 8288 header format
func (l Link) String() string {
	return fmt.Sprintf("<%s>;rel=%q", l.Href, l.Rel)
}

// Links is an ordered list of links
type Links []Link

// Rel returns the first link with the given rel
func (ls Links) Rel(rel string) (Link, bool) {
	for _, l := range ls {
		if l.Rel == rel {
			return l, true
		}
	}
	return Link{}, false
}

// AllRel returns every link with the given rel
func (ls Links) AllRel(rel string) Links {
	var out Links
	for _, l := range ls {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// HasRel reports whether a link with the given rel is present
func (ls Links) HasRel(rel string) bool {
	_, ok := ls.Rel(rel)
	return ok
}

// Rels returns the distinct rels in first-seen order
func (ls Links) Rels() []string {
	seen := make(map[string]struct{}, len(ls))
	rels := make([]string, 0, len(ls))
	for _, l := range ls {
		if _, ok := seen[l.Rel]; ok {
			continue
		}
		seen[l.Rel] = struct{}{}
		rels = append(rels, l.Rel)
	}
	return rels
}
