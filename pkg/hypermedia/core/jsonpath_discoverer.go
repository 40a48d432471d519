// Package core provides the default strategy implementations: the link
// discoverer registry, JSONPath based discovery, rel providers and the
// delegating facades that aggregate user supplied strategies.
package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/celestiaorg/hypermedia/internal/metrics"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// JSONPathLinkDiscoverer discovers links by evaluating a JSONPath expression.
// The path template receives the rel through a %q verb, e.g. `$._links[%q]`.
type JSONPathLinkDiscoverer struct {
	pathTemplate string
	mediaTypes   []hypermedia.MediaType
}

var _ hypermedia.MediaTypeLinkDiscoverer = (*JSONPathLinkDiscoverer)(nil)

// NewJSONPathLinkDiscoverer creates a discoverer for the given path template and media types
func NewJSONPathLinkDiscoverer(pathTemplate string, mediaTypes ...hypermedia.MediaType) *JSONPathLinkDiscoverer {
	return &JSONPathLinkDiscoverer{
		pathTemplate: pathTemplate,
		mediaTypes:   mediaTypes,
	}
}

// MediaTypes returns the media types the discoverer understands
func (d *JSONPathLinkDiscoverer) MediaTypes() []hypermedia.MediaType {
	return d.mediaTypes
}

// FindLinkWithRel returns the first link with the given rel
func (d *JSONPathLinkDiscoverer) FindLinkWithRel(rel string, representation []byte) (hypermedia.Link, error) {
	links, err := d.FindLinksWithRel(rel, representation)
	if err != nil {
		return hypermedia.Link{}, err
	}
	if len(links) == 0 {
		return hypermedia.Link{}, fmt.Errorf("%w: %q", hypermedia.ErrLinkNotFound, rel)
	}
	return links[0], nil
}

// FindLinksWithRel returns every link with the given rel
func (d *JSONPathLinkDiscoverer) FindLinksWithRel(rel string, representation []byte) (hypermedia.Links, error) {
	var doc any
	if err := json.Unmarshal(representation, &doc); err != nil {
		metrics.LinkDiscoveriesTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("representation is not valid JSON: %w", err)
	}

	// jsonpath reports absent members as errors, which for discovery just means no links
	value, err := jsonpath.Get(fmt.Sprintf(d.pathTemplate, rel), doc)
	if err != nil || value == nil {
		metrics.LinkDiscoveriesTotal.WithLabelValues(metrics.ResultMissing).Inc()
		return nil, nil
	}

	links, err := linksFromValue(rel, value)
	if err != nil {
		metrics.LinkDiscoveriesTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	if len(links) == 0 {
		metrics.LinkDiscoveriesTotal.WithLabelValues(metrics.ResultMissing).Inc()
	} else {
		metrics.LinkDiscoveriesTotal.WithLabelValues(metrics.ResultFound).Inc()
	}
	return links, nil
}

// linksFromValue converts the result of a JSONPath evaluation into links.
// Accepted shapes: an href string, a link object, or an array of either.
func linksFromValue(rel string, value any) (hypermedia.Links, error) {
	switch v := value.(type) {
	case string:
		return hypermedia.Links{hypermedia.NewLink(v, rel)}, nil
	case map[string]any:
		link, err := linkFromObject(rel, v)
		if err != nil {
			return nil, err
		}
		return hypermedia.Links{link}, nil
	case []any:
		var links hypermedia.Links
		for _, item := range v {
			found, err := linksFromValue(rel, item)
			if err != nil {
				return nil, err
			}
			links = append(links, found...)
		}
		return links, nil
	default:
		return nil, fmt.Errorf("%w: unexpected value %v for rel %q", hypermedia.ErrInvalidLink, value, rel)
	}
}

func linkFromObject(rel string, obj map[string]any) (hypermedia.Link, error) {
	href, ok := obj["href"].(string)
	if !ok || strings.TrimSpace(href) == "" {
		return hypermedia.Link{}, fmt.Errorf("%w: link object for rel %q has no href", hypermedia.ErrInvalidLink, rel)
	}

	link := hypermedia.NewLink(href, rel)
	if templated, ok := obj["templated"].(bool); ok {
		link.Templated = templated
	}
	link.Type = stringAttr(obj, "type")
	link.Deprecation = stringAttr(obj, "deprecation")
	link.Name = stringAttr(obj, "name")
	link.Profile = stringAttr(obj, "profile")
	link.Title = stringAttr(obj, "title")
	link.Hreflang = stringAttr(obj, "hreflang")
	return link, nil
}

func stringAttr(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
