package hal

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// Document is a decoded HAL resource
type Document struct {
	Links      hypermedia.Links
	Embedded   map[string][]json.RawMessage
	Properties map[string]json.RawMessage
}

// Decode parses a HAL document. Link rels are kept as written, so curied rels
// stay in their compact form.
func Decode(data []byte) (*Document, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("error decoding HAL document: %w", err)
	}

	doc := &Document{
		Embedded:   make(map[string][]json.RawMessage),
		Properties: make(map[string]json.RawMessage),
	}

	for key, value := range members {
		switch key {
		case LinksKey:
			links, err := decodeLinks(value)
			if err != nil {
				return nil, err
			}
			doc.Links = links
		case EmbeddedKey:
			embedded, err := decodeEmbedded(value)
			if err != nil {
				return nil, err
			}
			doc.Embedded = embedded
		default:
			doc.Properties[key] = value
		}
	}

	return doc, nil
}

// Link returns the first link with the given rel
func (d *Document) Link(rel string) (hypermedia.Link, bool) {
	return d.Links.Rel(rel)
}

// Unmarshal decodes the document properties into v
func (d *Document) Unmarshal(v any) error {
	data, err := json.Marshal(d.Properties)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// EmbeddedDocuments decodes the resources embedded under rel
func (d *Document) EmbeddedDocuments(rel string) ([]*Document, error) {
	raw := d.Embedded[rel]
	docs := make([]*Document, 0, len(raw))
	for i, item := range raw {
		doc, err := Decode(item)
		if err != nil {
			return nil, fmt.Errorf("error decoding embedded %q[%d]: %w", rel, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeLinks(data json.RawMessage) (hypermedia.Links, error) {
	var byRel map[string]json.RawMessage
	if err := json.Unmarshal(data, &byRel); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", LinksKey, err)
	}

	var links hypermedia.Links
	for _, rel := range sortedKeys(byRel) {
		group, err := decodeLinkGroup(byRel[rel])
		if err != nil {
			return nil, fmt.Errorf("error decoding links for rel %q: %w", rel, err)
		}
		for _, link := range group {
			if link.Href == "" {
				return nil, fmt.Errorf("%w: rel %q has no href", hypermedia.ErrInvalidLink, rel)
			}
			links = append(links, link.WithRel(rel))
		}
	}
	return links, nil
}

func decodeLinkGroup(data json.RawMessage) ([]hypermedia.Link, error) {
	var single hypermedia.Link
	if err := json.Unmarshal(data, &single); err == nil {
		return []hypermedia.Link{single}, nil
	}
	var many []hypermedia.Link
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, err
	}
	return many, nil
}

func decodeEmbedded(data json.RawMessage) (map[string][]json.RawMessage, error) {
	var byRel map[string]json.RawMessage
	if err := json.Unmarshal(data, &byRel); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", EmbeddedKey, err)
	}

	embedded := make(map[string][]json.RawMessage, len(byRel))
	for rel, value := range byRel {
		var many []json.RawMessage
		if err := json.Unmarshal(value, &many); err != nil {
			// a single embedded resource
			many = []json.RawMessage{value}
		}
		embedded[rel] = many
	}
	return embedded, nil
}

// sortedKeys gives a stable order, as JSON objects carry none once decoded
func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
