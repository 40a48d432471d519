package hypermedia

import (
	"encoding/json"
	"fmt"

	"github.com/celestiaorg/hypermedia/internal/jsonutil"
)

// plainLink is the rendering of a link in plain application/json documents
type plainLink struct {
	Rel string `json:"rel"`
	Link
}

// PlainLinks renders links in the plain JSON form: [{"rel":"self","href":"..."}]
func PlainLinks(links Links) []any {
	out := make([]any, len(links))
	for i, l := range links {
		out[i] = plainLink{Rel: l.Rel, Link: l}
	}
	return out
}

// MarshalJSON renders the entity for plain JSON clients: the content members
// followed by a "links" array. Non-object content is nested under "content".
func (m *EntityModel[T]) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(m.Content)
	if err != nil {
		return nil, fmt.Errorf("error encoding entity content: %w", err)
	}
	links, err := json.Marshal(PlainLinks(m.links))
	if err != nil {
		return nil, fmt.Errorf("error encoding links: %w", err)
	}

	if !jsonutil.IsObject(content) {
		return jsonutil.Object(
			jsonutil.Field{Key: "content", Value: content},
			jsonutil.Field{Key: "links", Value: links},
		)
	}
	return jsonutil.MergeObject(content, jsonutil.Field{Key: "links", Value: links})
}

// MarshalJSON renders the collection for plain JSON clients as
// {"links":[...],"content":[...]}.
func (m *CollectionModel[T]) MarshalJSON() ([]byte, error) {
	items := m.Content
	if items == nil {
		items = []T{}
	}
	content, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("error encoding collection content: %w", err)
	}
	links, err := json.Marshal(PlainLinks(m.links))
	if err != nil {
		return nil, fmt.Errorf("error encoding links: %w", err)
	}
	return jsonutil.Object(
		jsonutil.Field{Key: "links", Value: links},
		jsonutil.Field{Key: "content", Value: content},
	)
}
