package hal

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2/utils"

	"github.com/celestiaorg/hypermedia/internal/jsonutil"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/core"
)

// Reserved HAL members
const (
	LinksKey    = "_links"
	EmbeddedKey = "_embedded"
)

// fallbackCollectionRel is used when no rel provider names the item type
const fallbackCollectionRel = "content"

// EncoderOptions configures an Encoder
type EncoderOptions struct {
	// RelProvider names embedded collections. Defaults to core.DefaultRelProvider.
	RelProvider hypermedia.RelProvider
	// CurieProvider namespaces custom rels. Optional.
	CurieProvider CurieProvider
	// JSONEncoder encodes entity content. Defaults to encoding/json.
	JSONEncoder utils.JSONMarshal
}

// Encoder renders representation models as HAL documents
type Encoder struct {
	relProvider   hypermedia.RelProvider
	curieProvider CurieProvider
	encode        utils.JSONMarshal
}

// NewEncoder creates an encoder with the given options
func NewEncoder(opts EncoderOptions) *Encoder {
	if opts.RelProvider == nil {
		opts.RelProvider = core.DefaultRelProvider{}
	}
	if opts.JSONEncoder == nil {
		opts.JSONEncoder = json.Marshal
	}
	return &Encoder{
		relProvider:   opts.RelProvider,
		curieProvider: opts.CurieProvider,
		encode:        opts.JSONEncoder,
	}
}

// Marshal renders v as HAL. Values that are not representation models are
// encoded as plain JSON.
func Marshal(v any) ([]byte, error) {
	return NewEncoder(EncoderOptions{}).Marshal(v)
}

// Marshal renders v as HAL
func (e *Encoder) Marshal(v any) ([]byte, error) {
	switch model := v.(type) {
	case hypermedia.ItemsHolder:
		return e.marshalCollection(model)
	case hypermedia.ContentHolder:
		return e.marshalEntity(model)
	case hypermedia.Representation:
		return e.marshalRepresentation(model)
	default:
		return e.encode(v)
	}
}

func (e *Encoder) marshalCollection(model hypermedia.ItemsHolder) ([]byte, error) {
	var fields []jsonutil.Field

	items := model.ItemValues()
	if len(items) > 0 {
		rendered := make([]json.RawMessage, len(items))
		for i, item := range items {
			data, err := e.Marshal(item)
			if err != nil {
				return nil, fmt.Errorf("error encoding embedded item %d: %w", i, err)
			}
			rendered[i] = data
		}

		list, err := json.Marshal(rendered)
		if err != nil {
			return nil, err
		}
		embedded, err := jsonutil.Object(jsonutil.Field{Key: e.collectionRel(model), Value: list})
		if err != nil {
			return nil, err
		}
		fields = append(fields, jsonutil.Field{Key: EmbeddedKey, Value: embedded})
	}

	links, err := e.renderLinks(model.Links())
	if err != nil {
		return nil, err
	}
	if links != nil {
		fields = append(fields, jsonutil.Field{Key: LinksKey, Value: links})
	}

	return jsonutil.Object(fields...)
}

func (e *Encoder) marshalEntity(model hypermedia.ContentHolder) ([]byte, error) {
	content, err := e.Marshal(model.ContentValue())
	if err != nil {
		return nil, fmt.Errorf("error encoding entity content: %w", err)
	}

	links, err := e.renderLinks(model.Links())
	if err != nil {
		return nil, err
	}

	if !jsonutil.IsObject(content) {
		fields := []jsonutil.Field{{Key: fallbackCollectionRel, Value: content}}
		if links != nil {
			fields = append(fields, jsonutil.Field{Key: LinksKey, Value: links})
		}
		return jsonutil.Object(fields...)
	}
	if links == nil {
		return content, nil
	}
	return jsonutil.MergeObject(content, jsonutil.Field{Key: LinksKey, Value: links})
}

func (e *Encoder) marshalRepresentation(model hypermedia.Representation) ([]byte, error) {
	content, err := e.encode(model)
	if err != nil {
		return nil, fmt.Errorf("error encoding representation: %w", err)
	}

	links, err := e.renderLinks(model.Links())
	if err != nil {
		return nil, err
	}
	if links == nil {
		return content, nil
	}
	return jsonutil.MergeObject(content, jsonutil.Field{Key: LinksKey, Value: links})
}

func (e *Encoder) collectionRel(model hypermedia.ItemsHolder) string {
	rel := e.relProvider.CollectionResourceRelFor(model.ItemType())
	if rel == "" {
		rel = fallbackCollectionRel
	}
	return e.namespaced(rel)
}

// renderLinks renders the _links object: one member per rel in first-seen
// order, a single object for single links and an array otherwise. Returns
// nil when there are no links.
func (e *Encoder) renderLinks(links hypermedia.Links) (json.RawMessage, error) {
	if len(links) == 0 {
		return nil, nil
	}

	var fields []jsonutil.Field
	curied := false

	for _, rel := range links.Rels() {
		group := links.AllRel(rel)
		name := e.namespaced(rel)
		if name != rel {
			curied = true
		}

		var value any = group[0]
		if len(group) > 1 {
			value = []hypermedia.Link(group)
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("error encoding links for rel %q: %w", rel, err)
		}
		fields = append(fields, jsonutil.Field{Key: name, Value: data})
	}

	if curied {
		curies, err := json.Marshal([]hypermedia.Link(e.curieProvider.Curies()))
		if err != nil {
			return nil, fmt.Errorf("error encoding curies: %w", err)
		}
		fields = append([]jsonutil.Field{{Key: curiesRel, Value: curies}}, fields...)
	}

	return jsonutil.Object(fields...)
}

func (e *Encoder) namespaced(rel string) string {
	if e.curieProvider == nil {
		return rel
	}
	return e.curieProvider.NamespacedRelFor(rel)
}
