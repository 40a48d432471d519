package converter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2/utils"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// JSONConverter reads and writes application/json and JSON based media types
type JSONConverter struct {
	encoder    utils.JSONMarshal
	decoder    utils.JSONUnmarshal
	mediaTypes []hypermedia.MediaType
}

var _ Converter = (*JSONConverter)(nil)

// NewJSON creates a JSON converter using encoding/json
func NewJSON() *JSONConverter {
	return NewJSONWithCodec(json.Marshal, json.Unmarshal)
}

// NewJSONWithCodec creates a JSON converter with a custom codec, e.g. the
// JSONEncoder and JSONDecoder of a fiber.Config.
func NewJSONWithCodec(encoder utils.JSONMarshal, decoder utils.JSONUnmarshal) *JSONConverter {
	if encoder == nil {
		encoder = json.Marshal
	}
	if decoder == nil {
		decoder = json.Unmarshal
	}
	return &JSONConverter{
		encoder:    encoder,
		decoder:    decoder,
		mediaTypes: []hypermedia.MediaType{hypermedia.JSON, "application/*+json"},
	}
}

// Name returns "json"
func (c *JSONConverter) Name() string {
	return "json"
}

// SupportedMediaTypes returns application/json and application/*+json
func (c *JSONConverter) SupportedMediaTypes() []hypermedia.MediaType {
	return c.mediaTypes
}

// CanRead reports whether mt is a JSON media type
func (c *JSONConverter) CanRead(_ any, mt hypermedia.MediaType) bool {
	return Supports(c.mediaTypes, mt)
}

// CanWrite reports whether mt is a JSON media type; any value can be written
func (c *JSONConverter) CanWrite(_ any, mt hypermedia.MediaType) bool {
	return Supports(c.mediaTypes, mt)
}

// Read decodes body into v
func (c *JSONConverter) Read(body []byte, v any) error {
	if err := c.decoder(body, v); err != nil {
		return fmt.Errorf("error decoding JSON body: %w", err)
	}
	return nil
}

// Write encodes v as JSON
func (c *JSONConverter) Write(w io.Writer, v any) error {
	data, err := c.encoder(v)
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Encoder returns the marshal function used by the converter
func (c *JSONConverter) Encoder() utils.JSONMarshal {
	return c.encoder
}
