package hal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/converter"
)

// Converter writes representation models as application/hal+json and reads
// HAL request bodies.
type Converter struct {
	encoder    *Encoder
	mediaTypes []hypermedia.MediaType
}

var _ converter.Converter = (*Converter)(nil)

// NewConverter creates a HAL converter rendering through encoder
func NewConverter(encoder *Encoder) *Converter {
	if encoder == nil {
		encoder = NewEncoder(EncoderOptions{})
	}
	return &Converter{
		encoder:    encoder,
		mediaTypes: []hypermedia.MediaType{hypermedia.HALJSON},
	}
}

// Name returns "hal"
func (c *Converter) Name() string {
	return "hal"
}

// SupportedMediaTypes returns application/hal+json
func (c *Converter) SupportedMediaTypes() []hypermedia.MediaType {
	return c.mediaTypes
}

// CanRead reports whether mt is HAL; bodies can be read into any value
func (c *Converter) CanRead(_ any, mt hypermedia.MediaType) bool {
	return converter.Supports(c.mediaTypes, mt)
}

// CanWrite reports whether v is a representation model and mt accepts HAL
func (c *Converter) CanWrite(v any, mt hypermedia.MediaType) bool {
	if _, ok := v.(hypermedia.Representation); !ok {
		return false
	}
	return converter.Supports(c.mediaTypes, mt)
}

// Read decodes a HAL body. A *Document target receives the full document,
// other targets receive the resource properties.
func (c *Converter) Read(body []byte, v any) error {
	if doc, ok := v.(*Document); ok {
		decoded, err := Decode(body)
		if err != nil {
			return err
		}
		*doc = *decoded
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("error decoding HAL body: %w", err)
	}
	return nil
}

// Write encodes v as HAL
func (c *Converter) Write(w io.Writer, v any) error {
	data, err := c.encoder.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding HAL: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Encoder returns the encoder used by the converter
func (c *Converter) Encoder() *Encoder {
	return c.encoder
}
