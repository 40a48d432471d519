package web

import (
	"bytes"
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/hypermedia/internal/logger"
	"github.com/celestiaorg/hypermedia/internal/metrics"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/converter"
)

// HandlerFunc returns the value to render for a request
type HandlerFunc func(c *fiber.Ctx) (any, error)

// RouteAdapter renders the results of Fiber handlers through its message
// converters, negotiating the media type with the Accept header.
type RouteAdapter struct {
	converterList
}

var _ HandlerAdapter = (*RouteAdapter)(nil)

// NewRouteAdapter creates an adapter with the given converters, or the
// default string and JSON converters when none are given.
func NewRouteAdapter(converters ...converter.Converter) *RouteAdapter {
	a := &RouteAdapter{}
	a.reset(converters)
	return a
}

// Handle wraps h into a fiber.Handler. A nil result is answered with 204.
func (a *RouteAdapter) Handle(h HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := h(c)
		if err != nil {
			return err
		}
		if v == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return a.Write(c, v)
	}
}

// Write negotiates the representation of v and writes it to the response
func (a *RouteAdapter) Write(c *fiber.Ctx, v any) error {
	converters := a.MessageConverters()

	available := offers(converters, v)
	if len(available) == 0 {
		metrics.NegotiationFailuresTotal.WithLabelValues(metrics.AdapterRoute, reasonNotWritable).Inc()
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf(ErrMsgNotWritable, v))
	}

	accepted := c.Accepts(available...)
	if accepted == "" {
		metrics.NegotiationFailuresTotal.WithLabelValues(metrics.AdapterRoute, reasonNotAcceptable).Inc()
		logger.Debugf("no representation of %T matches Accept %q", v, c.Get(fiber.HeaderAccept))
		return fiber.ErrNotAcceptable
	}

	mt := hypermedia.MediaType(accepted)
	writer := writerFor(converters, v, mt)

	var buf bytes.Buffer
	if err := writer.Write(&buf, v); err != nil {
		return fmt.Errorf("error writing %s with %s converter: %w", mt, writer.Name(), err)
	}

	metrics.RepresentationsTotal.WithLabelValues(metrics.AdapterRoute, mt.String(), writer.Name()).Inc()
	c.Set(fiber.HeaderContentType, mt.String())
	return c.Send(buf.Bytes())
}

// Bind reads the request body into v with the converter matching the
// Content-Type header.
func (a *RouteAdapter) Bind(c *fiber.Ctx, v any) error {
	mt := hypermedia.ParseMediaType(c.Get(fiber.HeaderContentType))
	if mt == "" {
		metrics.NegotiationFailuresTotal.WithLabelValues(metrics.AdapterRoute, reasonUnsupportedMediaType).Inc()
		return fiber.ErrUnsupportedMediaType
	}

	reader := readerFor(a.MessageConverters(), v, mt)
	if reader == nil {
		metrics.NegotiationFailuresTotal.WithLabelValues(metrics.AdapterRoute, reasonUnsupportedMediaType).Inc()
		return fiber.ErrUnsupportedMediaType
	}

	if err := reader.Read(c.Body(), v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(ErrMsgBadBody, err))
	}
	return nil
}
