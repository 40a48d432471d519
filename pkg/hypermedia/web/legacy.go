package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/munnerz/goautoneg"

	"github.com/celestiaorg/hypermedia/internal/logger"
	"github.com/celestiaorg/hypermedia/internal/metrics"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/converter"
)

// LegacyHandlerFunc returns the value to render for a net/http request
type LegacyHandlerFunc func(r *http.Request) (any, error)

// LegacyAdapter renders the results of net/http handlers through its message
// converters. Mount its handlers into Fiber with adaptor.HTTPHandler.
type LegacyAdapter struct {
	converterList
}

var _ HandlerAdapter = (*LegacyAdapter)(nil)

// NewLegacyAdapter creates an adapter with the given converters, or the
// default string and JSON converters when none are given.
func NewLegacyAdapter(converters ...converter.Converter) *LegacyAdapter {
	a := &LegacyAdapter{}
	a.reset(converters)
	return a
}

// Handle wraps h into an http.Handler. Errors are rendered as
// {"error": "..."} with the status of a *fiber.Error, or 500.
func (a *LegacyAdapter) Handle(h LegacyHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := h(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if v == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := a.Write(w, r, v); err != nil {
			writeError(w, err)
		}
	})
}

// Write negotiates the representation of v and writes it to w
func (a *LegacyAdapter) Write(w http.ResponseWriter, r *http.Request, v any) error {
	converters := a.MessageConverters()

	available := offers(converters, v)
	if len(available) == 0 {
		metrics.NegotiationFailuresTotal.WithLabelValues(metrics.AdapterLegacy, reasonNotWritable).Inc()
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf(ErrMsgNotWritable, v))
	}

	accept := r.Header.Get(fiber.HeaderAccept)
	if accept == "" {
		accept = hypermedia.All.String()
	}

	accepted := goautoneg.Negotiate(accept, available)
	if accepted == "" {
		metrics.NegotiationFailuresTotal.WithLabelValues(metrics.AdapterLegacy, reasonNotAcceptable).Inc()
		logger.Debugf("no representation of %T matches Accept %q", v, accept)
		return fiber.ErrNotAcceptable
	}

	mt := hypermedia.MediaType(accepted)
	writer := writerFor(converters, v, mt)

	var buf bytes.Buffer
	if err := writer.Write(&buf, v); err != nil {
		return fmt.Errorf("error writing %s with %s converter: %w", mt, writer.Name(), err)
	}

	metrics.RepresentationsTotal.WithLabelValues(metrics.AdapterLegacy, mt.String(), writer.Name()).Inc()
	w.Header().Set(fiber.HeaderContentType, mt.String())
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(buf.Bytes())
	return err
}

// Bind reads the request body into v with the converter matching the
// Content-Type header.
func (a *LegacyAdapter) Bind(r *http.Request, v any) error {
	mt := hypermedia.ParseMediaType(r.Header.Get(fiber.HeaderContentType))

	var reader converter.Converter
	if mt != "" {
		reader = readerFor(a.MessageConverters(), v, mt)
	}
	if reader == nil {
		metrics.NegotiationFailuresTotal.WithLabelValues(metrics.AdapterLegacy, reasonUnsupportedMediaType).Inc()
		return fiber.ErrUnsupportedMediaType
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(ErrMsgBadBody, err))
	}
	if err := reader.Read(body, v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(ErrMsgBadBody, err))
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= http.StatusInternalServerError {
		logger.Errorf("legacy handler failed: %v", err)
	}

	body, _ := json.Marshal(fiber.Map{"error": err.Error()})
	w.Header().Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
