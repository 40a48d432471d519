package web

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hypermedia/internal/metrics"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/converter"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/hal"
)

type widget struct {
	Name string `json:"name"`
}

func counterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	m := &dto.Metric{}
	if err := cv.WithLabelValues(labels...).Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func widgetModel() *hypermedia.EntityModel[widget] {
	return hypermedia.NewEntityModel(widget{Name: "w"}, hypermedia.NewLink("/widgets/w", hypermedia.RelSelf))
}

func get(t *testing.T, app *fiber.App, path, accept string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accept != "" {
		req.Header.Set(fiber.HeaderAccept, accept)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestDefaultConverters(t *testing.T) {
	for _, adapter := range []HandlerAdapter{NewRouteAdapter(), NewLegacyAdapter()} {
		converters := adapter.MessageConverters()
		require.Len(t, converters, 2)
		assert.IsType(t, &converter.StringConverter{}, converters[0])
		assert.IsType(t, &converter.JSONConverter{}, converters[1])
	}
}

func TestMessageConvertersAreCopied(t *testing.T) {
	adapter := NewRouteAdapter()
	converters := adapter.MessageConverters()
	converters[0] = nil
	assert.NotNil(t, adapter.MessageConverters()[0])

	replacement := []converter.Converter{converter.NewJSON()}
	adapter.SetMessageConverters(replacement)
	replacement[0] = converter.NewString()
	assert.IsType(t, &converter.JSONConverter{}, adapter.MessageConverters()[0])
}

func TestRouteAdapterNegotiation(t *testing.T) {
	adapter := NewRouteAdapter()
	app := fiber.New()
	app.Get("/widget", adapter.Handle(func(c *fiber.Ctx) (any, error) {
		return widget{Name: "w"}, nil
	}))
	app.Get("/text", adapter.Handle(func(c *fiber.Ctx) (any, error) {
		return "hello", nil
	}))

	before := counterValue(metrics.RepresentationsTotal, metrics.AdapterRoute, "application/json", "json")
	resp, body := get(t, app, "/widget", "application/json")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get(fiber.HeaderContentType))
	assert.JSONEq(t, `{"name":"w"}`, body)
	assert.Equal(t, before+1, counterValue(metrics.RepresentationsTotal, metrics.AdapterRoute, "application/json", "json"))

	resp, body = get(t, app, "/text", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "hello", body)

	resp, _ = get(t, app, "/text", "application/json")
	assert.Equal(t, "application/json", resp.Header.Get(fiber.HeaderContentType))

	failures := counterValue(metrics.NegotiationFailuresTotal, metrics.AdapterRoute, reasonNotAcceptable)
	resp, _ = get(t, app, "/widget", "text/plain")
	assert.Equal(t, fiber.StatusNotAcceptable, resp.StatusCode)
	assert.Equal(t, failures+1, counterValue(metrics.NegotiationFailuresTotal, metrics.AdapterRoute, reasonNotAcceptable))
}

func TestRouteAdapterWithHAL(t *testing.T) {
	adapter := NewRouteAdapter()
	adapter.SetMessageConverters(append([]converter.Converter{hal.NewConverter(nil)}, adapter.MessageConverters()...))

	app := fiber.New()
	app.Get("/widget", adapter.Handle(func(c *fiber.Ctx) (any, error) {
		return widgetModel(), nil
	}))

	resp, body := get(t, app, "/widget", "*/*")
	assert.Equal(t, "application/hal+json", resp.Header.Get(fiber.HeaderContentType))
	assert.JSONEq(t, `{"name":"w","_links":{"self":{"href":"/widgets/w"}}}`, body)

	resp, body = get(t, app, "/widget", "application/json")
	assert.Equal(t, "application/json", resp.Header.Get(fiber.HeaderContentType))
	assert.JSONEq(t, `{"name":"w","links":[{"rel":"self","href":"/widgets/w"}]}`, body)
}

func TestRouteAdapterNoContentAndErrors(t *testing.T) {
	adapter := NewRouteAdapter()
	app := fiber.New()
	app.Get("/empty", adapter.Handle(func(c *fiber.Ctx) (any, error) {
		return nil, nil
	}))
	app.Get("/missing", adapter.Handle(func(c *fiber.Ctx) (any, error) {
		return nil, fiber.ErrNotFound
	}))
	app.Get("/unwritable", adapter.Handle(func(c *fiber.Ctx) (any, error) {
		return make(chan int), nil
	}))

	resp, _ := get(t, app, "/empty", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = get(t, app, "/missing", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	adapter.SetMessageConverters([]converter.Converter{converter.NewString()})
	resp, _ = get(t, app, "/unwritable", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRouteAdapterBind(t *testing.T) {
	adapter := NewRouteAdapter()
	app := fiber.New()
	app.Post("/widgets", adapter.Handle(func(c *fiber.Ctx) (any, error) {
		var w widget
		if err := adapter.Bind(c, &w); err != nil {
			return nil, err
		}
		return w, nil
	}))

	post := func(contentType, body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader(body))
		if contentType != "" {
			req.Header.Set(fiber.HeaderContentType, contentType)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := post("application/json; charset=utf-8", `{"name":"posted"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"name":"posted"}`, string(body))

	assert.Equal(t, fiber.StatusUnsupportedMediaType, post("text/xml", `<w/>`).StatusCode)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, post("", `{}`).StatusCode)
	assert.Equal(t, fiber.StatusBadRequest, post("application/json", `{`).StatusCode)
}

func TestLegacyAdapter(t *testing.T) {
	adapter := NewLegacyAdapter()
	adapter.SetMessageConverters(append([]converter.Converter{hal.NewConverter(nil)}, adapter.MessageConverters()...))
	handler := adapter.Handle(func(r *http.Request) (any, error) {
		return widgetModel(), nil
	})

	before := counterValue(metrics.RepresentationsTotal, metrics.AdapterLegacy, "application/hal+json", "hal")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/hal+json", rec.Header().Get(fiber.HeaderContentType))
	assert.JSONEq(t, `{"name":"w","_links":{"self":{"href":"/widgets/w"}}}`, rec.Body.String())
	assert.Equal(t, before+1, counterValue(metrics.RepresentationsTotal, metrics.AdapterLegacy, "application/hal+json", "hal"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAccept, "application/json;q=0.9, text/html")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "application/json", rec.Header().Get(fiber.HeaderContentType))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAccept, "image/png")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestLegacyAdapterErrorsAndBind(t *testing.T) {
	adapter := NewLegacyAdapter()

	rec := httptest.NewRecorder()
	adapter.Handle(func(r *http.Request) (any, error) {
		return nil, errors.New("boom")
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	adapter.Handle(func(r *http.Request) (any, error) {
		return nil, fiber.NewError(fiber.StatusConflict, "taken")
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain body"))
	req.Header.Set(fiber.HeaderContentType, "text/plain")
	var s string
	require.NoError(t, adapter.Bind(req, &s))
	assert.Equal(t, "plain body", s)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
	var w widget
	assert.ErrorIs(t, adapter.Bind(req, &w), fiber.ErrUnsupportedMediaType)
}
