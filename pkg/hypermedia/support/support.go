// Package support enables hypermedia support for a set of handler adapters.
//
// Enable validates the selected hypermedia types, builds the link discoverer
// registry, the delegating rel provider and entity links, and prepends the
// hypermedia converters to every adapter. The returned Context gives access
// to everything that was built.
package support

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/utils"

	"github.com/celestiaorg/hypermedia/internal/logger"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/converter"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/core"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/hal"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/web"
)

// ErrNoTypes is returned when no hypermedia type is selected
var ErrNoTypes = errors.New("no hypermedia type selected")

// ErrNilAdapter is returned when an adapter in the configuration is nil
var ErrNilAdapter = errors.New("nil handler adapter")

// Config selects the hypermedia types to enable and the collaborators to wire
type Config struct {
	// Types are the hypermedia types to enable. Only hypermedia.HAL is supported.
	Types []hypermedia.Type
	// Adapters receive the hypermedia converters in front of their existing ones
	Adapters []web.HandlerAdapter
	// EntityLinks are consulted, in order, by the delegating entity links
	EntityLinks []hypermedia.EntityLinks
	// RelProviders take precedence over the built-in rel providers
	RelProviders []hypermedia.RelProvider
	// CurieProvider namespaces custom rels in HAL documents. Optional.
	CurieProvider hal.CurieProvider
	// JSONEncoder encodes entity content. Defaults to encoding/json.
	JSONEncoder utils.JSONMarshal
	// Routes resolves named routes for route based entity links. Optional.
	Routes core.RouteLookup
	// BaseURL prefixes links built from Routes
	BaseURL string
	// DisablePluralization names collection rels "<item>List" instead of the plural
	DisablePluralization bool
}

// Context holds the components built by Enable
type Context struct {
	types                 []hypermedia.Type
	discoverers           *core.LinkDiscoverers
	entityLinks           []hypermedia.EntityLinks
	delegatingEntityLinks *core.DelegatingEntityLinks
	routeEntityLinks      *core.RouteEntityLinks
	relProviders          []hypermedia.RelProvider
	delegatingRelProvider *core.DelegatingRelProvider
	halConverter          *hal.Converter
	adapters              []web.HandlerAdapter
	jsonEncoder           utils.JSONMarshal
}

// Enable wires hypermedia support for cfg. The configuration is validated
// before any adapter is modified, so a failed call leaves adapters untouched.
// Adapters that already hold a HAL converter, including ones enabled by an
// earlier call, keep their converters unchanged.
func Enable(cfg Config) (*Context, error) {
	types, err := validate(cfg)
	if err != nil {
		return nil, err
	}

	discoverers, err := buildDiscoverers(types)
	if err != nil {
		return nil, err
	}

	encoder := cfg.JSONEncoder
	if encoder == nil {
		encoder = json.Marshal
	}

	ctx := &Context{
		types:       types,
		discoverers: discoverers,
		jsonEncoder: encoder,
	}

	ctx.buildRelProviders(cfg)
	ctx.buildEntityLinks(cfg)

	ctx.halConverter = hal.NewConverter(hal.NewEncoder(hal.EncoderOptions{
		RelProvider:   ctx.delegatingRelProvider,
		CurieProvider: cfg.CurieProvider,
		JSONEncoder:   encoder,
	}))

	for _, adapter := range cfg.Adapters {
		existing := adapter.MessageConverters()
		if converter.IndexOfType[*hal.Converter](existing) < 0 {
			adapter.SetMessageConverters(prepend(ctx.halConverter, existing))
		}
		ctx.adapters = append(ctx.adapters, adapter)
	}

	logger.InfoWithFields("Hypermedia support enabled", map[string]interface{}{
		"types":        typeNames(types),
		"media_types":  discoverers.MediaTypes(),
		"adapters":     len(ctx.adapters),
		"entity_links": len(ctx.entityLinks),
	})

	return ctx, nil
}

func validate(cfg Config) ([]hypermedia.Type, error) {
	if len(cfg.Types) == 0 {
		return nil, ErrNoTypes
	}

	var types []hypermedia.Type
	seen := make(map[hypermedia.Type]bool)
	for _, t := range cfg.Types {
		if !t.Supported() {
			return nil, fmt.Errorf("%w: %s", hypermedia.ErrUnsupportedType, t)
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}

	for i, adapter := range cfg.Adapters {
		if adapter == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilAdapter, i)
		}
	}

	return types, nil
}

func buildDiscoverers(types []hypermedia.Type) (*core.LinkDiscoverers, error) {
	var discoverers []hypermedia.MediaTypeLinkDiscoverer
	for _, t := range types {
		switch t {
		case hypermedia.HAL:
			discoverers = append(discoverers, hal.NewLinkDiscoverer())
		default:
			return nil, fmt.Errorf("%w: %s", hypermedia.ErrUnsupportedType, t)
		}
	}
	return core.NewLinkDiscoverers(discoverers...)
}

func (c *Context) buildRelProviders(cfg Config) {
	var fallback hypermedia.RelProvider = core.InflectorRelProvider{}
	if cfg.DisablePluralization {
		fallback = core.DefaultRelProvider{}
	}

	providers := append([]hypermedia.RelProvider{}, cfg.RelProviders...)
	providers = append(providers, core.NamedRelProvider{}, fallback)

	c.delegatingRelProvider = core.NewDelegatingRelProvider(providers...)
	c.relProviders = append(c.delegatingRelProvider.Providers(), c.delegatingRelProvider)
}

func (c *Context) buildEntityLinks(cfg Config) {
	delegates := append([]hypermedia.EntityLinks{}, cfg.EntityLinks...)
	if cfg.Routes != nil {
		c.routeEntityLinks = core.NewRouteEntityLinks(cfg.Routes, cfg.BaseURL)
		delegates = append(delegates, c.routeEntityLinks)
	}

	c.delegatingEntityLinks = core.NewDelegatingEntityLinks(delegates...)
	c.entityLinks = append(c.delegatingEntityLinks.Delegates(), c.delegatingEntityLinks)
}

// prepend puts c in front of converters
func prepend(c converter.Converter, converters []converter.Converter) []converter.Converter {
	out := make([]converter.Converter, 0, len(converters)+1)
	out = append(out, c)
	return append(out, converters...)
}

func typeNames(types []hypermedia.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

// Types returns the enabled hypermedia types
func (c *Context) Types() []hypermedia.Type {
	return append([]hypermedia.Type(nil), c.types...)
}

// LinkDiscoverers returns the registry of link discoverers by media type
func (c *Context) LinkDiscoverers() *core.LinkDiscoverers {
	return c.discoverers
}

// LinkDiscoverer returns the discoverer registered for mt
func (c *Context) LinkDiscoverer(mt hypermedia.MediaType) (hypermedia.LinkDiscoverer, bool) {
	return c.discoverers.LinkDiscovererFor(mt)
}

// EntityLinks returns every entity links component, the delegating one last
func (c *Context) EntityLinks() []hypermedia.EntityLinks {
	return append([]hypermedia.EntityLinks(nil), c.entityLinks...)
}

// DelegatingEntityLinks returns the entity links facade handlers should use
func (c *Context) DelegatingEntityLinks() *core.DelegatingEntityLinks {
	return c.delegatingEntityLinks
}

// RouteEntityLinks returns the route based entity links, or nil when no
// route lookup was configured.
func (c *Context) RouteEntityLinks() *core.RouteEntityLinks {
	return c.routeEntityLinks
}

// RelProviders returns every rel provider, the delegating one last
func (c *Context) RelProviders() []hypermedia.RelProvider {
	return append([]hypermedia.RelProvider(nil), c.relProviders...)
}

// DelegatingRelProvider returns the rel provider facade
func (c *Context) DelegatingRelProvider() *core.DelegatingRelProvider {
	return c.delegatingRelProvider
}

// HALConverter returns the converter built for the adapters. Adapters that
// already held a HAL converter keep their own.
func (c *Context) HALConverter() *hal.Converter {
	return c.halConverter
}

// Adapters returns the adapters hypermedia support was enabled for
func (c *Context) Adapters() []web.HandlerAdapter {
	return append([]web.HandlerAdapter(nil), c.adapters...)
}

// JSONEncoder returns the encoder used for entity content
func (c *Context) JSONEncoder() utils.JSONMarshal {
	return c.jsonEncoder
}
