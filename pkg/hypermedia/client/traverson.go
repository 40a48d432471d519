// Package client follows hypermedia links across HAL APIs.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/hypermedia/internal/logger"
	"github.com/celestiaorg/hypermedia/internal/metrics"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/core"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/hal"
)

// DefaultTimeout is the default timeout of a single hop
const DefaultTimeout = 30 * time.Second

// Options contains configuration options for the traversal client
type Options struct {
	// Timeout is the timeout of each request when the context has no deadline
	Timeout time.Duration

	// Headers are sent with every request
	Headers map[string]string
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		Timeout: DefaultTimeout,
	}
}

// ErrorResponse is the error body returned by hypermedia servers
type ErrorResponse struct {
	Message string `json:"error"`
}

// Traverson follows link relations starting at a root resource
type Traverson struct {
	baseURL     *url.URL
	discoverers *core.LinkDiscoverers
	accept      string
	timeout     time.Duration
	headers     map[string]string
}

// NewTraverson creates a client rooted at baseURL that discovers links with
// discoverers. The Accept header lists the discoverers' media types.
func NewTraverson(baseURL string, discoverers *core.LinkDiscoverers, opts *Options) (*Traverson, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if discoverers == nil || discoverers.Len() == 0 {
		return nil, fmt.Errorf("traversal client needs at least one link discoverer")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("invalid base URL: %q is not absolute", baseURL)
	}

	mediaTypes := make([]string, 0, discoverers.Len())
	for _, mt := range discoverers.MediaTypes() {
		mediaTypes = append(mediaTypes, mt.String())
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Traverson{
		baseURL:     base,
		discoverers: discoverers,
		accept:      strings.Join(mediaTypes, ", "),
		timeout:     timeout,
		headers:     opts.Headers,
	}, nil
}

// Follow starts a traversal following rels in order
func (t *Traverson) Follow(rels ...string) *TraversalBuilder {
	return &TraversalBuilder{
		traverson: t,
		rels:      append([]string(nil), rels...),
		params:    map[string]string{},
	}
}

// TraversalBuilder describes a traversal. Nothing is requested until one of
// AsLink, ToObject or ToDocument is called.
type TraversalBuilder struct {
	traverson *Traverson
	rels      []string
	params    map[string]string
}

// WithTemplateParameters sets the values used to expand templated links
func (b *TraversalBuilder) WithTemplateParameters(params map[string]string) *TraversalBuilder {
	for k, v := range params {
		b.params[k] = v
	}
	return b
}

// AsLink follows every rel but the last and returns the last link without
// requesting it.
func (b *TraversalBuilder) AsLink(ctx context.Context) (hypermedia.Link, error) {
	if len(b.rels) == 0 {
		return hypermedia.NewLink(b.traverson.baseURL.String(), hypermedia.RelSelf), nil
	}
	return b.traverse(ctx)
}

// ToObject follows every rel and decodes the final resource into v
func (b *TraversalBuilder) ToObject(ctx context.Context, v any) error {
	body, _, err := b.fetch(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// ToDocument follows every rel and decodes the final resource as HAL
func (b *TraversalBuilder) ToDocument(ctx context.Context) (*hal.Document, error) {
	body, _, err := b.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return hal.Decode(body)
}

// ToBytes follows every rel and returns the final body and its media type
func (b *TraversalBuilder) ToBytes(ctx context.Context) ([]byte, hypermedia.MediaType, error) {
	return b.fetch(ctx)
}

func (b *TraversalBuilder) fetch(ctx context.Context) ([]byte, hypermedia.MediaType, error) {
	link, err := b.AsLink(ctx)
	if err != nil {
		return nil, "", err
	}
	return b.traverson.get(ctx, link.Href)
}

// traverse resolves the link of the last rel
func (b *TraversalBuilder) traverse(ctx context.Context) (hypermedia.Link, error) {
	t := b.traverson
	current := t.baseURL
	var link hypermedia.Link

	for _, rel := range b.rels {
		if err := ctx.Err(); err != nil {
			return hypermedia.Link{}, err
		}

		body, contentType, err := t.get(ctx, current.String())
		if err != nil {
			return hypermedia.Link{}, err
		}

		discoverer, ok := t.discoverers.LinkDiscovererFor(contentType)
		if !ok {
			return hypermedia.Link{}, fmt.Errorf("%w: no link discoverer for %q at %s", hypermedia.ErrUnsupportedType, contentType, current)
		}

		link, err = discoverer.FindLinkWithRel(rel, body)
		if err != nil {
			return hypermedia.Link{}, fmt.Errorf("error following %q from %s: %w", rel, current, err)
		}
		if link.Templated {
			if link, err = link.Expand(b.params); err != nil {
				return hypermedia.Link{}, err
			}
		}

		next, err := url.Parse(link.Href)
		if err != nil {
			return hypermedia.Link{}, fmt.Errorf("%w: %v", hypermedia.ErrInvalidLink, err)
		}
		current = current.ResolveReference(next)
		link.Href = current.String()

		metrics.TraversalHopsTotal.Inc()
		logger.Debugf("followed %q to %s", rel, link.Href)
	}

	return link, nil
}

// get requests href and returns the body and its media type
func (t *Traverson) get(ctx context.Context, href string) ([]byte, hypermedia.MediaType, error) {
	agent := fiber.Get(href)

	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(t.timeout)
	}

	agent.Set(fiber.HeaderAccept, t.accept)
	for k, v := range t.headers {
		agent.Set(k, v)
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	agent.SetResponse(resp)

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, "", fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			return nil, "", &fiber.Error{Code: statusCode, Message: errResp.Message}
		}
		return nil, "", &fiber.Error{Code: statusCode, Message: "unknown error"}
	}

	return body, hypermedia.ParseMediaType(string(resp.Header.ContentType())), nil
}
