// Package hal implements the Hypertext Application Language media type:
// link discovery, the HAL encoder and decoder, curies and the HAL message
// converter.
package hal

import (
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/core"
)

// linksPath selects the links of a rel in a HAL document
const linksPath = `$._links[%q]`

// LinkDiscoverer finds links in the _links object of HAL documents
type LinkDiscoverer struct {
	*core.JSONPathLinkDiscoverer
}

var _ hypermedia.MediaTypeLinkDiscoverer = (*LinkDiscoverer)(nil)

// NewLinkDiscoverer creates a discoverer for application/hal+json
func NewLinkDiscoverer() *LinkDiscoverer {
	return &LinkDiscoverer{
		JSONPathLinkDiscoverer: core.NewJSONPathLinkDiscoverer(linksPath, hypermedia.HALJSON),
	}
}
