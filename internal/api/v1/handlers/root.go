package handlers

import (
	"net/http"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// APIName is reported by the API entry point
const APIName = "hypermedia-projects"

// APIVersion is the version of the API served under /api/v1
const APIVersion = "v1"

// Index is the API entry point document
type Index struct {
	hypermedia.RepresentationModel
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RootHandler serves the API entry point. It runs on net/http and is
// mounted into Fiber through an adaptor.
type RootHandler struct {
	links hypermedia.EntityLinks
	extra hypermedia.Links
}

// NewRootHandler creates the entry point handler. extra links, such as the
// health check, are appended after the resource links.
func NewRootHandler(links hypermedia.EntityLinks, extra ...hypermedia.Link) *RootHandler {
	return &RootHandler{
		links: links,
		extra: extra,
	}
}

// Index returns the links to the top level resources
func (h *RootHandler) Index(_ *http.Request) (any, error) {
	projects, err := h.links.LinkToCollectionResource(projectType)
	if err != nil {
		return nil, linkError(err)
	}

	index := &Index{Name: APIName, Version: APIVersion}
	index.Add(
		projects.WithRel(RelProjects),
		hypermedia.NewLink(projects.Href+"/{"+ParamID+"}", RelProject),
	)
	index.Add(h.extra...)
	return index, nil
}
