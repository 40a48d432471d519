package handlers

import (
	"math"
	"net/url"
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// QueryPage is the query parameter selecting a page of a collection
const QueryPage = "page"

// MaxPage is the largest page whose offset fits in an int
const MaxPage = math.MaxInt / models.DefaultLimit

// getPaginationOptions returns the page requested by c with the matching list options
func getPaginationOptions(c *fiber.Ctx) (int, *models.ListOptions, error) {
	page := c.QueryInt(QueryPage, 1)
	if page < 1 {
		return 0, nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgNegativePagination)
	}
	if page > MaxPage {
		return 0, nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgPageTooLarge)
	}

	return page, &models.ListOptions{
		Limit:  models.DefaultLimit,
		Offset: (page - 1) * models.DefaultLimit,
	}, nil
}

// pageLinks returns the self, first, prev and next links of a page of the
// collection at href. The next link is only added when more items exist.
func pageLinks(href string, page int, opts *models.ListOptions, count int, total int64) hypermedia.Links {
	links := hypermedia.Links{
		hypermedia.NewLink(pageHref(href, page), hypermedia.RelSelf),
		hypermedia.NewLink(pageHref(href, 1), hypermedia.RelFirst),
	}
	if page > 1 {
		links = append(links, hypermedia.NewLink(pageHref(href, page-1), hypermedia.RelPrev))
	}
	if int64(opts.Offset+count) < total {
		links = append(links, hypermedia.NewLink(pageHref(href, page+1), hypermedia.RelNext))
	}
	return links
}

func pageHref(href string, page int) string {
	if page <= 1 {
		return href
	}
	q := url.Values{}
	q.Set(QueryPage, strconv.Itoa(page))
	return href + "?" + q.Encode()
}
