package handlers

import (
	"io"
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

func TestGetPaginationOptions(t *testing.T) {
	tests := []struct {
		query        string
		expectedPage int
		expectedOff  int
		expectedCode int
	}{
		{query: "", expectedPage: 1, expectedOff: 0},
		{query: "?page=3", expectedPage: 3, expectedOff: 2 * models.DefaultLimit},
		{query: "?page=0", expectedCode: fiber.StatusBadRequest},
		{query: "?page=-2", expectedCode: fiber.StatusBadRequest},
		{query: "?page=" + strconv.Itoa(MaxPage), expectedPage: MaxPage, expectedOff: (MaxPage - 1) * models.DefaultLimit},
		{query: "?page=" + strconv.Itoa(MaxPage+1), expectedCode: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				page, opts, err := getPaginationOptions(c)
				if err != nil {
					return err
				}
				assert.Equal(t, tt.expectedPage, page)
				assert.Equal(t, tt.expectedOff, opts.Offset)
				assert.Equal(t, models.DefaultLimit, opts.Limit)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			expected := tt.expectedCode
			if expected == 0 {
				expected = fiber.StatusOK
			}
			assert.Equal(t, expected, resp.StatusCode)
		})
	}
}

func TestGetPaginationOptionsPageTooLarge(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, _, err := getPaginationOptions(c)
		return err
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/?page="+strconv.Itoa(math.MaxInt), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, ErrMsgPageTooLarge, string(body))
}

func TestPageLinks(t *testing.T) {
	href := "http://localhost:8000/api/v1/projects"
	opts := &models.ListOptions{Limit: 10, Offset: 10}

	links := pageLinks(href, 2, opts, 10, 25)
	assert.Equal(t, []string{hypermedia.RelSelf, hypermedia.RelFirst, hypermedia.RelPrev, hypermedia.RelNext}, links.Rels())

	self, _ := links.Rel(hypermedia.RelSelf)
	assert.Equal(t, href+"?page=2", self.Href)
	prev, _ := links.Rel(hypermedia.RelPrev)
	assert.Equal(t, href, prev.Href)
	next, _ := links.Rel(hypermedia.RelNext)
	assert.Equal(t, href+"?page=3", next.Href)

	last := pageLinks(href, 3, &models.ListOptions{Limit: 10, Offset: 20}, 5, 25)
	assert.False(t, last.HasRel(hypermedia.RelNext))

	first := pageLinks(href, 1, &models.ListOptions{Limit: 10}, 0, 0)
	assert.Equal(t, []string{hypermedia.RelSelf, hypermedia.RelFirst}, first.Rels())
}
