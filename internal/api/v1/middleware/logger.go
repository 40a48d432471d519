// Package middleware provides Fiber middleware for the API
package middleware

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	log "github.com/celestiaorg/hypermedia/internal/logger"
)

// HeaderRequestID carries the request id in requests and responses
const HeaderRequestID = "X-Request-ID"

// RequestID returns a middleware that tags each request with an id, reusing
// the id sent by the client when there is one
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(HeaderRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// Logger returns a middleware that logs HTTP requests
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		stop := time.Now()
		fields := map[string]interface{}{
			"timestamp":    stop.Format("2006/01/02 - 15:04:05"),
			"status":       c.Response().StatusCode(),
			"latency":      stop.Sub(start),
			"ip":           c.IP(),
			"method":       c.Method(),
			"path":         c.Path(),
			"handler":      c.Route().Name,
			"accept":       c.Get(fiber.HeaderAccept),
			"content_type": string(c.Response().Header.ContentType()),
		}
		if id, ok := c.Locals(HeaderRequestID).(string); ok {
			fields["request_id"] = id
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		log.InfoWithFields("Request", fields)

		return err
	}
}
