package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goliatone/go-newsroom/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDLocal  = "requestID"
	// maxRequestIDLength bounds client supplied ids; longer ones are replaced.
	maxRequestIDLength = 64
)

// requestLogger tags each request with an id and logs its outcome. The id is
// attached to the user context so every logger scoped to the request carries
// it. Errors are rendered here so the logged status matches the response.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	id := requestIDFrom(c.Get(requestIDHeader))
	c.Locals(requestIDLocal, id)
	c.Set(requestIDHeader, id)
	c.SetUserContext(logging.ContextWithFields(c.UserContext(), map[string]any{
		"request_id": id,
	}))

	started := time.Now()
	chainErr := c.Next()
	if chainErr != nil {
		if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	entry := logging.WithFields(s.logger.WithContext(c.UserContext()), map[string]any{
		"method":      c.Method(),
		"path":        c.Path(),
		"status":      c.Response().StatusCode(),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	switch {
	case c.Response().StatusCode() >= fiber.StatusInternalServerError:
		logging.WithError(entry, chainErr).Error("http.request.failed")
	case chainErr != nil:
		logging.WithError(entry, chainErr).Warn("http.request.rejected")
	default:
		entry.Info("http.request.completed")
	}
	return nil
}

// requestIDFrom keeps a client supplied id when it is short and made of
// token characters, and generates a new one otherwise.
func requestIDFrom(header string) string {
	if header == "" || len(header) > maxRequestIDLength {
		return uuid.NewString()
	}
	for i := 0; i < len(header); i++ {
		ch := header[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.':
		default:
			return uuid.NewString()
		}
	}
	return header
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocal).(string)
	return id
}
