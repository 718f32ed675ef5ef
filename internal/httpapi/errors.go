package httpapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// ErrRevalidateUnauthorized is returned when the revalidation secret does not match.
var ErrRevalidateUnauthorized = errors.New("httpapi: invalid revalidation token")

// statusFor maps categorised errors to HTTP status codes.
func statusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, ErrRevalidateUnauthorized):
		return fiber.StatusUnauthorized
	case goerrors.IsCategory(err, goerrors.CategoryNotFound):
		return fiber.StatusNotFound
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func textCode(err error) string {
	var wrapped *goerrors.Error
	if errors.As(err, &wrapped) && wrapped.TextCode != "" {
		return wrapped.TextCode
	}
	return ""
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status >= fiber.StatusInternalServerError {
		message = "internal server error"
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		body := fiber.Map{
			"error":      message,
			"status":     status,
			"request_id": requestID(c),
		}
		if code := textCode(err); code != "" {
			body["code"] = code
		}
		return c.Status(status).JSON(body)
	}

	title := "Something went wrong"
	switch status {
	case fiber.StatusNotFound:
		title = "Not found"
		message = "The page you are looking for does not exist."
	case fiber.StatusBadRequest:
		title = "Bad request"
	}
	return c.Status(status).Render("error", fiber.Map{
		"title":   title,
		"status":  status,
		"message": message,
	})
}
