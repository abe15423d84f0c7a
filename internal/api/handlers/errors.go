package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/controllers"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// StatusForError maps a provider failure to an HTTP status
func StatusForError(err error) int {
	switch opensubtitles.KindOf(err) {
	case opensubtitles.KindAuthentication:
		return fiber.StatusUnauthorized
	case opensubtitles.KindDownloadLimit, opensubtitles.KindTooManyRequests:
		return fiber.StatusTooManyRequests
	case opensubtitles.KindServiceUnavailable, opensubtitles.KindConfiguration:
		return fiber.StatusServiceUnavailable
	case opensubtitles.KindProvider:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func providerError(c *fiber.Ctx, err error, loggedIn bool) error {
	return c.Status(StatusForError(err)).JSON(ErrorResponse{
		Error: controllers.UserMessage(err, loggedIn),
		Kind:  string(opensubtitles.KindOf(err)),
	})
}
