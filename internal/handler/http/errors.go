package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/service"
)

// HandleServiceError writes the HTTP response for an error returned by a service.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrEventTypeNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrPlayerNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
