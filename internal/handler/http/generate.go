package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/generation"
)

// GenerateHandler exposes the generation gateway. The body is always a
// generation.Result; the status code tells callers which side failed.
type GenerateHandler struct {
	generator generation.Generator
}

func NewGenerateHandler(generator generation.Generator) *GenerateHandler {
	if generator == nil {
		panic("Generator cannot be nil for GenerateHandler")
	}
	return &GenerateHandler{generator: generator}
}

func (h *GenerateHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate", h.Generate)
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generation.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Generate: Invalid request body")
		c.JSON(http.StatusBadRequest, generation.ResultOf("", generation.ErrInvalidInput))
		return
	}

	text, err := h.generator.Generate(c.Request.Context(), req)
	res := generation.ResultOf(text, err)
	switch {
	case res.Data != nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, generation.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, res)
	default:
		logrus.WithError(err).WithField("model", req.Model).Warn("Handler.Generate: Generation failed")
		c.JSON(http.StatusBadGateway, res)
	}
}
