package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gh-contrib-api/internal/gateway"
	"gh-contrib-api/internal/usecase"
)

// Handler holds the HTTP handlers for the scraping API.
type Handler struct {
	service *usecase.Service
	logger  zerolog.Logger
}

// NewHandler creates a new Handler backed by the given service.
func NewHandler(service *usecase.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the API routes on the engine. CORS is registered on
// the engine itself so preflight requests get their headers even though no
// OPTIONS route is declared.
func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	engine.Use(corsMiddleware())
	api := engine.Group("/api")
	api.GET("/contributions", h.getContributions)
	api.GET("/profile/:username", h.getProfile)
	api.GET("/repositories/:username", h.getRepositories)
}

func (h *Handler) getContributions(c *gin.Context) {
	report, err := h.service.GetContributions(
		c.Request.Context(),
		c.Query("username"),
		c.Query("year"),
		c.Query("from"),
		c.Query("to"),
	)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) getRepositories(c *gin.Context) {
	repos, err := h.service.GetRepositories(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, repos)
}

// renderError maps a pipeline failure onto the API error contract:
// validation errors are 400, an unknown user is 404, an upstream failure is
// 502 and anything unexpected is 500. Every body is {"error": message}.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case usecase.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gateway.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "GitHub user not found"})
	case errors.Is(err, gateway.ErrUpstream):
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("upstream fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch GitHub data"})
	default:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
