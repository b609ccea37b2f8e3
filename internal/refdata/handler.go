package refdata

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codeamanwal/brysk/pkg/models"
)

const upstreamTimeout = 30 * time.Second

type ReferenceRepository interface {
	LocationList(ctx context.Context) ([]models.LocationRef, error)
	Cities(ctx context.Context) ([]models.City, error)
}

type Handler struct {
	repository ReferenceRepository
	log        *zap.Logger
}

func NewHandler(repository ReferenceRepository, log *zap.Logger) *Handler {
	return &Handler{repository: repository, log: log}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/locations", h.GetLocations)
	router.GET("/cities", h.GetCities)
}

func (h *Handler) GetLocations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	locations, err := h.repository.LocationList(ctx)
	if err != nil {
		h.log.Error("fetching locations", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if locations == nil {
		locations = []models.LocationRef{}
	}

	c.JSON(http.StatusOK, locations)
}

func (h *Handler) GetCities(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	cities, err := h.repository.Cities(ctx)
	if err != nil {
		h.log.Error("fetching cities", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if cities == nil {
		cities = []models.City{}
	}

	c.JSON(http.StatusOK, cities)
}
