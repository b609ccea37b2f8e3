package discrepancy

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codeamanwal/brysk/pkg/enrich"
	"github.com/codeamanwal/brysk/pkg/models"
)

const upstreamTimeout = 30 * time.Second

type DiscrepancyRepository interface {
	Counts(ctx context.Context) ([]CountRow, error)
	Readings(ctx context.Context) ([]ReadingRow, error)
}

type ReferenceSource interface {
	LocationVariantRefs(ctx context.Context) (enrich.Refs, error)
}

type Handler struct {
	repository DiscrepancyRepository
	refs       ReferenceSource
	log        *zap.Logger
}

func NewHandler(repository DiscrepancyRepository, refs ReferenceSource, log *zap.Logger) *Handler {
	return &Handler{repository: repository, refs: refs, log: log}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/inventory-discrepancy", h.GetDiscrepancy)
}

func (h *Handler) GetDiscrepancy(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var counts []CountRow
	var readings []ReadingRow
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = h.repository.Counts(gctx)
		return err
	})
	g.Go(func() (err error) {
		readings, err = h.repository.Readings(gctx)
		return err
	})
	g.Go(func() (err error) {
		refs, err = h.refs.LocationVariantRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error("discrepancy sources failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	unitWeights := make(map[string]float64, len(refs.Variants))
	for id, variant := range refs.Variants {
		unitWeights[id] = variant.UnitWeight
	}

	rows := Compare(counts, readings, unitWeights)
	for i := range rows {
		loc := refs.Locations.LookupOr(rows[i].LocationID, models.LocationRef{
			DisplayName: enrich.Unknown,
			CityID:      enrich.Unknown,
		})
		rows[i].LocationName = loc.DisplayName
		rows[i].CityID = loc.CityID
		rows[i].VariantFields = refs.VariantFields(rows[i].VariantID)
	}
	enrich.SortByName(rows, func(r Row) string { return r.LocationName })

	c.JSON(http.StatusOK, rows)
}
