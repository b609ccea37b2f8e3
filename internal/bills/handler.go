package bills

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codeamanwal/brysk/pkg/dates"
	"github.com/codeamanwal/brysk/pkg/enrich"
	custom_error "github.com/codeamanwal/brysk/pkg/errors"
)

const upstreamTimeout = 30 * time.Second

type BillsRepository interface {
	Bills(ctx context.Context, period Period) ([]Row, error)
	BillsRange(ctx context.Context, start, end time.Time) ([]Row, error)
}

type ReferenceSource interface {
	LocationRefs(ctx context.Context) (enrich.Refs, error)
}

type Handler struct {
	repository BillsRepository
	refs       ReferenceSource
	log        *zap.Logger
}

func NewHandler(repository BillsRepository, refs ReferenceSource, log *zap.Logger) *Handler {
	return &Handler{repository: repository, refs: refs, log: log}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/numberofbills")
	group.GET("/day", h.perPeriod(PeriodDay))
	group.GET("/week", h.perPeriod(PeriodWeek))
	group.GET("/month", h.perPeriod(PeriodMonth))
	group.GET("/daterange", h.Range)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if verr, ok := custom_error.IsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	h.log.Error("bills query failed", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

func (h *Handler) perPeriod(period Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serve(c, func(ctx context.Context) ([]Row, error) {
			return h.repository.Bills(ctx, period)
		})
	}
}

func (h *Handler) Range(c *gin.Context) {
	start, end, err := dates.ParseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.serve(c, func(ctx context.Context) ([]Row, error) {
		return h.repository.BillsRange(ctx, start, end)
	})
}

func (h *Handler) serve(c *gin.Context, query func(context.Context) ([]Row, error)) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var rows []Row
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = query(gctx)
		return err
	})
	g.Go(func() (err error) {
		refs, err = h.refs.LocationRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	out := make([]Row, len(rows))
	for i, row := range rows {
		row.LocationFields = refs.LocationFields(row.LocationID)
		out[i] = row
	}
	enrich.SortByName(out, func(r Row) string { return r.DisplayName })

	c.JSON(http.StatusOK, out)
}
