package sales

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

type SalesRepository interface {
	LocationSales(ctx context.Context, period Period) ([]LocationSalesRow, error)
	LocationSalesRange(ctx context.Context, start, end time.Time) ([]LocationSalesRow, error)
	LocationSKUSales(ctx context.Context, period Period) ([]LocationSalesRow, error)
	LocationSKUSalesRange(ctx context.Context, start, end time.Time) ([]LocationSalesRow, error)
	CustomerSales(ctx context.Context, period Period) ([]CustomerSalesRow, error)
	CustomerSalesRange(ctx context.Context, start, end time.Time) ([]CustomerSalesRow, error)
	CustomerSKUSales(ctx context.Context, period Period) ([]CustomerSalesRow, error)
	CustomerSKUSalesRange(ctx context.Context, start, end time.Time) ([]CustomerSalesRow, error)
	SKUPreference(ctx context.Context, start, end time.Time) ([]SKUPreferenceRow, error)
}

// ReferenceSource provides the lookup tables the aggregates are decorated
// with. Loading them runs concurrently with the aggregate query.
type ReferenceSource interface {
	LocationRefs(ctx context.Context) (enrich.Refs, error)
	LocationVariantRefs(ctx context.Context) (enrich.Refs, error)
	CustomerRefs(ctx context.Context) (enrich.Refs, error)
	UserVariantRefs(ctx context.Context) (enrich.Refs, error)
}

type Handler struct {
	repository SalesRepository
	refs       ReferenceSource
	log        *zap.Logger
}

func NewHandler(repository SalesRepository, refs ReferenceSource, log *zap.Logger) *Handler {
	return &Handler{repository: repository, refs: refs, log: log}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	location := router.Group("/salesperlocation")
	location.GET("/day", h.locationSales(PeriodDay))
	location.GET("/week", h.locationSales(PeriodWeek))
	location.GET("/month", h.locationSales(PeriodMonth))
	location.GET("/daterange", h.LocationSalesRange)
	location.GET("/sku/day", h.locationSKUSales(PeriodDay))
	location.GET("/sku/week", h.locationSKUSales(PeriodWeek))
	location.GET("/sku/month", h.locationSKUSales(PeriodMonth))
	location.GET("/sku/daterange", h.LocationSKUSalesRange)

	customer := router.Group("/salespercustomer")
	customer.GET("/day", h.customerSales(PeriodDay))
	customer.GET("/week", h.customerSales(PeriodWeek))
	customer.GET("/month", h.customerSales(PeriodMonth))
	customer.GET("/daterange", h.CustomerSalesRange)
	customer.GET("/sku/day", h.customerSKUSales(PeriodDay))
	customer.GET("/sku/week", h.customerSKUSales(PeriodWeek))
	customer.GET("/sku/month", h.customerSKUSales(PeriodMonth))
	customer.GET("/sku/daterange", h.CustomerSKUSalesRange)

	router.GET("/customerskupreference", h.SKUPreference)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if verr, ok := custom_error.IsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	h.log.Error("sales query failed", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

func (h *Handler) locationSales(period Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serveLocationSales(c, func(ctx context.Context) ([]LocationSalesRow, error) {
			return h.repository.LocationSales(ctx, period)
		}, h.refs.LocationRefs)
	}
}

func (h *Handler) LocationSalesRange(c *gin.Context) {
	start, end, err := dates.ParseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.serveLocationSales(c, func(ctx context.Context) ([]LocationSalesRow, error) {
		return h.repository.LocationSalesRange(ctx, start, end)
	}, h.refs.LocationRefs)
}

func (h *Handler) locationSKUSales(period Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serveLocationSales(c, func(ctx context.Context) ([]LocationSalesRow, error) {
			return h.repository.LocationSKUSales(ctx, period)
		}, h.refs.LocationVariantRefs)
	}
}

func (h *Handler) LocationSKUSalesRange(c *gin.Context) {
	start, end, err := dates.ParseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.serveLocationSales(c, func(ctx context.Context) ([]LocationSalesRow, error) {
		return h.repository.LocationSKUSalesRange(ctx, start, end)
	}, h.refs.LocationVariantRefs)
}

func (h *Handler) serveLocationSales(
	c *gin.Context,
	query func(context.Context) ([]LocationSalesRow, error),
	loadRefs func(context.Context) (enrich.Refs, error),
) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var rows []LocationSalesRow
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = query(gctx)
		return err
	})
	g.Go(func() (err error) {
		refs, err = loadRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, enrichLocationSales(rows, refs))
}

func (h *Handler) customerSales(period Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serveCustomerSales(c, func(ctx context.Context) ([]CustomerSalesRow, error) {
			return h.repository.CustomerSales(ctx, period)
		})
	}
}

func (h *Handler) CustomerSalesRange(c *gin.Context) {
	start, end, err := dates.ParseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.serveCustomerSales(c, func(ctx context.Context) ([]CustomerSalesRow, error) {
		return h.repository.CustomerSalesRange(ctx, start, end)
	})
}

func (h *Handler) customerSKUSales(period Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.serveCustomerSales(c, func(ctx context.Context) ([]CustomerSalesRow, error) {
			return h.repository.CustomerSKUSales(ctx, period)
		})
	}
}

func (h *Handler) CustomerSKUSalesRange(c *gin.Context) {
	start, end, err := dates.ParseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.serveCustomerSales(c, func(ctx context.Context) ([]CustomerSalesRow, error) {
		return h.repository.CustomerSKUSalesRange(ctx, start, end)
	})
}

func (h *Handler) serveCustomerSales(c *gin.Context, query func(context.Context) ([]CustomerSalesRow, error)) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var rows []CustomerSalesRow
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = query(gctx)
		return err
	})
	g.Go(func() (err error) {
		refs, err = h.refs.CustomerRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, enrichCustomerSales(rows, refs))
}

func (h *Handler) SKUPreference(c *gin.Context) {
	start, end, err := dates.ParseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var rows []SKUPreferenceRow
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (qerr error) {
		rows, qerr = h.repository.SKUPreference(gctx, start, end)
		return qerr
	})
	g.Go(func() (qerr error) {
		refs, qerr = h.refs.UserVariantRefs(gctx)
		return qerr
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	out := make([]SKUPreferenceRow, len(rows))
	for i, row := range rows {
		row.UserFields = refs.UserFields(row.UserID)
		row.VariantName = refs.VariantName(row.VariantID)
		out[i] = row
	}
	enrich.SortByName(out, func(r SKUPreferenceRow) string { return r.DisplayName })

	c.JSON(http.StatusOK, out)
}

func enrichLocationSales(rows []LocationSalesRow, refs enrich.Refs) []LocationSalesRow {
	out := make([]LocationSalesRow, len(rows))
	for i, row := range rows {
		row.LocationFields = refs.LocationFields(row.LocationID)
		if row.VariantID != nil {
			row.VariantName = refs.VariantName(*row.VariantID)
		}
		out[i] = row
	}
	enrich.SortByName(out, func(r LocationSalesRow) string { return r.DisplayName })
	return out
}

func enrichCustomerSales(rows []CustomerSalesRow, refs enrich.Refs) []CustomerSalesRow {
	out := make([]CustomerSalesRow, len(rows))
	for i, row := range rows {
		row.UserFields = refs.UserFields(row.UserID)
		row.CityName = refs.CityName(row.LocationID)
		if row.VariantID != nil {
			row.VariantName = refs.VariantName(*row.VariantID)
		}
		out[i] = row
	}
	enrich.SortByName(out, func(r CustomerSalesRow) string { return r.DisplayName })
	return out
}
