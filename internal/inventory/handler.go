package inventory

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codeamanwal/brysk/internal/ledger"
	"github.com/codeamanwal/brysk/internal/sales"
	"github.com/codeamanwal/brysk/pkg/dates"
	"github.com/codeamanwal/brysk/pkg/enrich"
	custom_error "github.com/codeamanwal/brysk/pkg/errors"
)

const (
	upstreamTimeout = 30 * time.Second
	preferenceLimit = 10
)

type LedgerRepository interface {
	EntriesThrough(ctx context.Context, cutoff time.Time) ([]ledger.Entry, error)
	EndingBalances(ctx context.Context, asOf time.Time) (map[ledger.Key]ledger.Balance, error)
	ReceivedQuantities(ctx context.Context, start, end time.Time) ([]ledger.ReceivedRow, error)
	TopVariantsByValue(ctx context.Context, limit uint) ([]ledger.PreferenceRow, error)
	TopVariantsByVolume(ctx context.Context, limit uint) ([]ledger.PreferenceRow, error)
}

type SalesSource interface {
	SoldQuantities(ctx context.Context, start, end time.Time) ([]sales.SoldRow, error)
}

type ReferenceSource interface {
	LocationVariantRefs(ctx context.Context) (enrich.Refs, error)
}

// SnapshotRow is the point-in-time position of one location/SKU pair. The
// weight columns carry the ledger's value side under the names the
// dashboard reads.
type SnapshotRow struct {
	LocationID string `json:"locationId"`
	VariantID  string `json:"variantId"`

	enrich.LocationFields
	VariantName string `json:"variantName"`

	StartQty       float64 `json:"start_qty"`
	StartWeight    float64 `json:"start_weight"`
	MovementQty    float64 `json:"movement_qty"`
	MovementWeight float64 `json:"movement_weight"`
	EndQty         float64 `json:"end_qty"`
	EndWeight      float64 `json:"end_weight"`
	QtyLoss        float64 `json:"qty_loss"`
	WeightLoss     float64 `json:"weight_loss"`
}

// FlowRow is the windowed movement of one location/SKU pair.
type FlowRow struct {
	LocationID string `json:"locationId"`
	VariantID  string `json:"variantId"`

	enrich.LocationFields
	VariantName string `json:"variantName"`

	StartQty       float64 `json:"start_qty"`
	InwardQty      float64 `json:"inward_qty"`
	SoldQty        float64 `json:"sold_qty"`
	IntransitQty   float64 `json:"intransit_qty"`
	AdjustmentQty  float64 `json:"adjustment_qty"`
	EndQty         float64 `json:"end_qty"`
	QtyLoss        float64 `json:"qty_loss"`
	LossPercentage float64 `json:"loss_percentage"`
}

// PreferenceRow is a top SKU decorated with its catalog names.
type PreferenceRow struct {
	ledger.PreferenceRow
	enrich.VariantFields
}

type Handler struct {
	ledgerRepo LedgerRepository
	salesRepo  SalesSource
	refs       ReferenceSource
	log        *zap.Logger
}

func NewHandler(ledgerRepo LedgerRepository, salesRepo SalesSource, refs ReferenceSource, log *zap.Logger) *Handler {
	return &Handler{ledgerRepo: ledgerRepo, salesRepo: salesRepo, refs: refs, log: log}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/inventory/location-store-warehouse", h.GetSnapshot)
	router.GET("/inventoryflow", h.GetFlow)
	router.GET("/inventorypreference/value", h.GetPreferenceByValue)
	router.GET("/inventorypreference/volume", h.GetPreferenceByVolume)
	router.GET("/sellthroughrate", h.GetSellThroughRate)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if verr, ok := custom_error.IsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	h.log.Error("inventory query failed", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	day, err := dates.Parse(c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var entries []ledger.Entry
	var ending map[ledger.Key]ledger.Balance
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entries, err = h.ledgerRepo.EntriesThrough(gctx, day)
		return err
	})
	g.Go(func() (err error) {
		ending, err = h.ledgerRepo.EndingBalances(gctx, day)
		return err
	})
	g.Go(func() (err error) {
		refs, err = h.refs.LocationVariantRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	snapshots := ledger.SnapshotAt(entries, ending, day)
	rows := make([]SnapshotRow, 0, len(snapshots))
	for key, snap := range snapshots {
		rows = append(rows, SnapshotRow{
			LocationID:     key.LocationID,
			VariantID:      key.VariantID,
			LocationFields: refs.LocationFields(key.LocationID),
			VariantName:    refs.VariantName(key.VariantID),
			StartQty:       snap.StartQty,
			StartWeight:    snap.StartValue,
			MovementQty:    snap.Movement.NetQty(),
			MovementWeight: snap.Movement.NetValue(),
			EndQty:         snap.EndQty,
			EndWeight:      snap.EndValue,
			QtyLoss:        snap.QtyLoss,
			WeightLoss:     snap.ValueLoss,
		})
	}
	enrich.SortByName(rows, func(r SnapshotRow) string { return r.DisplayName })

	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetFlow(c *gin.Context) {
	start, end, err := dates.ParseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var entries []ledger.Entry
	var ending map[ledger.Key]ledger.Balance
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entries, err = h.ledgerRepo.EntriesThrough(gctx, end)
		return err
	})
	g.Go(func() (err error) {
		ending, err = h.ledgerRepo.EndingBalances(gctx, end)
		return err
	})
	g.Go(func() (err error) {
		refs, err = h.refs.LocationVariantRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	records := ledger.SnapshotRange(entries, ending, start, end)
	rows := make([]FlowRow, 0, len(records))
	for key, record := range records {
		rows = append(rows, FlowRow{
			LocationID:     key.LocationID,
			VariantID:      key.VariantID,
			LocationFields: refs.LocationFields(key.LocationID),
			VariantName:    refs.VariantName(key.VariantID),
			StartQty:       record.StartQty,
			InwardQty:      record.InwardQty,
			SoldQty:        record.SoldQty,
			IntransitQty:   record.IntransitQty,
			AdjustmentQty:  record.AdjustmentQty,
			EndQty:         record.EndQty,
			QtyLoss:        record.QtyLoss,
			LossPercentage: record.LossPercentage,
		})
	}
	enrich.SortByName(rows, func(r FlowRow) string { return r.DisplayName })

	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetPreferenceByValue(c *gin.Context) {
	h.servePreference(c, h.ledgerRepo.TopVariantsByValue)
}

func (h *Handler) GetPreferenceByVolume(c *gin.Context) {
	h.servePreference(c, h.ledgerRepo.TopVariantsByVolume)
}

func (h *Handler) servePreference(c *gin.Context, query func(context.Context, uint) ([]ledger.PreferenceRow, error)) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var top []ledger.PreferenceRow
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		top, err = query(gctx, preferenceLimit)
		return err
	})
	g.Go(func() (err error) {
		refs, err = h.refs.LocationVariantRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	rows := make([]PreferenceRow, len(top))
	for i, row := range top {
		rows[i] = PreferenceRow{
			PreferenceRow: row,
			VariantFields: refs.VariantFields(row.VariantID),
		}
	}
	enrich.SortByName(rows, func(r PreferenceRow) string { return r.VariantName })

	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetSellThroughRate(c *gin.Context) {
	start, end, err := dates.ParseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamTimeout)
	defer cancel()

	var received []ledger.ReceivedRow
	var sold []sales.SoldRow
	var refs enrich.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		received, err = h.ledgerRepo.ReceivedQuantities(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		sold, err = h.salesRepo.SoldQuantities(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		refs, err = h.refs.LocationVariantRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}

	rows := SellThrough(received, sold)
	for i := range rows {
		rows[i].LocationFields = refs.LocationFields(rows[i].LocationID)
		rows[i].VariantName = refs.VariantName(rows[i].VariantID)
	}
	enrich.SortByRateDesc(rows, func(r SellThroughRow) *float64 { return r.Rate })

	c.JSON(http.StatusOK, rows)
}
