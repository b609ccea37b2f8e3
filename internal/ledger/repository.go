package ledger

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/codeamanwal/brysk/internal/repository"
	custom_error "github.com/codeamanwal/brysk/pkg/errors"
)

// Repository reads the inventory-management database: positions, their
// append-only movement logs, and the aggregates derived from them.
type Repository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{repository: r}
}

type entryRow struct {
	LocationID   string    `db:"location_id"`
	VariantID    string    `db:"variant_id"`
	Type         string    `db:"type"`
	Qty          float64   `db:"qty"`
	PriceWithTax float64   `db:"price_with_tax"`
	CreatedAt    time.Time `db:"created_at"`
}

// EntriesThrough fetches every ledger entry up to and including the cutoff
// day. The replay engine buckets them; SQL only narrows the scan.
func (r *Repository) EntriesThrough(ctx context.Context, cutoff time.Time) ([]Entry, error) {
	var rows []entryRow
	query := r.repository.IMS.
		From(goqu.T("LocationInventories").As("li")).
		Select(
			goqu.I("li.locationId").As("location_id"),
			goqu.I("li.variantId").As("variant_id"),
			goqu.I("lil.type").As("type"),
			goqu.I("lil.qty").As("qty"),
			goqu.COALESCE(goqu.I("lil.priceWithTax"), 0).As("price_with_tax"),
			goqu.I("lil.createdAt").As("created_at"),
		).
		Join(goqu.T("LocationInventoryLogs").As("lil"), goqu.On(goqu.Ex{"lil.locationInventoryId": goqu.I("li.id")})).
		Where(goqu.L(`lil."createdAt"::date <= ?`, cutoff.Format("2006-01-02")))

	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("ims", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			LocationID:   row.LocationID,
			VariantID:    row.VariantID,
			Type:         row.Type,
			Qty:          row.Qty,
			PriceWithTax: row.PriceWithTax,
			CreatedAt:    row.CreatedAt,
		})
	}
	return entries, nil
}

type balanceRow struct {
	LocationID string  `db:"location_id"`
	VariantID  string  `db:"variant_id"`
	Qty        float64 `db:"qty"`
	Value      float64 `db:"value"`
}

// EndingBalances computes the signed ledger sum per position as of the end
// of the given day. It is issued as its own query, independent of the
// entries the replay engine consumes, so that the replay's expectation can
// be checked against it for drift.
func (r *Repository) EndingBalances(ctx context.Context, asOf time.Time) (map[Key]Balance, error) {
	var rows []balanceRow
	day := asOf.Format("2006-01-02")
	query := r.repository.IMS.
		From(goqu.T("LocationInventories").As("li")).
		Select(
			goqu.I("li.locationId").As("location_id"),
			goqu.I("li.variantId").As("variant_id"),
			goqu.L(`SUM(CASE
				WHEN lil."type" IN ('inward', 'default') THEN lil.qty
				WHEN lil."type" = 'outward' THEN -lil.qty
				ELSE 0
			END)`).As("qty"),
			goqu.L(`SUM(CASE
				WHEN lil."type" IN ('inward', 'default') THEN COALESCE(lil."priceWithTax", 0)
				WHEN lil."type" = 'outward' THEN -COALESCE(lil."priceWithTax", 0)
				ELSE 0
			END)`).As("value"),
		).
		Join(goqu.T("LocationInventoryLogs").As("lil"), goqu.On(goqu.Ex{"lil.locationInventoryId": goqu.I("li.id")})).
		Where(goqu.L(`lil."createdAt"::date <= ?`, day)).
		GroupBy(goqu.I("li.locationId"), goqu.I("li.variantId"))

	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("ims", err)
	}

	balances := make(map[Key]Balance, len(rows))
	for _, row := range rows {
		balances[Key{LocationID: row.LocationID, VariantID: row.VariantID}] = Balance{Qty: row.Qty, Value: row.Value}
	}
	return balances, nil
}

// ReceivedRow is the inward quantity of one position within a window, the
// received side of the sell-through join.
type ReceivedRow struct {
	LocationID  string  `db:"location_id" json:"locationId"`
	VariantID   string  `db:"variant_id" json:"variantId"`
	ReceivedQty float64 `db:"received_qty" json:"received_qty"`
}

// receivedDataset bounds the inward sum to the same half-open calendar-day
// window the sold side uses, so the sell-through join never compares an
// end-day-exclusive window against an end-day-inclusive one.
func (r *Repository) receivedDataset(start, end time.Time) *goqu.SelectDataset {
	return r.repository.IMS.
		From(goqu.T("LocationInventories").As("li")).
		Select(
			goqu.I("li.locationId").As("location_id"),
			goqu.I("li.variantId").As("variant_id"),
			goqu.L(`SUM(CASE WHEN lil."type" = 'inward' THEN lil.qty ELSE 0 END)`).As("received_qty"),
		).
		Join(goqu.T("LocationInventoryLogs").As("lil"), goqu.On(goqu.Ex{"lil.locationInventoryId": goqu.I("li.id")})).
		Where(goqu.L(`lil."createdAt" >= ? AND lil."createdAt" < ?`,
			start.Format("2006-01-02"), end.AddDate(0, 0, 1).Format("2006-01-02"))).
		GroupBy(goqu.I("li.locationId"), goqu.I("li.variantId"))
}

func (r *Repository) ReceivedQuantities(ctx context.Context, start, end time.Time) ([]ReceivedRow, error) {
	var rows []ReceivedRow
	if err := r.receivedDataset(start, end).Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("ims", err)
	}
	return rows, nil
}

// PreferenceRow is one of the top SKUs by lifetime ledger value or volume.
type PreferenceRow struct {
	VariantID   string   `db:"variant_id" json:"variantId"`
	TotalValue  *float64 `db:"total_value" json:"total_value,omitempty"`
	TotalVolume *float64 `db:"total_volume" json:"total_volume,omitempty"`
}

func (r *Repository) TopVariantsByValue(ctx context.Context, limit uint) ([]PreferenceRow, error) {
	var rows []PreferenceRow
	query := r.repository.IMS.
		From(goqu.T("LocationInventories").As("li")).
		Select(
			goqu.I("li.variantId").As("variant_id"),
			goqu.L(`SUM(lil.qty * lil."priceWithTax")`).As("total_value"),
		).
		Join(goqu.T("LocationInventoryLogs").As("lil"), goqu.On(goqu.Ex{"lil.locationInventoryId": goqu.I("li.id")})).
		GroupBy(goqu.I("li.variantId")).
		Order(goqu.I("total_value").Desc().NullsLast()).
		Limit(limit)

	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("ims", err)
	}
	return rows, nil
}

func (r *Repository) TopVariantsByVolume(ctx context.Context, limit uint) ([]PreferenceRow, error) {
	var rows []PreferenceRow
	query := r.repository.IMS.
		From(goqu.T("LocationInventories").As("li")).
		Select(
			goqu.I("li.variantId").As("variant_id"),
			goqu.L(`SUM(lil.qty)`).As("total_volume"),
		).
		Join(goqu.T("LocationInventoryLogs").As("lil"), goqu.On(goqu.Ex{"lil.locationInventoryId": goqu.I("li.id")})).
		GroupBy(goqu.I("li.variantId")).
		Order(goqu.I("total_volume").Desc().NullsLast()).
		Limit(limit)

	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("ims", err)
	}
	return rows, nil
}
