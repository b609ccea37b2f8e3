package discrepancy

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/codeamanwal/brysk/internal/repository"
	custom_error "github.com/codeamanwal/brysk/pkg/errors"
)

type Repository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{repository: r}
}

// CountRow is one stock count from the inventory-management system.
type CountRow struct {
	LocationID  string  `db:"location_id"`
	VariantID   string  `db:"variant_id"`
	IMSQuantity float64 `db:"ims_quantity"`
}

func (r *Repository) Counts(ctx context.Context) ([]CountRow, error) {
	query := r.repository.IMS.
		From(goqu.T("LocationInventories").As("li")).
		Select(
			goqu.I("li.locationId").As("location_id"),
			goqu.I("li.variantId").As("variant_id"),
			goqu.COALESCE(goqu.I("li.qty"), 0).As("ims_quantity"),
		)

	var rows []CountRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("ims", err)
	}
	return rows, nil
}

// ReadingRow is one scale reading reported by a shelf sensor.
type ReadingRow struct {
	VariantID     string    `db:"variant_id"`
	CurrentWeight float64   `db:"current_weight"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r *Repository) readingsDataset() *goqu.SelectDataset {
	return r.repository.Machine.
		From(goqu.T("Scales").As("s")).
		Select(
			goqu.I("s.variantId").As("variant_id"),
			goqu.COALESCE(goqu.I("s.currentWeight"), 0).As("current_weight"),
			goqu.I("s.updatedAt").As("updated_at"),
		)
}

func (r *Repository) Readings(ctx context.Context) ([]ReadingRow, error) {
	var rows []ReadingRow
	if err := r.readingsDataset().Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("machine", err)
	}
	return rows, nil
}
