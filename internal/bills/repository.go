package bills

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/codeamanwal/brysk/internal/repository"
	"github.com/codeamanwal/brysk/pkg/enrich"
	custom_error "github.com/codeamanwal/brysk/pkg/errors"
)

// Period mirrors the calendar buckets of the sales aggregates.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Row is one bill-count aggregate per location and period. unique_bills and
// total_bills diverge only when an order id repeats across line-item rows;
// both are reported so the dashboard can spot double counting.
type Row struct {
	LocationID        string     `db:"location_id" json:"locationId"`
	SaleDay           *time.Time `db:"sale_day" json:"sale_day,omitempty"`
	SaleYear          *float64   `db:"sale_year" json:"sale_year,omitempty"`
	SaleWeek          *float64   `db:"sale_week" json:"sale_week,omitempty"`
	SaleMonth         *float64   `db:"sale_month" json:"sale_month,omitempty"`
	UniqueBills       int64      `db:"unique_bills" json:"unique_bills"`
	TotalBills        int64      `db:"total_bills" json:"total_bills"`
	AverageOrderValue float64    `db:"average_order_value" json:"average_order_value"`

	enrich.LocationFields `db:"-"`
}

type Repository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{repository: r}
}

func periodParts(period Period) (selects []interface{}, groups []interface{}, orders []exp.OrderedExpression, err error) {
	switch period {
	case PeriodDay:
		selects = []interface{}{goqu.L(`DATE(o."orderAt")`).As("sale_day")}
		groups = []interface{}{goqu.I("sale_day")}
		orders = []exp.OrderedExpression{goqu.I("sale_day").Desc()}
	case PeriodWeek:
		selects = []interface{}{
			goqu.L(`DATE_PART('year', o."orderAt")`).As("sale_year"),
			goqu.L(`DATE_PART('week', o."orderAt")`).As("sale_week"),
		}
		groups = []interface{}{goqu.I("sale_year"), goqu.I("sale_week")}
		orders = []exp.OrderedExpression{goqu.I("sale_year").Desc(), goqu.I("sale_week").Desc()}
	case PeriodMonth:
		selects = []interface{}{
			goqu.L(`DATE_PART('year', o."orderAt")`).As("sale_year"),
			goqu.L(`DATE_PART('month', o."orderAt")`).As("sale_month"),
		}
		groups = []interface{}{goqu.I("sale_year"), goqu.I("sale_month")}
		orders = []exp.OrderedExpression{goqu.I("sale_year").Desc(), goqu.I("sale_month").Desc()}
	default:
		err = fmt.Errorf("unknown period: %s", period)
	}
	return selects, groups, orders, err
}

func (r *Repository) Bills(ctx context.Context, period Period) ([]Row, error) {
	periodSelects, periodGroups, periodOrders, err := periodParts(period)
	if err != nil {
		return nil, err
	}

	selects := append([]interface{}{goqu.I("o.locationId").As("location_id")}, periodSelects...)
	selects = append(selects,
		goqu.L(`COUNT(DISTINCT o.id)`).As("unique_bills"),
		goqu.L(`COUNT(o.id)`).As("total_bills"),
		goqu.L(`AVG(o."totalAmount")`).As("average_order_value"),
	)

	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(selects...).
		Where(goqu.Ex{"o.status": "paid"}).
		GroupBy(append([]interface{}{goqu.I("o.locationId")}, periodGroups...)...).
		Order(periodOrders...)

	var rows []Row
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

func (r *Repository) BillsRange(ctx context.Context, start, end time.Time) ([]Row, error) {
	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(
			goqu.I("o.locationId").As("location_id"),
			goqu.L(`COUNT(DISTINCT o.id)`).As("unique_bills"),
			goqu.L(`COUNT(o.id)`).As("total_bills"),
			goqu.L(`AVG(o."totalAmount")`).As("average_order_value"),
		).
		Where(
			goqu.Ex{"o.status": "paid"},
			goqu.L(`o."orderAt" >= ? AND o."orderAt" < ?`, start, end.AddDate(0, 0, 1)),
		).
		GroupBy(goqu.I("o.locationId"))

	var rows []Row
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}
