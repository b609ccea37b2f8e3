package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/codeamanwal/brysk/internal/repository"
	custom_error "github.com/codeamanwal/brysk/pkg/errors"
)

// Repository consolidates every paid-order aggregate against the customer
// database; handlers stay thin callers.
type Repository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{repository: r}
}

// orderedWithin bounds a query to an inclusive calendar-day window. The end
// day is extended to the next midnight so orders placed on it still count.
func orderedWithin(start, end time.Time) exp.Expression {
	return goqu.L(`o."orderAt" >= ? AND o."orderAt" < ?`, start, end.AddDate(0, 0, 1))
}

// periodParts returns the select, group-by and order-by expressions for a
// calendar bucket. Grouping and ordering reference the select aliases,
// which postgres resolves.
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

func (r *Repository) LocationSales(ctx context.Context, period Period) ([]LocationSalesRow, error) {
	periodSelects, periodGroups, periodOrders, err := periodParts(period)
	if err != nil {
		return nil, err
	}

	selects := append([]interface{}{goqu.I("o.locationId").As("location_id")}, periodSelects...)
	selects = append(selects, goqu.L(`SUM(o."totalAmount")`).As("total_sales"))

	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(selects...).
		Where(goqu.Ex{"o.status": "paid"}).
		GroupBy(append([]interface{}{goqu.I("o.locationId")}, periodGroups...)...).
		Order(periodOrders...)

	var rows []LocationSalesRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

func (r *Repository) LocationSalesRange(ctx context.Context, start, end time.Time) ([]LocationSalesRow, error) {
	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(
			goqu.I("o.locationId").As("location_id"),
			goqu.L(`SUM(o."totalAmount")`).As("total_sales"),
		).
		Where(
			goqu.Ex{"o.status": "paid"},
			orderedWithin(start, end),
		).
		GroupBy(goqu.I("o.locationId"))

	var rows []LocationSalesRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

func (r *Repository) LocationSKUSales(ctx context.Context, period Period) ([]LocationSalesRow, error) {
	periodSelects, periodGroups, periodOrders, err := periodParts(period)
	if err != nil {
		return nil, err
	}

	selects := append([]interface{}{goqu.I("o.locationId").As("location_id")}, periodSelects...)
	selects = append(selects,
		goqu.I("oi.variantId").As("variant_id"),
		goqu.L(`SUM(oi.qty)`).As("total_quantity"),
		goqu.L(`SUM(oi."sellingPrice" * oi.qty)`).As("total_sales"),
	)

	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(selects...).
		Join(goqu.T("OrderItems").As("oi"), goqu.On(goqu.Ex{"oi.orderId": goqu.I("o.id")})).
		Where(goqu.Ex{"o.status": "paid"}).
		GroupBy(append([]interface{}{goqu.I("o.locationId"), goqu.I("oi.variantId")}, periodGroups...)...).
		Order(periodOrders...)

	var rows []LocationSalesRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

func (r *Repository) LocationSKUSalesRange(ctx context.Context, start, end time.Time) ([]LocationSalesRow, error) {
	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(
			goqu.I("o.locationId").As("location_id"),
			goqu.I("oi.variantId").As("variant_id"),
			goqu.L(`SUM(oi.qty)`).As("total_quantity"),
			goqu.L(`SUM(oi."sellingPrice" * oi.qty)`).As("total_sales"),
		).
		Join(goqu.T("OrderItems").As("oi"), goqu.On(goqu.Ex{"oi.orderId": goqu.I("o.id")})).
		Where(
			goqu.Ex{"o.status": "paid"},
			orderedWithin(start, end),
		).
		GroupBy(goqu.I("o.locationId"), goqu.I("oi.variantId"))

	var rows []LocationSalesRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

func (r *Repository) CustomerSales(ctx context.Context, period Period) ([]CustomerSalesRow, error) {
	periodSelects, periodGroups, periodOrders, err := periodParts(period)
	if err != nil {
		return nil, err
	}

	selects := append([]interface{}{
		goqu.I("o.userId").As("user_id"),
		goqu.I("o.locationId").As("location_id"),
	}, periodSelects...)
	selects = append(selects, goqu.L(`SUM(o."totalAmount")`).As("total_sales"))

	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(selects...).
		Where(goqu.Ex{"o.status": "paid"}).
		GroupBy(append([]interface{}{goqu.I("o.userId"), goqu.I("o.locationId")}, periodGroups...)...).
		Order(periodOrders...)

	var rows []CustomerSalesRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

func (r *Repository) CustomerSalesRange(ctx context.Context, start, end time.Time) ([]CustomerSalesRow, error) {
	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(
			goqu.I("o.userId").As("user_id"),
			goqu.I("o.locationId").As("location_id"),
			goqu.L(`SUM(o."totalAmount")`).As("total_sales"),
			goqu.L(`MAX(o."orderAt")`).As("latest_order"),
		).
		Where(
			goqu.Ex{"o.status": "paid"},
			orderedWithin(start, end),
		).
		GroupBy(goqu.I("o.userId"), goqu.I("o.locationId")).
		Order(goqu.I("latest_order").Desc())

	var rows []CustomerSalesRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

func (r *Repository) CustomerSKUSales(ctx context.Context, period Period) ([]CustomerSalesRow, error) {
	periodSelects, periodGroups, periodOrders, err := periodParts(period)
	if err != nil {
		return nil, err
	}

	selects := append([]interface{}{
		goqu.I("o.userId").As("user_id"),
		goqu.I("o.locationId").As("location_id"),
	}, periodSelects...)
	selects = append(selects,
		goqu.I("oi.variantId").As("variant_id"),
		goqu.L(`SUM(oi.qty)`).As("total_quantity"),
		goqu.L(`SUM(oi."sellingPrice" * oi.qty)`).As("total_sales"),
	)

	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(selects...).
		Join(goqu.T("OrderItems").As("oi"), goqu.On(goqu.Ex{"oi.orderId": goqu.I("o.id")})).
		Where(goqu.Ex{"o.status": "paid"}).
		GroupBy(append([]interface{}{goqu.I("o.userId"), goqu.I("o.locationId"), goqu.I("oi.variantId")}, periodGroups...)...).
		Order(periodOrders...)

	var rows []CustomerSalesRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

func (r *Repository) CustomerSKUSalesRange(ctx context.Context, start, end time.Time) ([]CustomerSalesRow, error) {
	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(
			goqu.I("o.userId").As("user_id"),
			goqu.I("o.locationId").As("location_id"),
			goqu.I("oi.variantId").As("variant_id"),
			goqu.L(`SUM(oi.qty)`).As("total_quantity"),
			goqu.L(`SUM(oi."sellingPrice" * oi.qty)`).As("total_sales"),
		).
		Join(goqu.T("OrderItems").As("oi"), goqu.On(goqu.Ex{"oi.orderId": goqu.I("o.id")})).
		Where(
			goqu.Ex{"o.status": "paid"},
			orderedWithin(start, end),
		).
		GroupBy(goqu.I("o.userId"), goqu.I("o.locationId"), goqu.I("oi.variantId")).
		Order(goqu.L(`MAX(o."orderAt")`).Desc())

	var rows []CustomerSalesRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

// SKUPreference pairs each (customer, SKU) pick count with the SKU's
// overall sold count in the same window.
func (r *Repository) SKUPreference(ctx context.Context, start, end time.Time) ([]SKUPreferenceRow, error) {
	picked := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(
			goqu.I("o.userId").As("user_id"),
			goqu.I("oi.variantId").As("variant_id"),
			goqu.L(`COUNT(oi."variantId")`).As("times_picked"),
		).
		Join(goqu.T("OrderItems").As("oi"), goqu.On(goqu.Ex{"oi.orderId": goqu.I("o.id")})).
		Where(
			goqu.Ex{"o.status": "paid"},
			orderedWithin(start, end),
		).
		GroupBy(goqu.I("o.userId"), goqu.I("oi.variantId"))

	sold := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(
			goqu.I("oi.variantId").As("variant_id"),
			goqu.L(`COUNT(oi."variantId")`).As("times_sold"),
		).
		Join(goqu.T("OrderItems").As("oi"), goqu.On(goqu.Ex{"oi.orderId": goqu.I("o.id")})).
		Where(
			goqu.Ex{"o.status": "paid"},
			orderedWithin(start, end),
		).
		GroupBy(goqu.I("oi.variantId"))

	query := r.repository.Customer.
		From(picked.As("sp")).
		Select(
			goqu.I("sp.user_id").As("user_id"),
			goqu.I("sp.variant_id").As("variant_id"),
			goqu.COALESCE(goqu.I("ss.times_sold"), 0).As("times_sold"),
			goqu.I("sp.times_picked").As("times_picked"),
		).
		LeftJoin(sold.As("ss"), goqu.On(goqu.Ex{"sp.variant_id": goqu.I("ss.variant_id")})).
		Order(goqu.I("sp.user_id").Asc(), goqu.I("sp.variant_id").Asc())

	var rows []SKUPreferenceRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}

// SoldQuantities is the sold side of the sell-through rate.
func (r *Repository) SoldQuantities(ctx context.Context, start, end time.Time) ([]SoldRow, error) {
	query := r.repository.Customer.
		From(goqu.T("Orders").As("o")).
		Select(
			goqu.I("o.locationId").As("location_id"),
			goqu.I("oi.variantId").As("variant_id"),
			goqu.L(`SUM(oi.qty)`).As("sold_qty"),
		).
		Join(goqu.T("OrderItems").As("oi"), goqu.On(goqu.Ex{"oi.orderId": goqu.I("o.id")})).
		Where(
			goqu.Ex{"o.status": "paid"},
			orderedWithin(start, end),
		).
		GroupBy(goqu.I("o.locationId"), goqu.I("oi.variantId"))

	var rows []SoldRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return rows, nil
}
