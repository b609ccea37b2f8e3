package sales

import (
	"time"

	"github.com/codeamanwal/brysk/pkg/enrich"
)

// Period selects the calendar bucket an aggregate is grouped by.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// LocationSalesRow is one paid-order aggregate grouped by location. The
// period fields are pointers because each endpoint variant selects a
// different subset; absent ones are omitted from the JSON, matching the
// per-route shapes of the dashboard.
type LocationSalesRow struct {
	LocationID    string     `db:"location_id" json:"locationId"`
	SaleDay       *time.Time `db:"sale_day" json:"sale_day,omitempty"`
	SaleYear      *float64   `db:"sale_year" json:"sale_year,omitempty"`
	SaleWeek      *float64   `db:"sale_week" json:"sale_week,omitempty"`
	SaleMonth     *float64   `db:"sale_month" json:"sale_month,omitempty"`
	VariantID     *string    `db:"variant_id" json:"variantId,omitempty"`
	TotalQuantity *float64   `db:"total_quantity" json:"total_quantity,omitempty"`
	TotalSales    float64    `db:"total_sales" json:"total_sales"`

	enrich.LocationFields `db:"-"`
	VariantName           string `db:"-" json:"variant_name,omitempty"`
}

// CustomerSalesRow is one paid-order aggregate grouped by customer and
// location.
type CustomerSalesRow struct {
	UserID        string     `db:"user_id" json:"userId"`
	LocationID    string     `db:"location_id" json:"locationId"`
	SaleDay       *time.Time `db:"sale_day" json:"sale_day,omitempty"`
	SaleYear      *float64   `db:"sale_year" json:"sale_year,omitempty"`
	SaleWeek      *float64   `db:"sale_week" json:"sale_week,omitempty"`
	SaleMonth     *float64   `db:"sale_month" json:"sale_month,omitempty"`
	VariantID     *string    `db:"variant_id" json:"variantId,omitempty"`
	TotalQuantity *float64   `db:"total_quantity" json:"total_quantity,omitempty"`
	TotalSales    float64    `db:"total_sales" json:"total_sales"`
	LatestOrder   *time.Time `db:"latest_order" json:"latest_order,omitempty"`

	enrich.UserFields `db:"-"`
	CityName          string `db:"-" json:"cityName"`
	VariantName       string `db:"-" json:"variant_name,omitempty"`
}

// SKUPreferenceRow compares how often a customer picked a SKU against how
// often the SKU sold overall in the same window.
type SKUPreferenceRow struct {
	UserID      string `db:"user_id" json:"userId"`
	VariantID   string `db:"variant_id" json:"variantId"`
	TimesSold   int64  `db:"times_sold" json:"times_sold"`
	TimesPicked int64  `db:"times_picked" json:"times_picked"`

	enrich.UserFields `db:"-"`
	VariantName       string `db:"-" json:"variant_name"`
}

// SoldRow is the sold side of the sell-through join, queried from the
// customer database because orders and inventory ledgers live in separate
// databases and cannot be joined in SQL.
type SoldRow struct {
	LocationID string  `db:"location_id"`
	VariantID  string  `db:"variant_id"`
	SoldQty    float64 `db:"sold_qty"`
}
