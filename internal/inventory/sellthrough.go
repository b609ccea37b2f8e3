package inventory

import (
	"github.com/codeamanwal/brysk/internal/ledger"
	"github.com/codeamanwal/brysk/internal/sales"
	"github.com/codeamanwal/brysk/pkg/enrich"
	"github.com/codeamanwal/brysk/pkg/lookup"
)

// SellThroughRow pairs what a location received with what it sold in the
// same window. The two sides live in different databases, so the join runs
// in memory on the locationId-variantId pair.
type SellThroughRow struct {
	LocationID  string   `json:"locationId"`
	VariantID   string   `json:"variantId"`
	ReceivedQty float64  `json:"received_qty"`
	SoldQty     float64  `json:"sold_qty"`
	Rate        *float64 `json:"sell_through_rate"`

	enrich.LocationFields
	VariantName string `json:"variantName"`
}

// SellThrough joins received against sold quantities. A position that
// received nothing has no meaningful rate; it is reported as null rather
// than zero so the dashboard can tell "sold nothing" from "not computable".
func SellThrough(received []ledger.ReceivedRow, sold []sales.SoldRow) []SellThroughRow {
	soldByPair := lookup.Index(sold, func(s sales.SoldRow) string {
		return lookup.PairKey(s.LocationID, s.VariantID)
	})

	return lookup.Join(received, soldByPair,
		func(r ledger.ReceivedRow) string { return lookup.PairKey(r.LocationID, r.VariantID) },
		sales.SoldRow{},
		func(r ledger.ReceivedRow, s sales.SoldRow) SellThroughRow {
			row := SellThroughRow{
				LocationID:  r.LocationID,
				VariantID:   r.VariantID,
				ReceivedQty: r.ReceivedQty,
				SoldQty:     s.SoldQty,
			}
			if r.ReceivedQty != 0 {
				rate := s.SoldQty / r.ReceivedQty * 100
				row.Rate = &rate
			}
			return row
		})
}
