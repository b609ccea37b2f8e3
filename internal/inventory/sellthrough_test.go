package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeamanwal/brysk/internal/ledger"
	"github.com/codeamanwal/brysk/internal/sales"
)

func TestSellThroughComputesRate(t *testing.T) {
	rows := SellThrough(
		[]ledger.ReceivedRow{
			{LocationID: "loc-1", VariantID: "var-1", ReceivedQty: 200},
		},
		[]sales.SoldRow{
			{LocationID: "loc-1", VariantID: "var-1", SoldQty: 150},
		},
	)

	assert.Len(t, rows, 1)
	assert.NotNil(t, rows[0].Rate)
	assert.InDelta(t, 75.0, *rows[0].Rate, 1e-9)
}

func TestSellThroughZeroReceivedHasNullRate(t *testing.T) {
	rows := SellThrough(
		[]ledger.ReceivedRow{
			{LocationID: "loc-1", VariantID: "var-1", ReceivedQty: 0},
		},
		[]sales.SoldRow{
			{LocationID: "loc-1", VariantID: "var-1", SoldQty: 30},
		},
	)

	assert.Len(t, rows, 1)
	assert.Equal(t, 30.0, rows[0].SoldQty)
	assert.Nil(t, rows[0].Rate)
}

func TestSellThroughUnsoldPositionRatesZero(t *testing.T) {
	rows := SellThrough(
		[]ledger.ReceivedRow{
			{LocationID: "loc-1", VariantID: "var-1", ReceivedQty: 40},
		},
		nil,
	)

	assert.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].SoldQty)
	assert.NotNil(t, rows[0].Rate)
	assert.Equal(t, 0.0, *rows[0].Rate)
}

func TestSellThroughJoinIsKeyedPerLocation(t *testing.T) {
	// Same variant sold at a different location must not leak into the
	// received location's rate.
	rows := SellThrough(
		[]ledger.ReceivedRow{
			{LocationID: "loc-1", VariantID: "var-1", ReceivedQty: 100},
		},
		[]sales.SoldRow{
			{LocationID: "loc-2", VariantID: "var-1", SoldQty: 90},
		},
	)

	assert.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].SoldQty)
	assert.Equal(t, 0.0, *rows[0].Rate)
}
