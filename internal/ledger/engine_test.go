package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	d0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d1 = time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	d2 = time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)
)

func entry(loc, variant, typ string, qty, price float64, at time.Time) Entry {
	return Entry{LocationID: loc, VariantID: variant, Type: typ, Qty: qty, PriceWithTax: price, CreatedAt: at}
}

func TestSnapshotAtReplaysStartingBalance(t *testing.T) {
	entries := []Entry{
		entry("l1", "v1", TypeInward, 100, 1000, d0),
		entry("l1", "v1", TypeOutward, 30, 300, d1),
		entry("l1", "v1", TypeInward, 10, 100, d2),
		entry("l1", "v1", TypeOutward, 5, 50, d2),
	}
	ending := map[Key]Balance{
		{"l1", "v1"}: {Qty: 75, Value: 750},
	}

	snapshots := SnapshotAt(entries, ending, d2)
	snap, ok := snapshots[Key{"l1", "v1"}]

	assert.True(t, ok)
	assert.Equal(t, 70.0, snap.StartQty)
	assert.Equal(t, 700.0, snap.StartValue)
	assert.Equal(t, 10.0, snap.Movement.InwardQty)
	assert.Equal(t, 5.0, snap.Movement.OutwardQty)
	assert.Equal(t, 75.0, snap.EndQty)
	assert.Equal(t, 0.0, snap.QtyLoss)
}

func TestSnapshotAtIsIdempotent(t *testing.T) {
	entries := []Entry{
		entry("l1", "v1", TypeInward, 100, 1000, d0),
		entry("l1", "v2", TypeDefault, 7, 70, d0),
		entry("l1", "v1", TypeOutward, 12, 120, d2),
	}
	ending := map[Key]Balance{
		{"l1", "v1"}: {Qty: 88, Value: 880},
		{"l1", "v2"}: {Qty: 7, Value: 70},
	}

	first := SnapshotAt(entries, ending, d2)
	second := SnapshotAt(entries, ending, d2)

	assert.Equal(t, first, second)
}

func TestSnapshotAtConservation(t *testing.T) {
	// With no intransit movement and zero loss, the ending quantity must
	// equal start + inward - outward + adjustment.
	entries := []Entry{
		entry("l1", "v1", TypeInward, 50, 500, d0),
		entry("l1", "v1", TypeInward, 20, 200, d2),
		entry("l1", "v1", TypeOutward, 10, 100, d2),
		entry("l1", "v1", TypeDefault, 3, 30, d2),
	}
	ending := map[Key]Balance{
		{"l1", "v1"}: {Qty: 63, Value: 630},
	}

	snap := SnapshotAt(entries, ending, d2)[Key{"l1", "v1"}]

	assert.Equal(t, 0.0, snap.Movement.IntransitQty)
	assert.Equal(t, 0.0, snap.QtyLoss)
	assert.Equal(t, snap.StartQty+snap.Movement.InwardQty-snap.Movement.OutwardQty+snap.Movement.AdjustmentQty, snap.EndQty)
}

func TestSnapshotAtOmitsPositionsWithoutStartingEntries(t *testing.T) {
	entries := []Entry{
		entry("l1", "v1", TypeInward, 100, 1000, d0),
		// v2 first appears on the snapshot day itself.
		entry("l1", "v2", TypeInward, 40, 400, d2),
	}

	snapshots := SnapshotAt(entries, map[Key]Balance{}, d2)

	assert.Contains(t, snapshots, Key{"l1", "v1"})
	assert.NotContains(t, snapshots, Key{"l1", "v2"})
}

func TestSnapshotAtExcludesIntransitFromStockDelta(t *testing.T) {
	entries := []Entry{
		entry("l1", "v1", TypeInward, 100, 1000, d0),
		entry("l1", "v1", TypeIntransit, 25, 250, d2),
	}
	ending := map[Key]Balance{{"l1", "v1"}: {Qty: 100, Value: 1000}}

	snap := SnapshotAt(entries, ending, d2)[Key{"l1", "v1"}]

	assert.Equal(t, 25.0, snap.Movement.IntransitQty)
	assert.Equal(t, 100.0, snap.EndQty)
	assert.Equal(t, 0.0, snap.QtyLoss)
}

func TestSnapshotRangeDetectsDrift(t *testing.T) {
	// The replay says 0 + 50 - 20 = 30 on hand, but the independent ending
	// balance reports 25: five units are unaccounted for, even though the
	// naive carried-forward arithmetic would report zero loss.
	entries := []Entry{
		entry("l1", "v1", TypeInward, 50, 500, d0),
		entry("l1", "v1", TypeOutward, 20, 200, d1),
	}
	ending := map[Key]Balance{{"l1", "v1"}: {Qty: 25}}

	flows := SnapshotRange(entries, ending, d0, d1)
	flow, ok := flows[Key{"l1", "v1"}]

	assert.True(t, ok)
	assert.Equal(t, 0.0, flow.StartQty)
	assert.Equal(t, 50.0, flow.InwardQty)
	assert.Equal(t, 20.0, flow.SoldQty)
	assert.Equal(t, 30.0, flow.EndQty)
	assert.Equal(t, 5.0, flow.QtyLoss)
}

func TestSnapshotRangeKeepsStartingOnlyPositions(t *testing.T) {
	entries := []Entry{
		entry("l1", "v1", TypeInward, 80, 800, d0),
	}
	ending := map[Key]Balance{{"l1", "v1"}: {Qty: 80}}

	flows := SnapshotRange(entries, ending, d1, d2)
	flow, ok := flows[Key{"l1", "v1"}]

	assert.True(t, ok)
	assert.Equal(t, 80.0, flow.StartQty)
	assert.Equal(t, 0.0, flow.InwardQty)
	assert.Equal(t, 0.0, flow.SoldQty)
	assert.Equal(t, 80.0, flow.EndQty)
	assert.Equal(t, 0.0, flow.QtyLoss)
	assert.Equal(t, 100.0, flow.LossPercentage)
}

func TestSnapshotRangeLossPercentageGuardsZeroStart(t *testing.T) {
	entries := []Entry{
		entry("l1", "v1", TypeInward, 40, 400, d1),
	}

	flow := SnapshotRange(entries, map[Key]Balance{}, d1, d2)[Key{"l1", "v1"}]

	assert.Equal(t, 0.0, flow.StartQty)
	assert.Equal(t, 0.0, flow.LossPercentage)
}

func TestSnapshotRangeWindowBoundsAreInclusive(t *testing.T) {
	before := time.Date(2024, 4, 30, 23, 0, 0, 0, time.UTC)
	after := time.Date(2024, 5, 4, 0, 30, 0, 0, time.UTC)
	entries := []Entry{
		entry("l1", "v1", TypeInward, 10, 100, before),
		entry("l1", "v1", TypeInward, 5, 50, d0),
		entry("l1", "v1", TypeOutward, 2, 20, d2),
		// outside the window entirely
		entry("l1", "v1", TypeInward, 99, 990, after),
	}

	flow := SnapshotRange(entries, map[Key]Balance{}, d0, d2)[Key{"l1", "v1"}]

	assert.Equal(t, 10.0, flow.StartQty)
	assert.Equal(t, 5.0, flow.InwardQty)
	assert.Equal(t, 2.0, flow.SoldQty)
}
