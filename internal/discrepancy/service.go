package discrepancy

import (
	"math"

	"github.com/codeamanwal/brysk/pkg/enrich"
)

// Row compares a system stock count against what the shelf scale implies.
type Row struct {
	LocationID     string  `json:"locationId"`
	VariantID      string  `json:"variantId"`
	IMSQuantity    float64 `json:"imsQuantity"`
	SensorQuantity float64 `json:"sensorQuantity"`
	Discrepancy    float64 `json:"discrepancy"`

	LocationName string `json:"locationName"`
	CityID       string `json:"cityId"`
	enrich.VariantFields
}

// latestReadings reduces raw sensor rows to the most recent reading per
// variant. Scales report continuously; only the newest weight is meaningful.
func latestReadings(readings []ReadingRow) map[string]ReadingRow {
	latest := make(map[string]ReadingRow, len(readings))
	for _, reading := range readings {
		if current, ok := latest[reading.VariantID]; !ok || reading.UpdatedAt.After(current.UpdatedAt) {
			latest[reading.VariantID] = reading
		}
	}
	return latest
}

// Compare derives one discrepancy row per stock count. Sensor quantity is
// the latest scale weight divided by the SKU's unit weight; a missing
// reading or a non-positive unit weight yields 0, never an error. Reported
// figures are rounded to 3 decimals, the arithmetic itself is not.
func Compare(counts []CountRow, readings []ReadingRow, unitWeights map[string]float64) []Row {
	latest := latestReadings(readings)

	rows := make([]Row, 0, len(counts))
	for _, count := range counts {
		var sensorQty float64
		if reading, ok := latest[count.VariantID]; ok {
			if w := unitWeights[count.VariantID]; w > 0 {
				sensorQty = reading.CurrentWeight / w
			}
		}
		rows = append(rows, Row{
			LocationID:     count.LocationID,
			VariantID:      count.VariantID,
			IMSQuantity:    count.IMSQuantity,
			SensorQuantity: round3(sensorQty),
			Discrepancy:    round3(count.IMSQuantity - sensorQty),
		})
	}
	return rows
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
