package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeamanwal/brysk/pkg/lookup"
	"github.com/codeamanwal/brysk/pkg/models"
)

func testRefs() Refs {
	return Refs{
		Users: lookup.Table[string, models.UserRef]{
			"u1": {ID: "u1", Name: "Asha", PhoneNumber: "+9111111"},
		},
		Locations: lookup.Table[string, models.LocationRef]{
			"l1": {ID: "l1", DisplayName: "Indiranagar Store", CityID: "c1", CityName: "Bengaluru"},
		},
		Variants: lookup.Table[string, models.VariantRef]{
			"v1": {ID: "v1", Title: "Almonds 250g", ProductID: "p1", ProductName: "Almonds", UnitWeight: 0.25},
		},
	}
}

func TestLocationFields(t *testing.T) {
	refs := testRefs()

	resolved := refs.LocationFields("l1")
	assert.Equal(t, "Indiranagar Store", resolved.DisplayName)
	assert.Equal(t, "Bengaluru", resolved.CityName)

	missing := refs.LocationFields("nope")
	assert.Equal(t, Unknown, missing.DisplayName)
	assert.Equal(t, Unknown, missing.CityName)
}

func TestUserFieldsUnknownIsNeverEmpty(t *testing.T) {
	refs := testRefs()

	for _, id := range []string{"", "ghost", "u2"} {
		resolved := refs.UserFields(id)
		assert.Equal(t, Unknown, resolved.DisplayName)
		assert.Equal(t, Unknown, resolved.PhoneNumber)
	}
}

func TestVariantFields(t *testing.T) {
	refs := testRefs()

	resolved := refs.VariantFields("v1")
	assert.Equal(t, "Almonds 250g", resolved.VariantName)
	assert.Equal(t, "Almonds", resolved.ProductName)

	assert.Equal(t, Unknown, refs.VariantName("missing"))
	assert.Equal(t, Unknown, refs.CityName("missing"))
}

func TestSortByNameIsCaseInsensitive(t *testing.T) {
	type row struct{ Name string }
	rows := []row{{"delta"}, {"Alpha"}, {"charlie"}, {"Bravo"}}

	SortByName(rows, func(r row) string { return r.Name })

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Name
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "charlie", "delta"}, got)
}

func TestSortByRateDescNilsSortLast(t *testing.T) {
	rate := func(v float64) *float64 { return &v }
	type row struct{ Rate *float64 }
	rows := []row{{rate(10)}, {nil}, {rate(50)}}

	SortByRateDesc(rows, func(r row) *float64 { return r.Rate })

	assert.Equal(t, 50.0, *rows[0].Rate)
	assert.Equal(t, 10.0, *rows[1].Rate)
	assert.Nil(t, rows[2].Rate)
}
