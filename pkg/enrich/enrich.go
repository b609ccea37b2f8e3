package enrich

import (
	"github.com/codeamanwal/brysk/pkg/lookup"
	"github.com/codeamanwal/brysk/pkg/models"
)

// Unknown is the literal emitted for every unresolved reference lookup.
// The dashboard filters and searches on these strings, so it must be this
// exact value, never null or an empty string.
const Unknown = "Unknown"

// Refs bundles the request-scoped reference tables. Each request loads its
// own bundle and discards it with the response; nothing is shared across
// requests.
type Refs struct {
	Users     lookup.Table[string, models.UserRef]
	Locations lookup.Table[string, models.LocationRef]
	Variants  lookup.Table[string, models.VariantRef]
}

// LocationFields are the display attributes attached to location-keyed rows.
type LocationFields struct {
	DisplayName string `json:"displayName"`
	CityName    string `json:"cityName"`
}

// UserFields are the display attributes attached to user-keyed rows.
type UserFields struct {
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
}

// VariantFields are the display attributes attached to SKU-keyed rows.
type VariantFields struct {
	VariantName string `json:"variantName"`
	ProductName string `json:"productName"`
}

func (r Refs) LocationFields(locationID string) LocationFields {
	loc, ok := r.Locations[locationID]
	if !ok {
		return LocationFields{DisplayName: Unknown, CityName: Unknown}
	}
	return LocationFields{DisplayName: loc.DisplayName, CityName: loc.CityName}
}

func (r Refs) UserFields(userID string) UserFields {
	user, ok := r.Users[userID]
	if !ok {
		return UserFields{DisplayName: Unknown, PhoneNumber: Unknown}
	}
	return UserFields{DisplayName: user.Name, PhoneNumber: user.PhoneNumber}
}

func (r Refs) VariantFields(variantID string) VariantFields {
	variant, ok := r.Variants[variantID]
	if !ok {
		return VariantFields{VariantName: Unknown, ProductName: Unknown}
	}
	return VariantFields{VariantName: variant.Title, ProductName: variant.ProductName}
}

// VariantName resolves just the variant title.
func (r Refs) VariantName(variantID string) string {
	variant, ok := r.Variants[variantID]
	if !ok {
		return Unknown
	}
	return variant.Title
}

// CityName resolves just the city of a location.
func (r Refs) CityName(locationID string) string {
	loc, ok := r.Locations[locationID]
	if !ok {
		return Unknown
	}
	return loc.CityName
}
