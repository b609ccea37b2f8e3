package models

// Reference data records. Loaded once per request from the admin and
// customer databases and used purely for display enrichment.

type LocationRef struct {
	ID          string `json:"id" db:"id"`
	DisplayName string `json:"displayName" db:"display_name"`
	CityID      string `json:"cityId" db:"city_id"`
	CityName    string `json:"cityName" db:"city_name"`
}

type VariantRef struct {
	ID          string  `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	ProductID   string  `json:"productId" db:"product_id"`
	ProductName string  `json:"productName" db:"product_name"`
	UnitWeight  float64 `json:"unitWeight" db:"unit_weight"`
}

type UserRef struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	PhoneNumber string `json:"phoneNumber" db:"phone_number"`
}

type City struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
