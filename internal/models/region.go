package models

// Region types, from widest to narrowest.
const (
	RegionCountry = "country"
	RegionState   = "state"
	RegionCity    = "city"
)

// Region is a node of the geographic tree events are filed under.
type Region struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Type          string   `json:"type"`
	Level         int      `json:"level"`
	ParentID      *string  `json:"parentId"`
	CountryCode   *string  `json:"countryCode"`
	IsOverseas    bool     `json:"isOverseas"`
	AddressFormat *string  `json:"addressFormat"`
	LocalName     *string  `json:"localName"`
	Timezone      *string  `json:"timezone"`
	LanguageCode  *string  `json:"languageCode"`
	CurrencyCode  *string  `json:"currencyCode"`
	PhoneCode     *string  `json:"phoneCode"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	SortOrder     int      `json:"sortOrder"`
	Remark        *string  `json:"remark"`
}

// EditableRegion is the wire shape accepted by create and update.
type EditableRegion struct {
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Type          string   `json:"type"`
	Level         int      `json:"level"`
	ParentID      *string  `json:"parentId"`
	CountryCode   *string  `json:"countryCode"`
	IsOverseas    bool     `json:"isOverseas"`
	AddressFormat *string  `json:"addressFormat"`
	LocalName     *string  `json:"localName"`
	Timezone      *string  `json:"timezone"`
	LanguageCode  *string  `json:"languageCode"`
	CurrencyCode  *string  `json:"currencyCode"`
	PhoneCode     *string  `json:"phoneCode"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	SortOrder     int      `json:"sortOrder"`
	Remark        *string  `json:"remark"`
}
