package models

// UploadSignature holds temporary credentials for a direct bucket upload.
type UploadSignature struct {
	TempSecretID  string `json:"tempSecretId"`
	TempSecretKey string `json:"tempSecretKey"`
	SessionToken  string `json:"sessionToken"`
	StartTime     int64  `json:"startTime"`
	ExpiredTime   int64  `json:"expiredTime"`
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	Key           string `json:"key"`
}

// LatLng is a WGS84 point.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is one geocoding candidate.
type Location struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Address  string `json:"address"`
	Category string `json:"category"`
	Type     int    `json:"type"`
	Location LatLng `json:"location"`
	Adcode   int    `json:"adcode"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
}

// LocationSuggestion is the geocoder's answer.
type LocationSuggestion struct {
	Count int        `json:"count"`
	Data  []Location `json:"data"`
}
