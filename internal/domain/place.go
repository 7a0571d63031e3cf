package domain

const (
	DefaultPlaceAddress = "No address available"
	DefaultPlaceRating  = "N/A"
)

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a restaurant returned by the places text search.
type Place struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Rating   string `json:"rating"`
	Location LatLng `json:"location"`
}
