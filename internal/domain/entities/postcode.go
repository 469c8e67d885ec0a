package entities

// PostcodeLookup is a resolved UK postcode
type PostcodeLookup struct {
	Postcode      string  `json:"postcode"`
	Country       string  `json:"country"`
	Region        string  `json:"region"`
	AdminDistrict string  `json:"admin_district"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}
