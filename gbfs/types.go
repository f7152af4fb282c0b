package gbfs

import "encoding/json"

// StationInformation is the GBFS station_information.json document
type StationInformation struct {
	LastUpdated int64 `json:"last_updated"`
	TTL         int   `json:"ttl"`
	Data        *struct {
		Stations []StationRecord `json:"stations"`
	} `json:"data"`
}

// StationRecord is one entry of data.stations
type StationRecord struct {
	StationID string      `json:"station_id"`
	ShortName string      `json:"short_name"`
	Name      string      `json:"name"`
	Lat       float64     `json:"lat"`
	Lon       float64     `json:"lon"`
	Capacity  json.Number `json:"capacity"`
}
