package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port                   int `yaml:"port" validate:"gte=0,lte=65535"`
	RefreshIntervalMinutes int `yaml:"refreshIntervalMinutes" validate:"gte=0"`
}

// LaneLayer is a GeoJSON bike lane layer drawn under the station overlay
type LaneLayer struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required"`
}

// System describes one bikeshare system and where its feeds live.
// URLs may also be local file paths.
type System struct {
	Name                  string      `yaml:"name" validate:"required"`
	StationInformationURL string      `yaml:"stationInformationURL" validate:"required"`
	TripsURL              string      `yaml:"tripsURL" validate:"required"`
	Timezone              string      `yaml:"timezone" validate:"omitempty,timezone"`
	Lanes                 []LaneLayer `yaml:"lanes" validate:"dive"`
}

// TrafficConfig controls the time window and result cache
type TrafficConfig struct {
	WindowMinutes   int `yaml:"windowMinutes" validate:"gte=0,lt=720"`
	CacheSize       int `yaml:"cacheSize" validate:"gte=0"`
	CacheTTLSeconds int `yaml:"cacheTTLSeconds" validate:"gte=0"`
}

// SnapshotConfig points at an optional gob snapshot used instead of fetching feeds
type SnapshotConfig struct {
	Path string `yaml:"path"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Systems  []System       `yaml:"systems" validate:"required,min=1,dive"`
	Traffic  TrafficConfig  `yaml:"traffic"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}
