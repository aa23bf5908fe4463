package types

import "time"

// ------------------------
// Measurements
// ------------------------

// EnvReading is one calibrated environmental sample.
type EnvReading struct {
	Temperature float64 `json:"temperature_c"` // °C
	Pressure    float64 `json:"pressure_pa"`   // Pa (raw; the display scales to hPa)
	Humidity    float64 `json:"humidity_pct"`  // %RH
}

// Telemetry is the broker-facing envelope for one reading.
type Telemetry struct {
	StationID   string    `json:"station_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature_c"`
	Humidity    float64   `json:"humidity_pct"`
	Pressure    float64   `json:"pressure_hpa"`
}

// ------------------------
// Device configuration
// ------------------------

// DeviceConfig is the embedded per-device configuration document.
type DeviceConfig struct {
	I2C      I2CConfig      `json:"i2c"`
	Wifi     WifiConfig     `json:"wifi"`
	TimeSync TimeSyncConfig `json:"timesync"`
	Display  DisplayConfig  `json:"display"`
	Sampler  SamplerConfig  `json:"sampler"`
	MQTT     MQTTConfig     `json:"mqtt"`
}

type I2CConfig struct {
	SDAPin      int    `json:"sda_pin"`
	SCLPin      int    `json:"scl_pin"`
	FreqHz      int    `json:"freq_hz"`
	SensorAddr  uint16 `json:"sensor_addr"`  // 7-bit
	DisplayAddr uint16 `json:"display_addr"` // 7-bit
}

type WifiConfig struct {
	Ssid           string `json:"ssid"`
	Pass           string `json:"pass"`
	RetryBackoffMS int    `json:"retry_backoff_ms"`
}

type TimeSyncConfig struct {
	Server    string `json:"server"`
	TimeoutMS int    `json:"timeout_ms"`
	Timezone  string `json:"timezone"`
}

type DisplayConfig struct {
	Width      int16 `json:"width"`
	Height     int16 `json:"height"`
	GlyphWidth int16 `json:"glyph_width"` // nominal glyph advance used for centering
	RowPx      int16 `json:"row_px"`      // pixel height of one text row
	PeriodMS   int   `json:"period_ms"`
}

type SamplerConfig struct {
	PeriodMS int `json:"period_ms"`
}

type MQTTConfig struct {
	Broker   string `json:"broker"` // empty disables telemetry
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
}

// ------------------------
// Service state (retained bus payloads)
// ------------------------

const (
	LevelReady    = "ready"
	LevelDegraded = "degraded"
	LevelUp       = "up"
	LevelStopped  = "stopped"
)

type ServiceState struct {
	Level  string `json:"level"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	TS     int64  `json:"ts_ms"`
}
