package config

// Per-device embedded configs. Raw JSON so the table lives in flash on
// device; parsed once at boot.
var embeddedConfigs = map[string][]byte{
	"envclock-pico": []byte(`{
		"i2c":      {"sda_pin": 0, "scl_pin": 1, "freq_hz": 400000, "sensor_addr": 118, "display_addr": 60},
		"wifi":     {"ssid": "WIFI_SSID", "pass": "WIFI_PASS", "retry_backoff_ms": 5000},
		"timesync": {"server": "pool.ntp.org", "timeout_ms": 10000, "timezone": "Europe/Bucharest"},
		"display":  {"width": 128, "height": 64, "glyph_width": 8, "row_px": 8, "period_ms": 1000},
		"sampler":  {"period_ms": 2500},
		"mqtt":     {"broker": "", "client_id": "envclock", "topic": "envclock/reading"}
	}`),

	"envclock-host": []byte(`{
		"i2c":      {"sda_pin": 0, "scl_pin": 1, "freq_hz": 400000, "sensor_addr": 118, "display_addr": 60},
		"wifi":     {"ssid": "host", "pass": "", "retry_backoff_ms": 1000},
		"timesync": {"server": "pool.ntp.org", "timeout_ms": 5000, "timezone": "Europe/Bucharest"},
		"display":  {"width": 128, "height": 64, "glyph_width": 8, "row_px": 8, "period_ms": 1000},
		"sampler":  {"period_ms": 2500},
		"mqtt":     {"broker": "", "client_id": "envclock-host", "topic": "envclock/reading"}
	}`),
}
