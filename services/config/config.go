// Package config resolves the embedded per-device configuration and hands it
// out two ways: as a typed struct for wiring, and as retained per-section bus
// messages for services that reconfigure at runtime.
package config

import (
	"encoding/json"

	"envclock-go/bus"
	"envclock-go/errcode"
	"envclock-go/types"
)

const configPrefix = "config"

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Load parses the embedded config for the named device.
func Load(device string) (types.DeviceConfig, error) {
	var cfg types.DeviceConfig
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return cfg, &errcode.E{C: errcode.InvalidConfig, Op: "config.load", Msg: "no embedded config for " + device}
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, errcode.Wrap(errcode.InvalidConfig, "config.load", err)
	}
	return cfg, nil
}

// Publish splits the device config into its top-level sections and retains
// each under config/<section>, so late subscribers pick up their slice.
func Publish(conn *bus.Connection, device string) error {
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.publish", Msg: "no embedded config for " + device}
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return errcode.Wrap(errcode.InvalidConfig, "config.publish", err)
	}
	for k, v := range sections {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), []byte(v), true))
	}
	return nil
}
