package installer

import (
	"embed"
)

//go:embed payload/*.lua
var payload embed.FS

// Default configuration files bootstrapped on the target.
const (
	PrimaryConfig  = "config.lua"
	BehaviorConfig = "settings.lua"
)

// DefaultConfigs returns the bundled configuration defaults in install
// order.
func DefaultConfigs() (map[string]string, []string) {
	order := []string{PrimaryConfig, BehaviorConfig}
	contents := make(map[string]string, len(order))
	for _, name := range order {
		data, err := payload.ReadFile("payload/" + name)
		if err != nil {
			// embedded at compile time
			panic("installer: missing payload " + name)
		}
		contents[name] = string(data)
	}
	return contents, order
}

// AddDefaultConfigs adds the bundled configuration defaults to d.
func (d *Document) AddDefaultConfigs() error {
	contents, order := DefaultConfigs()
	for _, name := range order {
		if err := d.AddConfigDefault(name, contents[name]); err != nil {
			return err
		}
	}
	return nil
}
