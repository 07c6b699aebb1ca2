package protocol

import "fmt"

// Keys of the configuration blob the UI understands. Anything else in the blob is
// passed through untouched.
const (
	ConfigKeyName      = "name"
	ConfigKeyPort      = "port"
	ConfigKeyTimeout   = "conn_timeout"
	ConfigKeyDarkTheme = "ui_dark_theme"
)

// ConfigFields holds the recognized keys of a pushed configuration blob.
// A nil field was absent or had the wrong type and must leave UI state unchanged.
type ConfigFields struct {
	Name        *string
	Port        *uint64
	ConnTimeout *uint64
	DarkTheme   *bool
}

// ParseConfigFields extracts the recognized keys from a configuration blob.
func ParseConfigFields(blob string) (ConfigFields, error) {
	obj, err := decodeObject(blob)
	if err != nil {
		return ConfigFields{}, fmt.Errorf("decode config: %w", err)
	}
	var fields ConfigFields
	if v, ok := stringField(obj, ConfigKeyName); ok {
		fields.Name = &v
	}
	if v, ok := uintField(obj, ConfigKeyPort); ok {
		fields.Port = &v
	}
	if v, ok := uintField(obj, ConfigKeyTimeout); ok {
		fields.ConnTimeout = &v
	}
	if v, ok := boolField(obj, ConfigKeyDarkTheme); ok {
		fields.DarkTheme = &v
	}
	return fields, nil
}
