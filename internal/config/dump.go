package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dump renders c as YAML in the layout Load reads back.
func Dump(c Config) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return out, nil
}
