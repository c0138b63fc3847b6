package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/comalice/micromodel/internal/primitives"
)

// Format names a class definition encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
// Supports: .yaml/.yml, .toml, .json
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported class definition extension: %q", ext)
	}
}

// LoadClassConfig reads and validates a class definition file.
func LoadClassConfig(path string) (primitives.ClassConfig, error) {
	if path == "" {
		return primitives.ClassConfig{}, fmt.Errorf("empty class definition path")
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return primitives.ClassConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return primitives.ClassConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := DecodeClassConfig(data, format)
	if err != nil {
		return primitives.ClassConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeClassConfig decodes and validates a class definition.
func DecodeClassConfig(data []byte, format Format) (primitives.ClassConfig, error) {
	var cfg primitives.ClassConfig
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("toml unmarshal: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("json unmarshal: %w", err)
		}
		normalizeNumbers(cfg.Defaults)
	default:
		return cfg, fmt.Errorf("unsupported class definition format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return primitives.ClassConfig{}, fmt.Errorf("config validation after load: %w", err)
	}
	return cfg, nil
}

// normalizeNumbers turns json.Number defaults into int64 when integral and
// float64 otherwise.
func normalizeNumbers(m map[string]any) {
	for k, v := range m {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			m[k] = i
		} else if f, err := n.Float64(); err == nil {
			m[k] = f
		}
	}
}
