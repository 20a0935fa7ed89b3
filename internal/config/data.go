package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/latticenb/pkg/domain"
)

// ReadValue decodes a JSON or YAML data file (chosen by extension) into generic values.
// JSON numbers keep their literal form so large integers reach the renderer unchanged.
func ReadValue(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var v any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		v = stringKeys(v)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return v, nil
}

// ReadRenderConfig reads a config mapping. An empty path yields a nil config.
func ReadRenderConfig(path string) (domain.RenderConfig, error) {
	if path == "" {
		return nil, nil
	}
	v, err := ReadValue(path)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return domain.RenderConfig(m), nil
	default:
		return nil, fmt.Errorf("%s: render config must be a mapping, got %T", path, v)
	}
}

// stringKeys rewrites YAML mappings with non-string keys (years, ids) into
// map[string]any, the only map shape a JSON object can be encoded from.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}
