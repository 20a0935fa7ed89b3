package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/latticenb/pkg/jscall"
)

// DefaultPath is read when no config file is given. A missing default file is not an error.
const DefaultPath = "latticenb.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LATTICENB_"

// Config is the CLI and server configuration.
type Config struct {
	Format       string           `mapstructure:"format"`
	LogLevel     string           `mapstructure:"log_level"`
	Container    string           `mapstructure:"container"`
	CheckScripts bool             `mapstructure:"check_scripts"`
	Libraries    jscall.Libraries `mapstructure:"libraries"`
	HTTP         HTTPConfig       `mapstructure:"http"`
	Redis        RedisConfig      `mapstructure:"redis"`
	Preview      PreviewConfig    `mapstructure:"preview"`
}

// HTTPConfig configures `latticenb serve`.
type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// RedisConfig enables the Redis relay sink when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// PreviewConfig configures HTML preview pages.
type PreviewConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// envKeys maps environment variables (without prefix) to config paths.
var envKeys = map[string]string{
	"FORMAT":           "format",
	"LOG_LEVEL":        "log_level",
	"CONTAINER":        "container",
	"CHECK_SCRIPTS":    "check_scripts",
	"LATTICE_LIB":      "libraries.lattice",
	"ICOMUT_LIB":       "libraries.icomut",
	"HTTP_ADDR":        "http.addr",
	"HTTP_METRICS":     "http.metrics",
	"REDIS_ADDR":       "redis.addr",
	"REDIS_PASSWORD":   "redis.password",
	"REDIS_DB":         "redis.db",
	"REDIS_PREFIX":     "redis.prefix",
	"PREVIEW_BASE_URL": "preview.base_url",
}

func defaults() map[string]any {
	return map[string]any{
		"format":        "bundle",
		"log_level":     "info",
		"container":     "element.get(0)",
		"check_scripts": false,
		"libraries": map[string]any{
			"lattice": jscall.DefaultLibraries.Lattice,
			"icomut":  jscall.DefaultLibraries.ICOMut,
		},
		"http": map[string]any{
			"addr":    ":8080",
			"metrics": true,
		},
		"redis": map[string]any{
			"prefix": "latticenb:",
		},
		"preview": map[string]any{
			"base_url": "/nbextensions/",
		},
	}
}

// Load reads path (YAML or JSON, by extension), overlays LATTICENB_* environment
// variables and decodes the result. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	raw := defaults()
	file, err := readMap(path)
	switch {
	case err == nil:
		merge(raw, file)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file; defaults and environment only.
	default:
		return Config{}, err
	}

	for suffix, key := range envKeys {
		if v, ok := os.LookupEnv(EnvPrefix + suffix); ok {
			set(raw, key, v)
		}
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFile exports the variables of a dotenv file without overriding ones already set.
// A missing file is ignored.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return nil
}

func readMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	out := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return out, nil
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return stringKeys(out).(map[string]any), nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

// set assigns a dotted key, creating intermediate maps.
func set(m map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}
