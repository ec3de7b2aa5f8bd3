package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/flexiodata/functions-wikipedia/internal/debug"
	"github.com/flexiodata/functions-wikipedia/internal/mediawiki"
	"github.com/flexiodata/functions-wikipedia/internal/wikidata"
	"github.com/flexiodata/functions-wikipedia/internal/wikipedia"
)

// EnvPrefix is prepended to every config key to form its environment
// variable, e.g. WIKIENRICH_HTTP_TIMEOUT for http.timeout.
const EnvPrefix = "WIKIENRICH"

// DirName is the per-project config directory searched for config.yaml.
const DirName = ".wikienrich"

// Config keys.
const (
	KeyWikipediaEndpoint = "wikipedia.endpoint"
	KeyWikidataEndpoint  = "wikidata.endpoint"
	KeyHTTPTimeout       = "http.timeout"
	KeyHTTPRetries       = "http.retries"
	KeyHTTPBackoff       = "http.backoff"
	KeyHTTPUserAgent     = "http.user-agent"
	KeyOutputFormat      = "output.format"
	KeyOutputPretty      = "output.pretty"
	KeyServeAddr         = "serve.addr"
	KeyLogFile           = "log.file"
	KeyLogMaxSize        = "log.max-size"
	KeyLogMaxBackups     = "log.max-backups"
	KeyLogMaxAge         = "log.max-age"
	KeyVerbose           = "verbose"
)

// Defaults holds the built-in value of every key.
var Defaults = map[string]interface{}{
	KeyWikipediaEndpoint: wikipedia.DefaultEndpoint,
	KeyWikidataEndpoint:  wikidata.DefaultEndpoint,
	KeyHTTPTimeout:       mediawiki.DefaultTimeout.String(),
	KeyHTTPRetries:       mediawiki.MaxRetries,
	KeyHTTPBackoff:       mediawiki.RetryDelay.String(),
	KeyHTTPUserAgent:     mediawiki.DefaultUserAgent,
	KeyOutputFormat:      "json",
	KeyOutputPretty:      false,
	KeyServeAddr:         "127.0.0.1:8080",
	KeyLogFile:           "",
	KeyLogMaxSize:        10,
	KeyLogMaxBackups:     3,
	KeyLogMaxAge:         28,
	KeyVerbose:           false,
}

var v *viper.Viper

// Initialize sets up the viper configuration singleton.
// Should be called once at application startup.
//
// Precedence: env vars > config file > defaults. A .env file in the
// working directory is loaded into the environment first and never
// overrides variables that are already set.
func Initialize() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	v = viper.New()
	v.SetConfigType("yaml")

	configPath := findConfigFile()
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	// WIKIENRICH_HTTP_USER_AGENT maps to http.user-agent
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		debug.Logf("Debug: loaded config from %s\n", v.ConfigFileUsed())
	} else {
		debug.Logf("Debug: no config.yaml found; using defaults and environment variables\n")
	}
	return nil
}

// findConfigFile returns the first config.yaml found in:
// a .wikienrich directory in cwd or any parent, ~/.config/wikienrich,
// then ~/.wikienrich.
func findConfigFile() string {
	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; ; dir = filepath.Dir(dir) {
			path := filepath.Join(dir, DirName, "config.yaml")
			if fileExists(path) {
				return path
			}
			if dir == filepath.Dir(dir) {
				break
			}
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(configDir, "wikienrich", "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(homeDir, DirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FileUsed returns the config file that was read, or "".
func FileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault    ConfigSource = "default"
	SourceConfigFile ConfigSource = "config_file"
	SourceEnvVar     ConfigSource = "env_var"
	SourceFlag       ConfigSource = "flag"
)

// EnvKey returns the environment variable bound to key.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// GetValueSource returns the source of a configuration value.
// Flags are reported by the caller since viper doesn't know about them.
func GetValueSource(key string) ConfigSource {
	if v == nil {
		return SourceDefault
	}
	if os.Getenv(EnvKey(key)) != "" {
		return SourceEnvVar
	}
	if v.InConfig(key) {
		return SourceConfigFile
	}
	return SourceDefault
}

// Setting is one effective configuration value and where it came from.
type Setting struct {
	Key    string       `yaml:"key" json:"key"`
	Value  interface{}  `yaml:"value" json:"value"`
	Source ConfigSource `yaml:"source" json:"source"`
}

// Settings returns every known key with its effective value, sorted by key.
func Settings() []Setting {
	keys := make([]string, 0, len(Defaults))
	for key := range Defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]Setting, 0, len(keys))
	for _, key := range keys {
		value := Defaults[key]
		if v != nil {
			value = v.Get(key)
		}
		out = append(out, Setting{Key: key, Value: value, Source: GetValueSource(key)})
	}
	return out
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt retrieves an integer configuration value
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetDuration retrieves a duration configuration value
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set sets a configuration value
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}

// AllSettings returns all configuration settings as a map
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v.AllSettings()
}

// HTTP is the upstream client configuration.
type HTTP struct {
	Timeout   time.Duration
	Retries   int
	Backoff   time.Duration
	UserAgent string
}

// GetHTTP returns the http.* settings. Negative retries are clamped to 0.
func GetHTTP() HTTP {
	h := HTTP{
		Timeout:   GetDuration(KeyHTTPTimeout),
		Retries:   GetInt(KeyHTTPRetries),
		Backoff:   GetDuration(KeyHTTPBackoff),
		UserAgent: GetString(KeyHTTPUserAgent),
	}
	if h.Retries < 0 {
		h.Retries = 0
	}
	return h
}

// Log is the log file configuration. File is empty when logging goes to
// stderr.
type Log struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// GetLog returns the log.* settings.
func GetLog() Log {
	return Log{
		File:       GetString(KeyLogFile),
		MaxSizeMB:  GetInt(KeyLogMaxSize),
		MaxBackups: GetInt(KeyLogMaxBackups),
		MaxAgeDays: GetInt(KeyLogMaxAge),
	}
}
