// Package config loads the configuration file of the amf3 command.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chaisql/amf3"
	"github.com/chaisql/amf3/internal/encoding"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// DefaultStorePath is where the store lives when the configuration doesn't say.
const DefaultStorePath = "amf3.db"

// Config holds the complete configuration of the command.
type Config struct {
	Codec CodecConfig `toml:"codec" yaml:"codec"`
	Store StoreConfig `toml:"store" yaml:"store"`
	Log   LogConfig   `toml:"log" yaml:"log"`
}

// CodecConfig bounds what the decoder accepts.
type CodecConfig struct {
	MaxDepth             int    `toml:"max_depth" yaml:"max_depth"`
	MaxDenseCount        uint32 `toml:"max_dense_count" yaml:"max_dense_count"`
	MaxStringLength      uint32 `toml:"max_string_length" yaml:"max_string_length"`
	KeepReferences       bool   `toml:"keep_references" yaml:"keep_references"`
	DisallowEmptyStrings bool   `toml:"disallow_empty_strings" yaml:"disallow_empty_strings"`
}

// StoreConfig locates the shared object store.
type StoreConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// LogConfig sets up logging. Verbosity goes from -4 (silent) to 2 (debug),
// File defaults to stderr.
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Load reads configuration from a TOML or YAML file, depending on its extension.
// Unknown fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return nil, errors.Wrap(err, "decode config")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("decode config: unknown field %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)

		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Wrap(err, "decode config")
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", ext)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Codec.MaxDepth == 0 {
		c.Codec.MaxDepth = amf3.DefaultMaxDepth
	}
	if c.Codec.MaxDenseCount == 0 {
		c.Codec.MaxDenseCount = amf3.DefaultMaxDenseCount
	}
	if c.Codec.MaxStringLength == 0 {
		c.Codec.MaxStringLength = amf3.DefaultMaxStringLength
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
}

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Codec.MaxDepth < 1 {
		return errors.Errorf("codec config: max_depth must be positive, got %d", c.Codec.MaxDepth)
	}
	if c.Codec.MaxStringLength > encoding.MaxInlineLength {
		return errors.Errorf("codec config: max_string_length must be at most %d, got %d", encoding.MaxInlineLength, c.Codec.MaxStringLength)
	}
	if c.Codec.MaxDenseCount > encoding.MaxInlineLength {
		return errors.Errorf("codec config: max_dense_count must be at most %d, got %d", encoding.MaxInlineLength, c.Codec.MaxDenseCount)
	}
	if c.Log.Verbosity < -4 || c.Log.Verbosity > 2 {
		return errors.Errorf("log config: verbosity must be between -4 and 2, got %d", c.Log.Verbosity)
	}
	return nil
}

// CodecOptions returns the codec options described by the configuration.
func (c *Config) CodecOptions() *amf3.Options {
	return &amf3.Options{
		MaxDepth:             c.Codec.MaxDepth,
		MaxDenseCount:        c.Codec.MaxDenseCount,
		MaxStringLength:      c.Codec.MaxStringLength,
		KeepReferences:       c.Codec.KeepReferences,
		DisallowEmptyStrings: c.Codec.DisallowEmptyStrings,
	}
}
