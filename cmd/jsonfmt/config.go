/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"github.com/jplu/jsonfmt/jsonfmt"
)

// config holds the settings shared by every command. Values come from the
// flag defaults, then the YAML file named by --config, then flags set on the
// command line.
type config struct {
	Capacity       int    `koanf:"capacity"`
	Escape         string `koanf:"escape"`
	Normalize      string `koanf:"normalize"`
	FloatPrecision int    `koanf:"float-precision"`
	Newline        bool   `koanf:"newline"`
	LogLevel       string `koanf:"log-level"`
	LogFormat      string `koanf:"log-format"`
}

// defaultConfig returns the values used when neither a file nor a flag sets
// a key.
func defaultConfig() config {
	return config{
		Capacity:       -1,
		Escape:         "none",
		Normalize:      "none",
		FloatPrecision: 6,
		Newline:        true,
		LogLevel:       "warn",
		LogFormat:      "console",
	}
}

// registerFlags adds the configuration flags to fs.
func registerFlags(fs *pflag.FlagSet) {
	def := defaultConfig()
	fs.String("config", "", "YAML config file path")
	fs.Int("capacity", def.Capacity, "output buffer size in bytes, -1 for exactly the measured size")
	fs.String("escape", def.Escape, "extra string escaping: none or a list of control,non-ascii,bidi")
	fs.String("normalize", def.Normalize, "Unicode normalization of quoted strings: none, nfc, nfd, nfkc or nfkd")
	fs.Int("float-precision", def.FloatPrecision, "significant digits for f, -1 for the shortest exact form")
	fs.Bool("newline", def.Newline, "terminate the output with a newline")
	fs.String("log-level", def.LogLevel, "log level: debug, info, warn or error")
	fs.String("log-format", def.LogFormat, "log format: console or json")
}

// loadConfig merges the config file and the flags of cmd.
func loadConfig(cmd *cobra.Command) (*config, error) {
	k := koanf.New(".")
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("operation", "read config flag").Wrap(err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_INVALID").With("path", path).Wrapf(err, "failed to load config file")
		}
	}
	// Unchanged flags only fill keys the file left unset.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("operation", "load flags").Wrap(err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("operation", "decode config").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is valid.
func (cfg *config) Validate() error {
	if cfg.Capacity < -1 {
		return oops.Code("CONFIG_INVALID").With("capacity", cfg.Capacity).
			Errorf("capacity must be -1 or greater, got %d", cfg.Capacity)
	}
	if _, err := cfg.options(); err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return oops.Code("CONFIG_INVALID").With("log-level", cfg.LogLevel).Wrap(err)
	}
	if f := strings.ToLower(cfg.LogFormat); f != "json" && f != "console" {
		return oops.Code("CONFIG_INVALID").With("log-format", cfg.LogFormat).
			Errorf("log-format must be 'json' or 'console', got %q", cfg.LogFormat)
	}
	return nil
}

// options converts the rendering settings to emitter options.
func (cfg *config) options() (jsonfmt.Options, error) {
	esc, err := jsonfmt.ParseEscape(cfg.Escape)
	if err != nil {
		return jsonfmt.Options{}, err
	}
	form, err := jsonfmt.ParseNormalization(cfg.Normalize)
	if err != nil {
		return jsonfmt.Options{}, err
	}
	opts := jsonfmt.Options{Escape: esc, Normalize: form, FloatPrecision: cfg.FloatPrecision}
	if err := opts.Validate(); err != nil {
		return jsonfmt.Options{}, err
	}
	return opts, nil
}
