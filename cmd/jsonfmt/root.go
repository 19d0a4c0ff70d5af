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
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jplu/jsonfmt/jsonfmt"
)

// NewRootCmd creates the root command, which renders a format to stdout.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonfmt [flags] FORMAT [ARG...]",
		Short: "Render JSON from a printf-style format",
		Long: `jsonfmt renders JSON text from a compact format string. Each format byte
is a directive: punctuation ([]{},: and \r, \n, \t) is copied, spaces are
skipped, T, F and N write true, false and null, and value directives take
the next ARG:

  i  integer         f  number
  s  quoted string   S  raw string
  v  quoted bytes    V  raw bytes
  b  base64          x  hex
  n  base64 of the contents of the file named by ARG

Flags must come before FORMAT.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, func(cfg *config, logger *zap.Logger) error {
				return runRender(cmd, cfg, logger, args[0], args[1:])
			})
		},
	}

	registerFlags(cmd.PersistentFlags())
	cmd.Flags().SetInterspersed(false)

	cmd.AddCommand(newSizeCmd())

	return cmd
}

// newSizeCmd creates the size subcommand.
func newSizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size [flags] FORMAT [ARG...]",
		Short: "Print the length of the rendered output",
		Long: `Print the number of bytes FORMAT renders to, without rendering it.
Files named for n directives are measured but not opened.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, func(cfg *config, logger *zap.Logger) error {
				return runSize(cmd, cfg, logger, args[0], args[1:])
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// withConfig loads the configuration, installs the logger, and runs fn.
// Errors are logged before being returned.
func withConfig(cmd *cobra.Command, fn func(*config, *zap.Logger) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fallback, _ := newLogger(cmd.ErrOrStderr(), "error", "console")
		logError(fallback, "invalid configuration", err)
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	jsonfmt.SetLogger(logger.Named("jsonfmt"))
	defer func() {
		_ = logger.Sync()
		jsonfmt.SetLogger(nil)
	}()

	if err := fn(cfg, logger); err != nil {
		logError(logger, "command failed", err)
		return err
	}
	return nil
}

// runRender executes the root command.
func runRender(cmd *cobra.Command, cfg *config, logger *zap.Logger, format string, raw []string) error {
	opts, err := cfg.options()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	args, closeAll, err := convertArgs(format, raw, true)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeAll(); cerr != nil {
			logger.Warn("failed to close source", zap.Error(cerr))
		}
	}()

	e, err := jsonfmt.NewEmitterWithOptions(opts, format, args...)
	if err != nil {
		return classify(err)
	}

	capacity := cfg.Capacity
	if capacity < 0 {
		capacity = e.Size()
	}
	buf := make([]byte, capacity)
	n, err := e.Emit(buf)
	if err != nil {
		return classify(err)
	}
	if n > capacity {
		logger.Warn("output truncated", zap.Int("required", n), zap.Int("capacity", capacity))
	}
	logger.Debug("rendered", zap.String("format", format), zap.Int("length", n))

	out := buf[:min(n, capacity)]
	if cfg.Newline {
		out = append(out, '\n')
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return oops.Code("WRITE_FAILED").With("operation", "write output").Wrap(err)
	}
	return nil
}

// runSize executes the size subcommand.
func runSize(cmd *cobra.Command, cfg *config, logger *zap.Logger, format string, raw []string) error {
	opts, err := cfg.options()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	args, _, err := convertArgs(format, raw, false)
	if err != nil {
		return err
	}

	e, err := jsonfmt.NewEmitterWithOptions(opts, format, args...)
	if err != nil {
		return classify(err)
	}
	size := e.Size()
	logger.Debug("measured", zap.String("format", format), zap.Int("length", size))

	if _, err := cmd.OutOrStdout().Write(strconv.AppendInt(nil, int64(size), 10)); err != nil {
		return oops.Code("WRITE_FAILED").With("operation", "write size").Wrap(err)
	}
	if cfg.Newline {
		if _, err := cmd.OutOrStdout().Write([]byte{'\n'}); err != nil {
			return oops.Code("WRITE_FAILED").With("operation", "write size").Wrap(err)
		}
	}
	return nil
}
