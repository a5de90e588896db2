package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/nloc/internal/discover"
)

// defaultFileConfig is written by `nloc init`.
func defaultFileConfig() config {
	return config{
		Exclude:  append([]string(nil), discover.DefaultExclude...),
		Format:   formatTOON,
		LogLevel: "warn",
	}
}

// newInitCommand implements `nloc init`, which writes (or updates) a
// config file holding every setting nloc reads.
func newInitCommand(stdout, stderr io.Writer) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + configFileName,
		Long: `Write an nloc config file. Settings already present in the file are
kept; missing ones are filled with their defaults. Creates the file if it
does not exist.

path defaults to ./` + configFileName + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFileName
			if len(args) > 0 {
				path = args[0]
			}

			existing, err := os.ReadFile(path)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			updated, err := applyDefaults(existing)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if dryRun {
				_, _ = stdout.Write(updated)
				return nil
			}

			if err := os.WriteFile(path, updated, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			_, _ = fmt.Fprintf(stderr, "wrote nloc config to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")
	return cmd
}

// applyDefaults parses an existing config file and fills unset settings
// from defaultFileConfig. It is a pure function for easy testing.
func applyDefaults(existing []byte) ([]byte, error) {
	cfg := defaultFileConfig()
	if len(bytes.TrimSpace(existing)) > 0 {
		var current config
		if err := yaml.Unmarshal(existing, &current); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		merge(&cfg, current)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// merge copies every non-zero field of src onto dst.
func merge(dst *config, src config) {
	if src.Exclude != nil {
		dst.Exclude = src.Exclude
	}
	if src.Types != nil {
		dst.Types = src.Types
	}
	dst.Encoding = dst.Encoding || src.Encoding
	dst.Gitignore = dst.Gitignore || src.Gitignore
	if src.Depth != 0 {
		dst.Depth = src.Depth
	}
	if src.MaxFileSize != 0 {
		dst.MaxFileSize = src.MaxFileSize
	}
	if src.MaxFiles != 0 {
		dst.MaxFiles = src.MaxFiles
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}
