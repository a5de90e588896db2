// nloc counts total, empty and comment lines of the files below a path.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phobologic/nloc/internal/analyze"
	"github.com/phobologic/nloc/internal/logger"
	"github.com/phobologic/nloc/internal/ranking"
	"github.com/phobologic/nloc/internal/toon"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nloc [path]",
		Short: "Count source lines below a path",
		Long: `nloc walks a file or directory and reports total, empty and comment
line counts per file and in aggregate.

Files whose extension has no counting rules are listed as "not supported"
and contribute nothing to the summary.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			return runCount(target, cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringSliceP("exclude", "e", nil, "skip paths containing any of these substrings (replaces the defaults)")
	f.StringSliceP("types", "t", nil, "only count files with these extensions, e.g. .go,.py")
	f.Bool("encoding", false, "detect each file's text encoding")
	f.Int("depth", 0, "directory levels to descend (0 = unlimited)")
	f.Bool("gitignore", false, "skip files matched by the target's .gitignore")
	f.Int64("max-file-size", 0, "skip files larger than this many bytes (0 = no limit)")
	f.IntP("max-files", "n", 0, "only report the N largest files")
	f.String("format", formatTOON, "output format: toon or json")
	f.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	f.String("config", "", "config file (default ./"+configFileName+")")

	cmd.AddCommand(newInitCommand(stdout, stderr))
	return cmd
}

func runCount(target string, cfg config, stdout, stderr io.Writer) error {
	if cfg.Format != formatTOON && cfg.Format != formatJSON {
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	res, err := analyze.Run(analyze.Options{
		Target:           target,
		Exclude:          cfg.Exclude,
		Types:            cfg.Types,
		WithEncoding:     cfg.Encoding,
		RespectGitignore: cfg.Gitignore,
		MaxDepth:         cfg.Depth,
		MaxFileSize:      cfg.MaxFileSize,
		Logger:           log,
	}, nil)
	if err != nil {
		return err
	}

	res = ranking.SelectFiles(res, cfg.MaxFiles)

	if cfg.Format == formatJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, _ = fmt.Fprintln(stdout, toon.Encode(res))
	return nil
}
