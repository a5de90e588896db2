package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = ".nloc.yaml"
	envPrefix      = "NLOC"

	formatTOON = "toon"
	formatJSON = "json"
)

// config is the merged view of flags, NLOC_* environment variables and
// the optional config file, in that order of precedence.
type config struct {
	Exclude     []string `yaml:"exclude,omitempty"`
	Types       []string `yaml:"types,omitempty"`
	Encoding    bool     `yaml:"encoding"`
	Depth       int      `yaml:"depth"`
	Gitignore   bool     `yaml:"gitignore"`
	MaxFileSize int64    `yaml:"max-file-size"`
	MaxFiles    int      `yaml:"max-files"`
	Format      string   `yaml:"format"`
	LogLevel    string   `yaml:"log-level"`
}

func loadConfig(cmd *cobra.Command) (config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config{}, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(configFileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	return config{
		Exclude:     v.GetStringSlice("exclude"),
		Types:       v.GetStringSlice("types"),
		Encoding:    v.GetBool("encoding"),
		Depth:       v.GetInt("depth"),
		Gitignore:   v.GetBool("gitignore"),
		MaxFileSize: v.GetInt64("max-file-size"),
		MaxFiles:    v.GetInt("max-files"),
		Format:      strings.ToLower(v.GetString("format")),
		LogLevel:    v.GetString("log-level"),
	}, nil
}
