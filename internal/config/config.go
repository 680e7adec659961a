// Package config loads pagescan's small set of ambient settings: log level
// and format, and the delimiter SELECT output is joined with. None of this
// governs the file format or query semantics; it only shapes how the CLI
// logs and prints.
package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config is pagescan's optional YAML configuration, loaded from a file
// named by -config or the PAGESCAN_CONFIG environment variable.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // "text" or "json"
	Delimiter string `yaml:"delimiter"`  // SELECT output column separator, default "|"
}

// Default returns the configuration pagescan runs with when no config file
// is present.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Delimiter: "|",
	}
}

// Load reads and parses the YAML file at path, overlaying it onto
// Default(). A missing path is not an error; Load returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Logger builds a logrus.Logger configured per cfg.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{})
	}

	log.SetOutput(os.Stderr)
	return log
}
