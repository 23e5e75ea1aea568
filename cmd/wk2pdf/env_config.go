package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-wkhtmltopdf/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	Command    string // WK2PDF_COMMAND: renderer binary
	ConfigPath string // WK2PDF_CONFIG: config file name or path
	Output     string // WK2PDF_OUTPUT: output file
}

// knownEnvVars lists valid WK2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"WK2PDF_COMMAND": true,
	"WK2PDF_CONFIG":  true,
	"WK2PDF_OUTPUT":  true,
}

func loadEnvConfig() *envConfig {
	return &envConfig{
		Command:    os.Getenv("WK2PDF_COMMAND"),
		ConfigPath: os.Getenv("WK2PDF_CONFIG"),
		Output:     os.Getenv("WK2PDF_OUTPUT"),
	}
}

// warnUnknownEnvVars logs a warning for each unrecognized WK2PDF_* variable.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "WK2PDF_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig fills config values the file left empty.
// CLI flags are applied afterwards by mergeFlags, giving
// flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Command != "" && cfg.Command == "" {
		cfg.Command = env.Command
	}
	if env.Output != "" && cfg.Output == "" {
		cfg.Output = env.Output
	}
}
