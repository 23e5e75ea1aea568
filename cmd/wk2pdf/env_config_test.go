package main

// Tests here use t.Setenv, so none of them run in parallel.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-wkhtmltopdf/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("WK2PDF_COMMAND", "/opt/wk/bin/wkhtmltopdf")
	t.Setenv("WK2PDF_CONFIG", "letter")
	t.Setenv("WK2PDF_OUTPUT", "out.pdf")

	env := loadEnvConfig()

	if env.Command != "/opt/wk/bin/wkhtmltopdf" {
		t.Errorf("Command = %q", env.Command)
	}
	if env.ConfigPath != "letter" {
		t.Errorf("ConfigPath = %q", env.ConfigPath)
	}
	if env.Output != "out.pdf" {
		t.Errorf("Output = %q", env.Output)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("WK2PDF_COMAND", "typo")
	t.Setenv("WK2PDF_OUTPUT", "known.pdf")

	var buf bytes.Buffer
	warnUnknownEnvVars(log.New(&buf))

	out := buf.String()
	if !strings.Contains(out, "WK2PDF_COMAND") {
		t.Errorf("expected warning for WK2PDF_COMAND, got %q", out)
	}
	if strings.Contains(out, "WK2PDF_OUTPUT") {
		t.Errorf("unexpected warning for known variable: %q", out)
	}
}

func TestApplyEnvConfig_Priority(t *testing.T) {
	env := &envConfig{Command: "env-wk", Output: "env.pdf"}

	t.Run("fills empty config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)
		if cfg.Command != "env-wk" || cfg.Output != "env.pdf" {
			t.Errorf("cfg = %+v, want env values", cfg)
		}
	})

	t.Run("config file wins over env", func(t *testing.T) {
		cfg := &config.Config{Command: "file-wk", Output: "file.pdf"}
		applyEnvConfig(env, cfg)
		if cfg.Command != "file-wk" || cfg.Output != "file.pdf" {
			t.Errorf("cfg = %+v, want file values", cfg)
		}
	})

	t.Run("flags win over env", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)
		mergeFlags(&convertFlags{output: "flag.pdf", renderer: rendererFlags{command: "flag-wk"}}, cfg)
		if cfg.Command != "flag-wk" || cfg.Output != "flag.pdf" {
			t.Errorf("cfg = %+v, want flag values", cfg)
		}
	})
}
