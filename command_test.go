package wkhtmltopdf

import (
	"path/filepath"
	"strings"
	"testing"
)

// Not parallel: mutates process-wide state.
func TestSetCommand(t *testing.T) {
	t.Cleanup(func() { SetCommand("") })

	if got := Command(); got != DefaultCommand {
		t.Fatalf("Command() = %q, want default %q", got, DefaultCommand)
	}

	SetCommand("/opt/bin/wkhtmltopdf")
	if got := Command(); got != "/opt/bin/wkhtmltopdf" {
		t.Errorf("Command() = %q after SetCommand", got)
	}

	SetCommand("")
	if got := Command(); got != DefaultCommand {
		t.Errorf("Command() = %q after reset, want %q", got, DefaultCommand)
	}
}

func TestConverter_WithCommandOverridesProcessWide(t *testing.T) {
	t.Parallel()

	c := NewConverter(WithCommand("/custom/wk"), WithLauncher(&DirectLauncher{}))
	if got := c.Args("<p/>", nil)[0]; got != "/custom/wk" {
		t.Errorf("Args()[0] = %q, want /custom/wk", got)
	}
}

// Not parallel: mutates process-wide state.
func TestRender_UsesProcessWideCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-renderer")
	SetCommand(missing)
	t.Cleanup(func() { SetCommand("") })

	for name, run := range map[string]func(string, *Options, Callback) *Stream{
		"Convert": Convert,
		"Render":  Render,
	} {
		err := run("<p/>", nil, nil).Wait()
		if err == nil || !strings.Contains(err.Error(), "no-such-renderer") {
			t.Errorf("%s: Wait() = %v, want an error naming %s", name, err, missing)
		}
	}
}
