package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	wkhtmltopdf "github.com/alnah/go-wkhtmltopdf"
	"github.com/alnah/go-wkhtmltopdf/internal/hints"
)

// versionProbeTimeout bounds the renderer --version call.
const versionProbeTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Renderer rendererInfo `json:"renderer"`
	Launch   launchInfo   `json:"launch"`
	Env      envInfo      `json:"environment"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// rendererInfo holds renderer binary detection results.
type rendererInfo struct {
	Command    string `json:"command"`
	Found      bool   `json:"found"`
	Path       string `json:"path,omitempty"`
	Version    string `json:"version,omitempty"`
	PatchedQt  bool   `json:"patched_qt"`
	FromEnvVar bool   `json:"from_env"`
}

// launchInfo describes how the renderer is started on this platform.
type launchInfo struct {
	Strategy string `json:"strategy"` // "shell" or "direct"
	Shell    string `json:"shell,omitempty"`
	Quoting  bool   `json:"quoting"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	Display   string `json:"display,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "machine-readable output")
	command := fs.String("command", "", "wkhtmltopdf binary to check")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	result := runDoctor(*command)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks. command overrides
// WK2PDF_COMMAND, which overrides the default binary name.
func runDoctor(command string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			Container: hints.IsInContainer(),
			Display:   os.Getenv("DISPLAY"),
		},
	}

	checkRenderer(result, command)
	checkLaunch(result)
	checkDisplay(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkRenderer locates the binary and probes its version.
func checkRenderer(result *doctorResult, command string) {
	if command == "" {
		command = os.Getenv("WK2PDF_COMMAND")
		result.Renderer.FromEnvVar = command != ""
	}
	if command == "" {
		command = wkhtmltopdf.Command()
	}
	result.Renderer.Command = command

	path, err := exec.LookPath(command)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found. Install wkhtmltopdf or set WK2PDF_COMMAND", command))
		return
	}
	result.Renderer.Found = true
	result.Renderer.Path = path

	ctx, cancel := context.WithTimeout(context.Background(), versionProbeTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- probing the configured renderer
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get renderer version: %v", err))
		return
	}
	result.Renderer.Version = strings.TrimSpace(string(out))
	result.Renderer.PatchedQt = strings.Contains(result.Renderer.Version, "patched qt")
	if !result.Renderer.PatchedQt {
		result.Warnings = append(result.Warnings,
			"Renderer built without patched Qt: toc, cover, headers and outlines are unavailable")
	}
}

// checkLaunch reports the platform launch strategy and its prerequisites.
func checkLaunch(result *doctorResult) {
	l := wkhtmltopdf.DefaultLauncher()
	result.Launch.Quoting = l.Quotes()

	sh, ok := l.(*wkhtmltopdf.ShellLauncher)
	if !ok {
		result.Launch.Strategy = "direct"
		return
	}
	result.Launch.Strategy = "shell"
	result.Launch.Shell = sh.Shell
	if result.Launch.Shell == "" {
		result.Launch.Shell = wkhtmltopdf.DefaultShell
	}
	if _, err := os.Stat(result.Launch.Shell); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Shell %s not available; use --launcher direct", result.Launch.Shell))
	}
}

// checkDisplay warns when an unpatched build has no X server to talk to.
func checkDisplay(result *doctorResult) {
	if !result.Renderer.Found || result.Renderer.PatchedQt || result.Renderer.Version == "" {
		return
	}
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return
	}
	if result.Env.Display == "" {
		result.Warnings = append(result.Warnings,
			"DISPLAY is not set; unpatched builds need an X server (try xvfb-run)")
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "wk2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Renderer")
	if r.Renderer.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Renderer.Path)
		if r.Renderer.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Renderer.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Renderer.Command)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Launch")
	if r.Launch.Strategy == "shell" {
		fmt.Fprintf(w, "  [OK] Strategy: %s -c \"... | cat\" (quoted arguments)\n", r.Launch.Shell)
	} else {
		fmt.Fprintln(w, "  [OK] Strategy: direct (unquoted arguments)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
