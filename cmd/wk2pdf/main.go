package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the subcommand in args[1] and returns the exit code.
// Anything that is not a known command is treated as convert input.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "wk2pdf %s\n", Version)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest, env)
	case "convert":
	default:
		rest = args[1:]
	}

	return runConvertCmd(rest, env)
}

// runConvertCmd parses convert flags, sets up logging and runs the
// conversion under a signal-aware context.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if env.Logger == nil {
		env.Logger = newLogger(env.Stderr, flags.common)
	}
	logger := env.Logger

	// maxprocs.Set only fails on an invalid GOMAXPROCS, in which case the
	// runtime default stays in effect.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))
	warnUnknownEnvVars(logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
