package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wk2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Render a URL, HTML or Markdown file to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check the renderer installation")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'wk2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wk2pdf convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render input to PDF with wkhtmltopdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    URL (http, https, file), HTML or Markdown file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output PDF file (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renderer:")
	fmt.Fprintln(w, "      --command <path>        wkhtmltopdf binary (default: PATH lookup)")
	fmt.Fprintln(w, "      --launcher <s>          Launch strategy: auto, shell, direct")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -s, --set <name=value>      Renderer option, e.g. pageSize=A4 (repeatable)")
	fmt.Fprintln(w, "                              true/false toggle a flag; numbers pass unquoted")
	fmt.Fprintln(w, "      --toc                   Insert a table of contents")
	fmt.Fprintln(w, "      --cover <url>           Cover page URL or file")
	fmt.Fprintln(w, "      --raw <arg>             Raw renderer argument; replaces options,")
	fmt.Fprintln(w, "                              input and output (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Warnings:")
	fmt.Fprintln(w, "      --ignore <msg>          Tolerate this exact stderr message (repeatable)")
	fmt.Fprintln(w, "      --ignore-pattern <re>   Tolerate stderr matching a JS regex (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "  -m, --markdown              Treat input as Markdown (auto for .md files)")
	fmt.Fprintln(w, "      --title <s>             Page title")
	fmt.Fprintln(w, "      --highlight-style <s>   Code highlight style (default: github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WK2PDF_COMMAND, WK2PDF_CONFIG, WK2PDF_OUTPUT")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wk2pdf doctor [--json] [--command <path>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Locate the renderer, probe its version and report how it will be launched.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: wk2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: wk2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
