// Package wkhtmltopdf drives the wkhtmltopdf command-line renderer.
//
// # Quick Start
//
// Convert a URL or inline HTML and read the PDF from the returned stream:
//
//	stream := wkhtmltopdf.Convert("https://example.com", nil, nil)
//	defer stream.Close()
//	if _, err := io.Copy(out, stream); err != nil {
//	    log.Fatal(err)
//	}
//
// Inline HTML is piped to the renderer's stdin; URLs (http, https, file)
// are passed on the command line and fetched by the renderer itself.
//
// # Options
//
// Options holds the reserved settings (Output, Ignore, RawArgs) as fields
// and every other renderer option as an ordered flag list:
//
//	opts := &wkhtmltopdf.Options{Output: "report.pdf"}
//	opts.Set("pageSize", wkhtmltopdf.String("A4"))
//	opts.Set("grayscale", wkhtmltopdf.Bool(true))
//	opts.Set("toc", wkhtmltopdf.Bool(true))
//	opts.Set("tocHeaderText", wkhtmltopdf.String("Contents"))
//
// Names are kebab-cased into long flags (--page-size); single characters
// become short flags (-s). The objects toc, cover and page are emitted as
// bare words after every other flag, and the TOC sub-options are moved
// right after toc, where the renderer expects them.
//
// # Errors and Warnings
//
// The first chunk the renderer writes to stderr decides the outcome. If it
// matches an Ignore rule it is swallowed and the renderer keeps running;
// otherwise the renderer is killed and a *DiagnosticError is delivered.
// A renderer that cannot be started produces a *LaunchError through the
// same path.
//
//	opts.Ignore = []wkhtmltopdf.IgnoreRule{
//	    wkhtmltopdf.IgnorePattern(regexp.MustCompile(`^QFont::`)),
//	}
//
// Errors are delivered to the Callback when one is given, and on the
// stream (Read returns the error, OnError listeners fire) when there is no
// callback or the stream has listeners.
//
// # Launching
//
// On Windows the renderer is executed directly with discrete arguments.
// Elsewhere the quoted command line runs under /bin/sh, piped through cat
// so an early-closing reader does not break the renderer's stdout. Use
// SetCommand or WithCommand when the binary is not on PATH.
package wkhtmltopdf
