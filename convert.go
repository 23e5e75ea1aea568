package wkhtmltopdf

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Callback receives conversion outcomes. It is called once with
// (nil, stream) before Convert returns, then at most once more with the
// terminal outcome: (err, nil) on a fatal error, (nil, nil) on exit.
type Callback func(err error, out *Stream)

// Converter launches renderer processes. The zero value is not usable;
// create one with NewConverter. A Converter holds no per-conversion state
// and is safe for concurrent use.
type Converter struct {
	command  string
	launcher Launcher
	logger   *log.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithCommand pins the executable path, ignoring SetCommand.
func WithCommand(path string) Option {
	return func(c *Converter) {
		c.command = path
	}
}

// WithLauncher replaces the platform launch strategy.
func WithLauncher(l Launcher) Option {
	return func(c *Converter) {
		if l != nil {
			c.launcher = l
		}
	}
}

// WithLogger sets the logger for launch, kill, and ignored-diagnostic events.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConverter creates a Converter using DefaultLauncher and a discarding logger.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		launcher: DefaultLauncher(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = NewConverter()

// Convert renders input with the default converter. See Converter.Convert.
func Convert(input string, opts *Options, cb Callback) *Stream {
	return defaultConverter.Convert(input, opts, cb)
}

// Render is an alias of Convert.
func Render(input string, opts *Options, cb Callback) *Stream {
	return defaultConverter.Convert(input, opts, cb)
}

// Args returns the argument vector Convert would launch for input.
func (c *Converter) Args(input string, opts *Options) []string {
	return argBuilder{command: c.commandPath(), quote: c.launcher.Quotes()}.build(opts, input)
}

// Convert launches the renderer for input, a URL or inline HTML, and
// returns its stdout. It never blocks on the subprocess.
//
// Errors are delivered once: through cb when given, and on the returned
// stream when cb is nil or the stream has OnError listeners.
func (c *Converter) Convert(input string, opts *Options, cb Callback) *Stream {
	if opts == nil {
		opts = &Options{}
	}
	url := IsURL(input)
	argv := c.Args(input, opts)
	c.logger.Debug("launching renderer", "argv", argv)

	proc, err := c.launcher.Launch(argv)
	if err != nil {
		stream := newStream(io.NopCloser(strings.NewReader("")))
		close(stream.reaped)
		s := newSession(nil, stream, opts.Ignore, cb, c.logger)
		if cb != nil {
			cb(nil, stream)
		}
		s.markReady()
		if !s.handleError(err) {
			// Nothing was started, so no exit will ever be reported.
			stream.state.Store(int32(StateExited))
			stream.finish(nil)
		}
		return stream
	}

	stream := newStream(proc.Stdout())
	s := newSession(proc, stream, opts.Ignore, cb, c.logger)
	s.start(input, url)
	if cb != nil {
		cb(nil, stream)
	}
	s.markReady()
	return stream
}

func (c *Converter) commandPath() string {
	if c.command != "" {
		return c.command
	}
	return Command()
}
