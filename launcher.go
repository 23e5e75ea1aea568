package wkhtmltopdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"mvdan.cc/sh/v3/syntax"

	"github.com/alnah/go-wkhtmltopdf/internal/process"
)

// DefaultShell runs the joined command line on non-Windows platforms.
const DefaultShell = "/bin/sh"

// Process is a running renderer with its three standard streams.
type Process interface {
	Stdin() io.WriteCloser
	Stdout() io.ReadCloser
	Stderr() io.ReadCloser
	// Wait blocks until the process exits.
	Wait() error
	// Kill terminates the process and every process it started.
	Kill() error
}

// Launcher starts the renderer from an argument vector.
//
// Quotes reports whether BuildArgs must shell-quote values for this
// launcher. The two must agree: a shell launcher needs quoting, an
// argument-array launcher must not receive it.
type Launcher interface {
	Launch(argv []string) (Process, error)
	Quotes() bool
}

// Compile-time interface implementation checks.
var (
	_ Launcher = (*DirectLauncher)(nil)
	_ Launcher = (*ShellLauncher)(nil)
	_ Process  = (*execProcess)(nil)
)

// DefaultLauncher returns the launch strategy for the running platform:
// argument-array launch on Windows, shell launch elsewhere.
func DefaultLauncher() Launcher {
	if runtime.GOOS == "windows" {
		return &DirectLauncher{}
	}
	return &ShellLauncher{}
}

// DirectLauncher executes argv[0] with argv[1:] as discrete arguments.
type DirectLauncher struct{}

// Quotes is false: arguments reach the tool without a shell.
func (l *DirectLauncher) Quotes() bool { return false }

// Launch starts argv directly.
func (l *DirectLauncher) Launch(argv []string) (Process, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	return startProcess(exec.Command(argv[0], argv[1:]...), argv[0]) // #nosec G204 -- argv is the renderer invocation
}

// ShellLauncher runs the joined, quoted argument vector through a POSIX
// shell and pipes stdout through cat. Without the extra pipeline stage
// some terminals leave the stdout pipe in a state that raises EPIPE in
// downstream consumers when the reading side closes early.
type ShellLauncher struct {
	// Shell overrides DefaultShell.
	Shell string
}

// Quotes is true: values are interpreted by the shell.
func (l *ShellLauncher) Quotes() bool { return true }

// Launch validates and starts the shell pipeline.
func (l *ShellLauncher) Launch(argv []string) (Process, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	line := CommandLine(argv)
	if err := validateCommandLine(line); err != nil {
		return nil, err
	}
	shell := l.Shell
	if shell == "" {
		shell = DefaultShell
	}
	return startProcess(exec.Command(shell, "-c", line), argv[0]) // #nosec G204 -- line is validated above
}

// CommandLine returns the shell string ShellLauncher executes for argv.
func CommandLine(argv []string) string {
	return strings.Join(argv, " ") + " | cat"
}

// validateCommandLine accepts exactly one pipeline of two simple
// commands, so an unquoted flag name cannot smuggle in extra statements.
func validateCommandLine(line string) error {
	f, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCommandLine, err)
	}
	if len(f.Stmts) != 1 {
		return fmt.Errorf("%w: %d statements", ErrInvalidCommandLine, len(f.Stmts))
	}
	stmt := f.Stmts[0]
	bin, ok := stmt.Cmd.(*syntax.BinaryCmd)
	if !ok || bin.Op != syntax.Pipe || stmt.Background || len(stmt.Redirs) > 0 {
		return fmt.Errorf("%w: not a single pipeline", ErrInvalidCommandLine)
	}
	if !isSimpleCall(bin.X) || !isSimpleCall(bin.Y) {
		return fmt.Errorf("%w: unexpected shell construct", ErrInvalidCommandLine)
	}
	return nil
}

func isSimpleCall(s *syntax.Stmt) bool {
	if s == nil || s.Background || len(s.Redirs) > 0 {
		return false
	}
	call, ok := s.Cmd.(*syntax.CallExpr)
	if !ok || len(call.Assigns) > 0 {
		return false
	}
	for _, w := range call.Args {
		for _, part := range w.Parts {
			switch p := part.(type) {
			case *syntax.Lit, *syntax.SglQuoted:
			case *syntax.DblQuoted:
				for _, inner := range p.Parts {
					if _, lit := inner.(*syntax.Lit); !lit {
						return false
					}
				}
			default:
				return false
			}
		}
	}
	return true
}

// execProcess adapts exec.Cmd to Process. Stdout and stderr are plain
// os.Pipe pairs rather than StdoutPipe/StderrPipe, so Wait never closes
// the reading ends under a caller that is still consuming output.
type execProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *os.File
	stderr *os.File

	mu     sync.Mutex
	waited bool
}

func startProcess(cmd *exec.Cmd, name string) (*execProcess, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &LaunchError{Command: name, Err: fmt.Errorf("creating stdin pipe: %w", err)}
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		_ = stdin.Close()
		return nil, &LaunchError{Command: name, Err: fmt.Errorf("creating stdout pipe: %w", err)}
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		_ = stdin.Close()
		closeAll(outR, outW)
		return nil, &LaunchError{Command: name, Err: fmt.Errorf("creating stderr pipe: %w", err)}
	}

	cmd.Stdout = outW
	cmd.Stderr = errW
	process.Isolate(cmd)

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		closeAll(outR, outW, errR, errW)
		return nil, &LaunchError{Command: name, Err: err}
	}
	// The child holds its own copies; ours would keep EOF from arriving.
	closeAll(outW, errW)

	return &execProcess{cmd: cmd, stdin: stdin, stdout: outR, stderr: errR}, nil
}

func (p *execProcess) Stdin() io.WriteCloser { return p.stdin }
func (p *execProcess) Stdout() io.ReadCloser { return p.stdout }
func (p *execProcess) Stderr() io.ReadCloser { return p.stderr }

func (p *execProcess) Wait() error {
	err := p.cmd.Wait()
	p.mu.Lock()
	p.waited = true
	p.mu.Unlock()
	return err
}

// Kill signals the whole process group, then the leader as a fallback.
// A reaped process is never signalled, its PID may already be reused.
func (p *execProcess) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.waited || p.cmd.Process == nil {
		return nil
	}
	process.KillProcessGroup(p.cmd.Process.Pid)
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
