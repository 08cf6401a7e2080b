// Package shell implements the wish command interpreter: a tokenizer
// that isolates the ">" and "&" operators, a fixed builtin dispatcher,
// command resolution over a replaceable search path, stdout redirection
// and parallel execution of "&" separated commands.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wishshell/wish/core/config"
	"github.com/wishshell/wish/core/sys"
	"github.com/wishshell/wish/core/trace"
)

// ErrorMessage is the single diagnostic the shell prints. Every failure
// collapses to it.
const ErrorMessage = "An error has occurred"

// errProcLimit rejects launches past the per-line process cap.
var errProcLimit = errors.New("process limit reached")

// Shell evaluates command lines against an OS.
type Shell struct {
	OS    sys.OS
	Paths *PathList

	// Stdin, Stdout and Stderr are the shell's own streams. Children
	// inherit them, except a redirect swaps Stdout for the target file.
	// A nil Stderr discards diagnostics, nil child streams follow the
	// OS's convention for absent files.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Log receives trace events. Nil disables tracing.
	Log *trace.SessionLogger

	maxTokens int
	maxProcs  int
}

// New assembles a shell from the configuration. The caller wires up the
// stream fields before calling Run.
func New(vos sys.OS, cfg *config.Configuration, log *trace.SessionLogger) *Shell {
	return &Shell{
		OS:        vos,
		Paths:     NewPathList(cfg.Path...),
		Log:       log,
		maxTokens: cfg.MaxTokens,
		maxProcs:  cfg.MaxProcs,
	}
}

// Run evaluates lines from src until it is exhausted or the exit
// builtin fires. The returned status is always zero; failures inside a
// line are reported and skipped, they never end the shell.
func (s *Shell) Run(src LineSource) int {
	for {
		line, err := src.ReadLine()
		if err != nil {
			return 0
		}
		if err := s.RunLine(line); errors.Is(err, errExit) {
			return 0
		}
	}
}

// launch is an external command in flight.
type launch struct {
	proc sys.Process
	// out is the redirect target to close once the command is collected,
	// nil when stdout wasn't redirected.
	out io.Closer
}

// RunLine evaluates a single command line: builtins run synchronously
// in place, external commands start without waiting and are collected
// together once the whole line has been dispatched.
func (s *Shell) RunLine(line string) error {
	tokens, err := Tokenize(line, s.maxTokens)
	if err != nil {
		s.reportError()
		s.log().Record(&trace.ParseError{Line: line, Error: err.Error()})
		return nil
	}

	var launches []launch
	for _, command := range splitParallel(tokens) {
		if builtin, ok := LookupBuiltin(command[0]); ok {
			err := builtin.Main(s, command)
			if errors.Is(err, errExit) {
				// Exit abandons the line; in-flight commands are not
				// collected, matching an immediate process exit.
				return err
			}

			event := &trace.Builtin{Name: command[0], Argv: command}
			if err != nil {
				s.reportError()
				event.Error = err.Error()
			}
			s.log().Record(event)
			continue
		}

		if proc := s.startCommand(command, len(launches)); proc != nil {
			launches = append(launches, *proc)
		}
	}

	// The barrier: every launch is collected exactly once, no line
	// outlives its children.
	for _, l := range launches {
		err := l.proc.Wait()
		s.log().Record(&trace.Wait{PID: l.proc.PID(), ExitStatus: sys.ExitStatus(err)})
		if l.out != nil {
			l.out.Close()
		}
	}
	return nil
}

// startCommand resolves and launches one external command, reporting
// any failure. It returns nil when nothing was started.
func (s *Shell) startCommand(command []string, inFlight int) *launch {
	argv, target, err := splitRedirect(command)
	if err != nil {
		s.reportError()
		s.log().Record(&trace.ParseError{Line: strings.Join(command, " "), Error: err.Error()})
		return nil
	}

	if s.maxProcs > 0 && inFlight >= s.maxProcs {
		s.reportError()
		s.log().Record(&trace.ExecError{Argv0: argv[0], Error: errProcLimit.Error()})
		return nil
	}

	execPath, err := LookPath(s.OS, s.Paths, argv[0])
	if err != nil {
		s.reportError()
		s.log().Record(&trace.ExecError{Argv0: argv[0], Error: err.Error()})
		return nil
	}

	attr := &sys.ProcAttr{
		Stdin:  s.Stdin,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	}

	// The target is opened only once the command resolves so a missing
	// command leaves no empty file behind.
	var out io.WriteCloser
	if target != "" {
		out, err = s.OS.Create(target)
		if err != nil {
			s.reportError()
			s.log().Record(&trace.ExecError{Argv0: argv[0], Error: err.Error()})
			return nil
		}
		attr.Stdout = out
	}

	proc, err := s.OS.StartProcess(execPath, argv, attr)
	if err != nil {
		if out != nil {
			out.Close()
		}
		s.reportError()
		s.log().Record(&trace.ExecError{Argv0: argv[0], Error: err.Error()})
		return nil
	}

	s.log().Record(&trace.Exec{Path: execPath, Argv: argv})
	return &launch{proc: proc, out: out}
}

// splitParallel cuts the token list at every "&" into separate
// commands, dropping empty runs so "a & & b" and trailing "&" work.
func splitParallel(tokens []string) [][]string {
	var commands [][]string
	start := 0
	for i, tok := range tokens {
		if tok == opParallel {
			if i > start {
				commands = append(commands, tokens[start:i])
			}
			start = i + 1
		}
	}
	if start < len(tokens) {
		commands = append(commands, tokens[start:])
	}
	return commands
}

func (s *Shell) reportError() {
	fmt.Fprintln(s.stderr(), ErrorMessage)
}

func (s *Shell) stderr() io.Writer {
	if s.Stderr == nil {
		return io.Discard
	}
	return s.Stderr
}

func (s *Shell) log() *trace.SessionLogger {
	if s.Log == nil {
		return trace.Discard()
	}
	return s.Log
}
