// Package systest provides a deterministic OS for testing the shell
// without touching the host system.
package systest

import (
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/spf13/afero"
	"github.com/wishshell/wish/core/sys"
)

// ProgramFunc is the body of a fake program. The return value becomes
// the program's exit status.
type ProgramFunc func(p *Proc) int

// Proc gives a ProgramFunc access to its invocation.
type Proc struct {
	// Path is the resolved path the program was started from.
	Path string
	// Argv holds the command line arguments, including the command name
	// as Argv[0].
	Argv []string
	// Dir is the working directory the program was started in.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// FS is the fake filesystem shared with the OS.
	FS afero.Fs
}

// NewFakeOS returns a FakeOS with an empty in-memory filesystem and a
// working directory of "/".
func NewFakeOS() *FakeOS {
	return &FakeOS{
		FS:       afero.NewMemMapFs(),
		Cwd:      "/",
		programs: make(map[string]ProgramFunc),
	}
}

// FakeOS implements sys.OS over an in-memory filesystem and a registry
// of fake programs. Programs run on their own goroutines so process
// lifecycle behaves like the real thing; the order of starts, waits and
// exits is recorded for assertions.
type FakeOS struct {
	FS  afero.Fs
	Cwd string

	mu       sync.Mutex
	programs map[string]ProgramFunc
	nextPID  int
	events   []string
	exitCode *int
}

var _ sys.OS = (*FakeOS)(nil)

// Install registers a program and creates an executable file for it on
// the fake filesystem.
func (f *FakeOS) Install(name string, prog ProgramFunc) {
	f.mu.Lock()
	f.programs[name] = prog
	f.mu.Unlock()

	if err := afero.WriteFile(f.FS, name, nil, 0755); err != nil {
		panic(err)
	}
	// MemMapFs quietly drops the mode on create.
	if err := f.FS.Chmod(name, 0755); err != nil {
		panic(err)
	}
}

// EventLog returns the recorded process lifecycle events in order.
func (f *FakeOS) EventLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

// ExitCode reports the status passed to Exit, if Exit was called.
func (f *FakeOS) ExitCode() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.exitCode == nil {
		return 0, false
	}
	return *f.exitCode, true
}

func (f *FakeOS) record(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, fmt.Sprintf(format, args...))
}

// abs resolves name against the fake working directory.
func (f *FakeOS) abs(name string) string {
	if path.IsAbs(name) {
		return path.Clean(name)
	}
	return path.Clean(path.Join(f.Cwd, name))
}

func (f *FakeOS) Getwd() (string, error) {
	return f.Cwd, nil
}

func (f *FakeOS) Chdir(dir string) error {
	dir = f.abs(dir)

	stat, err := f.FS.Stat(dir)
	switch {
	case err != nil:
		return err
	case !stat.IsDir():
		return fmt.Errorf("%s: not a directory", dir)
	default:
		f.Cwd = dir
		return nil
	}
}

func (f *FakeOS) Stat(name string) (os.FileInfo, error) {
	return f.FS.Stat(f.abs(name))
}

func (f *FakeOS) Create(name string) (io.WriteCloser, error) {
	return f.FS.OpenFile(f.abs(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

func (f *FakeOS) StartProcess(name string, argv []string, attr *sys.ProcAttr) (sys.Process, error) {
	if attr == nil {
		attr = &sys.ProcAttr{}
	}
	if argv == nil {
		argv = []string{name}
	}
	resolved := f.abs(name)

	f.mu.Lock()
	prog, ok := f.programs[resolved]
	if !ok {
		f.mu.Unlock()
		return nil, fmt.Errorf("fork/exec %s: no such program", resolved)
	}
	f.nextPID++
	pid := f.nextPID
	f.mu.Unlock()

	f.record("start %d %s", pid, resolved)

	proc := &Proc{
		Path:   resolved,
		Argv:   argv,
		Dir:    f.Cwd,
		Stdin:  attr.Stdin,
		Stdout: attr.Stdout,
		Stderr: attr.Stderr,
		FS:     f.FS,
	}
	if proc.Stdin == nil {
		proc.Stdin = eofReader{}
	}
	if proc.Stdout == nil {
		proc.Stdout = io.Discard
	}
	if proc.Stderr == nil {
		proc.Stderr = io.Discard
	}

	fp := &fakeProcess{vos: f, pid: pid, done: make(chan struct{})}
	go func() {
		defer close(fp.done)
		fp.status = prog(proc)
	}()

	return fp, nil
}

func (f *FakeOS) Exit(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitCode = &code
	f.events = append(f.events, fmt.Sprintf("exit %d", code))
}

type fakeProcess struct {
	vos    *FakeOS
	pid    int
	done   chan struct{}
	status int
}

var _ sys.Process = (*fakeProcess)(nil)

func (p *fakeProcess) PID() int {
	return p.pid
}

func (p *fakeProcess) Wait() error {
	<-p.done
	p.vos.record("wait %d status %d", p.pid, p.status)
	if p.status != 0 {
		return &ExitError{Status: p.status}
	}
	return nil
}

// ExitError is returned by Wait for programs with non-zero status.
type ExitError struct {
	Status int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Status)
}

// ExitCode implements sys.ExitCoder.
func (e *ExitError) ExitCode() int {
	return e.Status
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
