// Package sys is the boundary between the shell and the operating system.
package sys

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = exec.ErrNotFound

// OS holds the operating system primitives the shell depends on.
// Implementations serve a single shell at a time.
type OS interface {
	// Getwd returns the shell's working directory.
	Getwd() (string, error)

	// Chdir changes the shell's working directory.
	Chdir(dir string) error

	// Stat returns the FileInfo describing the named file.
	Stat(name string) (os.FileInfo, error)

	// Create opens the named file for writing, creating it if it doesn't
	// exist and truncating it if it does.
	Create(name string) (io.WriteCloser, error)

	// StartProcess runs the program at path with the given argv and
	// attributes. It returns as soon as the process is started; callers
	// collect it with Process.Wait.
	StartProcess(path string, argv []string, attr *ProcAttr) (Process, error)

	// Exit ends the shell's process immediately with the given status.
	Exit(code int)
}

// ProcAttr holds the attributes applied to a new process.
type ProcAttr struct {
	// Stdin specifies the process's standard input.
	Stdin io.Reader

	// Stdout and Stderr specify the process's standard output and error.
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a started child process.
type Process interface {
	// PID returns the process ID.
	PID() int

	// Wait blocks until the process exits. The error is non-nil if the
	// process exited with a non-zero status.
	Wait() error
}

// ExitCoder reports the exit status of a finished process.
type ExitCoder interface {
	ExitCode() int
}

// ExitStatus maps the result of Process.Wait to a numeric exit status.
func ExitStatus(err error) int {
	var coder ExitCoder
	switch {
	case err == nil:
		return 0
	case errors.As(err, &coder):
		return coder.ExitCode()
	default:
		return -1
	}
}
