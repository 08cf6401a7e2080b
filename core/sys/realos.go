package sys

import (
	"io"
	"os"
	"os/exec"

	"github.com/spf13/afero"
)

// NewRealOS returns an OS backed by the host operating system.
func NewRealOS() OS {
	return &realOS{fs: afero.NewOsFs()}
}

type realOS struct {
	fs afero.Fs
}

var _ OS = (*realOS)(nil)

func (r *realOS) Getwd() (string, error) {
	return os.Getwd()
}

func (r *realOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

func (r *realOS) Stat(name string) (os.FileInfo, error) {
	return r.fs.Stat(name)
}

func (r *realOS) Create(name string) (io.WriteCloser, error) {
	return r.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

func (r *realOS) StartProcess(path string, argv []string, attr *ProcAttr) (Process, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	if argv == nil {
		argv = []string{path}
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdin:  attr.Stdin,
		Stdout: attr.Stdout,
		Stderr: attr.Stderr,
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &realProcess{cmd: cmd}, nil
}

func (r *realOS) Exit(code int) {
	os.Exit(code)
}

type realProcess struct {
	cmd *exec.Cmd
}

func (p *realProcess) PID() int {
	return p.cmd.Process.Pid
}

func (p *realProcess) Wait() error {
	return p.cmd.Wait()
}
