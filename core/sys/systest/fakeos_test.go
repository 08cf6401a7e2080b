package systest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/wishshell/wish/core/sys"
)

func TestInstallMakesExecutable(t *testing.T) {
	fos := NewFakeOS()
	fos.Install("/bin/ls", func(p *Proc) int { return 0 })

	info, err := fos.Stat("/bin/ls")
	assert.Nil(t, err)
	assert.NotZero(t, info.Mode()&0111, "installed programs must be executable")
}

func TestChdirValidates(t *testing.T) {
	fos := NewFakeOS()
	assert.Nil(t, fos.FS.MkdirAll("/home/user", 0755))
	assert.Nil(t, afero.WriteFile(fos.FS, "/home/user/notes", nil, 0644))

	assert.Nil(t, fos.Chdir("/home/user"))
	assert.Equal(t, "/home/user", fos.Cwd)

	assert.Error(t, fos.Chdir("/does/not/exist"))
	assert.Error(t, fos.Chdir("/home/user/notes"))
	assert.Equal(t, "/home/user", fos.Cwd, "failed chdir must not move the directory")

	// Relative paths resolve against the fake working directory.
	assert.Nil(t, fos.Chdir(".."))
	assert.Equal(t, "/home", fos.Cwd)
}

func TestCreateTruncates(t *testing.T) {
	fos := NewFakeOS()
	assert.Nil(t, afero.WriteFile(fos.FS, "/out.txt", []byte("previous contents"), 0644))

	fd, err := fos.Create("out.txt")
	assert.Nil(t, err)
	_, err = fd.Write([]byte("new"))
	assert.Nil(t, err)
	assert.Nil(t, fd.Close())

	got, err := afero.ReadFile(fos.FS, "/out.txt")
	assert.Nil(t, err)
	assert.Equal(t, "new", string(got))
}

func TestStartProcessRunsProgram(t *testing.T) {
	fos := NewFakeOS()
	fos.Install("/bin/greet", func(p *Proc) int {
		fmt.Fprintf(p.Stdout, "hello from %s\n", p.Argv[0])
		return 0
	})

	var out bytes.Buffer
	proc, err := fos.StartProcess("/bin/greet", []string{"greet"}, &sys.ProcAttr{Stdout: &out})
	assert.Nil(t, err)
	assert.Nil(t, proc.Wait())
	assert.Equal(t, "hello from greet\n", out.String())
	assert.Equal(t, []string{"start 1 /bin/greet", "wait 1 status 0"}, fos.EventLog())
}

func TestStartProcessUnknown(t *testing.T) {
	fos := NewFakeOS()
	_, err := fos.StartProcess("/bin/ghost", []string{"ghost"}, nil)
	assert.Error(t, err)
	assert.Empty(t, fos.EventLog())
}

func TestWaitReportsStatus(t *testing.T) {
	fos := NewFakeOS()
	fos.Install("/bin/fail", func(p *Proc) int { return 3 })

	proc, err := fos.StartProcess("/bin/fail", []string{"fail"}, nil)
	assert.Nil(t, err)

	werr := proc.Wait()
	assert.Error(t, werr)
	assert.Equal(t, 3, sys.ExitStatus(werr))
}

func TestExitRecords(t *testing.T) {
	fos := NewFakeOS()
	_, called := fos.ExitCode()
	assert.False(t, called)

	fos.Exit(0)
	code, called := fos.ExitCode()
	assert.True(t, called)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"exit 0"}, fos.EventLog())
}
