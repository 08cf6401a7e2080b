package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wishshell/wish/core/sys/systest"
)

func TestBuiltinOrder(t *testing.T) {
	var names []string
	for _, entry := range AllBuiltins {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"exit", "cd", "path"}, names)
}

func TestLookupBuiltin(t *testing.T) {
	for _, name := range []string{"exit", "cd", "path"} {
		_, ok := LookupBuiltin(name)
		assert.True(t, ok, name)
	}

	_, ok := LookupBuiltin("ls")
	assert.False(t, ok)
}

func TestCd(t *testing.T) {
	fos := systest.NewFakeOS()
	assert.NoError(t, fos.FS.MkdirAll("/home", 0755))
	s := &Shell{OS: fos}

	assert.NoError(t, Cd(s, []string{"cd", "/home"}))
	assert.Equal(t, "/home", fos.Cwd)
}

func TestCdArgumentCount(t *testing.T) {
	fos := systest.NewFakeOS()
	s := &Shell{OS: fos}

	assert.Error(t, Cd(s, []string{"cd"}))
	assert.Error(t, Cd(s, []string{"cd", "/a", "/b"}))
	assert.Equal(t, "/", fos.Cwd)
}

func TestCdMissingDirectory(t *testing.T) {
	fos := systest.NewFakeOS()
	s := &Shell{OS: fos}

	assert.Error(t, Cd(s, []string{"cd", "/nowhere"}))
	assert.Equal(t, "/", fos.Cwd)
}

func TestExit(t *testing.T) {
	fos := systest.NewFakeOS()
	s := &Shell{OS: fos}

	assert.ErrorIs(t, Exit(s, []string{"exit"}), errExit)

	code, ok := fos.ExitCode()
	assert.True(t, ok)
	assert.Equal(t, 0, code)
}

func TestExitRejectsOperands(t *testing.T) {
	fos := systest.NewFakeOS()
	s := &Shell{OS: fos}

	err := Exit(s, []string{"exit", "1"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errExit)

	// The shell keeps running.
	_, ok := fos.ExitCode()
	assert.False(t, ok)
}

func TestPath(t *testing.T) {
	s := &Shell{Paths: NewPathList("/bin", "/usr/bin")}

	assert.NoError(t, Path(s, []string{"path", "/sbin", "/opt/bin"}))
	assert.Equal(t, []string{"/sbin", "/opt/bin"}, s.Paths.Dirs())

	assert.NoError(t, Path(s, []string{"path"}))
	assert.Empty(t, s.Paths.Dirs())
}
