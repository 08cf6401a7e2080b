package shell

import (
	"errors"
	"fmt"

	"github.com/wishshell/wish/core/trace"
)

// errExit stops the surrounding line and run loop after the exit
// builtin fires. It exists for OS implementations whose Exit returns.
var errExit = errors.New("exit")

// ShellBuiltin runs in the shell's own process instead of a child.
type ShellBuiltin interface {
	// Main runs the builtin. args holds the whole command with the
	// builtin's name as args[0].
	Main(s *Shell, args []string) error
}

type ShellBuiltinFunc func(s *Shell, args []string) error

func (f ShellBuiltinFunc) Main(s *Shell, args []string) error {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinEntry pairs a builtin with the name that invokes it.
type BuiltinEntry struct {
	Name string
	Proc ShellBuiltin
}

// AllBuiltins holds the shell builtins in dispatch order. A command's
// leading token is compared against these names, first match wins,
// before any path resolution happens.
var AllBuiltins = []BuiltinEntry{
	{Name: "exit", Proc: ShellBuiltinFunc(Exit)},
	{Name: "cd", Proc: ShellBuiltinFunc(Cd)},
	{Name: "path", Proc: ShellBuiltinFunc(Path)},
}

// LookupBuiltin finds the builtin invoked by name.
func LookupBuiltin(name string) (ShellBuiltin, bool) {
	for _, entry := range AllBuiltins {
		if entry.Name == name {
			return entry.Proc, true
		}
	}
	return nil, false
}

// Exit ends the shell immediately with status 0. Operands are rejected;
// a failed exit keeps the shell running.
func Exit(s *Shell, args []string) error {
	if len(args) != 1 {
		return errors.New("exit: unexpected arguments")
	}

	s.log().Record(&trace.Builtin{Name: args[0], Argv: args})
	s.OS.Exit(0)
	return errExit
}

// Cd changes the shell's working directory. It takes exactly one
// operand; anything else is an error and the directory stays put.
func Cd(s *Shell, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("cd: want 1 argument, got %d", len(args)-1)
	}
	return s.OS.Chdir(args[1])
}

// Path replaces the command search registry with the operands, in the
// order given. With no operands the registry becomes empty and only
// builtins can run.
func Path(s *Shell, args []string) error {
	s.Paths.Replace(args[1:])
	return nil
}
