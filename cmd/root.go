package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wishshell/wish/core/config"
	"github.com/wishshell/wish/core/shell"
	"github.com/wishshell/wish/core/sys"
	"github.com/wishshell/wish/core/trace"
	"golang.org/x/term"
)

var (
	cfgPath   string
	tracePath string
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}
	if err == nil && tracePath != "" {
		configuration.TraceLog = tracePath
	}

	return configuration, err
}

// rootCmd runs the shell itself when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "wish [script [output]]",
	Short: "A small Unix command shell.",
	Long: `wish runs commands interactively or from a script.

With no arguments it reads commands from stdin, prompting when stdin is
a terminal. With a script it runs the script's lines in order. With a
script and an output file it additionally writes its output there
instead of the terminal.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		return runShell(configuration, args)
	},
}

func runShell(configuration *config.Configuration, args []string) error {
	vos := sys.NewRealOS()

	var toClose listCloser
	defer func() { toClose.Close() }()

	sessionLog := trace.Discard()
	if configuration.TraceLog != "" {
		fd, err := configuration.OpenTraceLog()
		if err != nil {
			return err
		}
		toClose = append(toClose, fd)
		sessionLog = trace.NewJSONLinesLogger(fd).NewSession()
	}

	var src shell.LineSource
	switch {
	case len(args) >= 1:
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		toClose = append(toClose, fd)
		src = shell.NewReaderSource(fd)
	case term.IsTerminal(int(os.Stdin.Fd())):
		promptSrc, err := shell.NewPromptSource(configuration.Prompt)
		if err != nil {
			return err
		}
		toClose = append(toClose, promptSrc)
		src = promptSrc
	default:
		src = shell.NewReaderSource(os.Stdin)
	}

	sh := shell.New(vos, configuration, sessionLog)
	sh.Stdin = os.Stdin
	sh.Stdout = os.Stdout
	sh.Stderr = os.Stderr

	if len(args) == 2 {
		outFd, err := vos.Create(args[1])
		if err != nil {
			return err
		}
		toClose = append(toClose, outFd)
		sh.Stdout = outFd
		sh.Stderr = outFd
	}

	sh.Run(src)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, shell.ErrorMessage)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default: built-in settings)")
	rootCmd.PersistentFlags().StringVar(&tracePath, "trace-log", "", "write a JSON lines event trace to this file")
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
