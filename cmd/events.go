package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wishshell/wish/core/trace"
	"golang.org/x/term"
	"sigs.k8s.io/yaml"
)

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	colorBoldGreen = color.New(color.FgGreen, color.Bold)
	colorBoldCyan  = color.New(color.FgCyan, color.Bold)
	colorBoldBlue  = color.New(color.FgBlue, color.Bold)
	colorBoldRed   = color.New(color.FgRed, color.Bold)
)

var colorMode string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the shell's trace log.",
}

// openTraceLog opens the configured trace log for reading.
func openTraceLog() (afero.File, error) {
	configuration, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if configuration.TraceLog == "" {
		return nil, errors.New("tracing is disabled, set trace_log or pass --trace-log")
	}

	return configuration.ReadTraceLog()
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a summary report of traced events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := openTraceLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		var report trace.Report
		if err := trace.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

var logCommand = &cobra.Command{
	Use:   "log",
	Short: "Print the trace log in a readable form.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		switch colorMode {
		case colorAlways:
			color.NoColor = false
		case colorNever:
			color.NoColor = true
		case colorAuto:
			color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
		default:
			return fmt.Errorf("invalid --color mode: %q", colorMode)
		}

		fd, err := openTraceLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		out := cmd.OutOrStdout()
		return trace.ReadJSONLinesLog(fd, func(le *trace.Entry) {
			stamp := time.UnixMicro(le.TimestampMicros).UTC().Format(time.RFC3339)
			switch {
			case le.Exec != nil:
				fmt.Fprintf(out, "%s %s %v\n", stamp, colorBoldGreen.Sprint("EXEC"), le.Exec.Argv)
			case le.ExecError != nil:
				fmt.Fprintf(out, "%s %s %s: %s\n", stamp, colorBoldRed.Sprint("EXEC-ERROR"), le.ExecError.Argv0, le.ExecError.Error)
			case le.Builtin != nil:
				line := fmt.Sprintf("%s %s %v", stamp, colorBoldCyan.Sprint("BUILTIN"), le.Builtin.Argv)
				if le.Builtin.Error != "" {
					line += ": " + le.Builtin.Error
				}
				fmt.Fprintln(out, line)
			case le.Wait != nil:
				fmt.Fprintf(out, "%s %s pid %d status %d\n", stamp, colorBoldBlue.Sprint("WAIT"), le.Wait.PID, le.Wait.ExitStatus)
			case le.ParseError != nil:
				fmt.Fprintf(out, "%s %s %q: %s\n", stamp, colorBoldRed.Sprint("PARSE-ERROR"), le.ParseError.Line, le.ParseError.Error)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(logCommand)

	logCommand.Flags().StringVar(&colorMode, "color", colorAuto, "colorize the output (always|auto|never)")
}
