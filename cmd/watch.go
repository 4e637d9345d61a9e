package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/initializ/stepper/internal/tui"
	"github.com/initializ/stepper/logging"
	"github.com/initializ/stepper/stream"
)

var (
	watchPlain     bool
	watchAutoStart bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the step display and follow the process stream",
	Long: "Watch renders the four process steps and starts the process when the action control " +
		"is activated. Without a terminal on stdout, or with --plain, the process starts " +
		"immediately and every change is printed as a line.",
	RunE: runWatch,
}

func init() {
	addWatchFlags(watchCmd)
}

func addWatchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&watchPlain, "plain", false, "print status changes as lines instead of the TUI")
	cmd.Flags().BoolVar(&watchAutoStart, "auto-start", false, "start the process as soon as the display opens")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.OpenFile(cfg.Log.File, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	var out io.Writer = os.Stdout
	if cmd != nil {
		out = cmd.OutOrStdout()
	}
	plain := watchPlain || !isTerminal(out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := tui.Options{
		Endpoint:  cfg.Endpoint,
		Rearm:     cfg.RearmEnabled(),
		AutoStart: watchAutoStart || plain,
		Version:   appVersion,
		Theme:     tui.DetectTheme(cfg.Theme),
	}
	if plain {
		opts.Plain = out
	}

	display := tui.NewDisplay(ctx, stream.NewHTTPSource(nil, logger), logger, opts)
	defer display.Teardown()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if plain {
		programOpts = append(programOpts, tea.WithoutRenderer(), tea.WithInput(nil), tea.WithOutput(io.Discard))
	}

	logger.Info("display starting", map[string]any{"endpoint": cfg.Endpoint, "plain": plain, "version": appVersion})
	_, err = tea.NewProgram(display, programOpts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return fmt.Errorf("running display: %w", err)
	}

	if plain && display.Failed() {
		return fmt.Errorf("process failed: %s", display.Err())
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
