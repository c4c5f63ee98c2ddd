package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssingla/astralyogi/internal/chart"
	"github.com/ssingla/astralyogi/internal/profile"
	"github.com/ssingla/astralyogi/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse a chart in the interactive viewer",
	Long: `Open the interactive chart viewer with tabs for planets, grids, the dasha
timeline and transits. With --profile the chart is rebuilt whenever the
profile file is saved.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	addRequestFlags(viewCmd)
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	if !isTTY(os.Stdout) {
		return errors.New("astralyogi view requires a TTY (terminal)")
	}

	// The viewer owns the terminal; log lines on stderr would tear the screen.
	s, err := newQuietSession()
	if err != nil {
		return err
	}
	defer s.Close()

	req, err := requestFromFlags(cmd, s.defaults())
	if err != nil {
		return err
	}
	opts, err := transitOptions(cmd)
	if err != nil {
		return err
	}
	a := s.assembler(opts...)

	c, err := a.Build(cmd.Context(), req)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tui.NewProgram(c)

	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		w, err := profile.NewWatcher(path)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		defer w.Stop()

		go func() {
			_ = watchLoop(ctx, w.Changes, func(ch profile.Change) {
				p.Send(rebuild(ctx, a, ch, s.defaults()))
				s.logger.Debug("profile reloaded", zap.String("path", w.Path))
			})
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// rebuild turns a profile change into a viewer message.
func rebuild(ctx context.Context, a *chart.Assembler, ch profile.Change, d profile.Defaults) tui.MsgChart {
	if ch.Err != nil {
		return tui.MsgChart{Err: ch.Err}
	}
	c, err := a.Build(ctx, ch.Profile.Request(d))
	return tui.MsgChart{Chart: c, Err: err}
}

// isTTY reports whether f is a character device.
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
