package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssingla/astralyogi/internal/chart"
	"github.com/ssingla/astralyogi/internal/profile"
	"github.com/ssingla/astralyogi/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild a chart every time its profile is saved",
	Long: `Build the chart for a TOML profile, then keep watching the file and
print a fresh report after each save. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("profile", "", "birth profile TOML to watch")
	_ = watchCmd.MarkFlagRequired("profile")
	addAtFlag(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("profile")

	opts, err := transitOptions(cmd)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := profile.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer w.Stop()

	printer := ui.New(cmd.OutOrStdout())
	a := s.assembler(opts...)

	p, err := profile.Load(path)
	render(cmd.Context(), printer, a, profile.Change{Profile: p, Err: err}, s.defaults())
	printer.Info("watching " + w.Path)

	return watchLoop(cmd.Context(), w.Changes, func(ch profile.Change) {
		s.logger.Debug("profile changed", zap.String("path", w.Path), zap.Error(ch.Err))
		render(cmd.Context(), printer, a, ch, s.defaults())
	})
}

// watchLoop hands each change to fn until ctx is done or changes closes.
func watchLoop(ctx context.Context, changes <-chan profile.Change, fn func(profile.Change)) error {
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ch, ok := <-changes:
			if !ok {
				return nil
			}
			fn(ch)
		}
	}
}

// render prints the chart for one profile state, or the reason it could
// not be built.
func render(ctx context.Context, printer *ui.Printer, a *chart.Assembler, ch profile.Change, d profile.Defaults) {
	if ch.Err != nil {
		printer.Error(ch.Err.Error())
		return
	}
	c, err := a.Build(ctx, ch.Profile.Request(d))
	if err != nil {
		printer.Error(err.Error())
		return
	}
	printer.Chart(c)
}
