package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ssingla/astralyogi/internal/chart"
	"github.com/ssingla/astralyogi/internal/profile"
	"github.com/ssingla/astralyogi/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch PROFILE...",
	Short: "Build charts for several profiles concurrently",
	Long: `Build one chart per TOML profile, several at a time, and print the reports
in argument order. A profile that fails is reported and the rest still run;
the command exits non-zero if any failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntP("jobs", "j", 4, "maximum charts built at once")
	batchCmd.Flags().Bool("json", false, "print the charts as a JSON array")
	addAtFlag(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

// batchResult is the outcome for one profile path.
type batchResult struct {
	Path  string       `json:"path"`
	Chart *chart.Chart `json:"chart,omitempty"`
	Err   error        `json:"-"`
	Error string       `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", jobs)
	}
	opts, err := transitOptions(cmd)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	start := time.Now()
	results := buildAll(cmd.Context(), s.assembler(opts...), args, s.defaults(), jobs)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("batch finished",
		zap.Int("profiles", len(results)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printer := ui.New(cmd.OutOrStdout())
		for _, r := range results {
			if r.Err != nil {
				printer.Error(fmt.Sprintf("%s: %v", r.Path, r.Err))
				continue
			}
			printer.Info(r.Path)
			printer.Chart(r.Chart)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed", failed, len(results))
	}
	return nil
}

// buildAll builds one chart per path with at most jobs builds in flight.
// Results keep the order of paths.
func buildAll(ctx context.Context, a *chart.Assembler, paths []string, d profile.Defaults, jobs int) []batchResult {
	results := make([]batchResult, len(paths))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			r := batchResult{Path: path}
			p, err := profile.Load(path)
			if err == nil {
				r.Chart, err = a.Build(ctx, p.Request(d))
			}
			if err != nil {
				r.Err = err
				r.Error = err.Error()
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()
	return results
}
