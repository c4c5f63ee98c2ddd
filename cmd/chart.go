package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssingla/astralyogi/internal/chart"
	"github.com/ssingla/astralyogi/internal/profile"
	"github.com/ssingla/astralyogi/internal/ui"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Build and print a birth chart",
	Long: `Build a birth chart from flags or a TOML profile and print the full report:
ascendant, planets, the four grids, divisional signs, yogas, the dasha
timeline and current transits.

Examples:
  astralyogi chart --date 1990-01-01 --time 06:15 --city Bathinda
  astralyogi chart --profile asha.toml --json`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

var dashaCmd = &cobra.Command{
	Use:   "dasha",
	Short: "Print the Vimshottari dasha timeline",
	Args:  cobra.NoArgs,
	RunE:  runDasha,
}

func init() {
	addRequestFlags(chartCmd)
	chartCmd.Flags().Bool("json", false, "print the chart as JSON")
	addRequestFlags(dashaCmd)
	rootCmd.AddCommand(chartCmd, dashaCmd)
}

// addRequestFlags registers the birth data flags shared by chart commands.
func addRequestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("profile", "", "birth profile TOML; replaces the birth flags")
	f.String("name", "", "name of the person")
	f.String("date", "", "birth date, YYYY-MM-DD")
	f.String("time", "", "local time of birth, HH:MM")
	f.String("city", "", "birth city")
	f.Float64("tz", chart.DefaultTZOffset, "UTC offset in hours (default from config)")
	f.Bool("dst", false, "subtract half an hour for births before 2000")
	f.IntSlice("divisions", nil, "extra divisional charts, e.g. 2,3,12")
	addAtFlag(cmd)
}

// addAtFlag registers --at, read back by transitOptions.
func addAtFlag(cmd *cobra.Command) {
	cmd.Flags().String("at", "", "transit moment, RFC 3339 or YYYY-MM-DD HH:MM UTC (default now, moved to the nearest ephemeris moment)")
}

// requestFromFlags reads the birth data from --profile or the birth flags.
// Unset optional values fall back to d.
func requestFromFlags(cmd *cobra.Command, d profile.Defaults) (chart.Request, error) {
	f := cmd.Flags()
	if path, _ := f.GetString("profile"); path != "" {
		p, err := profile.Load(path)
		if err != nil {
			return chart.Request{}, err
		}
		return p.Request(d), nil
	}

	var p profile.Profile
	p.Name, _ = f.GetString("name")
	p.Date, _ = f.GetString("date")
	p.Time, _ = f.GetString("time")
	p.City, _ = f.GetString("city")
	if f.Changed("tz") {
		tz, _ := f.GetFloat64("tz")
		p.TZOffset = &tz
	}
	if f.Changed("dst") {
		dst, _ := f.GetBool("dst")
		p.AdjustDST = &dst
	}
	p.Divisions, _ = f.GetIntSlice("divisions")
	if err := p.Validate(); err != nil {
		return chart.Request{}, err
	}
	return p.Request(d), nil
}

// transitLayouts are tried in order when parsing --at.
var transitLayouts = []string{time.RFC3339, "2006-01-02 15:04", chart.DateLayout}

// transitOptions pins the assembler clock when --at is set.
func transitOptions(cmd *cobra.Command) ([]chart.Option, error) {
	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		return nil, nil
	}
	for _, layout := range transitLayouts {
		t, err := time.Parse(layout, at)
		if err == nil {
			return []chart.Option{chart.WithClock(func() time.Time { return t })}, nil
		}
	}
	return nil, fmt.Errorf("invalid --at %q: want RFC 3339 or YYYY-MM-DD HH:MM", at)
}

// buildFromFlags runs one chart build for cmd's flags.
func buildFromFlags(cmd *cobra.Command, s *session) (*chart.Chart, error) {
	req, err := requestFromFlags(cmd, s.defaults())
	if err != nil {
		return nil, err
	}
	opts, err := transitOptions(cmd)
	if err != nil {
		return nil, err
	}
	return s.assembler(opts...).Build(cmd.Context(), req)
}

func runChart(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := buildFromFlags(cmd, s)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	ui.New(cmd.OutOrStdout()).Chart(c)
	return nil
}

func runDasha(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := buildFromFlags(cmd, s)
	if err != nil {
		return err
	}
	ui.New(cmd.OutOrStdout()).Dasha(c)
	return nil
}
