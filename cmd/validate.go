package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssingla/astralyogi/internal/ephemeris"
	"github.com/ssingla/astralyogi/internal/profile"
	"github.com/ssingla/astralyogi/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [PROFILE...]",
	Short: "Check the ephemeris table, the gazetteer and optional profiles",
	RunE:  runValidate,
}

func init() {
	addAtFlag(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts, err := transitOptions(cmd)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	printer := ui.New(cmd.OutOrStdout())
	ok := true
	check := func(name string, err error) {
		printer.CheckResult(name, err)
		if err != nil {
			ok = false
		}
	}

	check(fmt.Sprintf("ephemeris %s (%d moments)", s.cfg.EphemerisPath, s.table.Len()), checkTable(s.table, ephemeris.Frame(s.cfg.Frame)))

	for _, name := range s.gazetteer.Names() {
		_, err := s.gazetteer.Resolve(cmd.Context(), name)
		check("city "+name, err)
	}

	a := s.assembler(opts...)
	for _, path := range args {
		p, err := profile.Load(path)
		if err == nil {
			_, err = a.Build(cmd.Context(), p.Request(s.defaults()))
		}
		check("profile "+path, err)
	}

	if !ok {
		return errors.New("validation failed")
	}
	return nil
}

// checkTable reports an empty table or one computed in another frame.
func checkTable(t *ephemeris.Table, frame ephemeris.Frame) error {
	if t.Len() == 0 {
		return errors.New("table has no entries")
	}
	if t.Frame() != frame {
		return fmt.Errorf("table frame %q, configured frame %q", t.Frame(), frame)
	}
	return nil
}
