package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cottand/biunify/frontend"
	"github.com/cottand/biunify/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check constraints.yaml",
	Short:        "Check that the subtyping constraints of a file can all hold",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	checkDump *bool
	logLevel  *int
	sections  *[]string
)

func init() {
	checkDump = CheckCmd.Flags().BoolP("dump", "d", false, "print the states reachable from the constraints after checking")
	logLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
	sections = CheckCmd.Flags().StringSliceP("sections", "s", []string{"biunify", "build"}, "log sections to show below warnings")
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))
	log.EnableSections(*sections...)

	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "could not open constraint file")
	}
	defer func() { _ = f.Close() }()

	constraints, err := frontend.Decode(f)
	if err != nil {
		return errors.Wrapf(err, "in %s", args[0])
	}

	solution := constraints.Build()
	checkErr := solution.Check()
	if *checkDump {
		dump(cmd.OutOrStdout(), constraints, solution)
	}
	if checkErr != nil {
		return errors.Wrapf(checkErr, "%d constraints in %s", len(solution.Constraints), args[0])
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "admissible")
	return err
}

// dump prints each constraint with the line it was read from, then every state
// reachable from the constraints
func dump(w io.Writer, f *frontend.File, s *frontend.Solution) {
	for i, c := range s.Constraints {
		_, _ = fmt.Fprintf(w, "constraint %d (line %d): %s <: %s\n", i, f.Constraints[i].Line, c.Pos, c.Neg)
	}
	for _, id := range s.Automaton.Reachable(s.Roots()...) {
		_, _ = fmt.Fprintln(w, s.Automaton.Describe(id))
	}
}
