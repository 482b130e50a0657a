package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/wv/formatter"
	"github.com/gnoverse/wv/internal"
	"github.com/gnoverse/wv/internal/lang"
	"github.com/gnoverse/wv/internal/logic"
	"github.com/gnoverse/wv/internal/smt"
	tt "github.com/gnoverse/wv/internal/types"
	"github.com/gnoverse/wv/internal/vcgen"
)

var (
	vcsShowSMT       bool
	vcsCheckDivision bool
)

// vcsCmd: wv vcs
var vcsCmd = &cobra.Command{
	Use:   "vcs [path]",
	Short: "Print the proof obligations of an annotated program without discharging them",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one file path")
			os.Exit(2)
		}

		if err := printObligations(args[0], vcsCheckDivision, vcsShowSMT); err != nil {
			var genErr *tt.GenerationError
			if errors.As(err, &genErr) {
				report := &tt.Report{
					Filename: args[0],
					Result:   tt.GenerationFailed,
					GenErr:   genErr,
				}
				sourceCode, _ := internal.ReadSourceCode(args[0])
				fmt.Print(formatter.Format(report, sourceCode, formatter.Options{}))
				os.Exit(1)
			}
			logger.Error("Error printing obligations", zap.Error(err))
			os.Exit(2)
		}
	},
}

func init() {
	vcsCmd.Flags().BoolVar(&vcsShowSMT, "smt", false, "Also print the SMT-LIB refutation script of each obligation")
	vcsCmd.Flags().BoolVar(&vcsCheckDivision, "check-division", false, "Include divisor-nonzero side conditions in the obligations")
}

func printObligations(path string, checkDivision bool, showSMT bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	prog, err := lang.Parse(string(src))
	if err != nil {
		return err
	}
	vcs, err := vcgen.Generate(prog, vcgen.Options{CheckDivision: checkDivision})
	if err != nil {
		return err
	}

	tt.SortVCs(vcs)

	noun := "obligations"
	if len(vcs) == 1 {
		noun = "obligation"
	}
	fmt.Printf("%s: %d %s\n\n", path, len(vcs), noun)

	for _, vc := range vcs {
		fmt.Printf("#%d [%s] %s:%s\n", vc.ID, vc.Role, path, vc.Pos)
		fmt.Printf("    %s\n", vc.Assertion)
		if showSMT {
			script, err := refutationScript(vc)
			if err != nil {
				return err
			}
			for _, line := range strings.Split(strings.TrimRight(script, "\n"), "\n") {
				fmt.Printf("    | %s\n", line)
			}
		}
		fmt.Println()
	}

	return nil
}

// refutationScript renders the script the engine would send to the solver:
// it asserts the negated obligation, so unsat proves the obligation.
func refutationScript(vc tt.VC) (string, error) {
	formula, err := smt.Encode(logic.Not(vc.Assertion))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, v := range logic.Vars(vc.Assertion) {
		fmt.Fprintf(&b, "(declare-const %s Int)\n", v)
	}
	fmt.Fprintf(&b, "(assert %s)\n", formula)
	b.WriteString("(check-sat)\n")
	return b.String(), nil
}
