package cmd

import (
	"fmt"
	"os"

	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/fixtures"
	"github.com/conelang/conesema/internal/semantic"
	"github.com/conelang/conesema/internal/semantic/passes"
	"github.com/conelang/conesema/pkg/printer"
	"github.com/spf13/cobra"
)

// stagePasses returns the ordered passes up to and including the
// named stage, mirroring the three-pass pipeline spec.md §4 lays out:
// name resolution, then type check, then flow analysis.
func stagePasses(stage string) ([]semantic.Pass, error) {
	all := []semantic.Pass{&passes.NameResolutionPass{}, &passes.TypeCheckPass{}, &passes.FlowAnalysisPass{}}
	switch stage {
	case "resolve":
		return all[:1], nil
	case "typecheck":
		return all[:2], nil
	case "flow":
		return all[:3], nil
	default:
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
}

// runStage builds the named fixture and runs it through the passes for
// stage. It prints nothing itself: the returned context carries the
// accumulated semantic errors for the caller to report.
func runStage(stage, scenario string) (*ast.Module, *semantic.PassContext, error) {
	sc := fixtures.ByName(scenario)
	if sc == nil {
		return nil, nil, fmt.Errorf("no such fixture %q (see \"conec list\")", scenario)
	}
	module := sc.Build()
	ctx := semantic.NewPassContext()

	ps, err := stagePasses(stage)
	if err != nil {
		return nil, nil, err
	}
	pm := semantic.NewPassManager(ps...)
	if err := pm.RunAll(module, ctx); err != nil {
		return nil, nil, fmt.Errorf("pass failed: %w", err)
	}
	return module, ctx, nil
}

func reportErrors(ctx *semantic.PassContext, scenario string) {
	for _, e := range ctx.Errors {
		ce := e.ToCompilerError("", fmt.Sprintf("<fixture:%s>", scenario))
		fmt.Fprintln(os.Stderr, ce.Format(false))
	}
}

func newStageCmd(use, stage, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <fixture>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctx, err := runStage(stage, args[0])
			if err != nil {
				return err
			}
			if ctx.HasErrors() {
				reportErrors(ctx, args[0])
				return fmt.Errorf("%s failed with %d error(s)", stage, ctx.ErrorCount())
			}
			fmt.Printf("%s: ok\n", args[0])
			return nil
		},
	}
}

var printStyle string

var printCmd = &cobra.Command{
	Use:   "print <fixture>",
	Short: "Run the full pipeline and print the resulting IR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, ctx, err := runStage("flow", args[0])
		if err != nil {
			return err
		}
		style := printer.StyleIndented
		if printStyle == "compact" {
			style = printer.StyleCompact
		}
		p := printer.New(printer.Options{Style: style})
		fmt.Println(p.Print(module))
		if ctx.HasErrors() {
			reportErrors(ctx, args[0])
			return fmt.Errorf("pipeline reported %d error(s)", ctx.ErrorCount())
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available IR fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, sc := range fixtures.All {
			fmt.Printf("%-4s %s\n", sc.Name, sc.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newStageCmd("resolve", "resolve", "Run name resolution over a fixture"))
	rootCmd.AddCommand(newStageCmd("typecheck", "typecheck", "Run name resolution and type checking over a fixture"))
	rootCmd.AddCommand(newStageCmd("flow", "flow", "Run the full pipeline (through flow analysis) over a fixture"))

	printCmd.Flags().StringVar(&printStyle, "style", "indented", "print style: indented or compact")
	rootCmd.AddCommand(printCmd)

	rootCmd.AddCommand(listCmd)
}
