package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vesperlang/vesper/internal/infer"
	"github.com/vesperlang/vesper/internal/lexer"
	"github.com/vesperlang/vesper/internal/parser"
	"github.com/vesperlang/vesper/internal/registry"
	"github.com/spf13/cobra"
)

var (
	inferEvalExpr string
	inferColor    bool
)

var inferCmd = &cobra.Command{
	Use:   "infer [file]",
	Short: "Run type inference over Vesper source and report diagnostics",
	Long: `Lex, parse, and run the constraint-propagation type inference engine
over a Vesper program, then print every class's inferred method and
instance-variable types, along with any diagnostics raised along the
way.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfer,
}

func init() {
	rootCmd.AddCommand(inferCmd)

	inferCmd.Flags().StringVarP(&inferEvalExpr, "eval", "e", "", "infer an expression from the command line")
	inferCmd.Flags().BoolVar(&inferColor, "color", false, "colorize diagnostic output")
}

func runInfer(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(inferEvalExpr, args)
	if err != nil {
		return err
	}
	if filename == "" {
		filename = "<eval>"
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		fmt.Fprintln(os.Stderr, "Parser errors:")
		for _, e := range p.Errors() {
			fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	reg := registry.New()
	v := infer.New(reg, input, filename)
	v.Run(program)

	fmt.Print(formatReport(reg))

	diags := v.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	fmt.Fprintln(os.Stderr, "---")
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Format(inferColor))
	}
	return fmt.Errorf("inference reported %d diagnostic(s)", len(diags))
}

// formatReport renders every declared class's inferred method and
// instance-variable types, skipping Object (the implicit top-level
// receiver, never interesting to report on). Classes and members are
// sorted by name so the report is stable across runs despite
// registry.Registry.AllClasses returning a map.
func formatReport(reg *registry.Registry) string {
	var out strings.Builder
	classes := reg.AllClasses()
	names := make([]string, 0, len(classes))
	for name, class := range classes {
		if class == reg.Object() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		class := classes[name]
		fmt.Fprintf(&out, "class %s\n", class.Name)

		methodNames := make([]string, 0, len(class.Methods))
		for mname := range class.Methods {
			methodNames = append(methodNames, mname)
		}
		sort.Strings(methodNames)
		for _, mname := range methodNames {
			for _, m := range class.Methods[mname] {
				def := reg.DefFor(m)
				if def == nil || def.Cell() == nil || def.Cell().Type() == nil {
					fmt.Fprintf(&out, "  def %s: <uninferred>\n", mname)
					continue
				}
				fmt.Fprintf(&out, "  def %s: %s\n", mname, def.Cell().Type().String())
			}
		}

		ivarNames := make([]string, 0, len(class.InstanceVars))
		for iname := range class.InstanceVars {
			ivarNames = append(ivarNames, iname)
		}
		sort.Strings(ivarNames)
		for _, iname := range ivarNames {
			ivc := class.InstanceVars[iname]
			if ivc.Typ == nil {
				fmt.Fprintf(&out, "  @%s: <uninferred>\n", iname)
				continue
			}
			fmt.Fprintf(&out, "  @%s: %s\n", iname, ivc.Typ.String())
		}
	}
	return out.String()
}
