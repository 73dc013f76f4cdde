package cmd

import (
	"fmt"
	"os"

	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
	"github.com/vesperlang/vesper/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	parseDumpAST  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Vesper source code and display the AST",
	Long: `Parse Vesper source code and display the Abstract Syntax Tree.

Use -e to parse a single expression from the command line.
Use --dump-ast to show the full statement-by-statement structure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse an expression from the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
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

	if parseDumpAST {
		fmt.Println("Abstract Syntax Tree:")
		fmt.Println("=====================")
		for i, s := range program.Statements {
			fmt.Printf("%3d: %s\n", i, s.String())
		}
		return nil
	}

	fmt.Printf("Parsed %d top-level statement(s):\n", len(program.Statements))
	for _, s := range program.Statements {
		printStatementSummary(s)
	}
	return nil
}

func printStatementSummary(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ClassDef:
		kind := "class"
		if n.Module {
			kind = "module"
		}
		fmt.Printf("  %s %s\n", kind, n.Name)
	case *ast.Def:
		fmt.Printf("  def %s\n", n.Name)
	case *ast.LibDef:
		fmt.Printf("  lib %s\n", n.Name)
	default:
		fmt.Printf("  %s\n", s.String())
	}
}
