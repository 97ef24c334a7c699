package cmd

import (
	"fmt"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/expression"
	"github.com/lijiang2014/cwlparser.go/parser"
	"github.com/spf13/cobra"
)

var checkExpressions bool

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [doc]",
	Short: "Load a document and report what it contains",
	Long: `validate loads a CWL document through the typed schema of its
declared revision. Packed documents are loaded whole. With
--expressions the embedded javascript is syntax-checked too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &parser.LoadingOptions{Logger: logger, LoadAll: true}
		doc, err := parser.LoadDocumentByURI(args[0], opts)
		if err != nil {
			return err
		}
		procs := []cwl.Process{}
		switch v := doc.(type) {
		case cwl.Process:
			procs = append(procs, v)
		case []cwl.Process:
			procs = v
		}
		for _, p := range procs {
			base := p.Base()
			fmt.Printf("%s %s (%s): %d inputs, %d outputs\n",
				p.ClassName(), base.ID, base.CWLVersion, len(base.Inputs), len(base.Outputs))
			if checkExpressions {
				if err := validateExpressions(p); err != nil {
					return err
				}
			}
		}
		fmt.Printf("%s is valid CWL\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&checkExpressions, "expressions", false, "Syntax-check embedded javascript")
}

func validateExpressions(p cwl.Process) error {
	check := func(where string, e cwl.Expression) error {
		if e == "" {
			return nil
		}
		if err := expression.Check(e); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		return nil
	}
	switch v := p.(type) {
	case *cwl.CommandLineTool:
		for i, arg := range v.Arguments {
			if arg.Binding != nil {
				if err := check(fmt.Sprintf("arguments[%d]", i), arg.Binding.ValueFrom); err != nil {
					return err
				}
			} else if err := check(fmt.Sprintf("arguments[%d]", i), arg.Expression); err != nil {
				return err
			}
		}
		if err := check("stdin", v.Stdin); err != nil {
			return err
		}
		if err := check("stdout", v.Stdout); err != nil {
			return err
		}
		if err := check("stderr", v.Stderr); err != nil {
			return err
		}
	case *cwl.ExpressionTool:
		if err := check("expression", v.Expression); err != nil {
			return err
		}
	case *cwl.Workflow:
		for i := range v.Steps {
			step := &v.Steps[i]
			if err := check("step "+step.ID+" when", step.When); err != nil {
				return err
			}
			for _, in := range step.In {
				if err := check("step "+step.ID+" in "+in.ID, in.ValueFrom); err != nil {
					return err
				}
			}
			if step.Run.Process != nil {
				if err := validateExpressions(step.Run.Process); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
