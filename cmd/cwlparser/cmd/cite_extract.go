package cmd

import (
	"fmt"

	"github.com/lijiang2014/cwlparser.go/extract"
	"github.com/lijiang2014/cwlparser.go/parser"
	"github.com/spf13/cobra"
)

// citeExtractCmd represents the cite-extract command
var citeExtractCmd = &cobra.Command{
	Use:   "cite-extract [doc]",
	Short: "Print the software packages a document cites",
	Long: `cite-extract walks a CWL document, workflow steps and referenced
sub-documents included, and prints every package its
SoftwareRequirement entries (requirements and hints) declare.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &parser.LoadingOptions{Logger: logger}
		doc, err := parser.LoadDocumentByURI(args[0], opts)
		if err != nil {
			return err
		}
		last := ""
		ex := extract.New(func(id string, pkg extract.Package) {
			if id != last {
				fmt.Println(id)
				last = id
			}
			fmt.Println(pkg)
		}, opts)
		return ex.Traverse(doc)
	},
}

func init() {
	rootCmd.AddCommand(citeExtractCmd)
}
