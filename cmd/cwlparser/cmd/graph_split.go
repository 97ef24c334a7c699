package cmd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/parser"
	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"
)

var (
	splitOutdir string
	splitFormat string
)

// graphSplitCmd represents the graph-split command
var graphSplitCmd = &cobra.Command{
	Use:   "graph-split [packed doc]",
	Short: "Split a packed $graph document into standalone files",
	Long: `graph-split loads every object of a packed CWL document and writes
each one out as a standalone document named after its id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if splitFormat != "yaml" && splitFormat != "json" {
			return fmt.Errorf("unknown output format %q", splitFormat)
		}
		opts := &parser.LoadingOptions{Logger: logger, LoadAll: true}
		doc, err := parser.LoadDocumentByURI(args[0], opts)
		if err != nil {
			return err
		}
		procs, ok := doc.([]cwl.Process)
		if !ok {
			procs = []cwl.Process{doc.(cwl.Process)}
		}
		if err := os.MkdirAll(splitOutdir, 0755); err != nil {
			return err
		}
		for _, p := range procs {
			if err := writeProcess(p); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphSplitCmd)
	graphSplitCmd.Flags().StringVarP(&splitOutdir, "outdir", "C", ".", "Output directory")
	graphSplitCmd.Flags().StringVar(&splitFormat, "format", "yaml", "Output format: yaml or json")
}

func writeProcess(p cwl.Process) error {
	saved, err := parser.Save(p, true)
	if err != nil {
		return err
	}
	name := splitFileName(p.Base().ID)
	var raw []byte
	if splitFormat == "json" {
		raw, err = json.MarshalIndent(saved, "", "  ")
		name += ".json"
	} else {
		raw, err = yamlv3.Marshal(saved)
		name += ".cwl"
	}
	if err != nil {
		return err
	}
	target := filepath.Join(splitOutdir, name)
	logger.Debug("writing " + target)
	return ioutil.WriteFile(target, raw, 0644)
}

// splitFileName derives a file name from a graph member id like
// "#main" or "file:///x/packed.cwl#sub/tool".
func splitFileName(id string) string {
	if i := strings.IndexByte(id, '#'); i >= 0 {
		id = id[i+1:]
	}
	id = strings.TrimPrefix(id, "_:")
	id = strings.ReplaceAll(id, "/", "_")
	if id == "" {
		id = "main"
	}
	return id
}
