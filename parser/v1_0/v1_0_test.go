package v1_0_test

import (
	"encoding/json"
	"strings"
	"testing"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/parser/v1_0"
	. "github.com/otiai10/mint"
)

func yamlDoc(t *testing.T, text string) interface{} {
	t.Helper()
	raw, err := cwl.Y2J([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestLoadTool(t *testing.T) {
	doc := yamlDoc(t, `
class: CommandLineTool
baseCommand: cat
inputs:
  in: File
outputs: []
`)
	p, err := v1_0.LoadDocumentByYAML(doc, "")
	Expect(t, err).ToBe(nil)
	tool := p.(*v1_0.CommandLineTool)
	Expect(t, tool.CWLVersion).ToBe("v1.0")
	// anonymous documents get a blank-node id
	Expect(t, strings.HasPrefix(tool.ID, "_:")).ToBe(true)
}

func TestLoadToolWithBaseURI(t *testing.T) {
	doc := yamlDoc(t, `
class: CommandLineTool
baseCommand: cat
inputs: []
outputs: []
`)
	p, err := v1_0.LoadDocumentByYAML(doc, "file:///work/cat.cwl")
	Expect(t, err).ToBe(nil)
	Expect(t, p.Base().ID).ToBe("file:///work/cat.cwl")
}

func TestVersionMismatch(t *testing.T) {
	doc := yamlDoc(t, `
cwlVersion: v1.2
class: CommandLineTool
inputs: []
outputs: []
`)
	_, err := v1_0.LoadDocumentByYAML(doc, "")
	Expect(t, err).Not().ToBe(nil)
	Expect(t, strings.Contains(err.Error(), "loader handles")).ToBe(true)
}

func TestWhenGate(t *testing.T) {
	doc := yamlDoc(t, `
cwlVersion: v1.0
class: Workflow
inputs: []
outputs: []
steps:
  gated:
    run:
      class: CommandLineTool
      baseCommand: id
      inputs: []
      outputs: []
    when: $(true)
    in: {}
    out: []
`)
	_, err := v1_0.LoadDocumentByYAML(doc, "")
	Expect(t, err).Not().ToBe(nil)
	Expect(t, strings.Contains(err.Error(), "when requires cwlVersion v1.2")).ToBe(true)
}

func TestIntentGate(t *testing.T) {
	doc := yamlDoc(t, `
cwlVersion: v1.0
class: CommandLineTool
intent: ["http://edamontology.org/operation_0004"]
inputs: []
outputs: []
`)
	_, err := v1_0.LoadDocumentByYAML(doc, "")
	Expect(t, err).Not().ToBe(nil)
	Expect(t, strings.Contains(err.Error(), "intent requires cwlVersion v1.2")).ToBe(true)
}
