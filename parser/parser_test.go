package parser_test

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/parser"
	. "github.com/otiai10/mint"
)

func load(t *testing.T, name string) []byte {
	t.Helper()
	data, err := ioutil.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestLoadPackedDefaultTarget(t *testing.T) {
	doc, err := parser.LoadDocumentByURI("testdata/packed.cwl", nil)
	Expect(t, err).ToBe(nil)
	wf, ok := doc.(*cwl.Workflow)
	Expect(t, ok).ToBe(true)
	// no fragment given: the "main" object is picked
	Expect(t, wf.ID).ToBe("main")
	Expect(t, wf.CWLVersion).ToBe("v1.2")
	Expect(t, len(wf.Steps)).ToBe(1)
	Expect(t, string(wf.Steps[0].When)).ToBe("$(inputs.flag)")
	Expect(t, wf.Steps[0].Run.ID).ToBe("#echo")
}

func TestLoadPackedFragment(t *testing.T) {
	doc, err := parser.LoadDocumentByURI("testdata/packed.cwl#echo", nil)
	Expect(t, err).ToBe(nil)
	tool, ok := doc.(*cwl.CommandLineTool)
	Expect(t, ok).ToBe(true)
	Expect(t, tool.ID).ToBe("echo")
	Expect(t, tool.CWLVersion).ToBe("v1.2")
}

func TestLoadPackedMissingTarget(t *testing.T) {
	_, err := parser.LoadDocumentByURI("testdata/packed.cwl#nope", nil)
	Expect(t, err).Not().ToBe(nil)
	var missing *parser.GraphTargetMissingError
	Expect(t, errors.As(err, &missing)).ToBe(true)
	Expect(t, missing.Target).ToBe("nope")
	Expect(t, strings.Join(missing.IDs, ",")).ToBe("main,echo")
}

func TestLoadPackedAll(t *testing.T) {
	opts := &parser.LoadingOptions{LoadAll: true}
	doc, err := parser.LoadDocumentByURI("testdata/packed.cwl", opts)
	Expect(t, err).ToBe(nil)
	procs, ok := doc.([]cwl.Process)
	Expect(t, ok).ToBe(true)
	Expect(t, len(procs)).ToBe(2)
	Expect(t, procs[0].ClassName()).ToBe("Workflow")
	Expect(t, procs[1].ClassName()).ToBe("CommandLineTool")
	// the container's cwlVersion reaches every member
	Expect(t, procs[1].Base().CWLVersion).ToBe("v1.2")
}

func TestLoadPackedAllOverridesMemberVersion(t *testing.T) {
	opts := &parser.LoadingOptions{LoadAll: true}
	doc, err := parser.LoadDocumentByURI("testdata/packed-mixed.cwl", opts)
	Expect(t, err).ToBe(nil)
	procs, ok := doc.([]cwl.Process)
	Expect(t, ok).ToBe(true)
	Expect(t, len(procs)).ToBe(2)
	// a member declaring its own cwlVersion still gets the container's
	Expect(t, procs[0].ClassName()).ToBe("CommandLineTool")
	Expect(t, procs[0].Base().CWLVersion).ToBe("v1.2")
	Expect(t, procs[1].Base().CWLVersion).ToBe("v1.2")
}

func TestLoadOperation(t *testing.T) {
	doc, err := parser.LoadDocumentByURI("testdata/operation.cwl", nil)
	Expect(t, err).ToBe(nil)
	op, ok := doc.(*cwl.Operation)
	Expect(t, ok).ToBe(true)
	Expect(t, op.ID).ToBe("align")
	Expect(t, len(op.Inputs)).ToBe(2)
}

func TestOperationNeedsV12(t *testing.T) {
	text := `
cwlVersion: v1.1
class: Operation
id: align
inputs: []
outputs: []
`
	_, err := parser.LoadDocumentByString(text, "", nil)
	Expect(t, err).Not().ToBe(nil)
	var unknown *cwl.UnknownClassError
	Expect(t, errors.As(err, &unknown)).ToBe(true)
	Expect(t, unknown.Class).ToBe("Operation")
}

func TestLoadV11Tool(t *testing.T) {
	doc, err := parser.LoadDocumentByURI("testdata/v11-tool.cwl", nil)
	Expect(t, err).ToBe(nil)
	tool := doc.(*cwl.CommandLineTool)
	listing := tool.RequiresLoadListing()
	Expect(t, listing).Not().ToBe(nil)
	Expect(t, string(listing.LoadListing)).ToBe("shallow_listing")
}

func TestV11ClassRejectedByV10(t *testing.T) {
	data := load(t, "v11-tool.cwl")
	text := strings.Replace(string(data), "v1.1", "v1.0", 1)
	_, err := parser.LoadDocumentByString(text, "", nil)
	Expect(t, err).Not().ToBe(nil)
}

func TestWhenRejectedBeforeV12(t *testing.T) {
	_, err := parser.LoadDocumentByURI("testdata/wf-when.cwl", nil)
	Expect(t, err).Not().ToBe(nil)
	Expect(t, strings.Contains(err.Error(), "when requires cwlVersion v1.2")).ToBe(true)
}

func TestVersionErrors(t *testing.T) {
	_, err := parser.LoadDocumentByString("class: CommandLineTool\ninputs: []\noutputs: []\n", "", nil)
	Expect(t, errors.Is(err, parser.ErrVersionMissing)).ToBe(true)

	_, err = parser.LoadDocumentByString("cwlVersion: v9.9\nclass: CommandLineTool\n", "", nil)
	Expect(t, err).Not().ToBe(nil)
	Expect(t, strings.Contains(err.Error(), "not supported")).ToBe(true)

	_, err = parser.LoadDocumentByYAML([]interface{}{"not", "a", "mapping"}, "", nil)
	Expect(t, err).Not().ToBe(nil)
}

func TestCWLVersion(t *testing.T) {
	version, err := parser.CWLVersion(map[string]interface{}{"cwlVersion": "v1.0"})
	Expect(t, err).ToBe(nil)
	Expect(t, version).ToBe("v1.0")

	version, err = parser.CWLVersion(map[string]interface{}{})
	Expect(t, err).ToBe(nil)
	Expect(t, version).ToBe("")

	_, err = parser.CWLVersion("just a string")
	Expect(t, err).Not().ToBe(nil)
}
