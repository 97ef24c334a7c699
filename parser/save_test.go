package parser_test

import (
	"testing"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/parser"
	. "github.com/otiai10/mint"
)

func TestSavePacked(t *testing.T) {
	opts := &parser.LoadingOptions{LoadAll: true}
	doc, err := parser.LoadDocumentByURI("testdata/packed.cwl", opts)
	Expect(t, err).ToBe(nil)
	procs := doc.([]cwl.Process)

	saved, err := parser.Save(procs, true)
	Expect(t, err).ToBe(nil)
	packed := saved.(map[string]interface{})
	Expect(t, packed["cwlVersion"]).ToBe("v1.2")
	graph := packed["$graph"].([]interface{})
	Expect(t, len(graph)).ToBe(2)
	first := graph[0].(map[string]interface{})
	Expect(t, first["class"]).ToBe("Workflow")
	Expect(t, first["id"]).ToBe("main")
}

func TestSavePackedPicksNewestVersion(t *testing.T) {
	opts := &parser.LoadingOptions{LoadAll: true}
	doc, err := parser.LoadDocumentByURI("testdata/packed.cwl", opts)
	Expect(t, err).ToBe(nil)
	procs := doc.([]cwl.Process)
	procs[1].Base().CWLVersion = "v1.0"

	saved, err := parser.Save(procs, true)
	Expect(t, err).ToBe(nil)
	packed := saved.(map[string]interface{})
	Expect(t, packed["cwlVersion"]).ToBe("v1.2")
}

func TestSaveSingleProcess(t *testing.T) {
	doc, err := parser.LoadDocumentByURI("testdata/operation.cwl", nil)
	Expect(t, err).ToBe(nil)

	saved, err := parser.Save(doc, true)
	Expect(t, err).ToBe(nil)
	m := saved.(map[string]interface{})
	Expect(t, m["class"]).ToBe("Operation")
	Expect(t, m["cwlVersion"]).ToBe("v1.2")
}

func TestSaveNotTop(t *testing.T) {
	opts := &parser.LoadingOptions{LoadAll: true}
	doc, err := parser.LoadDocumentByURI("testdata/packed.cwl", opts)
	Expect(t, err).ToBe(nil)

	saved, err := parser.Save(doc.([]cwl.Process), false)
	Expect(t, err).ToBe(nil)
	_, isList := saved.([]interface{})
	Expect(t, isList).ToBe(true)
}
