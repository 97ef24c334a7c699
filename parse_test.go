package cwl_test

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	cwl "github.com/lijiang2014/cwlparser.go"
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

func TestParseCommandLineTool(t *testing.T) {
	p, err := cwl.ParseCWLProcess(load(t, "echo-tool.cwl"))
	Expect(t, err).ToBe(nil)
	tool, ok := p.(*cwl.CommandLineTool)
	Expect(t, ok).ToBe(true)
	Expect(t, tool.Class).ToBe("CommandLineTool")
	Expect(t, tool.ID).ToBe("echo-tool")
	Expect(t, tool.CWLVersion).ToBe("v1.0")
	Expect(t, tool.BaseCommands[0]).ToBe("echo")
	Expect(t, string(tool.Stdout)).ToBe("output.txt")

	// map-form inputs come out sorted by id
	Expect(t, len(tool.Inputs)).ToBe(2)
	count := tool.Inputs[0].(*cwl.CommandInputParameter)
	Expect(t, count.ID).ToBe("count")
	Expect(t, count.Type.IsNullable()).ToBe(true)
	message := tool.Inputs[1].(*cwl.CommandInputParameter)
	Expect(t, message.ID).ToBe("message")
	Expect(t, message.Type.TypeName()).ToBe("string")
	Expect(t, message.InputBinding.Position.MustInt()).ToBe(1)
	Expect(t, message.InputBinding.Separate).ToBe(true)

	Expect(t, len(tool.Outputs)).ToBe(1)
	out := tool.Outputs[0].(*cwl.CommandOutputParameter)
	Expect(t, out.ID).ToBe("out")
	Expect(t, out.Type.IsStdout()).ToBe(true)

	docker := tool.RequiresDocker()
	Expect(t, docker).Not().ToBe(nil)
	Expect(t, docker.DockerPull).ToBe("alpine:3.16")
}

func TestParseHints(t *testing.T) {
	p, err := cwl.ParseCWLProcess(load(t, "echo-tool.cwl"))
	Expect(t, err).ToBe(nil)
	tool := p.(*cwl.CommandLineTool)

	// map-form hints, sorted: the unknown class first
	Expect(t, len(tool.Hints)).ToBe(2)
	unknown, ok := tool.Hints[0].(*cwl.UnknownRequirement)
	Expect(t, ok).ToBe(true)
	Expect(t, unknown.ClassName()).ToBe("ExoticExecutorHint")
	Expect(t, unknown.Fields["queue"]).ToBe("debug")

	sr, err := tool.HintsSoftware()
	Expect(t, err).ToBe(nil)
	Expect(t, sr).Not().ToBe(nil)
	Expect(t, len(sr.Packages)).ToBe(1)
	Expect(t, sr.Packages[0].Package).ToBe("coreutils")
	Expect(t, sr.Packages[0].Version[0]).ToBe("8.32")
	Expect(t, sr.Packages[0].Specs[0]).ToBe("https://anaconda.org/conda-forge/coreutils")
}

func TestParseWorkflow(t *testing.T) {
	p, err := cwl.ParseCWLProcess(load(t, "wf.cwl"))
	Expect(t, err).ToBe(nil)
	wf, ok := p.(*cwl.Workflow)
	Expect(t, ok).ToBe(true)
	Expect(t, wf.ID).ToBe("main")
	Expect(t, wf.RequiresSubworkflow()).ToBe(true)

	in := wf.Inputs[0].(*cwl.WorkflowInputParameter)
	Expect(t, in.ID).ToBe("message")
	Expect(t, in.Type.TypeName()).ToBe("string")

	out := wf.Outputs[0].(*cwl.WorkflowOutputParameter)
	Expect(t, out.ID).ToBe("out")
	Expect(t, out.Type.TypeName()).ToBe("File")
	Expect(t, out.OutputSource[0]).ToBe("echo/out")

	Expect(t, len(wf.Steps)).ToBe(2)
	echo := wf.Steps[0]
	Expect(t, echo.ID).ToBe("echo")
	Expect(t, echo.Run.ID).ToBe("echo-tool.cwl")
	Expect(t, echo.Run.Process).ToBe(nil)
	Expect(t, echo.In[0].ID).ToBe("message")
	Expect(t, echo.In[0].Source[0]).ToBe("message")
	Expect(t, echo.Out[0].ID).ToBe("out")

	index := wf.Steps[1]
	Expect(t, index.ID).ToBe("index")
	sub, ok := index.Run.Process.(*cwl.CommandLineTool)
	Expect(t, ok).ToBe(true)
	Expect(t, sub.ID).ToBe("index-tool")
	Expect(t, sub.BaseCommands[1]).ToBe("index")
	Expect(t, sub.Hints[0].ClassName()).ToBe("SoftwareRequirement")
}

func TestParseUnknownClass(t *testing.T) {
	_, err := cwl.ParseCWLProcess([]byte(`{"class": "Teleporter", "cwlVersion": "v1.0"}`))
	Expect(t, err).Not().ToBe(nil)
	_, err = cwl.ParseCWLProcess([]byte(`{"cwlVersion": "v1.0"}`))
	Expect(t, err).Not().ToBe(nil)
}

func TestSaveRoundTrip(t *testing.T) {
	p, err := cwl.ParseCWLProcess(load(t, "echo-tool.cwl"))
	Expect(t, err).ToBe(nil)
	saved, err := cwl.Save(p)
	Expect(t, err).ToBe(nil)

	doc := saved.(map[string]interface{})
	Expect(t, doc["class"]).ToBe("CommandLineTool")
	Expect(t, doc["cwlVersion"]).ToBe("v1.0")
	Expect(t, doc["stdout"]).ToBe("output.txt")
	inputs := doc["inputs"].([]interface{})
	Expect(t, len(inputs)).ToBe(2)
	first := inputs[0].(map[string]interface{})
	Expect(t, first["id"]).ToBe("count")

	// a saved document parses again to the same shape
	raw, err := json.Marshal(saved)
	Expect(t, err).ToBe(nil)
	p2, err := cwl.ParseCWLProcess(raw)
	Expect(t, err).ToBe(nil)
	tool2 := p2.(*cwl.CommandLineTool)
	Expect(t, tool2.ID).ToBe("echo-tool")
	Expect(t, tool2.Inputs[0].(*cwl.CommandInputParameter).Type.IsNullable()).ToBe(true)
	sr, err := tool2.HintsSoftware()
	Expect(t, err).ToBe(nil)
	Expect(t, sr.Packages[0].Package).ToBe("coreutils")
}

func TestSplitFragment(t *testing.T) {
	base, frag := cwl.SplitFragment("file:///data/packed.cwl#main")
	Expect(t, base).ToBe("file:///data/packed.cwl")
	Expect(t, frag).ToBe("main")
	base, frag = cwl.SplitFragment("tool.cwl")
	Expect(t, base).ToBe("tool.cwl")
	Expect(t, frag).ToBe("")
}
