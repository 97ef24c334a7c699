package cwl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

func (p *CommandLineTool) UnmarshalJSON(data []byte) error {
	parser := NewParser(ProcessFieldGraph(p), DefaultClassMap)
	return parser.Unmarshal(data, p)
}

func (p *ExpressionTool) UnmarshalJSON(data []byte) error {
	parser := NewParser(ProcessFieldGraph(p), DefaultClassMap)
	return parser.Unmarshal(data, p)
}

func (p *Workflow) UnmarshalJSON(data []byte) error {
	parser := NewParser(ProcessFieldGraph(p), DefaultClassMap)
	return parser.Unmarshal(data, p)
}

func (p *Operation) UnmarshalJSON(data []byte) error {
	parser := NewParser(ProcessFieldGraph(p), DefaultClassMap)
	return parser.Unmarshal(data, p)
}

// JsonUnmarshal decodes salad flavoured JSON with the full registry.
func JsonUnmarshal(data []byte, bean interface{}, graphs ...RecordFieldGraph) error {
	graph := &RecordFieldGraph{Fields: make(map[string]*RecordFieldGraph)}
	for i, gi := range graphs {
		graph.Fields[gi.ID] = &graphs[i]
	}
	parser := NewParser(graph, DefaultClassMap)
	return parser.Unmarshal(data, bean)
}

// ParseCWLProcess decodes a whole CWL document (YAML or JSON) into its
// process type, using the full (newest revision) registry.
func ParseCWLProcess(data []byte) (Process, error) {
	return ParseCWLProcessWith(data, DefaultClassMap)
}

// ParseCWLProcessWith decodes a CWL document against a specific class
// registry, so a versioned loader can reject classes its revision does
// not define.
func ParseCWLProcessWith(data []byte, classMap map[string]interface{}) (Process, error) {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) == 0 {
		return nil, io.EOF
	}
	if trimmed[0] == '#' {
		// drop the interpreter line of an executable document
		parts := strings.SplitN(trimmed, "\n", 2)
		if len(parts) == 1 {
			return nil, io.EOF
		}
		trimmed = parts[1]
	}
	raw := []byte(trimmed)
	if trimmed[0] != '{' {
		var err error
		raw, err = Y2J(raw)
		if err != nil {
			return nil, err
		}
	}
	class := &testClass{}
	if err := json.Unmarshal(raw, class); err != nil {
		return nil, err
	}
	if class.Class == "" {
		return nil, &UnknownClassError{}
	}
	if _, got := classMap[class.Class]; !got {
		return nil, &UnknownClassError{Class: class.Class}
	}
	p, err := NewProcessByClass(class.Class)
	if err != nil {
		return nil, err
	}
	parser := NewParser(ProcessFieldGraph(p), classMap)
	if err := parser.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save converts a typed CWL object back into plain JSON/YAML
// serializable data.
func Save(bean interface{}) (interface{}, error) {
	if bean == nil {
		return nil, nil
	}
	raw, err := json.Marshal(bean)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Y2J converts yaml to json.
func Y2J(in []byte) ([]byte, error) {
	result := []byte{}
	var root interface{}
	if err := yaml.Unmarshal(in, &root); err != nil {
		return result, err
	}
	return json.Marshal(convert(root))
}

// J2Y converts json to yaml.
func J2Y(in []byte) ([]byte, error) {
	var root interface{}
	if err := json.Unmarshal(in, &root); err != nil {
		return nil, err
	}
	return yaml.Marshal(convert(root))
}

func convert(parent interface{}) interface{} {
	switch entity := parent.(type) {
	case map[interface{}]interface{}:
		node := map[string]interface{}{}
		for key, val := range entity {
			node[fmt.Sprint(key)] = convert(val)
		}
		return node
	case []interface{}:
		for idx, val := range entity {
			entity[idx] = convert(val)
		}
		return entity
	}
	return parent
}
