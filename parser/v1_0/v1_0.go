// Package v1_0 loads documents of the v1.0 schema revision.
package v1_0

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	cwl "github.com/lijiang2014/cwlparser.go"
)

const Version = "v1.0"

// ClassMap is the registry of this revision. Requirements with a class
// outside it are rejected; hints are kept as UnknownRequirement.
var ClassMap = cwl.BaseClassMap()

type CommandLineTool = cwl.CommandLineTool
type ExpressionTool = cwl.ExpressionTool
type Workflow = cwl.Workflow
type WorkflowStep = cwl.WorkflowStep
type SoftwareRequirement = cwl.SoftwareRequirement
type SoftwarePackage = cwl.SoftwarePackage

// LoadDocumentByYAML decodes one already YAML-decoded document into a
// typed process of this revision.
func LoadDocumentByYAML(doc interface{}, baseURI string) (cwl.Process, error) {
	p, err := LoadProcess(doc, ClassMap, Version)
	if err != nil {
		return nil, err
	}
	if err := CheckPre12(p); err != nil {
		return nil, err
	}
	StampIdentity(p, baseURI)
	return p, nil
}

// SaveDocument converts a typed process back into plain data with the
// revision's cwlVersion set.
func SaveDocument(p cwl.Process) (interface{}, error) {
	p.Base().CWLVersion = Version
	return cwl.Save(p)
}

// LoadProcess is shared by the three revision packages: marshal the
// plain document to JSON and hand it to the salad parser with the
// revision's registry, then verify the declared version.
func LoadProcess(doc interface{}, classMap map[string]interface{}, version string) (cwl.Process, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	p, err := cwl.ParseCWLProcessWith(raw, classMap)
	if err != nil {
		return nil, err
	}
	declared := p.Base().CWLVersion
	if declared != "" && declared != version {
		return nil, fmt.Errorf("document declares cwlVersion %q, loader handles %q", declared, version)
	}
	p.Base().CWLVersion = version
	return p, nil
}

// StampIdentity gives anonymous documents an identifier: the base URI
// when one is known, a blank node otherwise.
func StampIdentity(p cwl.Process, baseURI string) {
	base := p.Base()
	if base.ID != "" {
		return
	}
	if baseURI != "" {
		base.ID = baseURI
		return
	}
	base.ID = "_:" + uuid.New().String()
}

// CheckPre12 rejects fields the v1.2 revision introduced.
func CheckPre12(p cwl.Process) error {
	base := p.Base()
	if len(base.Intent) > 0 {
		return fmt.Errorf("intent requires cwlVersion v1.2")
	}
	for _, out := range base.Outputs {
		if wout, ok := out.(*cwl.WorkflowOutputParameter); ok && wout.PickValue != nil {
			return fmt.Errorf("output %s: pickValue requires cwlVersion v1.2", wout.ID)
		}
	}
	wf, ok := p.(*cwl.Workflow)
	if !ok {
		return nil
	}
	for i := range wf.Steps {
		step := &wf.Steps[i]
		if step.When != "" {
			return fmt.Errorf("step %s: when requires cwlVersion v1.2", step.ID)
		}
		for _, in := range step.In {
			if in.PickValue != nil {
				return fmt.Errorf("step %s input %s: pickValue requires cwlVersion v1.2", step.ID, in.ID)
			}
		}
	}
	return nil
}
