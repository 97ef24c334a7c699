// Package v1_2 loads documents of the v1.2 schema revision, the newest
// one supported. Its registry is the full one, including Operation.
package v1_2

import (
	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/parser/v1_0"
)

const Version = "v1.2"

var ClassMap = cwl.DefaultClassMap

type CommandLineTool = cwl.CommandLineTool
type ExpressionTool = cwl.ExpressionTool
type Workflow = cwl.Workflow
type WorkflowStep = cwl.WorkflowStep
type Operation = cwl.Operation
type SoftwareRequirement = cwl.SoftwareRequirement
type SoftwarePackage = cwl.SoftwarePackage

// LoadDocumentByYAML decodes one already YAML-decoded document into a
// typed process of this revision.
func LoadDocumentByYAML(doc interface{}, baseURI string) (cwl.Process, error) {
	p, err := v1_0.LoadProcess(doc, ClassMap, Version)
	if err != nil {
		return nil, err
	}
	v1_0.StampIdentity(p, baseURI)
	return p, nil
}

// SaveDocument converts a typed process back into plain data with the
// revision's cwlVersion set.
func SaveDocument(p cwl.Process) (interface{}, error) {
	p.Base().CWLVersion = Version
	return cwl.Save(p)
}
