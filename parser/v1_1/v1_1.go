// Package v1_1 loads documents of the v1.1 schema revision.
package v1_1

import (
	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/parser/v1_0"
)

const Version = "v1.1"

// ClassMap extends the base registry with the classes v1.1 added.
var ClassMap = buildClassMap()

func buildClassMap() map[string]interface{} {
	m := cwl.BaseClassMap()
	for class, example := range cwl.V11ClassMap() {
		m[class] = example
	}
	return m
}

type CommandLineTool = cwl.CommandLineTool
type ExpressionTool = cwl.ExpressionTool
type Workflow = cwl.Workflow
type WorkflowStep = cwl.WorkflowStep
type SoftwareRequirement = cwl.SoftwareRequirement
type SoftwarePackage = cwl.SoftwarePackage
type LoadListingRequirement = cwl.LoadListingRequirement
type WorkReuse = cwl.WorkReuse
type NetworkAccess = cwl.NetworkAccess
type InplaceUpdateRequirement = cwl.InplaceUpdateRequirement
type ToolTimeLimit = cwl.ToolTimeLimit

// LoadDocumentByYAML decodes one already YAML-decoded document into a
// typed process of this revision.
func LoadDocumentByYAML(doc interface{}, baseURI string) (cwl.Process, error) {
	p, err := v1_0.LoadProcess(doc, ClassMap, Version)
	if err != nil {
		return nil, err
	}
	if err := v1_0.CheckPre12(p); err != nil {
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
