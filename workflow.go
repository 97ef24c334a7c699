package cwl

import (
	"encoding/json"
	"fmt"
)

type WorkflowInputParameter struct {
	InputParameterBase `json:",inline"`
	InputBinding       *InputBinding `json:"inputBinding,omitempty"`
	Type               SaladType     `json:"type" salad:"type"`
}

type WorkflowOutputParameter struct {
	OutputParameterBase `json:",inline"`
	OutputSource        ArrayString      `json:"outputSource,omitempty"`
	LinkMerge           LinkMergeMethod  `json:"linkMerge,omitempty" salad:"default:merge_nested"`
	PickValue           *PickValueMethod `json:"pickValue,omitempty"`
	Type                SaladType        `json:"type" salad:"type"`
}

type ExpressionToolOutputParameter struct {
	OutputParameterBase `json:",inline"`
	Type                SaladType `json:"type" salad:"type"`
}

type ExpressionTool struct {
	ClassBase   `json:",inline"`
	ProcessBase `json:",inline"`
	Expression  Expression `json:"expression"`
}

// LinkMergeMethod
// The input link merge method, described in WorkflowStepInput.
type LinkMergeMethod string

const (
	MERGE_NESTED    LinkMergeMethod = "merge_nested"
	MERGE_FLATTENED LinkMergeMethod = "merge_flattened"
)

// PickValueMethod
// Picking non-null values among inbound data links. v1.2 only.
type PickValueMethod string

const (
	FIRST_NON_NULL    PickValueMethod = "first_non_null"
	THE_ONLY_NON_NULL PickValueMethod = "the_only_non_null"
	ALL_NON_NULL      PickValueMethod = "all_non_null"
)

// Sink
// abstract
type Sink struct {
	Source    ArrayString      `json:"source,omitempty"`
	LinkMerge LinkMergeMethod  `json:"linkMerge,omitempty" salad:"default:merge_nested"`
	PickValue *PickValueMethod `json:"pickValue,omitempty"`
}

type WorkflowStepInput struct {
	Identified   `json:",inline"`
	Sink         `json:",inline"`
	LoadContents `json:",inline"`
	Labeled      `json:",inline"`
	Default      Value      `json:"default,omitempty" salad:"value"`
	ValueFrom    Expression `json:"valueFrom,omitempty"`
}

type WorkflowStepOutput struct {
	Identified `json:",inline"`
}

func (e *WorkflowStepOutput) UnmarshalJSON(data []byte) error {
	var bean interface{}
	err := json.Unmarshal(data, &bean)
	if err != nil {
		return err
	}
	switch v := bean.(type) {
	case string:
		e.ID = v
		return nil
	case map[string]interface{}:
		if id, got := v["id"]; got {
			if str, ok := id.(string); ok {
				e.ID = str
				return nil
			}
		}
	}
	return fmt.Errorf("WorkflowStepOutput needs string / {id: xxxx}")
}

func (e WorkflowStepOutput) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ID)
}

type ScatterMethod string

const (
	DOTPRODUCT          ScatterMethod = "dotproduct"
	NESTED_CROSSPRODUCT ScatterMethod = "nested_crossproduct"
	FLAT_CROSSPRODUCT   ScatterMethod = "flat_crossproduct"
)

// Run points at the process of a step: either a document reference kept
// in ID, or an embedded process object.
type Run struct {
	ID      string
	Process Process
}

func (e Run) MarshalJSON() ([]byte, error) {
	if e.Process != nil {
		return json.Marshal(e.Process)
	}
	return json.Marshal(e.ID)
}

type WorkflowStep struct {
	Identified    `json:",inline"`
	Labeled       `json:",inline"`
	Documented    `json:",inline"`
	In            []WorkflowStepInput  `json:"in" salad:"mapSubject:id,mapPredicate:source"`
	Out           []WorkflowStepOutput `json:"out"`
	Requirements  Requirements         `json:"requirements,omitempty" salad:"mapSubject:class"`
	Hints         Requirements         `json:"hints,omitempty" salad:"mapSubject:class,hints"`
	Run           Run                  `json:"run"`
	When          Expression           `json:"when,omitempty"`
	Scatter       ArrayString          `json:"scatter,omitempty"`
	ScatterMethod ScatterMethod        `json:"scatterMethod,omitempty"`
}

type Workflow struct {
	ClassBase   `json:",inline"`
	ProcessBase `json:",inline"`
	Steps       []WorkflowStep `json:"steps" salad:"mapSubject:id"`
}

type SubworkflowFeatureRequirement struct {
	BaseRequirement `json:",inline"`
}

type ScatterFeatureRequirement struct {
	BaseRequirement `json:",inline"`
}

type MultipleInputFeatureRequirement struct {
	BaseRequirement `json:",inline"`
}

type StepInputExpressionRequirement struct {
	BaseRequirement `json:",inline"`
}
