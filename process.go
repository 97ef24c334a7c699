package cwl

import (
	"encoding/json"
	"fmt"
)

// FileDirI is implemented by File and Directory.
type FileDirI interface {
	filedir()
	Classable
}

// FileDir wraps a File or Directory entry.
type FileDir struct {
	ClassBase `json:",inline"`
	entry     FileDirI
}

func (e *FileDir) UnmarshalJSON(b []byte) error {
	err := json.Unmarshal(b, &e.ClassBase)
	if err != nil {
		return err
	}
	if e.Class == "File" {
		entry := &File{}
		e.entry = entry
		return json.Unmarshal(b, e.entry)
	} else if e.Class == "Directory" {
		entry := &Directory{}
		e.entry = entry
		return json.Unmarshal(b, e.entry)
	}
	return fmt.Errorf("class needs to be File/Directory")
}

func (e FileDir) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.entry)
}

func NewFileDir(entry FileDirI) FileDir {
	return FileDir{ClassBase{entry.ClassName()}, entry}
}

func (e *FileDir) Entry() FileDirI {
	return e.entry
}

func (e *FileDir) Value() (*File, *Directory, error) {
	if file, isFile := e.entry.(*File); isFile {
		return file, nil, nil
	}
	if dir, isDir := e.entry.(*Directory); isDir {
		return nil, dir, nil
	}
	return nil, nil, fmt.Errorf("bad FileDir entry")
}

// File represents a file entry.
// https://www.commonwl.org/v1.2/CommandLineTool.html#File
type File struct {
	ClassBase      `json:",inline"`
	Location       string    `json:"location,omitempty"`
	Path           string    `json:"path,omitempty"`
	Basename       string    `json:"basename,omitempty"`
	Dirname        string    `json:"dirname,omitempty"`
	Nameroot       string    `json:"nameroot,omitempty"`
	Nameext        string    `json:"nameext,omitempty"`
	Checksum       string    `json:"checksum,omitempty"`
	Size           int64     `json:"size,omitempty"`
	Format         string    `json:"format,omitempty"`
	Contents       string    `json:"contents,omitempty"`
	SecondaryFiles []FileDir `json:"secondaryFiles,omitempty"`
}

// Directory represents a directory entry.
// https://www.commonwl.org/v1.2/CommandLineTool.html#Directory
type Directory struct {
	ClassBase `json:",inline"`
	Location  string    `json:"location,omitempty"`
	Path      string    `json:"path,omitempty"`
	Basename  string    `json:"basename,omitempty"`
	Listing   []FileDir `json:"listing,omitempty"`
}

func (File) filedir()      {}
func (Directory) filedir() {}

// Labeled
// alias SchemaBase in v1.0, Labeled in v1.2
type Labeled struct {
	Label string `json:"label,omitempty"`
}

type Identified struct {
	ID string `json:"id,omitempty"`
}

type Documented struct {
	Doc ArrayString `json:"doc,omitempty"`
}

type SecondaryFileSchema struct {
	Pattern Expression `json:"pattern,omitempty"`
	// null / bool / Expression; inputs default to required, outputs not
	Required interface{} `json:"required,omitempty"`
}

func (s *SecondaryFileSchema) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		p := secondaryFilesDSLResolution(str)
		s.Pattern = Expression(p.Pattern)
		s.Required = p.Required
		return nil
	}
	type rawSchema SecondaryFileSchema
	var raw rawSchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SecondaryFileSchema(raw)
	return nil
}

type FieldBase struct {
	SecondaryFiles []SecondaryFileSchema `json:"secondaryFiles,omitempty" salad:"list"`
	Streamable     bool                  `json:"streamable,omitempty"`
}

type Parameter struct {
	FieldBase  `json:",inline"`
	Identified `json:",inline"`
	Labeled    `json:",inline"`
	Documented `json:",inline"`
}

type LoadListingEnum string

const (
	NO_LISTING      LoadListingEnum = "no_listing"
	SHALLOW_LISTING LoadListingEnum = "shallow_listing"
	DEEP_LISTING    LoadListingEnum = "deep_listing"
)

// LoadContents
// abstract; v1.0 kept this on InputBinding
type LoadContents struct {
	LoadContents bool            `json:"loadContents,omitempty"`
	LoadListing  LoadListingEnum `json:"loadListing,omitempty"` // default no_listing
}

type InputFormat struct {
	Format ArrayString `json:"format,omitempty"`
}

type OutputFormat struct {
	Format Expression `json:"format,omitempty"`
}

// InputParameterBase
// abstract
type InputParameterBase struct {
	Parameter    `json:",inline"`
	InputFormat  `json:",inline"`
	LoadContents `json:",inline"`
	Default      Value `json:"default,omitempty" salad:"value"`
}

type InputParameter interface {
	GetInputParameter() InputParameterBase
}

func (i InputParameterBase) GetInputParameter() InputParameterBase {
	return i
}

type OutputParameterBase struct {
	Parameter   `json:",inline"`
	InputFormat `json:",inline"`
}

type OutputParameter interface {
	GetOutputParameter() OutputParameterBase
}

func (o OutputParameterBase) GetOutputParameter() OutputParameterBase {
	return o
}

type Requirement interface {
	requirement()
	Classable
}

type BaseRequirement struct {
	ClassBase `json:",inline"`
}

func (BaseRequirement) requirement() {}

// Requirements represents the "requirements" and "hints" fields in CWL.
type Requirements []Requirement

// UnknownRequirement keeps a hint whose class has no schema in the
// active revision. The raw fields stay available for tools that know
// how to read them.
type UnknownRequirement struct {
	Class  string
	Fields map[string]interface{}
}

func (r UnknownRequirement) ClassName() string { return r.Class }
func (UnknownRequirement) requirement()        {}

func (r UnknownRequirement) MarshalJSON() ([]byte, error) {
	fields := make(map[string]interface{}, len(r.Fields)+1)
	for k, v := range r.Fields {
		fields[k] = v
	}
	fields["class"] = r.Class
	return json.Marshal(fields)
}

// Process is the common surface of Workflow, CommandLineTool,
// ExpressionTool and Operation.
type Process interface {
	Base() *ProcessBase
	Classable
}

// ProcessBase
// abstract
type ProcessBase struct {
	CWLVersion   string   `json:"cwlVersion,omitempty"`
	Intent       []string `json:"intent,omitempty"`
	Identified   `json:",inline"`
	Labeled      `json:",inline"`
	Documented   `json:",inline"`
	Requirements Requirements      `json:"requirements,omitempty" salad:"mapSubject:class"`
	Hints        Requirements      `json:"hints,omitempty" salad:"mapSubject:class,hints"`
	Inputs       []InputParameter  `json:"inputs,omitempty" salad:"mapSubject:id,mapPredicate:type"`
	Outputs      []OutputParameter `json:"outputs,omitempty" salad:"mapSubject:id,mapPredicate:type"`
}

func (b *ProcessBase) Base() *ProcessBase {
	return b
}

// InlineJavascriptRequirement
// https://www.commonwl.org/v1.2/CommandLineTool.html#InlineJavascriptRequirement
type InlineJavascriptRequirement struct {
	BaseRequirement `json:",inline"`
	ExpressionLib   []string `json:"expressionLib,omitempty"`
}

type CommandInputSchema interface {
	SchemaTypename() string
}

type CommandInputSchemaBase struct {
}

func (CommandInputSchemaBase) SchemaTypename() string {
	return ""
}

// SchemaDefRequirement
// https://www.commonwl.org/v1.2/CommandLineTool.html#SchemaDefRequirement
type SchemaDefRequirement struct {
	BaseRequirement `json:",inline"`
	Types           []CommandInputSchema `json:"types,omitempty" salad:"type"`
}

type LoadListingRequirement struct {
	BaseRequirement `json:",inline"`
	LoadListing     LoadListingEnum `json:"loadListing,omitempty"`
}
