package cwl

import (
	"encoding/json"
	"fmt"
)

// Doc: cwltool/schemas/v1.2/CommandLineTool.yml

const (
	STDIN  = "stdin"
	STDOUT = "stdout"
	STDERR = "stderr"
)

type EnvironmentDef struct {
	EnvName  string     `json:"envName"`
	EnvValue Expression `json:"envValue"`
}

// Use of `loadContents` in `InputBinding` is deprecated, preserved for
// v1.0 backwards compatibility.
type InputBinding struct {
	LoadContents *bool `json:"loadContents,omitempty"`
}

type CommandLineBinding struct {
	InputBinding  `json:",inline"`
	Position      *IntExpression `json:"position,omitempty"`
	Prefix        string         `json:"prefix,omitempty"`
	Separate      bool           `json:"separate" salad:"default:true"`
	ItemSeparator string         `json:"itemSeparator,omitempty"`
	ValueFrom     Expression     `json:"valueFrom,omitempty"`
	ShellQuote    bool           `json:"shellQuote" salad:"default:true"`
}

type CommandOutputBinding struct {
	LoadContents `json:",inline"`
	Glob         ArrayExpression `json:"glob,omitempty"`
	OutputEval   Expression      `json:"outputEval,omitempty"`
}

type CommandInputParameter struct {
	InputParameterBase `json:",inline"`
	Type               CommandInputType    `json:"type" salad:"type"`
	InputBinding       *CommandLineBinding `json:"inputBinding,omitempty"`
}

type CommandOutputParameter struct {
	OutputParameterBase `json:",inline"`
	Type                CommandOutputType     `json:"type" salad:"type"`
	OutputBinding       *CommandOutputBinding `json:"outputBinding,omitempty"`
}

// Argument is string | Expression | CommandLineBinding.
type Argument struct {
	Expression Expression
	Binding    *CommandLineBinding
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &a.Expression)
	}
	if len(data) > 0 && data[0] == '{' {
		a.Binding = &CommandLineBinding{Separate: true, ShellQuote: true}
		return json.Unmarshal(data, a.Binding)
	}
	return fmt.Errorf("argument needs to be string or CommandLineBinding")
}

func (a Argument) MarshalJSON() ([]byte, error) {
	if a.Binding != nil {
		return json.Marshal(a.Binding)
	}
	return json.Marshal(a.Expression)
}

type Arguments []Argument

type CommandLineTool struct {
	ClassBase          `json:",inline"`
	ProcessBase        `json:",inline"`
	BaseCommands       ArrayString `json:"baseCommand,omitempty"`
	Arguments          Arguments   `json:"arguments,omitempty"`
	Stdin              Expression  `json:"stdin,omitempty"`
	Stderr             Expression  `json:"stderr,omitempty"`
	Stdout             Expression  `json:"stdout,omitempty"`
	SuccessCodes       []int       `json:"successCodes,omitempty"`
	TemporaryFailCodes []int       `json:"temporaryFailCodes,omitempty"`
	PermanentFailCodes []int       `json:"permanentFailCodes,omitempty"`
}

type DockerRequirement struct {
	BaseRequirement       `json:",inline"`
	DockerPull            string `json:"dockerPull,omitempty"`
	DockerLoad            string `json:"dockerLoad,omitempty"`
	DockerFile            string `json:"dockerFile,omitempty"`
	DockerImport          string `json:"dockerImport,omitempty"`
	DockerImageId         string `json:"dockerImageId,omitempty"`
	DockerOutputDirectory string `json:"dockerOutputDirectory,omitempty"`
}

type SoftwarePackage struct {
	Package string   `json:"package"`
	Version []string `json:"version,omitempty"`
	Specs   []string `json:"specs,omitempty"`
}

type SoftwareRequirement struct {
	BaseRequirement `json:",inline"`
	Packages        []SoftwarePackage `json:"packages" salad:"mapSubject:package,mapPredicate:specs"`
}

// Dirent
// https://www.commonwl.org/v1.2/CommandLineTool.html#Dirent
type Dirent struct {
	Entry     Expression `json:"entry,omitempty"`
	EntryName Expression `json:"entryname,omitempty"`
	Writable  bool       `json:"writable,omitempty"`
}

// WorkDirEntry is Expression | Dirent | File | Directory.
type WorkDirEntry struct {
	Expression Expression
	Dirent     *Dirent
	Entry      *FileDir
}

func (e *WorkDirEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Expression)
	}
	probe := &ClassBase{}
	if err := json.Unmarshal(data, probe); err != nil {
		return err
	}
	if probe.Class == "File" || probe.Class == "Directory" {
		e.Entry = &FileDir{}
		return json.Unmarshal(data, e.Entry)
	}
	e.Dirent = &Dirent{}
	return json.Unmarshal(data, e.Dirent)
}

func (e WorkDirEntry) MarshalJSON() ([]byte, error) {
	if e.Dirent != nil {
		return json.Marshal(e.Dirent)
	}
	if e.Entry != nil {
		return json.Marshal(e.Entry)
	}
	return json.Marshal(e.Expression)
}

type InitialWorkDirRequirement struct {
	BaseRequirement `json:",inline"`
	Listing         []WorkDirEntry `json:"listing" salad:"list"`
}

type EnvVarRequirement struct {
	BaseRequirement `json:",inline"`
	EnvDef          []EnvironmentDef `json:"envDef" salad:"mapSubject:envName,mapPredicate:envValue"`
}

type ShellCommandRequirement struct {
	BaseRequirement `json:",inline"`
}

type ResourceRequirement struct {
	BaseRequirement `json:",inline"`
	CoresMin        LongFloatExpression `json:"coresMin,omitempty"`
	CoresMax        LongFloatExpression `json:"coresMax,omitempty"`
	RamMin          LongFloatExpression `json:"ramMin,omitempty"`
	RamMax          LongFloatExpression `json:"ramMax,omitempty"`
	TmpdirMin       LongFloatExpression `json:"tmpdirMin,omitempty"`
	TmpdirMax       LongFloatExpression `json:"tmpdirMax,omitempty"`
	OutdirMin       LongFloatExpression `json:"outdirMin,omitempty"`
	OutdirMax       LongFloatExpression `json:"outdirMax,omitempty"`
}

type WorkReuse struct {
	BaseRequirement `json:",inline"`
	EnableReuse     BoolExpression `json:"enableReuse,omitempty"`
}

type NetworkAccess struct {
	BaseRequirement `json:",inline"`
	NetworkAccess   BoolExpression `json:"networkAccess,omitempty"`
}

type InplaceUpdateRequirement struct {
	BaseRequirement `json:",inline"`
	InplaceUpdate   bool `json:"inplaceUpdate"`
}

type ToolTimeLimit struct {
	BaseRequirement `json:",inline"`
	Timelimit       LongFloatExpression `json:"timelimit"`
}
