package cwl

// DefaultClassMap is the full class registry, covering every class of
// the newest supported schema revision (v1.2). Versioned loaders pass
// their own narrowed registries instead.
var DefaultClassMap = map[string]interface{}{}

func init() {
	for class, example := range BaseClassMap() {
		DefaultClassMap[class] = example
	}
	for class, example := range V11ClassMap() {
		DefaultClassMap[class] = example
	}
	DefaultClassMap["Operation"] = Operation{}
}

// BaseClassMap lists the classes every supported revision knows.
func BaseClassMap() map[string]interface{} {
	return map[string]interface{}{
		"InlineJavascriptRequirement": InlineJavascriptRequirement{},
		"SchemaDefRequirement":        SchemaDefRequirement{},

		"DockerRequirement":         DockerRequirement{},
		"SoftwareRequirement":       SoftwareRequirement{},
		"InitialWorkDirRequirement": InitialWorkDirRequirement{},
		"EnvVarRequirement":         EnvVarRequirement{},
		"ShellCommandRequirement":   ShellCommandRequirement{},
		"ResourceRequirement":       ResourceRequirement{},

		"SubworkflowFeatureRequirement":   SubworkflowFeatureRequirement{},
		"ScatterFeatureRequirement":       ScatterFeatureRequirement{},
		"MultipleInputFeatureRequirement": MultipleInputFeatureRequirement{},
		"StepInputExpressionRequirement":  StepInputExpressionRequirement{},

		"Workflow":        Workflow{},
		"CommandLineTool": CommandLineTool{},
		"ExpressionTool":  ExpressionTool{},

		"File":      File{},
		"Directory": Directory{},
	}
}

// V11ClassMap lists the classes added by the v1.1 revision.
func V11ClassMap() map[string]interface{} {
	return map[string]interface{}{
		"LoadListingRequirement":   LoadListingRequirement{},
		"WorkReuse":                WorkReuse{},
		"NetworkAccess":            NetworkAccess{},
		"InplaceUpdateRequirement": InplaceUpdateRequirement{},
		"ToolTimeLimit":            ToolTimeLimit{},
	}
}

// NewProcessByClass gives a zero process value for a class name.
func NewProcessByClass(class string) (Process, error) {
	switch class {
	case "CommandLineTool":
		return &CommandLineTool{}, nil
	case "ExpressionTool":
		return &ExpressionTool{}, nil
	case "Workflow":
		return &Workflow{}, nil
	case "Operation":
		return &Operation{}, nil
	}
	return nil, &UnknownClassError{Class: class}
}

// UnknownClassError reports a process class the registry does not know.
type UnknownClassError struct {
	Class string
}

func (e *UnknownClassError) Error() string {
	if e.Class == "" {
		return "no process class declared"
	}
	return "unknown class for Process " + e.Class
}

func genericSchemaFields() map[string]*RecordFieldGraph {
	return map[string]*RecordFieldGraph{
		"ArrayType":  {Example: ArraySchema{}},
		"EnumType":   {Example: EnumSchema{}},
		"RecordType": {Example: RecordSchema{}},
		"FieldType":  {Example: RecordField{}},
	}
}

func commandInputSchemaFields() map[string]*RecordFieldGraph {
	return map[string]*RecordFieldGraph{
		"ArrayType":  {Example: CommandInputArraySchema{}},
		"EnumType":   {Example: CommandInputEnumSchema{}},
		"RecordType": {Example: CommandInputRecordSchema{}},
		"FieldType":  {Example: CommandInputRecordField{}},
	}
}

func commandOutputSchemaFields() map[string]*RecordFieldGraph {
	return map[string]*RecordFieldGraph{
		"ArrayType":  {Example: CommandOutputArraySchema{}},
		"EnumType":   {Example: CommandOutputEnumSchema{}},
		"RecordType": {Example: CommandOutputRecordSchema{}},
		"FieldType":  {Example: CommandOutputRecordField{}},
	}
}

// ProcessFieldGraph wires the abstract parameter and schema slots of a
// process class to their concrete types.
func ProcessFieldGraph(process Process) *RecordFieldGraph {
	graph := &RecordFieldGraph{Fields: make(map[string]*RecordFieldGraph)}
	db := graph.Fields
	switch process.(type) {
	case *CommandLineTool:
		graph.Example = CommandLineTool{}
		db["InputParameter"] = &RecordFieldGraph{Example: CommandInputParameter{}}
		db["OutputParameter"] = &RecordFieldGraph{Example: CommandOutputParameter{}}
		db["CommandInputType"] = &RecordFieldGraph{Example: CommandInputType{}, Fields: commandInputSchemaFields()}
		db["CommandOutputType"] = &RecordFieldGraph{Example: CommandOutputType{}, Fields: commandOutputSchemaFields()}
		db["CommandInputSchema"] = &RecordFieldGraph{Example: CommandInputType{}, Fields: commandInputSchemaFields()}
	case *ExpressionTool:
		graph.Example = ExpressionTool{}
		db["InputParameter"] = &RecordFieldGraph{Example: WorkflowInputParameter{}}
		db["OutputParameter"] = &RecordFieldGraph{Example: ExpressionToolOutputParameter{}}
		db["SaladType"] = &RecordFieldGraph{Example: SaladType{}, Fields: genericSchemaFields()}
		db["CommandInputSchema"] = &RecordFieldGraph{Example: CommandInputType{}, Fields: commandInputSchemaFields()}
	case *Workflow:
		graph.Example = Workflow{}
		db["InputParameter"] = &RecordFieldGraph{Example: WorkflowInputParameter{}}
		db["OutputParameter"] = &RecordFieldGraph{Example: WorkflowOutputParameter{}}
		db["SaladType"] = &RecordFieldGraph{Example: SaladType{}, Fields: genericSchemaFields()}
		db["CommandInputSchema"] = &RecordFieldGraph{Example: CommandInputType{}, Fields: commandInputSchemaFields()}
	case *Operation:
		graph.Example = Operation{}
		db["InputParameter"] = &RecordFieldGraph{Example: OperationInputParameter{}}
		db["OutputParameter"] = &RecordFieldGraph{Example: OperationOutputParameter{}}
		db["SaladType"] = &RecordFieldGraph{Example: SaladType{}, Fields: genericSchemaFields()}
		db["CommandInputSchema"] = &RecordFieldGraph{Example: CommandInputType{}, Fields: commandInputSchemaFields()}
	default:
		graph.Example = ProcessBase{}
		db["InputParameter"] = &RecordFieldGraph{Example: InputParameterBase{}}
		db["OutputParameter"] = &RecordFieldGraph{Example: OutputParameterBase{}}
		db["SaladType"] = &RecordFieldGraph{Example: SaladType{}, Fields: genericSchemaFields()}
	}
	return graph
}
