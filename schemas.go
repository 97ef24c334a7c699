package cwl

// Per-context bindings of the salad schema types. Input schemas may
// carry loadContents/format, command schemas may carry CLI bindings.

type InputSchema struct {
	Labeled `json:",inline"`
}

type OutputSchema struct {
	Labeled `json:",inline"`
}

type InputRecordField struct {
	RecordField  `json:",inline"`
	FieldBase    `json:",inline"`
	InputFormat  `json:",inline"`
	LoadContents `json:",inline"`
}

type InputRecordSchema struct {
	RecordSchema `json:",inline"`
	InputSchema  `json:",inline"`
}

type InputEnumSchema struct {
	EnumSchema  `json:",inline"`
	InputSchema `json:",inline"`
}

type InputArraySchema struct {
	ArraySchema `json:",inline"`
	InputSchema `json:",inline"`
}

type OutputRecordField struct {
	RecordField  `json:",inline"`
	FieldBase    `json:",inline"`
	OutputFormat `json:",inline"`
}

type OutputRecordSchema struct {
	RecordSchema `json:",inline"`
	OutputSchema `json:",inline"`
}

type OutputEnumSchema struct {
	EnumSchema   `json:",inline"`
	OutputSchema `json:",inline"`
}

type OutputArraySchema struct {
	ArraySchema  `json:",inline"`
	OutputSchema `json:",inline"`
}

type CommandLineBindable struct {
	InputBinding *CommandLineBinding `json:"inputBinding,omitempty"`
}

type CommandInputRecordField struct {
	InputRecordField    `json:",inline"`
	CommandLineBindable `json:",inline"`
}

type CommandInputRecordSchema struct {
	CommandInputSchemaBase
	CommandLineBindable `json:",inline"`
	InputRecordSchema   `json:",inline"`
}

type CommandInputEnumSchema struct {
	CommandInputSchemaBase
	CommandLineBindable `json:",inline"`
	InputEnumSchema     `json:",inline"`
}

type CommandInputArraySchema struct {
	CommandInputSchemaBase
	CommandLineBindable `json:",inline"`
	InputArraySchema    `json:",inline"`
}

type CommandOutputRecordField struct {
	OutputRecordField `json:",inline"`
	OutputBinding     *CommandOutputBinding `json:"outputBinding,omitempty"`
}

type CommandOutputRecordSchema struct {
	OutputRecordSchema `json:",inline"`
}

type CommandOutputEnumSchema struct {
	OutputEnumSchema `json:",inline"`
}

type CommandOutputArraySchema struct {
	OutputArraySchema `json:",inline"`
}

// CommandInputType collects CWLType, stdin, the command input schemas,
// a named type, and arrays of them.
type CommandInputType struct {
	SaladType `salad:"type"`
}

// IsStdin reports the `type: stdin` shorthand.
func (t *CommandInputType) IsStdin() bool {
	return t.name == "stdin"
}

func (t *CommandInputType) SchemaTypename() string {
	return t.TypeName()
}

// CommandOutputType collects CWLType, stdout/stderr, the command output
// schemas, a named type, and arrays of them.
type CommandOutputType struct {
	SaladType `salad:"type"`
}

func (t *CommandOutputType) IsStdout() bool {
	return t.name == "stdout"
}

func (t *CommandOutputType) IsStderr() bool {
	return t.name == "stderr"
}
