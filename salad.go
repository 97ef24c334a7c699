package cwl

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SaladType is the schema-salad type union:
// primitive or named type or record or enum or array, or a list of them.
type SaladType struct {
	name      string // named type, e.g. a SchemaDefRequirement type or Any
	primitive string // null / boolean / int / long / float / double / string
	record    RecordType
	enum      EnumType
	array     ArrayType
	multi     []SaladType
}

// RecordType is satisfied by RecordSchema and the per-context
// record schemas embedding it.
type RecordType interface {
	saladRecord()
}

// EnumType is satisfied by EnumSchema and the per-context enum
// schemas embedding it.
type EnumType interface {
	saladEnum()
}

// ArrayType is satisfied by ArraySchema and the per-context array
// schemas embedding it.
type ArrayType interface {
	saladArray()
	SetItems(SaladType)
	Items() SaladType
}

type RecordSchema struct {
	Type   string        `json:"type"` // must be record
	Fields []RecordField `json:"fields,omitempty" salad:"mapSubject:name,mapPredicate:type"`
}

type RecordField struct {
	Name string      `json:"name"`
	Doc  ArrayString `json:"doc,omitempty"`
	Type SaladType   `json:"type" salad:"type"`
}

type EnumSchema struct {
	Type    string   `json:"type"` // must be enum
	Symbols []string `json:"symbols"`
}

type ArraySchema struct {
	Type      string    `json:"type"` // must be array
	ItemsType SaladType `json:"items" salad:"type"`
}

func (RecordSchema) saladRecord() {}
func (EnumSchema) saladEnum()     {}
func (ArraySchema) saladArray()   {}

func (t *ArraySchema) SetItems(items SaladType) {
	t.ItemsType = items
}

func (t ArraySchema) Items() SaladType {
	return t.ItemsType
}

func (t ArraySchema) MarshalJSON() ([]byte, error) {
	t.Type = "array"
	type rawArray ArraySchema
	return json.Marshal((rawArray)(t))
}

func (t RecordSchema) MarshalJSON() ([]byte, error) {
	t.Type = "record"
	type rawRecord RecordSchema
	return json.Marshal((rawRecord)(t))
}

func (t EnumSchema) MarshalJSON() ([]byte, error) {
	t.Type = "enum"
	type rawEnum EnumSchema
	return json.Marshal((rawEnum)(t))
}

func isPrimitive(v string) bool {
	return v == "null" || v == "boolean" || v == "int" || v == "long" ||
		v == "float" || v == "double" || v == "string"
}

func (t *SaladType) SetTypename(name string) {
	if isPrimitive(name) {
		t.primitive = name
		return
	}
	t.name = name
}

func (t *SaladType) SetNull() {
	t.primitive = "null"
}

func (t *SaladType) SetMulti(types []SaladType) {
	t.multi = types
}

func (t *SaladType) SetArray(array ArrayType) {
	t.array = array
}

func (t *SaladType) SetEnum(enum EnumType) {
	t.enum = enum
}

func (t *SaladType) SetRecord(record RecordType) {
	t.record = record
}

func (t SaladType) MarshalJSON() ([]byte, error) {
	if t.primitive != "" {
		return json.Marshal(t.primitive)
	} else if t.name != "" {
		return json.Marshal(t.name)
	} else if t.array != nil {
		return json.Marshal(t.array)
	} else if t.enum != nil {
		return json.Marshal(t.enum)
	} else if t.record != nil {
		return json.Marshal(t.record)
	} else if t.multi != nil {
		return json.Marshal(t.multi)
	}
	return nil, fmt.Errorf("invalid type")
}

func (t *SaladType) String() string {
	raw, err := t.MarshalJSON()
	if err != nil {
		return "ErrType:" + err.Error()
	}
	return string(raw)
}

func (t *SaladType) IsPrimitive() bool {
	return t.primitive != ""
}

func (t *SaladType) IsNullable() bool {
	if t.primitive == "null" {
		return true
	}
	for _, i := range t.multi {
		if i.primitive == "null" {
			return true
		}
	}
	return false
}

func (t *SaladType) IsArray() bool {
	return t.array != nil
}

func (t *SaladType) MustArray() ArrayType {
	return t.array
}

func (t *SaladType) MustRecord() RecordType {
	return t.record
}

func (t *SaladType) MustEnum() EnumType {
	return t.enum
}

func (t *SaladType) MustMulti() []SaladType {
	return t.multi
}

// TypeName gives a human readable name of the type.
func (t *SaladType) TypeName() string {
	if t.primitive != "" {
		return t.primitive
	} else if t.name != "" {
		return t.name
	} else if t.array != nil {
		return "array"
	} else if t.enum != nil {
		return "enum"
	} else if t.record != nil {
		return "record"
	} else if t.multi != nil {
		types := make([]string, len(t.multi))
		for i, ti := range t.multi {
			types[i] = ti.TypeName()
		}
		return "[" + strings.Join(types, ",") + "]"
	}
	return "_unknownType_"
}

// typeDSLResolution expands the salad type DSL:
// "string?" is [null, string], "string[]" is {type: array, items: string}.
func typeDSLResolution(dslType string) (isOptional bool, isArray bool, restType string) {
	if strings.HasSuffix(dslType, "?") {
		isOptional = true
		dslType = dslType[:len(dslType)-1]
	}
	if strings.HasSuffix(dslType, "[]") {
		isArray = true
		dslType = dslType[:len(dslType)-2]
	}
	return isOptional, isArray, dslType
}

type secondaryFilesDSLPattern struct {
	Pattern  string      `json:"pattern"`
	Required interface{} `json:"required"`
}

// secondaryFilesDSLResolution expands the secondaryFiles DSL:
// a trailing "?" marks the pattern as not required.
func secondaryFilesDSLResolution(in string) (out secondaryFilesDSLPattern) {
	p := secondaryFilesDSLPattern{Pattern: in, Required: nil}
	if strings.HasSuffix(in, "?") {
		p.Pattern = in[:len(in)-1]
		p.Required = false
	}
	return p
}
