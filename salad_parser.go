package cwl

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// StringUnmarshalable lets a struct accept its string shorthand form.
type StringUnmarshalable interface {
	UnmarshalFromString(string) error
}

// Parser decodes schema-salad flavoured JSON into the CWL type set.
// Struct tags drive it: `json:",inline"` embeds, and `salad:"..."` for
// mapSubject/mapPredicate, defaults, type unions and open hints.
// The classMap decides which classes an interface field may carry, so a
// versioned loader passes the registry of its own schema revision.
type Parser struct {
	Name     string
	classMap map[string]interface{}
	root     *RecordFieldGraph
	salad    saladTags
}

// RecordFieldGraph binds abstract field names (InputParameter,
// ArrayType, ...) to the concrete example type used in this context.
type RecordFieldGraph struct {
	Example interface{}
	Fields  map[string]*RecordFieldGraph
	ID      string
}

type saladTags struct {
	MapSubject   string
	MapPredicate string
	Default      string
	IsType       bool
	IsValue      bool
	IsList       bool // wrap a single object into a list
	IsHint       bool // tolerate classes missing from the registry
	IsAbstract   bool
}

func NewParser(root *RecordFieldGraph, classMap map[string]interface{}) *Parser {
	if root == nil {
		root = &RecordFieldGraph{Fields: map[string]*RecordFieldGraph{}}
	}
	if classMap == nil {
		classMap = map[string]interface{}{}
	}
	return &Parser{"", classMap, root, saladTags{}}
}

func (p *Parser) Unmarshal(data []byte, bean interface{}) error {
	typeOfRecv := reflect.TypeOf(bean)
	valueOfRecv := reflect.ValueOf(bean)
	return p.setField(typeOfRecv, valueOfRecv, data, p.salad)
}

// Fork narrows the parser to the field graph of a nested record.
func (p *Parser) Fork(fieldname string) *Parser {
	leaf, got := p.root.Fields[fieldname]
	if got && leaf.Fields != nil {
		return &Parser{fieldname, p.classMap, leaf, p.salad}
	}
	return p
}

var runType = reflect.TypeOf(Run{})

func (p *Parser) setField(fieldType reflect.Type, fieldValue reflect.Value, bean []byte, salad saladTags) (err error) {
	switch fieldType.Kind() {
	case reflect.Ptr:
		fieldType = fieldType.Elem()
		if fieldValue.IsNil() {
			if len(bean) == 0 || string(bean) == "null" {
				if salad.Default == "" {
					return nil
				}
				return setFieldDefaultValue(fieldType, fieldValue, salad.Default)
			}
			fieldValue.Set(reflect.New(fieldType))
		}
		fieldValue = fieldValue.Elem()
		return p.setField(fieldType, fieldValue, bean, salad)
	case reflect.Struct:
		if fieldType == runType {
			return p.parseRun(fieldValue, bean)
		}
		// the root bean skips its own UnmarshalJSON, or it would recurse
		if !p.isRootType(fieldType) && !salad.IsAbstract {
			if ok, err := checkUnmarshal(fieldValue, bean); ok || err != nil {
				return err
			}
		}
		if salad.IsType {
			return p.parseType(fieldType, fieldValue, bean, salad)
		}
		return p.parseObject(fieldType, fieldValue, bean)
	case reflect.Slice:
		return p.applySlice(fieldType, fieldValue, bean, salad)
	case reflect.String, reflect.Int, reflect.Bool, reflect.Int64, reflect.Float64, reflect.Float32:
		return json.Unmarshal(bean, fieldValue.Addr().Interface())
	case reflect.Interface:
		return p.applyInterface(fieldType, fieldValue, bean, salad)
	case reflect.Map:
		return p.applyMap(fieldType, fieldValue, bean, salad)
	default:
		return json.Unmarshal(bean, fieldValue.Addr().Interface())
	}
}

func (p *Parser) isRootType(fieldType reflect.Type) bool {
	if p.root.Example == nil {
		return false
	}
	return reflect.TypeOf(p.root.Example).Name() == fieldType.Name()
}

func (p *Parser) parseObject(typeOfRecv reflect.Type, valueOfRecv reflect.Value, data []byte) (err error) {
	if (valueOfRecv.Kind() == reflect.Interface || valueOfRecv.Kind() == reflect.Ptr) && valueOfRecv.IsNil() {
		return nil
	}
	if typeOfRecv.Kind() == reflect.Interface {
		typeOfRecv = typeOfRecv.Elem()
	}
	if valueOfRecv.Kind() == reflect.Interface {
		valueOfRecv = valueOfRecv.Elem()
		if valueOfRecv.IsNil() {
			return nil
		}
	}
	// a bare SaladType is only reachable through parseType
	if reflect.TypeOf(SaladType{}) == typeOfRecv {
		return nil
	}
	if valueOfRecv.Kind() == reflect.Ptr {
		valueOfRecv = valueOfRecv.Elem()
	}
	if su, ok := valueOfRecv.Addr().Interface().(StringUnmarshalable); ok {
		if len(data) > 0 && data[0] == '"' {
			var str string
			if err := json.Unmarshal(data, &str); err != nil {
				return err
			}
			return su.UnmarshalFromString(str)
		}
	}
	bean := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &bean); err != nil {
		return err
	}
	keyMap := make(map[string]string) // json name : go name
	inlineFields := make(map[string]string)
	saladFields := make(map[string]saladTags)

	for i := 0; i < typeOfRecv.NumField(); i++ {
		field := typeOfRecv.Field(i)
		keyGo := field.Name
		key := keyGo
		if field.Anonymous {
			inlineFields[keyGo] = key
		}
		if tag := field.Tag.Get("json"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				key = parts[0]
			}
			if len(parts) > 1 && parts[0] == "" && parts[1] == "inline" {
				inlineFields[keyGo] = key
			}
		}
		if tag := field.Tag.Get("salad"); tag != "" {
			v := getSaladTags(tag)
			saladFields[key] = v
			if v.Default != "" {
				setFieldDefaultValue(typeOfRecv.Field(i).Type, valueOfRecv.Field(i), v.Default)
			}
		}
		keyMap[key] = keyGo
	}
	// inline embeds see the whole document
	for keyGo := range inlineFields {
		var salad = p.salad
		field, got := typeOfRecv.FieldByName(keyGo)
		if !got {
			continue
		}
		if valueOfRecv.Kind() == reflect.Interface {
			continue
		}
		if v, got := saladFields[keyGo]; got {
			salad = v
		}
		if _, got := bean["type"]; salad.IsType && !got {
			continue
		}
		valueField := valueOfRecv.FieldByName(keyGo)
		if err = p.setField(field.Type, valueField, data, salad); err != nil {
			return err
		}
	}
	for key, value := range bean {
		var salad = p.salad
		keyGo := keyMap[key]
		field, got := typeOfRecv.FieldByName(keyGo)
		if !got {
			continue
		}
		fieldValue := valueOfRecv.FieldByName(keyGo)
		fieldType := field.Type
		if v, got := saladFields[key]; got {
			salad = v
		}
		nextp := p.Fork(fieldType.Name())
		if err = nextp.setField(fieldType, fieldValue, value, salad); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (p *Parser) applySlice(fieldType reflect.Type, fieldValue reflect.Value, bean []byte, salad saladTags) (err error) {
	fieldType = fieldType.Elem()
	var values []json.RawMessage
	if fieldValue.IsNil() {
		fieldValue.Set(reflect.MakeSlice(reflect.SliceOf(fieldType), 0, 0))
	}
	if got, err := checkUnmarshal(fieldValue, bean); got || err != nil {
		return err
	}
	if salad.IsList && len(bean) > 0 && bean[0] != '[' {
		if (bean[0] == '{' && salad.MapSubject == "") || bean[0] == '"' {
			bean = []byte("[" + string(bean) + "]")
		}
	}
	if salad.MapSubject != "" {
		values, err = JsonldPredicateMapSubject(bean, salad.MapSubject, salad.MapPredicate)
	} else {
		values = make([]json.RawMessage, 0)
		err = json.Unmarshal(bean, &values)
	}
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	if fieldValue.CanSet() {
		fieldValue.Set(reflect.MakeSlice(reflect.SliceOf(fieldType), len(values), len(values)))
	}
	for i, valuei := range values {
		nextType := fieldType
		fieldValue.Index(i).Set(reflect.New(nextType).Elem())
		if nextType.Kind() != reflect.Interface {
			if got, err := checkUnmarshal(fieldValue.Index(i), valuei); got || err != nil {
				if err != nil {
					return err
				}
				continue
			}
		}
		if err = p.setField(nextType, fieldValue.Index(i), valuei, salad); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) applyMap(fieldType reflect.Type, fieldValue reflect.Value, bean []byte, salad saladTags) (err error) {
	fieldType = fieldType.Elem()
	values := map[string]json.RawMessage{}
	if fieldValue.IsNil() {
		fieldValue.Set(reflect.MakeMap(reflect.MapOf(reflect.TypeOf(""), fieldType)))
	}
	if err = json.Unmarshal(bean, &values); err != nil {
		return err
	}
	for keyi, valuei := range values {
		nextType := fieldType
		nextValue := reflect.New(nextType).Elem()
		if err = p.setField(nextType, nextValue, valuei, salad); err != nil {
			return err
		}
		fieldValue.SetMapIndex(reflect.ValueOf(keyi), nextValue)
	}
	return nil
}

type testClass struct {
	Class string `json:"class"`
}

var errNoClass = fmt.Errorf("no class for struct")
var errUnknownClass = fmt.Errorf("unknown class for struct")

func (p *Parser) testValueClass(bean []byte) (reflect.Type, error) {
	class := &testClass{}
	if err := json.Unmarshal(bean, class); err != nil {
		return reflect.TypeOf(nil), err
	}
	if name := class.Class; name != "" {
		v, got := p.classMap[name]
		if !got {
			return reflect.TypeOf(nil), errUnknownClass
		}
		return reflect.TypeOf(v), nil
	}
	return reflect.TypeOf(nil), errNoClass
}

func (p *Parser) applyInterface(fieldType reflect.Type, fieldValue reflect.Value, bean []byte, salad saladTags) (err error) {
	var nextType reflect.Type
	fieldTypeName := fieldType.Name()
	nextp := p.Fork(fieldTypeName)
	if p.root.Example != nil && reflect.TypeOf(p.root.Example).Implements(fieldType) && p.Name == fieldTypeName {
		nextType = reflect.TypeOf(p.root.Example)
	} else if salad.IsValue {
		return p.parseValues(fieldValue, bean)
	} else if _, classable := fieldType.MethodByName("ClassName"); classable {
		nextType, err = p.testValueClass(bean)
		if err == errUnknownClass && salad.IsHint {
			return p.parseUnknownHint(fieldValue, bean)
		}
		if err != nil {
			return err
		}
		if salad.IsHint {
			// hints are advisory: a known class that fails its typed
			// parse is kept as plain data instead of failing the load
			fieldValue.Set(reflect.New(nextType))
			if err := nextp.setField(nextType, fieldValue, bean, salad); err != nil {
				return p.parseUnknownHint(fieldValue, bean)
			}
			return nil
		}
	} else if record, got := p.root.Fields[fieldTypeName]; got {
		nextType = reflect.TypeOf(record.Example)
	} else {
		return json.Unmarshal(bean, fieldValue.Addr().Interface())
	}
	fieldValue.Set(reflect.New(nextType))
	return nextp.setField(nextType, fieldValue, bean, salad)
}

// parseRun accepts a process reference (a URI string) or an embedded
// process object dispatched on its class through the registry. The
// sub-process gets its own field graph, not the enclosing one.
func (p *Parser) parseRun(fieldValue reflect.Value, data []byte) error {
	run := fieldValue.Addr().Interface().(*Run)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &run.ID)
	}
	class := &testClass{}
	if err := json.Unmarshal(data, class); err != nil {
		return err
	}
	if _, got := p.classMap[class.Class]; !got {
		return fmt.Errorf("step run: %w", &UnknownClassError{Class: class.Class})
	}
	proc, err := NewProcessByClass(class.Class)
	if err != nil {
		return fmt.Errorf("step run: %w", err)
	}
	sub := NewParser(ProcessFieldGraph(proc), p.classMap)
	if err := sub.Unmarshal(data, proc); err != nil {
		return err
	}
	run.Process = proc
	return nil
}

// parseUnknownHint keeps a hint whose class is not in the registry as
// plain data. Hints are an open vocabulary, unlike requirements.
func (p *Parser) parseUnknownHint(fieldValue reflect.Value, bean []byte) error {
	fields := map[string]interface{}{}
	if err := json.Unmarshal(bean, &fields); err != nil {
		return err
	}
	class, _ := fields["class"].(string)
	delete(fields, "class")
	fieldValue.Set(reflect.ValueOf(&UnknownRequirement{Class: class, Fields: fields}))
	return nil
}

func (p *Parser) parseType(fieldType reflect.Type, fieldValue reflect.Value, data []byte, salad saladTags) (err error) {
	db := p.root.Fields
	saladVal := fieldValue
	if typeName := fieldType.Name(); typeName != "SaladType" {
		if fieldValue.Kind() != reflect.Struct {
			if saladVal.Kind() == reflect.Interface {
				saladVal = saladVal.Elem()
			}
			if saladVal.Kind() == reflect.Ptr {
				saladVal = saladVal.Elem()
			}
		}
		saladVal = saladVal.FieldByName("SaladType")
	}
	if saladVal.CanAddr() {
		saladVal = saladVal.Addr()
	}
	t := saladVal.Interface().(*SaladType)
	saladType := reflect.TypeOf(SaladType{})
	arrayType := reflect.TypeOf(db["ArrayType"].Example)
	enumType := reflect.TypeOf(db["EnumType"].Example)
	recordType := reflect.TypeOf(db["RecordType"].Example)
	salad.IsType = false // avoid re-entering for the same field
	var bean interface{}
	if err = json.Unmarshal(data, &bean); err != nil {
		return err
	}
	switch v := bean.(type) {
	case string:
		isOptional, isArray, restType := typeDSLResolution(v)
		if !isOptional && !isArray {
			t.SetTypename(restType)
			return nil
		}
		innerType := &SaladType{}
		innerType.SetTypename(restType)
		if isOptional {
			nullType := &SaladType{}
			nullType.SetNull()
			if isArray {
				array := reflect.New(arrayType).Interface().(ArrayType)
				array.SetItems(*innerType)
				tmpType := SaladType{}
				tmpType.SetArray(array)
				t.SetMulti([]SaladType{*nullType, tmpType})
				return nil
			}
			t.SetMulti([]SaladType{*nullType, *innerType})
			return nil
		}
		array := reflect.New(arrayType).Interface().(ArrayType)
		array.SetItems(*innerType)
		t.SetArray(array)
		return nil
	case map[string]interface{}:
		typenameRaw, got := v["type"]
		if !got {
			return fmt.Errorf("type field is needed for type object")
		}
		typenameStr, got := typenameRaw.(string)
		if !got {
			return fmt.Errorf("type field needs to be STRING type for type object")
		}
		switch typenameStr {
		case "record":
			recordValue := reflect.New(recordType)
			record := recordValue.Interface().(RecordType)
			if err = p.setField(recordType, recordValue, data, salad); err != nil {
				return err
			}
			t.SetRecord(record)
		case "enum":
			enumValue := reflect.New(enumType)
			enum := enumValue.Interface().(EnumType)
			if err = p.setField(enumType, enumValue, data, salad); err != nil {
				return err
			}
			t.SetEnum(enum)
		case "array":
			arrayValue := reflect.New(arrayType)
			array := arrayValue.Interface().(ArrayType)
			if err = p.setField(arrayType, arrayValue, data, salad); err != nil {
				return err
			}
			t.SetArray(array)
		default:
			return fmt.Errorf("unknown schema type %q", typenameStr)
		}
		// the binding context may carry other fields next to the schema
		beans := make(map[string]json.RawMessage)
		if err = json.Unmarshal(data, &beans); err != nil {
			return err
		}
		delete(beans, "type")
		delete(beans, "items")
		delete(beans, "fields")
		delete(beans, "symbols")
		data, _ = json.Marshal(beans)
		return p.parseObject(fieldType, fieldValue, data)
	case []interface{}:
		beans := make([]json.RawMessage, 0)
		if err = json.Unmarshal(data, &beans); err != nil {
			return err
		}
		types := make([]SaladType, len(beans))
		for i, beani := range beans {
			if err = p.parseType(saladType, reflect.ValueOf(&types[i]).Elem(), beani, salad); err != nil {
				return err
			}
		}
		t.SetMulti(types)
		return nil
	}
	return fmt.Errorf("unknown type %s", string(data))
}

func (p *Parser) parseValues(fieldValue reflect.Value, data []byte) (err error) {
	var bean interface{}
	if err = json.Unmarshal(data, &bean); err != nil {
		return err
	}
	val, err := ConvertToValue(bean)
	if err != nil {
		return err
	}
	if val == nil {
		return nil
	}
	fieldValue.Set(reflect.ValueOf(val))
	return nil
}

func getSaladTags(txt string) saladTags {
	s := saladTags{}
	parts := strings.Split(txt, ",")
	for _, p := range parts {
		pp := strings.SplitN(p, ":", 2)
		h := pp[0]
		v := ""
		if len(pp) == 2 {
			v = pp[1]
		}
		switch h {
		case "mapSubject":
			s.MapSubject = v
		case "mapPredicate":
			s.MapPredicate = v
		case "default":
			s.Default = v
		case "type":
			s.IsType = true
		case "value":
			s.IsValue = true
		case "list":
			s.IsList = true
		case "hints":
			s.IsHint = true
		case "abstract":
			s.IsAbstract = true
		}
	}
	return s
}

func setFieldDefaultValue(fieldType reflect.Type, fieldValue reflect.Value, defStr string) (err error) {
	var any interface{}
	switch fieldType.Kind() {
	case reflect.String:
		any = defStr
	case reflect.Bool:
		if defStr == "true" {
			any = true
		} else if defStr == "false" {
			any = false
		} else {
			return fmt.Errorf("bool default must be true/false")
		}
	case reflect.Int:
		any, err = strconv.Atoi(defStr)
	case reflect.Int64:
		any, err = strconv.ParseInt(defStr, 0, 64)
	case reflect.Float32:
		var float float64
		float, err = strconv.ParseFloat(defStr, 32)
		any = float32(float)
	case reflect.Float64:
		any, err = strconv.ParseFloat(defStr, 64)
	default:
		return fmt.Errorf("type does not support simple default")
	}
	if err != nil {
		return err
	}
	if fieldValue.Kind() == reflect.Ptr {
		if fieldValue.IsNil() {
			fieldValue.Set(reflect.New(fieldType))
		}
		fieldValue = fieldValue.Elem()
	}
	if reflect.ValueOf(any).Kind() == reflect.String {
		fieldValue.SetString(any.(string))
	} else {
		fieldValue.Set(reflect.ValueOf(any))
	}
	return nil
}

func checkUnmarshal(fieldValue reflect.Value, bean []byte) (bool, error) {
	if unmarshaler, ok := fieldValue.Interface().(json.Unmarshaler); ok {
		err := unmarshaler.UnmarshalJSON(bean)
		return ok, err
	}
	if fieldValue.CanAddr() {
		if unmarshaler, ok := fieldValue.Addr().Interface().(json.Unmarshaler); ok {
			err := unmarshaler.UnmarshalJSON(bean)
			return ok, err
		}
	}
	return false, nil
}

// JsonldPredicateMapSubject converts the JSON-LD map form
// { key: obj1, key2: notObjVal } into the list form
// [{ subject: key, obj1... }, { subject: key2, predicate: notObjVal }].
// Keys are emitted in sorted order so parses are deterministic.
func JsonldPredicateMapSubject(raw []byte, subject, predicate string) ([]json.RawMessage, error) {
	rawArray := make([]json.RawMessage, 0)
	rawMap := make(map[string]json.RawMessage)
	if len(raw) > 0 && raw[0] == '[' {
		err := json.Unmarshal(raw, &rawArray)
		return rawArray, err
	}
	if err := json.Unmarshal(raw, &rawMap); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(rawMap))
	for key := range rawMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := rawMap[key]
		newObj := make(map[string]interface{})
		if len(value) > 0 && value[0] == '{' {
			if err := json.Unmarshal(value, &newObj); err != nil {
				return nil, err
			}
		} else {
			newObj[predicate] = value
		}
		newObj[subject] = key
		newObjRaw, err := json.Marshal(newObj)
		if err != nil {
			return nil, err
		}
		rawArray = append(rawArray, newObjRaw)
	}
	return rawArray, nil
}
