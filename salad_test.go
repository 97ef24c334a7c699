package cwl

import (
	"testing"
)

func TestTypeDSLResolution(t *testing.T) {
	cases := []struct {
		in         string
		isOptional bool
		isArray    bool
		rest       string
	}{
		{"string", false, false, "string"},
		{"string?", true, false, "string"},
		{"File[]", false, true, "File"},
		{"int[]?", true, true, "int"},
	}
	for _, c := range cases {
		isOptional, isArray, rest := typeDSLResolution(c.in)
		if isOptional != c.isOptional || isArray != c.isArray || rest != c.rest {
			t.Errorf("typeDSLResolution(%q) = %v %v %q", c.in, isOptional, isArray, rest)
		}
	}
}

func TestSaladTypeMarshal(t *testing.T) {
	var optional SaladType
	null := SaladType{}
	null.SetNull()
	str := SaladType{}
	str.SetTypename("string")
	optional.SetMulti([]SaladType{null, str})

	raw, err := optional.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `["null","string"]` {
		t.Errorf("got %s", raw)
	}
	if !optional.IsNullable() {
		t.Error("expected nullable")
	}

	var array SaladType
	inner := SaladType{}
	inner.SetTypename("File")
	array.SetArray(&ArraySchema{ItemsType: inner})
	raw, err = array.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"type":"array","items":"File"}` {
		t.Errorf("got %s", raw)
	}
	if array.TypeName() != "array" {
		t.Errorf("got %s", array.TypeName())
	}
}

func TestSaladTypeNamed(t *testing.T) {
	var named SaladType
	named.SetTypename("my_custom_record")
	if named.IsPrimitive() {
		t.Error("named type must not be primitive")
	}
	if named.TypeName() != "my_custom_record" {
		t.Errorf("got %s", named.TypeName())
	}
}

func TestSecondaryFilesDSL(t *testing.T) {
	p := secondaryFilesDSLResolution(".bai?")
	if p.Pattern != ".bai" || p.Required != false {
		t.Errorf("got %+v", p)
	}
	p = secondaryFilesDSLResolution(".bai")
	if p.Pattern != ".bai" || p.Required != nil {
		t.Errorf("got %+v", p)
	}
}

func TestJsonldPredicateMapSubject(t *testing.T) {
	raw := []byte(`{"b": {"type": "string"}, "a": "x"}`)
	list, err := JsonldPredicateMapSubject(raw, "id", "type")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d entries", len(list))
	}
	// keys come out sorted
	if string(list[0]) != `{"id":"a","type":"x"}` {
		t.Errorf("got %s", list[0])
	}
}
