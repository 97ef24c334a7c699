package cwl

import (
	"encoding/json"
	"fmt"
)

type Classable interface {
	ClassName() string
}

type ClassBase struct {
	Class string `json:"class"`
}

func (c ClassBase) ClassName() string {
	return c.Class
}

// Expression is a CWL parameter reference or javascript expression.
// It is kept as source text; this library never evaluates it.
type Expression string

type ArrayString []string

func (s *ArrayString) UnmarshalJSON(data []byte) error {
	ss := make([]string, 0)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '[' {
		if err := json.Unmarshal(data, &ss); err != nil {
			return err
		}
		*s = append(*s, ss...)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = append(*s, str)
	return nil
}

type ArrayExpression []Expression

func (s *ArrayExpression) UnmarshalJSON(data []byte) error {
	ss := make([]Expression, 0)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '[' {
		if err := json.Unmarshal(data, &ss); err != nil {
			return err
		}
		*s = append(*s, ss...)
		return nil
	}
	var str Expression
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = append(*s, str)
	return nil
}

// StringArrayable converts "xxx" to ["xxx"] if it's not slice.
func StringArrayable(i interface{}) []string {
	dest := []string{}
	switch x := i.(type) {
	case []interface{}:
		for _, s := range x {
			dest = append(dest, s.(string))
		}
	case string:
		dest = append(dest, x)
	}
	return dest
}

// IntExpression is int | Expression.
type IntExpression struct {
	Expression
	Int *int64
}

func (e IntExpression) Value() (int64, bool) {
	if e.Int != nil {
		return *e.Int, true
	}
	return 0, false
}

func (e IntExpression) MustInt() int {
	if e.Int != nil {
		return int(*e.Int)
	}
	return 0
}

func (e *IntExpression) UnmarshalJSON(data []byte) error {
	var bean interface{}
	err := json.Unmarshal(data, &bean)
	if err != nil {
		return err
	}
	switch v := bean.(type) {
	case nil:
		return nil
	case string:
		e.Expression = Expression(v)
		return nil
	case float64:
		var num int64
		err := json.Unmarshal(data, &num)
		if err != nil {
			return err
		}
		e.Int = &num
		return nil
	}
	return fmt.Errorf("only int/Expression is available")
}

func (e IntExpression) MarshalJSON() ([]byte, error) {
	if e.Int != nil {
		return json.Marshal(*e.Int)
	}
	if e.Expression != "" {
		return json.Marshal(e.Expression)
	}
	return []byte("null"), nil
}

// LongFloatExpression is long | float | Expression.
type LongFloatExpression struct {
	Expression
	Long  *int64
	Float *float64
}

func (e *LongFloatExpression) UnmarshalJSON(data []byte) error {
	var bean interface{}
	err := json.Unmarshal(data, &bean)
	if err != nil {
		return err
	}
	switch v := bean.(type) {
	case nil:
		return nil
	case string:
		e.Expression = Expression(v)
		return nil
	case float64:
		var num int64
		err := json.Unmarshal(data, &num)
		if err == nil && fmt.Sprint(num) == string(data) {
			e.Long = &num
			return nil
		}
		e.Float = &v
		return nil
	}
	return fmt.Errorf("only long/float/Expression is available")
}

func (e LongFloatExpression) MarshalJSON() ([]byte, error) {
	if e.Long != nil {
		return json.Marshal(*e.Long)
	}
	if e.Float != nil {
		return json.Marshal(*e.Float)
	}
	if e.Expression != "" {
		return json.Marshal(e.Expression)
	}
	return []byte("null"), nil
}

// BoolExpression is boolean | Expression.
type BoolExpression struct {
	Expression
	Bool *bool
}

func (e *BoolExpression) UnmarshalJSON(data []byte) error {
	var bean interface{}
	err := json.Unmarshal(data, &bean)
	if err != nil {
		return err
	}
	switch v := bean.(type) {
	case nil:
		return nil
	case string:
		e.Expression = Expression(v)
		return nil
	case bool:
		e.Bool = &v
		return nil
	}
	return fmt.Errorf("only boolean/Expression is available")
}

func (e BoolExpression) MarshalJSON() ([]byte, error) {
	if e.Bool != nil {
		return json.Marshal(*e.Bool)
	}
	if e.Expression != "" {
		return json.Marshal(e.Expression)
	}
	return []byte("null"), nil
}
