package cwl

import (
	"encoding/json"
)

// Value is any CWL data payload: a scalar, a list, a map, or a typed
// File/Directory entry.
type Value interface{}

// ConvertToValue rebuilds a decoded JSON tree as a Value, lifting
// `class: File` and `class: Directory` maps into their typed forms.
func ConvertToValue(bean interface{}) (out Value, err error) {
	switch t := bean.(type) {
	case []interface{}:
		arr := make([]Value, len(t))
		for i, item := range t {
			v, err := ConvertToValue(item)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case map[string]interface{}:
		switch t["class"] {
		case "File":
			var entry File
			raw, err := json.Marshal(bean)
			if err != nil {
				return nil, err
			}
			if err = json.Unmarshal(raw, &entry); err != nil {
				return nil, err
			}
			return entry, nil
		case "Directory":
			var entry Directory
			raw, err := json.Marshal(bean)
			if err != nil {
				return nil, err
			}
			if err = json.Unmarshal(raw, &entry); err != nil {
				return nil, err
			}
			return entry, nil
		}
		values := make(map[string]Value)
		for key, value := range t {
			newValue, err := ConvertToValue(value)
			if err != nil {
				return nil, err
			}
			values[key] = newValue
		}
		return values, nil
	default:
		return bean, nil
	}
}
