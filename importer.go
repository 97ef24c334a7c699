package cwl

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// SplitFragment cuts a URI at its fragment marker, returning the base
// URI and the bare fragment.
func SplitFragment(uri string) (string, string) {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i], uri[i+1:]
	}
	return uri, ""
}

// Importer resolves $include & $import references.
// https://www.commonwl.org/v1.0/CommandLineTool.html#Document_preprocessing
type Importer interface {
	Load(string) ([]byte, error)
}

type DefaultImporter struct {
	BaseDir string
}

func (i *DefaultImporter) redirectURI(uri string) string {
	if filepath.IsAbs(uri) {
		return uri
	}
	return filepath.Join(i.BaseDir, uri)
}

func (i *DefaultImporter) Load(uri string) ([]byte, error) {
	uri = i.redirectURI(uri)
	fs, err := os.Open(uri)
	if err != nil {
		return nil, err
	}
	defer fs.Close()
	return ioutil.ReadAll(fs)
}

// EnsureImportedDoc expands every $include and $import directive in a
// JSON document before it is decoded into typed beans.
func EnsureImportedDoc(data []byte, importer Importer) ([]byte, error) {
	var bean interface{}
	if err := json.Unmarshal(data, &bean); err != nil {
		return nil, err
	}
	bean, err := importBeans(bean, importer)
	if err != nil {
		return nil, err
	}
	return json.Marshal(bean)
}

func importBeans(bean interface{}, importer Importer) (out interface{}, err error) {
	switch t := bean.(type) {
	case map[string]interface{}:
		ret, err := tryInclude(t, importer)
		if err != nil {
			return nil, err
		}
		if ret != "" {
			return ret, nil
		}
		for key, value := range t {
			out, err = importBean(value, importer)
			if err != nil {
				return nil, err
			}
			t[key] = out
		}
		return t, nil
	case []interface{}:
		for i, value := range t {
			out, err = importBean(value, importer)
			if err != nil {
				return nil, err
			}
			t[i] = out
		}
		return t, nil
	default:
		return bean, nil
	}
}

func importBean(value interface{}, importer Importer) (interface{}, error) {
	ret, err := tryInclude(value, importer)
	if err != nil {
		return nil, err
	}
	if ret != "" {
		return ret, nil
	}
	iret, err := tryImport(value, importer)
	if err != nil {
		return nil, err
	}
	if iret != nil {
		var ival interface{}
		if err = json.Unmarshal(iret, &ival); err != nil {
			return nil, err
		}
		return ival, nil
	}
	return importBeans(value, importer)
}

func tryInclude(bean interface{}, importer Importer) (string, error) {
	if dict, got := bean.(map[string]interface{}); got {
		if value, got := dict["$include"]; got {
			if len(dict) != 1 {
				return "", fmt.Errorf("bad include format")
			}
			valStr, ok := value.(string)
			if ok {
				data, err := importer.Load(valStr)
				if err != nil {
					return "", fmt.Errorf("import($include) %s Err : %s", valStr, err)
				}
				return string(data), nil
			}
		}
	}
	return "", nil
}

func tryImport(bean interface{}, importer Importer) (json.RawMessage, error) {
	if dict, got := bean.(map[string]interface{}); got {
		if value, got := dict["$import"]; got {
			if len(dict) != 1 {
				return nil, fmt.Errorf("bad import format")
			}
			valStr, ok := value.(string)
			if ok {
				data, err := importer.Load(valStr)
				if err != nil {
					return nil, fmt.Errorf("import($import) %s Err : %s", valStr, err)
				}
				// the target may itself be YAML
				return Y2J(data)
			}
		}
	}
	return nil, nil
}
