// Package parser loads CWL documents of any supported schema revision,
// dispatching on the declared cwlVersion. Packed documents ($graph) can
// be loaded one object at a time or all at once.
package parser

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/parser/v1_0"
	"github.com/lijiang2014/cwlparser.go/parser/v1_1"
	"github.com/lijiang2014/cwlparser.go/parser/v1_2"
	"go.uber.org/zap"
)

// LatestVersion is the newest schema revision this module understands.
const LatestVersion = v1_2.Version

// Versions lists the supported cwlVersion values, oldest first.
var Versions = []string{v1_0.Version, v1_1.Version, v1_2.Version}

// LoadingOptions carries the knobs of a load: where the document came
// from, how references are fetched, and whether a packed document is
// loaded whole.
type LoadingOptions struct {
	// FileURI is the URI the document was read from, fragment included.
	FileURI string
	// Importer fetches $import/$include targets and step run references.
	// Defaults to the local filesystem relative to FileURI.
	Importer cwl.Importer
	Logger   *zap.Logger
	// LoadAll makes $graph documents load every member instead of one.
	LoadAll bool
}

func ensureOptions(opts *LoadingOptions) *LoadingOptions {
	if opts == nil {
		opts = &LoadingOptions{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func (o *LoadingOptions) importer() cwl.Importer {
	if o.Importer != nil {
		return o.Importer
	}
	return &cwl.DefaultImporter{BaseDir: filepath.Dir(uriToPath(o.FileURI))}
}

// GraphTargetMissingError reports a fragment that names none of the
// objects in a packed document.
type GraphTargetMissingError struct {
	Target string
	IDs    []string
}

func (e *GraphTargetMissingError) Error() string {
	return fmt.Sprintf("tool file contains graph of multiple objects, must specify one of #%s",
		strings.Join(e.IDs, ", #"))
}

// ErrVersionMissing is returned for documents without a cwlVersion.
var ErrVersionMissing = fmt.Errorf("no cwlVersion declared in the document")

// CWLVersion reads the cwlVersion of a YAML-decoded document. The
// document must be a mapping; the version may be absent.
func CWLVersion(doc interface{}) (string, error) {
	dict, ok := doc.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("expected CWL document to be a mapping, got %T", doc)
	}
	version, _ := dict["cwlVersion"].(string)
	return version, nil
}

// IsProcess reports whether a loaded value is a single typed process.
func IsProcess(v interface{}) bool {
	_, ok := v.(cwl.Process)
	return ok
}

// LoadDocumentByURI reads a path or file:// URI, with an optional
// #fragment naming one object of a packed document, and loads it.
func LoadDocumentByURI(uri string, opts *LoadingOptions) (interface{}, error) {
	opts = ensureOptions(opts)
	base, frag := cwl.SplitFragment(uri)
	path := uriToPath(base)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fileURI := "file://" + abs
	if frag != "" {
		fileURI = fileURI + "#" + frag
	}
	opts.FileURI = fileURI
	opts.Logger.Debug("loading document", zap.String("uri", fileURI))
	importer := opts.Importer
	if importer == nil {
		importer = &cwl.DefaultImporter{}
	}
	data, err := importer.Load(abs)
	if err != nil {
		return nil, err
	}
	return LoadDocumentByString(string(data), fileURI, opts)
}

// LoadDocument loads a document already held in memory: either its
// text, or its YAML-decoded form.
func LoadDocument(doc interface{}, baseURI string, opts *LoadingOptions) (interface{}, error) {
	opts = ensureOptions(opts)
	if opts.FileURI == "" {
		opts.FileURI = baseURI
	}
	switch v := doc.(type) {
	case string:
		return LoadDocumentByString(v, baseURI, opts)
	case []byte:
		return LoadDocumentByString(string(v), baseURI, opts)
	default:
		return LoadDocumentByYAML(doc, baseURI, opts)
	}
}

// LoadDocumentByString parses document text (YAML or JSON) and loads it.
func LoadDocumentByString(doc string, uri string, opts *LoadingOptions) (interface{}, error) {
	opts = ensureOptions(opts)
	if opts.FileURI == "" {
		opts.FileURI = uri
	}
	raw, err := cwl.Y2J([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", uri, err)
	}
	raw, err = cwl.EnsureImportedDoc(raw, opts.importer())
	if err != nil {
		return nil, err
	}
	var bean interface{}
	if err := json.Unmarshal(raw, &bean); err != nil {
		return nil, err
	}
	return LoadDocumentByYAML(bean, uri, opts)
}

// LoadDocumentByYAML loads a YAML-decoded document. The result is a
// cwl.Process, or a []cwl.Process when LoadAll hits a packed document.
func LoadDocumentByYAML(doc interface{}, uri string, opts *LoadingOptions) (interface{}, error) {
	opts = ensureOptions(opts)
	version, err := CWLVersion(doc)
	if err != nil {
		return nil, err
	}
	dict := doc.(map[string]interface{})
	if graph, packed := dict["$graph"]; packed {
		return loadGraph(graph, version, uri, opts)
	}
	return loadOne(dict, version, uri)
}

func loadOne(dict map[string]interface{}, version, uri string) (interface{}, error) {
	switch version {
	case v1_0.Version:
		return v1_0.LoadDocumentByYAML(dict, uri)
	case v1_1.Version:
		return v1_1.LoadDocumentByYAML(dict, uri)
	case v1_2.Version:
		return v1_2.LoadDocumentByYAML(dict, uri)
	case "":
		return nil, ErrVersionMissing
	}
	return nil, fmt.Errorf("cwlVersion %q is not supported (supported: %s)",
		version, strings.Join(Versions, ", "))
}

// loadGraph handles a packed document: every member under LoadAll,
// otherwise the one the URI fragment names (default "main").
func loadGraph(graph interface{}, version, uri string, opts *LoadingOptions) (interface{}, error) {
	members, ok := graph.([]interface{})
	if !ok {
		return nil, fmt.Errorf("$graph must be a list, got %T", graph)
	}
	if opts.LoadAll {
		out := make([]cwl.Process, 0, len(members))
		for _, member := range members {
			dict, ok := member.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("$graph member is not a mapping, got %T", member)
			}
			p, err := loadGraphMember(dict, version, uri)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	}
	_, frag := cwl.SplitFragment(uri)
	if frag == "" {
		frag = "main"
	}
	ids := make([]string, 0, len(members))
	for _, member := range members {
		dict, ok := member.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := dict["id"].(string)
		id = strings.TrimPrefix(id, "#")
		ids = append(ids, id)
		if id == frag {
			return loadGraphMember(dict, version, uri)
		}
	}
	return nil, &GraphTargetMissingError{Target: frag, IDs: ids}
}

func loadGraphMember(dict map[string]interface{}, version, uri string) (cwl.Process, error) {
	// the container's cwlVersion wins, even over a member's own
	if version != "" {
		dict["cwlVersion"] = version
	}
	memberVersion, _ := dict["cwlVersion"].(string)
	p, err := loadOne(dict, memberVersion, uri)
	if err != nil {
		return nil, err
	}
	return p.(cwl.Process), nil
}

func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
