// Package extract walks a CWL document and collects the software
// packages its SoftwareRequirement entries cite. Workflows are walked
// recursively, including steps whose run is a reference to another
// file.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/parser"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Package is one software citation pulled out of a document.
type Package struct {
	Name    string
	Version []string
	Specs   []string
}

func (p Package) String() string {
	return fmt.Sprintf("Package: %s, version: %v, specs: %v", p.Name, p.Version, p.Specs)
}

// Report receives every package found, along with the id of the
// process or step that declared it.
type Report func(processID string, pkg Package)

type Extractor struct {
	Options *parser.LoadingOptions
	Report  Report
	Logger  *zap.Logger
}

func New(report Report, opts *parser.LoadingOptions) *Extractor {
	if opts == nil {
		opts = &parser.LoadingOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{Options: opts, Report: report, Logger: logger}
}

// Traverse walks one loaded document, or every member of a packed one.
func (e *Extractor) Traverse(doc interface{}) error {
	switch v := doc.(type) {
	case cwl.Process:
		return e.traverseProcess(v)
	case []cwl.Process:
		for _, p := range v {
			if err := e.traverseProcess(p); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("cannot traverse %T", doc)
}

func (e *Extractor) traverseProcess(p cwl.Process) error {
	base := p.Base()
	if err := e.extractPackages(base.ID, base.Requirements, base.Hints); err != nil {
		return err
	}
	wf, ok := p.(*cwl.Workflow)
	if !ok {
		return nil
	}
	for i := range wf.Steps {
		step := &wf.Steps[i]
		if err := e.extractPackages(step.ID, step.Requirements, step.Hints); err != nil {
			return err
		}
		sub, err := e.processFromStep(step)
		if err != nil {
			return err
		}
		if sub == nil {
			continue
		}
		if err := e.traverseProcess(sub); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) extractPackages(id string, reqs, hints cwl.Requirements) error {
	srs, err := SoftwareRequirements(reqs, hints)
	if err != nil {
		return err
	}
	for _, sr := range srs {
		for _, pkg := range sr.Packages {
			e.Report(id, Package{Name: pkg.Package, Version: pkg.Version, Specs: pkg.Specs})
		}
	}
	return nil
}

// SoftwareRequirements collects SoftwareRequirement entries from a
// requirements list and a hints list. Requirements arrive typed; a
// hint with the right class may have been kept as raw fields and is
// re-read into the typed form.
func SoftwareRequirements(reqs, hints cwl.Requirements) ([]*cwl.SoftwareRequirement, error) {
	out := []*cwl.SoftwareRequirement{}
	for _, req := range reqs {
		if sr, ok := req.(*cwl.SoftwareRequirement); ok {
			out = append(out, sr)
		}
	}
	for _, hint := range hints {
		switch h := hint.(type) {
		case *cwl.SoftwareRequirement:
			out = append(out, h)
		case *cwl.UnknownRequirement:
			if h.Class != "SoftwareRequirement" {
				continue
			}
			sr, err := softwareFromHint(h)
			if err != nil {
				return nil, err
			}
			out = append(out, sr)
		}
	}
	return out, nil
}

// softwareFromHint re-reads an open hint as a SoftwareRequirement.
// Hand-written documents are sloppy about scalar kinds, so version and
// spec entries are coerced to string lists first.
func softwareFromHint(u *cwl.UnknownRequirement) (*cwl.SoftwareRequirement, error) {
	coerced := &cwl.UnknownRequirement{Class: u.Class, Fields: coercePackages(u.Fields)}
	return coerced.AsSoftwareRequirement()
}

func coercePackages(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	switch pkgs := out["packages"].(type) {
	case []interface{}:
		for _, member := range pkgs {
			if dict, ok := member.(map[string]interface{}); ok {
				coercePackageFields(dict)
			}
		}
	case map[string]interface{}:
		for name, member := range pkgs {
			if dict, ok := member.(map[string]interface{}); ok {
				coercePackageFields(dict)
				continue
			}
			// map form with a bare predicate value: name -> specs
			pkgs[name] = cast.ToStringSlice(member)
		}
	}
	return out
}

func coercePackageFields(dict map[string]interface{}) {
	if v, got := dict["version"]; got {
		dict["version"] = cast.ToStringSlice(v)
	}
	if v, got := dict["specs"]; got {
		dict["specs"] = cast.ToStringSlice(v)
	}
}

// processFromStep resolves the process a step runs. A string run is a
// document reference, loaded relative to the current document; an
// in-document fragment reference is skipped.
func (e *Extractor) processFromStep(step *cwl.WorkflowStep) (cwl.Process, error) {
	if step.Run.Process != nil {
		return step.Run.Process, nil
	}
	ref := step.Run.ID
	if ref == "" {
		return nil, nil
	}
	if strings.HasPrefix(ref, "#") {
		e.Logger.Debug("skipping in-document run reference",
			zap.String("step", step.ID), zap.String("run", ref))
		return nil, nil
	}
	base := ""
	if e.Options != nil {
		uri, _ := cwl.SplitFragment(e.Options.FileURI)
		base = filepath.Dir(strings.TrimPrefix(uri, "file://"))
	}
	opts := &parser.LoadingOptions{Logger: e.Logger}
	doc, err := parser.LoadDocumentByURI(filepath.Join(base, ref), opts)
	if err != nil {
		return nil, fmt.Errorf("step %s: load run %s: %w", step.ID, ref, err)
	}
	p, ok := doc.(cwl.Process)
	if !ok {
		return nil, fmt.Errorf("step %s: run %s is not a single process", step.ID, ref)
	}
	return p, nil
}

