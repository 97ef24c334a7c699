package extract_test

import (
	"io/ioutil"
	"testing"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/lijiang2014/cwlparser.go/extract"
	"github.com/lijiang2014/cwlparser.go/parser"
	. "github.com/otiai10/mint"
)

type found struct {
	id  string
	pkg extract.Package
}

func TestTraverseWorkflow(t *testing.T) {
	opts := &parser.LoadingOptions{}
	doc, err := parser.LoadDocumentByURI("testdata/wf.cwl", opts)
	Expect(t, err).ToBe(nil)

	var got []found
	ex := extract.New(func(id string, pkg extract.Package) {
		got = append(got, found{id, pkg})
	}, opts)
	err = ex.Traverse(doc)
	Expect(t, err).ToBe(nil)

	// the echo step run reference is loaded from its own file, the
	// index step carries its tool inline
	Expect(t, len(got)).ToBe(2)
	Expect(t, got[0].id).ToBe("echo-tool")
	Expect(t, got[0].pkg.Name).ToBe("coreutils")
	Expect(t, got[0].pkg.Version[0]).ToBe("8.32")
	Expect(t, got[1].id).ToBe("index-tool")
	Expect(t, got[1].pkg.Name).ToBe("bwa")
	Expect(t, got[1].pkg.Specs[0]).ToBe("https://identifiers.org/rrid/RRID:SCR_010910")
}

func TestTraverseTool(t *testing.T) {
	opts := &parser.LoadingOptions{}
	doc, err := parser.LoadDocumentByURI("testdata/echo-tool.cwl", opts)
	Expect(t, err).ToBe(nil)

	var got []found
	ex := extract.New(func(id string, pkg extract.Package) {
		got = append(got, found{id, pkg})
	}, opts)
	err = ex.Traverse(doc)
	Expect(t, err).ToBe(nil)
	Expect(t, len(got)).ToBe(1)
	Expect(t, got[0].id).ToBe("echo-tool")
	Expect(t, got[0].pkg.Name).ToBe("coreutils")
}

func TestTraverseSloppyHint(t *testing.T) {
	// numeric version scalars and a bare specs string parse as plain
	// hint data and are coerced during extraction
	data, err := ioutil.ReadFile("testdata/scan-tool.cwl")
	Expect(t, err).ToBe(nil)
	opts := &parser.LoadingOptions{}
	doc, err := parser.LoadDocumentByString(string(data), "", opts)
	Expect(t, err).ToBe(nil)

	var got []found
	ex := extract.New(func(id string, pkg extract.Package) {
		got = append(got, found{id, pkg})
	}, opts)
	err = ex.Traverse(doc)
	Expect(t, err).ToBe(nil)
	Expect(t, len(got)).ToBe(1)
	Expect(t, got[0].id).ToBe("scan-tool")
	Expect(t, got[0].pkg.Name).ToBe("interproscan")
	Expect(t, got[0].pkg.Version[0]).ToBe("5.21")
	Expect(t, got[0].pkg.Specs[0]).ToBe("https://identifiers.org/rrid/RRID:SCR_005829")
}

func TestSoftwareRequirementsFromRawHint(t *testing.T) {
	// a hint kept as raw fields, with sloppy scalar kinds
	hint := &cwl.UnknownRequirement{
		Class: "SoftwareRequirement",
		Fields: map[string]interface{}{
			"packages": []interface{}{
				map[string]interface{}{
					"package": "interproscan",
					"version": []interface{}{5.21},
					"specs":   "https://identifiers.org/rrid/RRID:SCR_005829",
				},
			},
		},
	}
	srs, err := extract.SoftwareRequirements(nil, cwl.Requirements{hint})
	Expect(t, err).ToBe(nil)
	Expect(t, len(srs)).ToBe(1)
	Expect(t, srs[0].Packages[0].Package).ToBe("interproscan")
	Expect(t, srs[0].Packages[0].Version[0]).ToBe("5.21")
	Expect(t, srs[0].Packages[0].Specs[0]).ToBe("https://identifiers.org/rrid/RRID:SCR_005829")
}

func TestSoftwareRequirementsTyped(t *testing.T) {
	sr := &cwl.SoftwareRequirement{
		Packages: []cwl.SoftwarePackage{{Package: "samtools", Version: []string{"1.9"}}},
	}
	srs, err := extract.SoftwareRequirements(cwl.Requirements{sr}, nil)
	Expect(t, err).ToBe(nil)
	Expect(t, len(srs)).ToBe(1)
	Expect(t, srs[0].Packages[0].Package).ToBe("samtools")
}
