package parser

import (
	"strings"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/spf13/cast"
)

// Save converts loaded objects back into plain JSON/YAML-serializable
// data. A top-level list of processes is packed back into a $graph
// document whose cwlVersion is the newest among the members.
func Save(val interface{}, top bool) (interface{}, error) {
	switch v := val.(type) {
	case nil:
		return nil, nil
	case []cwl.Process:
		saved := make([]interface{}, len(v))
		latest := ""
		for i, p := range v {
			data, err := cwl.Save(p)
			if err != nil {
				return nil, err
			}
			saved[i] = data
			if version := p.Base().CWLVersion; versionLess(latest, version) {
				latest = version
			}
		}
		if top {
			return map[string]interface{}{
				"cwlVersion": latest,
				"$graph":     saved,
			}, nil
		}
		return saved, nil
	case cwl.Process:
		return cwl.Save(v)
	}
	return cwl.Save(val)
}

// versionSplit turns "v1.2" into [1 2] for numeric comparison.
func versionSplit(version string) []int {
	parts := strings.Split(strings.TrimPrefix(version, "v"), ".")
	nums := make([]int, len(parts))
	for i, part := range parts {
		nums[i] = cast.ToInt(part)
	}
	return nums
}

func versionLess(a, b string) bool {
	if a == "" {
		return b != ""
	}
	if b == "" {
		return false
	}
	as, bs := versionSplit(a), versionSplit(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}
