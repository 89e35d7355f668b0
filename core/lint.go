package core

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/shmd/shmd/core/fence"
	"github.com/shmd/shmd/core/mdfilter"
)

// Severity classifies a lint diagnostic.
type Severity string

const (
	// SeverityError marks a fence that would abort extraction.
	SeverityError Severity = "error"
	// SeverityWarning marks a fence that extracts but almost certainly
	// not the way its author intended.
	SeverityWarning Severity = "warning"
)

// Diagnostic is one lint finding, located by the 1-based line of the
// fence info-string it concerns.
type Diagnostic struct {
	Line     int
	Severity Severity
	Message  string
}

// LintDocument checks every shell fence of source and reports malformed
// descriptors and suspicious context tags. Unlike extraction, lint does
// not stop at the first bad fence. Non-shell fences are never reported;
// skipping them is this tool's normal behavior, not a defect.
func LintDocument(source []byte) ([]Diagnostic, error) {
	var diagnostics []Diagnostic

	err := walkFences(source, func(fenced *ast.FencedCodeBlock) error {
		if fenced.Info == nil {
			return nil
		}
		info := mdfilter.FenceInfo(source, fenced)
		line := lineOf(source, fenced.Info.Segment.Start)

		desc, err := fence.ParseInfo(info)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{
				Line:     line,
				Severity: SeverityError,
				Message:  err.Error(),
			})
			return nil
		}

		for _, tag := range desc.Contexts {
			if strings.ContainsAny(tag, " \t") {
				diagnostics = append(diagnostics, Diagnostic{
					Line:     line,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("fence %q: context tag %q contains whitespace; tags are matched byte-for-byte", info, tag),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return diagnostics, nil
}

// lineOf returns the 1-based line number of the byte at offset.
func lineOf(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return 1 + bytes.Count(source[:offset], []byte{'\n'})
}
