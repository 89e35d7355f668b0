package core

import (
	"sort"

	"github.com/yuin/goldmark/ast"

	"github.com/shmd/shmd/core/fence"
	"github.com/shmd/shmd/core/mdfilter"
)

// DocumentReport summarizes the extraction surface of a document: how
// many fenced blocks it has, how many are shell blocks, and which
// context tags and OS filters its fences reference. It tells a caller
// what context arguments and distributions the document distinguishes.
type DocumentReport struct {
	FencedBlocks int `json:"fenced_blocks"`
	ShellBlocks  int `json:"shell_blocks"`

	// ContextTags are the distinct tags across all ctx-lists, sorted.
	ContextTags []string `json:"context_tags,omitempty"`

	// OSFilters are the distinct KEY=VALUE filters across all os-lists,
	// sorted.
	OSFilters []string `json:"os_filters,omitempty"`
}

// Update folds one fence descriptor into the report.
func (r *DocumentReport) Update(desc fence.Descriptor) {
	r.FencedBlocks++
	if desc.Lang != fence.ShellLang {
		return
	}
	r.ShellBlocks++

	for _, tag := range desc.Contexts {
		r.ContextTags = appendUnique(r.ContextTags, tag)
	}
	for _, filter := range desc.Filters {
		r.OSFilters = appendUnique(r.OSFilters, filter.Key+"="+filter.Value)
	}
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

// ScanDocument walks every fenced code block of source and builds a
// DocumentReport. A malformed shell fence is an error, exactly as it
// would be during extraction.
func ScanDocument(source []byte) (*DocumentReport, error) {
	report := &DocumentReport{}

	err := walkFences(source, func(fenced *ast.FencedCodeBlock) error {
		desc, err := fence.ParseInfo(mdfilter.FenceInfo(source, fenced))
		if err != nil {
			return err
		}
		report.Update(desc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(report.ContextTags)
	sort.Strings(report.OSFilters)
	return report, nil
}

// walkFences calls visit for each fenced code block of source in
// document order.
func walkFences(source []byte, visit func(*ast.FencedCodeBlock) error) error {
	return ast.Walk(mdfilter.ParseDocument(source), func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if err := visit(fenced); err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkSkipChildren, nil
	})
}
