// Package fence decides whether a fenced code block should be extracted
// based on its info-string, the caller's context tags, and the host's
// os-release identity.
//
// The info-string grammar is:
//
//	<lang>[:<ctx-list>][;<os-list>]
//
// where <ctx-list> is a comma-separated list of context tags and
// <os-list> is a whitespace-separated list of KEY=VALUE filters. A block
// is selected when its language is exactly "sh", at least one listed
// context tag is in the caller's set (or the list is empty), and at
// least one KEY=VALUE filter matches the os-release map (or the list is
// empty). All comparisons are byte-exact; nothing is trimmed.
package fence

import (
	"fmt"
	"strings"

	"github.com/shmd/shmd/core/osrelease"
)

// ShellLang is the only language tag eligible for extraction.
const ShellLang = "sh"

// ContextSet holds the caller-supplied context tags.
type ContextSet map[string]struct{}

// NewContextSet builds a ContextSet from individual tags.
func NewContextSet(tags ...string) ContextSet {
	set := make(ContextSet, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

// Has reports whether tag is in the set.
func (s ContextSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Filter is one KEY=VALUE constraint from an os-list.
type Filter struct {
	Key   string
	Value string
}

// Descriptor is the parsed form of a fence info-string.
type Descriptor struct {
	// Lang is the language tag before the first ':'.
	Lang string
	// Contexts are the comma-separated tags of the ctx-list, nil when
	// the list is absent or empty.
	Contexts []string
	// Filters are the KEY=VALUE pairs of the os-list, nil when the list
	// is absent or empty.
	Filters []Filter
}

// ParseInfo parses a fence info-string into a Descriptor. The string is
// split at the first ':' into language and parameters, and the
// parameters at the first ';' into ctx-list and os-list. Without a ';'
// the whole parameter string is the os-list. An os-list token lacking
// '=' is an error: fence authors control this string, so a malformed
// token is a bug in the document.
//
// Blocks in languages other than ShellLang are never extracted, so
// their parameters are not interpreted: the descriptor carries only the
// language and no error is possible.
func ParseInfo(info string) (Descriptor, error) {
	desc := Descriptor{}

	lang, params, hasParams := strings.Cut(info, ":")
	desc.Lang = lang
	if !hasParams || lang != ShellLang {
		return desc, nil
	}

	ctxList, osList, hasSplit := strings.Cut(params, ";")
	if !hasSplit {
		ctxList, osList = "", params
	}

	if ctxList != "" {
		desc.Contexts = strings.Split(ctxList, ",")
	}

	for _, token := range strings.Fields(osList) {
		key, value, found := strings.Cut(token, "=")
		if !found {
			return Descriptor{}, fmt.Errorf("fence %q: os filter %q is missing '='", info, token)
		}
		desc.Filters = append(desc.Filters, Filter{Key: key, Value: value})
	}

	return desc, nil
}

// Match reports whether the block described by this descriptor should
// be extracted under the given context set and os-release map.
func (d Descriptor) Match(ctx ContextSet, os osrelease.Map) bool {
	if d.Lang != ShellLang {
		return false
	}

	if len(d.Contexts) > 0 {
		matched := false
		for _, tag := range d.Contexts {
			if ctx.Has(tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(d.Filters) > 0 {
		matched := false
		for _, filter := range d.Filters {
			if os[filter.Key] == filter.Value {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Match parses info and evaluates it in one step.
func Match(info string, ctx ContextSet, os osrelease.Map) (bool, error) {
	desc, err := ParseInfo(info)
	if err != nil {
		return false, err
	}
	return desc.Match(ctx, os), nil
}
