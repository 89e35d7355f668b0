// Package mdfilter streams the text of selected fenced code blocks out
// of a Markdown document.
package mdfilter

import (
	"io"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownInstance is initialized once and reused. The configuration
// never changes and the goldmark parser is safe to share; each Parse
// call creates its own state.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New()
	})
	return markdownInstance
}

// ParseDocument parses a Markdown document into its AST.
func ParseDocument(source []byte) ast.Node {
	return getMarkdown().Parser().Parse(text.NewReader(source))
}

// Selector decides whether the fenced block with the given info-string
// should be extracted. The info-string is empty for bare fences.
type Selector func(info string) (bool, error)

// Sink receives extracted text in document order. Text is delivered
// exactly as it appears in the source, one raw line (with its trailing
// newline) per call.
type Sink func(text string) error

// NewWriterSink returns a Sink that writes to w with no added
// separators.
func NewWriterSink(w io.Writer) Sink {
	return func(text string) error {
		_, err := io.WriteString(w, text)
		return err
	}
}

// filter walks a document and forwards the contents of selected fenced
// blocks. The dumping bit is set on entering a selected fence and
// cleared on leaving it; only text inside a selected fence reaches the
// sink. Each Extract call owns a fresh filter.
type filter struct {
	source   []byte
	selector Selector
	sink     Sink
	dumping  bool
}

// Extract parses source and emits the raw text of every fenced code
// block accepted by selector, in document order. Indented code blocks
// and all non-fence content are ignored. A selector or sink error stops
// the walk immediately; whatever was already emitted stands.
func Extract(source []byte, selector Selector, sink Sink) error {
	f := &filter{source: source, selector: selector, sink: sink}
	return ast.Walk(ParseDocument(source), f.walk)
}

func (f *filter) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	fenced, ok := node.(*ast.FencedCodeBlock)
	if !ok {
		return ast.WalkContinue, nil
	}

	if !entering {
		f.dumping = false
		return ast.WalkContinue, nil
	}

	selected, err := f.selector(FenceInfo(f.source, fenced))
	if err != nil {
		return ast.WalkStop, err
	}
	f.dumping = selected
	if !f.dumping {
		return ast.WalkSkipChildren, nil
	}

	lines := fenced.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		if err := f.sink(string(segment.Value(f.source))); err != nil {
			return ast.WalkStop, err
		}
	}
	return ast.WalkContinue, nil
}

// FenceInfo returns the full info-string of a fenced code block, or ""
// when the fence has none. goldmark's Language() stops at the first
// space, which would drop the os-list, so the whole segment is read.
func FenceInfo(source []byte, fenced *ast.FencedCodeBlock) string {
	if fenced.Info == nil {
		return ""
	}
	return string(fenced.Info.Segment.Value(source))
}
