// Package core wires the os-release loader, the fence predicate, and
// the markdown filter into the extraction pipeline behind the CLI.
package core

import (
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/shmd/shmd/core/fence"
	"github.com/shmd/shmd/core/mdfilter"
	"github.com/shmd/shmd/core/osrelease"
)

// Options configures one extraction run.
type Options struct {
	// MarkdownPath is the document to extract commands from.
	MarkdownPath string `json:"markdown_path" validate:"required"`

	// OSReleasePath is the os-release style file identifying the host
	// distribution.
	OSReleasePath string `json:"os_release_path" validate:"required"`

	// Context holds the caller's context tags, empty for none.
	Context []string `json:"context"`

	// StripPrompts removes leading '$'/'#' prompt markers from the
	// extracted lines.
	StripPrompts bool `json:"strip_prompts"`
}

// Validate the options for basic semantic errors.
func (o *Options) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(o)
}

// Extractor runs extractions against a filesystem, writing selected
// block text to a single output stream.
type Extractor struct {
	fs  afero.Fs
	out io.Writer
}

// NewExtractor creates an Extractor reading from fs and writing to out.
func NewExtractor(fs afero.Fs, out io.Writer) *Extractor {
	return &Extractor{fs: fs, out: out}
}

// Run extracts the selected shell blocks of the configured document and
// writes them, in document order, to the output stream. Errors are
// fatal; output already written is not rewound.
func (e *Extractor) Run(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	source, err := afero.ReadFile(e.fs, opts.MarkdownPath)
	if err != nil {
		return err
	}

	osMap, err := osrelease.Load(e.fs, opts.OSReleasePath)
	if err != nil {
		return err
	}

	contextSet := fence.NewContextSet(opts.Context...)
	selector := func(info string) (bool, error) {
		return fence.Match(info, contextSet, osMap)
	}

	sink := mdfilter.NewWriterSink(e.out)
	if opts.StripPrompts {
		sink = mdfilter.StripPrompts(sink)
	}

	return mdfilter.Extract(source, selector, sink)
}
