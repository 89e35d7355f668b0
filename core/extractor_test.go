package core

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

const debianOSRelease = `PRETTY_NAME="Debian GNU/Linux 11 (bullseye)"
NAME="Debian GNU/Linux"
VERSION_ID="11"
VERSION="11 (bullseye)"
VERSION_CODENAME=bullseye
ID=debian
HOME_URL="https://www.debian.org/"`

const fedoraOSRelease = `NAME="Fedora Linux"
VERSION="36 (Workstation Edition)"
ID=fedora
VERSION_ID=36`

const installDoc = `# Getting started

## Fedora

` + "```sh:ID=fedora" + `
echo fedora
` + "```" + `

## Debian

` + "```sh:ID=debian ID_LIKE=debian" + `
echo debian
` + "```" + `

## Source checkout

` + "```sh:git,sev;" + `
echo git or sev
` + "```" + `

## Binary install

` + "```sh:notgit; ID=debian" + `
echo notgit
` + "```" + `

## Either distribution

` + "```sh:git; ID=debian ID=fedora" + `
echo either distro
` + "```" + `

## Always

` + "```sh" + `
echo always
` + "```" + `
`

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	OSRelease string
	Context   []string
}

func (gts goldenTestSuite) Run(t *testing.T, doc string) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			assert.NoError(t, afero.WriteFile(fs, "/doc.md", []byte(doc), 0644))
			assert.NoError(t, afero.WriteFile(fs, "/os-release", []byte(tc.OSRelease), 0644))

			var out bytes.Buffer
			err := NewExtractor(fs, &out).Run(Options{
				MarkdownPath:  "/doc.md",
				OSReleasePath: "/os-release",
				Context:       tc.Context,
			})
			assert.NoError(t, err)

			g.Assert(t, tn, out.Bytes())
		})
	}
}

func TestExtractor(t *testing.T) {
	goldenTestSuite{
		"context-git":    {OSRelease: debianOSRelease, Context: []string{"git"}},
		"no-context":     {OSRelease: debianOSRelease},
		"context-sev":    {OSRelease: debianOSRelease, Context: []string{"sev"}},
		"context-notgit": {OSRelease: debianOSRelease, Context: []string{"notgit"}},
		"fedora":         {OSRelease: fedoraOSRelease},
	}.Run(t, installDoc)
}

func TestExtractor_stripPrompts(t *testing.T) {
	doc := "```sh\n$ make install\n# ldconfig\nmake test\n```\n"

	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/doc.md", []byte(doc), 0644))
	assert.NoError(t, afero.WriteFile(fs, "/os-release", []byte(debianOSRelease), 0644))

	var out bytes.Buffer
	err := NewExtractor(fs, &out).Run(Options{
		MarkdownPath:  "/doc.md",
		OSReleasePath: "/os-release",
		StripPrompts:  true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "make install\nldconfig\nmake test\n", out.String())
}

func TestExtractor_missingMarkdown(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/os-release", []byte(debianOSRelease), 0644))

	var out bytes.Buffer
	err := NewExtractor(fs, &out).Run(Options{
		MarkdownPath:  "/doc.md",
		OSReleasePath: "/os-release",
	})
	assert.Error(t, err)
	assert.Equal(t, "", out.String())
}

func TestExtractor_badOSRelease(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/doc.md", []byte(installDoc), 0644))
	assert.NoError(t, afero.WriteFile(fs, "/os-release", []byte("no equals sign here"), 0644))

	var out bytes.Buffer
	err := NewExtractor(fs, &out).Run(Options{
		MarkdownPath:  "/doc.md",
		OSReleasePath: "/os-release",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "/os-release")
	assert.Equal(t, "", out.String())
}

func TestExtractor_malformedFenceAborts(t *testing.T) {
	doc := "```sh\necho first\n```\n\n```sh:git; IDdebian\necho never\n```\n"

	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/doc.md", []byte(doc), 0644))
	assert.NoError(t, afero.WriteFile(fs, "/os-release", []byte(debianOSRelease), 0644))

	var out bytes.Buffer
	err := NewExtractor(fs, &out).Run(Options{
		MarkdownPath:  "/doc.md",
		OSReleasePath: "/os-release",
		Context:       []string{"git"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"IDdebian"`)

	// Output written before the malformed fence stands.
	assert.Equal(t, "echo first\n", out.String())
}

func TestOptions_Validate(t *testing.T) {
	valid := Options{MarkdownPath: "/doc.md", OSReleasePath: "/os-release"}
	assert.NoError(t, valid.Validate())

	missingMarkdown := Options{OSReleasePath: "/os-release"}
	err := missingMarkdown.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "markdown_path")

	missingOSRelease := Options{MarkdownPath: "/doc.md"}
	err = missingOSRelease.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "os_release_path")
}
