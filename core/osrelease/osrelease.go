// Package osrelease reads os-release style KEY=VALUE files.
package osrelease

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Map holds the key/value pairs of an os-release file. Values are kept
// verbatim, including any quote characters present in the file.
type Map map[string]string

// Parse reads KEY=VALUE lines into a Map. Only the first '=' of a line
// splits it, so values may contain '='. A line without '=' is an error.
// Duplicate keys keep the last value seen.
func Parse(r io.Reader) (Map, error) {
	out := Map{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("os-release: line %q is missing '='", line)
		}
		out[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("os-release: %w", err)
	}
	return out, nil
}

// Load opens path on the given filesystem and parses it.
func Load(fs afero.Fs, path string) (Map, error) {
	fd, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	out, err := Parse(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
