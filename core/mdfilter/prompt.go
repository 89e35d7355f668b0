package mdfilter

import (
	"regexp"
	"strings"
)

var shellPrompt = regexp.MustCompile(`^\s*[$#]\s*`)

// StripPrompts adapts a Sink to remove leading shell prompt markers
// ('$' or '#') from each line, so documentation written as transcripts
// still pipes cleanly into a shell. Lines that contain nothing but a
// prompt are dropped. Every forwarded line is newline-terminated, which
// makes the output shell-safe even when the source block lacked a final
// newline.
func StripPrompts(next Sink) Sink {
	return func(text string) error {
		for _, line := range strings.Split(text, "\n") {
			cleaned := shellPrompt.ReplaceAllString(line, "")
			if cleaned == "" {
				continue
			}
			if err := next(cleaned + "\n"); err != nil {
				return err
			}
		}
		return nil
	}
}
