// Package speech prepares model output for the robot's text-to-speech engine.
package speech

import "strings"

var markdownReplacer = strings.NewReplacer(
	"*", "",
	"#", "",
	"`", "",
)

// Clean strips markdown markers the TTS engine would read out loud and turns
// line breaks into sentence pauses. Applying it twice yields the same result.
func Clean(text string) string {
	clean := markdownReplacer.Replace(text)
	clean = strings.ReplaceAll(clean, "\n\n", ". ")
	clean = strings.ReplaceAll(clean, "\n", ". ")
	return strings.TrimSpace(clean)
}
