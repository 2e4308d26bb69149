package placeholder

import (
	"strings"

	"golang.org/x/image/font"
)

// wrap packs words greedily onto lines whose rendered width stays under
// limit. Words are never split; a single word wider than the limit gets its
// own line.
func wrap(text string, face font.Face, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		test := strings.TrimSpace(line + " " + word)
		if line == "" || font.MeasureString(face, test).Ceil() < limit {
			line = test
			continue
		}
		lines = append(lines, line)
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
