package utils

import (
	"strings"
)

// TruncateText kürzt Text auf maximale Länge (in Runes)
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	return string(runes[:maxLength-3]) + "..."
}

// FormatLabels formatiert Labels als Markdown-Tags
func FormatLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}

	var formatted []string
	for _, label := range labels {
		formatted = append(formatted, "`"+label+"`")
	}

	return strings.Join(formatted, " ")
}
