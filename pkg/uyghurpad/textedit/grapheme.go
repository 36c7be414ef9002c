package textedit

import (
	"strings"

	"github.com/rivo/uniseg"
)

// split returns the grapheme clusters of text in logical order.
func split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// ClusterCount returns the number of grapheme clusters in text.
func ClusterCount(text string) int {
	return uniseg.GraphemeClusterCount(text)
}
