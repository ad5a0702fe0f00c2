package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{"atx", "# Flexbox\n\nText\n", "Flexbox", true},
		{"setext", "Grid Layout\n===========\n", "Grid Layout", true},
		{"emphasis and code", "# The *`useState`* hook\n", "The useState hook", true},
		{"link text only", "# [React Navigation](https://reactnavigation.org)\n", "React Navigation", true},
		{"skips h2 before h1", "## Intro\n\n# Real Title\n", "Real Title", true},
		{"heading inside code block ignored", "```\n# not a heading\n```\n", "", false},
		{"none", "just text\n", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Title([]byte(tt.body))
			require.Equal(t, tt.found, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHeadings(t *testing.T) {
	body := []byte("# Debugging\n\n## Chrome\n\n### Breakpoints\n\n## Flipper\n")
	require.Equal(t, []Heading{
		{Level: 1, Text: "Debugging"},
		{Level: 2, Text: "Chrome"},
		{Level: 2, Text: "Flipper"},
	}, Headings(body, 2))
}
