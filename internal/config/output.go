package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/normalization"
)

// OutputFormat selects how the site configuration is serialized.
type OutputFormat string

const (
	FormatJS   OutputFormat = "js"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

var formatNormalizer = normalization.NewNormalizer(map[string]OutputFormat{
	"js":         FormatJS,
	"javascript": FormatJS,
	"json":       FormatJSON,
	"yaml":       FormatYAML,
	"yml":        FormatYAML,
}, FormatJS)

// ParseOutputFormat normalizes raw; empty input yields FormatJS.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	return formatNormalizer.Parse(raw)
}

// Extension returns the file extension used for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yml"
	default:
		return ".js"
	}
}

// FormatForPath infers the format from a file extension, falling back to js.
func FormatForPath(path string) OutputFormat {
	return formatNormalizer.Normalize(trimDot(filepath.Ext(path)))
}

func trimDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
