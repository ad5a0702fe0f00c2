// Package emit serializes a site configuration into the files the generator
// reads (.vuepress/config.js, config.json or config.yml) and parses them back.
package emit

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	derrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

const (
	generatedHeader = "// Code generated by sitecfg. DO NOT EDIT.\n"
	exportsPrefix   = "module.exports = "
)

// Marshal serializes cfg in the requested format.
func Marshal(cfg *site.Config, format config.OutputFormat) ([]byte, error) {
	w := toWire(cfg)
	switch format {
	case config.FormatJSON:
		body, err := marshalJSON(w)
		if err != nil {
			return nil, err
		}
		return append(body, '\n'), nil
	case config.FormatJS:
		body, err := marshalJSON(w)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString(generatedHeader)
		buf.WriteString(exportsPrefix)
		buf.Write(body)
		buf.WriteString(";\n")
		return buf.Bytes(), nil
	case config.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(w); err != nil {
			return nil, derrors.EmitError("failed to encode yaml").WithCause(err).Build()
		}
		if err := enc.Close(); err != nil {
			return nil, derrors.EmitError("failed to encode yaml").WithCause(err).Build()
		}
		return buf.Bytes(), nil
	default:
		return nil, derrors.EmitError("unsupported output format").
			WithContext("format", string(format)).
			Build()
	}
}

func marshalJSON(w wireConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w); err != nil {
		return nil, derrors.EmitError("failed to encode json").WithCause(err).Build()
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Parse reads a file produced by Marshal. For js only the
// "module.exports = {...};" form written by Marshal is understood.
func Parse(data []byte, format config.OutputFormat) (*site.Config, error) {
	switch format {
	case config.FormatJS:
		body, err := stripExports(data)
		if err != nil {
			return nil, err
		}
		data = body
	case config.FormatJSON, config.FormatYAML:
	default:
		return nil, derrors.EmitError("unsupported output format").
			WithContext("format", string(format)).
			Build()
	}

	// JSON is valid YAML, so one decoder keeps sidebar key order for both.
	var w wireConfig
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, derrors.EmitError("failed to parse site configuration").
			WithContext("format", string(format)).
			WithCause(err).
			Build()
	}
	return fromWire(&w), nil
}

func stripExports(data []byte) ([]byte, error) {
	rest := data
	for {
		rest = bytes.TrimLeft(rest, " \t\r\n")
		if !bytes.HasPrefix(rest, []byte("//")) {
			break
		}
		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			rest = nil
			break
		}
		rest = rest[nl+1:]
	}
	body, ok := bytes.CutPrefix(rest, []byte(exportsPrefix))
	if !ok {
		return nil, derrors.EmitError("js config does not start with module.exports").Build()
	}
	body = bytes.TrimRight(body, " \t\r\n")
	body = bytes.TrimSuffix(body, []byte(";"))
	return body, nil
}

// ReadFile parses the file at path in the given format.
func ReadFile(path string, format config.OutputFormat) (*site.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.FileSystemError("failed to read site configuration").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	return Parse(data, format)
}

// WriteFile serializes cfg and replaces path atomically. It reports whether
// the file content changed; an identical file is left untouched.
func WriteFile(path string, cfg *site.Config, format config.OutputFormat) (bool, error) {
	data, err := Marshal(cfg, format)
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, derrors.FileSystemError("failed to read existing output").
			WithContext("path", path).
			WithCause(err).
			Build()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, derrors.FileSystemError("failed to create output directory").
			WithContext("path", filepath.Dir(path)).
			WithCause(err).
			Build()
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return false, derrors.FileSystemError("failed to write site configuration").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	return true, nil
}
