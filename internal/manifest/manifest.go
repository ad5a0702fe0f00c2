// Package manifest reads the project manifest (package.json) that supplies the
// site description.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	derrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// DefaultFile is the manifest file name looked up when none is configured.
const DefaultFile = "package.json"

// Manifest holds the package.json fields sitecfg consumes.
type Manifest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	Repository  Repo   `json:"repository,omitempty"`
}

// Repo accepts both the string and the object form of package.json "repository".
type Repo struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

func (r *Repo) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		return json.Unmarshal(data, &r.URL)
	}
	type plain Repo
	return json.Unmarshal(data, (*plain)(r))
}

// Load reads and checks the manifest at path. A manifest without a
// description is rejected: the site description has no other source.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.ManifestError("manifest not found").
				WithContext("path", path).
				WithCause(err).
				Build()
		}
		return nil, derrors.ManifestError("failed to read manifest").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	return Parse(data, path)
}

// Parse decodes manifest bytes; source is only used in error context.
func Parse(data []byte, source string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, derrors.ManifestError("malformed manifest").
			WithContext("path", source).
			WithCause(err).
			Build()
	}
	if strings.TrimSpace(m.Description) == "" {
		return nil, derrors.ManifestError("manifest is missing a description field").
			WithContext("path", source).
			WithContext("field", "description").
			Build()
	}
	return &m, nil
}
