package errors

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, quietLogger())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("invalid site").Build(), 2},
		{"not found", NewError(CategoryNotFound, "missing").Build(), 3},
		{"manifest", ManifestError("no description").Build(), 6},
		{"config", ConfigError("bad yaml").Build(), 7},
		{"git", GitError("no origin").Build(), 8},
		{"internal", InternalError("boom").Build(), 10},
		{"emit", EmitError("marshal").Build(), 11},
		{"filesystem", FileSystemError("write").Build(), 11},
		{"unclassified", stderrors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	t.Run("details are listed", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, quietLogger())
		err := ValidationError("site definition is invalid").
			WithDetails("nav[0]: link must start with /", "plugins[1]: duplicate plugin").
			Build()
		out := adapter.FormatError(err)
		require.Equal(t, "Error: site definition is invalid\n  - nav[0]: link must start with /\n  - plugins[1]: duplicate plugin", out)
	})

	t.Run("path context is appended", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, quietLogger())
		err := ManifestError("manifest not found").WithContext("path", "package.json").Build()
		require.Equal(t, "Error: manifest not found (package.json)", adapter.FormatError(err))
	})

	t.Run("internal errors are hidden unless verbose", func(t *testing.T) {
		err := InternalError("nil pointer").Build()
		require.Equal(t, "Internal error occurred (use -v for details)", NewCLIErrorAdapter(false, quietLogger()).FormatError(err))
		require.Contains(t, NewCLIErrorAdapter(true, quietLogger()).FormatError(err), "nil pointer")
	})

	t.Run("unclassified", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, quietLogger())
		require.Equal(t, "Error: plain", adapter.FormatError(stderrors.New("plain")))
	})
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCLIErrorAdapter(false, quietLogger()).WithOutput(&buf)

	code := adapter.Report(ConfigError("configuration file not found").WithContext("path", "sitecfg.yaml").Build())
	require.Equal(t, 7, code)
	require.Equal(t, "Error: configuration file not found (sitecfg.yaml)\n", buf.String())
	require.Equal(t, 0, adapter.Report(nil))
}
