package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, docsDir string) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results in human-readable text format.
func (TextFormatter) Format(w io.Writer, result *Result, docsDir string) error {
	if _, err := fmt.Fprintf(w, "Checking pages in: %s\n", docsDir); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 60)); err != nil {
		return err
	}
	for _, issue := range result.Issues {
		if err := formatIssue(w, issue); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%d page%s resolved, %d error%s, %d warning%s\n",
		len(result.Pages), pluralize(len(result.Pages)),
		result.ErrorCount(), pluralize(result.ErrorCount()),
		result.WarningCount(), pluralize(result.WarningCount())); err != nil {
		return err
	}
	return nil
}

func formatIssue(w io.Writer, issue Issue) error {
	var icon string
	switch issue.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	default:
		icon = "ℹ"
	}
	where := issue.Route
	if issue.File != "" {
		where += " (" + issue.File + ")"
	}
	_, err := fmt.Fprintf(w, "%s %s\n  %s [%s]: %s\n", icon, where, issue.Severity, issue.Rule, issue.Message)
	return err
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	DocsDir      string      `json:"docs_dir"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Pages        []Page      `json:"pages"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Route    string `json:"route"`
	File     string `json:"file,omitempty"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
}

// Format outputs results in JSON format.
func (JSONFormatter) Format(w io.Writer, result *Result, docsDir string) error {
	output := JSONOutput{
		DocsDir:      docsDir,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Pages:        result.Pages,
		Issues:       []JSONIssue{},
	}
	if output.Pages == nil {
		output.Pages = []Page{}
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			Route:    issue.Route,
			File:     issue.File,
			Severity: issue.Severity.String(),
			Rule:     issue.Rule,
			Message:  issue.Message,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return JSONFormatter{}
	}
	return TextFormatter{}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
