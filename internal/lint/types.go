package lint

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues the generator tolerates but renders poorly.
	SeverityWarning
	// SeverityError indicates a sidebar or nav entry the generator cannot resolve.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Rule identifiers.
const (
	RuleMissingPage        = "missing-page"
	RuleMissingTitle       = "missing-title"
	RuleInvalidFrontmatter = "invalid-frontmatter"
)

// Issue represents a single problem with a page the configuration references.
type Issue struct {
	Route    string   // Site route as written in nav or sidebar
	File     string   // Page file relative to the docs dir ("" when missing)
	Severity Severity // Issue severity level
	Rule     string   // Rule identifier (e.g., "missing-page")
	Message  string   // Brief description of the issue
}

// Page is a resolved page referenced by the configuration.
type Page struct {
	Route string `json:"route"`
	File  string `json:"file"`
	Title string `json:"title,omitempty"`
}

// Result contains every referenced page and all issues found.
type Result struct {
	Pages  []Page
	Issues []Issue
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

// MissingPages returns the number of routes that resolved to no file.
func (r *Result) MissingPages() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Rule == RuleMissingPage {
			n++
		}
	}
	return n
}

func (r *Result) count(s Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			count++
		}
	}
	return count
}
