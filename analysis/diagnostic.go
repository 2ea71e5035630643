// Copyright © 2025 The lmnls authors

package analysis

import "github.com/lmntal/lmnls/parser/token"

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// RelatedInformation points at a secondary span that explains a
// diagnostic, such as the earlier occurrences of an over-used link.
type RelatedInformation struct {
	Span    token.Span
	Message string
}

// Diagnostic is one linearity problem reported by the analyzer.  None of
// the diagnostic kinds halt analysis of sibling subtrees.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     token.Span
	Related  []RelatedInformation
}

// Diagnostic messages for the three linearity violations.
const (
	msgLinkAtTopLevel = "Link at top level"
	msgFreeLink       = "Free link"
	msgMultiOccur     = "Link occurs more than twice"
)
