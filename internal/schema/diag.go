package schema

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Kind classifies a fatal compile diagnostic. It rides in the diagnostic's
// Extra field so callers (and tests) can distinguish the failure class
// without string-matching summaries.
type Kind int

const (
	// KindStructural marks a violation of the line grammar itself: wrong
	// first line, illegal identifiers, lines at illegal positions, or a
	// malformed '='/':' shape.
	KindStructural Kind = iota

	// KindSemantic marks missing or forbidden metadata and unsupported or
	// malformed type tags.
	KindSemantic

	// KindValue marks literals that fail to parse for their declared type,
	// value/default disagreement, out-of-range defaults, and over-long
	// string literals.
	KindValue

	// KindCompleteness marks an empty schema or a missing checksum marker.
	KindCompleteness
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindSemantic:
		return "semantic"
	case KindValue:
		return "value"
	case KindCompleteness:
		return "completeness"
	default:
		return "unknown"
	}
}

// KindOf extracts the Kind from a compile diagnostic. The second return is
// false for diagnostics that did not originate in this package.
func KindOf(diag *hcl.Diagnostic) (Kind, bool) {
	return hcl.DiagnosticExtra[Kind](diag)
}

// lineRange points a diagnostic at one 1-based physical line of the schema
// document. Column information is meaningless for this grammar, so both
// positions sit at column 1.
func lineRange(filename string, line int) *hcl.Range {
	pos := hcl.Pos{Line: line, Column: 1}
	return &hcl.Range{Filename: filename, Start: pos, End: pos}
}

// errAt builds the single fatal diagnostic for a run. A zero line produces a
// file-level diagnostic with no subject (used by completeness checks, which
// have no line to cite).
func errAt(kind Kind, filename string, line int, summary, detail string) hcl.Diagnostics {
	diag := &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Extra:    kind,
	}
	if line > 0 {
		diag.Subject = lineRange(filename, line)
	}
	return hcl.Diagnostics{diag}
}

// FormatDiagnostic renders a compile diagnostic as the single stderr line
// required by the process exit contract: "file:line: summary: detail".
func FormatDiagnostic(diag *hcl.Diagnostic) string {
	if diag.Subject != nil {
		return fmt.Sprintf("%s:%d: %s: %s",
			diag.Subject.Filename, diag.Subject.Start.Line, diag.Summary, diag.Detail)
	}
	return fmt.Sprintf("%s: %s", diag.Summary, diag.Detail)
}
