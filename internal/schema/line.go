package schema

import (
	"regexp"
	"strings"
)

// lineKind tags what a physical line looks like in isolation. Whether it is
// legal at its position is the cursor's call, not the classifier's.
type lineKind int

const (
	lineBlank lineKind = iota
	lineSection
	lineComment
	lineValue
	lineInvalid
)

func (k lineKind) String() string {
	switch k {
	case lineBlank:
		return "blank"
	case lineSection:
		return "section header"
	case lineComment:
		return "comment"
	case lineValue:
		return "key-value"
	default:
		return "invalid"
	}
}

// scanLine is one classified physical line. text carries the trimmed form;
// the grammar is whitespace-tolerant at line edges only.
type scanLine struct {
	num  int // 1-based
	text string
	kind lineKind
}

func classify(text string) lineKind {
	switch {
	case text == "":
		return lineBlank
	case strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"):
		return lineSection
	case strings.HasPrefix(text, ";"):
		return lineComment
	case strings.Contains(text, "="):
		return lineValue
	default:
		return lineInvalid
	}
}

// scanLines splits the document into classified lines. A trailing newline
// does not count as a final blank line.
func scanLines(src string) []scanLine {
	if src == "" {
		return nil
	}
	src = strings.TrimSuffix(src, "\n")
	raw := strings.Split(src, "\n")
	lines := make([]scanLine, len(raw))
	for i, r := range raw {
		text := strings.TrimSpace(r)
		lines[i] = scanLine{num: i + 1, text: text, kind: classify(text)}
	}
	return lines
}

// identPattern is the identifier grammar shared by section names and keys:
// generated code uses them verbatim as C identifiers.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func isIdent(s string) bool { return identPattern.MatchString(s) }
