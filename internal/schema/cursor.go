package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/settingsgen/internal/ctxlog"
)

// Compile walks the schema document in one pass and produces either a fully
// validated model or the single fatal diagnostic for the earliest violated
// rule in document order. It never returns a partial model.
func Compile(ctx context.Context, filename, src string) (*Model, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	lines := scanLines(src)
	if len(lines) == 0 {
		return nil, errAt(KindStructural, filename, 0,
			"empty schema document", "the schema file contains no lines")
	}
	if lines[0].kind != lineSection {
		return nil, errAt(KindStructural, filename, 1,
			"schema must open with a section header", `the first line must be "[section_name]"`)
	}

	c := &cursor{filename: filename, lines: lines, model: newModel(filename)}
	if diags := c.run(); diags.HasErrors() {
		return nil, diags
	}
	if diags := c.checkCompleteness(); diags.HasErrors() {
		return nil, diags
	}

	logger.Debug("schema compiled.", "sections", len(c.model.Sections()), "entries", c.model.Len())
	return c.model, nil
}

// cursor is the fail-fast state machine over the classified line sequence.
// It uses exactly one line of lookahead and never backtracks.
type cursor struct {
	filename string
	lines    []scanLine
	section  string
	model    *Model
}

func (c *cursor) run() hcl.Diagnostics {
	i := 0
	for i < len(c.lines) {
		ln := c.lines[i]
		switch ln.kind {
		case lineSection:
			if diags := c.enterSection(i); diags.HasErrors() {
				return diags
			}
			i++

		case lineComment:
			entry, diags := c.parseEntry(i)
			if diags.HasErrors() {
				return diags
			}
			c.model.add(entry)
			i += 2

			// An optional single blank line may follow an entry, but only to
			// separate two sections.
			if i < len(c.lines) && c.lines[i].kind == lineBlank {
				if i+1 >= len(c.lines) {
					return errAt(KindStructural, c.filename, c.lines[i].num,
						"blank line must be followed by a new section",
						"a blank line is legal only between two sections, never at end of file")
				}
				if c.lines[i+1].kind != lineSection {
					return errAt(KindStructural, c.filename, c.lines[i+1].num,
						"blank line must be followed by a new section",
						"a blank line is legal only between two sections")
				}
				i++
			}

		default:
			return errAt(KindStructural, c.filename, ln.num,
				"invalid line",
				"expected a section header, a field comment, or a blank line between sections")
		}
	}
	return nil
}

// enterSection validates a "[name]" header and the shape of what follows it.
func (c *cursor) enterSection(i int) hcl.Diagnostics {
	ln := c.lines[i]
	name := strings.TrimSpace(ln.text[1 : len(ln.text)-1])
	if name == "" {
		return errAt(KindStructural, c.filename, ln.num,
			"section name must not be empty", `a section header has the form "[section_name]"`)
	}
	if !isIdent(name) {
		return errAt(KindStructural, c.filename, ln.num,
			"invalid section name",
			fmt.Sprintf("%q cannot become a struct identifier in generated code", name))
	}
	if i+1 >= len(c.lines) {
		return errAt(KindStructural, c.filename, ln.num,
			"empty section", fmt.Sprintf("section %q declares no entries", name))
	}
	if c.lines[i+1].kind != lineComment {
		return errAt(KindStructural, c.filename, c.lines[i+1].num,
			"section must open with a field comment",
			"the line after a section header must be a '; key: ...' comment")
	}
	c.section = name
	return nil
}

// parseEntry consumes the (comment, value) pair starting at index i and
// returns the validated entry.
func (c *cursor) parseEntry(i int) (*Entry, hcl.Diagnostics) {
	ln := c.lines[i]

	body := strings.TrimSpace(strings.TrimPrefix(ln.text, ";"))
	if body == "" {
		return nil, errAt(KindStructural, c.filename, ln.num,
			"empty comment", "a field comment must carry its key and metadata")
	}
	keyPart, metaPart, found := strings.Cut(body, ":")
	if !found {
		return nil, errAt(KindStructural, c.filename, ln.num,
			"comment missing ':'",
			"expected '; key: type=..., default=...[, min=..., max=...]'")
	}
	key := strings.TrimSpace(keyPart)
	if key == "" {
		return nil, errAt(KindStructural, c.filename, ln.num,
			"comment has no key",
			"expected '; key: type=..., default=...[, min=..., max=...]'")
	}
	if !isIdent(key) {
		return nil, errAt(KindStructural, c.filename, ln.num,
			"invalid key name",
			fmt.Sprintf("%q cannot become a struct member identifier in generated code", key))
	}

	meta, diags := parseMetaList(c.filename, ln.num, strings.TrimSpace(metaPart))
	if diags.HasErrors() {
		return nil, diags
	}
	for _, required := range []string{metaType, metaDefault} {
		if _, ok := meta[required]; !ok {
			return nil, errAt(KindSemantic, c.filename, ln.num,
				"missing required metadata",
				fmt.Sprintf("the comment must declare '%s=...'", required))
		}
	}

	spec, diags := parseTypeSpec(c.filename, ln.num, key, strings.ToLower(meta[metaType]))
	if diags.HasErrors() {
		return nil, diags
	}
	if spec.Kind == TypeBool || spec.Kind == TypeString {
		for _, forbidden := range []string{metaMin, metaMax} {
			if _, ok := meta[forbidden]; ok {
				return nil, errAt(KindSemantic, c.filename, ln.num,
					"forbidden metadata",
					fmt.Sprintf("'%s' is not allowed on a %s field", forbidden, spec.Kind))
			}
		}
	}

	if i+1 >= len(c.lines) {
		return nil, errAt(KindStructural, c.filename, ln.num,
			"comment must be followed by a key-value line",
			fmt.Sprintf("the comment for %q is the last line of the file", key))
	}
	vln := c.lines[i+1]
	if !strings.Contains(vln.text, "=") {
		return nil, errAt(KindStructural, c.filename, vln.num,
			"comment must be followed by a key-value line",
			fmt.Sprintf("expected '%s=<value>'", key))
	}
	if strings.Count(vln.text, "=") > 1 {
		return nil, errAt(KindStructural, c.filename, vln.num,
			"key-value line must contain exactly one '='",
			fmt.Sprintf("found %d", strings.Count(vln.text, "=")))
	}
	vKey, vValue, _ := strings.Cut(vln.text, "=")
	vKey = strings.TrimSpace(vKey)
	vValue = strings.TrimSpace(vValue)
	if vKey != key {
		return nil, errAt(KindStructural, c.filename, vln.num,
			"key mismatch",
			fmt.Sprintf("key-value line names %q but the comment declares %q", vKey, key))
	}
	if vValue == "" {
		return nil, errAt(KindStructural, c.filename, vln.num,
			"empty value", fmt.Sprintf("the value of %q must not be empty", key))
	}

	entry := &Entry{
		Section:     c.section,
		Key:         key,
		Type:        spec,
		DefaultText: meta[metaDefault],
		ValueText:   vValue,
		MinText:     meta[metaMin],
		MaxText:     meta[metaMax],
		Comment:     body,
		CommentLine: ln.num,
		ValueLine:   vln.num,
	}
	if diags := validateEntry(c.filename, entry); diags.HasErrors() {
		return nil, diags
	}
	return entry, nil
}

// checkCompleteness runs once after the walk: the model must be non-empty
// and must declare the checksum marker as an int entry.
func (c *cursor) checkCompleteness() hcl.Diagnostics {
	if c.model.Len() == 0 {
		return errAt(KindCompleteness, c.filename, 0,
			"empty schema", "no settings entries were declared")
	}
	marker := c.model.ChecksumMarker()
	if marker == nil {
		return errAt(KindCompleteness, c.filename, 0,
			"missing checksum marker",
			fmt.Sprintf("the schema must declare an int entry %s.%s", VerifySection, ChecksumKey))
	}
	if marker.Type.Kind != TypeInt {
		return errAt(KindCompleteness, c.filename, marker.CommentLine,
			"invalid checksum marker",
			fmt.Sprintf("%s.%s must be of type int, not %s", VerifySection, ChecksumKey, marker.Type.Kind))
	}
	return nil
}
