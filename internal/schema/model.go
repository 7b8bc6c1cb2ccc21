package schema

import (
	"slices"

	"github.com/zclconf/go-cty/cty"
)

// The checksum marker entry. A schema without it is incomplete: its presence
// signals that generated artifacts carry a verifiable integrity field.
const (
	VerifySection = "Verify"
	ChecksumKey   = "crc_16_ibm"
)

// TypeKind is one of the four primitive kinds a settings field may declare.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeBool
	TypeFloat
	TypeString
)

func (k TypeKind) String() string {
	switch k {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// TypeSpec is a declared field type. Capacity is the fixed buffer size for
// TypeString (one byte of which is reserved for the terminator) and zero for
// every other kind.
type TypeSpec struct {
	Kind     TypeKind
	Capacity int
}

// Entry is one validated settings field. Typed literals are cty values so
// the range and equality laws operate on parsed values rather than raw text;
// the raw text is retained because it is what the emitters render.
type Entry struct {
	Section string
	Key     string
	Type    TypeSpec

	Default cty.Value
	Value   cty.Value
	Min     cty.Value // cty.NilVal unless numeric
	Max     cty.Value // cty.NilVal unless numeric

	DefaultText string
	ValueText   string
	MinText     string
	MaxText     string

	Comment     string // original comment body, ';' stripped
	CommentLine int    // 1-based
	ValueLine   int    // 1-based
}

// IsChecksumMarker reports whether this entry is the mandatory
// Verify.crc_16_ibm integrity field. The marker gets no generated setter.
func (e *Entry) IsChecksumMarker() bool {
	return e.Section == VerifySection && e.Key == ChecksumKey
}

// Model is the validated schema for one compiler run: sections in first-seen
// order, entries in first-seen order within each section. It is built once
// by Compile and must not be mutated afterwards; every emitter iterates it
// in this order and no other.
type Model struct {
	filename string
	sections []string
	entries  map[string][]*Entry
}

func newModel(filename string) *Model {
	return &Model{
		filename: filename,
		entries:  make(map[string][]*Entry),
	}
}

func (m *Model) add(e *Entry) {
	if _, seen := m.entries[e.Section]; !seen {
		m.sections = append(m.sections, e.Section)
	}
	m.entries[e.Section] = append(m.entries[e.Section], e)
}

// Filename returns the schema document path the model was compiled from.
func (m *Model) Filename() string { return m.filename }

// Sections returns the section names in declaration order. The slice is a
// copy; the model never changes after Compile returns it.
func (m *Model) Sections() []string { return slices.Clone(m.sections) }

// Entries returns the entries of one section in declaration order. The slice
// is a copy, like Sections.
func (m *Model) Entries(section string) []*Entry { return slices.Clone(m.entries[section]) }

// All returns every entry in document order.
func (m *Model) All() []*Entry {
	var all []*Entry
	for _, section := range m.sections {
		all = append(all, m.entries[section]...)
	}
	return all
}

// Len returns the total number of entries.
func (m *Model) Len() int {
	n := 0
	for _, entries := range m.entries {
		n += len(entries)
	}
	return n
}

// ChecksumMarker returns the Verify.crc_16_ibm entry, or nil if the schema
// does not declare one.
func (m *Model) ChecksumMarker() *Entry {
	for _, e := range m.entries[VerifySection] {
		if e.Key == ChecksumKey {
			return e
		}
	}
	return nil
}
