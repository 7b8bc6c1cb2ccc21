package codegen

import (
	"github.com/goccy/go-json"

	"github.com/vk/settingsgen/internal/schema"
)

// manifestEntry mirrors one schema entry for machine consumers. Literal
// fields carry the author's raw text, the same text the C emitters render.
type manifestEntry struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity,omitempty"`
	Default     string `json:"default"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
	CommentLine int    `json:"comment_line"`
	ValueLine   int    `json:"value_line"`
}

type manifestSection struct {
	Name    string          `json:"name"`
	Entries []manifestEntry `json:"entries"`
}

type manifest struct {
	Schema   string            `json:"schema"`
	Sections []manifestSection `json:"sections"`
}

// EmitManifest renders the schema model as an indented JSON document, the
// machine-readable counterpart of the generated C artifacts. Section and
// entry order follow the model, so the output is deterministic.
func EmitManifest(m *schema.Model) (string, error) {
	doc := manifest{Schema: m.Filename()}
	for _, section := range m.Sections() {
		ms := manifestSection{Name: section}
		for _, e := range m.Entries(section) {
			ms.Entries = append(ms.Entries, manifestEntry{
				Key:         e.Key,
				Type:        e.Type.Kind.String(),
				Capacity:    e.Type.Capacity,
				Default:     e.DefaultText,
				Min:         e.MinText,
				Max:         e.MaxText,
				CommentLine: e.CommentLine,
				ValueLine:   e.ValueLine,
			})
		}
		doc.Sections = append(doc.Sections, ms)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
