package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/settingsgen/internal/schema"
)

// EmitDefaultsRestorer renders the function that unconditionally assigns
// every field, the checksum marker included, its schema default.
func EmitDefaultsRestorer(m *schema.Model) string {
	var b strings.Builder

	b.WriteString(`/**
 * @brief Restore every field of the record to its schema default.
 *
 * @param[in, out] settings target record
 */
void settings_restore_defaults(Settings *settings) {
    SETTINGS_PERSIST_SET_FUNC_LOG_TAG("settings_restore_defaults");
    if (!settings)
    {
        SETTINGS_PERSIST_LOG_ERROR("settings is NULL");
        return;
    }

`)

	for _, section := range m.Sections() {
		fmt.Fprintf(&b, "    /* Restore %s defaults */\n", section)
		for _, e := range m.Entries(section) {
			ref := handlerRef(e)
			if e.Type.Kind == schema.TypeString {
				fmt.Fprintf(&b, "    strncpy(%s, \"%s\", sizeof(%s)-1);\n", ref, e.DefaultText, ref)
				fmt.Fprintf(&b, "    %s[sizeof(%s)-1] = '\\0';\n", ref, ref)
			} else {
				fmt.Fprintf(&b, "    %s = %s;\n", ref, e.DefaultText)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("}\n")
	return b.String()
}
