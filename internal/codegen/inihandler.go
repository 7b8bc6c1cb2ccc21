package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/settingsgen/internal/schema"
)

// EmitParseHandler renders the fail-soft runtime dispatcher: for every known
// (section, key) pair it parses the textual value per the field's type and
// substitutes the declared default on any parse or range failure instead of
// aborting. The compiler is fail-fast; the generated runtime is not — it
// must keep operating on partially-bad persisted input. Returns 1 when the
// pair was recognized, 0 for unknown pairs (reported, never fatal).
func EmitParseHandler(m *schema.Model) string {
	var b strings.Builder

	b.WriteString(`/**
 * @brief Parse handler for persisted settings text; pair with the inih library.
 *
 * @param[in, out] user parse target, a Settings record
 * @param[in] section section name
 * @param[in] name key of the key-value pair
 * @param[in] value value of the key-value pair
 * @return int 1 when the (section, name) pair is known, 0 otherwise
 */
int settings_ini_handler(void* user, const char* section, const char* name, const char* value) {
    SETTINGS_PERSIST_SET_FUNC_LOG_TAG("settings_ini_handler");
    Settings* settings = (Settings*)user;
    if (!settings || !section || !name || !value)
    {
        SETTINGS_PERSIST_LOG_ERROR("NULL argument");
        return 0;
    }

`)

	for _, e := range m.All() {
		fmt.Fprintf(&b, "    if (strcmp(section, \"%s\") == 0 && strcmp(name, \"%s\") == 0) {\n", e.Section, e.Key)
		switch e.Type.Kind {
		case schema.TypeInt:
			emitNumericHandler(&b, e, "long", "strtol(value, &endptr, 10)", "(int)val", "%d")
		case schema.TypeFloat:
			emitNumericHandler(&b, e, "float", "strtof(value, &endptr)", "val", "%f")
		case schema.TypeBool:
			emitBoolHandler(&b, e)
		case schema.TypeString:
			emitStringHandler(&b, e)
		}
		b.WriteString("        return 1;\n")
		b.WriteString("    }\n\n")
	}

	b.WriteString("    /* Unknown section or name: reported, then ignored. */\n")
	b.WriteString("    SETTINGS_PERSIST_LOG_WARN(\"unknown settings record: %s(section)->%s(name)\", section, name);\n")
	b.WriteString("    return 0;\n")
	b.WriteString("}\n")
	return b.String()
}

func emitNumericHandler(b *strings.Builder, e *schema.Entry, cType, convert, assign, logFmt string) {
	ref := handlerRef(e)
	b.WriteString("        char* endptr;\n")
	fmt.Fprintf(b, "        %s val;\n", cType)
	b.WriteString("        errno = 0;\n")
	fmt.Fprintf(b, "        val = %s;\n", convert)
	b.WriteString("        if (errno != 0 || endptr == value) {\n")
	fmt.Fprintf(b, "            %s = %s;\n", ref, e.DefaultText)
	fmt.Fprintf(b, "            SETTINGS_PERSIST_LOG_ERROR(\"settings.%s.%s (type:%s) failed to parse, restored default: %s\");\n",
		e.Section, e.Key, e.Type.Kind, e.DefaultText)
	b.WriteString("        } else {\n")
	fmt.Fprintf(b, "            if (val < %s || val > %s) {\n", e.MinText, e.MaxText)
	fmt.Fprintf(b, "                %s = %s;\n", ref, e.DefaultText)
	fmt.Fprintf(b, "                SETTINGS_PERSIST_LOG_ERROR(\"settings.%s.%s out of range [%s, %s], restored default: %s\");\n",
		e.Section, e.Key, e.MinText, e.MaxText, e.DefaultText)
	b.WriteString("            } else {\n")
	fmt.Fprintf(b, "                %s = %s;\n", ref, assign)
	fmt.Fprintf(b, "                SETTINGS_PERSIST_LOG_INFO(\"settings.%s.%s parsed: %s\", %s);\n",
		e.Section, e.Key, logFmt, assign)
	b.WriteString("            }\n")
	b.WriteString("        }\n")
}

func emitBoolHandler(b *strings.Builder, e *schema.Entry) {
	ref := handlerRef(e)
	b.WriteString("        if (strcmp(value, \"true\") == 0) {\n")
	fmt.Fprintf(b, "            %s = true;\n", ref)
	fmt.Fprintf(b, "            SETTINGS_PERSIST_LOG_INFO(\"settings.%s.%s parsed: true\");\n", e.Section, e.Key)
	b.WriteString("        } else if (strcmp(value, \"false\") == 0) {\n")
	fmt.Fprintf(b, "            %s = false;\n", ref)
	fmt.Fprintf(b, "            SETTINGS_PERSIST_LOG_INFO(\"settings.%s.%s parsed: false\");\n", e.Section, e.Key)
	b.WriteString("        } else {\n")
	fmt.Fprintf(b, "            %s = %s;\n", ref, e.DefaultText)
	fmt.Fprintf(b, "            SETTINGS_PERSIST_LOG_ERROR(\"settings.%s.%s (type:bool) failed to parse, restored default: %s\");\n",
		e.Section, e.Key, e.DefaultText)
	b.WriteString("        }\n")
}

// handlerRef is the member access path under the handler's target pointer.
func handlerRef(e *schema.Entry) string {
	return fmt.Sprintf("settings->%s.%s", e.Section, e.Key)
}

func emitStringHandler(b *strings.Builder, e *schema.Entry) {
	ref := handlerRef(e)
	fmt.Fprintf(b, "        strncpy(%s, value, sizeof(%s)-1);\n", ref, ref)
	fmt.Fprintf(b, "        %s[sizeof(%s)-1] = '\\0';\n", ref, ref)
	fmt.Fprintf(b, "        SETTINGS_PERSIST_LOG_INFO(\"settings.%s.%s parsed: %%s\", %s);\n", e.Section, e.Key, ref)
}
