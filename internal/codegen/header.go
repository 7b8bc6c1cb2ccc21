package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/settingsgen/internal/schema"
)

// EmitStructLayout renders the settings_persist header: the nested Settings
// record, the owned runtime state type, and the declared (not implemented)
// operation signatures of the runtime contract. The checksum marker gets no
// setter declaration.
func EmitStructLayout(m *schema.Model) string {
	var b strings.Builder

	b.WriteString("#ifndef _SETTINGS_PERSIST_H\n")
	b.WriteString("#define _SETTINGS_PERSIST_H\n\n")
	b.WriteString("#include <pthread.h>\n")
	b.WriteString("#include <stdbool.h>\n")
	b.WriteString("#include <stdint.h>\n")
	b.WriteString("#include <string.h>\n\n")

	b.WriteString("typedef struct\n{\n")
	for _, section := range m.Sections() {
		fmt.Fprintf(&b, "    /* %s settings */\n", section)
		b.WriteString("    struct\n    {\n")
		for _, e := range m.Entries(section) {
			fmt.Fprintf(&b, "        %s;  %s\n", fieldDecl(e), fieldComment(e))
		}
		fmt.Fprintf(&b, "    } %s;\n\n", section)
	}
	b.WriteString("} Settings;\n\n")

	b.WriteString("/* Owned runtime state: the shared record, its data guard, and the\n")
	b.WriteString(" * readiness gate. Create one with settings_persist_init and pass it to\n")
	b.WriteString(" * every operation; the record is never reachable as a module-level\n")
	b.WriteString(" * global. */\n")
	b.WriteString("typedef struct\n{\n")
	b.WriteString("    Settings cache;\n")
	b.WriteString("    pthread_mutex_t cache_mutex;\n")
	b.WriteString("    bool running;\n")
	b.WriteString("    pthread_mutex_t status_mutex;\n")
	b.WriteString("} SettingsPersistCtx;\n\n")

	b.WriteString("int settings_persist_init(SettingsPersistCtx *ctx);\n\n")
	b.WriteString("int settings_persist_get_data(SettingsPersistCtx *ctx, Settings *settings);\n\n")
	b.WriteString("int settings_persist_set_data(SettingsPersistCtx *ctx, const Settings *settings);\n\n")
	b.WriteString("int settings_persist_reset_all_data(SettingsPersistCtx *ctx);\n\n")
	for _, e := range m.All() {
		if e.IsChecksumMarker() {
			continue
		}
		fmt.Fprintf(&b, "int %s(SettingsPersistCtx *ctx, %s %s);\n\n", setterName(e), paramType(e), e.Key)
	}
	b.WriteString("int settings_persist_deinit(SettingsPersistCtx *ctx);\n\n")

	b.WriteString("#endif /* _SETTINGS_PERSIST_H */\n")
	return b.String()
}

// fieldComment restates the field's schema laws next to its declaration.
func fieldComment(e *schema.Entry) string {
	switch e.Type.Kind {
	case schema.TypeString:
		return fmt.Sprintf("/* default: %q */", e.DefaultText)
	case schema.TypeBool:
		return fmt.Sprintf("/* default: %s */", e.DefaultText)
	default:
		return fmt.Sprintf("/* default: %s, min: %s, max: %s */", e.DefaultText, e.MinText, e.MaxText)
	}
}
