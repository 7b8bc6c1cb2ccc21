package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/settingsgen/internal/schema"
)

// EmitFieldSetters renders one bounds-checked mutator per entry except the
// checksum marker, plus the reset-all operation. Each setter re-applies the
// schema's range/length law before touching anything, then follows the
// guard discipline: readiness mutex, readiness check, data mutex, mutate,
// unlock in reverse order, with the unlocks held on every exit path.
func EmitFieldSetters(m *schema.Model) string {
	var b strings.Builder
	for _, e := range m.All() {
		if e.IsChecksumMarker() {
			continue
		}
		emitSetter(&b, e)
		b.WriteString("\n")
	}
	emitResetAll(&b)
	return b.String()
}

func emitSetter(b *strings.Builder, e *schema.Entry) {
	name := setterName(e)
	fmt.Fprintf(b, "int %s(SettingsPersistCtx *ctx, %s %s)\n", name, paramType(e), e.Key)
	b.WriteString("{\n")
	fmt.Fprintf(b, "    SETTINGS_PERSIST_SET_FUNC_LOG_TAG(\"%s\");\n", name)

	switch e.Type.Kind {
	case schema.TypeInt, schema.TypeFloat:
		fmt.Fprintf(b, "    if (%s > %s || %s < %s)\n", e.Key, e.MaxText, e.Key, e.MinText)
		b.WriteString("    {\n")
		fmt.Fprintf(b, "        SETTINGS_PERSIST_LOG_WARN(\"value out of range: %s~%s\");\n", e.MinText, e.MaxText)
		b.WriteString("        return -1;\n")
		b.WriteString("    }\n")
	case schema.TypeString:
		limit := e.Type.Capacity - 1
		fmt.Fprintf(b, "    if (strlen(%s) > %d)\n", e.Key, limit)
		b.WriteString("    {\n")
		fmt.Fprintf(b, "        SETTINGS_PERSIST_LOG_WARN(\"string too long: at most %d bytes\");\n", limit)
		b.WriteString("        return -1;\n")
		b.WriteString("    }\n")
	}

	b.WriteString("\n    pthread_mutex_lock(&ctx->status_mutex);\n")
	b.WriteString("    if (!ctx->running)\n")
	b.WriteString("    {\n")
	b.WriteString("        SETTINGS_PERSIST_LOG_WARN(\"update rejected: settings_persist not initialized\");\n")
	b.WriteString("        pthread_mutex_unlock(&ctx->status_mutex);\n")
	b.WriteString("        return -2;\n")
	b.WriteString("    }\n\n")

	b.WriteString("    pthread_mutex_lock(&ctx->cache_mutex);\n")
	ref := fieldRef("ctx->cache", e)
	if e.Type.Kind == schema.TypeString {
		fmt.Fprintf(b, "    strcpy(%s, %s);\n", ref, e.Key)
	} else {
		fmt.Fprintf(b, "    %s = %s;\n", ref, e.Key)
	}
	b.WriteString("    pthread_mutex_unlock(&ctx->cache_mutex);\n")
	b.WriteString("    SETTINGS_PERSIST_LOG_DEBUG(\"update applied\");\n")
	b.WriteString("    pthread_mutex_unlock(&ctx->status_mutex);\n")
	b.WriteString("    return 0;\n")
	b.WriteString("}\n")
}

func emitResetAll(b *strings.Builder) {
	b.WriteString("int settings_persist_reset_all_data(SettingsPersistCtx *ctx)\n")
	b.WriteString("{\n")
	b.WriteString("    SETTINGS_PERSIST_SET_FUNC_LOG_TAG(\"settings_persist_reset_all_data\");\n")
	b.WriteString("    pthread_mutex_lock(&ctx->status_mutex);\n")
	b.WriteString("    if (!ctx->running)\n")
	b.WriteString("    {\n")
	b.WriteString("        SETTINGS_PERSIST_LOG_WARN(\"reset rejected: settings_persist not initialized\");\n")
	b.WriteString("        pthread_mutex_unlock(&ctx->status_mutex);\n")
	b.WriteString("        return -2;\n")
	b.WriteString("    }\n\n")
	b.WriteString("    pthread_mutex_lock(&ctx->cache_mutex);\n")
	b.WriteString("    settings_restore_defaults(&ctx->cache);\n")
	b.WriteString("    pthread_mutex_unlock(&ctx->cache_mutex);\n")
	b.WriteString("    SETTINGS_PERSIST_LOG_DEBUG(\"reset applied\");\n")
	b.WriteString("    pthread_mutex_unlock(&ctx->status_mutex);\n")
	b.WriteString("    return 0;\n")
	b.WriteString("}\n")
}
