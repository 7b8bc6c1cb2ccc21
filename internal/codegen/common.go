package codegen

import (
	"fmt"

	"github.com/vk/settingsgen/internal/schema"
)

// setterName builds the generated mutator name for an entry. The pattern is
// part of the interoperability contract with hand-written runtime code and
// must never change shape.
func setterName(e *schema.Entry) string {
	return fmt.Sprintf("settings_persist_set_%s_%s", e.Section, e.Key)
}

// paramType is the C parameter type a setter takes for the entry.
func paramType(e *schema.Entry) string {
	switch e.Type.Kind {
	case schema.TypeInt:
		return "int"
	case schema.TypeBool:
		return "bool"
	case schema.TypeFloat:
		return "float"
	default:
		return "const char*"
	}
}

// fieldDecl is the C struct member declaration for the entry.
func fieldDecl(e *schema.Entry) string {
	switch e.Type.Kind {
	case schema.TypeInt:
		return fmt.Sprintf("int %s", e.Key)
	case schema.TypeBool:
		return fmt.Sprintf("bool %s", e.Key)
	case schema.TypeFloat:
		return fmt.Sprintf("float %s", e.Key)
	default:
		return fmt.Sprintf("char %s[%d]", e.Key, e.Type.Capacity)
	}
}

// fieldRef is the member access path for the entry under the given record
// expression, e.g. fieldRef("ctx->cache", e) -> "ctx->cache.Network.port".
func fieldRef(record string, e *schema.Entry) string {
	return fmt.Sprintf("%s.%s.%s", record, e.Section, e.Key)
}
