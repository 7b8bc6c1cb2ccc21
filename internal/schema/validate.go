package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// parseTypeSpec interprets the lower-cased "type" tag from the comment
// metadata. The key is only used to phrase diagnostics.
func parseTypeSpec(filename string, line int, key, tag string) (TypeSpec, hcl.Diagnostics) {
	switch tag {
	case "int":
		return TypeSpec{Kind: TypeInt}, nil
	case "bool":
		return TypeSpec{Kind: TypeBool}, nil
	case "float":
		return TypeSpec{Kind: TypeFloat}, nil
	case "string":
		return TypeSpec{}, errAt(KindSemantic, filename, line,
			"string type requires a capacity",
			fmt.Sprintf("declare the buffer size for %q explicitly, e.g. type=string:20", key))
	}
	if capText, found := strings.CutPrefix(tag, "string:"); found {
		capacity, err := strconv.Atoi(strings.TrimSpace(capText))
		if err != nil {
			return TypeSpec{}, errAt(KindSemantic, filename, line,
				"invalid string capacity",
				fmt.Sprintf("%q is not a valid integer", strings.TrimSpace(capText)))
		}
		if capacity < 1 {
			return TypeSpec{}, errAt(KindSemantic, filename, line,
				"invalid string capacity",
				fmt.Sprintf("capacity must be positive, got %d", capacity))
		}
		return TypeSpec{Kind: TypeString, Capacity: capacity}, nil
	}
	return TypeSpec{}, errAt(KindSemantic, filename, line,
		"unsupported type",
		fmt.Sprintf("%q declares type %q; supported types are int, bool, float, string:<N>", key, tag))
}

// validateEntry enforces the per-type laws on a structurally complete entry
// and fills in its typed literal values. The entry is only usable when the
// returned diagnostics are empty.
func validateEntry(filename string, e *Entry) hcl.Diagnostics {
	switch e.Type.Kind {
	case TypeInt:
		return validateNumeric(filename, e, parseIntLiteral)
	case TypeFloat:
		return validateNumeric(filename, e, parseFloatLiteral)
	case TypeBool:
		return validateBool(filename, e)
	case TypeString:
		return validateString(filename, e)
	default:
		// parseTypeSpec only produces the four kinds above.
		panic(fmt.Sprintf("schema: unhandled type kind %v", e.Type.Kind))
	}
}

func parseIntLiteral(s string) (cty.Value, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return cty.NilVal, err
	}
	return cty.NumberIntVal(v), nil
}

func parseFloatLiteral(s string) (cty.Value, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return cty.NilVal, err
	}
	// strconv accepts "nan" and "inf" spellings, but a non-finite literal
	// has no meaning as a bound or a generated C default, and NaN cannot
	// even be represented as a cty number.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return cty.NilVal, fmt.Errorf("%q is not a finite number", s)
	}
	return cty.NumberFloatVal(v), nil
}

// validateNumeric covers int and float: both require min/max, a parseable
// default inside [min,max], and a value literal equal to the default.
func validateNumeric(filename string, e *Entry, parse func(string) (cty.Value, error)) hcl.Diagnostics {
	var err error
	if e.Value, err = parse(e.ValueText); err != nil {
		return errAt(KindValue, filename, e.ValueLine,
			"invalid value literal",
			fmt.Sprintf("%q is not a valid %s", e.ValueText, e.Type.Kind))
	}
	if e.Default, err = parse(e.DefaultText); err != nil {
		return errAt(KindValue, filename, e.ValueLine,
			"invalid default literal",
			fmt.Sprintf("%q is not a valid %s", e.DefaultText, e.Type.Kind))
	}
	for _, bound := range []struct{ name, text string }{
		{metaMin, e.MinText},
		{metaMax, e.MaxText},
	} {
		if bound.text == "" {
			return errAt(KindSemantic, filename, e.ValueLine,
				"missing required metadata",
				fmt.Sprintf("a %s field must declare '%s=...' in its comment", e.Type.Kind, bound.name))
		}
	}
	if e.Min, err = parse(e.MinText); err != nil {
		return errAt(KindValue, filename, e.ValueLine,
			"invalid min literal",
			fmt.Sprintf("%q is not a valid %s", e.MinText, e.Type.Kind))
	}
	if e.Max, err = parse(e.MaxText); err != nil {
		return errAt(KindValue, filename, e.ValueLine,
			"invalid max literal",
			fmt.Sprintf("%q is not a valid %s", e.MaxText, e.Type.Kind))
	}
	if !e.Value.RawEquals(e.Default) {
		return errAt(KindValue, filename, e.ValueLine,
			"value does not equal default",
			fmt.Sprintf("value %s must restate the declared default %s", e.ValueText, e.DefaultText))
	}
	if e.Default.LessThan(e.Min).True() {
		return errAt(KindValue, filename, e.CommentLine,
			"default below min",
			fmt.Sprintf("default %s must be >= min %s", e.DefaultText, e.MinText))
	}
	if e.Default.GreaterThan(e.Max).True() {
		return errAt(KindValue, filename, e.CommentLine,
			"default above max",
			fmt.Sprintf("default %s must be <= max %s", e.DefaultText, e.MaxText))
	}
	return nil
}

func validateBool(filename string, e *Entry) hcl.Diagnostics {
	// Exactly "true" or "false", case-sensitive.
	if e.ValueText != "true" && e.ValueText != "false" {
		return errAt(KindValue, filename, e.ValueLine,
			"invalid value literal",
			fmt.Sprintf("%q is not a valid bool; only true and false are supported", e.ValueText))
	}
	if e.DefaultText != "true" && e.DefaultText != "false" {
		return errAt(KindValue, filename, e.CommentLine,
			"invalid default literal",
			fmt.Sprintf("%q is not a valid bool; only true and false are supported", e.DefaultText))
	}
	e.Value = cty.BoolVal(e.ValueText == "true")
	e.Default = cty.BoolVal(e.DefaultText == "true")
	if !e.Value.RawEquals(e.Default) {
		return errAt(KindValue, filename, e.ValueLine,
			"value does not equal default",
			fmt.Sprintf("value %s must restate the declared default %s", e.ValueText, e.DefaultText))
	}
	return nil
}

func validateString(filename string, e *Entry) hcl.Diagnostics {
	// One byte of the capacity is reserved for the terminator in the
	// generated fixed-size buffer.
	limit := e.Type.Capacity - 1
	if len(e.ValueText) > limit {
		return errAt(KindValue, filename, e.ValueLine,
			"value too long",
			fmt.Sprintf("value is %d bytes but the capacity of %d allows at most %d", len(e.ValueText), e.Type.Capacity, limit))
	}
	if len(e.DefaultText) > limit {
		return errAt(KindValue, filename, e.CommentLine,
			"default too long",
			fmt.Sprintf("default is %d bytes but the capacity of %d allows at most %d", len(e.DefaultText), e.Type.Capacity, limit))
	}
	e.Value = cty.StringVal(e.ValueText)
	e.Default = cty.StringVal(e.DefaultText)
	if !e.Value.RawEquals(e.Default) {
		return errAt(KindValue, filename, e.ValueLine,
			"value does not equal default",
			fmt.Sprintf("value %q must restate the declared default %q", e.ValueText, e.DefaultText))
	}
	return nil
}
