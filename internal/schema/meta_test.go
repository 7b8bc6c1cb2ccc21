package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMetaList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "type=int, default=5, min=0, max=9",
			want:  []string{"type=int", " default=5", " min=0", " max=9"},
		},
		{
			name:  "comma inside a value survives",
			input: "type=string:20, default=a,b c, max=9",
			want:  []string{"type=string:20", " default=a,b c", " max=9"},
		},
		{
			name:  "colon also counts as a key introducer",
			input: "type=int, note:remark",
			want:  []string{"type=int", " note:remark"},
		},
		{
			name:  "trailing comma is not a split point",
			input: "default=a,",
			want:  []string{"default=a,"},
		},
		{
			name:  "single fragment",
			input: "type=bool",
			want:  []string{"type=bool"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, splitMetaList(tt.input))
		})
	}
}

func TestParseMetaList(t *testing.T) {
	t.Parallel()

	meta, diags := parseMetaList("s.ini", 2, "type=int, default=5, min=0, max=9")
	require.False(t, diags.HasErrors())
	assert.Equal(t, map[string]string{
		"type":    "int",
		"default": "5",
		"min":     "0",
		"max":     "9",
	}, meta)
}

func TestParseMetaList_KeysLowerCasedAndLastWriteWins(t *testing.T) {
	t.Parallel()

	meta, diags := parseMetaList("s.ini", 2, "Type=int, TYPE=bool, default=true")
	require.False(t, diags.HasErrors())
	assert.Equal(t, "bool", meta["type"])
}

func TestParseMetaList_UnknownKeysAccepted(t *testing.T) {
	t.Parallel()

	meta, diags := parseMetaList("s.ini", 2, "type=int, default=1, min=0, max=2, unit=seconds")
	require.False(t, diags.HasErrors())
	assert.Equal(t, "seconds", meta["unit"], "unrecognized keys are kept, consumers simply ignore them")
}

func TestParseMetaList_FragmentWithoutEquals(t *testing.T) {
	t.Parallel()

	// "note:remark" is split off by the lookahead but carries no '='.
	_, diags := parseMetaList("s.ini", 7, "type=int, note:remark")
	require.True(t, diags.HasErrors())

	kind, ok := KindOf(diags[0])
	require.True(t, ok)
	assert.Equal(t, KindStructural, kind)
	assert.Equal(t, 7, diags[0].Subject.Start.Line)
}

func TestParseMetaList_BareWordIsNotASplitPoint(t *testing.T) {
	t.Parallel()

	// "default" with no '=' does not introduce a fresh fragment, so the
	// comma stays inside the previous value.
	meta, diags := parseMetaList("s.ini", 2, "type=int, default")
	require.False(t, diags.HasErrors())
	assert.Equal(t, "int, default", meta["type"])
}
