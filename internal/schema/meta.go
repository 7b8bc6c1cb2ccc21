package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Metadata keys consumed downstream. Anything else is accepted and silently
// ignored.
const (
	metaType    = "type"
	metaDefault = "default"
	metaMin     = "min"
	metaMax     = "max"
)

// metaKeyAhead matches the start of a fresh "key=value" (or "key:...")
// fragment. A comma splits the metadata list only when what follows looks
// like one, so values containing commas survive the split.
var metaKeyAhead = regexp.MustCompile(`^\s*[a-zA-Z]+[:=]`)

// splitMetaList performs the lookahead comma split over the text to the
// right of the comment's "key:".
func splitMetaList(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && metaKeyAhead.MatchString(s[i+1:]) {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// parseMetaList turns a comment's metadata segment into a key/value mapping.
// Keys are lower-cased and last-write-wins on repeats. A non-empty fragment
// without '=' is fatal; empty fragments are skipped.
func parseMetaList(filename string, line int, s string) (map[string]string, hcl.Diagnostics) {
	meta := make(map[string]string)
	for _, fragment := range splitMetaList(s) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		k, v, ok := strings.Cut(fragment, "=")
		if !ok {
			return nil, errAt(KindStructural, filename, line,
				"malformed comment metadata",
				fmt.Sprintf("fragment %q has no '='; expected '; key: type=..., default=...[, min=..., max=...]'", fragment))
		}
		meta[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return meta, nil
}
