package script

import (
	"fmt"
	"strings"

	"github.com/dialoguebranch/dlb-core-go/pkg/model"
)

// Emit renders a Dialogue back to canonical .dlb source text: the textual
// inverse of ParseScript, modulo formatting choices (header key order,
// whitespace) that the original source is not required to preserve. It
// exists so tests can assert a parse-then-emit-then-parse fixed point.
func Emit(d *model.Dialogue) string {
	var sb strings.Builder
	for i, node := range d.Nodes {
		if i > 0 {
			sb.WriteString("===\n")
		}
		emitHeader(&sb, node.Header)
		sb.WriteString("---\n")
		body := node.Body.Emit()
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("===\n")
	return sb.String()
}

func emitHeader(sb *strings.Builder, h model.Header) {
	fmt.Fprintf(sb, "title: %s\n", h.Title)
	if h.Speaker != "" {
		fmt.Fprintf(sb, "speaker: %s\n", h.Speaker)
	}
	if h.ColorID != nil {
		fmt.Fprintf(sb, "colorid: %s\n", *h.ColorID)
	}
	for _, key := range h.ExtraOrder {
		fmt.Fprintf(sb, "%s: %s\n", key, h.Extra[key])
	}
}
