package model

import "strings"

// VariablePart is one fragment of a VariableString: either a raw text run
// or a reference to a variable by name (the part written as $name in
// source). Exactly one of the two is meaningful, selected by IsVariable.
type VariablePart struct {
	Text       string
	IsVariable bool
}

// VariableString is an ordered sequence of text fragments and variable
// references, as produced by the body tokenizer for any run of plain text
// within a node body, command argument, or reply statement.
type VariableString struct {
	Parts []VariablePart
}

// AppendText appends a text fragment, merging it into the previous fragment
// if that one was also plain text (keeps the part list minimal, the way a
// hand-written tokenizer naturally coalesces adjacent runs).
func (v *VariableString) AppendText(s string) {
	if s == "" {
		return
	}
	if n := len(v.Parts); n > 0 && !v.Parts[n-1].IsVariable {
		v.Parts[n-1].Text += s
		return
	}
	v.Parts = append(v.Parts, VariablePart{Text: s})
}

// AppendVariable appends a variable reference by name.
func (v *VariableString) AppendVariable(name string) {
	v.Parts = append(v.Parts, VariablePart{Text: name, IsVariable: true})
}

// HasContent reports whether the string carries any variable reference or
// any non-whitespace text.
func (v *VariableString) HasContent() bool {
	for _, p := range v.Parts {
		if p.IsVariable {
			return true
		}
		if strings.TrimSpace(p.Text) != "" {
			return true
		}
	}
	return false
}

// String renders the canonical textual form: raw text verbatim, variables
// as $name. This is the form used for translatable canonical strings and
// for the round-trip emitter.
func (v VariableString) String() string {
	var b strings.Builder
	for _, p := range v.Parts {
		if p.IsVariable {
			b.WriteByte('$')
			b.WriteString(p.Text)
		} else {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// IsEmpty reports whether the string has no parts at all (not even empty
// whitespace-only text), distinct from HasContent which also rejects
// whitespace-only content.
func (v VariableString) IsEmpty() bool {
	return len(v.Parts) == 0
}
