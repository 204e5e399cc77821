package model

import (
	"fmt"
	"strings"

	"github.com/dialoguebranch/dlb-core-go/pkg/expr"
)

// Command is the tagged union of `<<...>>` command kinds: If,
// Random, Set, Input, Action. As with Expression, Go's lack of sum types
// means each variant is its own struct satisfying a marker method, switched
// on by callers (the extractor in pkg/translate, the emitter in
// pkg/script).
type Command interface {
	commandNode()
	// Name is the command keyword as written in source ("if", "random",
	// "set", "input", "action").
	Name() string
}

// IfClause pairs one `if`/`elseif` condition with the body taken when it is
// the first clause to evaluate true.
type IfClause struct {
	Condition expr.Expression
	Body      *Body
}

// IfCommand models `<<if>> ... <<elseif>> ... <<else>> ... <<endif>>`. At
// least one clause is required; Else is nil when no `<<else>>`
// branch was written.
type IfCommand struct {
	Clauses []IfClause
	Else    *Body
}

func (*IfCommand) commandNode() {}
func (*IfCommand) Name() string { return "if" }

// RandomCommand models `<<random>> ... <<or>> ... <<endrandom>>`; it
// requires at least two clauses.
type RandomCommand struct {
	Clauses []*Body
}

func (*RandomCommand) commandNode() {}
func (*RandomCommand) Name() string { return "random" }

// SetCommand models `<<set $a = 1; $b += 2>>`.
type SetCommand struct {
	Assignments []*expr.Assignment
}

func (*SetCommand) commandNode() {}
func (*SetCommand) Name() string { return "set" }

// InputCommand models `<<input type $variable key="value" ...>>`. It is
// treated as one opaque translatable unit: its UI text (e.g.
// option labels) lives in Options, not broken into nested segments.
type InputCommand struct {
	InputType string
	Variable  string
	Options   map[string]string
	// OptionOrder preserves source order of Options' keys, since Go maps do
	// not, and the canonical emitter must reproduce source order exactly.
	OptionOrder []string
}

func (*InputCommand) commandNode() {}
func (*InputCommand) Name() string { return "input" }

// ActionCommand models `<<action type arg1 arg2 ...>>`, an opaque,
// non-translatable side effect.
type ActionCommand struct {
	Type      string
	Arguments []string
}

func (*ActionCommand) commandNode() {}
func (*ActionCommand) Name() string { return "action" }

// Emit renders a command back to its canonical `<<...>>` source form, used
// by pkg/script's round-trip emitter and by the translatable extractor to
// compute an Input command's textual form.
func (c *IfCommand) Emit() string {
	var b strings.Builder
	for i, clause := range c.Clauses {
		if i == 0 {
			b.WriteString("<<if ")
		} else {
			b.WriteString("<<elseif ")
		}
		b.WriteString(clause.Condition.String())
		b.WriteString(">>")
		b.WriteString(clause.Body.Emit())
	}
	if c.Else != nil {
		b.WriteString("<<else>>")
		b.WriteString(c.Else.Emit())
	}
	b.WriteString("<<endif>>")
	return b.String()
}

func (c *RandomCommand) Emit() string {
	var b strings.Builder
	for i, clause := range c.Clauses {
		if i == 0 {
			b.WriteString("<<random>>")
		} else {
			b.WriteString("<<or>>")
		}
		b.WriteString(clause.Emit())
	}
	b.WriteString("<<endrandom>>")
	return b.String()
}

func (c *SetCommand) Emit() string {
	var b strings.Builder
	b.WriteString("<<set ")
	for i, a := range c.Assignments {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(">>")
	return b.String()
}

func (c *InputCommand) Emit() string {
	var b strings.Builder
	b.WriteString("<<input ")
	b.WriteString(c.InputType)
	b.WriteString(" $")
	b.WriteString(c.Variable)
	for _, k := range c.OptionOrder {
		fmt.Fprintf(&b, " %s=%q", k, c.Options[k])
	}
	b.WriteString(">>")
	return b.String()
}

func (c *ActionCommand) Emit() string {
	var b strings.Builder
	b.WriteString("<<action ")
	b.WriteString(c.Type)
	for _, a := range c.Arguments {
		b.WriteString(" ")
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			fmt.Fprintf(&b, "%q", a)
		} else {
			b.WriteString(a)
		}
	}
	b.WriteString(">>")
	return b.String()
}
