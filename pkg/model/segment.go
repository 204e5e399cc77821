package model

import "github.com/dialoguebranch/dlb-core-go/pkg/expr"

// Segment is one element of a Body: either plain (variable-interpolated)
// text or a command. Like Command and NodePointer, it is a
// Go-idiomatic tagged union: an interface with a marker method, switched on
// by callers.
type Segment interface {
	segmentNode()
	// Emit renders the segment back to canonical source text. For a Text
	// segment this is the text with $variable references; for a Command
	// segment this is the full <<...>> form. It is also the textual form
	// used to build a Translatable's canonical string.
	Emit() string
}

// TextSegment wraps a run of interpolated text.
type TextSegment struct {
	Text VariableString
}

func (*TextSegment) segmentNode()    {}
func (s *TextSegment) Emit() string { return s.Text.String() }

// CommandSegment wraps one <<...>> command.
type CommandSegment struct {
	Command Command
}

func (*CommandSegment) segmentNode() {}
func (s *CommandSegment) Emit() string {
	switch c := s.Command.(type) {
	case *IfCommand:
		return c.Emit()
	case *RandomCommand:
		return c.Emit()
	case *SetCommand:
		return c.Emit()
	case *InputCommand:
		return c.Emit()
	case *ActionCommand:
		return c.Emit()
	default:
		return ""
	}
}

// CloneSegment deep-copies a Segment so a translated Dialogue shares no
// mutable state with its source.
func CloneSegment(s Segment) Segment {
	switch v := s.(type) {
	case *TextSegment:
		return &TextSegment{Text: VariableString{Parts: append([]VariablePart(nil), v.Text.Parts...)}}
	case *CommandSegment:
		return &CommandSegment{Command: cloneCommand(v.Command)}
	default:
		return s
	}
}

func cloneCommand(c Command) Command {
	switch v := c.(type) {
	case *IfCommand:
		clauses := make([]IfClause, len(v.Clauses))
		for i, cl := range v.Clauses {
			clauses[i] = IfClause{Condition: cl.Condition, Body: cl.Body.Clone()}
		}
		var elseBody *Body
		if v.Else != nil {
			elseBody = v.Else.Clone()
		}
		return &IfCommand{Clauses: clauses, Else: elseBody}
	case *RandomCommand:
		clauses := make([]*Body, len(v.Clauses))
		for i, cl := range v.Clauses {
			clauses[i] = cl.Clone()
		}
		return &RandomCommand{Clauses: clauses}
	case *SetCommand:
		// Assignments hold immutable expr.Expression trees built once at
		// parse time and never mutated afterwards, so the clone can safely
		// share them; only the slice header is copied.
		return &SetCommand{Assignments: append([]*expr.Assignment(nil), v.Assignments...)}
	case *InputCommand:
		opts := make(map[string]string, len(v.Options))
		for k, val := range v.Options {
			opts[k] = val
		}
		return &InputCommand{
			InputType:   v.InputType,
			Variable:    v.Variable,
			Options:     opts,
			OptionOrder: append([]string(nil), v.OptionOrder...),
		}
	case *ActionCommand:
		return &ActionCommand{Type: v.Type, Arguments: append([]string(nil), v.Arguments...)}
	default:
		return c
	}
}
