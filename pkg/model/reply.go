package model

import "strings"

// Reply is one user-selectable outgoing edge from a node. A
// reply with a nil Statement is an "auto-forward": it carries no spoken
// line and is taken immediately by a runtime (out of scope for this
// library, but the shape matters for translation: an auto-forward yields
// no translatables).
type Reply struct {
	ID        int
	Statement *Body
	Next      NodePointer
	Actions   []*ActionCommand
}

// Clone performs a structural deep copy.
func (r *Reply) Clone() *Reply {
	if r == nil {
		return nil
	}
	clone := &Reply{
		ID:      r.ID,
		Next:    r.Next, // NodePointer values are immutable once constructed
		Actions: make([]*ActionCommand, len(r.Actions)),
	}
	if r.Statement != nil {
		clone.Statement = r.Statement.Clone()
	}
	for i, a := range r.Actions {
		clone.Actions[i] = cloneCommand(a).(*ActionCommand)
	}
	return clone
}

// Emit renders the reply's canonical `[[statement|next]]` source form. A
// reply with no statement emits as `[[|next]]`.
func (r *Reply) Emit() string {
	var b strings.Builder
	b.WriteString("[[")
	if r.Statement != nil {
		b.WriteString(r.Statement.Emit())
	}
	b.WriteString("|")
	b.WriteString(emitNodePointer(r.Next))
	for _, a := range r.Actions {
		b.WriteString("|")
		b.WriteString(a.Emit())
	}
	b.WriteString("]]")
	return b.String()
}

func emitNodePointer(p NodePointer) string {
	switch v := p.(type) {
	case *InternalPointer:
		return v.TargetNodeID
	case *ExternalPointer:
		return v.TargetDialogueRef + "." + v.TargetNodeID
	default:
		return ""
	}
}
