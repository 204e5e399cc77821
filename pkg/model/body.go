package model

import "strings"

// Body is an ordered sequence of Segments plus the Replies available at
// this point in the dialogue. The node body itself and every
// nested if/random clause and reply statement share this same type.
type Body struct {
	Segments []Segment
	Replies  []*Reply
}

// NewBody returns an empty, legal Body. Empty bodies are legal.
func NewBody() *Body {
	return &Body{}
}

// AppendSegment appends one segment in source order.
func (b *Body) AppendSegment(s Segment) {
	b.Segments = append(b.Segments, s)
}

// AddReply appends a reply, auto-assigning the next reply_id starting at 1.
func (b *Body) AddReply(r *Reply) {
	r.ID = len(b.Replies) + 1
	b.Replies = append(b.Replies, r)
}

// Clone performs a structural deep copy so a translated Dialogue never
// shares mutable state with its source.
func (b *Body) Clone() *Body {
	if b == nil {
		return nil
	}
	clone := &Body{
		Segments: make([]Segment, len(b.Segments)),
		Replies:  make([]*Reply, len(b.Replies)),
	}
	for i, s := range b.Segments {
		clone.Segments[i] = CloneSegment(s)
	}
	for i, r := range b.Replies {
		clone.Replies[i] = r.Clone()
	}
	return clone
}

// Emit renders the body back to canonical source text: every segment's
// Emit() form concatenated, followed by every reply's canonical
// `[[statement|next]]` form, so that `parse(Emit(parse(S))) == parse(S)`
// is a testable property.
func (b *Body) Emit() string {
	var out strings.Builder
	for _, s := range b.Segments {
		out.WriteString(s.Emit())
	}
	for _, r := range b.Replies {
		out.WriteString(r.Emit())
	}
	return out.String()
}

// ReplaceRange removes the segments in [start, start+count) and inserts
// replacement in their place. It returns nothing; a caller making several
// splices in the same body applies them back-to-front so earlier start
// indices stay valid. This is the sole primitive the translator (C8)
// uses to splice a translation into a cloned body.
func (b *Body) ReplaceRange(start, count int, replacement []Segment) {
	tail := append([]Segment(nil), b.Segments[start+count:]...)
	b.Segments = append(b.Segments[:start:start], replacement...)
	b.Segments = append(b.Segments, tail...)
}
