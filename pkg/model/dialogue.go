package model

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// startFolder case-folds node titles for the "Start" comparison: exactly
// one node must have the title Start, matched case-insensitively against
// the literal "Start". It uses golang.org/x/text/cases instead of a
// strings.EqualFold one-off; header keys are lower-cased separately by the
// script parser with strings.ToLower.
var startFolder = cases.Fold(language.Und)

// Dialogue is a single parsed .dlb file: a name (its logical path), the
// language it was written in, and its ordered set of Nodes.
type Dialogue struct {
	Name         string
	LanguageCode string
	Nodes        []*Node

	InternalReferences []*InternalPointer
	ExternalReferences []*ExternalPointer

	titleIndex map[string]int
}

// NewDialogue returns an empty dialogue ready to receive nodes via AddNode.
func NewDialogue(name, languageCode string) *Dialogue {
	return &Dialogue{
		Name:         name,
		LanguageCode: languageCode,
		titleIndex:   make(map[string]int),
	}
}

// AddNode appends a node, enforcing the "node titles are unique within a
// dialogue" invariant.
func (d *Dialogue) AddNode(n *Node) error {
	if d.titleIndex == nil {
		d.titleIndex = make(map[string]int)
	}
	if _, exists := d.titleIndex[n.Header.Title]; exists {
		return fmt.Errorf("duplicate node title %q in dialogue %q", n.Header.Title, d.Name)
	}
	d.titleIndex[n.Header.Title] = len(d.Nodes)
	d.Nodes = append(d.Nodes, n)
	return nil
}

// Node looks up a node by exact title.
func (d *Dialogue) Node(title string) (*Node, bool) {
	i, ok := d.titleIndex[title]
	if !ok {
		return nil, false
	}
	return d.Nodes[i], true
}

// Finalize validates the "exactly one Start node" invariant.
// Call it once all of a dialogue's nodes have been added.
func (d *Dialogue) Finalize() error {
	count := 0
	for _, n := range d.Nodes {
		if startFolder.String(n.Header.Title) == startFolder.String("Start") {
			count++
		}
	}
	switch {
	case count == 0:
		return fmt.Errorf("dialogue %q has no node titled Start", d.Name)
	case count > 1:
		return fmt.Errorf("dialogue %q has %d nodes titled Start, expected exactly one", d.Name, count)
	default:
		return nil
	}
}

// Clone performs a structural deep copy, the starting point for the
// translator's "never mutate the source" guarantee.
func (d *Dialogue) Clone() *Dialogue {
	clone := NewDialogue(d.Name, d.LanguageCode)
	for _, n := range d.Nodes {
		// AddNode cannot fail here: uniqueness was already validated on the
		// source dialogue.
		_ = clone.AddNode(n.Clone())
	}
	clone.InternalReferences = append([]*InternalPointer(nil), d.InternalReferences...)
	clone.ExternalReferences = append([]*ExternalPointer(nil), d.ExternalReferences...)
	return clone
}
