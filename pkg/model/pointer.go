package model

import (
	"errors"
	"path"
	"strings"
)

// NodePointer is a typed reference to another node, either within the same
// dialogue (InternalPointer) or in another dialogue (ExternalPointer).
type NodePointer interface {
	nodePointerNode()
}

// InternalPointer targets a node in the same dialogue as its origin.
type InternalPointer struct {
	OriginNodeID string
	TargetNodeID string
}

func (*InternalPointer) nodePointerNode() {}

// ExternalPointer targets a node in another dialogue. AbsoluteTargetDialogue
// is computed once at construction via ResolveDialogueRef and
// never recomputed, so it remains stable across re-parses as long as the
// origin dialogue's own path does not change.
type ExternalPointer struct {
	OriginDialogue         string
	OriginNodeID           string
	TargetDialogueRef      string // as written in source
	AbsoluteTargetDialogue string
	TargetNodeID           string
}

func (*ExternalPointer) nodePointerNode() {}

// NewExternalPointer resolves targetDialogueRef against originDialogue's
// path and constructs the pointer, or returns an error if the reference is
// malformed (empty name, or ".." ascending above the language root).
func NewExternalPointer(originDialogue, originNodeID, targetDialogueRef, targetNodeID string) (*ExternalPointer, error) {
	abs, err := ResolveDialogueRef(originDialogue, targetDialogueRef)
	if err != nil {
		return nil, err
	}
	return &ExternalPointer{
		OriginDialogue:         originDialogue,
		OriginNodeID:           originNodeID,
		TargetDialogueRef:      targetDialogueRef,
		AbsoluteTargetDialogue: abs,
		TargetNodeID:           targetNodeID,
	}, nil
}

// ResolveDialogueRef applies the path rules for an external dialogue
// reference: a leading "/" makes ref project-root-absolute; otherwise it
// is resolved relative to
// originDialoguePath's directory, honoring "." and ".." segments. ".." may
// not ascend above the language root, and the fully resolved name may not
// be empty.
func ResolveDialogueRef(originDialoguePath, ref string) (string, error) {
	if ref == "" {
		return "", errors.New("empty dialogue name")
	}

	var base []string
	var rest string
	if strings.HasPrefix(ref, "/") {
		rest = strings.TrimPrefix(ref, "/")
	} else {
		dir := path.Dir(originDialoguePath)
		if dir == "." {
			dir = ""
		}
		base = splitNonEmpty(dir)
		rest = ref
	}

	stack := append([]string(nil), base...)
	for _, seg := range splitNonEmpty(rest) {
		switch seg {
		case ".":
			// stay
		case "..":
			if len(stack) == 0 {
				return "", errors.New("'..' traversal ascends above the language root")
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, seg)
		}
	}

	if len(stack) == 0 {
		return "", errors.New("empty dialogue name")
	}
	return strings.Join(stack, "/"), nil
}

func splitNonEmpty(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
