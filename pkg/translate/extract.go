// Package translate implements the translatable-text extractor, the
// translation-file parser, and the translator that applies a parsed
// translation back onto a dialogue.
package translate

import (
	"github.com/dialoguebranch/dlb-core-go/pkg/model"
)

// SourceTranslatable pairs a Translatable span with the speaker/addressee
// roles in effect where it was found, so the translator can pick the
// context- and gender-appropriate variant. Speaker/addressee are either an
// actual node speaker name or model.ContextUser ("_user") for the player.
type SourceTranslatable struct {
	Speaker   string
	Addressee string
	*model.Translatable
}

// ExtractTranslatables walks every node of a dialogue and returns one
// SourceTranslatable per maximal run of translatable content, in
// depth-first source order. A node's own body is spoken by its header
// speaker to the user; a reply's statement is spoken by the user back to
// that speaker, so speaker/addressee swap for it (§4.6).
func ExtractTranslatables(d *model.Dialogue) []*SourceTranslatable {
	var out []*SourceTranslatable
	for _, node := range d.Nodes {
		out = append(out, extractFromBody(node.Body, node.Header.Speaker, model.ContextUser)...)
	}
	return out
}

func extractFromBody(b *model.Body, speaker, addressee string) []*SourceTranslatable {
	runs := splitTextRuns(b, speaker, addressee)
	var out []*SourceTranslatable

	for i, seg := range b.Segments {
		// Runs that start before this segment come first, so nested
		// if/random results land at their own position in source order.
		for len(runs) > 0 && runs[0].StartIndex < i {
			out = append(out, runs[0])
			runs = runs[1:]
		}
		cs, ok := seg.(*model.CommandSegment)
		if !ok {
			continue
		}
		switch cmd := cs.Command.(type) {
		case *model.IfCommand:
			for _, clause := range cmd.Clauses {
				out = append(out, extractFromBody(clause.Body, speaker, addressee)...)
			}
			if cmd.Else != nil {
				out = append(out, extractFromBody(cmd.Else, speaker, addressee)...)
			}
		case *model.RandomCommand:
			for _, clauseBody := range cmd.Clauses {
				out = append(out, extractFromBody(clauseBody, speaker, addressee)...)
			}
		}
	}
	out = append(out, runs...)

	for _, reply := range b.Replies {
		if reply.Statement != nil {
			// Replies are spoken by the user: roles swap.
			out = append(out, extractFromBody(reply.Statement, addressee, speaker)...)
		}
	}
	return out
}

// splitTextRuns splits a single Body's own Segments into maximal runs of
// translatable content (Text and Input segments), without descending into
// any nested clause or reply body. Set/Action segments, and If/Random
// segments, flush the current run without joining it. A run is only
// emitted when it has content: some text is non-whitespace, or some
// segment is an Input command (§4.6).
func splitTextRuns(b *model.Body, speaker, addressee string) []*SourceTranslatable {
	var out []*SourceTranslatable
	runStart := -1

	flush := func(end int) {
		if runStart < 0 {
			return
		}
		segs := b.Segments[runStart:end]
		if hasTranslatableContent(segs) {
			out = append(out, &SourceTranslatable{
				Speaker:   speaker,
				Addressee: addressee,
				Translatable: &model.Translatable{
					Parent:     b,
					StartIndex: runStart,
					Segments:   segs,
				},
			})
		}
		runStart = -1
	}

	for i, seg := range b.Segments {
		switch s := seg.(type) {
		case *model.TextSegment:
			_ = s
			if runStart < 0 {
				runStart = i
			}
		case *model.CommandSegment:
			if _, ok := s.Command.(*model.InputCommand); ok {
				if runStart < 0 {
					runStart = i
				}
				continue
			}
			flush(i)
		default:
			flush(i)
		}
	}
	flush(len(b.Segments))
	return out
}

func hasTranslatableContent(segs []model.Segment) bool {
	for _, seg := range segs {
		switch s := seg.(type) {
		case *model.TextSegment:
			if s.Text.HasContent() {
				return true
			}
		case *model.CommandSegment:
			if _, ok := s.Command.(*model.InputCommand); ok {
				return true
			}
		}
	}
	return false
}
