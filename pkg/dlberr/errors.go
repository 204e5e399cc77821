// Package dlberr defines the flat error taxonomy shared by every parsing and
// linking stage of a DialogueBranch project: syntactic errors inside a
// single file, dangling references between files, and configuration
// mistakes. None of these are thrown as exceptions; callers collect them in
// slices and decide whether any of it is fatal.
package dlberr

import "fmt"

// Position locates an error inside a source file by 1-based line and
// column, the way the standard library's text/scanner does.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is a syntactic or structural problem found while parsing a
// single script or translation file. node_title is empty when the error was
// found outside any node (e.g. a malformed header before the first `---`).
type ParseError struct {
	File      string
	NodeTitle string
	Pos       Position
	Message   string
	Cause     error
}

func (e *ParseError) Error() string {
	if e.NodeTitle != "" {
		return fmt.Sprintf("%s:%s: node %q: %s", e.File, e.Pos, e.NodeTitle, e.Message)
	}
	return fmt.Sprintf("%s:%s: %s", e.File, e.Pos, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ReferenceError reports a well-formed node pointer whose target dialogue or
// node does not exist. The linker itself does not construct this type: it
// reports a broken reference as a warning string by default, and as a
// ParseError under StrictReferenceResolution (see DESIGN.md "Open
// Questions resolved").
type ReferenceError struct {
	OriginFile string
	OriginNode string
	Target     string
	Message    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: node %q: %s (target %q)", e.OriginFile, e.OriginNode, e.Message, e.Target)
}

// DuplicateLanguageCodeError reports two language declarations (either two
// language-map entries, or, when there is no language map, two top-level
// language directories whose names canonicalize to the same code) sharing
// the same code.
type DuplicateLanguageCodeError struct {
	Code  string
	First string
	Again string
}

func (e *DuplicateLanguageCodeError) Error() string {
	return fmt.Sprintf("duplicate language code %q: declared by both %q and %q", e.Code, e.First, e.Again)
}

// InvalidInputError is surfaced only by external collaborators (CLI argument
// validation, config loading) — the parsing/linking core never raises it
// itself, but it is part of the taxonomy so callers can type-switch
// uniformly across every error this library and its collaborators produce.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Message)
}

// VariableError is raised by a runtime expression evaluator operating
// against a live variable store. This core never evaluates expressions;
// the type is retained only so external consumers share one error
// taxonomy.
type VariableError struct {
	VariableName string
	Message      string
}

func (e *VariableError) Error() string {
	return fmt.Sprintf("variable %q: %s", e.VariableName, e.Message)
}
