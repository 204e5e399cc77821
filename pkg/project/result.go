package project

import (
	"github.com/dialoguebranch/dlb-core-go/pkg/dlberr"
	"github.com/dialoguebranch/dlb-core-go/pkg/model"
	"github.com/google/uuid"
)

// ParserResult is the linker's full report for one run: the linked
// project (however much of it could be built) plus every error and
// warning collected across every file. Parse errors are keyed by the
// FileDescription of the file that produced them; Problems and Warnings
// are flat lists. RunID lets a caller correlate this result
// with log lines emitted during the same run, the same way a per-request
// correlation ID ties a request's log lines together.
type ParserResult struct {
	RunID    uuid.UUID
	Project  *model.Project
	Errors   map[model.FileDescription][]*dlberr.ParseError
	Problems []error
	Warnings []string
}

func newParserResult(sourceLanguage string) *ParserResult {
	return &ParserResult{
		RunID:   uuid.New(),
		Project: model.NewProject(sourceLanguage),
		Errors:  make(map[model.FileDescription][]*dlberr.ParseError),
	}
}

// HasErrors reports whether linking produced any file-level parse error or
// project-level problem.
func (r *ParserResult) HasErrors() bool {
	if len(r.Problems) > 0 {
		return true
	}
	for _, errs := range r.Errors {
		if len(errs) > 0 {
			return true
		}
	}
	return false
}
