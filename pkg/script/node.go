package script

import (
	"fmt"
	"strings"

	"github.com/dialoguebranch/dlb-core-go/pkg/dlberr"
	"github.com/dialoguebranch/dlb-core-go/pkg/model"
)

// ParserResult is the outcome of parsing one .dlb file: a
// dialogue whose nodes may be incomplete where errors were recovered from,
// plus every error and warning collected along the way. Parsing never
// aborts on the first error: a malformed node is skipped and the parser
// resumes at the next "===" delimiter, so a single typo does not hide
// every other problem in the file.
type ParserResult struct {
	Dialogue *model.Dialogue
	Errors   []*dlberr.ParseError
	Warnings []string
}

// ParseScript parses the full text of a .dlb file into a Dialogue. name is
// the dialogue's logical path (e.g. "zone1/npc") used both as the
// Dialogue's own name and as the origin for any external node pointers its
// replies contain.
func ParseScript(src, name, languageCode string) *ParserResult {
	p := &nodeParser{
		dialogue: model.NewDialogue(name, languageCode),
		lines:    splitLines(src),
	}
	p.run()
	return &ParserResult{Dialogue: p.dialogue, Errors: p.errors, Warnings: p.warnings}
}

type nodeParser struct {
	dialogue *model.Dialogue
	lines    []string
	errors   []*dlberr.ParseError
	warnings []string
}

func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

func (p *nodeParser) addError(line int, format string, args ...interface{}) {
	p.errors = append(p.errors, &dlberr.ParseError{
		File:    p.dialogue.Name,
		Pos:     dlberr.Position{Line: line, Column: 1},
		Message: fmt.Sprintf(format, args...),
	})
}

// run walks the file line by line, splitting it into node blocks at "==="
// delimiters: a node is a run of header lines, a "---"
// separator, and a body running to the next "===" or EOF.
func (p *nodeParser) run() {
	i := 0
	n := len(p.lines)
	for i < n {
		// Skip blank lines and stray delimiters between nodes.
		for i < n && (strings.TrimSpace(p.lines[i]) == "" || strings.TrimSpace(p.lines[i]) == "===") {
			i++
		}
		if i >= n {
			break
		}
		start := i
		headerEnd := -1
		for j := i; j < n; j++ {
			if strings.TrimSpace(p.lines[j]) == "---" {
				headerEnd = j
				break
			}
			if strings.TrimSpace(p.lines[j]) == "===" {
				break
			}
		}
		if headerEnd < 0 {
			p.addError(start+1, "node is missing a '---' header separator")
			for i < n && strings.TrimSpace(p.lines[i]) != "===" {
				i++
			}
			continue
		}
		bodyEnd := n
		for j := headerEnd + 1; j < n; j++ {
			if strings.TrimSpace(p.lines[j]) == "===" {
				bodyEnd = j
				break
			}
		}
		p.parseNode(p.lines[start:headerEnd], start+1, strings.Join(p.lines[headerEnd+1:bodyEnd], "\n"), headerEnd+2)
		i = bodyEnd + 1
	}
}

func (p *nodeParser) parseNode(headerLines []string, headerStartLine int, bodyText string, bodyStartLine int) {
	header := model.NewHeader()
	seen := map[string]bool{}
	for idx, raw := range headerLines {
		line := headerStartLine + idx
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		colon := strings.Index(raw, ":")
		if colon < 0 {
			p.addError(line, "malformed header line %q (expected 'key: value')", trimmed)
			continue
		}
		key := strings.ToLower(strings.TrimSpace(raw[:colon]))
		value := strings.TrimSpace(raw[colon+1:])
		if seen[key] {
			p.addError(line, "duplicate header key %q", key)
			continue
		}
		seen[key] = true
		switch key {
		case "title":
			header.Title = value
		case "speaker":
			header.Speaker = value
		case "colorid", "color":
			v := value
			header.ColorID = &v
		default:
			header.SetExtra(key, value)
		}
	}
	if header.Title == "" {
		p.addError(headerStartLine, "node is missing a required 'title' header")
		return
	}
	if !model.TitleIdentifierPattern.MatchString(header.Title) {
		p.addError(headerStartLine, "node title %q is not a valid identifier", header.Title)
		return
	}
	if header.Speaker == "" {
		p.addError(headerStartLine, "node %q is missing a required 'speaker' header", header.Title)
	}

	bp := NewBodyParser(bodyText, p.dialogue.Name, header.Title, nil, p.dialogue.Name,
		&p.dialogue.InternalReferences, &p.dialogue.ExternalReferences)
	body, err := bp.ParseBody()
	if err != nil {
		p.addError(bodyStartLine, "%s", err.Error())
		return
	}
	p.errors = append(p.errors, bp.Errors...)

	node := &model.Node{Header: header, Body: body}
	if err := p.dialogue.AddNode(node); err != nil {
		p.addError(headerStartLine, "%s", err.Error())
	}
}
