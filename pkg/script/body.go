package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dialoguebranch/dlb-core-go/pkg/dlberr"
	"github.com/dialoguebranch/dlb-core-go/pkg/expr"
	"github.com/dialoguebranch/dlb-core-go/pkg/model"
)

// BodyParser consumes a Tokenizer's stream into a *model.Body. It is
// shared, unmodified in shape, by both the node/script parser (no command
// whitelist) and the translation-file parser (which whitelists only
// "input").
type BodyParser struct {
	tok       *Tokenizer
	file      string
	nodeTitle string
	whitelist map[string]bool // nil = no restriction beyond the fixed grammar

	originDialogue string
	internalRefs   *[]*model.InternalPointer
	externalRefs   *[]*model.ExternalPointer

	Errors []*dlberr.ParseError
}

// NewBodyParser builds a body parser for the body text already extracted
// between a node's `---` and the next `===`/EOF (or, for C7, between a
// translation file's JSON string value).
//
// originDialogue and the ref slices may be zero/nil when the parser is used
// outside the context of a linked project (e.g. a translation-file body,
// which never contains replies or node pointers).
func NewBodyParser(src, file, nodeTitle string, whitelist map[string]bool, originDialogue string, internalRefs *[]*model.InternalPointer, externalRefs *[]*model.ExternalPointer) *BodyParser {
	return &BodyParser{
		tok:            NewTokenizer(src),
		file:           file,
		nodeTitle:      nodeTitle,
		whitelist:      whitelist,
		originDialogue: originDialogue,
		internalRefs:   internalRefs,
		externalRefs:   externalRefs,
	}
}

func (p *BodyParser) addError(pos dlberr.Position, format string, args ...interface{}) {
	p.Errors = append(p.Errors, &dlberr.ParseError{
		File: p.file, NodeTitle: p.nodeTitle, Pos: pos, Message: fmt.Sprintf(format, args...),
	})
}

// ParseBody parses a full top-level or if/random clause body: replies are
// allowed, and parsing runs to EOF.
func (p *BodyParser) ParseBody() (*model.Body, error) {
	body, _, _, err := p.parseBodyInner(true, nil, false)
	return body, err
}

type terminator int

const (
	termEOF terminator = iota
	termStopWord
	termReplySeparator
	termReplyEnd
)

type pendingCommand struct {
	name      string
	argTokens []Token
	pos       dlberr.Position
}

// parseBodyInner is the shared engine behind every body-shaped parse in this
// package: a node's top-level body, an if/random clause body, and the
// pipe-delimited sections of a reply.
//
// allowReplies is false while parsing a reply's own sections: a reply's
// statement and action sections may not themselves contain replies.
// stopWords, when non-nil, makes an unconsumed
// <<name ...>> command whose name is in stopWords end the body instead of
// being parsed as a segment — used by if/random to find their own
// elseif/else/endif/or/endrandom markers. stopAtReplyDelims makes a bare
// REPLY_SEPARATOR/REPLY_END end the body instead of erroring — used while
// scanning the sections inside an already-open [[...]] reply.
func (p *BodyParser) parseBodyInner(allowReplies bool, stopWords map[string]bool, stopAtReplyDelims bool) (*model.Body, *pendingCommand, terminator, error) {
	body := model.NewBody()
	var cur model.VariableString

	flush := func() {
		if !cur.IsEmpty() {
			body.AppendSegment(&model.TextSegment{Text: cur})
			cur = model.VariableString{}
		}
	}

	for {
		tok, err := p.tok.Next()
		if err != nil {
			return body, nil, termEOF, err
		}
		switch tok.Type {
		case TokenEOF:
			flush()
			return body, nil, termEOF, nil
		case TokenText:
			cur.AppendText(tok.Literal)
		case TokenVariable:
			cur.AppendVariable(tok.Literal)
		case TokenNewline:
			cur.AppendText("\n")
		case TokenCommandStart:
			flush()
			name, argTokens, _, err := p.scanCommandHeader()
			if err != nil {
				return body, nil, termEOF, err
			}
			lname := strings.ToLower(name)
			if stopWords != nil && stopWords[lname] {
				return body, &pendingCommand{name: lname, argTokens: argTokens, pos: tok.Pos}, termStopWord, nil
			}
			seg, perr := p.dispatchCommand(lname, argTokens, tok.Pos)
			if perr != nil {
				p.Errors = append(p.Errors, perr)
				continue
			}
			if seg != nil {
				body.AppendSegment(seg)
			}
		case TokenReplyStart:
			if !allowReplies {
				p.addError(tok.Pos, "nested replies are not allowed inside a reply")
				continue
			}
			flush()
			reply, err := p.parseReply(tok.Pos)
			if err != nil {
				return body, nil, termEOF, err
			}
			if reply != nil {
				body.AddReply(reply)
			}
		case TokenReplySeparator:
			if stopAtReplyDelims {
				flush()
				return body, nil, termReplySeparator, nil
			}
			p.addError(tok.Pos, "unexpected '|' outside of a reply")
		case TokenReplyEnd:
			if stopAtReplyDelims {
				flush()
				return body, nil, termReplyEnd, nil
			}
			p.addError(tok.Pos, "unexpected ']]' with no matching '[['")
		case TokenCommandEnd:
			p.addError(tok.Pos, "unexpected '>>' with no matching '<<'")
		default:
			p.addError(tok.Pos, "unexpected token")
		}
	}
}

// scanCommandHeader consumes tokens from just after COMMAND_START through
// the matching COMMAND_END, returning the command name (the first token,
// which must be plain text) and the remaining tokens as arguments.
func (p *BodyParser) scanCommandHeader() (string, []Token, dlberr.Position, error) {
	var name string
	var args []Token
	first := true
	for {
		tok, err := p.tok.Next()
		if err != nil {
			return "", nil, dlberr.Position{}, err
		}
		if tok.Type == TokenEOF {
			return "", nil, dlberr.Position{}, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: tok.Pos, Message: "unterminated '<<' command"}
		}
		if tok.Type == TokenCommandEnd {
			return name, args, tok.Pos, nil
		}
		if first {
			if tok.Type != TokenText {
				return "", nil, dlberr.Position{}, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: tok.Pos, Message: "expected a command name after '<<'"}
			}
			name = tok.Literal
			first = false
			continue
		}
		args = append(args, tok)
	}
}

func (p *BodyParser) dispatchCommand(name string, args []Token, startPos dlberr.Position) (model.Segment, *dlberr.ParseError) {
	switch name {
	case "elseif", "else", "endif", "or", "endrandom":
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: fmt.Sprintf("'%s' with no matching opening command", name)}
	}
	if p.whitelist != nil && !p.whitelist[name] {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: fmt.Sprintf("command %q is not allowed here", name)}
	}
	switch name {
	case "if":
		return p.parseIf(args, startPos)
	case "random":
		return p.parseRandom(args, startPos)
	case "set":
		return p.parseSet(args, startPos)
	case "input":
		return p.parseInput(args, startPos)
	case "action":
		return p.parseAction(args, startPos)
	default:
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: fmt.Sprintf("unknown command %q", name)}
	}
}

// rejoinArgs reconstructs an expression-parseable string from the argument
// tokens of an <<if>>/<<elseif>>/<<set>> command: TokenVariable tokens get
// their leading '$' back and TokenQuotedString tokens get re-quoted, since
// the body tokenizer already consumed and unescaped them once.
func rejoinArgs(args []Token) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch a.Type {
		case TokenVariable:
			parts[i] = "$" + a.Literal
		case TokenQuotedString:
			parts[i] = strconv.Quote(a.Literal)
		default:
			parts[i] = a.Literal
		}
	}
	return strings.Join(parts, " ")
}

var ifRandomStopWords = map[string]bool{"elseif": true, "else": true, "endif": true}
var randomStopWords = map[string]bool{"or": true, "endrandom": true}
var elseStopWords = map[string]bool{"endif": true}

func (p *BodyParser) parseIf(args []Token, startPos dlberr.Position) (model.Segment, *dlberr.ParseError) {
	cond, err := expr.Parse(rejoinArgs(args))
	if err != nil {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: "invalid if condition: " + err.Error(), Cause: err}
	}
	cmd := &model.IfCommand{}
	clauseBody, pending, _, perr := p.parseBodyInner(true, ifRandomStopWords, false)
	if perr != nil {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: perr.Error(), Cause: perr}
	}
	cmd.Clauses = append(cmd.Clauses, model.IfClause{Condition: cond, Body: clauseBody})

	for pending != nil && pending.name == "elseif" {
		cond, err = expr.Parse(rejoinArgs(pending.argTokens))
		if err != nil {
			return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: pending.pos, Message: "invalid elseif condition: " + err.Error(), Cause: err}
		}
		var body *model.Body
		body, pending, _, perr = p.parseBodyInner(true, ifRandomStopWords, false)
		if perr != nil {
			return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: perr.Error(), Cause: perr}
		}
		cmd.Clauses = append(cmd.Clauses, model.IfClause{Condition: cond, Body: body})
	}

	if pending != nil && pending.name == "else" {
		var body *model.Body
		body, pending, _, perr = p.parseBodyInner(true, elseStopWords, false)
		if perr != nil {
			return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: perr.Error(), Cause: perr}
		}
		cmd.Else = body
	}

	if pending == nil || pending.name != "endif" {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: "<<if>> is missing a matching <<endif>>"}
	}
	return &model.CommandSegment{Command: cmd}, nil
}

func (p *BodyParser) parseRandom(_ []Token, startPos dlberr.Position) (model.Segment, *dlberr.ParseError) {
	cmd := &model.RandomCommand{}
	body, pending, _, perr := p.parseBodyInner(true, randomStopWords, false)
	if perr != nil {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: perr.Error(), Cause: perr}
	}
	cmd.Clauses = append(cmd.Clauses, body)

	for pending != nil && pending.name == "or" {
		body, pending, _, perr = p.parseBodyInner(true, randomStopWords, false)
		if perr != nil {
			return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: perr.Error(), Cause: perr}
		}
		cmd.Clauses = append(cmd.Clauses, body)
	}

	if pending == nil || pending.name != "endrandom" {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: "<<random>> is missing a matching <<endrandom>>"}
	}
	return &model.CommandSegment{Command: cmd}, nil
}

func (p *BodyParser) parseSet(args []Token, startPos dlberr.Position) (model.Segment, *dlberr.ParseError) {
	assigns, err := expr.ParseAssignments(rejoinArgs(args))
	if err != nil {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: "invalid set command: " + err.Error(), Cause: err}
	}
	return &model.CommandSegment{Command: &model.SetCommand{Assignments: assigns}}, nil
}

func (p *BodyParser) parseInput(args []Token, startPos dlberr.Position) (model.Segment, *dlberr.ParseError) {
	if len(args) < 2 {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: "<<input>> requires a type and a $variable"}
	}
	inputType := args[0].Literal
	var variable string
	options := map[string]string{}
	var order []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if tok.Type == TokenVariable && variable == "" {
			variable = tok.Literal
			continue
		}
		if tok.Type == TokenText && strings.Contains(tok.Literal, "=") {
			idx := strings.Index(tok.Literal, "=")
			key := tok.Literal[:idx]
			val := tok.Literal[idx+1:]
			if val == "" && i+1 < len(rest) && rest[i+1].Type == TokenQuotedString {
				i++
				val = rest[i].Literal
			}
			if _, exists := options[key]; !exists {
				order = append(order, key)
			}
			options[key] = val
		}
	}
	if variable == "" {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: "<<input>> requires a $variable"}
	}
	return &model.CommandSegment{Command: &model.InputCommand{InputType: inputType, Variable: variable, Options: options, OptionOrder: order}}, nil
}

func (p *BodyParser) parseAction(args []Token, startPos dlberr.Position) (model.Segment, *dlberr.ParseError) {
	if len(args) == 0 {
		return nil, &dlberr.ParseError{File: p.file, NodeTitle: p.nodeTitle, Pos: startPos, Message: "<<action>> requires a type"}
	}
	actionType := args[0].Literal
	var arguments []string
	for _, tok := range args[1:] {
		arguments = append(arguments, tok.Literal)
	}
	return &model.CommandSegment{Command: &model.ActionCommand{Type: actionType, Arguments: arguments}}, nil
}

// parseReply parses the interior of an already-open [[...]] reply: a
// statement section, a mandatory next-target section, and zero or more
// action sections, each separated by '|'.
func (p *BodyParser) parseReply(startPos dlberr.Position) (*model.Reply, error) {
	firstBody, _, term, err := p.parseBodyInner(false, nil, true)
	if err != nil {
		return nil, err
	}

	var statement *model.Body
	var nextBody *model.Body
	if term == termReplyEnd {
		// A bare "[[Target]]" with no '|' at all: the one section present is
		// the target itself, and the reply auto-forwards with no statement.
		nextBody = firstBody
	} else {
		if len(firstBody.Segments) > 0 {
			statement = firstBody
		}
		nextBody, _, term, err = p.parseBodyInner(false, nil, true)
		if err != nil {
			return nil, err
		}
	}
	nextRaw := strings.TrimSpace(plainText(nextBody))
	if nextRaw == "" {
		p.addError(startPos, "reply is missing a next-node target")
		return nil, nil
	}
	next, err := p.resolvePointer(nextRaw, startPos)
	if err != nil {
		p.addError(startPos, "%s", err.Error())
		return nil, nil
	}

	var actions []*model.ActionCommand
	for term == termReplySeparator {
		var actionBody *model.Body
		actionBody, _, term, err = p.parseBodyInner(false, nil, true)
		if err != nil {
			return nil, err
		}
		for _, seg := range actionBody.Segments {
			if cs, ok := seg.(*model.CommandSegment); ok {
				if ac, ok := cs.Command.(*model.ActionCommand); ok {
					actions = append(actions, ac)
				}
			}
		}
	}

	return &model.Reply{Statement: statement, Next: next, Actions: actions}, nil
}

// plainText concatenates the literal text of a body that is expected to
// contain nothing but TextSegments (the next-target section of a reply).
func plainText(b *model.Body) string {
	var sb strings.Builder
	for _, seg := range b.Segments {
		if ts, ok := seg.(*model.TextSegment); ok {
			sb.WriteString(ts.Text.String())
		}
	}
	return sb.String()
}

// resolvePointer splits a reply's next-target text into an internal
// pointer (a bare node title) or an external pointer (dialogueRef.nodeId),
// recording the result on the origin dialogue's reference lists: the
// parser collects every internal and external node reference it
// encounters. Node titles never contain '.', so splitting on the last
// '.' in the raw text unambiguously separates a dialogue reference from
// the node id.
func (p *BodyParser) resolvePointer(raw string, pos dlberr.Position) (model.NodePointer, error) {
	idx := strings.LastIndex(raw, ".")
	if idx < 0 {
		ptr := &model.InternalPointer{OriginNodeID: p.nodeTitle, TargetNodeID: raw}
		if p.internalRefs != nil {
			*p.internalRefs = append(*p.internalRefs, ptr)
		}
		return ptr, nil
	}
	dialogueRef := raw[:idx]
	nodeID := raw[idx+1:]
	ptr, err := model.NewExternalPointer(p.originDialogue, p.nodeTitle, dialogueRef, nodeID)
	if err != nil {
		return nil, err
	}
	if p.externalRefs != nil {
		*p.externalRefs = append(*p.externalRefs, ptr)
	}
	return ptr, nil
}
