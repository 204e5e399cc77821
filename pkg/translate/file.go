package translate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dialoguebranch/dlb-core-go/pkg/dlberr"
	"github.com/dialoguebranch/dlb-core-go/pkg/model"
	"github.com/dialoguebranch/dlb-core-go/pkg/script"
)

// ParseTranslationFile parses one translation file's JSON object into a
// TranslationMap (§4.7, §6). Each entry's value is either a string — the
// key is source body text and the value its translation — or a nested
// object, whose key is instead a whitespace-separated list of context
// labels merged with whatever context has accumulated while recursing.
// Both keys and values are parsed with C2/C3, whitelisting exactly the
// command kinds the caller passes (the linker whitelists only "input").
func ParseTranslationFile(src, filePath string, whitelist map[string]bool) (*model.TranslationMap, []*dlberr.ParseError, []string) {
	dec := json.NewDecoder(strings.NewReader(src))
	tok, err := dec.Token()
	if err != nil {
		return nil, []*dlberr.ParseError{{File: filePath, Message: fmt.Sprintf("invalid translation file JSON: %s", err.Error()), Cause: err}}, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, []*dlberr.ParseError{{File: filePath, Message: "translation file must be a JSON object"}}, nil
	}

	tm := model.NewTranslationMap()
	p := &translationFileParser{filePath: filePath, whitelist: whitelist, tm: tm, seen: map[string]bool{}}
	p.parseObject(dec, nil)
	return tm, p.errs, p.warnings
}

type translationFileParser struct {
	filePath  string
	whitelist map[string]bool
	tm        *model.TranslationMap
	seen      map[string]bool // dedupe key: canonical + "\x00" + sorted context
	errs      []*dlberr.ParseError
	warnings  []string
}

// parseObject consumes one JSON object's entries from dec (whose opening
// '{' has already been read) under the given accumulated context labels,
// and leaves dec positioned just past the matching '}'.
func (p *translationFileParser) parseObject(dec *json.Decoder, context []string) {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			p.errs = append(p.errs, &dlberr.ParseError{File: p.filePath, Message: err.Error(), Cause: err})
			return
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			p.errs = append(p.errs, &dlberr.ParseError{File: p.filePath, NodeTitle: key, Message: err.Error(), Cause: err})
			return
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			p.parseContextGroup(key, raw, context)
			continue
		}

		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			p.errs = append(p.errs, &dlberr.ParseError{
				File: p.filePath, NodeTitle: key,
				Message: "translation entry value must be a JSON string or a nested context object",
			})
			continue
		}
		p.addEntry(key, value, context)
	}
	// Consume the matching closing '}'.
	_, _ = dec.Token()
}

func (p *translationFileParser) parseContextGroup(key string, raw json.RawMessage, context []string) {
	labels := strings.Fields(key)
	childContext := append(append([]string(nil), context...), labels...)

	childDec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := childDec.Token()
	if err != nil {
		p.errs = append(p.errs, &dlberr.ParseError{File: p.filePath, NodeTitle: key, Message: err.Error(), Cause: err})
		return
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		p.errs = append(p.errs, &dlberr.ParseError{File: p.filePath, NodeTitle: key, Message: "context group value must be a JSON object"})
		return
	}
	p.parseObject(childDec, childContext)
}

func (p *translationFileParser) addEntry(sourceText, translatedText string, context []string) {
	if strings.TrimSpace(translatedText) == "" {
		p.warnings = append(p.warnings, fmt.Sprintf("%s: empty translation for %q, entry skipped", p.filePath, sourceText))
		return
	}

	sourceBody, sourceCount, err := p.parseOne(sourceText)
	if err != nil {
		p.errs = append(p.errs, &dlberr.ParseError{File: p.filePath, NodeTitle: sourceText, Message: err.Error(), Cause: err})
		return
	}
	if sourceCount != 1 {
		p.errs = append(p.errs, &dlberr.ParseError{
			File: p.filePath, NodeTitle: sourceText,
			Message: "translation entry source must parse to exactly one translatable",
		})
		return
	}
	canonical := sourceBody.Emit()

	translatedBody, translatedCount, err := p.parseOne(translatedText)
	if err != nil {
		p.errs = append(p.errs, &dlberr.ParseError{File: p.filePath, NodeTitle: sourceText, Message: err.Error(), Cause: err})
		return
	}
	if translatedCount != 1 {
		p.errs = append(p.errs, &dlberr.ParseError{
			File: p.filePath, NodeTitle: sourceText,
			Message: "translation entry value must parse to exactly one translatable",
		})
		return
	}

	dedupeKey := canonical + "\x00" + contextKey(context)
	if p.seen[dedupeKey] {
		p.errs = append(p.errs, &dlberr.ParseError{
			File: p.filePath, NodeTitle: sourceText,
			Message: fmt.Sprintf("duplicate translation for %q in the same context", canonical),
		})
		return
	}
	p.seen[dedupeKey] = true

	ctxSet := make(map[string]struct{}, len(context))
	for _, label := range context {
		ctxSet[label] = struct{}{}
	}
	p.tm.Add(canonical, &model.ContextTranslation{
		Context:     ctxSet,
		Translation: &model.Translatable{Segments: translatedBody.Segments},
	})
}

// parseOne parses text as a body and reports how many translatables it
// would yield in isolation, used to enforce "both keys and values must
// parse to exactly one translatable" (§4.7).
func (p *translationFileParser) parseOne(text string) (*model.Body, int, error) {
	bp := script.NewBodyParser(text, p.filePath, "", p.whitelist, "", nil, nil)
	body, err := bp.ParseBody()
	if err != nil {
		return nil, 0, err
	}
	if len(bp.Errors) > 0 {
		return nil, 0, bp.Errors[0]
	}
	return body, len(extractFromBody(body, "", "")), nil
}

func contextKey(context []string) string {
	sorted := append([]string(nil), context...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x01")
}
