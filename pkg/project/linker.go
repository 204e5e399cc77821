package project

import (
	"fmt"
	"os"

	"github.com/dialoguebranch/dlb-core-go/internal/config"
	"github.com/dialoguebranch/dlb-core-go/pkg/dlberr"
	"github.com/dialoguebranch/dlb-core-go/pkg/logger"
	"github.com/dialoguebranch/dlb-core-go/pkg/model"
	"github.com/dialoguebranch/dlb-core-go/pkg/script"
	"github.com/dialoguebranch/dlb-core-go/pkg/translate"
)

// Linker discovers, parses, and cross-checks every dialogue and
// translation file in a project.
type Linker struct {
	Loader  FileLoader
	Options config.ParserOptions
	Log     logger.Logger
}

// NewLinker builds a Linker. A nil Log uses logger.NewNoOpLogger.
func NewLinker(loader FileLoader, options config.ParserOptions, log logger.Logger) *Linker {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Linker{Loader: loader, Options: options, Log: log}
}

// Link parses and links the whole project. The returned error is non-nil
// only when linking could not even begin (the language map is malformed,
// or there is none and no language set can be inferred from the loader,
// or the source language's dialogues could not be listed); every other
// problem is recorded on the returned ParserResult
// instead, so a caller can still inspect however much of the project was
// successfully built.
func (l *Linker) Link() (*ParserResult, error) {
	lm, err := l.readLanguageMap()
	if err != nil {
		return nil, err
	}

	result := newParserResult(lm.SourceLanguage)
	l.Log.Info("linking project", map[string]interface{}{
		"run_id": result.RunID.String(), "source_language": lm.SourceLanguage,
	})

	if err := l.linkDialogues(lm, result); err != nil {
		return result, err
	}
	l.checkReferences(result)
	l.linkTranslations(lm, result)

	l.Log.Info("link complete", map[string]interface{}{
		"run_id": result.RunID.String(), "has_errors": result.HasErrors(),
	})
	return result, nil
}

// readLanguageMap reads and parses the project's languagemap.xml descriptor
// if one is present. A project may omit the descriptor entirely (§4.5 step
// 1, §6: the language map is "optional"), in which case the language set is
// inferred instead from the loader's top-level language listing, with the
// first code encountered taken as the source language.
func (l *Linker) readLanguageMap() (*LanguageMap, error) {
	data, err := l.Loader.ReadLanguageMap()
	if err != nil {
		if os.IsNotExist(err) {
			l.Log.Debug("no language map descriptor found, inferring languages from directory layout", nil)
			return l.inferLanguageMap()
		}
		return nil, fmt.Errorf("reading language map: %w", err)
	}
	lm, err := ParseLanguageMap(data)
	if err != nil {
		return nil, err
	}
	return lm, nil
}

// inferLanguageMap builds a LanguageMap from the loader's top-level language
// listing alone, with no descriptor present: the first language code
// (sorted for determinism) is the source language, and every other is a
// translation language (§4.5 step 1).
func (l *Linker) inferLanguageMap() (*LanguageMap, error) {
	codes, err := l.Loader.ListLanguages()
	if err != nil {
		return nil, fmt.Errorf("inferring language map: %w", err)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("inferring language map: project has no language directories and no languagemap.xml")
	}

	seen := make(map[string]bool, len(codes))
	lm := &LanguageMap{SourceLanguage: model.CanonicalLanguageCode(codes[0])}
	seen[lm.SourceLanguage] = true
	for _, raw := range codes[1:] {
		code := model.CanonicalLanguageCode(raw)
		if seen[code] {
			return nil, &dlberr.DuplicateLanguageCodeError{Code: code, First: "source", Again: "translation"}
		}
		seen[code] = true
		lm.TranslationLanguages = append(lm.TranslationLanguages, code)
	}
	return lm, nil
}

func (l *Linker) linkDialogues(lm *LanguageMap, result *ParserResult) error {
	paths, err := l.Loader.ListDialogues(lm.SourceLanguage)
	if err != nil {
		return fmt.Errorf("listing dialogues for %s: %w", lm.SourceLanguage, err)
	}
	for _, path := range paths {
		src, err := l.Loader.ReadDialogue(lm.SourceLanguage, path)
		fd := model.FileDescription{LanguageCode: lm.SourceLanguage, FilePath: path}
		if err != nil {
			result.Problems = append(result.Problems, fmt.Errorf("reading dialogue %s: %w", path, err))
			continue
		}
		res := script.ParseScript(src, path, lm.SourceLanguage)
		if err := res.Dialogue.Finalize(); err != nil {
			res.Errors = append(res.Errors, &dlberr.ParseError{File: path, Message: err.Error()})
		}
		result.Project.Dialogues[fd] = res.Dialogue
		if len(res.Errors) > 0 {
			result.Errors[fd] = res.Errors
		}
	}
	return nil
}

// checkReferences validates every node pointer collected while parsing
// against the now-complete set of dialogues, something no single file's
// parse pass could do on its own: a reference is only resolvable once
// every dialogue in the project has been parsed.
func (l *Linker) checkReferences(result *ParserResult) {
	for fd, dialogue := range result.Project.Dialogues {
		for _, ref := range dialogue.InternalReferences {
			if _, ok := dialogue.Node(ref.TargetNodeID); !ok {
				l.reportBrokenReference(result, fd, ref.OriginNodeID, ref.TargetNodeID,
					fmt.Sprintf("node %q does not exist in %s", ref.TargetNodeID, dialogue.Name))
			}
		}
		for _, ref := range dialogue.ExternalReferences {
			target, ok := result.Project.DialogueAt(ref.AbsoluteTargetDialogue)
			if !ok {
				l.reportBrokenReference(result, fd, ref.OriginNodeID, ref.TargetNodeID,
					fmt.Sprintf("dialogue %q does not exist", ref.AbsoluteTargetDialogue))
				continue
			}
			if _, ok := target.Node(ref.TargetNodeID); !ok {
				l.reportBrokenReference(result, fd, ref.OriginNodeID, ref.TargetNodeID,
					fmt.Sprintf("node %q does not exist in %s", ref.TargetNodeID, ref.AbsoluteTargetDialogue))
			}
		}
	}
}

func (l *Linker) reportBrokenReference(result *ParserResult, fd model.FileDescription, originNode, target, message string) {
	if l.Options.StrictReferenceResolution {
		result.Errors[fd] = append(result.Errors[fd], &dlberr.ParseError{
			File: fd.FilePath, NodeTitle: originNode, Message: message,
		})
		return
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf("%s (%s): %s", fd.FilePath, originNode, message))
}

func (l *Linker) linkTranslations(lm *LanguageMap, result *ParserResult) {
	whitelist := l.Options.CommandWhitelist()
	for _, lang := range lm.TranslationLanguages {
		paths, err := l.Loader.ListTranslations(lang)
		if err != nil {
			result.Problems = append(result.Problems, fmt.Errorf("listing translations for %s: %w", lang, err))
			continue
		}
		for _, path := range paths {
			fd := model.FileDescription{LanguageCode: lang, FilePath: path}
			src, err := l.Loader.ReadTranslation(lang, path)
			if err != nil {
				result.Problems = append(result.Problems, fmt.Errorf("reading translation %s/%s: %w", lang, path, err))
				continue
			}
			if _, ok := result.Project.DialogueAt(path); !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("translation %s/%s has no matching source dialogue", lang, path))
			}
			tmap, errs, warnings := translate.ParseTranslationFile(src, path, whitelist)
			result.Project.Translations[fd] = tmap
			if len(errs) > 0 {
				result.Errors[fd] = errs
			}
			result.Warnings = append(result.Warnings, warnings...)
		}
	}
}
