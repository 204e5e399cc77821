// Package project implements the project linker: discovering every
// dialogue and translation file belonging to a project, parsing each
// one, and cross-checking the node pointers they contain against the
// rest of the project.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileLoader abstracts away how a project's files are actually stored, so
// the linker itself never touches the filesystem directly. No particular
// storage backend is assumed; this module only needs to read, never
// persist.
type FileLoader interface {
	// ListDialogues returns the logical path (relative to the language
	// root, without extension) of every dialogue file under the given
	// language.
	ListDialogues(languageCode string) ([]string, error)
	// ReadDialogue returns the raw source of one dialogue file.
	ReadDialogue(languageCode, filePath string) (string, error)
	// ListTranslations returns the logical path of every translation file
	// under the given language.
	ListTranslations(languageCode string) ([]string, error)
	// ReadTranslation returns the raw JSON source of one translation file.
	ReadTranslation(languageCode, filePath string) (string, error)
	// ReadLanguageMap returns the raw bytes of the project's language-map
	// descriptor, or an error satisfying os.IsNotExist if the project has
	// none.
	ReadLanguageMap() ([]byte, error)
	// ListLanguages returns every top-level language code the loader knows
	// about, sorted for determinism. Used to infer a language map (§4.5
	// step 1) when the project carries no languagemap.xml descriptor: the
	// first code in the returned slice is taken as the source language.
	ListLanguages() ([]string, error)
}

// DirectoryFileLoader reads a project laid out on disk as:
//
//	<root>/languagemap.xml
//	<root>/<languageCode>/**/*.dlb           (source dialogues)
//	<root>/<languageCode>/**/*.json          (translation files)
//
// the logical path of a file is its path under the language directory
// with the extension stripped and backslashes normalized to '/'.
type DirectoryFileLoader struct {
	Root string
}

// NewDirectoryFileLoader returns a loader rooted at root.
func NewDirectoryFileLoader(root string) *DirectoryFileLoader {
	return &DirectoryFileLoader{Root: root}
}

func (l *DirectoryFileLoader) languageDir(languageCode string) string {
	return filepath.Join(l.Root, languageCode)
}

func (l *DirectoryFileLoader) list(languageCode, ext string) ([]string, error) {
	dir := l.languageDir(languageCode)
	var out []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipDir
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = strings.TrimSuffix(rel, filepath.Ext(rel))
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("listing %s files under %s: %w", ext, dir, err)
	}
	sort.Strings(out)
	return out, nil
}

func (l *DirectoryFileLoader) ListDialogues(languageCode string) ([]string, error) {
	return l.list(languageCode, ".dlb")
}

func (l *DirectoryFileLoader) ListTranslations(languageCode string) ([]string, error) {
	return l.list(languageCode, ".json")
}

func (l *DirectoryFileLoader) ReadDialogue(languageCode, filePath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.languageDir(languageCode), filePath+".dlb"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *DirectoryFileLoader) ReadTranslation(languageCode, filePath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.languageDir(languageCode), filePath+".json"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *DirectoryFileLoader) ReadLanguageMap() ([]byte, error) {
	return os.ReadFile(filepath.Join(l.Root, "languagemap.xml"))
}

// ListLanguages reports the name of every directory directly under Root,
// sorted. A project with no languagemap.xml lays its languages out exactly
// this way, so this is what the linker falls back to inferring from.
func (l *DirectoryFileLoader) ListLanguages() ([]string, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, fmt.Errorf("listing languages under %s: %w", l.Root, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
