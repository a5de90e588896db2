// Package lang provides a language registry mapping file extensions to
// comment syntax and, where available, a tree-sitter grammar.
package lang

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// commentQuery captures every comment node. All bundled grammars name
// their comment node "comment".
const commentQuery = "(comment) @comment"

// BlockComment is a delimited comment such as /* ... */.
type BlockComment struct {
	Open  string
	Close string
}

// Language holds the comment rules for a supported language.
type Language struct {
	Name          string
	Extensions    []string
	LineComments  []string
	BlockComments []BlockComment

	lang      *sitter.Language
	queryOnce sync.Once
	query     *sitter.Query
	queryErr  error
}

// HasGrammar reports whether comments are located with tree-sitter
// rather than the marker scanner.
func (l *Language) HasGrammar() bool {
	return l.lang != nil
}

// NewParser creates a fresh tree-sitter parser for this language.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// CommentQuery returns the compiled comment query (safe to share across goroutines).
func (l *Language) CommentQuery() (*sitter.Query, error) {
	l.queryOnce.Do(func() {
		if l.lang == nil {
			l.queryErr = fmt.Errorf("%s: no grammar", l.Name)
			return
		}
		q, err := sitter.NewQuery([]byte(commentQuery), l.lang)
		if err != nil {
			l.queryErr = fmt.Errorf("compiling comment query: %w", err)
			return
		}
		l.query = q
	})
	return l.query, l.queryErr
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]*Language
var extensionOnce sync.Once

func getExtensionMap() map[string]*Language {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]*Language)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[normalize(ext)] = l
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language for a file extension, with or without
// the leading dot, or nil if unsupported.
func ForExtension(ext string) *Language {
	return getExtensionMap()[normalize(ext)]
}

func normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
