package lang

import "github.com/smacker/go-tree-sitter/golang"

func init() {
	Languages["go"] = &Language{
		Name:          "go",
		Extensions:    []string{".go"},
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{{"/*", "*/"}},
		lang:          golang.GetLanguage(),
	}
}
