package lang

import "github.com/smacker/go-tree-sitter/ruby"

func init() {
	Languages["ruby"] = &Language{
		Name:          "ruby",
		Extensions:    []string{".rb", ".rake"},
		LineComments:  []string{"#"},
		BlockComments: []BlockComment{{"=begin", "=end"}},
		lang:          ruby.GetLanguage(),
	}
}
