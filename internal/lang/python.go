package lang

import "github.com/smacker/go-tree-sitter/python"

func init() {
	// Docstrings are string expressions, not comment nodes, and are
	// counted as code.
	Languages["python"] = &Language{
		Name:         "python",
		Extensions:   []string{".py", ".pyw"},
		LineComments: []string{"#"},
		lang:         python.GetLanguage(),
	}
}
