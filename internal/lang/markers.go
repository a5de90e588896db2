package lang

var (
	cStyle      = []BlockComment{{"/*", "*/"}}
	markupStyle = []BlockComment{{"<!--", "-->"}}
)

// Languages without a bundled grammar; comments are found by scanning for
// their markers.
func init() {
	for _, l := range []*Language{
		{Name: "c", Extensions: []string{".c", ".h"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "cpp", Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "csharp", Extensions: []string{".cs"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "java", Extensions: []string{".java"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "kotlin", Extensions: []string{".kt", ".kts"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "scala", Extensions: []string{".scala"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "swift", Extensions: []string{".swift"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "rust", Extensions: []string{".rs"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "typescript", Extensions: []string{".ts", ".tsx"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "php", Extensions: []string{".php"}, LineComments: []string{"//", "#"}, BlockComments: cStyle},
		{Name: "css", Extensions: []string{".css"}, BlockComments: cStyle},
		{Name: "scss", Extensions: []string{".scss", ".less"}, LineComments: []string{"//"}, BlockComments: cStyle},
		{Name: "html", Extensions: []string{".html", ".htm"}, BlockComments: markupStyle},
		{Name: "xml", Extensions: []string{".xml", ".svg"}, BlockComments: markupStyle},
		{Name: "shell", Extensions: []string{".sh", ".bash", ".zsh"}, LineComments: []string{"#"}},
		{Name: "yaml", Extensions: []string{".yml", ".yaml"}, LineComments: []string{"#"}},
		{Name: "toml", Extensions: []string{".toml"}, LineComments: []string{"#"}},
		{Name: "sql", Extensions: []string{".sql"}, LineComments: []string{"--"}, BlockComments: cStyle},
		{Name: "lua", Extensions: []string{".lua"}, LineComments: []string{"--"}, BlockComments: []BlockComment{{"--[[", "]]"}}},
		{Name: "coffeescript", Extensions: []string{".coffee"}, LineComments: []string{"#"}, BlockComments: []BlockComment{{"###", "###"}}},
	} {
		Languages[l.Name] = l
	}
}
