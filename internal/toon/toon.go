// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/nloc/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a Result into TOON format. Files are listed by path,
// relative to the target directory when possible.
func Encode(res *model.Result) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("target: %s", encodeValue(res.Target)))

	var fileRows [][]string
	for _, rec := range res.Sorted() {
		total, empty, comment := countCells(rec.Sloc)
		fileRows = append(fileRows, []string{
			relPath(res.Target, rec.Path),
			rec.Ext,
			rec.Analyze.Encoding,
			total,
			empty,
			comment,
		})
	}
	parts = append(parts, formatTabular("files", []string{"path", "ext", "encoding", "total", "empty", "comment"}, fileRows))

	total, empty, comment := countCells(res.Summary.Loc)
	parts = append(parts, formatTabular("summary", []string{"files", "total", "empty", "comment"}, [][]string{
		{strconv.Itoa(res.Summary.Files), total, empty, comment},
	}))

	return strings.Join(parts, "\n")
}

func countCells(c model.LineCount) (string, string, string) {
	if c.Unsupported {
		return model.NotSupported, model.NotSupported, model.NotSupported
	}
	return strconv.Itoa(c.Total), strconv.Itoa(c.Empty), strconv.Itoa(c.Comment)
}

func relPath(target, path string) string {
	if path == target {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(target, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
