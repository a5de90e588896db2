// Package sloc counts total, empty and comment lines of source files.
package sloc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/nloc/internal/lang"
	"github.com/phobologic/nloc/internal/model"
)

// ErrUnsupported is returned for extensions with no registered language.
var ErrUnsupported = errors.New("unsupported language")

// Count classifies the lines of source. ext is the bare extension ("go",
// not ".go"). A line counts as empty when it holds only whitespace, even
// inside a block comment; any other line touched by a comment counts as a
// comment line. A trailing newline does not start an extra line.
func Count(source []byte, ext string) (model.LineCount, error) {
	l := lang.ForExtension(ext)
	if l == nil {
		return model.UnsupportedCount(), fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	lines := splitLines(string(source))
	var comment []bool
	if l.HasGrammar() {
		var err error
		comment, err = treeCommentLines(l, source, len(lines))
		if err != nil {
			comment = markerCommentLines(l, lines)
		}
	} else {
		comment = markerCommentLines(l, lines)
	}

	count := model.LineCount{Total: len(lines)}
	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			count.Empty++
		case comment[i]:
			count.Comment++
		}
	}
	return count, nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// treeCommentLines marks every line covered by a comment node.
func treeCommentLines(l *lang.Language, source []byte, n int) ([]bool, error) {
	comment := make([]bool, n)
	if n == 0 {
		return comment, nil
	}

	query, err := l.CommentQuery()
	if err != nil {
		return nil, err
	}

	parser := l.NewParser()
	defer parser.Close()

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s source: %w", l.Name, err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			start := int(c.Node.StartPoint().Row)
			end := c.Node.EndPoint()
			last := int(end.Row)
			// A node ending at column 0 stops before that row.
			if end.Column == 0 && last > start {
				last--
			}
			for row := start; row <= last && row < n; row++ {
				comment[row] = true
			}
		}
	}
	return comment, nil
}

// markerCommentLines scans for the language's comment markers. String
// literals are not tokenized, so a marker inside one still opens a comment.
func markerCommentLines(l *lang.Language, lines []string) []bool {
	comment := make([]bool, len(lines))
	var open *lang.BlockComment

	for i, rest := range lines {
		for {
			if open != nil {
				comment[i] = true
				idx := strings.Index(rest, open.Close)
				if idx < 0 {
					break
				}
				rest = rest[idx+len(open.Close):]
				open = nil
				continue
			}

			pos, m := firstMarker(l, rest)
			if pos < 0 {
				break
			}
			comment[i] = true
			if m.block == nil {
				break
			}
			rest = rest[pos+len(m.text):]
			open = m.block
		}
	}
	return comment
}

type marker struct {
	text  string
	block *lang.BlockComment
}

// firstMarker returns the earliest marker in s; on a tie the longer wins,
// so "--[[" beats "--".
func firstMarker(l *lang.Language, s string) (int, marker) {
	best := -1
	var found marker
	consider := func(pos int, m marker) {
		if pos < 0 {
			return
		}
		if best < 0 || pos < best || (pos == best && len(m.text) > len(found.text)) {
			best, found = pos, m
		}
	}
	for _, lc := range l.LineComments {
		consider(strings.Index(s, lc), marker{text: lc})
	}
	for i := range l.BlockComments {
		b := &l.BlockComments[i]
		consider(strings.Index(s, b.Open), marker{text: b.Open, block: b})
	}
	return best, found
}
