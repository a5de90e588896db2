package sloc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/nloc/internal/model"
)

func TestCountGo(t *testing.T) {
	t.Parallel()

	src := `package main

// Hello greets.
func Hello() string {
	/* inline
	   block */
	return "hi" // trailing
}
`
	got, err := Count([]byte(src), "go")
	require.NoError(t, err)
	assert.Equal(t, model.LineCount{Total: 8, Empty: 1, Comment: 4}, got)
}

func TestCountPython(t *testing.T) {
	t.Parallel()

	src := "# header\nimport os\n\n\ndef f():\n    return os.sep  # why\n"
	got, err := Count([]byte(src), "py")
	require.NoError(t, err)
	assert.Equal(t, model.LineCount{Total: 6, Empty: 2, Comment: 2}, got)
}

func TestCountMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ext  string
		src  string
		want model.LineCount
	}{
		{
			name: "c block spanning blank line",
			ext:  "c",
			src:  "/* a\n\n b */\nint x;\n",
			want: model.LineCount{Total: 4, Empty: 1, Comment: 2},
		},
		{
			name: "code after block close",
			ext:  "java",
			src:  "/* x */ int y;\nint z;",
			want: model.LineCount{Total: 2, Comment: 1},
		},
		{
			name: "markers inside string literals count",
			ext:  "java",
			src:  "String u = \"http://x\";\nint z;\n",
			want: model.LineCount{Total: 2, Comment: 1},
		},
		{
			name: "shell",
			ext:  "sh",
			src:  "#!/bin/sh\necho hi\n   \n",
			want: model.LineCount{Total: 3, Empty: 1, Comment: 1},
		},
		{
			name: "lua block beats line marker",
			ext:  "lua",
			src:  "--[[ start\nstill comment\n]] x = 1\ny = 2\n",
			want: model.LineCount{Total: 4, Comment: 3},
		},
		{
			name: "html",
			ext:  "html",
			src:  "<p>\n<!-- note -->\n</p>\r\n",
			want: model.LineCount{Total: 3, Comment: 1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Count([]byte(tt.src), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountEmpty(t *testing.T) {
	t.Parallel()

	got, err := Count(nil, "go")
	require.NoError(t, err)
	assert.Equal(t, model.LineCount{}, got)
}

func TestCountUnsupported(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"", "xyz", "md"} {
		got, err := Count([]byte("hello\n"), ext)
		assert.True(t, errors.Is(err, ErrUnsupported), "ext %q", ext)
		assert.True(t, got.Unsupported)
	}
}
