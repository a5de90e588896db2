// Package charset guesses the text encoding of file content.
package charset

import (
	"strings"

	"github.com/saintfish/chardet"
	htmlcharset "golang.org/x/net/html/charset"
)

// ASCII is reported for content with no byte above 0x7f.
const ASCII = "ASCII"

// Detect returns an upper-case encoding label such as "UTF-8", or "" when
// content is empty or nothing could be guessed. A byte order mark decides
// outright; otherwise the statistical detector's best match wins.
func Detect(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	if _, name, certain := htmlcharset.DetermineEncoding(content, ""); certain && name != "" {
		return strings.ToUpper(name)
	}

	if isASCII(content) {
		return ASCII
	}

	res, err := chardet.NewTextDetector().DetectBest(content)
	if err != nil || res == nil {
		return ""
	}
	return strings.ToUpper(res.Charset)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
