package google

import (
	"fmt"
	"strings"
)

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toAnys(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// colLetter returns the spreadsheet column letter for a row of n cells
// ("D" for the four-column tabs). Single letters cover this schema; the
// store contract never writes past column Z.
func colLetter(n int) string {
	if n < 1 {
		n = 1
	}
	if n > 26 {
		n = 26
	}
	return string(rune('A' + n - 1))
}
