package textutil

import "strings"

// fullWidth maps characters reserved on common filesystems to full-width forms.
var fullWidth = map[rune]rune{
	'/':  '／',
	'\\': '＼',
	':':  '：',
	'*':  '＊',
	'?':  '？',
	'"':  '＂',
	'<':  '＜',
	'>':  '＞',
	'|':  '｜',
}

// SanitizeFileName replaces reserved characters with their full-width
// equivalents in a single pass. Substituted characters are never reserved, so
// the function is idempotent.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if repl, ok := fullWidth[r]; ok {
			return repl
		}
		return r
	}, name)
}

// IsReserved reports whether r is replaced by SanitizeFileName.
func IsReserved(r rune) bool {
	_, ok := fullWidth[r]
	return ok
}
