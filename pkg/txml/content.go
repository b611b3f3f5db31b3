package txml

import (
	"strings"
	"unicode"
)

var (
	unescapeReplacer = []string{
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&apos;", "'",
	}
	escapeReplacer = []string{
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	}
)

// Dedent normalizes a captured file body. The first line (the remainder of
// the opening tag's line) is dropped and the common indentation of the
// non-blank lines that follow is removed.
func Dedent(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	lines := splitLines(content)
	if len(lines) <= 1 {
		return ""
	}
	lines = lines[1:]

	if len(lines) == 1 {
		return strings.TrimLeftFunc(lines[0], unicode.IsSpace)
	}

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out[i] = string([]rune(line)[minIndent:])
	}

	return strings.Join(out, "\n")
}

// Unescape replaces the five XML entities by their literal characters
func Unescape(text string) string {
	return replaceInOrder(text, unescapeReplacer)
}

// Escape replaces the five XML special characters by their entities.
// Ampersands go first so introduced entities are not escaped twice.
func Escape(text string) string {
	return replaceInOrder(text, escapeReplacer)
}

// replaceInOrder applies each old/new pair as a separate pass, in order
func replaceInOrder(text string, pairs []string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		text = strings.ReplaceAll(text, pairs[i], pairs[i+1])
	}
	return text
}

// splitLines splits on \n, drops the empty element after a final newline
// and strips a trailing \r from every line
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		count++
	}
	return count
}
