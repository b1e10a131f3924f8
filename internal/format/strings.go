// Package format provides string formatting, case conversion and validation helpers.
package format

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	multiSpace     = regexp.MustCompile(` {2,}`)
	nullish        = regexp.MustCompile(`Null|Undefined|null|undefined`)
	nonWordDash    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	nonWord        = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	dashUnderscore = regexp.MustCompile(`[-_]`)
	whitespace     = regexp.MustCompile(`\s`)
	basicEmail     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// CountOccurrences counts non-overlapping occurrences of sub in s.
func CountOccurrences(s, sub string) int {
	if sub == "" {
		return 0
	}
	return strings.Count(s, sub)
}

// Capitalize trims s and title-cases every space separated word.
func Capitalize(s string) string {
	words := strings.Split(strings.TrimSpace(s), " ")
	for i, word := range words {
		words[i] = capitalizeWord(word)
	}
	return strings.Join(words, " ")
}

func capitalizeWord(word string) string {
	if word == "" {
		return word
	}
	r := []rune(word)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

// Names removes null/undefined artefacts, collapses spaces and capitalizes.
func Names(name string) string {
	name = nullish.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	return Capitalize(name)
}

// NewLines returns count newline characters.
func NewLines(count int) string { return repeat("\n", count) }

// Tabs returns count tab characters.
func Tabs(count int) string { return repeat("\t", count) }

func repeat(s string, count int) string {
	if count < 1 {
		return ""
	}
	return strings.Repeat(s, count)
}

// SplitOptions controls Split post-processing.
type SplitOptions struct {
	Numbers bool
	Unique  bool
}

// Split splits s by separator; numeric elements become float64 when requested.
func Split(s, separator string, opts SplitOptions) []any {
	parts := strings.Split(s, separator)
	out := make([]any, 0, len(parts))
	seen := map[any]bool{}
	for _, part := range parts {
		var item any = part
		if opts.Numbers {
			if n, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err == nil && strings.TrimSpace(part) != "" {
				item = n
			}
		}
		if opts.Unique {
			if seen[item] {
				continue
			}
			seen[item] = true
		}
		out = append(out, item)
	}
	return out
}

// JoinWith joins items with commas and the final item with conjunction,
// e.g. "a, b and c".
func JoinWith(items []string, conjunction string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + " " + conjunction + " " + items[last]
}

// stripAccents removes combining marks after canonical decomposition.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CamelCase converts s to camelCase.
func CamelCase(s string) string {
	s = nonWordDash.ReplaceAllString(s, "")
	s = dashUnderscore.ReplaceAllString(s, " ")
	s = stripAccents(s)
	var b strings.Builder
	for i, word := range strings.Split(s, " ") {
		if i == 0 {
			b.WriteString(strings.ToLower(word))
			continue
		}
		b.WriteString(Capitalize(word))
	}
	return b.String()
}

// PascalCase converts s to PascalCase.
func PascalCase(s string) string {
	camel := []rune(CamelCase(s))
	if len(camel) == 0 {
		return ""
	}
	return strings.ToUpper(string(camel[0])) + string(camel[1:])
}

// SnakeCase converts s to snake_case.
func SnakeCase(s string) string {
	s = nonWord.ReplaceAllString(s, "")
	s = dashUnderscore.ReplaceAllString(s, "_")
	s = stripAccents(s)
	s = whitespace.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}

// KebabCase converts s to kebab-case.
func KebabCase(s string) string {
	return strings.ReplaceAll(SnakeCase(s), "_", "-")
}

// ScreamingSnakeCase converts s to SCREAMING_SNAKE_CASE.
func ScreamingSnakeCase(s string) string {
	return strings.ToUpper(SnakeCase(s))
}

// EmailOptions restricts accepted domains and top level domains.
type EmailOptions struct {
	Domains []string
	TLDs    []string
}

// IsEmail validates email, optionally against custom domains and TLDs.
func IsEmail(email string, opts EmailOptions) bool {
	if strings.Count(email, "@") != 1 {
		return false
	}
	pattern := basicEmail
	domains := alternation(opts.Domains)
	tlds := alternation(opts.TLDs)
	switch {
	case domains != "" && tlds != "":
		pattern = regexp.MustCompile(`^[^\s@]+@(` + domains + `)\.(` + tlds + `)$`)
	case domains != "":
		pattern = regexp.MustCompile(`^[^\s@]+@(` + domains + `)\.[^\s@]+$`)
	case tlds != "":
		pattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.(` + tlds + `)$`)
	}
	return pattern.MatchString(email)
}

func alternation(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			quoted = append(quoted, regexp.QuoteMeta(v))
		}
	}
	return strings.Join(quoted, "|")
}

// ExtractJSON returns every top-level JSON object embedded in text, skipping
// fragments that do not decode and braces that never close.
func ExtractJSON(text string) []map[string]any {
	var result []map[string]any
	for start := strings.IndexByte(text, '{'); start >= 0; {
		end := matchingBrace(text, start)
		var obj map[string]any
		if end >= 0 && json.Unmarshal([]byte(text[start:end+1]), &obj) == nil {
			result = append(result, obj)
			text = text[end+1:]
		} else {
			text = text[start+1:]
		}
		start = strings.IndexByte(text, '{')
	}
	return result
}

// matchingBrace finds the brace closing the one at start, honouring JSON strings.
func matchingBrace(text string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
