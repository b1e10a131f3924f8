package prompt

import "strings"

// Binding holds placeholder values keyed by name, e.g. REPLACE_STRING.
type Binding map[string]string

// Data exposes the binding to go templates.
func (b Binding) Data() map[string]string { return b }

// replacer builds a [[NAME]] replacer for every bound key.
func (b Binding) replacer() *strings.Replacer {
	pairs := make([]string, 0, len(b)*2)
	for k, v := range b {
		pairs = append(pairs, "[["+k+"]]", v)
	}
	return strings.NewReplacer(pairs...)
}
