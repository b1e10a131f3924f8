package usage

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/viant/xlate/genai/llm/provider/ollama"
)

// Stat accumulates token numbers for a single model.
type Stat struct {
	Calls            int
	PromptTokens     int
	CompletionTokens int
}

// Aggregator collects usage grouped by model name.
type Aggregator struct {
	mux      sync.RWMutex
	PerModel map[string]*Stat
}

// OnUsage satisfies ollama.UsageListener so the aggregator can be passed to the client.
func (a *Aggregator) OnUsage(model string, u *ollama.Usage) {
	if u == nil {
		return
	}
	a.Add(model, u.PromptTokens, u.CompletionTokens)
}

// Add records one call with its token counts.
func (a *Aggregator) Add(model string, prompt, completion int) {
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.PerModel == nil {
		a.PerModel = map[string]*Stat{}
	}
	stat, ok := a.PerModel[model]
	if !ok {
		stat = &Stat{}
		a.PerModel[model] = stat
	}
	stat.Calls++
	stat.PromptTokens += prompt
	stat.CompletionTokens += completion
}

// Totals returns accumulated prompt and completion tokens across all models.
func (a *Aggregator) Totals() (prompt, completion int) {
	a.mux.RLock()
	defer a.mux.RUnlock()
	for _, stat := range a.PerModel {
		prompt += stat.PromptTokens
		completion += stat.CompletionTokens
	}
	return prompt, completion
}

// Keys returns sorted list of model names.
func (a *Aggregator) Keys() []string {
	a.mux.RLock()
	defer a.mux.RUnlock()
	keys := make([]string, 0, len(a.PerModel))
	for k := range a.PerModel {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Summary renders one "model: calls=N prompt=N completion=N" line per model.
func (a *Aggregator) Summary() string {
	var b strings.Builder
	for _, model := range a.Keys() {
		a.mux.RLock()
		stat := *a.PerModel[model]
		a.mux.RUnlock()
		fmt.Fprintf(&b, "%s: calls=%d prompt=%d completion=%d\n", model, stat.Calls, stat.PromptTokens, stat.CompletionTokens)
	}
	return b.String()
}
