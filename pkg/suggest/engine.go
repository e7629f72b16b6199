package suggest

import (
	"strings"

	"github.com/bastiangx/notekeys/internal/utils"
	"github.com/bastiangx/notekeys/pkg/buffer"
	"github.com/bastiangx/notekeys/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// Candidate is a ranked word proposed to complete or follow the trailing word.
type Candidate struct {
	Word  string
	Score int
}

// Options configures an Engine.
type Options struct {
	Weights   Weights
	Limits    Limits
	CacheSize int // 0 disables the query cache
}

// DefaultOptions returns the stock weights and limits with a small cache.
func DefaultOptions() Options {
	return Options{
		Weights:   DefaultWeights(),
		Limits:    DefaultLimits(),
		CacheSize: 256,
	}
}

// Engine ranks suggestions against a shared, read-only dictionary.
type Engine struct {
	dict    *dictionary.Dictionary
	weights Weights
	limits  Limits
	cache   *QueryCache
}

// NewEngine creates an engine over dict. A nil dict gets the fallback list.
func NewEngine(dict *dictionary.Dictionary, opts Options) *Engine {
	if dict == nil {
		dict = dictionary.Load(nil)
	}
	e := &Engine{
		dict:    dict,
		weights: opts.Weights,
		limits:  opts.Limits,
	}
	if opts.CacheSize > 0 {
		e.cache = NewQueryCache(opts.CacheSize)
	}
	return e
}

// LoadDictionary swaps in the words from src, or the fallback list when src
// is missing or empty. It never fails.
func (e *Engine) LoadDictionary(src dictionary.Source) {
	e.dict = dictionary.Load(src)
	if e.cache != nil {
		e.cache.Reset()
	}
}

// Dictionary returns the word list in use.
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}

// Limits returns the engine's result bounds.
func (e *Engine) Limits() Limits {
	return e.limits
}

// SuggestFor queries with the trailing word and context window of buf.
// An empty buffer has nothing to suggest.
func (e *Engine) SuggestFor(buf *buffer.Buffer) []Candidate {
	if buf == nil || buf.IsEmpty() {
		return nil
	}
	return e.Suggest(buf.TrailingWord(), buf.ContextWindow(e.limits.ContextWords))
}

// Suggest completes trailingWord, or proposes next words from contextWindow
// when trailingWord is empty.
func (e *Engine) Suggest(trailingWord, contextWindow string) []Candidate {
	key := cacheKey(trailingWord, contextWindow)
	if e.cache != nil {
		if result, ok := e.cache.Get(key); ok {
			return result
		}
	}

	var result []Candidate
	if trailingWord == "" {
		result = e.NextWords(contextWindow)
	} else {
		result = e.Complete(trailingWord, contextWindow)
	}

	if e.cache != nil {
		e.cache.Put(key, result)
	}
	return result
}

// Complete ranks dictionary words starting with prefix.
func (e *Engine) Complete(prefix, contextWindow string) []Candidate {
	if prefix == "" {
		return nil
	}
	lowerPrefix := strings.ToLower(prefix)
	context := contextWords(contextWindow, e.limits.ContextWords)

	matches := searchDictionary(e.dict, lowerPrefix, context, e.weights)
	if len(matches) > e.limits.Completions {
		matches = matches[:e.limits.Completions]
	}

	capitals := capitalPositions(prefix)
	result := make([]Candidate, len(matches))
	for i, m := range matches {
		result[i] = Candidate{
			Word:  ApplyCapitalization(m.Word, capitals),
			Score: m.Score,
		}
	}

	log.Debugf("Completed %q with %d candidates", prefix, len(result))
	return result
}

// NextWords proposes words to follow contextWindow. Every rule whose phrase
// ends the context contributes its words, de-duplicated in first-seen order;
// with no match the connective list is used.
func (e *Engine) NextWords(contextWindow string) []Candidate {
	context := strings.Join(strings.Fields(strings.ToLower(contextWindow)), " ")

	filter := utils.NewSuggestionFilter("")
	var words []string
	for _, rule := range nextWordRules {
		if !endsWithPhrase(context, rule.pattern) {
			continue
		}
		for _, w := range rule.words {
			if filter.ShouldInclude(w) {
				words = append(words, w)
			}
		}
	}
	if len(words) == 0 {
		words = connectives
	} else {
		log.Debugf("Merged %d next words for %q", filter.Seen(), context)
	}

	limit := min(len(words), e.limits.NextWords)
	result := make([]Candidate, limit)
	for i := 0; i < limit; i++ {
		result[i] = Candidate{Word: words[i], Score: limit - i}
	}
	return result
}

// endsWithPhrase reports whether context ends with phrase on a word boundary.
func endsWithPhrase(context, phrase string) bool {
	if context == phrase {
		return true
	}
	return strings.HasSuffix(context, " "+phrase)
}

// Stats returns statistics about the dictionary and cache.
func (e *Engine) Stats() map[string]int {
	stats := map[string]int{
		"totalWords":     e.dict.Len(),
		"maxCompletions": e.limits.Completions,
		"maxNextWords":   e.limits.NextWords,
	}
	if e.cache != nil {
		for k, v := range e.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}

// Words extracts the words of candidates in order.
func Words(candidates []Candidate) []string {
	words := make([]string, len(candidates))
	for i, c := range candidates {
		words[i] = c.Word
	}
	return words
}
