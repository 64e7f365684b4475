// Package search provides a simple, deterministic, concurrency-safe free-text
// matcher used by the analytics record fetcher to apply the search filter to
// interaction subject and notes. It is intentionally small, but engineered
// with production-grade ergonomics:
//
//   - No logging in the library (callers decide how/what to log)
//   - Clear, documented types and functional options (Option pattern)
//   - Unicode-aware tokenization with optional stop-word removal
//   - Immutable matcher after construction (safe for concurrent use)
//   - Deterministic scoring (stable results for identical input)
//
// Matching is token-based AND semantics: every query token must appear in the
// candidate text. Score reports the Jaccard similarity between the query
// token set and the text token set: score = |Q ∩ T| / |Q ∪ T|.
package search

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	stopwords map[string]struct{}
	anyToken  bool
}

func defaultConfig() config {
	return config{
		stopwords: nil,
		anyToken:  false,
	}
}

// WithStopwords removes the given words from both queries and candidate text
// before matching. Empty entries are ignored.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithAnyToken switches from AND semantics (every query token must match) to
// OR semantics (at least one query token must match).
func WithAnyToken() Option {
	return func(c *config) { c.anyToken = true }
}

// ----------------------------------------------------------------------------
// Implementation

// Matcher matches candidate texts against a fixed query. A Matcher is
// immutable after construction and safe for concurrent use.
type Matcher struct {
	cfg    config
	tokens map[string]struct{}
}

// NewMatcher builds a Matcher for the given free-text query. A blank query
// (or one consisting only of stop words) yields a matcher that matches
// everything, mirroring the "no search filter" behavior upstream.
func NewMatcher(query string, opts ...Option) *Matcher {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Matcher{cfg: cfg, tokens: tokenize(query, cfg.stopwords)}
}

// Empty reports whether the matcher has no effective query tokens. An empty
// matcher matches every candidate.
func (m *Matcher) Empty() bool { return len(m.tokens) == 0 }

// Matches reports whether the candidate texts satisfy the query. The
// candidates are tokenized together, so a query may match across fields
// (e.g., one token in the subject and another in the notes).
func (m *Matcher) Matches(texts ...string) bool {
	if m.Empty() {
		return true
	}
	cand := tokenize(strings.Join(texts, " "), m.cfg.stopwords)
	over := overlap(m.tokens, cand)
	if m.cfg.anyToken {
		return over > 0
	}
	return over == len(m.tokens)
}

// Score returns the Jaccard similarity between the query tokens and the
// candidate tokens, in [0,1]. An empty matcher scores 0 for all input.
func (m *Matcher) Score(texts ...string) float64 {
	if m.Empty() {
		return 0
	}
	cand := tokenize(strings.Join(texts, " "), m.cfg.stopwords)
	over := overlap(m.tokens, cand)
	if over == 0 {
		return 0
	}
	union := float64(len(m.tokens) + len(cand) - over)
	if union <= 0 {
		return 0
	}
	return float64(over) / union
}

// ----------------------------------------------------------------------------
// Helpers

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*`)

// Language-independent Unicode case folding so that e.g. "İstanbul" and
// "ISTANBUL" tokenize identically regardless of the host locale.
var foldCaser = cases.Lower(language.Und)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	s = foldCaser.String(s)
	words := wordRE.FindAllString(s, -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if stop != nil {
			if _, skip := stop[w]; skip {
				continue
			}
		}
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
