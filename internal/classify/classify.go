// Package classify decides how a question should be answered.
package classify

import "strings"

// Category selects the retrieval strategy for a question.
type Category string

const (
	// Summary questions are answered from broad multi-query sampling.
	Summary Category = "summary"
	// Deep questions use targeted retrieval with a larger K.
	Deep Category = "deep"
	// Factual is the default for questions matching no keyword.
	Factual Category = "factual"
)

// Classifier tags a question with a Category.
type Classifier interface {
	Classify(question string) Category
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(question string) Category

// Classify calls f(question).
func (f ClassifierFunc) Classify(question string) Category {
	return f(question)
}

// Keywords holds the marker lists used by KeywordClassifier.
type Keywords struct {
	Summary []string `yaml:"summary"`
	Deep    []string `yaml:"deep"`
}

// DefaultKeywords returns the built-in marker lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Summary: []string{"summary", "summarize", "key takeaways", "overview", "main points", "what is this video about"},
		Deep:    []string{"explain", "why", "how", "in detail", "elaborate", "intuition", "significance"},
	}
}

// KeywordClassifier matches lowercase substrings. Summary markers take
// precedence over deep markers; anything else is Factual.
type KeywordClassifier struct {
	summary []string
	deep    []string
}

// NewKeywordClassifier creates a classifier from the given marker lists.
func NewKeywordClassifier(kw Keywords) *KeywordClassifier {
	return &KeywordClassifier{
		summary: lowerAll(kw.Summary),
		deep:    lowerAll(kw.Deep),
	}
}

// Classify implements Classifier.
func (c *KeywordClassifier) Classify(question string) Category {
	q := strings.ToLower(question)
	if containsAny(q, c.summary) {
		return Summary
	}
	if containsAny(q, c.deep) {
		return Deep
	}
	return Factual
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
