// Package nlp provides the text normalization and entity extraction used by
// the knowledge engine and the legacy matcher.
package nlp

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

type correction struct {
	pattern *regexp.Regexp
	replace string
}

func wordCorrection(wrong, right string) correction {
	return correction{pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(wrong) + `\b`), replace: right}
}

// Applied in order. Replacements never produce a word that is itself a key.
var corrections = []correction{
	wordCorrection("aneamia", "anemia"),
	wordCorrection("diabetis", "diabetes"),
	wordCorrection("diabeties", "diabetes"),
	wordCorrection("hart", "heart"),
	wordCorrection("desease", "disease"),
	wordCorrection("diesease", "disease"),
	wordCorrection("symtoms", "symptoms"),
	wordCorrection("symptom", "symptoms"),
	wordCorrection("treatement", "treatment"),
	wordCorrection("preventation", "prevention"),
	wordCorrection("cause", "causes"),
	wordCorrection("reason", "causes"),
}

var stopWords = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"can": {}, "could": {}, "should": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// Preprocess lower-cases text, replaces punctuation with spaces and collapses whitespace.
func Preprocess(text string) string {
	s := strings.ToLower(text)
	s = nonWord.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Normalize preprocesses text and corrects common misspellings.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	s := Preprocess(text)
	for _, c := range corrections {
		s = c.pattern.ReplaceAllString(s, c.replace)
	}
	return s
}

// Keywords returns the preprocessed words longer than two characters that are not stop words.
func Keywords(text string) []string {
	s := Preprocess(text)
	if s == "" {
		return nil
	}
	var out []string
	for _, w := range strings.Split(s, " ") {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Similarity is the share of a's words found in b over the size of the combined vocabulary.
// Both inputs are expected to be preprocessed.
func Similarity(a, b string) float64 {
	words1 := strings.Fields(a)
	words2 := strings.Fields(b)

	union := make(map[string]struct{}, len(words1)+len(words2))
	in2 := make(map[string]struct{}, len(words2))
	for _, w := range words2 {
		in2[w] = struct{}{}
		union[w] = struct{}{}
	}

	shared := 0
	for _, w := range words1 {
		union[w] = struct{}{}
		if _, ok := in2[w]; ok {
			shared++
		}
	}

	if len(union) == 0 {
		return 0
	}
	return float64(shared) / float64(len(union))
}
