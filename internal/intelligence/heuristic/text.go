package heuristic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxTokens bounds the tokens kept per text by Tokenize.
const MaxTokens = 20

// Fold lowercases s and removes diacritics, so "Réalisé" becomes "realise".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Words splits folded text on anything that is not a letter or digit.
func Words(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Tokenize returns the distinct words of s longer than two characters, in
// order of first appearance, keeping at most MaxTokens.
func Tokenize(s string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, MaxTokens)
	for _, w := range Words(s) {
		if len([]rune(w)) <= 2 {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) == MaxTokens {
			break
		}
	}
	return out
}

// Similarity is the share of query tokens found in doc, with the shared
// tokens in query order.
func Similarity(query, doc []string) (float64, []string) {
	set := make(map[string]struct{}, len(doc))
	for _, t := range doc {
		set[t] = struct{}{}
	}
	var shared []string
	for _, t := range query {
		if _, ok := set[t]; ok {
			shared = append(shared, t)
		}
	}
	return float64(len(shared)) / float64(max(len(query), 1)), shared
}

//Personal.AI order the ending
