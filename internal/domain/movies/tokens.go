package movies

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLength is the shortest token (in runes) kept by the tokenizer.
const MinTokenLength = 2

type TokenSet map[string]struct{}

// Tokenize lower-cases text, splits it on anything that is not a letter or
// digit and keeps the distinct tokens of at least MinTokenLength runes.
// It is the free-text counterpart of ListTokens; similarity ranking compares
// list elements only, so nothing in the catalog calls it today.
func Tokenize(text string) TokenSet {
	out := TokenSet{}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, f := range fields {
		out.add(f)
	}
	return out
}

// ListTokens treats every list element as a single token.
func ListTokens(l List) TokenSet {
	out := TokenSet{}
	for _, e := range l {
		out.add(lowerTrim(e))
	}
	return out
}

func (s TokenSet) add(tok string) {
	if utf8.RuneCountInString(tok) < MinTokenLength {
		return
	}
	s[tok] = struct{}{}
}

func (s TokenSet) Len() int {
	return len(s)
}

func (s TokenSet) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

func (s TokenSet) Union(other TokenSet) TokenSet {
	out := make(TokenSet, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

func (s TokenSet) Intersect(other TokenSet) TokenSet {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := TokenSet{}
	for t := range small {
		if big.Has(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
