package shell

import (
	"errors"
	"strings"
)

// Operators that delimit tokens regardless of surrounding whitespace.
const (
	opRedirect = ">"
	opParallel = "&"
)

// ErrTooManyTokens is returned for lines that exceed the token limit.
var ErrTooManyTokens = errors.New("too many tokens")

// isLineSpace reports whether r separates words on a command line.
func isLineSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// Tokenize splits a command line into words and operators.
//
// The split happens in two passes: the first breaks the line into
// whitespace separated words, the second isolates the ">" and "&"
// operators so they always form their own tokens, even glued to a word.
// ">" is isolated before "&", so "a>b&c" becomes
// ["a" ">" "b" "&" "c"].
//
// If limit is positive and the result would hold more tokens, the whole
// line is rejected with ErrTooManyTokens rather than truncated.
func Tokenize(line string, limit int) ([]string, error) {
	tokens := strings.FieldsFunc(line, isLineSpace)
	tokens = splitOperator(tokens, opRedirect)
	tokens = splitOperator(tokens, opParallel)

	if limit > 0 && len(tokens) > limit {
		return nil, ErrTooManyTokens
	}
	return tokens, nil
}

// splitOperator cuts op out of every token into a token of its own,
// dropping the empty fragments around it. "ls>out" becomes
// ["ls" ">" "out"] and ">>" becomes [">" ">"].
func splitOperator(tokens []string, op string) []string {
	var out []string
	for _, tok := range tokens {
		if !strings.Contains(tok, op) {
			out = append(out, tok)
			continue
		}

		for i, part := range strings.Split(tok, op) {
			if i > 0 {
				out = append(out, op)
			}
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
