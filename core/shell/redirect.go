package shell

import "errors"

// ErrSyntax is returned for malformed redirections.
var ErrSyntax = errors.New("syntax error")

// splitRedirect separates a command's redirection from its argv.
//
// The first ">" wins and exactly one token must follow it: the
// redirection target. No ">" at all leaves argv untouched with an empty
// target. Anything else, a leading ">", a missing target or trailing
// tokens, is a syntax error.
func splitRedirect(tokens []string) (argv []string, target string, err error) {
	for i, tok := range tokens {
		if tok != opRedirect {
			continue
		}

		switch {
		case i == 0:
			return nil, "", ErrSyntax
		case len(tokens)-i != 2:
			return nil, "", ErrSyntax
		case tokens[i+1] == opRedirect:
			return nil, "", ErrSyntax
		default:
			return tokens[:i], tokens[i+1], nil
		}
	}
	return tokens, "", nil
}
