package shell

import "strings"

// tokenDelimiters separate tokens on a command line.
const tokenDelimiters = " \t\r\n\a"

// Resolver looks up the substitution for a whole token.
type Resolver interface {
	Resolve(token string) (string, bool)
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(tokenDelimiters, r)
}

// Tokenize splits line on runs of delimiters and substitutes tokens that
// exactly match a variable trigger.
//
// Substituted values are not scanned again, and triggers embedded in a larger
// token (e.g. "x$?") are left alone. The result is never nil; an empty line
// yields an empty slice.
func Tokenize(line string, vars Resolver) []string {
	fields := strings.FieldsFunc(line, isDelimiter)
	tokens := make([]string, 0, len(fields))

	for _, field := range fields {
		if vars != nil {
			if value, ok := vars.Resolve(field); ok {
				field = value
			}
		}
		tokens = append(tokens, field)
	}

	return tokens
}
