package mux

import (
	"regexp"
	"sort"
	"strings"
)

// placeholder holds the strict pattern for a placeholder token and the
// loose pattern used to detect a path with the right shape but a value of
// the wrong type.
type placeholder struct {
	token   string
	pattern string
	loose   string
}

// segment is the loose pattern for every placeholder confined to a single
// path segment.
const segment = `[^/]+`

// placeholders maps placeholder tokens to their patterns. Strict patterns
// are bounded to MaxParamLength characters per repetition; the loose ones
// are not, so an over-long value still reads as a bad request.
// Used in route templates: /posts/:integer#id.
var placeholders = map[string]placeholder{
	":all":          {token: ":all", pattern: `.{1,1000}`, loose: `.+`},
	":alphanumeric": {token: ":alphanumeric", pattern: `[a-zA-Z0-9]{1,1000}`, loose: segment},
	":alpha":        {token: ":alpha", pattern: `[a-zA-Z]{1,1000}`, loose: segment},
	":integer":      {token: ":integer", pattern: `[0-9]{1,1000}`, loose: segment},
	":numeric":      {token: ":numeric", pattern: `-?[0-9]{0,1000}\.?[0-9]{1,1000}`, loose: segment},
	":id":           {token: ":id", pattern: `[0-9]{1,1000}`, loose: segment},
	":slug":         {token: ":slug", pattern: `[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,998}[a-zA-Z0-9])?`, loose: segment},
	":uuid":         {token: ":uuid", pattern: `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`, loose: segment},
}

// placeholderTokens lists the tokens longest first so that ":alphanumeric"
// is never read as ":alpha" followed by "numeric".
var placeholderTokens = func() []string {
	tokens := make([]string, 0, len(placeholders))
	for tok := range placeholders {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}()

// placeholderRe finds placeholder tokens in a template, longest first.
var placeholderRe = func() *regexp.Regexp {
	quoted := make([]string, len(placeholderTokens))
	for i, tok := range placeholderTokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}()

// captureNameRe finds a placeholder immediately followed by a #name suffix.
// Group 1 is the placeholder, group 2 the capture name.
var captureNameRe = regexp.MustCompile(`(` + placeholderRe.String() + `)#([A-Za-z_][A-Za-z0-9_]*)`)

// expandPlaceholder returns the strict and loose patterns for a token.
// The boolean is false when the token is not a known placeholder.
func expandPlaceholder(token string) (string, string, bool) {
	p, ok := placeholders[token]
	if !ok {
		return "", "", false
	}
	return p.pattern, p.loose, true
}

// Placeholders returns the supported placeholder tokens, longest first.
func Placeholders() []string {
	out := make([]string, len(placeholderTokens))
	copy(out, placeholderTokens)
	return out
}
