// Package cli tokenizes an argv-like token list into a subcommand, long
// options with values and flags.
//
// The grammar is:
//
//	program <subcommand> [--option value | --option=value]* [-x]* [--flag]*
//
// A long option without "=" greedily consumes the following tokens, joined
// with single spaces, until a token starting with "-" or the end of input.
// When nothing follows, the option is recorded as a flag. A short option
// records only the first character after the dash. The last bare word wins
// as the subcommand.
//
//	args := cli.Parse([]string{"deploy", "--environment=production", "-v"})
//	args.Subcommand                // "deploy"
//	args.Options.Get("environment") // "production", true
//	args.Flags                     // ["v"]
package cli

import (
	"regexp"
	"strings"
)

// bareWordRe matches a subcommand token.
var bareWordRe = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_-]*$`)

// Args holds one parsed CLI invocation.
type Args struct {
	Subcommand string
	Options    *Options
	Flags      []string
}

// HasFlag reports whether name was given as a flag.
func (a *Args) HasFlag(name string) bool {
	for _, f := range a.Flags {
		if f == name {
			return true
		}
	}
	return false
}

// Parse tokenizes tokens, the argv without the program name.
func Parse(tokens []string) *Args {
	args := &Args{Options: NewOptions()}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case strings.HasPrefix(tok, "--"):
			i = parseLong(args, tokens, i)
		case strings.HasPrefix(tok, "-"):
			if len(tok) > 1 {
				args.Flags = append(args.Flags, tok[1:2])
			}
		case bareWordRe.MatchString(tok):
			args.Subcommand = tok
		}
	}

	return args
}

// parseLong records the long option at tokens[i] and returns the index of
// the last token it consumed.
func parseLong(args *Args, tokens []string, i int) int {
	name, value, hasValue := strings.Cut(tokens[i][2:], "=")
	if name == "" {
		return i
	}

	if hasValue {
		args.Options.Set(name, value)
		return i
	}

	j := i + 1
	for j < len(tokens) && !strings.HasPrefix(tokens[j], "-") {
		j++
	}

	if j == i+1 {
		args.Flags = append(args.Flags, name)
		return i
	}

	args.Options.Set(name, strings.Join(tokens[i+1:j], " "))
	return j - 1
}
