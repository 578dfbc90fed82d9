package mux

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// routeRegexp stores the compiled patterns and metadata for a path template.
// It is immutable once built and shared between routes with the same raw
// template.
type routeRegexp struct {
	// raw is the template as registered, including #name suffixes.
	raw string
	// template is the template with #name suffixes stripped.
	template string
	// regexp matches a path whose placeholders hold values of the right type.
	regexp *regexp.Regexp
	// loose matches a path with the right shape regardless of value types.
	loose *regexp.Regexp
	// varsN are the capture names in order of appearance.
	varsN []string
}

// newRouteRegexp parses a route template and returns a compiled routeRegexp.
//
// Capture names are read from #name suffixes that immediately follow a
// placeholder, then the suffixes are stripped. A template whose placeholder
// count differs from its capture-name count is rejected.
func newRouteRegexp(tpl string) (*routeRegexp, error) {
	var varsN []string
	for _, m := range captureNameRe.FindAllStringSubmatch(tpl, -1) {
		varsN = append(varsN, m[2])
	}

	template := captureNameRe.ReplaceAllString(tpl, "$1")
	idxs := placeholderRe.FindAllStringIndex(template, -1)

	if len(idxs) != len(varsN) {
		return nil, fmt.Errorf("mux: %d placeholders but %d capture names in %q", len(idxs), len(varsN), tpl)
	}

	if err := checkDuplicateVars(varsN); err != nil {
		return nil, err
	}

	var (
		strict bytes.Buffer
		loose  bytes.Buffer
		end    int
	)

	strict.WriteByte('^')
	loose.WriteByte('^')

	for _, idx := range idxs {
		raw := regexp.QuoteMeta(template[end:idx[0]])
		end = idx[1]

		patt, loosePatt, _ := expandPlaceholder(template[idx[0]:idx[1]])
		fmt.Fprintf(&strict, "%s(%s)", raw, patt)
		fmt.Fprintf(&loose, "%s(%s)", raw, loosePatt)
	}

	rest := regexp.QuoteMeta(template[end:])
	strict.WriteString(rest)
	strict.WriteByte('$')
	loose.WriteString(rest)
	loose.WriteByte('$')

	reg, err := regexp.Compile(strict.String())
	if err != nil {
		return nil, fmt.Errorf("mux: invalid template %q: %w", tpl, err)
	}

	looseReg, err := regexp.Compile(loose.String())
	if err != nil {
		return nil, fmt.Errorf("mux: invalid template %q: %w", tpl, err)
	}

	return &routeRegexp{
		raw:      tpl,
		template: template,
		regexp:   reg,
		loose:    looseReg,
		varsN:    varsN,
	}, nil
}

// match reports whether path matches the strict pattern and returns the
// captured values in capture-name order.
func (r *routeRegexp) match(path string) ([]string, bool) {
	if len(r.varsN) == 0 {
		return nil, r.regexp.MatchString(path)
	}

	matches := r.regexp.FindStringSubmatch(path)
	if matches == nil {
		return nil, false
	}

	values := make([]string, len(r.varsN))
	for i := range r.varsN {
		if i+1 < len(matches) {
			values[i] = matches[i+1]
		}
	}
	return values, true
}

// shapeValues reports whether path has the shape of the template, ignoring
// placeholder value types, and returns the loosely captured values.
func (r *routeRegexp) shapeValues(path string) ([]string, bool) {
	matches := r.loose.FindStringSubmatch(path)
	if matches == nil {
		return nil, false
	}
	return matches[1:], true
}

// checkDuplicateVars returns an error if any capture name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("mux: duplicated capture name %q", v)
		}
		seen[v] = true
	}
	return nil
}

// stripQuery removes the query and fragment components from a request URI.
func stripQuery(uri string) string {
	if i := strings.IndexAny(uri, "?#"); i != -1 {
		return uri[:i]
	}
	return uri
}
