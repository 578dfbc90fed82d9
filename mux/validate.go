package mux

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// MaxParamLength is the longest captured value accepted after trimming.
const MaxParamLength = 1000

// maxSafeInt is the largest integer representable without loss in an
// IEEE 754 double (2^53 - 1).
const maxSafeInt = 1<<53 - 1

var (
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	slugRe   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// paramValidator checks and normalizes a trimmed, non-empty value.
// It returns the value to bind and a reason when the value is rejected.
type paramValidator func(string) (string, string)

// paramTypes maps declared parameter types to their validators.
var paramTypes = map[string]paramValidator{
	"int":     validateInt,
	"integer": validateInt,
	"float":   validateFloat,
	"numeric": validateFloat,
	"string":  validateString,
	"slug":    validateSlug,
	"uuid":    validateUUID,
}

// validateParams trims and checks every captured value and applies the
// route's declared parameter types. Values are returned in capture order.
func validateParams(names, values []string, types map[string]string) ([]string, error) {
	out := make([]string, len(values))
	for i, raw := range values {
		name := ""
		if i < len(names) {
			name = names[i]
		}

		v, err := validateParam(name, raw, types[name])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// validateParam applies the universal guards and then the declared type.
// An unknown declared type passes the value through unchanged.
func validateParam(name, raw, typ string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", &BadRequestError{Param: name, Reason: "empty value"}
	}
	if len(v) > MaxParamLength {
		return "", &BadRequestError{Param: name, Reason: "value too long"}
	}

	validate, ok := paramTypes[strings.ToLower(typ)]
	if !ok {
		return v, nil
	}

	out, reason := validate(v)
	if reason != "" {
		return "", &BadRequestError{Param: name, Reason: reason}
	}
	return out, nil
}

func validateInt(v string) (string, string) {
	if !digitsRe.MatchString(v) {
		return "", "not an integer"
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n > maxSafeInt {
		return "", "integer out of range"
	}
	return v, ""
}

func validateFloat(v string) (string, string) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", "not a number"
	}
	return v, ""
}

func validateString(v string) (string, string) {
	if strings.ContainsAny(v, `<>"'`) {
		return "", "forbidden characters"
	}
	return html.EscapeString(v), ""
}

func validateSlug(v string) (string, string) {
	if !slugRe.MatchString(v) {
		return "", "not a slug"
	}
	return v, ""
}

// validateUUID accepts only the canonical 8-4-4-4-12 form. uuid.Parse
// alone also accepts urn and braced forms.
func validateUUID(v string) (string, string) {
	if len(v) != 36 {
		return "", "not a uuid"
	}
	if _, err := uuid.Parse(v); err != nil {
		return "", "not a uuid"
	}
	return v, ""
}
