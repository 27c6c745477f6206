// Package validate runs explicit per-input-shape validation at the API
// boundary, before any service method is invoked.
package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	v    = validator.New()
	reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Struct checks one input shape and returns the list of violations, empty
// when the shape is valid.
func Struct(s any) []Violation {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	out := make([]Violation, 0, len(errs))
	for _, fe := range errs {
		f := fe.Field()
		if len(f) > 0 {
			f = strings.ToLower(f[:1]) + f[1:]
		}
		msg := "failed on rule " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out = append(out, Violation{Field: f, Rule: fe.Tag(), Message: msg})
	}
	return out
}

// Page parses a zero-based page index, clamping negatives and garbage to 0.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Size parses a page size, clamping to [1,100] with a default of 20.
func Size(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 20
	}
	if n > 100 {
		return 100
	}
	return n
}

// ID validates a resource identifier path parameter.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Price parses a non-negative price query parameter.
func Price(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}
