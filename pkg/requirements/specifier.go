package requirements

import (
	"strings"

	"github.com/matzehuels/wopp/pkg/errors"
)

// Comparison operators understood in requirement pins.
const (
	OpEqual      = "=="
	OpLessEqual  = "<="
	OpGreatEqual = ">="
	OpCompatible = "~="
)

// DefaultOperator is used for new pins when no specifier is requested.
const DefaultOperator = OpEqual

// specifierTokens maps the short flag tokens to their operators.
// It is never modified after initialization.
var specifierTokens = map[string]string{
	"ee": OpEqual,
	"le": OpLessEqual,
	"ge": OpGreatEqual,
	"te": OpCompatible,
}

// SpecifierTokens returns the accepted short tokens in a stable order.
func SpecifierTokens() []string {
	return []string{"ee", "le", "ge", "te"}
}

// LookupSpecifier resolves a specifier given either as a short token
// ("ee", "le", "ge", "te") or as an operator ("==", "<=", ">=", "~=").
// An empty input resolves to "" which means "no explicit specifier".
func LookupSpecifier(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	if op, ok := specifierTokens[s]; ok {
		return op, nil
	}
	if isOperator(s) {
		return s, nil
	}
	return "", errors.New(errors.ErrCodeInvalidSpecifier,
		"unknown specifier %q (use one of ee, le, ge, te or ==, <=, >=, ~=)", s)
}

func isOperator(s string) bool {
	switch s {
	case OpEqual, OpLessEqual, OpGreatEqual, OpCompatible:
		return true
	}
	return false
}
