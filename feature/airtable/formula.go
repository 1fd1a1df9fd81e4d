package airtable

import (
	"fmt"
	"strings"
)

// MatchAnyFormula builds a formula selecting records whose field equals one of values.
func MatchAnyFormula(field string, values []string) string {
	if len(values) == 0 {
		return "FALSE()"
	}

	terms := make([]string, len(values))
	for i, v := range values {
		terms[i] = fmt.Sprintf("{%s} = '%s'", field, escapeFormulaString(v))
	}
	return "OR(" + strings.Join(terms, ",") + ")"
}

func escapeFormulaString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
