package compiler

import (
	"encoding/json"
	"fmt"
	"strings"
)

// literal returns s as a single-quoted SQL string literal, or NULL.
func literal(s *string) string {
	if s == nil {
		return "NULL"
	}
	return quote(*s)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// numeric returns the JSON number as written in the dataset, or NULL. json.Number only holds
// valid number literals, so it is safe to embed unquoted.
func numeric(n *json.Number) string {
	if n == nil || *n == "" {
		return "NULL"
	}
	return n.String()
}

var blockCommentGuard = strings.NewReplacer("*/", "* /")

// blockComment returns text safe to place inside /* ... */. Postgres block comments nest, so
// openers are broken apart as well as terminators.
func blockComment(text string) string {
	return strings.ReplaceAll(blockCommentGuard.Replace(text), "/*", "/ *")
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// lineComment returns text safe to place after "--".
func lineComment(text string) string {
	return lineBreaks.Replace(text)
}

// dollarTag returns a dollar-quote tag that does not occur in body.
func dollarTag(body string) string {
	tag := "$$"
	for i := 0; strings.Contains(body, tag); i++ {
		tag = fmt.Sprintf("$abort%d$", i)
	}
	return tag
}
