package catalog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"cocktailseed/model"
)

// declaration matches a base ingredient seed row of the DDL, e.g.
//
//	('00000000-0000-0000-0000-000000000025', slugify('Gin'), 'Gin', 40, NULL),
//
// Only the identifier and the slugify() argument are used. Extra columns after them are ignored.
var declaration = regexp.MustCompile(`(?i)'([0-9a-f-]{36})'\s*,\s*slugify\(\s*'((?:[^']|'')+)'\s*\)`)

const maxLineSize = 1024 * 1024

// ParseDDL reads base ingredient declarations, one per line, from the SQL that seeds the
// base_ingredients table. Lines that are not declarations, or whose identifier is not a UUID, are
// skipped. Only a read error fails the parse.
func ParseDDL(r io.Reader) (*Catalog, error) {
	c := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		b, ok := parseDeclaration(scanner.Text())
		if !ok {
			continue
		}
		c.Add(b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("catalog: reading DDL: %w", err)
	}
	return c, nil
}

func parseDeclaration(line string) (model.BaseIngredient, bool) {
	m := declaration.FindStringSubmatch(line)
	if m == nil {
		return model.BaseIngredient{}, false
	}
	id, err := uuid.Parse(m[1])
	if err != nil {
		return model.BaseIngredient{}, false
	}
	name := strings.ReplaceAll(m[2], "''", "'")
	return model.BaseIngredient{ID: id.String(), Name: name}, true
}
