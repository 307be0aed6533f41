// Package compiler turns recipe records into the SQL script that seeds the cocktails and
// ingredients tables, matching every ingredient line against the base ingredient catalog.
package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cocktailseed/model"
	"cocktailseed/slug"
)

var ErrUnmatchedIngredients = errors.New("unmatched base ingredients")

const (
	DefaultScriptName = "data_insert_cocktails.sql"

	ruler = "-- -------------------------------------------------------------"

	cocktailColumns   = "cocktails (slug, name, glass, category, garnish, preparation, image_url)"
	ingredientColumns = "ingredients (cocktail_id, position, base_ingredient_id, amount, unit, label, special)"
)

// Resolver looks up a base ingredient by normalized key.
type Resolver interface {
	Resolve(key string) (model.BaseIngredient, bool)
}

type Options struct {
	// ScriptName is shown in the header of the generated script.
	ScriptName string
	// Generator names the tool in the header.
	Generator string
}

// A Failure is one ingredient name that matched no base ingredient, with every recipe using it.
type Failure struct {
	Ingredient string
	Cocktails  []string
}

// Message is the text raised by the abort block and printed in the run summary.
func (f Failure) Message() string {
	return fmt.Sprintf("Base ingredient not found: %s (used in: %s)", f.Ingredient, strings.Join(f.Cocktails, ", "))
}

type Result struct {
	SQL       []byte
	Cocktails int
	// Rows is the number of ingredient rows emitted.
	Rows     int
	Failures []Failure
}

// Err returns an error wrapping ErrUnmatchedIngredients when any ingredient failed to match.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d ingredient(s) not found", ErrUnmatchedIngredients, len(r.Failures))
}

// Compile emits the seed script for recipes in input order. Unmatched ingredients do not stop the
// compile; they are returned in Result.Failures and embedded in the script as abort blocks that
// make the whole transaction fail.
//
// Compile does no I/O and its output is a pure function of its input.
func Compile(recipes []model.Recipe, resolver Resolver, opts Options) *Result {
	if opts.ScriptName == "" {
		opts.ScriptName = DefaultScriptName
	}
	if opts.Generator == "" {
		opts.Generator = "cocktailseed generate"
	}

	var buf bytes.Buffer
	writeHeader(&buf, opts)

	res := &Result{}
	missing := failureSet{}
	var body bytes.Buffer
	for _, recipe := range recipes {
		compiled := compileRecipe(recipe, resolver)
		body.WriteString(compiled.sql)
		res.Rows += compiled.rows
		missing = missing.add(recipe.Name, compiled.unmatched)
	}
	res.Cocktails = len(recipes)
	res.Failures = missing.sorted()

	if body.Len() > 0 || len(res.Failures) > 0 {
		buf.WriteString("BEGIN;\n\n")
		buf.Write(body.Bytes())
		writeAbortBlocks(&buf, res.Failures)
		buf.WriteString("COMMIT;\n")
	}

	res.SQL = buf.Bytes()
	return res
}

func writeHeader(buf *bytes.Buffer, opts Options) {
	fmt.Fprintln(buf, ruler)
	fmt.Fprintf(buf, "-- %s: seed data for cocktails & ingredients\n", lineComment(opts.ScriptName))
	fmt.Fprintf(buf, "-- Auto-generated by %s\n", lineComment(opts.Generator))
	fmt.Fprintln(buf, "--      DO NOT EDIT MANUALLY")
	fmt.Fprintln(buf, ruler)
	fmt.Fprintln(buf)
}

type compiledRecipe struct {
	sql       string
	rows      int
	unmatched []string
}

func compileRecipe(recipe model.Recipe, resolver Resolver) compiledRecipe {
	var rows []string
	var unmatched []string
	for i, ing := range recipe.Ingredients {
		if ing.IsSpecial() {
			continue
		}
		base, ok := resolver.Resolve(slug.Make(ing.Ingredient))
		if !ok {
			unmatched = append(unmatched, ing.Ingredient)
			continue
		}
		rows = append(rows, fmt.Sprintf("((SELECT id FROM new_cocktail), %d, %s, %s, %s, %s, %s) /* %s */",
			i+1,
			quote(base.ID),
			numeric(ing.Amount),
			literal(ing.Unit),
			literal(ing.Label),
			literal(ing.Special),
			blockComment(ing.Ingredient),
		))
	}

	values := strings.Join([]string{
		quote(slug.Make(recipe.Name)),
		quote(recipe.Name),
		literal(recipe.Glass),
		literal(recipe.Category),
		literal(recipe.Garnish),
		literal(recipe.Preparation),
		literal(recipe.ImageURL),
	}, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "-- Cocktail: %s\n", lineComment(recipe.Name))
	if len(rows) == 0 {
		fmt.Fprintf(&b, "INSERT INTO %s\nVALUES (%s);\n", cocktailColumns, values)
		b.WriteString("-- (No mapped ingredients)\n\n")
		return compiledRecipe{sql: b.String(), unmatched: unmatched}
	}

	fmt.Fprintf(&b, "WITH new_cocktail AS (\n    INSERT INTO %s\n    VALUES (%s)\n    RETURNING id\n)\n", cocktailColumns, values)
	fmt.Fprintf(&b, "INSERT INTO %s\nVALUES\n    %s;\n\n", ingredientColumns, strings.Join(rows, ",\n    "))
	return compiledRecipe{sql: b.String(), rows: len(rows), unmatched: unmatched}
}

func writeAbortBlocks(buf *bytes.Buffer, failures []Failure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(buf, ruler)
	fmt.Fprintln(buf, "-- ERROR: Unmatched base ingredients (will abort execution) --")
	fmt.Fprintln(buf, ruler)
	for _, f := range failures {
		stmt := fmt.Sprintf("RAISE EXCEPTION '%%', %s;", quote(f.Message()))
		tag := dollarTag(stmt)
		fmt.Fprintf(buf, "DO %s\nBEGIN\n    %s\nEND %s;\n\n", tag, stmt, tag)
	}
}

// failureSet maps an ingredient name to the set of recipes referencing it.
type failureSet map[string]map[string]struct{}

func (s failureSet) add(cocktail string, ingredients []string) failureSet {
	for _, name := range ingredients {
		if s[name] == nil {
			s[name] = make(map[string]struct{})
		}
		s[name][cocktail] = struct{}{}
	}
	return s
}

// sorted returns the failures ordered by ingredient name, each with its recipes sorted.
func (s failureSet) sorted() []Failure {
	out := make([]Failure, 0, len(s))
	for name, cocktails := range s {
		f := Failure{Ingredient: name}
		for c := range cocktails {
			f.Cocktails = append(f.Cocktails, c)
		}
		sort.Strings(f.Cocktails)
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ingredient < out[j].Ingredient })
	return out
}
